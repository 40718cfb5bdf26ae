// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package clientinfo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"

	"github.com/SiikHub/SiikHubWaitList/models"
)

// MaxUserAgentLen caps the stored User-Agent header
const MaxUserAgentLen = 500

// FromRequest captures the hashed client IP and the user agent.
// The raw IP never leaves this function.
func FromRequest(r *http.Request, salt string) models.ClientInfo {
	return models.ClientInfo{
		IPHash:    HashIP(ClientIP(r), salt),
		UserAgent: UserAgent(r),
	}
}

// ClientIP extracts the client IP address
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr
func ClientIP(r *http.Request) string {
	// First hop is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	if ip == "" {
		return ""
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough to spot repeat signups
	return hex.EncodeToString(sum[:8])
}

// UserAgent returns the User-Agent header cut to MaxUserAgentLen bytes
// without splitting a UTF-8 sequence.
func UserAgent(r *http.Request) string {
	ua := r.UserAgent()
	if len(ua) <= MaxUserAgentLen {
		return ua
	}
	cut := MaxUserAgentLen
	for cut > 0 && !isRuneStart(ua[cut]) {
		cut--
	}
	return ua[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
