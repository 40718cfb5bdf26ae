// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package clientinfo captures who sent a signup without storing raw IPs.

# Client IP

ClientIP checks, in order:

  - X-Forwarded-For (first entry)
  - X-Real-IP
  - RemoteAddr, with the port stripped

# Hashing

HashIP is an HMAC-SHA256 keyed with the configured salt, truncated to
8 bytes (16 hex chars). Same IP and salt always give the same hash.

	info := clientinfo.FromRequest(r, cfg.IPHashSalt)

# User Agent

UserAgent truncates the header to MaxUserAgentLen (500) bytes.
*/
package clientinfo
