// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/SiikHub/SiikHubWaitList/cliparse"
	"github.com/SiikHub/SiikHubWaitList/db"
	"github.com/SiikHub/SiikHubWaitList/models"
	"github.com/SiikHub/SiikHubWaitList/waitlist"
)

// BaseTime is where every test clock starts
var BaseTime = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// Clock is a manually advanced clock for registries under test
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: BaseTime}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		StoreType:      cliparse.StoreMemory,
		IPHashSalt:     "test-ip-salt",
		DefaultSource:  models.DefaultSource,
		ProductName:    "SiikHub",
		AllowedOrigins: []string{"http://localhost:3000"},
		Version:        "1.0.0",
		LogLevel:       "info",
	}
}

// NewTestRegistry builds a registry over a fresh memory store
func NewTestRegistry(t *testing.T, clock *Clock) *waitlist.Registry {
	t.Helper()
	return waitlist.NewRegistry(waitlist.NewMemoryStore(), waitlist.WithClock(clock.Now))
}

// OpenTestStore opens an in-memory SQLite store that is closed with the test
func OpenTestStore(t *testing.T) *db.SQLStore {
	t.Helper()

	store, err := db.Open(db.DialectSQLite, db.DefaultSQLiteDSN)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// SignUp registers email directly on the registry and fails the test on error
func SignUp(t *testing.T, reg *waitlist.Registry, email, source string) waitlist.RegistrationResult {
	t.Helper()

	res, err := reg.Register(t.Context(), email, source, models.ClientInfo{})
	if err != nil {
		t.Fatalf("Failed to register %s: %v", email, err)
	}
	return res
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
