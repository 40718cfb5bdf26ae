// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SiikHub/SiikHubWaitList/models"
	"github.com/SiikHub/SiikHubWaitList/testutil"
)

func TestHealth(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.Version = "2.3.4"
	h := NewServiceHandler(cfg)

	before := time.Now().UTC().Add(-time.Second)
	w := httptest.NewRecorder()
	h.Health(w, testutil.MakeRequest("GET", "/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", resp.Status)
	}
	if resp.Version != "2.3.4" {
		t.Errorf("Expected version '2.3.4', got '%s'", resp.Version)
	}
	if resp.Service == "" {
		t.Error("Expected service name")
	}
	if resp.Timestamp.Before(before) {
		t.Errorf("Timestamp %v is stale", resp.Timestamp)
	}
}

func TestRoot(t *testing.T) {
	h := NewServiceHandler(testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.Root(w, testutil.MakeRequest("GET", "/", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RootResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "operational" {
		t.Errorf("Expected status 'operational', got '%s'", resp.Status)
	}
	if resp.HealthCheck != "/health" {
		t.Errorf("Expected health_check '/health', got '%s'", resp.HealthCheck)
	}

	w = httptest.NewRecorder()
	h.Root(w, testutil.MakeRequest("GET", "/nope", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
