// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/SiikHub/SiikHubWaitList/cliparse"
	"github.com/SiikHub/SiikHubWaitList/middleware"
	"github.com/SiikHub/SiikHubWaitList/models"
)

const serviceName = "siikhub-waitlist"

// ServiceHandler answers liveness probes. It never touches the store.
type ServiceHandler struct {
	cfg cliparse.Config
}

func NewServiceHandler(cfg cliparse.Config) *ServiceHandler {
	return &ServiceHandler{cfg: cfg}
}

// Health handles GET /health
func (h *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
		Version:   h.cfg.Version,
	})
}

// Root handles GET /. Unknown paths fall through here too.
func (h *ServiceHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RootResponse{
		Message:     h.cfg.ProductName + " Waitlist API",
		Status:      "operational",
		HealthCheck: "/health",
	})
}
