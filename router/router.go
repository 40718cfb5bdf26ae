// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/SiikHub/SiikHubWaitList/cliparse"
	"github.com/SiikHub/SiikHubWaitList/handlers"
	"github.com/SiikHub/SiikHubWaitList/middleware"
	"github.com/SiikHub/SiikHubWaitList/waitlist"
)

func NewRouter(reg *waitlist.Registry, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	waitlistHandler := handlers.NewWaitlistHandler(reg, cfg)
	serviceHandler := handlers.NewServiceHandler(cfg)

	// Health check (not logged; probes hit it constantly)
	mux.HandleFunc("GET /health", serviceHandler.Health)

	// Public waitlist operations
	mux.HandleFunc("POST /waitlist", middleware.WithLogging(waitlistHandler.Signup))
	mux.HandleFunc("GET /waitlist", middleware.WithLogging(waitlistHandler.Stats))
	mux.HandleFunc("POST /waitlist/unsubscribe", middleware.WithLogging(waitlistHandler.Unsubscribe))
	mux.HandleFunc("GET /waitlist/position/{email}", middleware.WithLogging(waitlistHandler.Position))

	// Listings
	mux.HandleFunc("GET /waitlist/entries", middleware.WithLogging(waitlistHandler.Entries))
	mux.HandleFunc("GET /waitlist/export", middleware.WithLogging(waitlistHandler.Export))

	// Root endpoint
	mux.HandleFunc("GET /", middleware.WithLogging(serviceHandler.Root))

	return middleware.CORS(cfg.AllowedOrigins)(mux)
}
