// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path) and completion (status, duration_ms).
Every request gets an X-Request-ID (a UUID unless the caller sent one),
echoed in the response and available to handlers:

	id := middleware.RequestID(r.Context())

# CORS Middleware

Enable cross-origin requests from the marketing site:

	handler := middleware.CORS(cfg.AllowedOrigins)(mux)

Only listed origins receive CORS headers. Methods GET, POST, OPTIONS.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Error bodies are {"success": false, "message": "..."}.

Parse JSON request bodies:

	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Log Redaction

Never log a raw email:

	slog.Info("signup", "email", middleware.RedactEmail(email))
*/
package middleware
