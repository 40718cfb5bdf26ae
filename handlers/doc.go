// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the SiikHub waitlist API.

# Handler Types

  - WaitlistHandler: signup, unsubscribe, stats and admin listings
  - ServiceHandler: health and root endpoints

Handlers are created via constructor functions:

	waitlistHandler := handlers.NewWaitlistHandler(reg, cfg)
	serviceHandler := handlers.NewServiceHandler(cfg)

WaitlistHandler delegates every rule to waitlist.Registry; it only decodes
requests, maps errors to status codes and encodes responses.

# Endpoints

	POST /waitlist                      → Signup
	GET  /waitlist                      → Stats
	POST /waitlist/unsubscribe          → Unsubscribe
	GET  /waitlist/position/{email}     → Position
	GET  /waitlist/entries              → Entries (skip, limit, active_only)
	GET  /waitlist/export               → Export (format=json|csv, active_only)
	GET  /health                        → Health
	GET  /                              → Root

A duplicate signup is a 200 with "success": false and the existing
position.

# Error Handling

All errors return JSON: {"success": false, "message": "..."}

Status codes:
  - 400: Invalid JSON or input (bad email, source too long, bad paging)
  - 404: Email not on the active waitlist
  - 500: Store failure (details logged, never returned)

# Client Fingerprint

Signup stores a salted hash of the client IP and the User-Agent with new
records. Neither is ever included in a response.
*/
package handlers
