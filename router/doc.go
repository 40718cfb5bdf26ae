// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the SiikHub waitlist API.

# Route Registration

NewRouter returns the route table wrapped in CORS:

	handler := router.NewRouter(reg, cfg)

# Endpoints

Service:

	GET /health - Liveness (no store access)
	GET /       - Service banner

Waitlist (public):

	POST /waitlist                  - Join
	GET  /waitlist                  - Aggregate stats
	POST /waitlist/unsubscribe      - Leave
	GET  /waitlist/position/{email} - Current position

Listings:

	GET /waitlist/entries - Paged records
	GET /waitlist/export  - JSON or CSV dump

Every route except /health is wrapped in middleware.WithLogging.
*/
package router
