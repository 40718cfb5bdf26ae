// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the SiikHub waitlist API server.

The waitlist collects emails ahead of launch, gives every active signup a
1-based position in join order, and lets people unsubscribe and come back.

# Starting the Server

Only the IP hash salt is required:

	IP_HASH_SALT=dev go run .

Or with flags and a SQL store:

	go run . -p 3318 -t postgres -d "postgres://..." -ip-salt dev

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - IP_HASH_SALT (-ip-salt): Secret for hashing client IPs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-t): memory, sqlite or postgres (default: memory)
  - DATABASE_URL (-d): DSN for sqlite/postgres
  - DEFAULT_SOURCE (-source): Source tag when a signup omits one
  - PRODUCT_NAME, ALLOWED_ORIGINS, SERVICE_VERSION, LOG_LEVEL

# Architecture

  - waitlist: Registry rules (positions, reactivation, stats) and the memory store
  - db: SQL store for sqlite and PostgreSQL
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - clientinfo: Client IP hashing and User-Agent capture
  - models: Request/response types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
