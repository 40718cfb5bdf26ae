// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the SQL-backed waitlist store and its schema.

# Opening a Store

Open picks the driver by dialect, pings, and creates the schema:

	store, err := db.Open(db.DialectSQLite, "")          // in-memory
	store, err := db.Open(db.DialectPostgres, databaseURL)

The returned *SQLStore satisfies waitlist.Store.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

# Tables

  - waitlist_entry: one row per normalized email, never deleted

Timestamps (signed_up_at, created_at, updated_at) are stored as unix
milliseconds so both dialects compare them the same way.

# Indexes

  - waitlist_entry.email (unique)
  - waitlist_entry.(is_active, signed_up_at)

# Placeholders

Queries are written with ? and rewritten to $1, $2, ... for PostgreSQL.
*/
package db
