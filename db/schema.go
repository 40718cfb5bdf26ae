// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported SQL dialects, also the database/sql driver names
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// CreateSchema creates the waitlist table for the given dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var ddl string
	switch dialect {
	case DialectSQLite:
		ddl = sqliteSchema
	case DialectPostgres:
		ddl = postgresSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are unix milliseconds in both dialects.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS waitlist_entry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    source TEXT NOT NULL,
    signed_up_at INTEGER NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    ip_hash TEXT NOT NULL DEFAULT '',
    user_agent TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_waitlist_entry_active ON waitlist_entry(is_active, signed_up_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS waitlist_entry (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    source TEXT NOT NULL,
    signed_up_at BIGINT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    ip_hash TEXT NOT NULL DEFAULT '',
    user_agent TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_waitlist_entry_active ON waitlist_entry(is_active, signed_up_at);
`
