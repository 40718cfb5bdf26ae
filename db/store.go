// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/SiikHub/SiikHubWaitList/models"
	"github.com/SiikHub/SiikHubWaitList/waitlist"
)

// DefaultSQLiteDSN is an in-memory database; it lives as long as the
// store's single connection.
const DefaultSQLiteDSN = ":memory:"

// SQLStore keeps signup records in a waitlist_entry table
type SQLStore struct {
	db      *sql.DB
	dialect string
}

var _ waitlist.Store = (*SQLStore)(nil)

// NewSQLStore wraps an open handle. The schema must already exist.
func NewSQLStore(db *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Open connects with the dialect's driver, pings and creates the schema
func Open(dialect, dsn string) (*SQLStore, error) {
	if dialect == DialectSQLite && dsn == "" {
		dsn = DefaultSQLiteDSN
	}
	if dsn == "" {
		return nil, errors.New("database URL is required")
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// one writer; also keeps a memory database alive
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}
	if err := CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}
	return NewSQLStore(conn, dialect), nil
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is reachable
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind turns ? placeholders into $1, $2, ... for postgres
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

const selectColumns = `
	SELECT id, email, source, signed_up_at, position, is_active,
	       created_at, updated_at, ip_hash, user_agent
	FROM waitlist_entry`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.SignupRecord, error) {
	var rec models.SignupRecord
	var signedUp, created, updated int64
	err := row.Scan(
		&rec.ID, &rec.Email, &rec.Source, &signedUp, &rec.Position, &rec.IsActive,
		&created, &updated, &rec.IPHash, &rec.UserAgent,
	)
	if err != nil {
		return models.SignupRecord{}, err
	}
	rec.Timestamp = fromMillis(signedUp)
	rec.CreatedAt = fromMillis(created)
	rec.UpdatedAt = fromMillis(updated)
	return rec, nil
}

func (s *SQLStore) Get(ctx context.Context, email string) (models.SignupRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE email = ?`), email)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return models.SignupRecord{}, false, nil
	}
	if err != nil {
		return models.SignupRecord{}, false, fmt.Errorf("failed to query signup: %w", err)
	}
	return rec, true, nil
}

func (s *SQLStore) Insert(ctx context.Context, rec models.SignupRecord) (models.SignupRecord, error) {
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO waitlist_entry
			(email, source, signed_up_at, position, is_active, created_at, updated_at, ip_hash, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), rec.Email, rec.Source, toMillis(rec.Timestamp), rec.Position, rec.IsActive,
		toMillis(rec.CreatedAt), toMillis(rec.UpdatedAt), rec.IPHash, rec.UserAgent,
	).Scan(&rec.ID)
	if err != nil {
		return models.SignupRecord{}, fmt.Errorf("failed to insert signup: %w", err)
	}
	return rec, nil
}

func (s *SQLStore) Update(ctx context.Context, rec models.SignupRecord) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE waitlist_entry
		SET source = ?, signed_up_at = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`), rec.Source, toMillis(rec.Timestamp), rec.IsActive, toMillis(rec.UpdatedAt), rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update signup: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update signup: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no signup with id %d", rec.ID)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context) ([]models.SignupRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	records := []models.SignupRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signups: %w", err)
	}
	return records, nil
}

// SetPositions writes every position in one transaction
func (s *SQLStore) SetPositions(ctx context.Context, positions map[int64]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`UPDATE waitlist_entry SET position = ? WHERE id = ?`))
	if err != nil {
		return fmt.Errorf("failed to prepare position update: %w", err)
	}
	defer stmt.Close()

	for id, pos := range positions {
		if _, err := stmt.ExecContext(ctx, pos, id); err != nil {
			return fmt.Errorf("failed to update position for %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
