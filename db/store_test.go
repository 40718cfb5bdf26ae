// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiikHub/SiikHubWaitList/models"
	"github.com/SiikHub/SiikHubWaitList/waitlist"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := Open(DialectSQLite, "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateSchema_Idempotent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, CreateSchema(store.db, DialectSQLite))
	require.NoError(t, CreateSchema(store.db, DialectSQLite))
}

func TestCreateSchema_UnknownDialect(t *testing.T) {
	store := openTestStore(t)

	err := CreateSchema(store.db, "oracle")
	assert.Error(t, err)
}

func TestOpen_PostgresNeedsURL(t *testing.T) {
	_, err := Open(DialectPostgres, "")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{dialect: DialectPostgres}
	assert.Equal(t, "UPDATE t SET a = $1 WHERE id = $2", pg.rebind("UPDATE t SET a = ? WHERE id = ?"))

	lite := &SQLStore{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ? FROM t", lite.rebind("SELECT ? FROM t"))
}

func TestSQLStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 123_000_000, time.UTC)

	_, found, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, found)

	rec, err := store.Insert(ctx, models.SignupRecord{
		Email:     "a@x.com",
		Source:    "website",
		Timestamp: now,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		IPHash:    "deadbeef",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)

	got, found, err := store.Get(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec, got)

	got.IsActive = false
	got.Source = "social"
	got.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, store.Update(ctx, got))

	require.NoError(t, store.SetPositions(ctx, map[int64]int{rec.ID: 7}))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].IsActive)
	assert.Equal(t, "social", records[0].Source)
	assert.Equal(t, 7, records[0].Position)
	assert.Equal(t, now.Add(time.Minute), records[0].UpdatedAt)
	assert.Equal(t, now, records[0].CreatedAt)
}

func TestSQLStore_DuplicateEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := models.SignupRecord{Email: "a@x.com", Source: "website", IsActive: true}
	_, err := store.Insert(ctx, rec)
	require.NoError(t, err)

	_, err = store.Insert(ctx, rec)
	assert.Error(t, err)
}

func TestSQLStore_UpdateMissing(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(context.Background(), models.SignupRecord{ID: 42, Email: "x@y.com"})
	assert.Error(t, err)
}

// TestSQLStore_Registry runs the waitlist rules on top of sqlite
func TestSQLStore_Registry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	reg := waitlist.NewRegistry(store, waitlist.WithClock(clock))

	register := func(email string) waitlist.RegistrationResult {
		t.Helper()
		res, err := reg.Register(ctx, email, "", models.ClientInfo{})
		require.NoError(t, err)
		now = now.Add(time.Second)
		return res
	}

	a := register("a@x.com")
	assert.Equal(t, 1, a.Record.Position)
	b := register("b@x.com")
	assert.Equal(t, 2, b.Record.Position)
	assert.Equal(t, 2, b.Total)

	dup := register("A@X.com")
	assert.False(t, dup.Success())
	assert.Equal(t, 1, dup.Record.Position)

	_, err := reg.Unsubscribe(ctx, "a@x.com")
	require.NoError(t, err)

	back := register("a@x.com")
	assert.Equal(t, waitlist.OutcomeReactivated, back.Outcome)
	assert.Equal(t, a.Record.ID, back.Record.ID)
	assert.Equal(t, 2, back.Record.Position)

	bNow, _, err := store.Get(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, 1, bNow.Position)

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, "a@x.com", stats.Latest[0].Email)

	for i := 0; i < 5; i++ {
		register(fmt.Sprintf("user%d@example.com", i))
	}
	entries, err := reg.Entries(ctx, waitlist.EntryQuery{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, entries, 7)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestSQLStore_QueryErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	store := NewSQLStore(conn, DialectPostgres)
	ctx := context.Background()
	errDown := errors.New("connection refused")

	mock.ExpectQuery("SELECT id, email").WithArgs("a@x.com").WillReturnError(errDown)
	_, _, err = store.Get(ctx, "a@x.com")
	assert.ErrorIs(t, err, errDown)

	mock.ExpectQuery("SELECT id, email").WillReturnError(errDown)
	_, err = store.List(ctx)
	assert.ErrorIs(t, err, errDown)

	mock.ExpectQuery("INSERT INTO waitlist_entry").WillReturnError(errDown)
	_, err = store.Insert(ctx, models.SignupRecord{Email: "a@x.com"})
	assert.ErrorIs(t, err, errDown)

	mock.ExpectExec("UPDATE waitlist_entry").WillReturnResult(sqlmock.NewResult(0, 0))
	err = store.Update(ctx, models.SignupRecord{ID: 9})
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SetPositionsRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	store := NewSQLStore(conn, DialectPostgres)
	errDown := errors.New("disk full")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`UPDATE waitlist_entry SET position = \$1 WHERE id = \$2`)
	prep.ExpectExec().WithArgs(1, int64(5)).WillReturnError(errDown)
	mock.ExpectRollback()

	err = store.SetPositions(context.Background(), map[int64]int{5: 1})
	assert.ErrorIs(t, err, errDown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SetPositionsCommits(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	store := NewSQLStore(conn, DialectPostgres)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`UPDATE waitlist_entry SET position`)
	prep.ExpectExec().WithArgs(1, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SetPositions(context.Background(), map[int64]int{3: 1}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
