// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package waitlist

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/SiikHub/SiikHubWaitList/models"
)

var (
	// ErrInvalidInput is matched by every InputError
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the email has no active record
	ErrNotFound = errors.New("email not found in active waitlist")
)

const (
	DefaultEntriesLimit = 100
	MaxEntriesLimit     = 1000

	maxSourceLen      = 50
	latestLimit       = 10
	topSourcesLimit   = 5
	recentWindow      = 7 * 24 * time.Hour
	averageWindowDays = 30
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InputError carries a caller-facing message and matches ErrInvalidInput
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// NormalizeEmail checks the address as submitted has the local@domain.tld
// shape, then lower-cases it. Surrounding whitespace is rejected.
func NormalizeEmail(email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", invalid("Please enter a valid email address.")
	}
	return strings.ToLower(email), nil
}

// Outcome tags what a registration did
type Outcome int

const (
	OutcomeDuplicate Outcome = iota + 1
	OutcomeReactivated
	OutcomeCreated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeReactivated:
		return "reactivated"
	case OutcomeCreated:
		return "created"
	}
	return "unknown"
}

// decide picks the registration branch for an existing (or missing) record
func decide(rec models.SignupRecord, found bool) Outcome {
	switch {
	case !found:
		return OutcomeCreated
	case rec.IsActive:
		return OutcomeDuplicate
	default:
		return OutcomeReactivated
	}
}

// RegistrationResult reports what Register did and the record's rank afterwards
type RegistrationResult struct {
	Outcome Outcome
	Record  models.SignupRecord
	Total   int
	Message string
}

// Success is false only for an already-active email
func (r RegistrationResult) Success() bool {
	return r.Outcome != OutcomeDuplicate
}

// PositionResult is an active record and the active total at lookup time
type PositionResult struct {
	Record models.SignupRecord
	Total  int
}

// StatsSnapshot aggregates the waitlist. Counts cover active records
// except Inactive.
type StatsSnapshot struct {
	Total        int
	Inactive     int
	Recent       int
	Today        int
	AverageDaily float64
	TopSources   []models.SourceCount
	Latest       []models.SignupSummary
}

// EntryQuery pages through Entries. Limit 0 means DefaultEntriesLimit.
type EntryQuery struct {
	Skip       int
	Limit      int
	ActiveOnly bool
}

// Option configures a Registry
type Option func(*Registry)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.clock = now }
}

// WithDefaultSource sets the tag used when a signup names no source
func WithDefaultSource(source string) Option {
	return func(r *Registry) {
		if s := strings.TrimSpace(source); s != "" {
			r.defaultSource = s
		}
	}
}

// WithProductName sets the name used in signup messages
func WithProductName(name string) Option {
	return func(r *Registry) {
		if n := strings.TrimSpace(name); n != "" {
			r.productName = n
		}
	}
}

// Registry owns the waitlist rules. All operations hold mu for their whole
// read-modify-write so position recomputation never interleaves.
type Registry struct {
	mu            sync.Mutex
	store         Store
	clock         func() time.Time
	lastStamp     time.Time
	defaultSource string
	productName   string

	// set after a committed mutation until positions are written back
	unranked bool
}

// NewRegistry wraps store. Defaults are time.Now, source "website" and
// product name "SiikHub".
func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:         store,
		clock:         time.Now,
		defaultSource: models.DefaultSource,
		productName:   "SiikHub",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// now returns a UTC millisecond timestamp strictly after the previous one
// handed out, so registrations never tie.
func (r *Registry) now() time.Time {
	t := r.clock().UTC().Truncate(time.Millisecond)
	if !t.After(r.lastStamp) {
		t = r.lastStamp.Add(time.Millisecond)
	}
	r.lastStamp = t
	return t
}

func (r *Registry) normalizeSource(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return r.defaultSource, nil
	}
	if utf8.RuneCountInString(source) > maxSourceLen {
		return "", invalid("source must be at most %d characters", maxSourceLen)
	}
	return source, nil
}

// Register adds an email to the waitlist, reactivates an unsubscribed one,
// or reports the existing position of an active one.
func (r *Registry) Register(ctx context.Context, email, source string, client models.ClientInfo) (RegistrationResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return RegistrationResult{}, err
	}
	source, err = r.normalizeSource(source)
	if err != nil {
		return RegistrationResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, found, err := r.store.Get(ctx, normalized)
	if err != nil {
		return RegistrationResult{}, fmt.Errorf("failed to look up signup: %w", err)
	}

	outcome := decide(rec, found)
	switch outcome {
	case OutcomeDuplicate:
		var total int
		if r.unranked || rec.Position < 1 {
			// an earlier write landed but its ranking did not
			active, err := r.recomputePositions(ctx)
			if err != nil {
				return RegistrationResult{}, err
			}
			rec = rankOf(active, rec)
			total = len(active)
		} else {
			records, err := r.store.List(ctx)
			if err != nil {
				return RegistrationResult{}, fmt.Errorf("failed to list signups: %w", err)
			}
			total = len(activeOnly(records))
		}
		return RegistrationResult{
			Outcome: outcome,
			Record:  rec,
			Total:   total,
			Message: fmt.Sprintf("You're already on our waitlist! We'll notify you when %s launches.", r.productName),
		}, nil

	case OutcomeReactivated:
		now := r.now()
		rec.IsActive = true
		rec.Timestamp = now
		rec.UpdatedAt = now
		rec.Source = source
		if err := r.store.Update(ctx, rec); err != nil {
			return RegistrationResult{}, fmt.Errorf("failed to reactivate signup: %w", err)
		}
		r.unranked = true

	case OutcomeCreated:
		now := r.now()
		rec, err = r.store.Insert(ctx, models.SignupRecord{
			Email:     normalized,
			Source:    source,
			Timestamp: now,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			IPHash:    client.IPHash,
			UserAgent: client.UserAgent,
		})
		if err != nil {
			return RegistrationResult{}, fmt.Errorf("failed to insert signup: %w", err)
		}
		r.unranked = true
	}

	active, err := r.recomputePositions(ctx)
	if err != nil {
		return RegistrationResult{}, err
	}
	rec = rankOf(active, rec)

	res := RegistrationResult{Outcome: outcome, Record: rec, Total: len(active)}
	if outcome == OutcomeReactivated {
		res.Message = fmt.Sprintf("🎉 Welcome back! You're #%d on the %s waitlist.", rec.Position, r.productName)
	} else {
		res.Message = fmt.Sprintf("🎉 You're in! You're #%d on the %s waitlist. We'll notify you when we launch!", rec.Position, r.productName)
	}
	return res, nil
}

// recomputePositions ranks every active record by timestamp and writes the
// new positions back. Returns the active records in rank order.
func (r *Registry) recomputePositions(ctx context.Context) ([]models.SignupRecord, error) {
	records, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}

	active := activeOnly(records)
	sort.SliceStable(active, func(i, j int) bool {
		if !active[i].Timestamp.Equal(active[j].Timestamp) {
			return active[i].Timestamp.Before(active[j].Timestamp)
		}
		return active[i].ID < active[j].ID
	})

	positions := make(map[int64]int, len(active))
	for i := range active {
		active[i].Position = i + 1
		positions[active[i].ID] = i + 1
	}

	if err := r.store.SetPositions(ctx, positions); err != nil {
		return nil, fmt.Errorf("failed to update positions: %w", err)
	}
	r.unranked = false
	return active, nil
}

// rankOf returns rec as it appears in the ranked active list
func rankOf(active []models.SignupRecord, rec models.SignupRecord) models.SignupRecord {
	for _, a := range active {
		if a.ID == rec.ID {
			return a
		}
	}
	return rec
}

// Unsubscribe marks the active record for email inactive. Positions of the
// remaining records are left alone until the next registration.
func (r *Registry) Unsubscribe(ctx context.Context, email string) (models.SignupRecord, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return models.SignupRecord{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, found, err := r.store.Get(ctx, normalized)
	if err != nil {
		return models.SignupRecord{}, fmt.Errorf("failed to look up signup: %w", err)
	}
	if !found || !rec.IsActive {
		return models.SignupRecord{}, ErrNotFound
	}

	rec.IsActive = false
	rec.UpdatedAt = r.now()
	if err := r.store.Update(ctx, rec); err != nil {
		return models.SignupRecord{}, fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return rec, nil
}

// Lookup returns the active record for email and the current active total
func (r *Registry) Lookup(ctx context.Context, email string) (PositionResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return PositionResult{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.List(ctx)
	if err != nil {
		return PositionResult{}, fmt.Errorf("failed to list signups: %w", err)
	}

	active := activeOnly(records)
	for _, rec := range active {
		if rec.Email == normalized {
			return PositionResult{Record: rec, Total: len(active)}, nil
		}
	}
	return PositionResult{}, ErrNotFound
}

// Stats aggregates over active records only, except Inactive.
func (r *Registry) Stats(ctx context.Context) (StatsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.List(ctx)
	if err != nil {
		return StatsSnapshot{}, fmt.Errorf("failed to list signups: %w", err)
	}

	now := r.clock().UTC()
	weekAgo := now.Add(-recentWindow)
	monthAgo := now.AddDate(0, 0, -averageWindowDays)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	active := activeOnly(records)
	snap := StatsSnapshot{
		Total:    len(active),
		Inactive: len(records) - len(active),
	}

	var lastMonth int
	bySource := make(map[string]int)
	for _, rec := range active {
		if !rec.Timestamp.Before(weekAgo) {
			snap.Recent++
		}
		if !rec.Timestamp.Before(midnight) {
			snap.Today++
		}
		if !rec.Timestamp.Before(monthAgo) {
			lastMonth++
		}
		bySource[rec.Source]++
	}
	snap.AverageDaily = math.Round(float64(lastMonth)/averageWindowDays*100) / 100
	snap.TopSources = topSources(bySource, topSourcesLimit)

	sort.SliceStable(active, func(i, j int) bool {
		if !active[i].Timestamp.Equal(active[j].Timestamp) {
			return active[i].Timestamp.After(active[j].Timestamp)
		}
		return active[i].ID > active[j].ID
	})
	if len(active) > latestLimit {
		active = active[:latestLimit]
	}
	snap.Latest = make([]models.SignupSummary, 0, len(active))
	for _, rec := range active {
		snap.Latest = append(snap.Latest, models.SignupSummary{
			Email:     rec.Email,
			Timestamp: rec.Timestamp,
			Source:    rec.Source,
			Position:  rec.Position,
		})
	}

	return snap, nil
}

// Entries pages through records ordered by position. Inactive records, when
// included, follow the active ones in id order.
func (r *Registry) Entries(ctx context.Context, q EntryQuery) ([]models.SignupRecord, error) {
	if q.Limit == 0 {
		q.Limit = DefaultEntriesLimit
	}
	if q.Limit < 1 || q.Limit > MaxEntriesLimit {
		return nil, invalid("limit must be between 1 and %d", MaxEntriesLimit)
	}
	if q.Skip < 0 {
		return nil, invalid("skip must not be negative")
	}

	r.mu.Lock()
	records, err := r.store.List(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}

	ordered := orderedEntries(records, q.ActiveOnly)
	if q.Skip >= len(ordered) {
		return []models.SignupRecord{}, nil
	}
	ordered = ordered[q.Skip:]
	if len(ordered) > q.Limit {
		ordered = ordered[:q.Limit]
	}
	return ordered, nil
}

func orderedEntries(records []models.SignupRecord, onlyActive bool) []models.SignupRecord {
	out := make([]models.SignupRecord, 0, len(records))
	for _, rec := range records {
		if onlyActive && !rec.IsActive {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		if a.IsActive && a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
	return out
}

func activeOnly(records []models.SignupRecord) []models.SignupRecord {
	active := make([]models.SignupRecord, 0, len(records))
	for _, rec := range records {
		if rec.IsActive {
			active = append(active, rec)
		}
	}
	return active
}

func topSources(counts map[string]int, limit int) []models.SourceCount {
	out := make([]models.SourceCount, 0, len(counts))
	for source, n := range counts {
		out = append(out, models.SourceCount{Source: source, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
