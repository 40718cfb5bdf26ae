// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/SiikHub/SiikHubWaitList/models"
)

var ErrEmailExists = errors.New("email already has a record")

// Store holds signup records. Implementations must be safe for concurrent
// use; the Registry still serializes its own read-modify-write sequences.
type Store interface {
	// Get finds the record for a normalized email, active or not
	Get(ctx context.Context, email string) (models.SignupRecord, bool, error)
	// Insert allocates the next id and stores rec
	Insert(ctx context.Context, rec models.SignupRecord) (models.SignupRecord, error)
	// Update overwrites source, timestamp, active flag and updated_at by id
	Update(ctx context.Context, rec models.SignupRecord) error
	// List returns every record in id order
	List(ctx context.Context) ([]models.SignupRecord, error)
	// SetPositions overwrites position for each id in the map
	SetPositions(ctx context.Context, positions map[int64]int) error
}

// MemoryStore keeps records in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.SignupRecord
	byEmail map[string]int
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]int),
		nextID:  1,
	}
}

func (s *MemoryStore) Get(ctx context.Context, email string) (models.SignupRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.SignupRecord{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byEmail[email]
	if !ok {
		return models.SignupRecord{}, false, nil
	}
	return s.records[i], true, nil
}

func (s *MemoryStore) Insert(ctx context.Context, rec models.SignupRecord) (models.SignupRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.SignupRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[rec.Email]; ok {
		return models.SignupRecord{}, fmt.Errorf("%w: %s", ErrEmailExists, rec.Email)
	}

	rec.ID = s.nextID
	s.nextID++
	s.byEmail[rec.Email] = len(s.records)
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *MemoryStore) Update(ctx context.Context, rec models.SignupRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byEmail[rec.Email]
	if !ok || s.records[i].ID != rec.ID {
		return fmt.Errorf("no signup with id %d", rec.ID)
	}

	cur := &s.records[i]
	cur.Source = rec.Source
	cur.Timestamp = rec.Timestamp
	cur.IsActive = rec.IsActive
	cur.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.SignupRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SignupRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) SetPositions(ctx context.Context, positions map[int64]int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if pos, ok := positions[s.records[i].ID]; ok {
			s.records[i].Position = pos
		}
	}
	return nil
}
