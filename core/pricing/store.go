// Package pricing - Rate table publication
// Tables are never modified in place. A reload publishes a new snapshot;
// calculations already holding the old pointer finish against it.
package pricing

import (
	"sync"
	"sync/atomic"
	"time"

	"premium-estimator/internal/errors"
)

// Source supplies the rate table snapshot a calculation reads
type Source interface {
	Current() *RateTable
}

// SnapshotMetadata records one publication
type SnapshotMetadata struct {
	Version     string    `json:"version"`
	Hash        string    `json:"hash"`
	PublishedAt time.Time `json:"published_at"`
}

// Store holds the active rate table and swaps it atomically
type Store struct {
	current atomic.Pointer[RateTable]

	mu      sync.Mutex
	history []SnapshotMetadata
	now     func() time.Time
}

// NewStore creates a store publishing initial
func NewStore(initial *RateTable) *Store {
	s := &Store{now: time.Now}
	if initial == nil {
		initial = DefaultRateTable()
	}
	s.current.Store(initial)
	s.record(initial)
	return s
}

// Current returns the active snapshot. Never nil.
func (s *Store) Current() *RateTable {
	return s.current.Load()
}

// Publish makes t the active snapshot and returns the one it replaced.
// Publishing a table with the same content hash is a no-op and reports changed=false.
func (s *Store) Publish(t *RateTable) (previous *RateTable, changed bool, err error) {
	if t == nil {
		return nil, false, errors.Config("cannot publish a nil rate table")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous = s.current.Load()
	if previous.Hash() == t.Hash() && previous.Version() == t.Version() {
		return previous, false, nil
	}

	s.current.Store(t)
	s.recordLocked(t)
	return previous, true, nil
}

// History lists publications, oldest first
func (s *Store) History() []SnapshotMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SnapshotMetadata, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) record(t *RateTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordLocked(t)
}

func (s *Store) recordLocked(t *RateTable) {
	s.history = append(s.history, SnapshotMetadata{
		Version:     t.Label(),
		Hash:        t.Hash().Hex(),
		PublishedAt: s.now().UTC(),
	})
}
