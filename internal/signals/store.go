// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package signals

import (
	"sort"
	"sync"
	"time"
)

// DefaultMaxAge is how long signals are retained before pruning.
const DefaultMaxAge = 7 * 24 * time.Hour

// Store is the repository interface for per-user signal buffers.
// Implementations must prune by age on insert and never mutate a stored
// signal.
type Store interface {
	// Add appends signals to a user's buffer, pruning entries older than
	// the store's max age.
	Add(userID string, sigs ...Signal)

	// Recent returns the user's signals no older than maxAge, sorted
	// newest-first.
	Recent(userID string, maxAge time.Duration) []Signal

	// Count returns the number of buffered signals for a user.
	Count(userID string) int
}

// MemoryStore is an in-memory Store with a single-writer mutex per store.
// Pruning and appending are serialized so the buffer is always consistent.
type MemoryStore struct {
	mu     sync.Mutex
	maxAge time.Duration
	byUser map[string][]Signal

	// now is overridable for tests.
	now func() time.Time
}

// NewMemoryStore creates a memory store with the given retention.
// A non-positive maxAge falls back to DefaultMaxAge.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &MemoryStore{
		maxAge: maxAge,
		byUser: make(map[string][]Signal),
		now:    time.Now,
	}
}

// Add appends signals to the user's buffer and prunes entries older than
// the store's retention window.
func (s *MemoryStore) Add(userID string, sigs ...Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := append(s.byUser[userID], sigs...)

	cutoff := s.now().Add(-s.maxAge)
	kept := buf[:0]
	for _, sig := range buf {
		if !sig.Timestamp.Before(cutoff) {
			kept = append(kept, sig)
		}
	}
	s.byUser[userID] = kept
}

// Recent returns the user's signals within maxAge, newest-first.
func (s *MemoryStore) Recent(userID string, maxAge time.Duration) []Signal {
	if maxAge <= 0 {
		maxAge = s.maxAge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	var out []Signal
	for _, sig := range s.byUser[userID] {
		if !sig.Timestamp.Before(cutoff) {
			out = append(out, sig)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Count returns the number of buffered signals for a user.
func (s *MemoryStore) Count(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser[userID])
}
