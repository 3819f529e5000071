// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package resonance

import (
	"context"
	"errors"
	"sync"
)

// ErrNilRecord is returned when a nil record is appended.
var ErrNilRecord = errors.New("resonance: nil record")

// MemoryLog is an in-memory append-only Log with a single-writer mutex.
type MemoryLog struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryLog creates an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append adds a record to the log.
func (l *MemoryLog) Append(_ context.Context, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, *rec)
	return nil
}

// All returns every record in append order.
func (l *MemoryLog) All(_ context.Context) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out, nil
}

// ForUser returns a user's records in append order.
func (l *MemoryLog) ForUser(_ context.Context, userID string) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Record
	for _, r := range l.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
