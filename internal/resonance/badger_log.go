// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package resonance

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key layout: records are stored under a timestamp-ordered key so iteration
// yields append order. The log is append-only; keys are never overwritten or
// deleted.
const recordKeyPrefix = "resonance:"

// BadgerLog is a BadgerDB-backed append-only Log, durable across restarts.
type BadgerLog struct {
	db *badger.DB
}

// NewBadgerLog creates a Badger-backed log on an open database.
func NewBadgerLog(db *badger.DB) *BadgerLog {
	return &BadgerLog{db: db}
}

// Append stores a record under a timestamp-ordered key.
func (l *BadgerLog) Append(_ context.Context, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	key := []byte(fmt.Sprintf("%s%020d:%s", recordKeyPrefix, rec.Timestamp.UnixNano(), rec.ID))
	return l.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set record: %w", err)
		}
		return nil
	})
}

// All returns every record in key (append) order.
func (l *BadgerLog) All(_ context.Context) ([]Record, error) {
	return l.scan(func(Record) bool { return true })
}

// ForUser returns a user's records in append order. The log is scanned in
// full; resonance volumes are per-user session counts, so this stays cheap.
func (l *BadgerLog) ForUser(_ context.Context, userID string) ([]Record, error) {
	return l.scan(func(r Record) bool { return r.UserID == userID })
}

func (l *BadgerLog) scan(keep func(Record) bool) ([]Record, error) {
	var out []Record

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return fmt.Errorf("unmarshal record: %w", err)
				}
				if keep(rec) {
					out = append(out, rec)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
