// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package resonance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/playatlas/playatlas/internal/persona"
)

func record(id, userID string, ts time.Time) *Record {
	return &Record{
		ID:            id,
		SessionID:     "s-" + id,
		UserID:        userID,
		PredictedMood: persona.MoodChill,
		ActualMood:    persona.MoodChill,
		Score:         0.8,
		Timestamp:     ts,
	}
}

func TestMemoryLogAppendOrder(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := log.Append(ctx, record(id, "u1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Append(%s) error: %v", id, err)
		}
	}

	all, err := log.All(ctx)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("All() = %d records, want 3", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].ID != want {
			t.Errorf("all[%d] = %s, want %s", i, all[i].ID, want)
		}
	}
}

func TestMemoryLogForUser(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()
	now := time.Now()

	log.Append(ctx, record("a", "u1", now))
	log.Append(ctx, record("b", "u2", now))
	log.Append(ctx, record("c", "u1", now))

	recs, err := log.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ForUser() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ForUser(u1) = %d records, want 2", len(recs))
	}
	if recs[0].ID != "a" || recs[1].ID != "c" {
		t.Errorf("ForUser(u1) order = %s, %s, want a, c", recs[0].ID, recs[1].ID)
	}
}

func TestMemoryLogRejectsNilRecord(t *testing.T) {
	log := NewMemoryLog()
	if err := log.Append(context.Background(), nil); !errors.Is(err, ErrNilRecord) {
		t.Errorf("Append(nil) error = %v, want ErrNilRecord", err)
	}
}

func TestMemoryLogAllReturnsCopy(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	log.Append(ctx, record("a", "u1", time.Now()))

	all, _ := log.All(ctx)
	all[0].Score = -1

	again, _ := log.All(ctx)
	if again[0].Score != 0.8 {
		t.Errorf("log record mutated through returned slice: score = %f", again[0].Score)
	}
}

func testBadgerLog(t *testing.T) *BadgerLog {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBadgerLog(db)
}

func TestBadgerLogRoundTrip(t *testing.T) {
	log := testBadgerLog(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	// Appended out of timestamp order; the key layout restores it.
	if err := log.Append(ctx, record("late", "u1", base.Add(time.Hour))); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if err := log.Append(ctx, record("early", "u1", base)); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	all, err := log.All(ctx)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All() = %d records, want 2", len(all))
	}
	if all[0].ID != "early" || all[1].ID != "late" {
		t.Errorf("order = %s, %s, want early, late", all[0].ID, all[1].ID)
	}
	if all[0].PredictedMood != persona.MoodChill {
		t.Errorf("predicted mood = %v, want chill after round trip", all[0].PredictedMood)
	}
	if all[0].Score != 0.8 {
		t.Errorf("score = %f, want 0.8 after round trip", all[0].Score)
	}
}

func TestBadgerLogForUser(t *testing.T) {
	log := testBadgerLog(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	log.Append(ctx, record("a", "u1", base))
	log.Append(ctx, record("b", "u2", base.Add(time.Minute)))
	log.Append(ctx, record("c", "u1", base.Add(2*time.Minute)))

	recs, err := log.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ForUser() error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ForUser(u1) = %d records, want 2", len(recs))
	}
	if recs[0].ID != "a" || recs[1].ID != "c" {
		t.Errorf("ForUser(u1) order = %s, %s, want a, c", recs[0].ID, recs[1].ID)
	}
}

func TestBadgerLogRejectsNilRecord(t *testing.T) {
	log := testBadgerLog(t)
	if err := log.Append(context.Background(), nil); !errors.Is(err, ErrNilRecord) {
		t.Errorf("Append(nil) error = %v, want ErrNilRecord", err)
	}
}

func TestBadgerLogEmpty(t *testing.T) {
	log := testBadgerLog(t)

	all, err := log.All(context.Background())
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("All() = %d records, want 0", len(all))
	}
}
