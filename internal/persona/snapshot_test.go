// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/features"
	"github.com/playatlas/playatlas/internal/signals"
)

func testBuilder(now time.Time) *Builder {
	b := NewBuilder(DefaultMoodStaleness, zerolog.New(io.Discard))
	b.now = func() time.Time { return now }
	return b
}

func TestBuildSnapshotNilSignals(t *testing.T) {
	b := testBuilder(time.Now())

	_, err := b.BuildSnapshot(nil, nil)
	if !errors.Is(err, ErrNilSignals) {
		t.Errorf("BuildSnapshot(nil) error = %v, want ErrNilSignals", err)
	}
}

func TestBuildSnapshotEmptyWindowDegrades(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	b := testBuilder(now)

	snap, err := b.BuildSnapshot([]signals.Signal{}, nil)
	if err != nil {
		t.Fatalf("BuildSnapshot(empty) error: %v", err)
	}

	if snap.Confidence != 0 {
		t.Errorf("confidence = %f, want 0 for empty window", snap.Confidence)
	}
	if snap.Features.Vector != features.Neutral() {
		t.Errorf("features = %+v, want neutral", snap.Features.Vector)
	}
	if snap.Traits.Archetype != ArchetypeWanderer {
		t.Errorf("archetype = %v, want wanderer default", snap.Traits.Archetype)
	}
	if snap.Mood != nil {
		t.Errorf("mood = %+v, want nil", snap.Mood)
	}
	if snap.Narrative.Summary == "" {
		t.Error("narrative summary is empty")
	}
	if !snap.GeneratedAt.Equal(now) {
		t.Errorf("generatedAt = %v, want %v", snap.GeneratedAt, now)
	}
	if snap.HighConfidence() {
		t.Error("empty-window snapshot reports high confidence")
	}
}

func TestBuildSnapshotCarriesFreshMood(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	b := testBuilder(now)

	sigs := repeatSessions(5, signals.SessionPayload{
		GameID: "g1", DurationMin: 60, Type: signals.SessionMain, Completed: true,
	})
	entry := &MoodState{Mood: MoodFocused, Intensity: 7, Timestamp: now.Add(-time.Hour)}

	snap, err := b.BuildSnapshot(sigs, entry)
	if err != nil {
		t.Fatalf("BuildSnapshot() error: %v", err)
	}

	if snap.Mood == nil || snap.Mood.Mood != MoodFocused {
		t.Errorf("mood = %+v, want focused", snap.Mood)
	}
	if snap.Traits.Archetype != ArchetypeAchiever {
		t.Errorf("archetype = %v, want achiever", snap.Traits.Archetype)
	}
}

func TestBuildSnapshotDropsStaleMood(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	b := testBuilder(now)

	sigs := repeatSessions(3, signals.SessionPayload{
		GameID: "g1", DurationMin: 60, Type: signals.SessionMain,
	})
	entry := &MoodState{Mood: MoodChill, Intensity: 5, Timestamp: now.Add(-48 * time.Hour)}

	snap, err := b.BuildSnapshot(sigs, entry)
	if err != nil {
		t.Fatalf("BuildSnapshot() error: %v", err)
	}
	if snap.Mood != nil {
		t.Errorf("mood = %+v, want nil for stale entry", snap.Mood)
	}
}

func TestCombineConfidence(t *testing.T) {
	tests := []struct {
		name    string
		feature float64
		trait   float64
		want    float64
	}{
		{"zero evidence", 0, 0, 0},
		{"feature-dominant blend", 1, 0, 0.6},
		{"trait-only blend", 0, 1, 0.4},
		{"full evidence", 1, 1, 1},
		{"mixed", 0.5, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := combineConfidence(tt.feature, tt.trait)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("combineConfidence(%f, %f) = %f, want %f", tt.feature, tt.trait, got, tt.want)
			}
		})
	}
}

func TestNewBuilderDefaultStaleness(t *testing.T) {
	b := NewBuilder(0, zerolog.New(io.Discard))
	if b.staleness != DefaultMoodStaleness {
		t.Errorf("staleness = %v, want %v", b.staleness, DefaultMoodStaleness)
	}
}
