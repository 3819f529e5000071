// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"testing"
	"time"
)

func TestParseMoodRoundTrip(t *testing.T) {
	for _, mood := range Moods {
		parsed, err := ParseMood(mood.String())
		if err != nil {
			t.Errorf("ParseMood(%q) error: %v", mood.String(), err)
			continue
		}
		if parsed != mood {
			t.Errorf("ParseMood(%q) = %v, want %v", mood.String(), parsed, mood)
		}
	}
}

func TestParseMoodUnknown(t *testing.T) {
	for _, s := range []string{"", "rage", "Competitive", "CHILL"} {
		if mood, err := ParseMood(s); err == nil {
			t.Errorf("ParseMood(%q) = %v, want error", s, mood)
		}
	}
}

func TestMoodTextMarshalling(t *testing.T) {
	data, err := MoodFocused.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	if string(data) != "focused" {
		t.Errorf("MarshalText() = %q, want focused", data)
	}

	var m Mood
	if err := m.UnmarshalText([]byte("chill")); err != nil {
		t.Fatalf("UnmarshalText() error: %v", err)
	}
	if m != MoodChill {
		t.Errorf("UnmarshalText(chill) = %v, want MoodChill", m)
	}
}

func TestMoodStateStale(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"fresh", time.Hour, false},
		{"at window edge", 24 * time.Hour, false},
		{"past window", 24*time.Hour + time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := MoodState{Mood: MoodChill, Intensity: 5, Timestamp: now.Add(-tt.age)}
			if got := state.Stale(now, 24*time.Hour); got != tt.want {
				t.Errorf("Stale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildMoodContext(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	traits := Traits{Archetype: ArchetypeAchiever}

	t.Run("nil entry yields no mood", func(t *testing.T) {
		ctx := BuildMoodContext(traits, nil, now, 24*time.Hour)
		if ctx.Mood != nil {
			t.Errorf("Mood = %+v, want nil", ctx.Mood)
		}
	})

	t.Run("stale entry excluded", func(t *testing.T) {
		entry := &MoodState{Mood: MoodChill, Intensity: 5, Timestamp: now.Add(-48 * time.Hour)}
		ctx := BuildMoodContext(traits, entry, now, 24*time.Hour)
		if ctx.Mood != nil {
			t.Errorf("Mood = %+v, want nil for stale entry", ctx.Mood)
		}
	})

	t.Run("fresh entry carried through", func(t *testing.T) {
		entry := &MoodState{Mood: MoodFocused, Intensity: 7, Timestamp: now.Add(-time.Hour)}
		ctx := BuildMoodContext(traits, entry, now, 24*time.Hour)
		if ctx.Mood == nil || ctx.Mood.Mood != MoodFocused || ctx.Mood.Intensity != 7 {
			t.Errorf("Mood = %+v, want focused at 7", ctx.Mood)
		}
	})

	t.Run("unknown mood excluded", func(t *testing.T) {
		entry := &MoodState{Mood: MoodUnknown, Intensity: 5, Timestamp: now}
		ctx := BuildMoodContext(traits, entry, now, 24*time.Hour)
		if ctx.Mood != nil {
			t.Errorf("Mood = %+v, want nil for unknown mood", ctx.Mood)
		}
	})

	t.Run("intensity clamped into range", func(t *testing.T) {
		entry := &MoodState{Mood: MoodChill, Intensity: 15, Timestamp: now}
		ctx := BuildMoodContext(traits, entry, now, 24*time.Hour)
		if ctx.Mood == nil || ctx.Mood.Intensity != 10 {
			t.Errorf("Intensity = %+v, want clamped to 10", ctx.Mood)
		}

		entry = &MoodState{Mood: MoodChill, Intensity: 0, Timestamp: now}
		ctx = BuildMoodContext(traits, entry, now, 24*time.Hour)
		if ctx.Mood == nil || ctx.Mood.Intensity != 1 {
			t.Errorf("Intensity = %+v, want clamped to 1", ctx.Mood)
		}
	})

	t.Run("original entry not mutated", func(t *testing.T) {
		entry := &MoodState{Mood: MoodChill, Intensity: 15, Timestamp: now}
		BuildMoodContext(traits, entry, now, 24*time.Hour)
		if entry.Intensity != 15 {
			t.Errorf("input entry mutated: intensity = %d", entry.Intensity)
		}
	})
}
