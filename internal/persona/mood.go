// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package persona derives stable personality traits and a transient mood
// context from behavioral signals, assembles a deterministic narrative, and
// orchestrates the full snapshot build.
package persona

import (
	"fmt"
	"time"
)

// Mood is the canonical closed mood vocabulary. Every stage of the pipeline
// (mood entries, forecasting, recommendation weight tables, resonance
// aggregation) keys off this enum.
type Mood int

const (
	// MoodUnknown is the zero value for unrecognized or absent moods.
	MoodUnknown Mood = iota
	// MoodCompetitive favors ranked and versus play.
	MoodCompetitive
	// MoodChill favors relaxed, low-pressure play.
	MoodChill
	// MoodEnergetic favors fast, high-tempo play.
	MoodEnergetic
	// MoodFocused favors deep, demanding play.
	MoodFocused
	// MoodSocial favors play with other people.
	MoodSocial
	// MoodCreative favors building and expression.
	MoodCreative
	// MoodStory favors narrative-driven play.
	MoodStory
	// MoodExploratory favors discovery and open worlds.
	MoodExploratory
)

// Moods lists every known mood in a stable order.
var Moods = []Mood{
	MoodCompetitive, MoodChill, MoodEnergetic, MoodFocused,
	MoodSocial, MoodCreative, MoodStory, MoodExploratory,
}

// String returns the canonical mood name.
func (m Mood) String() string {
	switch m {
	case MoodCompetitive:
		return "competitive"
	case MoodChill:
		return "chill"
	case MoodEnergetic:
		return "energetic"
	case MoodFocused:
		return "focused"
	case MoodSocial:
		return "social"
	case MoodCreative:
		return "creative"
	case MoodStory:
		return "story"
	case MoodExploratory:
		return "exploratory"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so moods serialize as their
// canonical names, including as JSON map keys.
func (m Mood) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mood) UnmarshalText(text []byte) error {
	parsed, err := ParseMood(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMood converts a mood name to its enum value.
func ParseMood(s string) (Mood, error) {
	switch s {
	case "competitive":
		return MoodCompetitive, nil
	case "chill":
		return MoodChill, nil
	case "energetic":
		return MoodEnergetic, nil
	case "focused":
		return MoodFocused, nil
	case "social":
		return MoodSocial, nil
	case "creative":
		return MoodCreative, nil
	case "story":
		return MoodStory, nil
	case "exploratory":
		return MoodExploratory, nil
	default:
		return MoodUnknown, fmt.Errorf("unknown mood %q", s)
	}
}

// DefaultMoodStaleness is how long a mood entry stays usable as context.
const DefaultMoodStaleness = 24 * time.Hour

// MoodState is the most recent known mood, explicit or inferred.
type MoodState struct {
	// Mood is the canonical mood.
	Mood Mood `json:"mood"`

	// Intensity is the mood strength in [1, 10].
	Intensity int `json:"intensity"`

	// Timestamp is when the mood was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// Stale reports whether the mood is older than the recency window and must
// be excluded from context.
func (s MoodState) Stale(now time.Time, window time.Duration) bool {
	if window <= 0 {
		window = DefaultMoodStaleness
	}
	return now.Sub(s.Timestamp) > window
}

// MoodEntry is the collaborator input for an explicit user mood entry.
type MoodEntry struct {
	// Mood is the canonical mood name.
	Mood string `json:"mood" validate:"required"`

	// Intensity is the mood strength in [1, 10].
	Intensity int `json:"intensity" validate:"gte=1,lte=10"`

	// Timestamp is when the entry was made.
	Timestamp time.Time `json:"timestamp" validate:"required"`

	// Context is optional free-form context for the entry.
	Context string `json:"context,omitempty"`

	// GameID is the related catalog game, if any.
	GameID string `json:"game_id,omitempty"`
}

// MoodContext packages traits with the freshest usable mood. It is produced
// by pure packaging; no inference happens here.
type MoodContext struct {
	// Traits is the derived personality profile.
	Traits Traits `json:"traits"`

	// Mood is the current mood, nil when absent or stale.
	Mood *MoodState `json:"mood,omitempty"`
}

// BuildMoodContext merges traits with the user's latest mood entry. A nil
// entry or an entry older than the staleness window yields a context with no
// mood. Intensity is clamped into [1, 10] defensively.
func BuildMoodContext(traits Traits, entry *MoodState, now time.Time, staleness time.Duration) MoodContext {
	ctx := MoodContext{Traits: traits}
	if entry == nil || entry.Mood == MoodUnknown || entry.Stale(now, staleness) {
		return ctx
	}

	state := *entry
	if state.Intensity < 1 {
		state.Intensity = 1
	}
	if state.Intensity > 10 {
		state.Intensity = 10
	}
	ctx.Mood = &state
	return ctx
}
