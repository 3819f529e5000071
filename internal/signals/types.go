// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package signals converts raw play-behavior records (sessions, catalog
// lookups, integration activity) into a flat stream of timestamped, weighted
// behavioral signals. Signals are immutable once created and are retained in
// a rolling, age-pruned buffer per user.
package signals

import (
	"time"
)

// Source identifies the family a behavioral signal belongs to.
type Source int

const (
	// SourceSession is a per-session signal (duration, completion, type).
	SourceSession Source = iota
	// SourceGenre is a genre-transition signal between adjacent sessions.
	SourceGenre
	// SourcePlaytime is a day-of-week playtime pattern signal.
	SourcePlaytime
	// SourcePlatform is a platform-switch signal between adjacent sessions.
	SourcePlatform
	// SourceIntegration is an external integration activity signal.
	SourceIntegration
)

// String returns a human-readable name for the signal source.
func (s Source) String() string {
	switch s {
	case SourceSession:
		return "session"
	case SourceGenre:
		return "genre"
	case SourcePlaytime:
		return "playtime"
	case SourcePlatform:
		return "platform"
	case SourceIntegration:
		return "integration"
	default:
		return "unknown"
	}
}

// Signal is a single timestamped, weighted behavioral observation.
// Exactly one payload pointer is set, matching Source. Signals are
// immutable after creation; never modify a payload once emitted.
type Signal struct {
	// Timestamp is when the underlying behavior occurred.
	Timestamp time.Time `json:"timestamp"`

	// Source identifies the signal family and which payload is set.
	Source Source `json:"source"`

	// Weight is the signal's relative importance in [0, 1].
	Weight float64 `json:"weight"`

	// Session is set when Source == SourceSession.
	Session *SessionPayload `json:"session,omitempty"`

	// GenreShift is set when Source == SourceGenre.
	GenreShift *GenreShiftPayload `json:"genre_shift,omitempty"`

	// Playtime is set when Source == SourcePlaytime.
	Playtime *PlaytimePayload `json:"playtime,omitempty"`

	// PlatformSwitch is set when Source == SourcePlatform.
	PlatformSwitch *PlatformSwitchPayload `json:"platform_switch,omitempty"`

	// Integration is set when Source == SourceIntegration.
	Integration *IntegrationPayload `json:"integration,omitempty"`
}

// SessionType classifies a play session.
type SessionType string

const (
	// SessionMain is focused progression through primary content.
	SessionMain SessionType = "main"
	// SessionSide is side content or completionist play.
	SessionSide SessionType = "side"
	// SessionCasual is short, low-commitment play.
	SessionCasual SessionType = "casual"
	// SessionSocial is play centered on other people.
	SessionSocial SessionType = "social"
	// SessionCoop is cooperative multiplayer play.
	SessionCoop SessionType = "coop"
	// SessionCompetitive is ranked or versus play.
	SessionCompetitive SessionType = "competitive"
)

// Social reports whether the session type involves other players.
func (t SessionType) Social() bool {
	return t == SessionSocial || t == SessionCoop
}

// SessionPayload carries per-session behavior.
// Achievement signals reuse this payload with Achievements > 0 and
// DurationMin zeroed so duration statistics only count real sessions.
type SessionPayload struct {
	// GameID is the catalog ID of the game played.
	GameID string `json:"game_id"`

	// DurationMin is the session length in minutes.
	DurationMin float64 `json:"duration_min"`

	// Completed indicates the session ended at a natural completion point.
	Completed bool `json:"completed"`

	// Type classifies the session.
	Type SessionType `json:"type"`

	// Genre is the primary genre of the game played.
	Genre string `json:"genre,omitempty"`

	// Intensity is the mood intensity reported for the session (1-10),
	// zero when the session carried no mood.
	Intensity int `json:"intensity,omitempty"`

	// Achievements is the number of achievements earned in the session.
	Achievements int `json:"achievements,omitempty"`
}

// GenreShiftPayload carries a genre transition between adjacent sessions.
type GenreShiftPayload struct {
	// FromGenre is the primary genre of the earlier session.
	FromGenre string `json:"from_genre"`

	// ToGenre is the primary genre of the later session.
	ToGenre string `json:"to_genre"`

	// Gap is the time between the two session starts.
	Gap time.Duration `json:"gap"`
}

// PlaytimePayload carries a day-of-week play pattern.
type PlaytimePayload struct {
	// Day is the day of week the pattern covers.
	Day time.Weekday `json:"day"`

	// Sessions is the number of sessions on that day.
	Sessions int `json:"sessions"`

	// MeanDurationMin is the mean session duration in minutes.
	MeanDurationMin float64 `json:"mean_duration_min"`

	// Variance is the population variance of session durations.
	Variance float64 `json:"variance"`

	// Consistency is 1 - variance/mean^2, clamped to [0, 1].
	// Higher values indicate more regular session lengths.
	Consistency float64 `json:"consistency"`
}

// PlatformSwitchPayload carries a platform change between adjacent sessions.
type PlatformSwitchPayload struct {
	// FromPlatform is the platform code of the earlier session.
	FromPlatform string `json:"from_platform"`

	// ToPlatform is the platform code of the later session.
	ToPlatform string `json:"to_platform"`

	// Latency is the time between the two session starts.
	Latency time.Duration `json:"latency"`

	// PreferenceRatio is occurrences of the destination platform divided
	// by total sessions.
	PreferenceRatio float64 `json:"preference_ratio"`
}

// IntegrationPayload carries an external integration event.
type IntegrationPayload struct {
	// Type is the integration event type (achievement, session_start, ...).
	Type string `json:"type"`

	// Platform is the integration source (steam, discord, youtube).
	Platform string `json:"platform,omitempty"`

	// GameID is the related catalog game, if any.
	GameID string `json:"game_id,omitempty"`

	// SocialInteraction is true for event types that imply interaction
	// with other players.
	SocialInteraction bool `json:"social_interaction"`
}

// SessionRecord is the collaborator input describing one play session.
type SessionRecord struct {
	// GameID references the catalog game played.
	GameID string `json:"game_id" validate:"required"`

	// StartTime is when the session began.
	StartTime time.Time `json:"start_time" validate:"required"`

	// EndTime is when the session ended, nil for in-progress sessions.
	EndTime *time.Time `json:"end_time,omitempty"`

	// DurationMin is the session length in minutes.
	DurationMin float64 `json:"duration_min" validate:"gte=0"`

	// Mood is the mood reported for the session, empty when absent.
	Mood string `json:"mood,omitempty"`

	// MoodIntensity is the reported mood intensity (1-10), zero when absent.
	MoodIntensity int `json:"mood_intensity,omitempty" validate:"gte=0,lte=10"`

	// SessionType classifies the session.
	SessionType SessionType `json:"session_type" validate:"required"`

	// Completed indicates the session ended at a completion point.
	Completed bool `json:"completed"`

	// Achievements lists achievements earned during the session.
	Achievements []string `json:"achievements,omitempty"`
}

// GameRecord is the collaborator input describing a catalog game.
type GameRecord struct {
	// ID is the catalog game identifier.
	ID string `json:"id" validate:"required"`

	// Genres lists the game's genre IDs, primary first.
	Genres []string `json:"genres"`

	// PlatformCode is the platform the game is played on.
	PlatformCode string `json:"platform_code,omitempty"`
}

// PrimaryGenre returns the game's first genre, or empty when untagged.
func (g GameRecord) PrimaryGenre() string {
	if len(g.Genres) == 0 {
		return ""
	}
	return g.Genres[0]
}

// IntegrationActivity is the collaborator input for one integration event.
type IntegrationActivity struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp" validate:"required"`

	// Type is the integration event type.
	Type string `json:"type" validate:"required"`

	// Platform is the integration source.
	Platform string `json:"platform,omitempty"`

	// GameID is the related catalog game, if any.
	GameID string `json:"game_id,omitempty"`
}
