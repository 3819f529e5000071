// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package recommend scores a game catalog against a predicted mood using
// closed genre and tag weight tables, scaled by forecast confidence. Scoring
// is deterministic and side-effect-free, so ranking a catalog is safe to fan
// out per game if throughput ever demands it.
package recommend

import (
	"time"

	"github.com/playatlas/playatlas/internal/persona"
)

// Game is a catalog entry eligible for recommendation.
type Game struct {
	// ID is the catalog game identifier.
	ID string `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Genres lists the game's genre IDs.
	Genres []string `json:"genres"`

	// Tags lists the game's descriptive tags.
	Tags []string `json:"tags,omitempty"`

	// PlatformCode is the platform the game is played on.
	PlatformCode string `json:"platform_code,omitempty"`
}

// ScoredGame is a game with its recommendation score and reasoning.
type ScoredGame struct {
	// Game is the catalog entry.
	Game Game `json:"game"`

	// Score is the confidence-scaled recommendation score in [0, 100].
	Score float64 `json:"score"`

	// MoodMatch is the raw mood fit before confidence scaling, in [0, 100].
	MoodMatch float64 `json:"mood_match"`

	// Reasons holds 1-3 human-readable explanations; never empty.
	Reasons []string `json:"reasons"`
}

// Response is a ranked recommendation list.
type Response struct {
	// Items is the ranked list, best first.
	Items []ScoredGame `json:"items"`

	// Mood is the predicted mood the catalog was scored against.
	Mood persona.Mood `json:"mood"`

	// Confidence is the forecast confidence used for scaling.
	Confidence float64 `json:"confidence"`

	// Message explains an empty result; empty otherwise.
	Message string `json:"message,omitempty"`

	// Metadata carries request diagnostics.
	Metadata Metadata `json:"metadata"`
}

// Metadata carries timing and diagnostic information for a ranking request.
type Metadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Candidates is the number of catalog games considered.
	Candidates int `json:"candidates"`

	// LatencyMS is the ranking latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// GeneratedAt is when the response was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// Event records what was recommended and how the user responded. Events feed
// the session resonance loop.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`

	// UserID is the user the recommendation was made for.
	UserID string `json:"user_id"`

	// GameID is the recommended game.
	GameID string `json:"game_id"`

	// Mood is the predicted mood behind the recommendation.
	Mood persona.Mood `json:"mood"`

	// Score is the score the game was recommended at.
	Score float64 `json:"score"`

	// Accepted is whether the user clicked/launched the recommendation,
	// nil while unknown.
	Accepted *bool `json:"accepted,omitempty"`

	// Timestamp is when the recommendation was shown.
	Timestamp time.Time `json:"timestamp"`
}
