// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package resonance closes the prediction loop: it records how well mood
// predictions matched real sessions, aggregates per-mood accuracy, and emits
// the confidence adjustments the forecaster consumes. The record log is
// append-only; every aggregate is recomputed from the raw log on each call,
// never maintained as a running total that could drift.
package resonance

import (
	"context"
	"time"

	"github.com/playatlas/playatlas/internal/persona"
)

// Record is one session's resonance outcome. Records are immutable once
// appended.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// SessionID is the completed play session.
	SessionID string `json:"session_id"`

	// UserID is the player.
	UserID string `json:"user_id"`

	// PredictedMood is what the forecaster predicted before the session.
	PredictedMood persona.Mood `json:"predicted_mood"`

	// ActualMood is what the session actually reflected.
	ActualMood persona.Mood `json:"actual_mood"`

	// Score is how well the prediction resonated, in [0, 1].
	Score float64 `json:"score"`

	// Session carries the session telemetry behind the score.
	Session SessionData `json:"session"`

	// Timestamp is when the record was created.
	Timestamp time.Time `json:"timestamp"`
}

// SessionData is the telemetry of the completed session.
type SessionData struct {
	// DurationMin is the session length in minutes.
	DurationMin float64 `json:"duration_min"`

	// Engagement is the measured engagement level in [0, 1].
	Engagement float64 `json:"engagement"`

	// Completed indicates the session ended at a completion point.
	Completed bool `json:"completed"`
}

// Log is the append-only repository for resonance records.
type Log interface {
	// Append adds a record to the log. Records are never mutated after.
	Append(ctx context.Context, rec *Record) error

	// All returns every record in append order.
	All(ctx context.Context) ([]Record, error)

	// ForUser returns a user's records in append order.
	ForUser(ctx context.Context, userID string) ([]Record, error)
}

// Analysis aggregates prediction accuracy over a slice of the log.
type Analysis struct {
	// MoodAccuracy is the average resonance score per predicted mood.
	MoodAccuracy map[persona.Mood]float64 `json:"mood_accuracy"`

	// OverallAccuracy is the average resonance score across all records.
	OverallAccuracy float64 `json:"overall_accuracy"`

	// Records is the number of records aggregated.
	Records int `json:"records"`
}

// SessionPattern summarizes the sessions observed under one predicted mood.
type SessionPattern struct {
	// AvgDuration is the mean session duration in minutes.
	AvgDuration float64 `json:"avg_duration"`

	// AvgEngagement is the mean engagement in [0, 1].
	AvgEngagement float64 `json:"avg_engagement"`
}

// ForecastingData is the feedback the forecaster consumes.
type ForecastingData struct {
	// MoodAccuracy is the average resonance score per predicted mood.
	MoodAccuracy map[persona.Mood]float64 `json:"mood_accuracy"`

	// ConfidenceAdjustments scales future forecast confidence per mood.
	// Every value is at least MinConfidenceAdjustment so no mood is ever
	// fully suppressed.
	ConfidenceAdjustments map[persona.Mood]float64 `json:"confidence_adjustments"`

	// SessionPatterns summarizes observed sessions per predicted mood.
	SessionPatterns map[persona.Mood]SessionPattern `json:"session_patterns"`
}
