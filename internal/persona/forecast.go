// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is a forecast of the user's likely mood, fed into the
// recommendation engine and recorded for the resonance loop.
type Prediction struct {
	// ID uniquely identifies the prediction.
	ID string `json:"id"`

	// Mood is the forecast mood.
	Mood Mood `json:"mood"`

	// Confidence is the forecast confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Basis names the evidence the forecast rests on:
	// "current_mood" or "traits".
	Basis string `json:"basis"`

	// Timestamp is when the forecast was made.
	Timestamp time.Time `json:"timestamp"`
}

// archetypeMoods is the default mood per archetype, used when no fresh mood
// entry exists.
var archetypeMoods = map[Archetype]Mood{
	ArchetypeWanderer:   MoodChill,
	ArchetypeAchiever:   MoodFocused,
	ArchetypeExplorer:   MoodExploratory,
	ArchetypeSocializer: MoodSocial,
	ArchetypeCompetitor: MoodCompetitive,
}

// traitFallbackConfidence caps forecasts that rest on traits alone.
const traitFallbackConfidence = 0.4

// Forecast predicts the user's likely mood from a snapshot. A fresh mood in
// the snapshot carries straight through; otherwise the archetype's default
// mood is used at reduced confidence. Historical per-mood accuracy from the
// resonance loop scales the result; a mood absent from adjustments scales
// by 1.
func Forecast(snap *Snapshot, adjustments map[Mood]float64, now time.Time) Prediction {
	pred := Prediction{
		ID:        uuid.New().String(),
		Timestamp: now,
	}

	if snap.Mood != nil {
		pred.Mood = snap.Mood.Mood
		pred.Confidence = snap.Confidence
		pred.Basis = "current_mood"
	} else {
		pred.Mood = archetypeMoods[snap.Traits.Archetype]
		pred.Confidence = traitFallbackConfidence * snap.Traits.Confidence
		pred.Basis = "traits"
	}

	if adj, ok := adjustments[pred.Mood]; ok {
		pred.Confidence *= adj
	}
	if pred.Confidence > 1 {
		pred.Confidence = 1
	}
	if pred.Confidence < 0 {
		pred.Confidence = 0
	}

	return pred
}
