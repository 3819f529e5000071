// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/features"
	"github.com/playatlas/playatlas/internal/metrics"
	"github.com/playatlas/playatlas/internal/signals"
)

// HighConfidence is the conventional threshold above which a snapshot is
// considered well supported.
const HighConfidence = 0.7

// ErrNilSignals is returned when the caller passes a missing signal
// container. An empty (non-nil) slice is valid input and degrades
// confidence instead.
var ErrNilSignals = errors.New("persona: signal container is nil")

// Snapshot is a freshly built persona: traits, mood context, narrative, and
// confidence. It has no identity beyond the inputs that produced it.
type Snapshot struct {
	// Traits is the derived personality profile.
	Traits Traits `json:"traits"`

	// Mood is the current mood context, nil when absent or stale.
	Mood *MoodState `json:"mood,omitempty"`

	// Narrative is the assembled summary and tone.
	Narrative Narrative `json:"narrative"`

	// Features is the extracted feature vector with confidence and issues.
	Features features.Result `json:"features"`

	// Confidence is the overall snapshot confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// GeneratedAt is when the snapshot was built.
	GeneratedAt time.Time `json:"generated_at"`
}

// HighConfidence reports whether the snapshot meets the conventional
// confidence threshold.
func (s *Snapshot) HighConfidence() bool {
	return s.Confidence >= HighConfidence
}

// Builder orchestrates the snapshot pipeline: feature extraction, trait
// derivation, mood packaging, and narrative assembly.
type Builder struct {
	staleness time.Duration
	logger    zerolog.Logger

	// now is overridable for tests.
	now func() time.Time
}

// NewBuilder creates a snapshot builder. A non-positive staleness falls back
// to DefaultMoodStaleness.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBuilder(staleness time.Duration, logger zerolog.Logger) *Builder {
	if staleness <= 0 {
		staleness = DefaultMoodStaleness
	}
	return &Builder{
		staleness: staleness,
		logger:    logger.With().Str("component", "persona").Logger(),
		now:       time.Now,
	}
}

// BuildSnapshot runs the full pipeline over the signal window. It fails only
// when the signal container itself is missing; zero signals produce a
// neutral, low-confidence snapshot.
func (b *Builder) BuildSnapshot(sigs []signals.Signal, entry *MoodState) (*Snapshot, error) {
	if sigs == nil {
		return nil, ErrNilSignals
	}

	now := b.now()
	feat := features.Extract(sigs)
	traits := DeriveTraits(sigs)
	ctx := BuildMoodContext(traits, entry, now, b.staleness)

	snap := &Snapshot{
		Traits:      traits,
		Mood:        ctx.Mood,
		Narrative:   BuildNarrative(ctx),
		Features:    feat,
		Confidence:  combineConfidence(feat.Confidence, traits.Confidence),
		GeneratedAt: now,
	}

	bucket := "low"
	if snap.HighConfidence() {
		bucket = "high"
	}
	metrics.SnapshotsBuilt.WithLabelValues(bucket).Inc()
	metrics.SnapshotConfidence.Observe(snap.Confidence)

	b.logger.Debug().
		Int("signals", len(sigs)).
		Str("archetype", snap.Traits.Archetype.String()).
		Float64("confidence", snap.Confidence).
		Msg("built persona snapshot")

	return snap, nil
}

// combineConfidence blends feature and trait confidence. Feature evidence
// dominates because it covers more of the signal stream.
func combineConfidence(featureConf, traitConf float64) float64 {
	c := 0.6*featureConf + 0.4*traitConf
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
