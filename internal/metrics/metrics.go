// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package metrics provides Prometheus instrumentation for the persona
// pipeline: signal collection volume, snapshot builds and confidence,
// recommendation scoring latency, and resonance recording.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignalsCollected counts behavioral signals emitted by the collector.
	SignalsCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "persona_signals_collected_total",
			Help: "Total behavioral signals emitted by the signal collector",
		},
	)

	// SignalConversionFailures counts collaborator records skipped at the
	// conversion boundary.
	SignalConversionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "persona_signal_conversion_failures_total",
			Help: "Total collaborator records skipped due to validation failure",
		},
	)

	// SnapshotsBuilt counts persona snapshots built, labeled by whether the
	// snapshot reached the high-confidence threshold.
	SnapshotsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_snapshots_built_total",
			Help: "Total persona snapshots built",
		},
		[]string{"confidence"}, // "high" or "low"
	)

	// SnapshotConfidence observes the confidence of built snapshots.
	SnapshotConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "persona_snapshot_confidence",
			Help:    "Confidence distribution of persona snapshots",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	// RecommendationDuration observes catalog scoring latency.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "persona_recommendation_duration_seconds",
			Help:    "Duration of mood-based catalog scoring",
			Buckets: prometheus.DefBuckets,
		},
	)

	// GamesScored counts games scored by the recommendation engine.
	GamesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "persona_games_scored_total",
			Help: "Total games scored against a predicted mood",
		},
	)

	// ResonanceRecords counts session resonance records appended, labeled
	// by whether the predicted mood matched the actual mood.
	ResonanceRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_resonance_records_total",
			Help: "Total session resonance records appended",
		},
		[]string{"outcome"}, // "match" or "miss"
	)
)
