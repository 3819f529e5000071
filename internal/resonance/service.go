// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package resonance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/metrics"
	"github.com/playatlas/playatlas/internal/persona"
)

// MinConfidenceAdjustment is the floor for per-mood confidence adjustments.
// Even a mood with terrible historical accuracy keeps 30% of its forecast
// confidence, so it can recover.
const MinConfidenceAdjustment = 0.3

// Resonance score weights: mood agreement dominates, session telemetry
// refines.
const (
	moodWeight       = 0.6
	engagementWeight = 0.25
	completionWeight = 0.15

	relatedMoodCredit = 0.5
)

// relatedMoods grants partial credit when the predicted and actual moods are
// behaviorally adjacent. The relation is symmetric.
var relatedMoods = map[persona.Mood][]persona.Mood{
	persona.MoodCompetitive: {persona.MoodEnergetic, persona.MoodFocused},
	persona.MoodEnergetic:   {persona.MoodCompetitive, persona.MoodSocial},
	persona.MoodFocused:     {persona.MoodCompetitive, persona.MoodStory},
	persona.MoodChill:       {persona.MoodStory, persona.MoodCreative},
	persona.MoodStory:       {persona.MoodChill, persona.MoodFocused},
	persona.MoodCreative:    {persona.MoodChill, persona.MoodExploratory},
	persona.MoodSocial:      {persona.MoodEnergetic},
	persona.MoodExploratory: {persona.MoodCreative},
}

// Service records session outcomes against prior predictions and derives
// the aggregates that recalibrate future forecasts.
type Service struct {
	log    Log
	logger zerolog.Logger

	// now is overridable for tests.
	now func() time.Time
}

// NewService creates a resonance service on the given log.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(log Log, logger zerolog.Logger) *Service {
	return &Service{
		log:    log,
		logger: logger.With().Str("component", "resonance").Logger(),
		now:    time.Now,
	}
}

// RecordSessionResonance scores a completed session against its prediction
// and appends the result to the log.
func (s *Service) RecordSessionResonance(ctx context.Context, sessionID, userID string, predicted, actual persona.Mood, data SessionData) (*Record, error) {
	rec := &Record{
		ID:            uuid.New().String(),
		SessionID:     sessionID,
		UserID:        userID,
		PredictedMood: predicted,
		ActualMood:    actual,
		Score:         resonanceScore(predicted, actual, data),
		Session:       data,
		Timestamp:     s.now(),
	}

	if err := s.log.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append resonance record: %w", err)
	}

	outcome := "miss"
	if predicted == actual {
		outcome = "match"
	}
	metrics.ResonanceRecords.WithLabelValues(outcome).Inc()

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("predicted", predicted.String()).
		Str("actual", actual.String()).
		Float64("score", rec.Score).
		Msg("recorded session resonance")

	return rec, nil
}

// AnalyzeUserResonance aggregates per-mood accuracy over one user's records.
func (s *Service) AnalyzeUserResonance(ctx context.Context, userID string) (*Analysis, error) {
	records, err := s.log.ForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user records: %w", err)
	}
	return aggregate(records), nil
}

// AnalyzeSystemResonance aggregates per-mood accuracy over the whole log.
func (s *Service) AnalyzeSystemResonance(ctx context.Context) (*Analysis, error) {
	records, err := s.log.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return aggregate(records), nil
}

// ForecastingData derives the confidence adjustments and session patterns
// the forecaster consumes, grouping the raw log by predicted mood. An empty
// log yields empty (not nil) maps.
func (s *Service) ForecastingData(ctx context.Context) (*ForecastingData, error) {
	records, err := s.log.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	analysis := aggregate(records)
	out := &ForecastingData{
		MoodAccuracy:          analysis.MoodAccuracy,
		ConfidenceAdjustments: make(map[persona.Mood]float64, len(analysis.MoodAccuracy)),
		SessionPatterns:       make(map[persona.Mood]SessionPattern, len(analysis.MoodAccuracy)),
	}

	for mood, accuracy := range analysis.MoodAccuracy {
		adj := accuracy
		if adj < MinConfidenceAdjustment {
			adj = MinConfidenceAdjustment
		}
		out.ConfidenceAdjustments[mood] = adj
	}

	type sums struct {
		duration, engagement float64
		count                int
	}
	byMood := make(map[persona.Mood]*sums)
	for _, r := range records {
		s := byMood[r.PredictedMood]
		if s == nil {
			s = &sums{}
			byMood[r.PredictedMood] = s
		}
		s.duration += r.Session.DurationMin
		s.engagement += r.Session.Engagement
		s.count++
	}
	for mood, s := range byMood {
		out.SessionPatterns[mood] = SessionPattern{
			AvgDuration:   s.duration / float64(s.count),
			AvgEngagement: s.engagement / float64(s.count),
		}
	}

	return out, nil
}

// aggregate recomputes accuracy from raw records. Always derived, never a
// stored running total.
func aggregate(records []Record) *Analysis {
	analysis := &Analysis{
		MoodAccuracy: make(map[persona.Mood]float64),
		Records:      len(records),
	}
	if len(records) == 0 {
		return analysis
	}

	sums := make(map[persona.Mood]float64)
	counts := make(map[persona.Mood]int)
	var total float64
	for _, r := range records {
		sums[r.PredictedMood] += r.Score
		counts[r.PredictedMood]++
		total += r.Score
	}

	for mood, sum := range sums {
		analysis.MoodAccuracy[mood] = sum / float64(counts[mood])
	}
	analysis.OverallAccuracy = total / float64(len(records))
	return analysis
}

// resonanceScore blends mood agreement with session telemetry into [0, 1].
func resonanceScore(predicted, actual persona.Mood, data SessionData) float64 {
	match := 0.0
	switch {
	case predicted == actual:
		match = 1.0
	case moodsRelated(predicted, actual):
		match = relatedMoodCredit
	}

	completion := 0.0
	if data.Completed {
		completion = 1.0
	}

	score := moodWeight*match + engagementWeight*clamp01(data.Engagement) + completionWeight*completion
	return clamp01(score)
}

func moodsRelated(a, b persona.Mood) bool {
	for _, m := range relatedMoods[a] {
		if m == b {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
