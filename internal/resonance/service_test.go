// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package resonance

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/persona"
)

func testService(log Log) *Service {
	s := NewService(log, zerolog.New(io.Discard))
	s.now = func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestResonanceScore(t *testing.T) {
	tests := []struct {
		name      string
		predicted persona.Mood
		actual    persona.Mood
		data      SessionData
		want      float64
	}{
		{
			"exact match with full telemetry",
			persona.MoodChill, persona.MoodChill,
			SessionData{Engagement: 1, Completed: true},
			1.0,
		},
		{
			"exact match alone",
			persona.MoodChill, persona.MoodChill,
			SessionData{},
			0.6,
		},
		{
			"related mood gets half credit",
			persona.MoodChill, persona.MoodStory,
			SessionData{},
			0.3,
		},
		{
			"unrelated mood gets none",
			persona.MoodChill, persona.MoodCompetitive,
			SessionData{},
			0.0,
		},
		{
			"telemetry alone",
			persona.MoodChill, persona.MoodCompetitive,
			SessionData{Engagement: 0.8, Completed: true},
			0.35,
		},
		{
			"engagement clamped before weighting",
			persona.MoodChill, persona.MoodCompetitive,
			SessionData{Engagement: 5},
			0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resonanceScore(tt.predicted, tt.actual, tt.data)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("resonanceScore(%v, %v) = %f, want %f", tt.predicted, tt.actual, got, tt.want)
			}
		})
	}
}

func TestMoodsRelatedIsSymmetric(t *testing.T) {
	for a, related := range relatedMoods {
		for _, b := range related {
			if !moodsRelated(b, a) {
				t.Errorf("relation %v->%v not symmetric", a, b)
			}
		}
	}
}

func TestRecordSessionResonance(t *testing.T) {
	log := NewMemoryLog()
	svc := testService(log)
	ctx := context.Background()

	rec, err := svc.RecordSessionResonance(ctx, "s1", "u1",
		persona.MoodChill, persona.MoodChill,
		SessionData{DurationMin: 45, Engagement: 1, Completed: true})
	if err != nil {
		t.Fatalf("RecordSessionResonance() error: %v", err)
	}

	if rec.ID == "" {
		t.Error("record ID is empty")
	}
	if rec.Score != 1.0 {
		t.Errorf("score = %f, want 1.0", rec.Score)
	}
	if rec.Timestamp.IsZero() {
		t.Error("timestamp is zero")
	}

	all, err := log.All(ctx)
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("log holds %d records, want 1", len(all))
	}
}

func appendRecord(t *testing.T, log Log, userID string, mood persona.Mood, score float64) {
	t.Helper()
	err := log.Append(context.Background(), &Record{
		ID:            userID + "-" + mood.String(),
		UserID:        userID,
		PredictedMood: mood,
		ActualMood:    mood,
		Score:         score,
		Timestamp:     time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Append() error: %v", err)
	}
}

func TestAnalyzeUserResonance(t *testing.T) {
	log := NewMemoryLog()
	svc := testService(log)
	ctx := context.Background()

	// Two chill predictions scoring 0.9 and 0.5 average to 0.7.
	appendRecord(t, log, "u1", persona.MoodChill, 0.9)
	appendRecord(t, log, "u1", persona.MoodChill, 0.5)
	appendRecord(t, log, "u1", persona.MoodFocused, 1.0)
	appendRecord(t, log, "other", persona.MoodChill, 0.0)

	analysis, err := svc.AnalyzeUserResonance(ctx, "u1")
	if err != nil {
		t.Fatalf("AnalyzeUserResonance() error: %v", err)
	}

	if analysis.Records != 3 {
		t.Errorf("records = %d, want 3 (other user excluded)", analysis.Records)
	}
	if diff := analysis.MoodAccuracy[persona.MoodChill] - 0.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("chill accuracy = %f, want 0.7", analysis.MoodAccuracy[persona.MoodChill])
	}
	if analysis.MoodAccuracy[persona.MoodFocused] != 1.0 {
		t.Errorf("focused accuracy = %f, want 1.0", analysis.MoodAccuracy[persona.MoodFocused])
	}
	if diff := analysis.OverallAccuracy - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("overall accuracy = %f, want (0.9+0.5+1.0)/3 = 0.8", analysis.OverallAccuracy)
	}
}

func TestAnalyzeSystemResonanceEmptyLog(t *testing.T) {
	svc := testService(NewMemoryLog())

	analysis, err := svc.AnalyzeSystemResonance(context.Background())
	if err != nil {
		t.Fatalf("AnalyzeSystemResonance() error: %v", err)
	}
	if analysis.Records != 0 || analysis.OverallAccuracy != 0 {
		t.Errorf("empty-log analysis = %+v, want zeroed", analysis)
	}
	if analysis.MoodAccuracy == nil {
		t.Error("MoodAccuracy is nil, want empty map")
	}
}

func TestForecastingDataAdjustments(t *testing.T) {
	log := NewMemoryLog()
	svc := testService(log)
	ctx := context.Background()

	appendRecord(t, log, "u1", persona.MoodChill, 0.9)
	appendRecord(t, log, "u1", persona.MoodChill, 0.5)
	// Terrible history for focused must still floor at 0.3.
	appendRecord(t, log, "u1", persona.MoodFocused, 0.1)

	data, err := svc.ForecastingData(ctx)
	if err != nil {
		t.Fatalf("ForecastingData() error: %v", err)
	}

	if diff := data.ConfidenceAdjustments[persona.MoodChill] - 0.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("chill adjustment = %f, want accuracy 0.7", data.ConfidenceAdjustments[persona.MoodChill])
	}
	if data.ConfidenceAdjustments[persona.MoodFocused] != MinConfidenceAdjustment {
		t.Errorf("focused adjustment = %f, want floor %f",
			data.ConfidenceAdjustments[persona.MoodFocused], MinConfidenceAdjustment)
	}
}

func TestForecastingDataSessionPatterns(t *testing.T) {
	log := NewMemoryLog()
	svc := testService(log)
	ctx := context.Background()

	records := []*Record{
		{ID: "r1", UserID: "u1", PredictedMood: persona.MoodChill, Session: SessionData{DurationMin: 30, Engagement: 0.4}},
		{ID: "r2", UserID: "u1", PredictedMood: persona.MoodChill, Session: SessionData{DurationMin: 90, Engagement: 0.8}},
		{ID: "r3", UserID: "u1", PredictedMood: persona.MoodSocial, Session: SessionData{DurationMin: 60, Engagement: 1.0}},
	}
	for _, r := range records {
		if err := log.Append(ctx, r); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	data, err := svc.ForecastingData(ctx)
	if err != nil {
		t.Fatalf("ForecastingData() error: %v", err)
	}

	chill := data.SessionPatterns[persona.MoodChill]
	if chill.AvgDuration != 60 {
		t.Errorf("chill avg duration = %f, want 60", chill.AvgDuration)
	}
	if diff := chill.AvgEngagement - 0.6; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("chill avg engagement = %f, want 0.6", chill.AvgEngagement)
	}

	social := data.SessionPatterns[persona.MoodSocial]
	if social.AvgDuration != 60 || social.AvgEngagement != 1.0 {
		t.Errorf("social pattern = %+v, want 60/1.0", social)
	}
}

func TestForecastingDataEmptyLog(t *testing.T) {
	svc := testService(NewMemoryLog())

	data, err := svc.ForecastingData(context.Background())
	if err != nil {
		t.Fatalf("ForecastingData() error: %v", err)
	}
	if data.ConfidenceAdjustments == nil || data.SessionPatterns == nil || data.MoodAccuracy == nil {
		t.Errorf("empty-log data has nil maps: %+v", data)
	}
	if len(data.ConfidenceAdjustments) != 0 {
		t.Errorf("adjustments = %v, want empty", data.ConfidenceAdjustments)
	}
}

func TestAggregatesRecomputedFromLog(t *testing.T) {
	log := NewMemoryLog()
	svc := testService(log)
	ctx := context.Background()

	appendRecord(t, log, "u1", persona.MoodChill, 1.0)
	first, err := svc.AnalyzeSystemResonance(ctx)
	if err != nil {
		t.Fatalf("AnalyzeSystemResonance() error: %v", err)
	}

	appendRecord(t, log, "u1", persona.MoodChill, 0.0)
	second, err := svc.AnalyzeSystemResonance(ctx)
	if err != nil {
		t.Fatalf("AnalyzeSystemResonance() error: %v", err)
	}

	if first.MoodAccuracy[persona.MoodChill] != 1.0 {
		t.Errorf("first accuracy = %f, want 1.0", first.MoodAccuracy[persona.MoodChill])
	}
	if second.MoodAccuracy[persona.MoodChill] != 0.5 {
		t.Errorf("second accuracy = %f, want recomputed 0.5", second.MoodAccuracy[persona.MoodChill])
	}
}
