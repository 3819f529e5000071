// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

// Package features reduces a behavioral signal stream to a fixed
// 5-dimensional normalized feature vector with per-dimension confidence.
// The vector is recomputed on demand and never persisted as a source of
// truth; empty input yields the neutral vector, never an error.
package features

import (
	"math"

	"github.com/playatlas/playatlas/internal/signals"
)

// neutral is the value every dimension takes when no evidence exists.
const neutral = 0.5

// challengeGenres are genres whose transitions indicate challenge seeking.
var challengeGenres = map[string]bool{
	"strategy": true,
	"puzzle":   true,
	"rpg":      true,
	"action":   true,
}

// Vector is the normalized feature vector. Every dimension lies in [0, 1].
type Vector struct {
	// EngagementVolatility measures how irregular session lengths are.
	EngagementVolatility float64 `json:"engagement_volatility"`

	// ChallengeSeeking measures preference for demanding content.
	ChallengeSeeking float64 `json:"challenge_seeking"`

	// SocialOpenness measures preference for playing with others.
	SocialOpenness float64 `json:"social_openness"`

	// ExplorationBias measures breadth of genres and platforms touched.
	ExplorationBias float64 `json:"exploration_bias"`

	// FocusStability measures commitment to finishing what was started.
	FocusStability float64 `json:"focus_stability"`
}

// Neutral returns the all-0.5 vector used when no signals exist.
func Neutral() Vector {
	return Vector{
		EngagementVolatility: neutral,
		ChallengeSeeking:     neutral,
		SocialOpenness:       neutral,
		ExplorationBias:      neutral,
		FocusStability:       neutral,
	}
}

// FeatureConfidence holds the per-dimension confidence scores, each in [0, 1].
type FeatureConfidence struct {
	EngagementVolatility float64 `json:"engagement_volatility"`
	ChallengeSeeking     float64 `json:"challenge_seeking"`
	SocialOpenness       float64 `json:"social_openness"`
	ExplorationBias      float64 `json:"exploration_bias"`
	FocusStability       float64 `json:"focus_stability"`
}

// Result is the output of feature extraction.
type Result struct {
	// Vector is the normalized feature vector.
	Vector Vector `json:"vector"`

	// PerFeature is the per-dimension confidence.
	PerFeature FeatureConfidence `json:"per_feature"`

	// Confidence is the overall extraction confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Issues lists advisory validation findings, never fatal.
	Issues []Issue `json:"issues,omitempty"`
}

// partition holds signals split by source.
type partition struct {
	session     []*signals.SessionPayload
	genre       []*signals.GenreShiftPayload
	playtime    []*signals.PlaytimePayload
	platform    []*signals.PlatformSwitchPayload
	integration []*signals.IntegrationPayload
}

// Extract reduces a signal stream to a feature vector with confidence.
// Empty input yields the neutral vector with zero confidence.
func Extract(sigs []signals.Signal) Result {
	if len(sigs) == 0 {
		return Result{Vector: Neutral()}
	}

	p := split(sigs)

	vec := Vector{
		EngagementVolatility: engagementVolatility(p.session),
		ChallengeSeeking:     challengeSeeking(p.session, p.genre),
		SocialOpenness:       socialOpenness(p.session, p.integration),
		ExplorationBias:      explorationBias(p.genre, p.platform),
		FocusStability:       focusStability(p.session, p.playtime),
	}

	res := Result{
		Vector:     vec,
		PerFeature: perFeatureConfidence(p),
		Confidence: overallConfidence(sigs),
	}
	res.Issues = Validate(res)
	return res
}

func split(sigs []signals.Signal) partition {
	var p partition
	for i := range sigs {
		s := &sigs[i]
		switch s.Source {
		case signals.SourceSession:
			if s.Session != nil {
				p.session = append(p.session, s.Session)
			}
		case signals.SourceGenre:
			if s.GenreShift != nil {
				p.genre = append(p.genre, s.GenreShift)
			}
		case signals.SourcePlaytime:
			if s.Playtime != nil {
				p.playtime = append(p.playtime, s.Playtime)
			}
		case signals.SourcePlatform:
			if s.PlatformSwitch != nil {
				p.platform = append(p.platform, s.PlatformSwitch)
			}
		case signals.SourceIntegration:
			if s.Integration != nil {
				p.integration = append(p.integration, s.Integration)
			}
		}
	}
	return p
}

// engagementVolatility is the coefficient of variation of session durations,
// clamped to 1. Requires at least 3 session signals to move off neutral.
// Achievement signals carry zero durations and are excluded from the stats.
func engagementVolatility(sessions []*signals.SessionPayload) float64 {
	if len(sessions) < 3 {
		return neutral
	}

	var durations []float64
	for _, s := range sessions {
		if s.DurationMin > 0 {
			durations = append(durations, s.DurationMin)
		}
	}
	if len(durations) < 3 {
		return neutral
	}

	mean, variance := meanVariance(durations)
	if mean <= 0 {
		return neutral
	}
	return clamp01(math.Sqrt(variance) / mean)
}

// challengeSeeking starts at neutral and rises with difficult sessions and
// transitions into challenging genres.
func challengeSeeking(sessions []*signals.SessionPayload, genre []*signals.GenreShiftPayload) float64 {
	v := neutral

	if len(sessions) > 0 {
		difficult := 0
		for _, s := range sessions {
			if s.Type == signals.SessionMain && s.Intensity > 7 {
				difficult++
			}
		}
		v += 0.3 * float64(difficult) / float64(len(sessions))
	}

	if len(genre) > 0 {
		challenging := 0
		for _, g := range genre {
			if challengeGenres[g.FromGenre] || challengeGenres[g.ToGenre] {
				challenging++
			}
		}
		v += 0.2 * float64(challenging) / float64(len(genre))
	}

	return clamp01(v)
}

// socialOpenness starts at neutral and rises with social/coop sessions and
// social integration activity.
func socialOpenness(sessions []*signals.SessionPayload, integration []*signals.IntegrationPayload) float64 {
	v := neutral

	if len(sessions) > 0 {
		social := 0
		for _, s := range sessions {
			if s.Type.Social() {
				social++
			}
		}
		v += 0.4 * float64(social) / float64(len(sessions))
	}

	if len(integration) > 0 {
		social := 0
		for _, a := range integration {
			if a.SocialInteraction {
				social++
			}
		}
		v += 0.3 * float64(social) / float64(len(integration))
	}

	return clamp01(v)
}

// explorationBias starts at neutral and rises with genre breadth and
// platform switching.
func explorationBias(genre []*signals.GenreShiftPayload, platform []*signals.PlatformSwitchPayload) float64 {
	v := neutral

	if len(genre) > 0 {
		unique := make(map[string]bool, len(genre)*2)
		for _, g := range genre {
			unique[g.FromGenre] = true
			unique[g.ToGenre] = true
		}
		v += 0.3 * float64(len(unique)) / float64(2*len(genre))
	}

	v += math.Min(0.3, float64(len(platform))/10) * 0.3

	return clamp01(v)
}

// focusStability starts at neutral and rises with completion rate, playtime
// consistency, and the share of main-progression sessions.
func focusStability(sessions []*signals.SessionPayload, playtime []*signals.PlaytimePayload) float64 {
	v := neutral

	if len(sessions) > 0 {
		completed, main := 0, 0
		for _, s := range sessions {
			if s.Completed {
				completed++
			}
			if s.Type == signals.SessionMain {
				main++
			}
		}
		v += 0.3 * float64(completed) / float64(len(sessions))
		v += 0.3 * float64(main) / float64(len(sessions))
	}

	if len(playtime) > 0 {
		var sum float64
		for _, p := range playtime {
			sum += p.Consistency
		}
		v += 0.4 * sum / float64(len(playtime))
	}

	return clamp01(v)
}

// Per-feature confidence thresholds: the number of relevant signals at which
// confidence saturates. Session-backed features saturate faster than
// pattern-backed ones.
const (
	thresholdFast = 5
	thresholdSlow = 8
)

func perFeatureConfidence(p partition) FeatureConfidence {
	return FeatureConfidence{
		EngagementVolatility: saturate(len(p.session), thresholdFast),
		ChallengeSeeking:     saturate(len(p.session)+len(p.genre), thresholdSlow),
		SocialOpenness:       saturate(len(p.session)+len(p.integration), thresholdSlow),
		ExplorationBias:      saturate(len(p.genre)+len(p.platform), thresholdFast),
		FocusStability:       saturate(len(p.session)+len(p.playtime), thresholdSlow),
	}
}

// saturate is min(1, count/threshold).
func saturate(count, threshold int) float64 {
	if threshold <= 0 {
		return 0
	}
	return math.Min(1, float64(count)/float64(threshold))
}

// overallConfidence is min(1, (n/10) * averageSignalWeight).
func overallConfidence(sigs []signals.Signal) float64 {
	if len(sigs) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sigs {
		sum += s.Weight
	}
	avgWeight := sum / float64(len(sigs))
	return math.Min(1, float64(len(sigs))/10*avgWeight)
}

func meanVariance(values []float64) (mean, variance float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, variance
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
