// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/metrics"
	"github.com/playatlas/playatlas/internal/persona"
)

// Engine scores and ranks a game catalog against a predicted mood.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger

	// Enum-keyed weight tables resolved from cfg at construction.
	genreWeights map[persona.Mood]map[string]float64
	tagWeights   map[persona.Mood]map[string]float64

	// now is overridable for tests.
	now func() time.Time
}

// NewEngine creates a recommendation engine from the given config.
// A nil config uses the built-in weight tables.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	genres, tags, err := cfg.resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve weight tables: %w", err)
	}

	return &Engine{
		cfg:          cfg,
		logger:       logger.With().Str("component", "recommend").Logger(),
		genreWeights: genres,
		tagWeights:   tags,
		now:          time.Now,
	}, nil
}

// Score computes the confidence-scaled score and raw mood match for one
// game. The genre contribution is the best matching genre weight (max, not
// average); tag contributions stack additively; confidence scaling never
// suppresses below half the raw score. Both results are clamped to [0, 100].
func (e *Engine) Score(game Game, mood persona.Mood, confidence float64) (score, moodMatch float64) {
	confidence = clamp01(confidence)

	raw := baseScore
	if best, ok := e.bestGenreWeight(game, mood); ok && best > raw {
		raw = best
	}
	for _, tag := range game.Tags {
		if w, ok := e.tagWeights[mood][tag]; ok {
			raw += w
		}
	}

	moodMatch = clamp100(raw)
	score = clamp100(raw * (0.5 + confidence*0.5))
	return score, moodMatch
}

// Reasons explains a game's fit for a mood: up to three reason strings drawn
// from the same weight tables scoring uses. A game with no genre or tag
// match gets a generic fallback, never an empty list.
func (e *Engine) Reasons(game Game, mood persona.Mood) []string {
	var reasons []string

	if genre, _, ok := e.bestGenre(game, mood); ok {
		reasons = append(reasons, fmt.Sprintf("%s is a strong genre fit for a %s mood", genre, mood))
	}

	for _, tag := range game.Tags {
		if len(reasons) >= maxReasons {
			break
		}
		if _, ok := e.tagWeights[mood][tag]; ok {
			reasons = append(reasons, fmt.Sprintf("tagged %s, which suits a %s mood", tag, mood))
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, fmt.Sprintf("general recommendation for a %s mood", mood))
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// Rank scores the whole catalog and returns the top k games, best first.
// The sort is stable, so ties keep catalog order. An empty catalog or a
// catalog with no games yields an empty list with an explanatory message.
func (e *Engine) Rank(games []Game, mood persona.Mood, confidence float64, k int) *Response {
	start := e.now()
	if k <= 0 {
		k = e.cfg.K
	}
	if k <= 0 {
		k = DefaultK
	}

	items := make([]ScoredGame, 0, len(games))
	for _, g := range games {
		score, match := e.Score(g, mood, confidence)
		items = append(items, ScoredGame{
			Game:      g,
			Score:     score,
			MoodMatch: match,
			Reasons:   e.Reasons(g, mood),
		})
	}
	metrics.GamesScored.Add(float64(len(items)))

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if len(items) > k {
		items = items[:k]
	}

	resp := &Response{
		Items:      items,
		Mood:       mood,
		Confidence: clamp01(confidence),
		Metadata: Metadata{
			RequestID:   uuid.New().String(),
			Candidates:  len(games),
			LatencyMS:   time.Since(start).Milliseconds(),
			GeneratedAt: start,
		},
	}
	if len(items) == 0 {
		resp.Message = fmt.Sprintf("no qualifying games for a %s mood", mood)
	}

	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())
	e.logger.Debug().
		Str("mood", mood.String()).
		Int("candidates", len(games)).
		Int("returned", len(items)).
		Msg("ranked catalog")

	return resp
}

// NewEvent records a served recommendation for the resonance loop.
func NewEvent(userID string, item ScoredGame, mood persona.Mood, now time.Time) Event {
	return Event{
		ID:        uuid.New().String(),
		UserID:    userID,
		GameID:    item.Game.ID,
		Mood:      mood,
		Score:     item.Score,
		Timestamp: now,
	}
}

// bestGenreWeight returns the highest matching genre weight for the game.
func (e *Engine) bestGenreWeight(game Game, mood persona.Mood) (float64, bool) {
	_, w, ok := e.bestGenre(game, mood)
	return w, ok
}

// bestGenre returns the best matching genre and its weight for the game.
func (e *Engine) bestGenre(game Game, mood persona.Mood) (string, float64, bool) {
	table := e.genreWeights[mood]
	var (
		bestGenre  string
		bestWeight float64
		found      bool
	)
	for _, genre := range game.Genres {
		if w, ok := table[genre]; ok && (!found || w > bestWeight) {
			bestGenre, bestWeight, found = genre, w, true
		}
	}
	return bestGenre, bestWeight, found
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

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
