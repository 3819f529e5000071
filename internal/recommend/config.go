// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package recommend

import (
	"fmt"

	"github.com/playatlas/playatlas/internal/persona"
)

// Scoring constants. Genre weights live in [65, 90] and replace the base
// score when higher; tag weights live in [10, 20] and stack additively.
const (
	baseScore      = 50.0
	minGenreWeight = 65.0
	maxGenreWeight = 90.0
	minTagWeight   = 10.0
	maxTagWeight   = 20.0

	// DefaultK is the default ranked-list size.
	DefaultK = 10

	// maxReasons caps the explanations attached to one recommendation.
	maxReasons = 3
)

// Config holds the mood weight tables and operational limits. Tables are
// string-keyed by mood name so they can be loaded from YAML via koanf; the
// engine resolves them against the canonical mood enum at construction and
// rejects unknown moods.
type Config struct {
	// GenreWeights maps mood name -> genre -> weight [65, 90].
	GenreWeights map[string]map[string]float64 `koanf:"genre_weights" json:"genre_weights"`

	// TagWeights maps mood name -> tag -> weight [10, 20].
	TagWeights map[string]map[string]float64 `koanf:"tag_weights" json:"tag_weights"`

	// K is the ranked-list size; DefaultK when zero.
	K int `koanf:"k" json:"k"`
}

// DefaultConfig returns the built-in weight tables covering every canonical
// mood with 4-5 weighted genres and a handful of tags.
func DefaultConfig() *Config {
	return &Config{
		K: DefaultK,
		GenreWeights: map[string]map[string]float64{
			"competitive": {"shooter": 90, "moba": 85, "fighting": 85, "sports": 80, "racing": 70},
			"chill":       {"casual": 90, "simulation": 85, "farming": 85, "puzzle": 80, "adventure": 65},
			"energetic":   {"action": 90, "racing": 85, "rhythm": 85, "platformer": 75, "shooter": 70},
			"focused":     {"strategy": 90, "puzzle": 85, "rpg": 75, "simulation": 70, "card": 65},
			"social":      {"party": 90, "mmo": 85, "sports": 70, "casual": 65},
			"creative":    {"sandbox": 90, "building": 85, "simulation": 80, "puzzle": 65},
			"story":       {"rpg": 90, "adventure": 85, "visual_novel": 80, "horror": 65},
			"exploratory": {"open_world": 90, "adventure": 85, "survival": 80, "metroidvania": 75, "roguelike": 70},
		},
		TagWeights: map[string]map[string]float64{
			"competitive": {"pvp": 20, "ranked": 18, "esports": 15, "multiplayer": 12},
			"chill":       {"relaxing": 20, "cozy": 18, "sandbox": 12, "singleplayer": 10},
			"energetic":   {"fast-paced": 20, "arcade": 15, "score-attack": 12},
			"focused":     {"tactical": 18, "turn-based": 15, "challenging": 14, "deckbuilder": 12},
			"social":      {"coop": 20, "multiplayer": 18, "party": 14, "crossplay": 10},
			"creative":    {"building": 20, "crafting": 18, "moddable": 12, "level-editor": 10},
			"story":       {"story-rich": 20, "choices-matter": 16, "atmospheric": 12},
			"exploratory": {"exploration": 20, "procedural": 14, "open-ended": 12},
		},
	}
}

// Validate checks that every table key is a canonical mood and every weight
// is within its contractual range.
func (c *Config) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("k must be non-negative, got %d", c.K)
	}

	for moodName, genres := range c.GenreWeights {
		if _, err := persona.ParseMood(moodName); err != nil {
			return fmt.Errorf("genre_weights: %w", err)
		}
		for genre, w := range genres {
			if w < minGenreWeight || w > maxGenreWeight {
				return fmt.Errorf("genre_weights[%s][%s] = %.1f outside [%.0f, %.0f]",
					moodName, genre, w, minGenreWeight, maxGenreWeight)
			}
		}
	}

	for moodName, tags := range c.TagWeights {
		if _, err := persona.ParseMood(moodName); err != nil {
			return fmt.Errorf("tag_weights: %w", err)
		}
		for tag, w := range tags {
			if w < minTagWeight || w > maxTagWeight {
				return fmt.Errorf("tag_weights[%s][%s] = %.1f outside [%.0f, %.0f]",
					moodName, tag, w, minTagWeight, maxTagWeight)
			}
		}
	}

	return nil
}

// resolve converts the string-keyed tables into enum-keyed tables, so
// scoring never does a silent miss on a misspelled mood.
func (c *Config) resolve() (genres, tags map[persona.Mood]map[string]float64, err error) {
	genres = make(map[persona.Mood]map[string]float64, len(c.GenreWeights))
	for moodName, table := range c.GenreWeights {
		mood, err := persona.ParseMood(moodName)
		if err != nil {
			return nil, nil, err
		}
		genres[mood] = table
	}

	tags = make(map[persona.Mood]map[string]float64, len(c.TagWeights))
	for moodName, table := range c.TagWeights {
		mood, err := persona.ParseMood(moodName)
		if err != nil {
			return nil, nil, err
		}
		tags[mood] = table
	}

	return genres, tags, nil
}
