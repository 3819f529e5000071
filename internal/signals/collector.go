// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package signals

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/playatlas/playatlas/internal/metrics"
)

// Signal weights by family. Heavier families carry stronger evidence about
// the player's behavior.
const (
	weightSession        = 0.8
	weightAchievement    = 0.6
	weightGenreShift     = 0.7
	weightPlaytime       = 0.5
	weightPlatformSwitch = 0.4
	weightIntegration    = 0.3
)

// socialIntegrationTypes are integration event types that imply interaction
// with other players.
var socialIntegrationTypes = map[string]bool{
	"achievement":   true,
	"session_start": true,
}

// Collector turns collaborator records into behavioral signals.
// It is stateless and safe for concurrent use.
type Collector struct {
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCollector creates a signal collector.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollector(logger zerolog.Logger) *Collector {
	return &Collector{
		validate: validator.New(),
		logger:   logger.With().Str("component", "signals").Logger(),
	}
}

// Collect produces the full signal stream for a user's session history,
// catalog context, and integration activity. Records that fail boundary
// validation are logged and skipped; collection never fails outright.
func (c *Collector) Collect(sessions []SessionRecord, games []GameRecord, activity []IntegrationActivity) []Signal {
	valid := c.validSessions(sessions)
	catalog := indexGames(games)

	out := make([]Signal, 0, len(valid)*2+len(activity))
	out = append(out, c.sessionSignals(valid, catalog)...)
	out = append(out, c.genreShiftSignals(valid, catalog)...)
	out = append(out, c.playtimeSignals(valid)...)
	out = append(out, c.platformSwitchSignals(valid, catalog)...)
	out = append(out, c.integrationSignals(activity)...)

	metrics.SignalsCollected.Add(float64(len(out)))
	c.logger.Debug().
		Int("sessions", len(valid)).
		Int("signals", len(out)).
		Msg("collected behavioral signals")

	return out
}

// validSessions filters out structurally malformed session records.
// Offending records are skipped, not fatal (partial data is expected).
func (c *Collector) validSessions(sessions []SessionRecord) []SessionRecord {
	valid := make([]SessionRecord, 0, len(sessions))
	for i := range sessions {
		if err := c.validate.Struct(&sessions[i]); err != nil {
			metrics.SignalConversionFailures.Inc()
			c.logger.Warn().
				Err(err).
				Str("game_id", sessions[i].GameID).
				Msg("skipping malformed session record")
			continue
		}
		valid = append(valid, sessions[i])
	}
	return valid
}

func indexGames(games []GameRecord) map[string]GameRecord {
	catalog := make(map[string]GameRecord, len(games))
	for _, g := range games {
		if g.ID != "" {
			catalog[g.ID] = g
		}
	}
	return catalog
}

// sessionSignals emits one signal per session (weight 0.8) and one extra
// achievement signal (weight 0.6) for sessions that earned achievements.
// Achievement signals carry a zero duration so duration statistics count
// each session once.
func (c *Collector) sessionSignals(sessions []SessionRecord, catalog map[string]GameRecord) []Signal {
	out := make([]Signal, 0, len(sessions))
	for _, s := range sessions {
		genre := catalog[s.GameID].PrimaryGenre()
		out = append(out, Signal{
			Timestamp: s.StartTime,
			Source:    SourceSession,
			Weight:    weightSession,
			Session: &SessionPayload{
				GameID:      s.GameID,
				DurationMin: s.DurationMin,
				Completed:   s.Completed,
				Type:        s.SessionType,
				Genre:       genre,
				Intensity:   s.MoodIntensity,
			},
		})

		if len(s.Achievements) > 0 {
			out = append(out, Signal{
				Timestamp: s.StartTime,
				Source:    SourceSession,
				Weight:    weightAchievement,
				Session: &SessionPayload{
					GameID:       s.GameID,
					Type:         s.SessionType,
					Genre:        genre,
					Achievements: len(s.Achievements),
				},
			})
		}
	}
	return out
}

// genreShiftSignals emits one signal per adjacent session pair whose primary
// genre differs. Sessions are sorted chronologically first; transitions are
// never computed on input order.
func (c *Collector) genreShiftSignals(sessions []SessionRecord, catalog map[string]GameRecord) []Signal {
	ordered := sortedByStart(sessions)

	var out []Signal
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		from := catalog[prev.GameID].PrimaryGenre()
		to := catalog[cur.GameID].PrimaryGenre()
		if from == "" || to == "" || from == to {
			continue
		}
		out = append(out, Signal{
			Timestamp: cur.StartTime,
			Source:    SourceGenre,
			Weight:    weightGenreShift,
			GenreShift: &GenreShiftPayload{
				FromGenre: from,
				ToGenre:   to,
				Gap:       cur.StartTime.Sub(prev.StartTime),
			},
		})
	}
	return out
}

// playtimeSignals groups sessions by day of week and emits one pattern
// signal for each day with at least two sessions.
func (c *Collector) playtimeSignals(sessions []SessionRecord) []Signal {
	type dayGroup struct {
		durations []float64
		latest    time.Time
	}

	byDay := make(map[time.Weekday]*dayGroup)
	for _, s := range sessions {
		day := s.StartTime.Weekday()
		g := byDay[day]
		if g == nil {
			g = &dayGroup{}
			byDay[day] = g
		}
		g.durations = append(g.durations, s.DurationMin)
		if s.StartTime.After(g.latest) {
			g.latest = s.StartTime
		}
	}

	var out []Signal
	for day := time.Sunday; day <= time.Saturday; day++ {
		g := byDay[day]
		if g == nil || len(g.durations) < 2 {
			continue
		}
		mean, variance := meanVariance(g.durations)
		out = append(out, Signal{
			Timestamp: g.latest,
			Source:    SourcePlaytime,
			Weight:    weightPlaytime,
			Playtime: &PlaytimePayload{
				Day:             day,
				Sessions:        len(g.durations),
				MeanDurationMin: mean,
				Variance:        variance,
				Consistency:     consistency(mean, variance),
			},
		})
	}
	return out
}

// platformSwitchSignals emits one signal per adjacent session pair played on
// differing platforms, with the destination platform's preference ratio.
func (c *Collector) platformSwitchSignals(sessions []SessionRecord, catalog map[string]GameRecord) []Signal {
	ordered := sortedByStart(sessions)

	platformCount := make(map[string]int)
	for _, s := range ordered {
		if code := catalog[s.GameID].PlatformCode; code != "" {
			platformCount[code]++
		}
	}

	var out []Signal
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		from := catalog[prev.GameID].PlatformCode
		to := catalog[cur.GameID].PlatformCode
		if from == "" || to == "" || from == to {
			continue
		}
		ratio := 0.0
		if len(ordered) > 0 {
			ratio = float64(platformCount[to]) / float64(len(ordered))
		}
		out = append(out, Signal{
			Timestamp: cur.StartTime,
			Source:    SourcePlatform,
			Weight:    weightPlatformSwitch,
			PlatformSwitch: &PlatformSwitchPayload{
				FromPlatform:    from,
				ToPlatform:      to,
				Latency:         cur.StartTime.Sub(prev.StartTime),
				PreferenceRatio: ratio,
			},
		})
	}
	return out
}

// integrationSignals emits one signal per integration event.
func (c *Collector) integrationSignals(activity []IntegrationActivity) []Signal {
	out := make([]Signal, 0, len(activity))
	for i := range activity {
		a := activity[i]
		if err := c.validate.Struct(&a); err != nil {
			metrics.SignalConversionFailures.Inc()
			c.logger.Warn().
				Err(err).
				Str("type", a.Type).
				Msg("skipping malformed integration activity")
			continue
		}
		out = append(out, Signal{
			Timestamp: a.Timestamp,
			Source:    SourceIntegration,
			Weight:    weightIntegration,
			Integration: &IntegrationPayload{
				Type:              a.Type,
				Platform:          a.Platform,
				GameID:            a.GameID,
				SocialInteraction: socialIntegrationTypes[a.Type],
			},
		})
	}
	return out
}

// sortedByStart returns a copy of sessions sorted ascending by start time.
// The sort is stable so identical timestamps keep their relative order.
func sortedByStart(sessions []SessionRecord) []SessionRecord {
	ordered := make([]SessionRecord, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})
	return ordered
}

// meanVariance computes the mean and population variance of values.
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

// consistency maps a duration distribution to a regularity score in [0, 1].
func consistency(mean, variance float64) float64 {
	if mean <= 0 {
		return 0
	}
	c := 1 - variance/(mean*mean)
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
