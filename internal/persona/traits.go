// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"math"

	"github.com/playatlas/playatlas/internal/signals"
)

// Archetype is the discrete player archetype.
type Archetype int

const (
	// ArchetypeWanderer drifts between games without strong commitment.
	ArchetypeWanderer Archetype = iota
	// ArchetypeAchiever finishes what it starts and chases completion.
	ArchetypeAchiever
	// ArchetypeExplorer roams genres and platforms.
	ArchetypeExplorer
	// ArchetypeSocializer plays for the people.
	ArchetypeSocializer
	// ArchetypeCompetitor plays to win.
	ArchetypeCompetitor
)

// String returns the archetype name.
func (a Archetype) String() string {
	switch a {
	case ArchetypeWanderer:
		return "wanderer"
	case ArchetypeAchiever:
		return "achiever"
	case ArchetypeExplorer:
		return "explorer"
	case ArchetypeSocializer:
		return "socializer"
	case ArchetypeCompetitor:
		return "competitor"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Intensity is the discrete engagement intensity level.
type Intensity int

const (
	// IntensityLow is relaxed engagement.
	IntensityLow Intensity = iota
	// IntensityMedium is moderate engagement.
	IntensityMedium
	// IntensityHigh is intense engagement.
	IntensityHigh
)

// String returns the intensity name.
func (i Intensity) String() string {
	switch i {
	case IntensityLow:
		return "low"
	case IntensityMedium:
		return "medium"
	case IntensityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (i Intensity) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// Pacing is the discrete session pacing style.
type Pacing int

const (
	// PacingBurst is short, frequent sessions.
	PacingBurst Pacing = iota
	// PacingFlow is medium, steady sessions.
	PacingFlow
	// PacingMarathon is long, immersive sessions.
	PacingMarathon
)

// String returns the pacing name.
func (p Pacing) String() string {
	switch p {
	case PacingBurst:
		return "burst"
	case PacingFlow:
		return "flow"
	case PacingMarathon:
		return "marathon"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pacing) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// RiskProfile is the discrete appetite for demanding content.
type RiskProfile int

const (
	// RiskCautious avoids demanding content.
	RiskCautious RiskProfile = iota
	// RiskBalanced mixes comfort and challenge.
	RiskBalanced
	// RiskDaring seeks out demanding content.
	RiskDaring
)

// String returns the risk profile name.
func (r RiskProfile) String() string {
	switch r {
	case RiskCautious:
		return "cautious"
	case RiskBalanced:
		return "balanced"
	case RiskDaring:
		return "daring"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskProfile) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// SocialStyle is the discrete multiplayer disposition.
type SocialStyle int

const (
	// SocialSolo prefers playing alone.
	SocialSolo SocialStyle = iota
	// SocialCoop prefers cooperative play.
	SocialCoop
	// SocialVersus prefers competitive play.
	SocialVersus
)

// String returns the social style name.
func (s SocialStyle) String() string {
	switch s {
	case SocialSolo:
		return "solo"
	case SocialCoop:
		return "coop"
	case SocialVersus:
		return "competitive"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SocialStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Traits is the derived personality profile. Traits are recomputed from the
// current signal window on every snapshot; they are never stored or
// versioned incrementally.
type Traits struct {
	Archetype   Archetype   `json:"archetype"`
	Intensity   Intensity   `json:"intensity"`
	Pacing      Pacing      `json:"pacing"`
	RiskProfile RiskProfile `json:"risk_profile"`
	SocialStyle SocialStyle `json:"social_style"`

	// Confidence is how well supported the derivation is, in [0, 1].
	Confidence float64 `json:"confidence"`
}

// traitStats aggregates the raw-signal evidence trait derivation uses.
type traitStats struct {
	sessions         int
	avgDurationMin   float64
	avgMoodIntensity float64
	intensitySamples int
	mainRatio        float64
	socialRatio      float64
	versusRatio      float64
	casualRatio      float64
	completionRatio  float64
	difficultRatio   float64
	achievementRate  float64
	uniqueGenres     int
	genreShifts      int
	platformSwitches int
	socialActivity   int
}

// DeriveTraits maps raw signals to discrete traits. The mapping is
// deterministic and monotonic: identical input always yields identical
// traits, and strengthening any tendency never weakens its trait.
func DeriveTraits(sigs []signals.Signal) Traits {
	st := gatherStats(sigs)

	return Traits{
		Archetype:   deriveArchetype(st),
		Intensity:   deriveIntensity(st),
		Pacing:      derivePacing(st),
		RiskProfile: deriveRisk(st),
		SocialStyle: deriveSocialStyle(st),
		Confidence:  math.Min(1, float64(len(sigs))/12),
	}
}

//nolint:gocyclo // single aggregation pass over the signal stream
func gatherStats(sigs []signals.Signal) traitStats {
	var st traitStats
	var durationSum, intensitySum float64
	var completed, main, social, versus, casual, difficult, achievements int
	genres := make(map[string]bool)

	for i := range sigs {
		s := &sigs[i]
		switch s.Source {
		case signals.SourceSession:
			p := s.Session
			if p == nil {
				continue
			}
			if p.Achievements > 0 {
				achievements += p.Achievements
				continue
			}
			st.sessions++
			durationSum += p.DurationMin
			if p.Intensity > 0 {
				intensitySum += float64(p.Intensity)
				st.intensitySamples++
			}
			if p.Completed {
				completed++
			}
			switch p.Type {
			case signals.SessionMain:
				main++
			case signals.SessionSocial, signals.SessionCoop:
				social++
			case signals.SessionCompetitive:
				versus++
			case signals.SessionCasual:
				casual++
			}
			if p.Type == signals.SessionMain && p.Intensity > 7 {
				difficult++
			}
			if p.Genre != "" {
				genres[p.Genre] = true
			}
		case signals.SourceGenre:
			st.genreShifts++
			if g := s.GenreShift; g != nil {
				genres[g.FromGenre] = true
				genres[g.ToGenre] = true
			}
		case signals.SourcePlatform:
			st.platformSwitches++
		case signals.SourceIntegration:
			if p := s.Integration; p != nil && p.SocialInteraction {
				st.socialActivity++
			}
		}
	}

	st.uniqueGenres = len(genres)
	if st.sessions > 0 {
		n := float64(st.sessions)
		st.avgDurationMin = durationSum / n
		st.mainRatio = float64(main) / n
		st.socialRatio = float64(social) / n
		st.versusRatio = float64(versus) / n
		st.casualRatio = float64(casual) / n
		st.completionRatio = float64(completed) / n
		st.difficultRatio = float64(difficult) / n
		st.achievementRate = float64(achievements) / n
	}
	if st.intensitySamples > 0 {
		st.avgMoodIntensity = intensitySum / float64(st.intensitySamples)
	}
	return st
}

// deriveArchetype scores each archetype from the evidence and picks the
// highest. Ties break toward the earlier archetype in declaration order, so
// the wanderer default wins only when nothing else scores.
func deriveArchetype(st traitStats) Archetype {
	scores := [...]struct {
		archetype Archetype
		score     float64
	}{
		{ArchetypeWanderer, 0.1 + st.casualRatio*0.5},
		{ArchetypeAchiever, st.completionRatio*0.5 + st.mainRatio*0.3 + math.Min(1, st.achievementRate)*0.2},
		{ArchetypeExplorer, math.Min(1, float64(st.uniqueGenres)/5)*0.6 + math.Min(1, float64(st.platformSwitches)/5)*0.4},
		{ArchetypeSocializer, st.socialRatio*0.7 + math.Min(1, float64(st.socialActivity)/5)*0.3},
		{ArchetypeCompetitor, st.versusRatio*0.7 + st.difficultRatio*0.3},
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.score > best.score {
			best = s
		}
	}
	return best.archetype
}

func deriveIntensity(st traitStats) Intensity {
	// Reported mood intensity is the primary evidence; session length is
	// the fallback when no sessions carried a mood.
	switch {
	case st.intensitySamples > 0 && st.avgMoodIntensity >= 7:
		return IntensityHigh
	case st.intensitySamples > 0 && st.avgMoodIntensity >= 4:
		return IntensityMedium
	case st.intensitySamples > 0:
		return IntensityLow
	case st.avgDurationMin >= 120:
		return IntensityHigh
	case st.avgDurationMin >= 45:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

func derivePacing(st traitStats) Pacing {
	switch {
	case st.avgDurationMin >= 120:
		return PacingMarathon
	case st.avgDurationMin >= 30:
		return PacingFlow
	default:
		return PacingBurst
	}
}

func deriveRisk(st traitStats) RiskProfile {
	switch {
	case st.difficultRatio >= 0.5:
		return RiskDaring
	case st.difficultRatio >= 0.2:
		return RiskBalanced
	default:
		return RiskCautious
	}
}

func deriveSocialStyle(st traitStats) SocialStyle {
	switch {
	case st.versusRatio >= 0.3:
		return SocialVersus
	case st.socialRatio >= 0.4:
		return SocialCoop
	default:
		return SocialSolo
	}
}
