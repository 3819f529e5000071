// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"fmt"
	"strings"
)

// Tone is the closed set of narrative tones.
type Tone int

const (
	// ToneCalm is measured and even.
	ToneCalm Tone = iota
	// ToneHyped is energetic and upbeat.
	ToneHyped
	// ToneReflective is thoughtful and story-minded.
	ToneReflective
	// ToneCompetitive is sharp and driven.
	ToneCompetitive
	// ToneComfort is warm and familiar.
	ToneComfort
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneCalm:
		return "calm"
	case ToneHyped:
		return "hyped"
	case ToneReflective:
		return "reflective"
	case ToneCompetitive:
		return "competitive"
	case ToneComfort:
		return "comfort"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tone) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Narrative is a human-readable persona summary with a tone.
type Narrative struct {
	// Summary is the assembled persona description.
	Summary string `json:"summary"`

	// Tone is the narrative tone.
	Tone Tone `json:"tone"`
}

// archetypeLines are the opening sentences per archetype.
var archetypeLines = map[Archetype]string{
	ArchetypeWanderer:   "You drift between worlds, picking up whatever catches your eye.",
	ArchetypeAchiever:   "You finish what you start and the completion list proves it.",
	ArchetypeExplorer:   "You treat the library as a map with the edges still undrawn.",
	ArchetypeSocializer: "Games are where you meet people, and the people are the point.",
	ArchetypeCompetitor: "You play to win, and everything else is practice.",
}

// pacingPhrases describe session rhythm per pacing style.
var pacingPhrases = map[Pacing]string{
	PacingBurst:    "short, sharp sessions",
	PacingFlow:     "steady, comfortable sessions",
	PacingMarathon: "long, immersive marathons",
}

// riskPhrases describe content appetite per risk profile.
var riskPhrases = map[RiskProfile]string{
	RiskCautious: "sticking close to what you know",
	RiskBalanced: "mixing comfort picks with the occasional stretch",
	RiskDaring:   "reaching for whatever pushes back hardest",
}

// moodLines append a present-tense mood sentence per mood.
var moodLines = map[Mood]string{
	MoodCompetitive: "Right now you want something worth winning.",
	MoodChill:       "Right now you want something easygoing.",
	MoodEnergetic:   "Right now you want pace and momentum.",
	MoodFocused:     "Right now you want something that demands full attention.",
	MoodSocial:      "Right now you want company in the lobby.",
	MoodCreative:    "Right now you want room to build and express.",
	MoodStory:       "Right now you want a story worth following.",
	MoodExploratory: "Right now you want somewhere new to wander.",
}

// moodTones selects the tone when a current mood exists.
var moodTones = map[Mood]Tone{
	MoodCompetitive: ToneCompetitive,
	MoodChill:       ToneCalm,
	MoodEnergetic:   ToneHyped,
	MoodFocused:     ToneCalm,
	MoodSocial:      ToneComfort,
	MoodCreative:    ToneReflective,
	MoodStory:       ToneReflective,
	MoodExploratory: ToneHyped,
}

// BuildNarrative assembles the persona summary by deterministic template
// selection keyed on the trait tuple and mood. There is no randomness and no
// external model call; identical context always yields an identical
// narrative.
func BuildNarrative(ctx MoodContext) Narrative {
	var b strings.Builder

	b.WriteString(archetypeLines[ctx.Traits.Archetype])
	b.WriteString(fmt.Sprintf(" You lean toward %s, %s.",
		pacingPhrases[ctx.Traits.Pacing], riskPhrases[ctx.Traits.RiskProfile]))

	switch ctx.Traits.SocialStyle {
	case SocialCoop:
		b.WriteString(" You'd rather clear it together than alone.")
	case SocialVersus:
		b.WriteString(" A scoreboard makes everything more interesting.")
	case SocialSolo:
		// Solo play is the default register; no extra sentence.
	}

	if ctx.Mood != nil {
		b.WriteString(" ")
		b.WriteString(moodLines[ctx.Mood.Mood])
	}

	return Narrative{
		Summary: b.String(),
		Tone:    selectTone(ctx),
	}
}

// selectTone picks the tone from the current mood when present, otherwise
// from the trait tuple.
func selectTone(ctx MoodContext) Tone {
	if ctx.Mood != nil {
		if tone, ok := moodTones[ctx.Mood.Mood]; ok {
			return tone
		}
	}

	switch {
	case ctx.Traits.Archetype == ArchetypeCompetitor || ctx.Traits.SocialStyle == SocialVersus:
		return ToneCompetitive
	case ctx.Traits.Intensity == IntensityHigh:
		return ToneHyped
	case ctx.Traits.Archetype == ArchetypeWanderer:
		return ToneComfort
	case ctx.Traits.Archetype == ArchetypeExplorer:
		return ToneReflective
	default:
		return ToneCalm
	}
}
