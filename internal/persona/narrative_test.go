// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package persona

import (
	"strings"
	"testing"
	"time"
)

func TestBuildNarrativeDeterministic(t *testing.T) {
	ctx := MoodContext{
		Traits: Traits{
			Archetype:   ArchetypeAchiever,
			Intensity:   IntensityHigh,
			Pacing:      PacingMarathon,
			RiskProfile: RiskDaring,
			SocialStyle: SocialSolo,
		},
		Mood: &MoodState{Mood: MoodFocused, Intensity: 8, Timestamp: time.Now()},
	}

	a := BuildNarrative(ctx)
	b := BuildNarrative(ctx)
	if a != b {
		t.Errorf("BuildNarrative not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestBuildNarrativeContent(t *testing.T) {
	ctx := MoodContext{
		Traits: Traits{
			Archetype:   ArchetypeExplorer,
			Pacing:      PacingFlow,
			RiskProfile: RiskBalanced,
			SocialStyle: SocialCoop,
		},
		Mood: &MoodState{Mood: MoodExploratory, Intensity: 6},
	}

	n := BuildNarrative(ctx)

	for _, want := range []string{
		archetypeLines[ArchetypeExplorer],
		pacingPhrases[PacingFlow],
		riskPhrases[RiskBalanced],
		"clear it together",
		moodLines[MoodExploratory],
	} {
		if !strings.Contains(n.Summary, want) {
			t.Errorf("summary missing %q:\n%s", want, n.Summary)
		}
	}
}

func TestBuildNarrativeSoloOmitsSocialSentence(t *testing.T) {
	ctx := MoodContext{Traits: Traits{Archetype: ArchetypeWanderer, SocialStyle: SocialSolo}}
	n := BuildNarrative(ctx)

	if strings.Contains(n.Summary, "together") || strings.Contains(n.Summary, "scoreboard") {
		t.Errorf("solo narrative carries a social sentence:\n%s", n.Summary)
	}
}

func TestBuildNarrativeNoMoodOmitsMoodSentence(t *testing.T) {
	ctx := MoodContext{Traits: Traits{Archetype: ArchetypeAchiever}}
	n := BuildNarrative(ctx)

	if strings.Contains(n.Summary, "Right now") {
		t.Errorf("moodless narrative carries a mood sentence:\n%s", n.Summary)
	}
}

func TestSelectTone(t *testing.T) {
	tests := []struct {
		name string
		ctx  MoodContext
		want Tone
	}{
		{
			"current mood wins over traits",
			MoodContext{
				Traits: Traits{Archetype: ArchetypeCompetitor},
				Mood:   &MoodState{Mood: MoodChill},
			},
			ToneCalm,
		},
		{
			"competitor archetype without mood",
			MoodContext{Traits: Traits{Archetype: ArchetypeCompetitor}},
			ToneCompetitive,
		},
		{
			"versus style without mood",
			MoodContext{Traits: Traits{Archetype: ArchetypeAchiever, SocialStyle: SocialVersus}},
			ToneCompetitive,
		},
		{
			"high intensity without mood",
			MoodContext{Traits: Traits{Archetype: ArchetypeAchiever, Intensity: IntensityHigh}},
			ToneHyped,
		},
		{
			"wanderer default",
			MoodContext{Traits: Traits{Archetype: ArchetypeWanderer}},
			ToneComfort,
		},
		{
			"explorer default",
			MoodContext{Traits: Traits{Archetype: ArchetypeExplorer}},
			ToneReflective,
		},
		{
			"achiever default",
			MoodContext{Traits: Traits{Archetype: ArchetypeAchiever}},
			ToneCalm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildNarrative(tt.ctx).Tone; got != tt.want {
				t.Errorf("Tone = %v, want %v", got, tt.want)
			}
		})
	}
}
