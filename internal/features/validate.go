// PlayAtlas - Gaming Library Analytics and Persona Inference
// Copyright 2026 PlayAtlas contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playatlas/playatlas

package features

import "fmt"

// Severity classifies a validation finding.
type Severity int

const (
	// SeverityAdvisory marks a suspicious but acceptable combination.
	SeverityAdvisory Severity = iota
	// SeverityViolation marks a value outside its contractual bounds.
	SeverityViolation
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityAdvisory:
		return "advisory"
	case SeverityViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// Issue is a single validation finding attached to an extraction result.
type Issue struct {
	// Feature names the dimension the finding concerns.
	Feature string `json:"feature"`

	// Severity classifies the finding.
	Severity Severity `json:"severity"`

	// Message describes the finding.
	Message string `json:"message"`
}

// Validate checks an extraction result against its contract. Bound
// violations and suspicious combinations are reported as issues; nothing
// is ever rejected here.
func Validate(res Result) []Issue {
	var issues []Issue

	dims := []struct {
		name  string
		value float64
	}{
		{"engagement_volatility", res.Vector.EngagementVolatility},
		{"challenge_seeking", res.Vector.ChallengeSeeking},
		{"social_openness", res.Vector.SocialOpenness},
		{"exploration_bias", res.Vector.ExplorationBias},
		{"focus_stability", res.Vector.FocusStability},
	}
	for _, d := range dims {
		if d.value < 0 || d.value > 1 {
			issues = append(issues, Issue{
				Feature:  d.name,
				Severity: SeverityViolation,
				Message:  fmt.Sprintf("value %.3f outside [0,1]", d.value),
			})
		}
	}

	if res.Vector.EngagementVolatility > 0.9 {
		issues = append(issues, Issue{
			Feature:  "engagement_volatility",
			Severity: SeverityAdvisory,
			Message:  "extreme volatility; session durations may be unreliable",
		})
	}

	if res.Vector.ChallengeSeeking > 0.9 && res.Vector.FocusStability < 0.2 {
		issues = append(issues, Issue{
			Feature:  "challenge_seeking",
			Severity: SeverityAdvisory,
			Message:  "high challenge seeking with very low focus stability",
		})
	}

	return issues
}
