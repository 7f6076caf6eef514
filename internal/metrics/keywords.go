package metrics

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/parsing"
)

// KeywordDensity scores how often job keywords appear in the CV text (0-100).
// The curve rises through the healthy range and falls again for keyword stuffing.
// Without keywords the score is neutral; an empty CV with keywords scores 0.
func KeywordDensity(cvText string, keywords []string, tuning Tuning) float64 {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if term := parsing.NormalizeTerm(kw); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return tuning.NeutralDensityScore
	}

	lower := strings.ToLower(cvText)
	wordCount := len(strings.Fields(lower))
	if wordCount == 0 {
		return 0.0
	}

	occurrences := 0
	for _, term := range terms {
		occurrences += strings.Count(lower, term)
	}

	density := float64(occurrences) / float64(wordCount) * 100
	return DensityScore(density, tuning)
}

// DensityScore maps a keyword density (keywords per 100 words) onto the scoring curve:
// linear 0-50 below the low breakpoint, linear 50-100 up to the high breakpoint, then a
// penalty per point above it, floored at the stuffing floor.
func DensityScore(density float64, tuning Tuning) float64 {
	low, high := tuning.DensityLowBreakpoint, tuning.DensityHighBreakpoint

	var score float64
	switch {
	case density < low:
		score = density / low * 50
	case density <= high:
		score = 50 + (density-low)/(high-low)*50
	default:
		score = max(100-(density-high)*tuning.StuffingPenaltyPerPoint, tuning.StuffingFloor)
	}

	return min(max(score, 0), 100.0)
}
