package metrics

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	missingFieldPenalty    = 15.0
	incompleteEntryPenalty = 5.0
	extractionBlendWeight  = 0.7
	similarityBlendWeight  = 0.3
)

// AIConfidence estimates how reliable the extracted profile is (0-100).
// Missing name, skills or total years each cost 15 points before the result is blended
// with semantic similarity; each work entry without title or company costs 5 more.
func AIConfidence(profile types.CandidateProfile, semanticSimilarity float64) float64 {
	confidence := 100.0
	confidence -= float64(MissingCriticalFields(profile)) * missingFieldPenalty

	confidence = confidence*extractionBlendWeight + semanticSimilarity*100*similarityBlendWeight

	for _, exp := range profile.WorkExperience {
		if strings.TrimSpace(exp.Title) == "" || strings.TrimSpace(exp.Company) == "" {
			confidence -= incompleteEntryPenalty
		}
	}

	return min(max(confidence, 0.0), 100.0)
}

// MissingCriticalFields counts which of name, skills and total years of experience are absent.
// Zero years counts as absent.
func MissingCriticalFields(profile types.CandidateProfile) int {
	missing := 0
	if strings.TrimSpace(profile.Name) == "" {
		missing++
	}
	if len(profile.Skills) == 0 {
		missing++
	}
	if profile.Years() == 0 {
		missing++
	}
	return missing
}
