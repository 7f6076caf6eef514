package metrics

import (
	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	noEducationFloor      = 3.0
	certificationPoints   = 0.5
	maxCertificationBonus = 2.0
	requirementMatchBonus = 2.0
)

// degreeLevels maps whole degree words to level points
var degreeLevels = map[string]float64{
	"phd":         6,
	"doctorate":   6,
	"doctoral":    6,
	"dphil":       6,
	"master":      5,
	"masters":     5,
	"mba":         5,
	"msc":         5,
	"ms":          5,
	"ma":          5,
	"meng":        5,
	"bachelor":    4,
	"bachelors":   4,
	"bsc":         4,
	"bs":          4,
	"ba":          4,
	"beng":        4,
	"btech":       4,
	"associate":   3,
	"associates":  3,
	"diploma":     2,
	"certificate": 2,
}

// requirementStopWords are ignored when comparing degree text with the job's education requirement
var requirementStopWords = map[string]bool{
	"a": true, "an": true, "and": true, "or": true, "the": true,
	"in": true, "of": true, "for": true, "with": true, "to": true,
	"degree": true, "equivalent": true, "related": true, "field": true,
}

// EducationFit scores degree level, certifications and requirement match (0-10).
// A candidate without education entries starts from a 3.0 floor instead of zero.
func EducationFit(education []types.Education, certifications []string, requiredEducation string) float64 {
	certBonus := min(float64(len(certifications))*certificationPoints, maxCertificationBonus)

	if len(education) == 0 {
		return min(noEducationFloor+certBonus, 10.0)
	}

	score := 0.0
	for _, edu := range education {
		score = max(score, DegreeLevel(edu.Degree))
	}
	score += certBonus

	if MatchesEducationRequirement(education, requiredEducation) {
		score += requirementMatchBonus
	}

	return min(score, 10.0)
}

// DegreeLevel returns the level points for a degree description, or 0 when unrecognized
func DegreeLevel(degree string) float64 {
	level := 0.0
	for _, word := range parsing.Words(degree) {
		level = max(level, degreeLevels[word])
	}
	return level
}

// MatchesEducationRequirement reports whether any degree shares a significant word with the requirement
func MatchesEducationRequirement(education []types.Education, requiredEducation string) bool {
	required := make(map[string]bool)
	for _, word := range parsing.Words(requiredEducation) {
		if !requirementStopWords[word] {
			required[word] = true
		}
	}
	if len(required) == 0 {
		return false
	}

	for _, edu := range education {
		for _, word := range parsing.Words(edu.Degree) {
			if required[word] {
				return true
			}
		}
	}
	return false
}
