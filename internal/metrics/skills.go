package metrics

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/parsing"
)

// SkillsMatch returns the share of required skills covered by the candidate (0-100).
// Exact case-insensitive matches count fully; a required skill that is a substring of,
// or contains, a candidate skill earns partialCredit. No required skills yields 100.
func SkillsMatch(candidateSkills, requiredSkills []string, partialCredit float64) float64 {
	required := parsing.TermSet(requiredSkills)
	if len(required) == 0 {
		return 100.0
	}

	candidate := parsing.TermSet(candidateSkills)
	candidateSet := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		candidateSet[skill] = true
	}

	credit := 0.0
	for _, req := range required {
		if candidateSet[req] {
			credit += 1.0
			continue
		}
		for _, skill := range candidate {
			if strings.Contains(skill, req) || strings.Contains(req, skill) {
				credit += partialCredit
				break
			}
		}
	}

	return min(credit/float64(len(required))*100, 100.0)
}

// SkillOverlap splits the required skills into those the candidate has exactly and those missing.
// Comparison is case-insensitive; the returned names keep the job's spelling.
func SkillOverlap(candidateSkills, requiredSkills []string) (matched, missing []string) {
	candidateSet := make(map[string]bool)
	for _, skill := range parsing.TermSet(candidateSkills) {
		candidateSet[skill] = true
	}

	seen := make(map[string]bool)
	matched = make([]string, 0)
	missing = make([]string, 0)
	for _, req := range requiredSkills {
		key := parsing.NormalizeTerm(req)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if candidateSet[key] {
			matched = append(matched, strings.TrimSpace(req))
		} else {
			missing = append(missing, strings.TrimSpace(req))
		}
	}
	return matched, missing
}
