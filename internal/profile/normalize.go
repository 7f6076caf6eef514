package profile

import (
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// NormalizeCandidateProfile trims free-text fields and deduplicates list fields in place.
// Certifications keep repeats because each listed certification earns education credit.
func NormalizeCandidateProfile(p *types.CandidateProfile) {
	p.Name = strings.TrimSpace(p.Name)
	p.SeniorityLevel = strings.TrimSpace(p.SeniorityLevel)
	p.Country = strings.TrimSpace(p.Country)
	p.City = strings.TrimSpace(p.City)
	p.LocationTypePreference = strings.TrimSpace(p.LocationTypePreference)

	p.Skills = dedupeTerms(p.Skills)
	p.Certifications = trimTerms(p.Certifications)
	p.Languages = dedupeTerms(p.Languages)
}

// NormalizeJobProfile trims free-text fields and deduplicates list fields in place.
// Tech stack entries are deduplicated too; keyword weighting still counts a term listed
// under both required skills and tech stack twice.
func NormalizeJobProfile(j *types.JobProfile) {
	j.SeniorityLevel = strings.TrimSpace(j.SeniorityLevel)
	j.RemoteType = strings.TrimSpace(j.RemoteType)

	j.RequiredSkills = dedupeTerms(j.RequiredSkills)
	j.PreferredSkills = dedupeTerms(j.PreferredSkills)
	j.TechStack = dedupeTerms(j.TechStack)
	j.Locations = dedupeTerms(j.Locations)
	j.RequiredLanguages = dedupeTerms(j.RequiredLanguages)
}

// trimTerms trims entries and drops blanks
func trimTerms(terms []string) []string {
	if terms == nil {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if trimmed := strings.TrimSpace(term); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// dedupeTerms trims entries, drops blanks and removes case-insensitive duplicates,
// keeping the first spelling
func dedupeTerms(terms []string) []string {
	if terms == nil {
		return nil
	}
	out := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
