package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// remoteCompatibility maps a job's work arrangement to the candidate preferences it accepts
var remoteCompatibility = map[string][]string{
	"onsite": {"onsite", "hybrid"},
	"hybrid": {"remote", "hybrid", "onsite"},
	"remote": {"remote", "hybrid"},
}

// Overrides replace individual job requirements when building hard constraints.
// Zero values leave the job's own requirement in place.
type Overrides struct {
	RequiredSkills     []string `json:"required_skills,omitempty"`
	MinExperienceYears *int     `json:"min_experience_years,omitempty"`
	SeniorityLevel     string   `json:"seniority_level,omitempty"`
	RemoteType         string   `json:"remote_type,omitempty"`
	Locations          []string `json:"locations,omitempty"`
	RequiredLanguages  []string `json:"required_languages,omitempty"`
}

// Constraints are hard filters applied to retrieved candidates before scoring.
// All string fields are normalized to lowercase.
type Constraints struct {
	RequiredSkills     []string
	MinExperienceYears int
	Seniority          types.Seniority
	RemoteType         string
	Locations          []string
	Languages          []string
}

// BuildConstraints derives hard constraints from the job, applying any overrides
func BuildConstraints(job types.JobProfile, overrides Overrides) Constraints {
	skills := job.RequiredSkills
	if len(overrides.RequiredSkills) > 0 {
		skills = overrides.RequiredSkills
	}

	minYears := job.MinYears()
	if overrides.MinExperienceYears != nil {
		minYears = max(*overrides.MinExperienceYears, 0)
	}

	seniority := job.SeniorityLevel
	if overrides.SeniorityLevel != "" {
		seniority = overrides.SeniorityLevel
	}

	remote := job.RemoteType
	if overrides.RemoteType != "" {
		remote = overrides.RemoteType
	}

	locations := job.Locations
	if len(overrides.Locations) > 0 {
		locations = overrides.Locations
	}

	languages := job.RequiredLanguages
	if len(overrides.RequiredLanguages) > 0 {
		languages = overrides.RequiredLanguages
	}

	return Constraints{
		RequiredSkills:     parsing.TermSet(skills),
		MinExperienceYears: minYears,
		Seniority:          types.ParseSeniority(seniority),
		RemoteType:         parsing.NormalizeTerm(remote),
		Locations:          parsing.TermSet(locations),
		Languages:          parsing.TermSet(languages),
	}
}

// Matches reports whether the candidate satisfies every constraint.
// When it does not, reason names the first failing constraint.
func (c Constraints) Matches(candidate types.CandidateProfile) (ok bool, reason string) {
	if len(c.RequiredSkills) > 0 {
		have := termLookup(candidate.Skills)
		for _, skill := range c.RequiredSkills {
			if !have[skill] {
				return false, fmt.Sprintf("missing required skill %q", skill)
			}
		}
	}

	if c.MinExperienceYears > 0 && candidate.Years() < c.MinExperienceYears {
		return false, fmt.Sprintf("%d years of experience is below the minimum of %d", candidate.Years(), c.MinExperienceYears)
	}

	if c.Seniority.Known() {
		level := types.ParseSeniority(candidate.SeniorityLevel)
		if level < c.Seniority {
			return false, fmt.Sprintf("seniority %s is below %s", level, c.Seniority)
		}
	}

	if c.RemoteType != "" && !ArrangementCompatible(c.RemoteType, candidate.LocationTypePreference) {
		return false, fmt.Sprintf("location preference %q is incompatible with %s", candidate.LocationTypePreference, c.RemoteType)
	}

	if len(c.Locations) > 0 && !LocationCompatible(c.Locations, candidate) {
		return false, "location does not match"
	}

	if len(c.Languages) > 0 && !LanguageCompatible(c.Languages, candidate.Languages) {
		return false, "no required language spoken"
	}

	return true, ""
}

// Describe renders the active constraints as human-readable lines
func (c Constraints) Describe() []string {
	var lines []string
	if len(c.RequiredSkills) > 0 {
		lines = append(lines, "required skills: "+strings.Join(c.RequiredSkills, ", "))
	}
	if c.MinExperienceYears > 0 {
		lines = append(lines, fmt.Sprintf("minimum experience: %d years", c.MinExperienceYears))
	}
	if c.Seniority.Known() {
		lines = append(lines, "seniority: "+strings.Join(c.Seniority.AtOrAbove(), ", "))
	}
	if c.RemoteType != "" {
		accepted, ok := remoteCompatibility[c.RemoteType]
		if !ok {
			accepted = []string{c.RemoteType}
		}
		lines = append(lines, fmt.Sprintf("work arrangement: %s (accepts %s)", c.RemoteType, strings.Join(accepted, ", ")))
	}
	if len(c.Locations) > 0 {
		lines = append(lines, "locations: "+strings.Join(c.Locations, ", "))
	}
	if len(c.Languages) > 0 {
		lines = append(lines, "languages (any of): "+strings.Join(c.Languages, ", "))
	}
	return lines
}

// ArrangementCompatible reports whether a candidate's location-type preference fits the job's
// remote type. An unspecified job remote type accepts everyone; an unrecognized one requires
// an exact match.
func ArrangementCompatible(jobRemoteType, candidatePreference string) bool {
	job := parsing.NormalizeTerm(jobRemoteType)
	if job == "" {
		return true
	}
	pref := parsing.NormalizeTerm(candidatePreference)
	accepted, ok := remoteCompatibility[job]
	if !ok {
		return pref == job
	}
	for _, a := range accepted {
		if a == pref {
			return true
		}
	}
	return false
}

// LocationCompatible reports whether any job location appears in the candidate's country or city
func LocationCompatible(locations []string, candidate types.CandidateProfile) bool {
	terms := parsing.TermSet(locations)
	if len(terms) == 0 {
		return true
	}
	country := parsing.NormalizeTerm(candidate.Country)
	city := parsing.NormalizeTerm(candidate.City)
	for _, loc := range terms {
		if (country != "" && strings.Contains(country, loc)) || (city != "" && strings.Contains(city, loc)) {
			return true
		}
	}
	return false
}

// LanguageCompatible reports whether the candidate speaks at least one required language
func LanguageCompatible(required, spoken []string) bool {
	terms := parsing.TermSet(required)
	if len(terms) == 0 {
		return true
	}
	have := termLookup(spoken)
	for _, lang := range terms {
		if have[lang] {
			return true
		}
	}
	return false
}

func termLookup(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range parsing.TermSet(terms) {
		set[t] = true
	}
	return set
}
