// Package types provides type definitions for structured data used throughout the candidate-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile represents the structured profile extracted from a CV.
// Every field is optional; consumers treat missing values as zero, empty, or unknown.
type CandidateProfile struct {
	ID                     string           `json:"id,omitempty"`
	Name                   string           `json:"name,omitempty"`
	Skills                 []string         `json:"skills,omitempty"`
	WorkExperience         []WorkExperience `json:"work_experience,omitempty"`
	TotalYearsExperience   *int             `json:"total_years_experience,omitempty" validate:"omitempty,min=0"`
	Education              []Education      `json:"education,omitempty"`
	Certifications         []string         `json:"certifications,omitempty"`
	SeniorityLevel         string           `json:"seniority_level,omitempty"`
	Country                string           `json:"country,omitempty"`
	City                   string           `json:"city,omitempty"`
	LocationTypePreference string           `json:"location_type_preference,omitempty"`
	Languages              []string         `json:"languages,omitempty"`
	Summary                string           `json:"summary,omitempty"`
	Achievements           []string         `json:"achievements,omitempty"`
}

// WorkExperience represents a single position in a candidate's work history.
// EndDate is empty or "present" for an ongoing position.
type WorkExperience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education represents a single education entry
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Years returns the candidate's total years of experience, or 0 when unknown.
func (c CandidateProfile) Years() int {
	if c.TotalYearsExperience == nil || *c.TotalYearsExperience < 0 {
		return 0
	}
	return *c.TotalYearsExperience
}
