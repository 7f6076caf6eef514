package types

// JobProfile represents the structured requirements extracted from a job description
type JobProfile struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"title,omitempty"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	PreferredSkills    []string `json:"preferred_skills,omitempty"`
	MinExperienceYears *int     `json:"min_experience_years,omitempty" validate:"omitempty,min=0"`
	MaxExperienceYears *int     `json:"max_experience_years,omitempty" validate:"omitempty,min=0"`
	RequiredEducation  string   `json:"required_education,omitempty"`
	PreferredEducation string   `json:"preferred_education,omitempty"`
	TechStack          []string `json:"tech_stack,omitempty"`
	SeniorityLevel     string   `json:"seniority_level,omitempty"`
	RemoteType         string   `json:"remote_type,omitempty"`
	Locations          []string `json:"locations,omitempty"`
	RequiredLanguages  []string `json:"required_languages,omitempty"`
}

// MinYears returns the minimum required years of experience, or 0 when unspecified.
func (j JobProfile) MinYears() int {
	if j.MinExperienceYears == nil || *j.MinExperienceYears < 0 {
		return 0
	}
	return *j.MinExperienceYears
}

// Keywords returns the terms scanned for in CV text: required skills followed by the tech stack.
// Duplicates are kept so a term listed in both places weighs twice.
func (j JobProfile) Keywords() []string {
	keywords := make([]string, 0, len(j.RequiredSkills)+len(j.TechStack))
	keywords = append(keywords, j.RequiredSkills...)
	keywords = append(keywords, j.TechStack...)
	return keywords
}
