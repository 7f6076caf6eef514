package types

// RankedCandidates represents the outcome of ranking a candidate pool against one job
type RankedCandidates struct {
	JobID              string            `json:"job_id,omitempty"`
	Summary            RankingSummary    `json:"summary"`
	Ranked             []RankedCandidate `json:"ranked"`
	Considered         int               `json:"considered"`
	Filtered           int               `json:"filtered"`
	ConstraintsApplied []string          `json:"constraints_applied,omitempty"`
}

// RankingSummary describes the role a pool was ranked against
type RankingSummary struct {
	RoleTitle              string   `json:"role_title"`
	PrimaryStackOrDomain   string   `json:"primary_stack_or_domain"`
	KeyRequiredSkills      []string `json:"key_required_skills"`
	NiceToHaveSkills       []string `json:"nice_to_have_skills"`
	HardConstraintsApplied []string `json:"hard_constraints_applied"`
}

// RankedCandidate represents a single scored candidate with its explanation
type RankedCandidate struct {
	CandidateID        string         `json:"candidate_id"`
	Name               string         `json:"name,omitempty"`
	CurrentRole        string         `json:"current_role"`
	SemanticSimilarity float64        `json:"semantic_similarity"`
	Metrics            MetricsBundle  `json:"metrics"`
	Breakdown          MatchBreakdown `json:"breakdown"`
}

// MatchBreakdown explains how a candidate lines up with the job's stated requirements
type MatchBreakdown struct {
	MatchedSkills         []string        `json:"matched_skills"`
	MissingRequiredSkills []string        `json:"missing_required_skills"`
	NiceToHaveCovered     []string        `json:"nice_to_have_covered"`
	SeniorityMatch        string          `json:"seniority_match"`
	Experience            ExperienceMatch `json:"experience"`
	Location              LocationMatch   `json:"location_match"`
	Language              LanguageMatch   `json:"language_match"`
	OtherFactors          []string        `json:"other_relevant_factors"`
	Rationale             string          `json:"rationale"`
}

// ExperienceMatch summarizes the candidate's experience against the job's minimum
type ExperienceMatch struct {
	TotalYears       int    `json:"total_years_experience"`
	RelevantYears    int    `json:"relevant_experience_years"`
	RequiredMinYears int    `json:"required_min_years"`
	MeetsMinimum     bool   `json:"meets_minimum"`
	RelevantSummary  string `json:"relevant_summary"`
}

// LocationMatch describes location and work-arrangement compatibility
type LocationMatch struct {
	JobLocationType       string `json:"job_location_type,omitempty"`
	CandidatePreference   string `json:"candidate_location_type_preference,omitempty"`
	Compatible            bool   `json:"compatible"`
	ArrangementCompatible bool   `json:"arrangement_compatible"`
}

// LanguageMatch describes spoken-language compatibility
type LanguageMatch struct {
	Required   []string `json:"job_languages_required,omitempty"`
	Candidate  []string `json:"candidate_languages,omitempty"`
	Compatible bool     `json:"compatible"`
}
