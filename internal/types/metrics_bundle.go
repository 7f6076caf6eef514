package types

// MetricsBundle holds the scores produced for one candidate against one job.
// Skills match, keyword density and AI confidence are percentages (0-100);
// the other five sub-scores are ratings (0-10). The composite is always 0-100.
type MetricsBundle struct {
	SkillsMatchScore         float64       `json:"skills_match_score"`
	ExperienceRelevanceScore float64       `json:"experience_relevance_score"`
	EducationFitScore        float64       `json:"education_fit_score"`
	AchievementImpactScore   float64       `json:"achievement_impact_score"`
	KeywordDensityScore      float64       `json:"keyword_density_score"`
	EmploymentGapScore       float64       `json:"employment_gap_score"`
	ReadabilityScore         float64       `json:"readability_score"`
	AIConfidenceScore        float64       `json:"ai_confidence_score"`
	CompositeScore           float64       `json:"composite_score"`
	Details                  MetricDetails `json:"metric_details"`
}

// MetricDetails carries the diagnostic context of a MetricsBundle
type MetricDetails struct {
	SemanticSimilarity float64        `json:"semantic_similarity"`
	WeightsUsed        WeightsUsed    `json:"weights_used"`
	ThresholdFlags     ThresholdFlags `json:"threshold_flags"`
	// DateParseFallback is set when the employment gap score fell back to its default
	// because a work-history date could not be parsed.
	DateParseFallback bool `json:"date_parse_fallback,omitempty"`
}

// WeightsUsed records the bucket weights applied to the composite score
type WeightsUsed struct {
	SkillsExperience      float64 `json:"skills_experience"`
	EducationAchievements float64 `json:"education_achievements"`
	QualityRisk           float64 `json:"quality_risk"`
}

// ThresholdFlags are boolean warnings derived from the sub-scores
type ThresholdFlags struct {
	SkillsBelow70          bool `json:"skills_below_70"`
	ConfidenceBelow80      bool `json:"confidence_below_80"`
	EmploymentGapsDetected bool `json:"employment_gaps_detected"`
}
