package metrics

import (
	"fmt"
	"math"
)

// weightSumTolerance absorbs float rounding in operator-supplied weights
const weightSumTolerance = 1e-6

// Weights are the bucket weights applied to the composite score.
// The three buckets must sum to 1.0.
type Weights struct {
	SkillsExperience      float64 `json:"skills_experience"`
	EducationAchievements float64 `json:"education_achievements"`
	QualityRisk           float64 `json:"quality_risk"`
}

// DefaultWeights returns the default bucket weights: 40% skills/experience,
// 30% education/achievements, 30% quality/risk.
func DefaultWeights() Weights {
	return Weights{
		SkillsExperience:      0.40,
		EducationAchievements: 0.30,
		QualityRisk:           0.30,
	}
}

// WeightsError reports an invalid weight configuration
type WeightsError struct {
	Field   string
	Message string
}

func (e *WeightsError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid weights: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid weights: %s", e.Message)
}

// Validate checks that every weight is within [0,1] and that the weights sum to 1.0.
// Weights are never clamped or renormalized.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"skills_experience", w.SkillsExperience},
		{"education_achievements", w.EducationAchievements},
		{"quality_risk", w.QualityRisk},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return &WeightsError{Field: f.name, Message: fmt.Sprintf("must be between 0 and 1, got %v", f.value)}
		}
	}

	sum := w.SkillsExperience + w.EducationAchievements + w.QualityRisk
	if math.Abs(sum-1.0) > weightSumTolerance {
		return &WeightsError{Message: fmt.Sprintf("weights must sum to 1.0, got %.4f", sum)}
	}
	return nil
}

// Tuning holds the heuristic constants behind the skills, keyword density and
// employment gap metrics. They are defaults, not invariants.
type Tuning struct {
	// PartialSkillCredit is awarded for a required skill that only matches a candidate skill by substring
	PartialSkillCredit float64 `json:"partial_skill_credit"`

	// Keyword density curve, in keywords per 100 words
	DensityLowBreakpoint    float64 `json:"density_low_breakpoint"`
	DensityHighBreakpoint   float64 `json:"density_high_breakpoint"`
	StuffingPenaltyPerPoint float64 `json:"stuffing_penalty_per_point"`
	StuffingFloor           float64 `json:"stuffing_floor"`
	NeutralDensityScore     float64 `json:"neutral_density_score"`

	// Employment gaps
	GapGraceMonths       int     `json:"gap_grace_months"`
	GapPenaltyPerMonth   float64 `json:"gap_penalty_per_month"`
	GapMaxPenalty        float64 `json:"gap_max_penalty"`
	GapParseFailureScore float64 `json:"gap_parse_failure_score"`

	// Threshold flags reported in MetricDetails
	SkillsFlagThreshold     float64 `json:"skills_flag_threshold"`
	ConfidenceFlagThreshold float64 `json:"confidence_flag_threshold"`
	GapFlagThreshold        float64 `json:"gap_flag_threshold"`
}

// DefaultTuning returns the stock heuristic constants
func DefaultTuning() Tuning {
	return Tuning{
		PartialSkillCredit:      0.5,
		DensityLowBreakpoint:    2,
		DensityHighBreakpoint:   8,
		StuffingPenaltyPerPoint: 10,
		StuffingFloor:           20,
		NeutralDensityScore:     50,
		GapGraceMonths:          6,
		GapPenaltyPerMonth:      0.5,
		GapMaxPenalty:           3,
		GapParseFailureScore:    8,
		SkillsFlagThreshold:     70,
		ConfidenceFlagThreshold: 80,
		GapFlagThreshold:        8,
	}
}

// Validate rejects tunings that would break the shape of the scoring curves
func (t Tuning) Validate() error {
	switch {
	case t.PartialSkillCredit < 0 || t.PartialSkillCredit > 1:
		return fmt.Errorf("invalid tuning: partial_skill_credit must be between 0 and 1, got %v", t.PartialSkillCredit)
	case t.DensityLowBreakpoint <= 0 || t.DensityHighBreakpoint <= t.DensityLowBreakpoint:
		return fmt.Errorf("invalid tuning: density breakpoints must satisfy 0 < low < high, got %v and %v",
			t.DensityLowBreakpoint, t.DensityHighBreakpoint)
	case t.StuffingPenaltyPerPoint < 0:
		return fmt.Errorf("invalid tuning: stuffing_penalty_per_point must be non-negative")
	case t.StuffingFloor < 0 || t.StuffingFloor > 100:
		return fmt.Errorf("invalid tuning: stuffing_floor must be between 0 and 100")
	case t.NeutralDensityScore < 0 || t.NeutralDensityScore > 100:
		return fmt.Errorf("invalid tuning: neutral_density_score must be between 0 and 100")
	case t.GapGraceMonths < 0 || t.GapPenaltyPerMonth < 0 || t.GapMaxPenalty < 0:
		return fmt.Errorf("invalid tuning: gap parameters must be non-negative")
	case t.GapParseFailureScore < 0 || t.GapParseFailureScore > 10:
		return fmt.Errorf("invalid tuning: gap_parse_failure_score must be between 0 and 10")
	}
	return nil
}
