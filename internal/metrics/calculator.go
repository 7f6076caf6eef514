// Package metrics scores a candidate profile against a job profile.
//
// The Calculator produces eight independent sub-metrics and a weighted composite:
//
//   - skills match (0-100) and experience relevance (0-10) form the skills/experience bucket
//   - education fit and achievement impact (0-10) form the education/achievements bucket
//   - keyword density (0-100), employment gaps (0-10), readability (0-10) and
//     AI confidence (0-100) form the quality/risk bucket
//
// Rating metrics are multiplied by 10 before bucketing so every bucket is 0-100.
// The calculator is pure: it performs no I/O and holds only immutable configuration,
// so a single instance may be shared across goroutines.
package metrics

import (
	"math"
	"time"

	"github.com/jonathan/candidate-matcher/internal/types"
)

// Calculator computes MetricsBundles with a fixed weight and tuning configuration
type Calculator struct {
	weights Weights
	tuning  Tuning
	now     func() time.Time
}

// Option configures a Calculator
type Option func(*Calculator)

// WithWeights overrides the default bucket weights
func WithWeights(w Weights) Option {
	return func(c *Calculator) {
		c.weights = w
	}
}

// WithTuning overrides the default heuristic constants
func WithTuning(t Tuning) Option {
	return func(c *Calculator) {
		c.tuning = t
	}
}

// WithClock sets the time source used to resolve ongoing positions and recency
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCalculator creates a Calculator. Weights and tuning are validated once here and
// never change afterwards.
func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		weights: DefaultWeights(),
		tuning:  DefaultTuning(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.weights.Validate(); err != nil {
		return nil, err
	}
	if err := c.tuning.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Weights returns the bucket weights in use
func (c *Calculator) Weights() Weights {
	return c.weights
}

// Tuning returns the heuristic constants in use
func (c *Calculator) Tuning() Tuning {
	return c.tuning
}

// CalculateAllMetrics scores one candidate against one job. semanticSimilarity is the
// retrieval cosine similarity; values outside [0,1] are clamped and NaN counts as 0.
// Missing profile fields never cause a failure. The job posting text is accepted so callers
// pass the same inputs as the retrieval step; every metric reads the structured job profile.
func (c *Calculator) CalculateAllMetrics(
	candidate types.CandidateProfile,
	candidateText string,
	job types.JobProfile,
	_ string,
	semanticSimilarity float64,
) types.MetricsBundle {
	now := c.now()
	similarity := sanitizeSimilarity(semanticSimilarity)

	gapScore, gapFallback := EmploymentGap(candidate.WorkExperience, now, c.tuning)

	scores := SubScores{
		SkillsMatch: SkillsMatch(candidate.Skills, job.RequiredSkills, c.tuning.PartialSkillCredit),
		ExperienceRelevance: ExperienceRelevance(
			candidate.WorkExperience, candidate.Years(), job.MinYears(), job.TechStack, now),
		EducationFit:      EducationFit(candidate.Education, candidate.Certifications, job.RequiredEducation),
		AchievementImpact: AchievementImpact(candidateText, candidate.Achievements),
		KeywordDensity:    KeywordDensity(candidateText, job.Keywords(), c.tuning),
		EmploymentGap:     gapScore,
		Readability:       Readability(candidateText),
		AIConfidence:      AIConfidence(candidate, similarity),
	}

	return types.MetricsBundle{
		SkillsMatchScore:         round2(scores.SkillsMatch),
		ExperienceRelevanceScore: round2(scores.ExperienceRelevance),
		EducationFitScore:        round2(scores.EducationFit),
		AchievementImpactScore:   round2(scores.AchievementImpact),
		KeywordDensityScore:      round2(scores.KeywordDensity),
		EmploymentGapScore:       round2(scores.EmploymentGap),
		ReadabilityScore:         round2(scores.Readability),
		AIConfidenceScore:        round2(scores.AIConfidence),
		CompositeScore:           round2(Composite(scores, c.weights)),
		Details: types.MetricDetails{
			SemanticSimilarity: similarity,
			WeightsUsed: types.WeightsUsed{
				SkillsExperience:      c.weights.SkillsExperience,
				EducationAchievements: c.weights.EducationAchievements,
				QualityRisk:           c.weights.QualityRisk,
			},
			ThresholdFlags: types.ThresholdFlags{
				SkillsBelow70:          scores.SkillsMatch < c.tuning.SkillsFlagThreshold,
				ConfidenceBelow80:      scores.AIConfidence < c.tuning.ConfidenceFlagThreshold,
				EmploymentGapsDetected: scores.EmploymentGap < c.tuning.GapFlagThreshold,
			},
			DateParseFallback: gapFallback,
		},
	}
}

// sanitizeSimilarity maps NaN and infinities to 0 and clamps into [0,1]
func sanitizeSimilarity(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return min(max(s, 0), 1)
}

// round2 rounds half away from zero to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
