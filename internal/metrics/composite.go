package metrics

// SubScores are the eight raw sub-metric values before rounding.
// Percentage metrics are 0-100, rating metrics 0-10.
type SubScores struct {
	SkillsMatch         float64
	ExperienceRelevance float64
	EducationFit        float64
	AchievementImpact   float64
	KeywordDensity      float64
	EmploymentGap       float64
	Readability         float64
	AIConfidence        float64
}

// Buckets are the three intermediate 0-100 scores combined into the composite
type Buckets struct {
	SkillsExperience      float64
	EducationAchievements float64
	QualityRisk           float64
}

// ratingToPercent converts a 0-10 rating to the 0-100 scale
func ratingToPercent(rating float64) float64 {
	return rating * 10
}

// ComputeBuckets normalizes every rating metric to 0-100 and averages metrics into buckets
func ComputeBuckets(s SubScores) Buckets {
	return Buckets{
		SkillsExperience: s.SkillsMatch*0.5 +
			ratingToPercent(s.ExperienceRelevance)*0.5,
		EducationAchievements: ratingToPercent(s.EducationFit)*0.5 +
			ratingToPercent(s.AchievementImpact)*0.5,
		QualityRisk: s.KeywordDensity*0.3 +
			ratingToPercent(s.EmploymentGap)*0.2 +
			ratingToPercent(s.Readability)*0.2 +
			s.AIConfidence*0.3,
	}
}

// Composite weights the buckets into a single 0-100 score
func Composite(s SubScores, w Weights) float64 {
	b := ComputeBuckets(s)
	composite := b.SkillsExperience*w.SkillsExperience +
		b.EducationAchievements*w.EducationAchievements +
		b.QualityRisk*w.QualityRisk
	return min(max(composite, 0.0), 100.0)
}
