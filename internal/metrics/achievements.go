package metrics

import (
	"regexp"
	"strings"
)

const (
	pointsPerImpactMatch  = 0.5
	maxPointsPerFamily    = 2.0
	pointsPerActionVerb   = 0.2
	maxActionVerbPoints   = 2.0
	pointsPerAchievement  = 0.5
	maxAchievementsPoints = 2.0
)

// ImpactPattern is a named family of quantifiable-result patterns
type ImpactPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// impactPatterns are matched against lowercased CV text
var impactPatterns = []ImpactPattern{
	{Name: "percentage", Pattern: regexp.MustCompile(`\d+%`)},
	{Name: "currency", Pattern: regexp.MustCompile(`[$€£]\d+[kmb]?`)},
	{Name: "audience", Pattern: regexp.MustCompile(`\d+\s*(users|customers|clients)`)},
	{Name: "team_size", Pattern: regexp.MustCompile(`(led|managed|directed)\s+(\d+)`)},
	{Name: "improvement", Pattern: regexp.MustCompile(`(reduced|increased|improved|optimized).*?(\d+)`)},
}

var actionVerbs = []string{
	"achieved", "led", "managed", "developed", "implemented",
	"optimized", "increased", "reduced", "launched", "delivered",
}

// AchievementImpact scores quantified accomplishments in the CV text plus the extracted
// achievement list (0-10).
func AchievementImpact(cvText string, achievements []string) float64 {
	score := 0.0
	for _, count := range CountImpactPatterns(cvText) {
		score += min(float64(count)*pointsPerImpactMatch, maxPointsPerFamily)
	}

	score += min(float64(CountActionVerbs(cvText))*pointsPerActionVerb, maxActionVerbPoints)
	score += min(float64(len(achievements))*pointsPerAchievement, maxAchievementsPoints)

	return min(score, 10.0)
}

// CountImpactPatterns returns the number of non-overlapping matches per pattern family
func CountImpactPatterns(cvText string) map[string]int {
	lower := strings.ToLower(cvText)
	counts := make(map[string]int, len(impactPatterns))
	for _, p := range impactPatterns {
		counts[p.Name] = len(p.Pattern.FindAllStringIndex(lower, -1))
	}
	return counts
}

// CountActionVerbs returns how many distinct achievement-oriented verbs appear in the text
func CountActionVerbs(cvText string) int {
	lower := strings.ToLower(cvText)
	count := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			count++
		}
	}
	return count
}
