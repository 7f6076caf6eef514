package metrics

import (
	"strings"
	"time"

	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	maxYearsRatio         = 2.0
	yearsPointsPerRatio   = 2.5
	unspecifiedYearsScale = 5.0
	maxUnspecifiedPoints  = 2.5
	maxRecencyPoints      = 2.5
	recencyDecayPerYear   = 0.5
	unparsedRecencyPoints = 1.0
	maxTechStackPoints    = 2.5
)

// ExperienceRelevance scores years, recency and tech-stack alignment of a work history (0-10).
func ExperienceRelevance(work []types.WorkExperience, years, minRequiredYears int, techStack []string, now time.Time) float64 {
	score := YearsPoints(years, minRequiredYears)
	if len(work) > 0 {
		score += RecencyPoints(work, now)
	}
	if len(techStack) > 0 && len(work) > 0 {
		score += TechStackPoints(work, techStack)
	}
	return min(score, 10.0)
}

// YearsPoints compares total years to the job minimum. The ratio is capped at 2, so a
// candidate with double the requirement earns the maximum 5 points. Without a minimum,
// every 5 years earn a point up to 2.5.
func YearsPoints(years, minRequiredYears int) float64 {
	if years < 0 {
		years = 0
	}
	if minRequiredYears > 0 {
		ratio := min(float64(years)/float64(minRequiredYears), maxYearsRatio)
		return ratio * yearsPointsPerRatio
	}
	return min(float64(years)/unspecifiedYearsScale, maxUnspecifiedPoints)
}

// RecencyPoints rewards recent experience: 2.5 points when the latest position is current,
// minus 0.5 per year since it ended. If no end date can be read, 1.0 is returned.
func RecencyPoints(work []types.WorkExperience, now time.Time) float64 {
	latest := 0
	for _, exp := range work {
		end, err := parsing.ParseEndDate(exp.EndDate, now)
		if err != nil {
			continue
		}
		latest = max(latest, end.Year)
	}
	if latest == 0 {
		return unparsedRecencyPoints
	}

	yearsSince := float64(now.Year() - latest)
	return min(max(0, maxRecencyPoints-recencyDecayPerYear*yearsSince), maxRecencyPoints)
}

// TechStackPoints is the fraction of distinct tech-stack terms mentioned in any
// experience description, scaled to 2.5 points.
func TechStackPoints(work []types.WorkExperience, techStack []string) float64 {
	terms := parsing.TermSet(techStack)
	if len(terms) == 0 {
		return 0
	}

	descriptions := make([]string, 0, len(work))
	for _, exp := range work {
		if exp.Description != "" {
			descriptions = append(descriptions, strings.ToLower(exp.Description))
		}
	}

	found := 0
	for _, term := range terms {
		for _, desc := range descriptions {
			if strings.Contains(desc, term) {
				found++
				break
			}
		}
	}

	return float64(found) / float64(len(terms)) * maxTechStackPoints
}
