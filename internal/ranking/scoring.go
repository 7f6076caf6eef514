package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/metrics"
	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// Seniority match labels
const (
	SeniorityExact          = "Exact"
	SeniorityOverqualified  = "Overqualified"
	SeniorityUnderqualified = "Underqualified"
	SeniorityUnknown        = "Unknown"
)

const (
	roleNotSpecified   = "Not specified"
	noSummary          = "No summary available"
	noHardConstraints  = "No hard constraints applied"
	unknownRoleTitle   = "Unknown"
	generalDomain      = "General"
	maxSummarySkills   = 10
	maxStackTerms      = 3
	maxRelevantSummary = 200
)

// SortAndTruncate orders candidates by composite score descending and keeps the first k.
// Ties are broken by semantic similarity, then candidate ID. k <= 0 keeps every candidate.
func SortAndTruncate(ranked []types.RankedCandidate, k int) []types.RankedCandidate {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Metrics.CompositeScore != b.Metrics.CompositeScore {
			return a.Metrics.CompositeScore > b.Metrics.CompositeScore
		}
		if a.SemanticSimilarity != b.SemanticSimilarity {
			return a.SemanticSimilarity > b.SemanticSimilarity
		}
		return a.CandidateID < b.CandidateID
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// Explain builds the match breakdown shown next to a ranked candidate
func Explain(candidate types.CandidateProfile, job types.JobProfile, bundle types.MetricsBundle) types.MatchBreakdown {
	matched, missing := metrics.SkillOverlap(candidate.Skills, job.RequiredSkills)
	nice, _ := metrics.SkillOverlap(candidate.Skills, job.PreferredSkills)

	matched = canonicalSkills(matched)
	missing = canonicalSkills(missing)
	seniority := SeniorityMatch(job.SeniorityLevel, candidate.SeniorityLevel)

	arrangementOK := ArrangementCompatible(job.RemoteType, candidate.LocationTypePreference)

	return types.MatchBreakdown{
		MatchedSkills:         matched,
		MissingRequiredSkills: missing,
		NiceToHaveCovered:     canonicalSkills(nice),
		SeniorityMatch:        seniority,
		Experience:            experienceMatch(candidate, job),
		Location: types.LocationMatch{
			JobLocationType:       job.RemoteType,
			CandidatePreference:   candidate.LocationTypePreference,
			Compatible:            arrangementOK && LocationCompatible(job.Locations, candidate),
			ArrangementCompatible: arrangementOK,
		},
		Language: types.LanguageMatch{
			Required:   job.RequiredLanguages,
			Candidate:  candidate.Languages,
			Compatible: LanguageCompatible(job.RequiredLanguages, candidate.Languages),
		},
		OtherFactors: otherFactors(candidate),
		Rationale: generateRationale(bundle, matched, missing, seniority),
	}
}

// Summarize describes the role a pool is ranked against. constraints are the lines from
// Constraints.Describe, empty when no hard constraints were applied.
func Summarize(job types.JobProfile, constraints []string) types.RankingSummary {
	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = unknownRoleTitle
	}

	stack := strings.Join(job.TechStack[:min(len(job.TechStack), maxStackTerms)], ", ")
	if stack == "" {
		stack = generalDomain
	}

	applied := append([]string(nil), constraints...)
	if len(applied) == 0 {
		applied = []string{noHardConstraints}
	}

	return types.RankingSummary{
		RoleTitle:              title,
		PrimaryStackOrDomain:   stack,
		KeyRequiredSkills:      headOf(job.RequiredSkills, maxSummarySkills),
		NiceToHaveSkills:       headOf(job.PreferredSkills, maxSummarySkills),
		HardConstraintsApplied: applied,
	}
}

// CurrentRole names the candidate's ongoing position, or the one that started last when
// none is ongoing
func CurrentRole(candidate types.CandidateProfile) string {
	entry, ok := currentPosition(candidate.WorkExperience)
	if !ok {
		return roleNotSpecified
	}
	title := strings.TrimSpace(entry.Title)
	company := strings.TrimSpace(entry.Company)
	switch {
	case title != "" && company != "":
		return title + " at " + company
	case title != "":
		return title
	case company != "":
		return "Works at " + company
	default:
		return roleNotSpecified
	}
}

// currentPosition prefers the first ongoing entry, then the latest parseable start date
func currentPosition(history []types.WorkExperience) (types.WorkExperience, bool) {
	for _, w := range history {
		if parsing.IsOngoing(w.EndDate) && (w.Title != "" || w.Company != "") {
			return w, true
		}
	}

	var (
		latest      types.WorkExperience
		latestStart parsing.YearMonth
		found       bool
	)
	for _, w := range history {
		start, err := parsing.ParseYearMonth(w.StartDate)
		if err != nil {
			continue
		}
		if !found || latestStart.Before(start) {
			latest, latestStart, found = w, start, true
		}
	}
	return latest, found
}

func experienceMatch(candidate types.CandidateProfile, job types.JobProfile) types.ExperienceMatch {
	years := candidate.Years()
	summary := strings.TrimSpace(candidate.Summary)
	if summary == "" {
		summary = noSummary
	} else if runes := []rune(summary); len(runes) > maxRelevantSummary {
		summary = string(runes[:maxRelevantSummary])
	}

	return types.ExperienceMatch{
		TotalYears:       years,
		RelevantYears:    years,
		RequiredMinYears: job.MinYears(),
		MeetsMinimum:     years >= job.MinYears(),
		RelevantSummary:  summary,
	}
}

func otherFactors(candidate types.CandidateProfile) []string {
	factors := []string{}
	for _, w := range candidate.WorkExperience {
		if parsing.IsOngoing(w.EndDate) && strings.TrimSpace(w.Company) != "" {
			factors = append(factors, "Currently at "+strings.TrimSpace(w.Company))
			break
		}
	}
	if len(candidate.Certifications) > 0 {
		factors = append(factors, "Certifications: "+strings.Join(candidate.Certifications, ", "))
	}
	if len(candidate.Achievements) > 0 {
		factors = append(factors, fmt.Sprintf("%d listed achievements", len(candidate.Achievements)))
	}
	return factors
}

func headOf(items []string, n int) []string {
	out := make([]string, 0, min(len(items), n))
	return append(out, items[:min(len(items), n)]...)
}

// SeniorityMatch compares the candidate's level with the job's level
func SeniorityMatch(jobLevel, candidateLevel string) string {
	job := types.ParseSeniority(jobLevel)
	cand := types.ParseSeniority(candidateLevel)
	switch {
	case !job.Known() || !cand.Known():
		return SeniorityUnknown
	case cand == job:
		return SeniorityExact
	case cand > job:
		return SeniorityOverqualified
	default:
		return SeniorityUnderqualified
	}
}

func canonicalSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out = append(out, parsing.NormalizeSkillName(s))
	}
	return out
}

// generateRationale creates a brief explanation of the ranking.
func generateRationale(bundle types.MetricsBundle, matched, missing []string, seniority string) string {
	var parts []string

	skills := bundle.SkillsMatchScore
	switch {
	case len(matched) == 0 && len(missing) == 0:
		parts = append(parts, "No required skills specified")
	case len(matched) == 0:
		parts = append(parts, "No skill matches")
	case skills >= 70:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(matched, ", ")))
	case skills >= 40:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(matched, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(matched, ", ")))
	}

	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("Missing %s", strings.Join(missing, ", ")))
	}

	exp := bundle.ExperienceRelevanceScore
	if exp >= 8 {
		parts = append(parts, "Highly relevant experience")
	} else if exp >= 5 {
		parts = append(parts, "Relevant experience")
	} else {
		parts = append(parts, "Limited relevant experience")
	}

	if seniority != SeniorityUnknown {
		parts = append(parts, fmt.Sprintf("%s seniority", seniority))
	}

	if bundle.Details.ThresholdFlags.EmploymentGapsDetected {
		parts = append(parts, "Employment gaps detected")
	}

	return strings.Join(parts, ". ")
}
