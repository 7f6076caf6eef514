// Package observability provides verbose console output and Prometheus metrics for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // console output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func pad(s string, n int) string {
	if width := len([]rune(s)); width < n {
		return s + strings.Repeat(" ", n-width)
	}
	return s
}

func listLine(label string, items []string) string {
	if len(items) == 0 {
		return fmt.Sprintf("%-10s -", label)
	}
	shown := items
	if len(items) > maxItemsToShow {
		shown = items[:maxItemsToShow]
	}
	line := fmt.Sprintf("%-10s %s", label, strings.Join(shown, ", "))
	if len(items) > maxItemsToShow {
		line += fmt.Sprintf(" (+%d more)", len(items)-maxItemsToShow)
	}
	return line
}

// PrintJobProfile outputs a human-readable summary of the job being matched against.
func (p *Printer) PrintJobProfile(job *types.JobProfile) {
	if job == nil {
		return
	}

	var sb strings.Builder
	title := job.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&sb, "%-10s %s\n", "Role:", title)
	if job.SeniorityLevel != "" {
		fmt.Fprintf(&sb, "%-10s %s\n", "Level:", job.SeniorityLevel)
	}
	if job.MinExperienceYears != nil {
		fmt.Fprintf(&sb, "%-10s %d+ years\n", "Exp:", *job.MinExperienceYears)
	}
	if job.RemoteType != "" {
		fmt.Fprintf(&sb, "%-10s %s\n", "Remote:", job.RemoteType)
	}
	sb.WriteString(listLine("Required:", job.RequiredSkills) + "\n")
	sb.WriteString(listLine("Nice:", job.PreferredSkills))

	p.printBox("JOB PROFILE", sb.String())
}

// PrintMetrics outputs the sub-scores and composite of one metrics bundle.
func (p *Printer) PrintMetrics(label string, bundle *types.MetricsBundle) {
	if bundle == nil {
		return
	}

	var sb strings.Builder
	rows := []struct {
		name  string
		value float64
		scale string
	}{
		{"Skills match", bundle.SkillsMatchScore, "%"},
		{"Experience relevance", bundle.ExperienceRelevanceScore, "/10"},
		{"Education fit", bundle.EducationFitScore, "/10"},
		{"Achievement impact", bundle.AchievementImpactScore, "/10"},
		{"Keyword density", bundle.KeywordDensityScore, "%"},
		{"Employment gaps", bundle.EmploymentGapScore, "/10"},
		{"Readability", bundle.ReadabilityScore, "/10"},
		{"AI confidence", bundle.AIConfidenceScore, "%"},
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-22s %6.2f%s\n", row.name, row.value, row.scale)
	}
	fmt.Fprintf(&sb, "\n%-22s %6.2f / 100", "COMPOSITE", bundle.CompositeScore)

	flags := bundle.Details.ThresholdFlags
	var warnings []string
	if flags.SkillsBelow70 {
		warnings = append(warnings, "⚠ skills below 70%")
	}
	if flags.ConfidenceBelow80 {
		warnings = append(warnings, "⚠ confidence below 80%")
	}
	if flags.EmploymentGapsDetected {
		warnings = append(warnings, "⚠ employment gaps detected")
	}
	if bundle.Details.DateParseFallback {
		warnings = append(warnings, "⚠ unparseable work dates; gap score defaulted")
	}
	if len(warnings) > 0 {
		sb.WriteString("\n\n" + strings.Join(warnings, "\n"))
	}

	title := "MATCH METRICS"
	if label != "" {
		title += ": " + label
	}
	p.printBox(title, sb.String())
}

// PrintRanking outputs the top ranked candidates with their scores and rationale.
func (p *Printer) PrintRanking(result *types.RankedCandidates) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Summary.RoleTitle != "" {
		fmt.Fprintf(&sb, "Role: %s (%s)\n", result.Summary.RoleTitle, result.Summary.PrimaryStackOrDomain)
	}
	fmt.Fprintf(&sb, "Considered: %d  Filtered: %d  Returned: %d\n", result.Considered, result.Filtered, len(result.Ranked))
	for _, line := range result.ConstraintsApplied {
		sb.WriteString("  • " + line + "\n")
	}

	if len(result.Ranked) == 0 {
		sb.WriteString("\nNo candidates matched.")
		p.printBox("RANKED CANDIDATES", sb.String())
		return
	}

	count := min(len(result.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		rc := result.Ranked[i]
		name := rc.Name
		if name == "" {
			name = rc.CandidateID
		}
		fmt.Fprintf(&sb, "\n#%d  %s\n", i+1, name)
		if rc.CurrentRole != "" {
			sb.WriteString("    " + rc.CurrentRole + "\n")
		}
		fmt.Fprintf(&sb, "    Composite: %.2f  Similarity: %.2f  Seniority: %s\n",
			rc.Metrics.CompositeScore, rc.SemanticSimilarity, rc.Breakdown.SeniorityMatch)
		if len(rc.Breakdown.MissingRequiredSkills) > 0 {
			sb.WriteString("    " + listLine("Missing:", rc.Breakdown.MissingRequiredSkills) + "\n")
		}
		sb.WriteString("    " + rc.Breakdown.Rationale + "\n")
	}
	if len(result.Ranked) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more candidates", len(result.Ranked)-maxItemsToShow)
	}

	p.printBox("RANKED CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}
