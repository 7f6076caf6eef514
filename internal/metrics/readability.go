package metrics

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minWordCount        = 200
	maxWordCount        = 3000
	minSections         = 3
	maxAvgSentenceWords = 30
	minAvgSentenceWords = 5
	maxUppercaseRatio   = 0.3
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

var sectionKeywords = []string{
	"experience", "education", "skills", "summary",
	"objective", "projects", "certifications",
}

// Readability scores length, structure, sentence complexity and capitalization (0-10).
func Readability(cvText string) float64 {
	score := 10.0

	words := len(strings.Fields(cvText))
	if words < minWordCount {
		score -= 2.0
	} else if words > maxWordCount {
		score -= 1.5
	}

	if SectionCount(cvText) < minSections {
		score -= 2.0
	}

	avg := AverageSentenceLength(cvText)
	if avg > maxAvgSentenceWords {
		score -= 1.0
	} else if avg < minAvgSentenceWords {
		score -= 0.5
	}

	if UppercaseRatio(cvText) > maxUppercaseRatio {
		score -= 1.0
	}

	return max(score, 0.0)
}

// SectionCount returns how many of the standard CV section keywords appear in the text
func SectionCount(cvText string) int {
	lower := strings.ToLower(cvText)
	count := 0
	for _, section := range sectionKeywords {
		if strings.Contains(lower, section) {
			count++
		}
	}
	return count
}

// AverageSentenceLength splits naively on runs of '.', '!' and '?' and averages the
// word count per piece. Empty pieces, such as the one after a final period, count as
// sentences of zero words.
func AverageSentenceLength(cvText string) float64 {
	sentences := sentenceSplitter.Split(cvText, -1)
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	return float64(total) / float64(len(sentences))
}

// UppercaseRatio returns the share of uppercase characters among all characters
func UppercaseRatio(cvText string) float64 {
	upper, total := 0, 0
	for _, r := range cvText {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper) / float64(max(total, 1))
}
