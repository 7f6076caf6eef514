package parsing

import (
	"strings"
	"unicode"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"aws":        "AWS",
	"gcp":        "GCP",
	"sql":        "SQL",
}

// NormalizeTerm lowercases and trims a term for case-insensitive comparison
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// TermSet returns the distinct normalized, non-blank terms in the order first seen
func TermSet(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		normalized := NormalizeTerm(term)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}

// NormalizeSkillName returns a display-friendly canonical form of a skill name
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Single all-lowercase or all-uppercase words get a leading capital
	if !strings.Contains(normalized, " ") && (normalized == lower || normalized == strings.ToUpper(normalized)) {
		return strings.ToUpper(lower[:1]) + lower[1:]
	}

	return normalized
}

// Words splits text into lowercase words, dropping surrounding punctuation.
// "Bachelor's" becomes "bachelor" and "Ph.D." becomes "phd".
func Words(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		var sb strings.Builder
		for _, r := range field {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’' {
				sb.WriteRune(r)
			}
		}
		word := strings.TrimSuffix(strings.TrimSuffix(sb.String(), "'s"), "’s")
		word = strings.NewReplacer("'", "", "’", "").Replace(word)
		if word != "" {
			words = append(words, word)
		}
	}
	return words
}
