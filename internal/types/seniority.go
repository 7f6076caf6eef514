package types

import "strings"

// Seniority is an ordered qualification level. The zero value is SeniorityUnknown.
type Seniority int

// Seniority levels in ascending order
const (
	SeniorityUnknown Seniority = iota
	SeniorityJunior
	SeniorityMid
	SenioritySenior
	SeniorityLead
	SeniorityPrincipal
)

var seniorityNames = map[Seniority]string{
	SeniorityUnknown:   "unknown",
	SeniorityJunior:    "junior",
	SeniorityMid:       "mid",
	SenioritySenior:    "senior",
	SeniorityLead:      "lead",
	SeniorityPrincipal: "principal",
}

// seniorityAliases maps common spellings to canonical levels
var seniorityAliases = map[string]Seniority{
	"junior":       SeniorityJunior,
	"jr":           SeniorityJunior,
	"entry":        SeniorityJunior,
	"entry-level":  SeniorityJunior,
	"intern":       SeniorityJunior,
	"mid":          SeniorityMid,
	"middle":       SeniorityMid,
	"mid-level":    SeniorityMid,
	"intermediate": SeniorityMid,
	"senior":       SenioritySenior,
	"sr":           SenioritySenior,
	"lead":         SeniorityLead,
	"staff":        SeniorityLead,
	"tech lead":    SeniorityLead,
	"principal":    SeniorityPrincipal,
	"architect":    SeniorityPrincipal,
}

// ParseSeniority maps a free-text level to a Seniority. Unrecognized input yields SeniorityUnknown.
func ParseSeniority(s string) Seniority {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
	if level, ok := seniorityAliases[key]; ok {
		return level
	}
	return SeniorityUnknown
}

// String returns the canonical lowercase name of the level
func (s Seniority) String() string {
	if name, ok := seniorityNames[s]; ok {
		return name
	}
	return seniorityNames[SeniorityUnknown]
}

// Known reports whether the level is part of the ordered vocabulary
func (s Seniority) Known() bool {
	return s > SeniorityUnknown && s <= SeniorityPrincipal
}

// AtOrAbove returns the canonical names of this level and every level above it.
// An unknown level returns nil.
func (s Seniority) AtOrAbove() []string {
	if !s.Known() {
		return nil
	}
	levels := make([]string, 0, int(SeniorityPrincipal-s)+1)
	for l := s; l <= SeniorityPrincipal; l++ {
		levels = append(levels, l.String())
	}
	return levels
}
