// Package parsing interprets loosely formatted values found in extracted profiles.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearPattern  = regexp.MustCompile(`\d{4}`)
	monthPattern = regexp.MustCompile(`\b\d{1,2}\b`)
	wordPattern  = regexp.MustCompile(`[a-z]+`)
)

// ongoingMarkers are end-date values meaning the position has not ended
var ongoingMarkers = map[string]bool{
	"":          true,
	"present":   true,
	"current":   true,
	"currently": true,
	"now":       true,
	"ongoing":   true,
	"today":     true,
}

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// YearMonth is a calendar month without day precision
type YearMonth struct {
	Year  int
	Month int
}

// FromTime returns the YearMonth containing t
func FromTime(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// MonthsUntil returns the number of whole months from ym to other (negative when other is earlier)
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	return (other.Year-ym.Year)*12 + (other.Month - ym.Month)
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.MonthsUntil(other) > 0
}

// IsOngoing reports whether an end-date value denotes a current position
func IsOngoing(value string) bool {
	return ongoingMarkers[strings.ToLower(strings.TrimSpace(value))]
}

// ParseYearMonth extracts a year and, when present, a month from a free-form date.
// A 4-digit year is mandatory; the month defaults to January.
// Accepted shapes include "2021", "2021-03", "03/2021", "March 2021" and "2021-03-15".
func ParseYearMonth(value string) (YearMonth, error) {
	trimmed := strings.TrimSpace(value)
	loc := yearPattern.FindStringIndex(trimmed)
	if loc == nil {
		return YearMonth{}, &ParseError{Input: value, Message: "no 4-digit year found"}
	}

	year, err := strconv.Atoi(trimmed[loc[0]:loc[1]])
	if err != nil {
		return YearMonth{}, &ParseError{Input: value, Message: "invalid year", Cause: err}
	}

	rest := strings.ToLower(trimmed[:loc[0]] + " " + trimmed[loc[1]:])
	return YearMonth{Year: year, Month: extractMonth(rest)}, nil
}

// ParseEndDate parses an end date, resolving ongoing markers to now
func ParseEndDate(value string, now time.Time) (YearMonth, error) {
	if IsOngoing(value) {
		return FromTime(now), nil
	}
	return ParseYearMonth(value)
}

// extractMonth finds a month name or a 1-12 number in the non-year part of a date
func extractMonth(rest string) int {
	for _, word := range wordPattern.FindAllString(rest, -1) {
		if month, ok := monthNames[word]; ok {
			return month
		}
	}
	for _, token := range monthPattern.FindAllString(rest, -1) {
		n, err := strconv.Atoi(token)
		if err == nil && n >= 1 && n <= 12 {
			return n
		}
	}
	return 1
}
