package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/candidate-matcher/internal/parsing"
	"github.com/jonathan/candidate-matcher/internal/types"
)

// span is a work-history entry resolved to calendar months
type span struct {
	start parsing.YearMonth
	end   parsing.YearMonth
}

// EmploymentGap scores the work history for unexplained gaps (0-10, 10 means no gaps).
// Fewer than two entries cannot show a gap and score 10. When a date cannot be parsed the
// configured fallback score is returned together with fellBack=true.
func EmploymentGap(work []types.WorkExperience, now time.Time, tuning Tuning) (score float64, fellBack bool) {
	if len(work) < 2 {
		return 10.0, false
	}

	gaps, err := GapMonths(work, now)
	if err != nil {
		return tuning.GapParseFailureScore, true
	}

	score = 10.0
	for _, gap := range gaps {
		if gap > tuning.GapGraceMonths {
			score -= min(float64(gap-tuning.GapGraceMonths)*tuning.GapPenaltyPerMonth, tuning.GapMaxPenalty)
		}
	}
	return max(score, 0.0), false
}

// GapMonths returns the months between each position's start and the end of the position
// before it, ordered from most recent. Overlapping positions yield zero or negative gaps.
// Start dates are mandatory; a missing or ongoing end date resolves to now.
func GapMonths(work []types.WorkExperience, now time.Time) ([]int, error) {
	spans := make([]span, 0, len(work))
	for i, exp := range work {
		start, err := parsing.ParseYearMonth(exp.StartDate)
		if err != nil {
			return nil, fmt.Errorf("work experience %d start date: %w", i, err)
		}
		end, err := parsing.ParseEndDate(exp.EndDate, now)
		if err != nil {
			return nil, fmt.Errorf("work experience %d end date: %w", i, err)
		}
		spans = append(spans, span{start: start, end: end})
	}

	// Most recent start first
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[j].start.Before(spans[i].start)
	})

	gaps := make([]int, 0, len(spans)-1)
	for i := 0; i < len(spans)-1; i++ {
		later, earlier := spans[i], spans[i+1]
		gaps = append(gaps, earlier.end.MonthsUntil(later.start))
	}
	return gaps, nil
}
