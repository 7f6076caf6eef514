package metrics

import (
	"testing"

	"github.com/jonathan/candidate-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmploymentGap(t *testing.T) {
	tests := []struct {
		name         string
		work         []types.WorkExperience
		expected     float64
		wantFallback bool
	}{
		{
			name:     "single position cannot show a gap",
			work:     []types.WorkExperience{{StartDate: "not a date"}},
			expected: 10,
		},
		{
			name: "gap within grace period",
			work: []types.WorkExperience{
				{StartDate: "2020-03", EndDate: "Present"},
				{StartDate: "2017-01", EndDate: "2019-12"},
			},
			expected: 10,
		},
		{
			name: "ten month gap",
			work: []types.WorkExperience{
				{StartDate: "2018-01", EndDate: "2019-12"},
				{StartDate: "2020-10", EndDate: "Present"},
			},
			expected: 8,
		},
		{
			name: "penalty per gap is capped",
			work: []types.WorkExperience{
				{StartDate: "2020-01", EndDate: "Present"},
				{StartDate: "2010-01", EndDate: "2015-01"},
			},
			expected: 7,
		},
		{
			name: "overlapping positions",
			work: []types.WorkExperience{
				{StartDate: "2016", EndDate: "2022"},
				{StartDate: "2019", EndDate: "Present"},
			},
			expected: 10,
		},
		{
			name: "unparseable start date falls back",
			work: []types.WorkExperience{
				{StartDate: "", EndDate: "Present"},
				{StartDate: "2015", EndDate: "2018"},
			},
			expected:     8,
			wantFallback: true,
		},
		{
			name: "unparseable end date falls back",
			work: []types.WorkExperience{
				{StartDate: "2019", EndDate: "Present"},
				{StartDate: "2015", EndDate: "last spring"},
			},
			expected:     8,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, fellBack := EmploymentGap(tt.work, fixedNow, DefaultTuning())
			assert.InDelta(t, tt.expected, score, 0.001)
			assert.Equal(t, tt.wantFallback, fellBack)
		})
	}
}

func TestEmploymentGap_FloorsAtZero(t *testing.T) {
	work := []types.WorkExperience{
		{StartDate: "2024", EndDate: "Present"},
		{StartDate: "2019", EndDate: "2020"},
		{StartDate: "2014", EndDate: "2015"},
		{StartDate: "2009", EndDate: "2010"},
		{StartDate: "2004", EndDate: "2005"},
	}

	score, _ := EmploymentGap(work, fixedNow, DefaultTuning())
	assert.Equal(t, 0.0, score)
}

func TestGapMonths_OrdersByMostRecentStart(t *testing.T) {
	work := []types.WorkExperience{
		{StartDate: "2012-01", EndDate: "2014-06"},
		{StartDate: "2020-01", EndDate: "Present"},
		{StartDate: "2015-01", EndDate: "2019-01"},
	}

	gaps, err := GapMonths(work, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 7}, gaps)
}
