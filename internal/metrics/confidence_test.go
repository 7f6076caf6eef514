package metrics

import (
	"testing"

	"github.com/jonathan/candidate-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAIConfidence(t *testing.T) {
	complete := types.CandidateProfile{
		Name:                 "Jordan",
		Skills:               []string{"Go"},
		TotalYearsExperience: intPtr(5),
	}

	tests := []struct {
		name       string
		profile    types.CandidateProfile
		similarity float64
		expected   float64
	}{
		{"complete profile, perfect similarity", complete, 1, 100},
		{"complete profile, zero similarity", complete, 0, 70},
		{"empty profile", types.CandidateProfile{}, 0.5, 53.5},
		{
			name: "incomplete work entry",
			profile: types.CandidateProfile{
				Name: "Jordan", Skills: []string{"Go"}, TotalYearsExperience: intPtr(5),
				WorkExperience: []types.WorkExperience{{Title: "Engineer"}, {Title: "Dev", Company: "Acme"}},
			},
			similarity: 1,
			expected:   95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AIConfidence(tt.profile, tt.similarity), 0.001)
		})
	}
}

func TestAIConfidence_FloorsAtZero(t *testing.T) {
	work := make([]types.WorkExperience, 20)
	assert.Equal(t, 0.0, AIConfidence(types.CandidateProfile{WorkExperience: work}, 0))
}

func TestMissingCriticalFields(t *testing.T) {
	assert.Equal(t, 3, MissingCriticalFields(types.CandidateProfile{}))
	assert.Equal(t, 1, MissingCriticalFields(types.CandidateProfile{Name: "A", Skills: []string{"x"}, TotalYearsExperience: intPtr(0)}))
	assert.Equal(t, 2, MissingCriticalFields(types.CandidateProfile{Name: "A"}))
}
