package metrics

import (
	"testing"

	"github.com/jonathan/candidate-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDegreeLevel(t *testing.T) {
	tests := []struct {
		degree   string
		expected float64
	}{
		{"PhD in Physics", 6},
		{"Master of Science", 5},
		{"MBA", 5},
		{"Bachelor's, Computer Science", 4},
		{"B.Sc.", 4},
		{"BSc Mathematics", 4},
		{"Associate Degree", 3},
		{"Diploma in Art", 2},
		{"Bootcamp", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.degree, func(t *testing.T) {
			assert.Equal(t, tt.expected, DegreeLevel(tt.degree))
		})
	}
}

func TestEducationFit_NoEducation(t *testing.T) {
	assert.Equal(t, 3.0, EducationFit(nil, nil, "Bachelor's degree"))
	assert.Equal(t, 4.0, EducationFit(nil, []string{"CKA", "AWS SAA"}, ""))
	assert.Equal(t, 5.0, EducationFit(nil, []string{"a", "b", "c", "d", "e", "f"}, ""))
}

func TestEducationFit_RequirementMatch(t *testing.T) {
	education := []types.Education{
		{Degree: "Bachelor of Arts"},
		{Degree: "Master of Science"},
	}

	score := EducationFit(education, []string{"CKA", "CKAD"}, "Master's degree in Computer Science")
	assert.Equal(t, 8.0, score)
}

func TestEducationFit_NoRequirementMatch(t *testing.T) {
	education := []types.Education{{Degree: "Bachelor of Engineering"}}

	score := EducationFit(education, nil, "PhD")
	assert.Equal(t, 4.0, score)
}

func TestMatchesEducationRequirement_StopWordsIgnored(t *testing.T) {
	education := []types.Education{{Degree: "Degree in Fine Art"}}

	assert.False(t, MatchesEducationRequirement(education, "Degree in a related field"))
	assert.False(t, MatchesEducationRequirement(education, ""))
	assert.True(t, MatchesEducationRequirement(education, "Art history or equivalent"))
}
