package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsValidate(t *testing.T) {
	tests := []struct {
		name      string
		weights   Weights
		wantErr   bool
		wantField string
	}{
		{"defaults", DefaultWeights(), false, ""},
		{"single bucket", Weights{QualityRisk: 1}, false, ""},
		{"float noise tolerated", Weights{SkillsExperience: 0.1, EducationAchievements: 0.2, QualityRisk: 0.7000000001}, false, ""},
		{"sum too high", Weights{SkillsExperience: 0.5, EducationAchievements: 0.3, QualityRisk: 0.3}, true, ""},
		{"sum too low", Weights{SkillsExperience: 0.2, EducationAchievements: 0.2, QualityRisk: 0.2}, true, ""},
		{"negative weight", Weights{SkillsExperience: -0.2, EducationAchievements: 0.6, QualityRisk: 0.6}, true, "skills_experience"},
		{"weight above one", Weights{SkillsExperience: 0, EducationAchievements: 1.5, QualityRisk: -0.5}, true, "education_achievements"},
		{"nan weight", Weights{SkillsExperience: 0.5, EducationAchievements: 0.5, QualityRisk: math.NaN()}, true, "quality_risk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var weightsErr *WeightsError
			require.True(t, errors.As(err, &weightsErr))
			assert.Equal(t, tt.wantField, weightsErr.Field)
		})
	}
}

func TestTuningValidate(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())

	bad := DefaultTuning()
	bad.PartialSkillCredit = 1.5
	assert.Error(t, bad.Validate())

	bad = DefaultTuning()
	bad.GapGraceMonths = -1
	assert.Error(t, bad.Validate())

	bad = DefaultTuning()
	bad.StuffingFloor = 120
	assert.Error(t, bad.Validate())
}
