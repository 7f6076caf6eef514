package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountImpactPatterns(t *testing.T) {
	counts := CountImpactPatterns("Increased revenue by 25% and led 5 engineers. Saved $2M. Served 300 customers.")

	assert.Equal(t, 1, counts["percentage"])
	assert.Equal(t, 1, counts["currency"])
	assert.Equal(t, 1, counts["audience"])
	assert.Equal(t, 1, counts["team_size"])
	assert.Equal(t, 1, counts["improvement"])
}

func TestCountActionVerbs(t *testing.T) {
	assert.Equal(t, 2, CountActionVerbs("Increased revenue and LED the team"))
	assert.Equal(t, 0, CountActionVerbs(""))
}

func TestAchievementImpact(t *testing.T) {
	text := "Increased revenue by 25% and led 5 engineers. Saved $2m."

	score := AchievementImpact(text, []string{"Shipped v2"})
	assert.InDelta(t, 2.9, score, 0.001)
}

func TestAchievementImpact_Capped(t *testing.T) {
	text := ""
	for i := 0; i < 20; i++ {
		text += "achieved developed implemented optimized launched delivered managed reduced costs by 30% for 500 users saving $10k, led 12 people. "
	}
	achievements := []string{"a", "b", "c", "d", "e", "f"}

	assert.Equal(t, 10.0, AchievementImpact(text, achievements))
}

func TestAchievementImpact_Empty(t *testing.T) {
	assert.Equal(t, 0.0, AchievementImpact("", nil))
}
