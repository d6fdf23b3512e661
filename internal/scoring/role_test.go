package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRoleScore_DefaultBlend(t *testing.T) {
	in := RoleScoreInput{
		TimeSavings:          5,
		QualityImpact:        4,
		StrategicAlignment:   3,
		DataReadiness:        2,
		TechnicalFeasibility: 3,
		AdoptionRisk:         4,
	}
	got := CalculateRoleScore(in, DefaultBlend)

	assert.InDelta(t, 4.0, got.ValuePotential.Total, 1e-9)
	assert.InDelta(t, 3.0, got.EaseOfImplementation.Total, 1e-9)
	assert.InDelta(t, 3.6, got.TotalScore, 1e-9)
	assert.Equal(t, 5.0, got.ValuePotential.TimeSavings)
	assert.Equal(t, 2.0, got.EaseOfImplementation.DataReadiness)
	assert.Equal(t, "Good candidate for AI transformation", got.Description)
}

func TestCalculateRoleScore_EvenBlend(t *testing.T) {
	in := RoleScoreInput{5, 4, 3, 2, 3, 4}
	got := CalculateRoleScore(in, EvenBlend)
	assert.InDelta(t, 3.5, got.TotalScore, 1e-9)
}

func TestCalculateRoleScore_Bounds(t *testing.T) {
	low := CalculateRoleScore(RoleScoreInput{1, 1, 1, 1, 1, 1}, DefaultBlend)
	high := CalculateRoleScore(RoleScoreInput{5, 5, 5, 5, 5, 5}, DefaultBlend)
	assert.InDelta(t, 1.0, low.TotalScore, 1e-9)
	assert.InDelta(t, 5.0, high.TotalScore, 1e-9)
}

func TestScoreDescription(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{4.8, "Exceptional candidate for AI transformation"},
		{4.0, "Strong candidate for AI transformation"},
		{3.7, "Good candidate for AI transformation"},
		{3.0, "Moderate candidate for AI transformation"},
		{2.6, "Consider for future AI transformation"},
		{2.0, "Limited potential for AI transformation"},
		{1.2, "Not recommended for AI transformation at this time"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ScoreDescription(tc.score), "score %v", tc.score)
	}
}

func TestBlendPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultBlend.Validate())
	assert.NoError(t, EvenBlend.Validate())
	assert.Error(t, BlendPolicy{ValueWeight: 0.7, EaseWeight: 0.7}.Validate())
	assert.Error(t, BlendPolicy{ValueWeight: -0.2, EaseWeight: 1.2}.Validate())
}
