package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScoreComponent(t *testing.T) {
	tests := []struct {
		name           string
		input          float64
		weight         float64
		min, max       float64
		wantNormalized float64
		wantWeighted   float64
	}{
		{"midpoint", 50, 0.2, 0, 100, 0.5, 0.1},
		{"at minimum", 1, 0.5, 1, 5, 0, 0},
		{"at maximum", 30, 0.3, 0, 30, 1, 0.3},
		{"above range clamps", 250, 0.2, 0, 100, 1, 0.2},
		{"below range clamps", -5, 0.2, 0, 10, 0, 0},
		{"degenerate range", 3, 0.4, 5, 5, 0, 0},
		{"inverted range", 3, 0.4, 5, 1, 0, 0},
		{"nan input", math.NaN(), 0.4, 0, 10, 0, 0},
		{"inf input", math.Inf(1), 0.4, 0, 10, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := CalculateScoreComponent(tc.input, tc.weight, tc.min, tc.max, "detail")
			assert.InDelta(t, tc.wantNormalized, c.NormalizedScore, 1e-9)
			assert.InDelta(t, tc.wantWeighted, c.WeightedScore, 1e-9)
			assert.Equal(t, "detail", c.Details)
			assert.GreaterOrEqual(t, c.NormalizedScore, 0.0)
			assert.LessOrEqual(t, c.NormalizedScore, 1.0)
		})
	}
}

func TestCalculateScoreComponent_KeepsRawInput(t *testing.T) {
	c := CalculateScoreComponent(140, 0.2, 0, 100, "")
	assert.Equal(t, 140.0, c.Input)
}
