// Package scoring computes the organization-level AI adoption score and
// the per-role value/ease score.
package scoring

import "math"

// Component is one normalized, weighted term of the adoption score.
type Component struct {
	Input           float64 `json:"input"`
	NormalizedScore float64 `json:"normalizedScore"`
	WeightedScore   float64 `json:"weightedScore"`
	Details         string  `json:"details,omitempty"`
}

// CalculateScoreComponent normalizes input into [0,1] against [min,max]
// and multiplies it by weight.
//
// A degenerate range (max <= min) or a non-finite input normalizes to 0
// so the component contributes nothing instead of NaN or Inf.
func CalculateScoreComponent(input, weight, min, max float64, details string) Component {
	c := Component{Input: input, Details: details}
	if max <= min || math.IsNaN(input) || math.IsInf(input, 0) {
		return c
	}
	c.NormalizedScore = clamp((input-min)/(max-min), 0, 1)
	c.WeightedScore = c.NormalizedScore * weight
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
