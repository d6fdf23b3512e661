package scoring

import "fmt"

// BlendPolicy weights value potential against ease of implementation in
// the role total.
type BlendPolicy struct {
	ValueWeight float64 `json:"valueWeight"`
	EaseWeight  float64 `json:"easeWeight"`
}

// DefaultBlend is the canonical 60/40 value/ease policy.
var DefaultBlend = BlendPolicy{ValueWeight: 0.6, EaseWeight: 0.4}

// EvenBlend weights value and ease equally.
var EvenBlend = BlendPolicy{ValueWeight: 0.5, EaseWeight: 0.5}

// Validate reports whether both weights are in [0,1] and sum to 1.
func (p BlendPolicy) Validate() error {
	if p.ValueWeight < 0 || p.ValueWeight > 1 || p.EaseWeight < 0 || p.EaseWeight > 1 {
		return fmt.Errorf("blend weights must be within [0,1], got value=%.2f ease=%.2f", p.ValueWeight, p.EaseWeight)
	}
	if sum := p.ValueWeight + p.EaseWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("blend weights must sum to 1, got %.3f", sum)
	}
	return nil
}

// RoleScoreInput holds six Likert ratings (1..5).
type RoleScoreInput struct {
	TimeSavings          float64 `json:"timeSavings" validate:"min=1,max=5"`
	QualityImpact        float64 `json:"qualityImpact" validate:"min=1,max=5"`
	StrategicAlignment   float64 `json:"strategicAlignment" validate:"min=1,max=5"`
	DataReadiness        float64 `json:"dataReadiness" validate:"min=1,max=5"`
	TechnicalFeasibility float64 `json:"technicalFeasibility" validate:"min=1,max=5"`
	AdoptionRisk         float64 `json:"adoptionRisk" validate:"min=1,max=5"`
}

// ValuePotential is the value half of a role score.
type ValuePotential struct {
	TimeSavings        float64 `json:"timeSavings"`
	QualityImpact      float64 `json:"qualityImpact"`
	StrategicAlignment float64 `json:"strategicAlignment"`
	Total              float64 `json:"total"`
}

// EaseOfImplementation is the ease half of a role score.
type EaseOfImplementation struct {
	DataReadiness        float64 `json:"dataReadiness"`
	TechnicalFeasibility float64 `json:"technicalFeasibility"`
	AdoptionRisk         float64 `json:"adoptionRisk"`
	Total                float64 `json:"total"`
}

// RoleScore is the result of CalculateRoleScore.
type RoleScore struct {
	ValuePotential       ValuePotential       `json:"valuePotential"`
	EaseOfImplementation EaseOfImplementation `json:"easeOfImplementation"`
	TotalScore           float64              `json:"totalScore"`
	Description          string               `json:"description"`
}

// CalculateRoleScore averages the value and ease ratings and blends the
// two totals with policy. Inputs are not range-checked here.
func CalculateRoleScore(in RoleScoreInput, policy BlendPolicy) RoleScore {
	value := (in.TimeSavings + in.QualityImpact + in.StrategicAlignment) / 3
	ease := (in.DataReadiness + in.TechnicalFeasibility + in.AdoptionRisk) / 3
	total := value*policy.ValueWeight + ease*policy.EaseWeight

	return RoleScore{
		ValuePotential: ValuePotential{
			TimeSavings:        in.TimeSavings,
			QualityImpact:      in.QualityImpact,
			StrategicAlignment: in.StrategicAlignment,
			Total:              value,
		},
		EaseOfImplementation: EaseOfImplementation{
			DataReadiness:        in.DataReadiness,
			TechnicalFeasibility: in.TechnicalFeasibility,
			AdoptionRisk:         in.AdoptionRisk,
			Total:                ease,
		},
		TotalScore:  total,
		Description: ScoreDescription(total),
	}
}

// ScoreDescription maps a role total to its candidate band.
func ScoreDescription(score float64) string {
	switch {
	case score >= 4.5:
		return "Exceptional candidate for AI transformation"
	case score >= 4.0:
		return "Strong candidate for AI transformation"
	case score >= 3.5:
		return "Good candidate for AI transformation"
	case score >= 3.0:
		return "Moderate candidate for AI transformation"
	case score >= 2.5:
		return "Consider for future AI transformation"
	case score >= 2.0:
		return "Limited potential for AI transformation"
	default:
		return "Not recommended for AI transformation at this time"
	}
}

// Guidance describes how to rate each criterion.
var Guidance = map[string]string{
	"timeSavings":          "5 = >40% time savings, 4 = 30-40%, 3 = 20-30%, 2 = 10-20%, 1 = <10%",
	"qualityImpact":        "5 = transformative, 4 = significant, 3 = moderate, 2 = minor, 1 = minimal",
	"strategicAlignment":   "5 = perfect alignment, 4 = strong, 3 = moderate, 2 = weak, 1 = minimal",
	"dataReadiness":        "5 = perfect, 4 = good, 3 = adequate, 2 = poor, 1 = very poor",
	"technicalFeasibility": "5 = very easy, 4 = straightforward, 3 = moderate, 2 = complex, 1 = very complex",
	"adoptionRisk":         "5 = very likely adoption, 4 = high, 3 = moderate, 2 = low, 1 = very low",
}
