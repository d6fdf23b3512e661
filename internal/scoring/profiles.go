package scoring

// Weights are the per-component weights of the adoption score.
type Weights struct {
	AdoptionRate           float64 `json:"adoptionRateWeight" validate:"gte=0,lte=1"`
	TimeSaved              float64 `json:"timeSavedWeight" validate:"gte=0,lte=1"`
	CostEfficiency         float64 `json:"costEfficiencyWeight" validate:"gte=0,lte=1"`
	PerformanceImprovement float64 `json:"performanceImprovementWeight" validate:"gte=0,lte=1"`
	ToolSprawlReduction    float64 `json:"toolSprawlReductionWeight" validate:"gte=0,lte=1"`
}

// IndustryProfile holds the default inputs and weights of one industry.
type IndustryProfile struct {
	AdoptionRate        float64
	TimeSaved           float64
	AffectedUsers       float64
	CostEfficiency      float64
	PerformanceGain     float64
	ToolSprawlReduction float64
	Weights             Weights
}

const (
	// DefaultIndustry is used when the assessment names no industry.
	DefaultIndustry = "Other"
	// DefaultCompanyStage is used when the assessment names no stage.
	DefaultCompanyStage = "Startup"
	// DefaultIndustryMaturity is used when the assessment names no maturity.
	DefaultIndustryMaturity = "Immature"

	// fallbackStage supplies stage weights for unknown stage names.
	fallbackStage = "Mature"

	industryBlend = 0.6
	stageBlend    = 0.4
)

// DefaultWeights apply to the "Other" industry.
var DefaultWeights = Weights{
	AdoptionRate:           0.20,
	TimeSaved:              0.30,
	CostEfficiency:         0.20,
	PerformanceImprovement: 0.30,
	ToolSprawlReduction:    0.10,
}

// Industries maps industry names to their profiles.
var Industries = map[string]IndustryProfile{
	"Software & Technology": {50, 7, 100, 15, 30, 4, Weights{0.25, 0.20, 0.15, 0.25, 0.05}},
	"Finance & Banking":     {40, 4, 100, 10, 15, 3, Weights{0.15, 0.15, 0.30, 0.25, 0.15}},
	"Healthcare":            {30, 3, 30, 10, 15, 2, Weights{0.20, 0.15, 0.20, 0.30, 0.15}},
	"Retail & E-commerce":   {20, 3, 150, 8, 20, 3, Weights{0.15, 0.15, 0.25, 0.25, 0.20}},
	"Manufacturing":         {30, 4, 300, 15, 15, 3, Weights{0.15, 0.15, 0.30, 0.25, 0.15}},
	"Education":             {10, 2, 20, 8, 8, 2, Weights{0.20, 0.30, 0.15, 0.20, 0.15}},
	"Professional Services": {30, 5, 100, 8, 25, 3, Weights{0.15, 0.30, 0.20, 0.25, 0.10}},
	"Media & Entertainment": {40, 4, 50, 10, 20, 4, Weights{0.20, 0.20, 0.10, 0.30, 0.20}},
	"Other":                 {30, 4, 100, 10, 15, 3, DefaultWeights},
}

// StageWeights maps company stages to their weights.
var StageWeights = map[string]Weights{
	"Startup":      {0.20, 0.30, 0.10, 0.20, 0.10},
	"Early Growth": {0.20, 0.25, 0.10, 0.20, 0.10},
	"Scaling":      {0.15, 0.20, 0.20, 0.15, 0.10},
	"Mature":       {0.10, 0.15, 0.30, 0.10, 0.15},
}

// maturityFactors scale the final score; unknown maturities use 1.0.
var maturityFactors = map[string]float64{
	"Mature":   1.0,
	"Immature": 1.2,
}

// Industry returns the profile for name, falling back to "Other".
func Industry(name string) IndustryProfile {
	if p, ok := Industries[name]; ok {
		return p
	}
	return Industries[DefaultIndustry]
}

// MaturityFactor returns the score multiplier for an industry maturity.
func MaturityFactor(maturity string) float64 {
	if f, ok := maturityFactors[maturity]; ok {
		return f
	}
	return 1.0
}

// BlendWeights mixes industry and stage weights 60/40. Unknown industries
// use "Other" and unknown stages use "Mature".
func BlendWeights(industry, stage string) Weights {
	iw := Industry(industry).Weights
	sw, ok := StageWeights[stage]
	if !ok {
		sw = StageWeights[fallbackStage]
	}
	return Weights{
		AdoptionRate:           iw.AdoptionRate*industryBlend + sw.AdoptionRate*stageBlend,
		TimeSaved:              iw.TimeSaved*industryBlend + sw.TimeSaved*stageBlend,
		CostEfficiency:         iw.CostEfficiency*industryBlend + sw.CostEfficiency*stageBlend,
		PerformanceImprovement: iw.PerformanceImprovement*industryBlend + sw.PerformanceImprovement*stageBlend,
		ToolSprawlReduction:    iw.ToolSprawlReduction*industryBlend + sw.ToolSprawlReduction*stageBlend,
	}
}
