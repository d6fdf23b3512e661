package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestBlendWeights(t *testing.T) {
	w := BlendWeights("Software & Technology", "Scaling")
	assert.InDelta(t, 0.21, w.AdoptionRate, 1e-9)
	assert.InDelta(t, 0.20, w.TimeSaved, 1e-9)
	assert.InDelta(t, 0.17, w.CostEfficiency, 1e-9)
	assert.InDelta(t, 0.21, w.PerformanceImprovement, 1e-9)
	assert.InDelta(t, 0.07, w.ToolSprawlReduction, 1e-9)
}

func TestBlendWeights_UnknownNamesFallBack(t *testing.T) {
	got := BlendWeights("Underwater Basket Weaving", "Galactic")
	want := BlendWeights("Other", "Mature")
	assert.Equal(t, want, got)
}

func TestComputeAdoptionScore_IndustryDefaults(t *testing.T) {
	req := AdoptionRequest{}
	score := ComputeAdoptionScore(req, BlendWeights(DefaultIndustry, DefaultCompanyStage))

	// Other defaults: 30%, 4h, 10%, 15%, 3/5 with blended Other/Startup
	// weights .2/.3/.16/.26/.1 gives 36.13, times 1.2 for Immature.
	assert.InDelta(t, 43.4, score.OverallScore, 1e-9)
	assert.InDelta(t, 0.3, score.Components.AdoptionRate.NormalizedScore, 1e-9)
	assert.InDelta(t, 0.5, score.Components.ToolSprawlReduction.NormalizedScore, 1e-9)
	assert.Contains(t, score.Summary, "moderate AI adoption potential (43.4/100)")
	assert.Contains(t, score.Summary, "For a startup company in the other industry")
	assert.Nil(t, score.ROIDetails.CalculatedROIPercentage)
	assert.Contains(t, score.ROIDetails.Assumptions, "Industry: Other, Company Stage: Startup, Industry Maturity: Immature.")
}

func TestComputeAdoptionScore_WithInputsAndROI(t *testing.T) {
	req := AdoptionRequest{
		Inputs: assessment.AdoptionScoreInputs{
			AdoptionRateForecast:             f(60),
			TimeSavingsPerUserHours:          f(5),
			AffectedUserCount:                f(200),
			CostEfficiencyGainsAmount:        f(15),
			PerformanceImprovementPercentage: f(25),
			ToolSprawlReductionScore:         f(3),
		},
		Industry:         "Software & Technology",
		CompanyStage:     "Scaling",
		IndustryMaturity: "Mature",
	}
	score := ComputeAdoptionScore(req, BlendWeights(req.Industry, req.CompanyStage))

	assert.InDelta(t, 45.1, score.OverallScore, 1e-9)

	roi := score.ROIDetails
	require.NotNil(t, roi.InvestmentAmount)
	require.NotNil(t, roi.NetBenefitAmount)
	require.NotNil(t, roi.CalculatedROIPercentage)
	require.NotNil(t, roi.PaybackPeriodMonths)
	assert.InDelta(t, 400000.0, *roi.InvestmentAmount, 1e-6)
	assert.InDelta(t, 2000015.0, *roi.NetBenefitAmount, 1e-6)
	assert.InDelta(t, 500.00375, *roi.CalculatedROIPercentage, 1e-6)
	assert.InDelta(t, 400000.0/2400015.0*12, *roi.PaybackPeriodMonths, 1e-9)
}

func TestComputeAdoptionScore_ExplicitZeroIsNotDefaulted(t *testing.T) {
	req := AdoptionRequest{Inputs: assessment.AdoptionScoreInputs{AdoptionRateForecast: f(0)}}
	score := ComputeAdoptionScore(req, DefaultWeights)
	assert.Equal(t, 0.0, score.Components.AdoptionRate.Input)
	assert.Equal(t, 0.0, score.Components.AdoptionRate.WeightedScore)
}

func TestComputeAdoptionScore_ClampsAfterMaturityFactor(t *testing.T) {
	req := AdoptionRequest{
		Inputs: assessment.AdoptionScoreInputs{
			AdoptionRateForecast:             f(100),
			TimeSavingsPerUserHours:          f(10),
			CostEfficiencyGainsAmount:        f(30),
			PerformanceImprovementPercentage: f(50),
			ToolSprawlReductionScore:         f(5),
		},
		IndustryMaturity: "Immature",
	}
	w := Weights{0.2, 0.2, 0.2, 0.2, 0.2}
	score := ComputeAdoptionScore(req, w)
	assert.Equal(t, 100.0, score.OverallScore)
	assert.Contains(t, score.Summary, "excellent")
}

func TestComputeAdoptionScore_UnknownMaturityIsNeutral(t *testing.T) {
	base := AdoptionRequest{Inputs: assessment.AdoptionScoreInputs{AdoptionRateForecast: f(50)}, IndustryMaturity: "Mature"}
	other := base
	other.IndustryMaturity = "Emerging"
	assert.Equal(t, ComputeAdoptionScore(base, DefaultWeights).OverallScore, ComputeAdoptionScore(other, DefaultWeights).OverallScore)
}

func TestComputeAdoptionScore_Monotonic(t *testing.T) {
	prev := -1.0
	for _, v := range []float64{0, 10, 25, 40, 60, 80, 100, 150} {
		req := AdoptionRequest{Inputs: assessment.AdoptionScoreInputs{AdoptionRateForecast: f(v)}}
		got := ComputeAdoptionScore(req, DefaultWeights).OverallScore
		assert.GreaterOrEqual(t, got, prev, "score decreased at adoption rate %v", v)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func TestSummaryBands(t *testing.T) {
	tests := []struct {
		score float64
		band  string
	}{
		{95, "excellent"},
		{80, "excellent"},
		{79.9, "good"},
		{60, "good"},
		{45, "moderate"},
		{39.99, "cautious"},
		{0, "cautious"},
	}
	for _, tc := range tests {
		got := Summary(tc.score, "Healthcare", "Early Growth")
		assert.Contains(t, got, "shows "+tc.band+" AI adoption potential")
		assert.Contains(t, got, "early growth company in the healthcare industry")
	}
}

type fakeWeightStore struct {
	stored  map[int64]Weights
	upserts int
	getErr  error
}

func (s *fakeWeightStore) GetOrganizationScoreWeights(_ context.Context, id int64) (*Weights, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	w, ok := s.stored[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (s *fakeWeightStore) UpsertOrganizationScoreWeights(_ context.Context, id int64, w Weights) error {
	s.upserts++
	if s.stored == nil {
		s.stored = map[int64]Weights{}
	}
	s.stored[id] = w
	return nil
}

func TestAdoptionEngine_UsesStoredOrganizationWeights(t *testing.T) {
	custom := Weights{0.5, 0.1, 0.1, 0.2, 0.1}
	store := &fakeWeightStore{stored: map[int64]Weights{7: custom}}
	engine := NewAdoptionEngine(store, nil)

	score := engine.Calculate(context.Background(), AdoptionRequest{OrganizationID: 7, Industry: "Healthcare"})
	assert.Equal(t, custom, score.Weights)
	assert.Equal(t, WeightSourceOrganization, score.WeightSource)
	assert.Zero(t, store.upserts)
}

func TestAdoptionEngine_CreatesBlendedWeightsOnFirstRead(t *testing.T) {
	store := &fakeWeightStore{}
	engine := NewAdoptionEngine(store, nil)
	ctx := context.Background()

	first := engine.Calculate(ctx, AdoptionRequest{OrganizationID: 3, Industry: "Education", CompanyStage: "Scaling"})
	assert.Equal(t, BlendWeights("Education", "Scaling"), first.Weights)
	assert.Equal(t, 1, store.upserts)

	second := engine.Calculate(ctx, AdoptionRequest{OrganizationID: 3, Industry: "Education", CompanyStage: "Scaling"})
	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, WeightSourceOrganization, second.WeightSource)
	assert.Equal(t, 1, store.upserts)
}

func TestAdoptionEngine_StoreErrorFallsBackToBlend(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	store := &fakeWeightStore{getErr: errors.New("database is locked")}
	engine := NewAdoptionEngine(store, logger)

	score := engine.Calculate(context.Background(), AdoptionRequest{OrganizationID: 9, Industry: "Manufacturing", CompanyStage: "Mature"})
	assert.Equal(t, BlendWeights("Manufacturing", "Mature"), score.Weights)
	assert.Equal(t, WeightSourceBlended, score.WeightSource)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestAdoptionEngine_NoOrganizationSkipsStore(t *testing.T) {
	store := &fakeWeightStore{getErr: errors.New("should not be called")}
	engine := NewAdoptionEngine(store, nil)
	score := engine.Calculate(context.Background(), AdoptionRequest{Industry: "Healthcare", CompanyStage: "Startup"})
	assert.Equal(t, BlendWeights("Healthcare", "Startup"), score.Weights)
}
