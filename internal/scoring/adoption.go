package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/sirupsen/logrus"
)

// ROI assumptions.
const (
	hourlyLaborCost           = 50.0
	workWeeksPerYear          = 48.0
	investmentPerAffectedUser = 2000.0
)

const (
	detailAdoption    = "Adoption rate represents the percentage of target users expected to actively use AI tools"
	detailTimeSavings = "Time savings represents hours saved per user per week through AI automation"
	detailCost        = "Cost efficiency represents direct percentage cost reduction from AI implementation"
	detailPerformance = "Performance improvement represents percentage gains in key performance metrics"
	detailToolSprawl  = "Tool sprawl reduction represents the consolidation benefit from implementing AI platforms"
)

// Components are the five terms of the adoption score.
type Components struct {
	AdoptionRate           Component `json:"adoptionRate"`
	TimeSavings            Component `json:"timeSavings"`
	CostEfficiency         Component `json:"costEfficiency"`
	PerformanceImprovement Component `json:"performanceImprovement"`
	ToolSprawlReduction    Component `json:"toolSprawlReduction"`
}

func (c Components) weightedSum() float64 {
	return c.AdoptionRate.WeightedScore +
		c.TimeSavings.WeightedScore +
		c.CostEfficiency.WeightedScore +
		c.PerformanceImprovement.WeightedScore +
		c.ToolSprawlReduction.WeightedScore
}

// ROIDetails is present only when cost, user count, and time savings were
// all supplied; Assumptions is always set.
type ROIDetails struct {
	CalculatedROIPercentage *float64 `json:"calculatedRoiPercentage,omitempty"`
	InvestmentAmount        *float64 `json:"investmentAmount,omitempty"`
	NetBenefitAmount        *float64 `json:"netBenefitAmount,omitempty"`
	PaybackPeriodMonths     *float64 `json:"paybackPeriodMonths,omitempty"`
	Assumptions             string   `json:"assumptions"`
}

// AdoptionScore is the calculated organization-level score.
type AdoptionScore struct {
	OverallScore float64    `json:"overallScore"`
	Components   Components `json:"components"`
	ROIDetails   ROIDetails `json:"roiDetails"`
	Summary      string     `json:"summary"`
	Weights      Weights    `json:"weights"`
	WeightSource string     `json:"weightSource"`
}

// Weight sources reported on AdoptionScore.
const (
	WeightSourceOrganization = "organization"
	WeightSourceBlended      = "blended"
)

// AdoptionRequest identifies the inputs and context of one score.
type AdoptionRequest struct {
	Inputs           assessment.AdoptionScoreInputs
	Industry         string
	CompanyStage     string
	IndustryMaturity string
	OrganizationID   int64
}

func (r *AdoptionRequest) applyDefaults() {
	if r.Industry == "" {
		r.Industry = DefaultIndustry
	}
	if r.CompanyStage == "" {
		r.CompanyStage = DefaultCompanyStage
	}
	if r.IndustryMaturity == "" {
		r.IndustryMaturity = DefaultIndustryMaturity
	}
}

// WeightStore persists per-organization weight overrides.
// GetOrganizationScoreWeights returns nil, nil when none are stored.
type WeightStore interface {
	GetOrganizationScoreWeights(ctx context.Context, organizationID int64) (*Weights, error)
	UpsertOrganizationScoreWeights(ctx context.Context, organizationID int64, w Weights) error
}

// AdoptionEngine resolves weights and computes adoption scores.
type AdoptionEngine struct {
	store WeightStore
	log   logrus.FieldLogger
}

// NewAdoptionEngine returns an engine backed by store. A nil store means
// every score uses blended industry/stage weights.
func NewAdoptionEngine(store WeightStore, log logrus.FieldLogger) *AdoptionEngine {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &AdoptionEngine{store: store, log: log}
}

// WeightsFor returns the organization's stored weights. When none exist it
// blends industry and stage weights and stores them for the organization,
// so later reads are stable. Without an organization the blend is
// returned directly.
func (e *AdoptionEngine) WeightsFor(ctx context.Context, organizationID int64, industry, stage string) (Weights, string, error) {
	blended := BlendWeights(industry, stage)
	if organizationID == 0 || e.store == nil {
		return blended, WeightSourceBlended, nil
	}

	stored, err := e.store.GetOrganizationScoreWeights(ctx, organizationID)
	if err != nil {
		return blended, WeightSourceBlended, fmt.Errorf("loading weights for organization %d: %w", organizationID, err)
	}
	if stored != nil {
		return *stored, WeightSourceOrganization, nil
	}

	if err := e.store.UpsertOrganizationScoreWeights(ctx, organizationID, blended); err != nil {
		return blended, WeightSourceBlended, fmt.Errorf("storing default weights for organization %d: %w", organizationID, err)
	}
	return blended, WeightSourceBlended, nil
}

// Calculate computes the adoption score for req. Weight lookup failures
// are logged and the blended weights are used instead.
func (e *AdoptionEngine) Calculate(ctx context.Context, req AdoptionRequest) AdoptionScore {
	req.applyDefaults()

	weights, source, err := e.WeightsFor(ctx, req.OrganizationID, req.Industry, req.CompanyStage)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"organization_id": req.OrganizationID,
			"industry":        req.Industry,
		}).WithError(err).Warn("falling back to blended score weights")
	}

	score := ComputeAdoptionScore(req, weights)
	score.WeightSource = source
	return score
}

// ComputeAdoptionScore is the pure scoring function: it uses the given
// weights, fills missing inputs from the industry profile, applies the
// maturity factor, and clamps the result to [0,100].
func ComputeAdoptionScore(req AdoptionRequest, w Weights) AdoptionScore {
	req.applyDefaults()
	profile := Industry(req.Industry)
	in := req.Inputs

	comps := Components{
		AdoptionRate:           CalculateScoreComponent(valueOr(in.AdoptionRateForecast, profile.AdoptionRate), w.AdoptionRate, 0, 100, detailAdoption),
		TimeSavings:            CalculateScoreComponent(valueOr(in.TimeSavingsPerUserHours, profile.TimeSaved), w.TimeSaved, 0, 10, detailTimeSavings),
		CostEfficiency:         CalculateScoreComponent(valueOr(in.CostEfficiencyGainsAmount, profile.CostEfficiency), w.CostEfficiency, 0, 30, detailCost),
		PerformanceImprovement: CalculateScoreComponent(valueOr(in.PerformanceImprovementPercentage, profile.PerformanceGain), w.PerformanceImprovement, 0, 50, detailPerformance),
		ToolSprawlReduction:    CalculateScoreComponent(valueOr(in.ToolSprawlReductionScore, profile.ToolSprawlReduction), w.ToolSprawlReduction, 1, 5, detailToolSprawl),
	}

	scaled := clamp(comps.weightedSum()*100, 0, 100)
	final := clamp(scaled*MaturityFactor(req.IndustryMaturity), 0, 100)

	return AdoptionScore{
		OverallScore: round1(final),
		Components:   comps,
		ROIDetails:   computeROI(req),
		Summary:      Summary(final, req.Industry, req.CompanyStage),
		Weights:      w,
		WeightSource: WeightSourceBlended,
	}
}

func computeROI(req AdoptionRequest) ROIDetails {
	in := req.Inputs
	roi := ROIDetails{
		Assumptions: fmt.Sprintf("Calculations assume $%.0f/hour fully loaded labor cost, %.0f work weeks per year, and implementation cost of $%.0f per affected user. Industry: %s, Company Stage: %s, Industry Maturity: %s.",
			hourlyLaborCost, workWeeksPerYear, investmentPerAffectedUser, req.Industry, req.CompanyStage, req.IndustryMaturity),
	}
	if !nonZero(in.CostEfficiencyGainsAmount) || !nonZero(in.AffectedUserCount) || !nonZero(in.TimeSavingsPerUserHours) {
		return roi
	}

	users := *in.AffectedUserCount
	timeValue := *in.TimeSavingsPerUserHours * users * hourlyLaborCost * workWeeksPerYear
	costSavings := *in.CostEfficiencyGainsAmount
	investment := users * investmentPerAffectedUser
	net := timeValue + costSavings - investment
	pct := net / investment * 100

	roi.InvestmentAmount = &investment
	roi.NetBenefitAmount = &net
	roi.CalculatedROIPercentage = &pct
	if benefit := timeValue + costSavings; benefit > 0 {
		months := investment / benefit * 12
		roi.PaybackPeriodMonths = &months
	}
	return roi
}

// Summary renders the narrative band for a final score.
func Summary(score float64, industry, stage string) string {
	var band, outlook string
	switch {
	case score >= 80:
		band = "excellent"
		outlook = "this indicates strong readiness for advanced AI initiatives with potential for significant competitive advantage."
	case score >= 60:
		band = "good"
		outlook = "this suggests readiness for targeted AI initiatives with proper planning and change management."
	case score >= 40:
		band = "moderate"
		outlook = "this suggests focusing on foundational AI capabilities first, with gradual expansion."
	default:
		band = "cautious"
		outlook = "this suggests starting with small pilot programs and addressing organizational readiness factors."
	}
	return fmt.Sprintf("Your organization shows %s AI adoption potential (%.1f/100). For a %s company in the %s industry, %s",
		band, score, strings.ToLower(stage), strings.ToLower(industry), outlook)
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func nonZero(p *float64) bool {
	return p != nil && *p != 0
}
