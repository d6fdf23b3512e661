package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/scoring"
	"github.com/blackwell-systems/aiready/internal/store"
)

var (
	adoptionFlagAssessment int64
	adoptionFlagIndustry   string
	adoptionFlagStage      string
	adoptionFlagMaturity   string
	adoptionFlagOrg        int64
	adoptionFlagInputs     string
	adoptionFlagValues     adoptionInputFlags

	roleFlagInput      scoring.RoleScoreInput
	roleFlagAssessment int64
	roleFlagStep       string
)

// adoptionInputFlags are the optional raw inputs; only flags the user set
// override other sources.
type adoptionInputFlags struct {
	AdoptionRate  float64
	TimeSavings   float64
	AffectedUsers float64
	CostSavings   float64
	Performance   float64
	ToolSprawl    float64
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Calculate adoption and role scores",
}

var scoreAdoptionCmd = &cobra.Command{
	Use:   "adoption",
	Short: "Calculate the organization-level AI adoption score",
	Long: `Adoption computes the 0-100 AI adoption score from five weighted
components. Inputs come from an assessment (--assessment), a JSON file
(--inputs), and individual flags, in that order; missing inputs use the
industry's defaults. Weights are the organization's stored weights when
--org is set, otherwise an industry/stage blend.`,
	Args: cobra.NoArgs,
	RunE: runScoreAdoption,
}

var scoreRoleCmd = &cobra.Command{
	Use:   "role",
	Short: "Rate a job role for AI transformation",
	Long: `Role averages three value ratings and three ease ratings (each 1-5) and
blends the two with the configured value/ease split (60/40 by default).
With --assessment and --step the score is stored against that wizard step.`,
	Args: cobra.NoArgs,
	RunE: runScoreRole,
}

func init() {
	f := scoreAdoptionCmd.Flags()
	f.Int64Var(&adoptionFlagAssessment, "assessment", 0, "Take context and inputs from this assessment")
	f.StringVar(&adoptionFlagIndustry, "industry", "", "Industry (default \"Other\")")
	f.StringVar(&adoptionFlagStage, "stage", "", "Company stage (default \"Startup\")")
	f.StringVar(&adoptionFlagMaturity, "maturity", "", "Industry maturity (default \"Immature\")")
	f.Int64Var(&adoptionFlagOrg, "org", 0, "Organization ID for stored weights")
	f.StringVar(&adoptionFlagInputs, "inputs", "", "JSON file with aiAdoptionScoreInputs")
	f.Float64Var(&adoptionFlagValues.AdoptionRate, "adoption-rate", 0, "Expected adoption rate (%)")
	f.Float64Var(&adoptionFlagValues.TimeSavings, "time-savings", 0, "Hours saved per user per week")
	f.Float64Var(&adoptionFlagValues.AffectedUsers, "affected-users", 0, "Number of affected users")
	f.Float64Var(&adoptionFlagValues.CostSavings, "cost-savings", 0, "Annual cost efficiency gains ($)")
	f.Float64Var(&adoptionFlagValues.Performance, "performance", 0, "Performance improvement (%)")
	f.Float64Var(&adoptionFlagValues.ToolSprawl, "tool-sprawl", 0, "Tool sprawl reduction (1-5)")

	r := scoreRoleCmd.Flags()
	r.Float64Var(&roleFlagInput.TimeSavings, "time-savings", 0, "Time savings rating (1-5)")
	r.Float64Var(&roleFlagInput.QualityImpact, "quality-impact", 0, "Quality impact rating (1-5)")
	r.Float64Var(&roleFlagInput.StrategicAlignment, "strategic-alignment", 0, "Strategic alignment rating (1-5)")
	r.Float64Var(&roleFlagInput.DataReadiness, "data-readiness", 0, "Data readiness rating (1-5)")
	r.Float64Var(&roleFlagInput.TechnicalFeasibility, "technical-feasibility", 0, "Technical feasibility rating (1-5)")
	r.Float64Var(&roleFlagInput.AdoptionRisk, "adoption-risk", 0, "Adoption risk rating (1-5, higher is lower risk)")
	r.Int64Var(&roleFlagAssessment, "assessment", 0, "Store the score on this assessment")
	r.StringVar(&roleFlagStep, "step", "", "Wizard step ID to store the score under")

	scoreCmd.AddCommand(scoreAdoptionCmd, scoreRoleCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScoreAdoption(cmd *cobra.Command, args []string) error {
	return withRuntime(func(rt *runtime) error {
		req, err := adoptionRequest(cmd.Context(), rt.db, cmd.Flags())
		if err != nil {
			return err
		}
		score := rt.scorer().Calculate(cmd.Context(), req)
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), score)
		}
		renderAdoptionScore(cmd.OutOrStdout(), score)
		return nil
	})
}

// adoptionRequest layers assessment context, the inputs file, and flags.
func adoptionRequest(ctx context.Context, db *store.DB, flags *pflag.FlagSet) (scoring.AdoptionRequest, error) {
	var req scoring.AdoptionRequest
	if adoptionFlagAssessment != 0 {
		a, err := db.GetAssessment(ctx, adoptionFlagAssessment)
		if err != nil {
			return req, err
		}
		if a == nil {
			return req, fmt.Errorf("assessment %d: %w", adoptionFlagAssessment, store.ErrNotFound)
		}
		req.Industry = a.Industry
		req.CompanyStage = a.CompanyStage
		req.IndustryMaturity = a.IndustryMaturity
		req.OrganizationID = a.OrganizationID
		if a.StepData.AIAdoptionScoreInputs != nil {
			req.Inputs = *a.StepData.AIAdoptionScoreInputs
		}
	}

	if adoptionFlagInputs != "" {
		data, err := os.ReadFile(adoptionFlagInputs)
		if err != nil {
			return req, err
		}
		if err := json.Unmarshal(data, &req.Inputs); err != nil {
			return req, fmt.Errorf("parsing %s: %w", adoptionFlagInputs, err)
		}
	}

	setString := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	setString("industry", &req.Industry, adoptionFlagIndustry)
	setString("stage", &req.CompanyStage, adoptionFlagStage)
	setString("maturity", &req.IndustryMaturity, adoptionFlagMaturity)
	if flags.Changed("org") {
		req.OrganizationID = adoptionFlagOrg
	}

	setFloat := func(name string, dst **float64, v float64) {
		if flags.Changed(name) {
			*dst = assessment.Ptr(v)
		}
	}
	v := adoptionFlagValues
	setFloat("adoption-rate", &req.Inputs.AdoptionRateForecast, v.AdoptionRate)
	setFloat("time-savings", &req.Inputs.TimeSavingsPerUserHours, v.TimeSavings)
	setFloat("affected-users", &req.Inputs.AffectedUserCount, v.AffectedUsers)
	setFloat("cost-savings", &req.Inputs.CostEfficiencyGainsAmount, v.CostSavings)
	setFloat("performance", &req.Inputs.PerformanceImprovementPercentage, v.Performance)
	setFloat("tool-sprawl", &req.Inputs.ToolSprawlReductionScore, v.ToolSprawl)
	return req, nil
}

func runScoreRole(cmd *cobra.Command, args []string) error {
	if err := scoring.ValidateRoleInput(roleFlagInput); err != nil {
		return err
	}
	if (roleFlagAssessment == 0) != (roleFlagStep == "") {
		return fmt.Errorf("--assessment and --step must be used together")
	}
	return withRuntime(func(rt *runtime) error {
		policy, err := rt.blend()
		if err != nil {
			return err
		}
		score := scoring.CalculateRoleScore(roleFlagInput, policy)

		if roleFlagAssessment != 0 {
			if err := rt.db.SaveRoleScore(cmd.Context(), roleFlagAssessment, roleFlagStep, roleFlagInput, score); err != nil {
				return fmt.Errorf("saving role score: %w", err)
			}
			rt.log.WithFields(logrus.Fields{
				"assessment_id": roleFlagAssessment,
				"step":          roleFlagStep,
			}).Info("role score saved")
		}

		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), score)
		}
		renderRoleScore(cmd.OutOrStdout(), score)
		return nil
	})
}
