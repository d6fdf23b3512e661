package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aiready/internal/output"
	"github.com/blackwell-systems/aiready/internal/scoring"
	"github.com/blackwell-systems/aiready/internal/store"
)

var (
	weightsFlagIndustry string
	weightsFlagStage    string
	weightsFlagValues   scoring.Weights
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show and override an organization's adoption score weights",
}

var weightsShowCmd = &cobra.Command{
	Use:   "show <org-id>",
	Short: "Show the weights used for an organization",
	Long: `Show prints the organization's stored weights. When none are stored
yet, the industry/stage blend is computed, stored, and shown.`,
	Args: cobra.ExactArgs(1),
	RunE: runWeightsShow,
}

var weightsSetCmd = &cobra.Command{
	Use:   "set <org-id>",
	Short: "Override individual weights of an organization",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeightsSet,
}

func init() {
	for _, c := range []*cobra.Command{weightsShowCmd, weightsSetCmd} {
		c.Flags().StringVar(&weightsFlagIndustry, "industry", "", "Industry for the default blend (default: the organization's industry)")
		c.Flags().StringVar(&weightsFlagStage, "stage", scoring.DefaultCompanyStage, "Company stage for the default blend")
	}
	f := weightsSetCmd.Flags()
	f.Float64Var(&weightsFlagValues.AdoptionRate, "adoption-rate", 0, "Adoption rate weight (0-1)")
	f.Float64Var(&weightsFlagValues.TimeSaved, "time-saved", 0, "Time saved weight (0-1)")
	f.Float64Var(&weightsFlagValues.CostEfficiency, "cost-efficiency", 0, "Cost efficiency weight (0-1)")
	f.Float64Var(&weightsFlagValues.PerformanceImprovement, "performance", 0, "Performance improvement weight (0-1)")
	f.Float64Var(&weightsFlagValues.ToolSprawlReduction, "tool-sprawl", 0, "Tool sprawl reduction weight (0-1)")

	weightsCmd.AddCommand(weightsShowCmd, weightsSetCmd)
	rootCmd.AddCommand(weightsCmd)
}

// currentWeights resolves the organization's weights, creating the default
// blend on first read.
func currentWeights(ctx context.Context, rt *runtime, orgID int64) (scoring.Weights, string, error) {
	org, err := rt.db.GetOrganization(ctx, orgID)
	if err != nil {
		return scoring.Weights{}, "", err
	}
	if org == nil {
		return scoring.Weights{}, "", fmt.Errorf("organization %d: %w", orgID, store.ErrNotFound)
	}
	industry := weightsFlagIndustry
	if industry == "" {
		industry = org.Industry
	}
	return rt.scorer().WeightsFor(ctx, orgID, industry, weightsFlagStage)
}

func runWeightsShow(cmd *cobra.Command, args []string) error {
	orgID, err := parseID(args[0], "organization")
	if err != nil {
		return err
	}
	return withRuntime(func(rt *runtime) error {
		w, source, err := currentWeights(cmd.Context(), rt, orgID)
		if err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"weights": w, "source": source})
		}
		renderWeights(cmd.OutOrStdout(), orgID, w, source)
		return nil
	})
}

func runWeightsSet(cmd *cobra.Command, args []string) error {
	orgID, err := parseID(args[0], "organization")
	if err != nil {
		return err
	}
	return withRuntime(func(rt *runtime) error {
		w, _, err := currentWeights(cmd.Context(), rt, orgID)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		set := func(name string, dst *float64, v float64) {
			if flags.Changed(name) {
				*dst = v
			}
		}
		in := weightsFlagValues
		set("adoption-rate", &w.AdoptionRate, in.AdoptionRate)
		set("time-saved", &w.TimeSaved, in.TimeSaved)
		set("cost-efficiency", &w.CostEfficiency, in.CostEfficiency)
		set("performance", &w.PerformanceImprovement, in.PerformanceImprovement)
		set("tool-sprawl", &w.ToolSprawlReduction, in.ToolSprawlReduction)

		if err := w.Validate(); err != nil {
			return err
		}
		if err := rt.db.UpsertOrganizationScoreWeights(cmd.Context(), orgID, w); err != nil {
			return fmt.Errorf("storing weights: %w", err)
		}
		rt.log.WithField("organization_id", orgID).Info("score weights updated")
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), w)
		}
		renderWeights(cmd.OutOrStdout(), orgID, w, scoring.WeightSourceOrganization)
		return nil
	})
}

func renderWeights(w io.Writer, orgID int64, weights scoring.Weights, source string) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Score weights for organization %d (%s)", orgID, source)))
	tbl := output.NewTable("Component", "Weight").AlignRight(1)
	tbl.AddRow("Adoption rate", fmt.Sprintf("%.3f", weights.AdoptionRate))
	tbl.AddRow("Time saved", fmt.Sprintf("%.3f", weights.TimeSaved))
	tbl.AddRow("Cost efficiency", fmt.Sprintf("%.3f", weights.CostEfficiency))
	tbl.AddRow("Performance improvement", fmt.Sprintf("%.3f", weights.PerformanceImprovement))
	tbl.AddRow("Tool sprawl reduction", fmt.Sprintf("%.3f", weights.ToolSprawlReduction))
	fmt.Fprint(w, tbl.Render())
}
