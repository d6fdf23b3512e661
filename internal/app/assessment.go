package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/output"
	"github.com/blackwell-systems/aiready/internal/store"
)

var (
	assessmentFlagTitle    string
	assessmentFlagOrg      int64
	assessmentFlagIndustry string
	assessmentFlagStage    string
	assessmentFlagMaturity string
	assessmentFlagSteps    string
)

var assessmentCmd = &cobra.Command{
	Use:   "assessment",
	Short: "Create and inspect assessments",
}

var assessmentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an assessment from wizard answers",
	Long: `Create stores a new draft assessment. --steps points at a JSON file
holding the wizard answers (basics, roles, painPoints, techStack,
aiAdoptionScoreInputs, ...).`,
	Args: cobra.NoArgs,
	RunE: runAssessmentCreate,
}

var assessmentStepsCmd = &cobra.Command{
	Use:   "steps <assessment-id> <steps.json>",
	Short: "Replace an assessment's wizard answers",
	Args:  cobra.ExactArgs(2),
	RunE:  runAssessmentSteps,
}

var assessmentShowCmd = &cobra.Command{
	Use:   "show <assessment-id>",
	Short: "Show an assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssessmentShow,
}

func init() {
	f := assessmentCreateCmd.Flags()
	f.StringVar(&assessmentFlagTitle, "title", "", "Assessment title")
	f.Int64Var(&assessmentFlagOrg, "org", 0, "Organization ID (enables stored score weights)")
	f.StringVar(&assessmentFlagIndustry, "industry", "", "Industry, e.g. \"Healthcare\"")
	f.StringVar(&assessmentFlagStage, "stage", "", "Company stage: Startup, Early Growth, Scaling, Mature")
	f.StringVar(&assessmentFlagMaturity, "maturity", "", "Industry AI maturity: Mature or Immature")
	f.StringVar(&assessmentFlagSteps, "steps", "", "JSON file with wizard answers")
	_ = assessmentCreateCmd.MarkFlagRequired("title")

	assessmentCmd.AddCommand(assessmentCreateCmd, assessmentStepsCmd, assessmentShowCmd)
	rootCmd.AddCommand(assessmentCmd)
}

func readSteps(path string) (assessment.WizardStepData, error) {
	var steps assessment.WizardStepData
	if path == "" {
		return steps, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return steps, err
	}
	if err := json.Unmarshal(data, &steps); err != nil {
		return steps, fmt.Errorf("parsing %s: %w", path, err)
	}
	return steps, nil
}

func runAssessmentCreate(cmd *cobra.Command, args []string) error {
	steps, err := readSteps(assessmentFlagSteps)
	if err != nil {
		return err
	}
	a := &assessment.Assessment{
		OrganizationID:   assessmentFlagOrg,
		Title:            assessmentFlagTitle,
		Industry:         assessmentFlagIndustry,
		CompanyStage:     assessmentFlagStage,
		IndustryMaturity: assessmentFlagMaturity,
		StepData:         steps,
	}
	if a.Industry == "" && steps.Basics != nil {
		a.Industry = steps.Basics.Industry
	}

	return withRuntime(func(rt *runtime) error {
		id, err := rt.db.CreateAssessment(cmd.Context(), a)
		if err != nil {
			return fmt.Errorf("creating assessment: %w", err)
		}
		rt.log.WithField("assessment_id", id).Info("assessment created")
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), map[string]int64{"id": id})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created assessment %d with %d selected roles\n", id, len(steps.SelectedRoleIDs()))
		return nil
	})
}

func runAssessmentSteps(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "assessment")
	if err != nil {
		return err
	}
	steps, err := readSteps(args[1])
	if err != nil {
		return err
	}
	return withRuntime(func(rt *runtime) error {
		if err := rt.db.UpdateAssessmentStepData(cmd.Context(), id, steps); err != nil {
			return fmt.Errorf("updating assessment %d: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated assessment %d\n", id)
		return nil
	})
}

func runAssessmentShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "assessment")
	if err != nil {
		return err
	}
	return withRuntime(func(rt *runtime) error {
		a, err := rt.db.GetAssessment(cmd.Context(), id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assessment %d: %w", id, store.ErrNotFound)
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), a)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, output.Section(fmt.Sprintf("Assessment %d: %s", a.ID, a.Title)))
		fmt.Fprintln(w, output.Field("Status", string(a.Status)))
		fmt.Fprintln(w, output.Field("Industry", orDash(a.Industry)))
		fmt.Fprintln(w, output.Field("Company stage", orDash(a.CompanyStage)))
		fmt.Fprintln(w, output.Field("Industry maturity", orDash(a.IndustryMaturity)))
		fmt.Fprintln(w, output.Field("Updated", a.UpdatedAt.Format("2006-01-02 15:04")))

		roles, _ := a.StepData.RankedRoles()
		if len(roles) == 0 {
			fmt.Fprintln(w, output.StyleMuted.Render("\n No roles selected."))
			return nil
		}
		tbl := output.NewTable("Role ID", "Title", "Department")
		for _, r := range roles {
			tbl.AddRow(fmt.Sprintf("%d", r.ID), orDash(r.Title), orDash(r.Department))
		}
		fmt.Fprintln(w)
		return tbl.Fprint(w)
	})
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
