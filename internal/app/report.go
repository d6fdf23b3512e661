package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aiready/internal/prioritize"
	"github.com/blackwell-systems/aiready/internal/store"
)

var (
	reportFlagNoCache bool
	reportFlagLatest  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and inspect prioritization reports",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate <assessment-id>",
	Short: "Run the prioritization pipeline for an assessment",
	Long: `Generate scores the assessment's selected roles, places them on the
value/effort heatmap, asks the recommendation provider about the top roles,
stores the suggested capabilities, and saves the report. Provider failures
fall back to built-in content; the run only fails when the assessment does
not exist.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportGenerate,
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show a saved report (or the latest for an assessment with --latest)",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

var reportCommentaryCmd = &cobra.Command{
	Use:   "commentary <report-id> <text>",
	Short: "Attach consultant commentary to a report",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReportCommentary,
}

func init() {
	reportGenerateCmd.Flags().BoolVar(&reportFlagNoCache, "no-cache", false, "Request a fresh executive summary")
	reportShowCmd.Flags().BoolVar(&reportFlagLatest, "latest", false, "Treat the argument as an assessment ID and show its latest report")

	reportCmd.AddCommand(reportGenerateCmd, reportShowCmd, reportCommentaryCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportGenerate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "assessment")
	if err != nil {
		return err
	}
	return withRuntime(func(rt *runtime) error {
		engine, err := rt.engine()
		if err != nil {
			return err
		}
		report, err := engine.Run(cmd.Context(), id, prioritize.GenerateOptions{NoCache: reportFlagNoCache})
		if errors.Is(err, prioritize.ErrAssessmentNotFound) {
			return fmt.Errorf("assessment %d does not exist", id)
		}
		if err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		renderReport(cmd.OutOrStdout(), report)
		return nil
	})
}

func runReportShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "report")
	if err != nil {
		return err
	}
	return withRuntime(func(rt *runtime) error {
		var report *prioritize.Report
		if reportFlagLatest {
			report, err = rt.db.GetLatestReport(cmd.Context(), id)
		} else {
			report, err = rt.db.GetReport(cmd.Context(), id)
		}
		if err != nil {
			return err
		}
		if report == nil {
			return fmt.Errorf("report %d: %w", id, store.ErrNotFound)
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		renderReport(cmd.OutOrStdout(), report)
		return nil
	})
}

func runReportCommentary(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "report")
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")
	return withRuntime(func(rt *runtime) error {
		if err := rt.db.UpdateReportCommentary(cmd.Context(), id, text); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Commentary saved on report %d\n", id)
		return nil
	})
}
