package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aiready/internal/output"
	"github.com/blackwell-systems/aiready/internal/rationalize"
)

var rationalizeCmd = &cobra.Command{
	Use:   "rationalize",
	Short: "Merge duplicate capabilities in the catalog",
	Long: `Rationalize asks the recommendation provider to group duplicate
capabilities and merges each group into its primary: tool and role links
move to the primary and the duplicates are archived. Applying the same
groups twice changes nothing.

Use 'run' to call the provider directly, or 'export' and 'apply' to go
through an OpenAI-compatible batch job.`,
}

var rationalizeRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Group and merge duplicates using the configured provider",
	Args:  cobra.NoArgs,
	RunE:  runRationalizeRun,
}

var rationalizeExportCmd = &cobra.Command{
	Use:   "export <requests.jsonl>",
	Short: "Write a batch request file for the active catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runRationalizeExport,
}

var rationalizeApplyCmd = &cobra.Command{
	Use:   "apply <responses.jsonl>",
	Short: "Apply the groups in a batch response file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRationalizeApply,
}

func init() {
	rationalizeCmd.AddCommand(rationalizeRunCmd, rationalizeExportCmd, rationalizeApplyCmd)
	rootCmd.AddCommand(rationalizeCmd)
}

func runRationalizeRun(cmd *cobra.Command, args []string) error {
	return withRuntime(func(rt *runtime) error {
		r, err := rt.rationalizer(true)
		if err != nil {
			return err
		}
		res, err := r.Run(cmd.Context())
		if err != nil {
			return err
		}
		return renderRationalizeResult(cmd.OutOrStdout(), res)
	})
}

func runRationalizeExport(cmd *cobra.Command, args []string) error {
	return withRuntime(func(rt *runtime) error {
		r, err := rt.rationalizer(false)
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		n, err := r.ExportBatch(cmd.Context(), f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		rt.log.WithField("file", args[0]).Info("batch requests written")
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d batch requests to %s\n", n, args[0])
		return nil
	})
}

func runRationalizeApply(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	return withRuntime(func(rt *runtime) error {
		r, err := rt.rationalizer(false)
		if err != nil {
			return err
		}
		res, err := r.ApplyBatch(cmd.Context(), f)
		if err != nil {
			return err
		}
		return renderRationalizeResult(cmd.OutOrStdout(), res)
	})
}

func renderRationalizeResult(w io.Writer, res rationalize.Result) error {
	if flagJSON {
		return writeJSON(w, res)
	}
	fmt.Fprintln(w, output.Section("Rationalization"))
	fmt.Fprintln(w, output.Field("Batches", fmt.Sprintf("%d (%d failed)", res.Batches, res.FailedBatches)))
	fmt.Fprintln(w, output.Field("Groups applied", fmt.Sprintf("%d", res.GroupsApplied)))
	fmt.Fprintln(w, output.Field("Groups skipped", fmt.Sprintf("%d", res.GroupsSkipped)))
	fmt.Fprintln(w, output.Field("Capabilities merged", output.StyleBold.Render(fmt.Sprintf("%d", res.Merged))))
	return nil
}
