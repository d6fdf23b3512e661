package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aiready/internal/output"
)

var capabilitiesFlagAll bool

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Inspect the AI capability catalog",
}

var capabilitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog capabilities",
	Args:  cobra.NoArgs,
	RunE:  runCapabilitiesList,
}

func init() {
	capabilitiesListCmd.Flags().BoolVar(&capabilitiesFlagAll, "all", false, "Include capabilities merged into others")
	capabilitiesCmd.AddCommand(capabilitiesListCmd)
	rootCmd.AddCommand(capabilitiesCmd)
}

func runCapabilitiesList(cmd *cobra.Command, args []string) error {
	return withRuntime(func(rt *runtime) error {
		caps, err := rt.db.ListCapabilities(cmd.Context(), capabilitiesFlagAll)
		if err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), caps)
		}
		if len(caps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No capabilities in the catalog.")
			return nil
		}

		tbl := output.NewTable("ID", "Name", "Category", "Tags", "Status")
		for _, c := range caps {
			status := output.StyleSuccess.Render("active")
			if !c.IsActive() {
				status = output.StyleMuted.Render(fmt.Sprintf("merged into %d", c.CanonicalID()))
			}
			tbl.AddRow(fmt.Sprintf("%d", c.ID), c.Name, c.Category, strings.Join(c.Tags, ","), status)
		}
		fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
		fmt.Fprintln(cmd.OutOrStdout(), output.StyleMuted.Render(fmt.Sprintf("\n %d capabilities", tbl.Len())))
		return nil
	})
}
