package app

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/aiready/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing the scoring tools",
	Long: `Start a Model Context Protocol stdio server. The server exposes:

  score_adoption     Organization-level AI adoption score
  score_role         Role rating for AI transformation
  generate_report    Run the prioritization pipeline for an assessment
  get_report         Latest saved report of an assessment
  list_capabilities  The AI capability catalog

Example client configuration:
  {"mcpServers":{"aiready":{"command":"aiready","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	return withRuntime(func(rt *runtime) error {
		engine, err := rt.engine()
		if err != nil {
			return err
		}
		blend, err := rt.blend()
		if err != nil {
			return err
		}
		s := mcp.New(mcp.Deps{
			Store:     rt.db,
			Scorer:    rt.scorer(),
			Generator: engine,
			Blend:     blend,
		}, appVersion)
		rt.log.Info("serving MCP on stdio")
		return server.ServeStdio(s)
	})
}
