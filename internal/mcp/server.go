// Package mcp exposes the scoring engines and saved reports as Model
// Context Protocol tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/prioritize"
	"github.com/blackwell-systems/aiready/internal/scoring"
)

// Store is the read side of the database the tools use.
type Store interface {
	GetLatestReport(ctx context.Context, assessmentID int64) (*prioritize.Report, error)
	ListCapabilities(ctx context.Context, includeDuplicates bool) ([]assessment.Capability, error)
}

// Generator runs the prioritization pipeline.
type Generator interface {
	Run(ctx context.Context, assessmentID int64, opts prioritize.GenerateOptions) (*prioritize.Report, error)
}

// Deps are the components the tools call into.
type Deps struct {
	Store     Store
	Scorer    *scoring.AdoptionEngine
	Generator Generator
	Blend     scoring.BlendPolicy
}

// New creates the MCP server with every tool registered.
func New(deps Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"aiready",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.AddTools(Tools(deps)...)
	return s
}

// Tools returns the tool definitions bound to deps.
func Tools(deps Deps) []server.ServerTool {
	adoption := &adoptionTool{scorer: deps.Scorer}
	role := &roleTool{blend: deps.Blend}
	generate := &generateTool{generator: deps.Generator}
	report := &reportTool{store: deps.Store}
	catalog := &catalogTool{store: deps.Store}
	return []server.ServerTool{
		{Tool: adoption.Definition(), Handler: adoption.Handle},
		{Tool: role.Definition(), Handler: role.Handle},
		{Tool: generate.Definition(), Handler: generate.Handle},
		{Tool: report.Definition(), Handler: report.Handle},
		{Tool: catalog.Definition(), Handler: catalog.Handle},
	}
}

// floatArg extracts a number argument. JSON numbers arrive as float64.
func floatArg(req mcp.CallToolRequest, key string) (float64, bool) {
	v, ok := req.GetArguments()[key].(float64)
	return v, ok
}

func intArg(req mcp.CallToolRequest, key string, defaultVal int64) int64 {
	v, ok := floatArg(req, key)
	if !ok {
		return defaultVal
	}
	return int64(v)
}

func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
