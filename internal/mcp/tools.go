package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/prioritize"
	"github.com/blackwell-systems/aiready/internal/scoring"
)

type adoptionTool struct {
	scorer *scoring.AdoptionEngine
}

func (t *adoptionTool) Definition() mcp.Tool {
	return mcp.NewTool("score_adoption",
		mcp.WithDescription("Calculate the 0-100 AI adoption score of an organization. Missing inputs use the industry's defaults."),
		mcp.WithString("industry", mcp.Description("Industry, e.g. Healthcare (default Other)")),
		mcp.WithString("company_stage", mcp.Description("Startup, Early Growth, Scaling, or Mature (default Startup)")),
		mcp.WithString("industry_maturity", mcp.Description("Mature or Immature (default Immature)")),
		mcp.WithNumber("organization_id", mcp.Description("Use this organization's stored weights")),
		mcp.WithNumber("adoption_rate_forecast", mcp.Description("Expected adoption rate, percent")),
		mcp.WithNumber("time_savings_per_user_hours", mcp.Description("Hours saved per user per week")),
		mcp.WithNumber("affected_user_count", mcp.Description("Number of affected users")),
		mcp.WithNumber("cost_efficiency_gains_amount", mcp.Description("Annual cost savings in dollars")),
		mcp.WithNumber("performance_improvement_percentage", mcp.Description("Performance improvement, percent")),
		mcp.WithNumber("tool_sprawl_reduction_score", mcp.Description("Tool sprawl reduction, 1-5")),
	)
}

func (t *adoptionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := assessment.AdoptionScoreInputs{}
	for key, dst := range map[string]**float64{
		"adoption_rate_forecast":             &in.AdoptionRateForecast,
		"time_savings_per_user_hours":        &in.TimeSavingsPerUserHours,
		"affected_user_count":                &in.AffectedUserCount,
		"cost_efficiency_gains_amount":       &in.CostEfficiencyGainsAmount,
		"performance_improvement_percentage": &in.PerformanceImprovementPercentage,
		"tool_sprawl_reduction_score":        &in.ToolSprawlReductionScore,
	} {
		if v, ok := floatArg(req, key); ok {
			*dst = assessment.Ptr(v)
		}
	}
	score := t.scorer.Calculate(ctx, scoring.AdoptionRequest{
		Inputs:           in,
		Industry:         req.GetString("industry", ""),
		CompanyStage:     req.GetString("company_stage", ""),
		IndustryMaturity: req.GetString("industry_maturity", ""),
		OrganizationID:   intArg(req, "organization_id", 0),
	})
	return jsonResult(score)
}

type roleTool struct {
	blend scoring.BlendPolicy
}

var roleCriteria = []string{
	"time_savings", "quality_impact", "strategic_alignment",
	"data_readiness", "technical_feasibility", "adoption_risk",
}

func (t *roleTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Rate a job role for AI transformation from six 1-5 ratings: three for value potential, three for ease of implementation."),
	}
	for _, c := range roleCriteria {
		opts = append(opts, mcp.WithNumber(c, mcp.Required(), mcp.Description("Rating 1-5")))
	}
	return mcp.NewTool("score_role", opts...)
}

func (t *roleTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vals := make([]float64, len(roleCriteria))
	for i, c := range roleCriteria {
		v, ok := floatArg(req, c)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("'%s' is required", c)), nil
		}
		vals[i] = v
	}
	in := scoring.RoleScoreInput{
		TimeSavings:          vals[0],
		QualityImpact:        vals[1],
		StrategicAlignment:   vals[2],
		DataReadiness:        vals[3],
		TechnicalFeasibility: vals[4],
		AdoptionRisk:         vals[5],
	}
	if err := scoring.ValidateRoleInput(in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(scoring.CalculateRoleScore(in, t.blend))
}

type generateTool struct {
	generator Generator
}

func (t *generateTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_report",
		mcp.WithDescription("Run the prioritization pipeline for an assessment and save the report. Returns the ranked roles and the adoption score."),
		mcp.WithNumber("assessment_id", mcp.Required(), mcp.Description("Assessment to prioritize")),
		mcp.WithBoolean("no_cache", mcp.Description("Request a fresh executive summary")),
	)
}

// reportDigest is the compact form of a report returned to the client.
type reportDigest struct {
	ReportID         int64                        `json:"reportId"`
	ExecutiveSummary string                       `json:"executiveSummary"`
	OverallScore     float64                      `json:"overallScore"`
	PrioritizedItems []prioritize.PrioritizedItem `json:"prioritizedItems"`
	EstimatedROI     float64                      `json:"estimatedRoi"`
}

func (t *generateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "assessment_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'assessment_id' is required"), nil
	}
	report, err := t.generator.Run(ctx, id, prioritize.GenerateOptions{NoCache: boolArg(req, "no_cache", false)})
	if errors.Is(err, prioritize.ErrAssessmentNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("assessment %d does not exist", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generating report: %v", err)), nil
	}
	return jsonResult(reportDigest{
		ReportID:         report.ID,
		ExecutiveSummary: report.ExecutiveSummary,
		OverallScore:     report.AIAdoptionScore.OverallScore,
		PrioritizedItems: report.PrioritizationData.PrioritizedItems,
		EstimatedROI:     report.PerformanceImpact.EstimatedROI,
	})
}

type reportTool struct {
	store Store
}

func (t *reportTool) Definition() mcp.Tool {
	return mcp.NewTool("get_report",
		mcp.WithDescription("Return the latest saved report of an assessment as JSON."),
		mcp.WithNumber("assessment_id", mcp.Required(), mcp.Description("Assessment ID")),
	)
}

func (t *reportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "assessment_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'assessment_id' is required"), nil
	}
	report, err := t.store.GetLatestReport(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading report: %v", err)), nil
	}
	if report == nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment %d has no report", id)), nil
	}
	return jsonResult(report)
}

type catalogTool struct {
	store Store
}

func (t *catalogTool) Definition() mcp.Tool {
	return mcp.NewTool("list_capabilities",
		mcp.WithDescription("List the AI capability catalog."),
		mcp.WithBoolean("include_duplicates", mcp.Description("Include capabilities merged into others")),
	)
}

func (t *catalogTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	caps, err := t.store.ListCapabilities(ctx, boolArg(req, "include_duplicates", false))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing capabilities: %v", err)), nil
	}
	if caps == nil {
		caps = []assessment.Capability{}
	}
	return jsonResult(caps)
}
