package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/aiready/internal/advisor"
	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/prioritize"
	"github.com/blackwell-systems/aiready/internal/scoring"
	"github.com/blackwell-systems/aiready/internal/store"
)

func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

type fixture struct {
	db    *store.DB
	deps  Deps
	tools map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	scorer := scoring.NewAdoptionEngine(db, nil)
	deps := Deps{
		Store:     db,
		Scorer:    scorer,
		Generator: prioritize.New(db, advisor.New(advisor.Unavailable()), scorer),
		Blend:     scoring.DefaultBlend,
	}
	f := &fixture{db: db, deps: deps, tools: map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){}}
	for _, st := range Tools(deps) {
		f.tools[st.Tool.Name] = st.Handler
	}
	return f
}

func (f *fixture) call(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	h, ok := f.tools[name]
	require.True(t, ok, "tool %s not registered", name)
	res, err := h(context.Background(), makeReq(args))
	require.NoError(t, err)
	return res
}

func TestTools_Registered(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"score_adoption", "score_role", "generate_report", "get_report", "list_capabilities"} {
		assert.Contains(t, f.tools, name)
	}
	assert.NotNil(t, New(f.deps, "test"))
}

func TestScoreAdoption(t *testing.T) {
	f := newFixture(t)
	res := f.call(t, "score_adoption", map[string]any{
		"industry":                     "Healthcare",
		"company_stage":                "Mature",
		"industry_maturity":            "Mature",
		"affected_user_count":          float64(10),
		"time_savings_per_user_hours":  float64(5),
		"cost_efficiency_gains_amount": float64(10000),
	})
	require.False(t, res.IsError, resultText(res))

	var score scoring.AdoptionScore
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &score))
	assert.Equal(t, scoring.WeightSourceBlended, score.WeightSource)
	assert.Equal(t, 5.0, score.Components.TimeSavings.Input)
	require.NotNil(t, score.ROIDetails.InvestmentAmount)
	assert.Equal(t, 20000.0, *score.ROIDetails.InvestmentAmount)
	assert.GreaterOrEqual(t, score.OverallScore, 0.0)
	assert.LessOrEqual(t, score.OverallScore, 100.0)
}

func TestScoreRole(t *testing.T) {
	f := newFixture(t)
	res := f.call(t, "score_role", map[string]any{
		"time_savings": float64(5), "quality_impact": float64(5), "strategic_alignment": float64(5),
		"data_readiness": float64(3), "technical_feasibility": float64(3), "adoption_risk": float64(3),
	})
	require.False(t, res.IsError, resultText(res))

	var score scoring.RoleScore
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &score))
	assert.InDelta(t, 4.2, score.TotalScore, 1e-9)
	assert.Equal(t, "Strong candidate for AI transformation", score.Description)
}

func TestScoreRole_Invalid(t *testing.T) {
	f := newFixture(t)
	res := f.call(t, "score_role", map[string]any{"time_savings": float64(5)})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "'quality_impact' is required")

	res = f.call(t, "score_role", map[string]any{
		"time_savings": float64(9), "quality_impact": float64(4), "strategic_alignment": float64(5),
		"data_readiness": float64(3), "technical_feasibility": float64(3), "adoption_risk": float64(3),
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "timeSavings must be <= 5")
}

func TestGenerateAndGetReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dept, err := f.db.UpsertDepartment(ctx, assessment.Department{Name: "Customer Service"})
	require.NoError(t, err)
	role, err := f.db.UpsertRole(ctx, assessment.Role{Title: "Support Agent", DepartmentID: dept})
	require.NoError(t, err)
	id, err := f.db.CreateAssessment(ctx, &assessment.Assessment{
		Title: "Acme",
		StepData: assessment.WizardStepData{
			Roles: &assessment.RoleSelection{SelectedRoles: []assessment.SelectedRole{{ID: role}}},
		},
	})
	require.NoError(t, err)

	res := f.call(t, "get_report", map[string]any{"assessment_id": float64(id)})
	assert.True(t, res.IsError)

	res = f.call(t, "generate_report", map[string]any{"assessment_id": float64(id)})
	require.False(t, res.IsError, resultText(res))
	var digest reportDigest
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &digest))
	assert.NotZero(t, digest.ReportID)
	require.Len(t, digest.PrioritizedItems, 1)
	assert.Equal(t, "Support Agent", digest.PrioritizedItems[0].Title)

	res = f.call(t, "get_report", map[string]any{"assessment_id": float64(id)})
	require.False(t, res.IsError, resultText(res))
	var report prioritize.Report
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
	assert.Equal(t, digest.ReportID, report.ID)

	res = f.call(t, "generate_report", map[string]any{"assessment_id": float64(id + 100)})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "does not exist")

	res = f.call(t, "list_capabilities", nil)
	require.False(t, res.IsError)
	var caps []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &caps))
	assert.NotEmpty(t, caps)
}

func TestListCapabilities_Empty(t *testing.T) {
	f := newFixture(t)
	res := f.call(t, "list_capabilities", map[string]any{"include_duplicates": true})
	assert.Equal(t, "[]", resultText(res))
}
