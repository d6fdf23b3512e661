package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const supportSteps = `{
	"basics": {"companyName": "Acme", "industry": "Retail & E-commerce"},
	"roles": {"selectedRoles": [1, 2], "prioritizedRoles": [2, 1]},
	"painPoints": {"roleSpecificPainPoints": {"1": {"severity": 5, "frequency": 4, "impact": 5}}},
	"techStack": {"dataAvailability": ["structuredData", "apiAccess"]},
	"aiAdoptionScoreInputs": {"adoptionRateForecast": 60}
}`

func TestAssessments(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var steps assessment.WizardStepData
	require.NoError(t, json.Unmarshal([]byte(supportSteps), &steps))

	id, err := db.CreateAssessment(ctx, &assessment.Assessment{
		Title:        "Acme readiness",
		Industry:     "Retail & E-commerce",
		CompanyStage: "Scaling",
		StepData:     steps,
	})
	require.NoError(t, err)

	a, err := db.GetAssessment(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, assessment.StatusDraft, a.Status)
	assert.Zero(t, a.OrganizationID)
	assert.Empty(t, a.IndustryMaturity)
	assert.Equal(t, []int64{1, 2}, a.StepData.SelectedRoleIDs())
	assert.Equal(t, 60.0, *a.StepData.AIAdoptionScoreInputs.AdoptionRateForecast)
	assert.False(t, a.CreatedAt.IsZero())

	require.NoError(t, db.UpdateAssessmentStatus(ctx, id, assessment.StatusSubmitted))
	steps.Basics.CompanyName = "Acme Corp"
	require.NoError(t, db.UpdateAssessmentStepData(ctx, id, steps))

	a, err = db.GetAssessment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, assessment.StatusSubmitted, a.Status)
	assert.Equal(t, "Acme Corp", a.StepData.Basics.CompanyName)

	assert.ErrorIs(t, db.UpdateAssessmentStatus(ctx, 404, assessment.StatusCompleted), ErrNotFound)
	missing, err := db.GetAssessment(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRoleScores(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	id, err := db.CreateAssessment(ctx, &assessment.Assessment{Title: "t"})
	require.NoError(t, err)

	in := scoring.RoleScoreInput{TimeSavings: 5, QualityImpact: 4, StrategicAlignment: 3, DataReadiness: 3, TechnicalFeasibility: 3, AdoptionRisk: 3}
	require.NoError(t, db.SaveRoleScore(ctx, id, "roles-1", in, scoring.CalculateRoleScore(in, scoring.DefaultBlend)))

	in.TimeSavings = 1
	updated := scoring.CalculateRoleScore(in, scoring.DefaultBlend)
	require.NoError(t, db.SaveRoleScore(ctx, id, "roles-1", in, updated))

	rows, err := db.ListRoleScores(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].Input.TimeSavings)
	assert.InDelta(t, updated.TotalScore, rows[0].Score.TotalScore, 1e-9)
}
