package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/scoring"
)

// CreateAssessment inserts a new assessment and returns its ID. An empty
// status is stored as draft.
func (db *DB) CreateAssessment(ctx context.Context, a *assessment.Assessment) (int64, error) {
	steps, err := json.Marshal(a.StepData)
	if err != nil {
		return 0, fmt.Errorf("encoding step data: %w", err)
	}
	status := a.Status
	if status == "" {
		status = assessment.StatusDraft
	}
	ts := now()
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO assessments
		(organization_id, title, status, industry, company_stage, industry_maturity, step_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullID(a.OrganizationID), a.Title, string(status), nullString(a.Industry),
		nullString(a.CompanyStage), nullString(a.IndustryMaturity), string(steps), ts, ts,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetAssessment returns an assessment by ID, or nil if it does not exist.
func (db *DB) GetAssessment(ctx context.Context, id int64) (*assessment.Assessment, error) {
	var (
		a                assessment.Assessment
		orgID            sql.NullInt64
		status, steps    string
		created, updated string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, organization_id, title, status, COALESCE(industry, ''), COALESCE(company_stage, ''),
			COALESCE(industry_maturity, ''), step_data, created_at, updated_at
		FROM assessments WHERE id = ?`, id,
	).Scan(&a.ID, &orgID, &a.Title, &status, &a.Industry, &a.CompanyStage,
		&a.IndustryMaturity, &steps, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.OrganizationID = orgID.Int64
	a.Status = assessment.Status(status)
	a.CreatedAt = parseTime(created)
	a.UpdatedAt = parseTime(updated)
	if err := json.Unmarshal([]byte(steps), &a.StepData); err != nil {
		return nil, fmt.Errorf("assessment %d step data: %w", id, err)
	}
	return &a, nil
}

// UpdateAssessmentStatus sets the assessment's status.
func (db *DB) UpdateAssessmentStatus(ctx context.Context, id int64, status assessment.Status) error {
	return db.updateAssessment(ctx, id, "UPDATE assessments SET status = ?, updated_at = ? WHERE id = ?", string(status), now(), id)
}

// UpdateAssessmentStepData replaces the assessment's wizard answers.
func (db *DB) UpdateAssessmentStepData(ctx context.Context, id int64, steps assessment.WizardStepData) error {
	raw, err := json.Marshal(steps)
	if err != nil {
		return fmt.Errorf("encoding step data: %w", err)
	}
	return db.updateAssessment(ctx, id, "UPDATE assessments SET step_data = ?, updated_at = ? WHERE id = ?", string(raw), now(), id)
}

func (db *DB) updateAssessment(ctx context.Context, id int64, query string, args ...any) error {
	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("assessment %d: %w", id, ErrNotFound)
	}
	return nil
}

// RoleScoreRow is a role score recorded against a wizard step.
type RoleScoreRow struct {
	AssessmentID int64
	WizardStepID string
	Input        scoring.RoleScoreInput
	Score        scoring.RoleScore
	UpdatedAt    time.Time
}

// SaveRoleScore stores the score for the assessment's wizard step,
// replacing any earlier score for the same step.
func (db *DB) SaveRoleScore(ctx context.Context, assessmentID int64, stepID string, in scoring.RoleScoreInput, s scoring.RoleScore) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO assessment_scores
		(assessment_id, wizard_step_id, time_savings, quality_impact, strategic_alignment,
		 data_readiness, technical_feasibility, adoption_risk,
		 value_potential, ease_of_implementation, total_score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(assessment_id, wizard_step_id) DO UPDATE SET
			time_savings = excluded.time_savings,
			quality_impact = excluded.quality_impact,
			strategic_alignment = excluded.strategic_alignment,
			data_readiness = excluded.data_readiness,
			technical_feasibility = excluded.technical_feasibility,
			adoption_risk = excluded.adoption_risk,
			value_potential = excluded.value_potential,
			ease_of_implementation = excluded.ease_of_implementation,
			total_score = excluded.total_score,
			updated_at = excluded.updated_at`,
		assessmentID, stepID, in.TimeSavings, in.QualityImpact, in.StrategicAlignment,
		in.DataReadiness, in.TechnicalFeasibility, in.AdoptionRisk,
		s.ValuePotential.Total, s.EaseOfImplementation.Total, s.TotalScore, now(),
	)
	return err
}

// ListRoleScores returns the scores recorded for an assessment ordered by
// step ID.
func (db *DB) ListRoleScores(ctx context.Context, assessmentID int64) ([]RoleScoreRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT wizard_step_id, time_savings, quality_impact, strategic_alignment, data_readiness,
			technical_feasibility, adoption_risk, value_potential, ease_of_implementation, total_score, updated_at
		FROM assessment_scores WHERE assessment_id = ? ORDER BY wizard_step_id`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoleScoreRow
	for rows.Next() {
		r := RoleScoreRow{AssessmentID: assessmentID}
		var updated string
		if err := rows.Scan(&r.WizardStepID, &r.Input.TimeSavings, &r.Input.QualityImpact,
			&r.Input.StrategicAlignment, &r.Input.DataReadiness, &r.Input.TechnicalFeasibility,
			&r.Input.AdoptionRisk, &r.Score.ValuePotential.Total, &r.Score.EaseOfImplementation.Total,
			&r.Score.TotalScore, &updated); err != nil {
			return nil, err
		}
		r.UpdatedAt = parseTime(updated)
		out = append(out, r)
	}
	return out, rows.Err()
}
