package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/aiready/internal/prioritize"
)

// CreateReport stores a generated report and returns its ID. The report
// sections are stored as JSON documents.
func (db *DB) CreateReport(ctx context.Context, r *prioritize.Report) (int64, error) {
	cols := []any{r.PrioritizationData, r.AISuggestions, r.PerformanceImpact, r.AIAdoptionScore, r.ROIDetails}
	encoded := make([]any, len(cols))
	for i, v := range cols {
		raw, err := json.Marshal(v)
		if err != nil {
			return 0, fmt.Errorf("encoding report: %w", err)
		}
		encoded[i] = string(raw)
	}

	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO reports
		(assessment_id, run_id, generated_at, executive_summary, prioritization_data,
		 ai_suggestions, performance_impact, ai_adoption_score_details, roi_details, consultant_commentary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.AssessmentID, r.RunID, generated.UTC().Format(time.RFC3339), r.ExecutiveSummary,
		encoded[0], encoded[1], encoded[2], encoded[3], encoded[4], nullString(r.ConsultantCommentary),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const reportColumns = `id, assessment_id, run_id, generated_at, executive_summary, prioritization_data,
	ai_suggestions, performance_impact, ai_adoption_score_details, roi_details, COALESCE(consultant_commentary, '')`

func scanReport(s scanner) (*prioritize.Report, error) {
	var (
		r                                     prioritize.Report
		generated                             string
		prio, suggestions, impact, score, roi string
	)
	if err := s.Scan(&r.ID, &r.AssessmentID, &r.RunID, &generated, &r.ExecutiveSummary,
		&prio, &suggestions, &impact, &score, &roi, &r.ConsultantCommentary); err != nil {
		return nil, err
	}
	r.GeneratedAt = parseTime(generated)

	docs := []struct {
		raw string
		dst any
	}{
		{prio, &r.PrioritizationData},
		{suggestions, &r.AISuggestions},
		{impact, &r.PerformanceImpact},
		{score, &r.AIAdoptionScore},
		{roi, &r.ROIDetails},
	}
	for _, d := range docs {
		if err := json.Unmarshal([]byte(d.raw), d.dst); err != nil {
			return nil, fmt.Errorf("report %d: %w", r.ID, err)
		}
	}
	return &r, nil
}

// GetReport returns a report by ID, or nil if it does not exist.
func (db *DB) GetReport(ctx context.Context, id int64) (*prioritize.Report, error) {
	r, err := scanReport(db.conn.QueryRowContext(ctx, "SELECT "+reportColumns+" FROM reports WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// GetLatestReport returns the most recent report of an assessment, or nil
// if it has none.
func (db *DB) GetLatestReport(ctx context.Context, assessmentID int64) (*prioritize.Report, error) {
	r, err := scanReport(db.conn.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE assessment_id = ? ORDER BY id DESC LIMIT 1", assessmentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// UpdateReportCommentary replaces the consultant commentary of a report.
func (db *DB) UpdateReportCommentary(ctx context.Context, id int64, commentary string) error {
	result, err := db.conn.ExecContext(ctx,
		"UPDATE reports SET consultant_commentary = ? WHERE id = ?", commentary, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	return nil
}
