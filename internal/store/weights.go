package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blackwell-systems/aiready/internal/scoring"
)

// GetOrganizationScoreWeights returns the stored weights for the
// organization, or nil if none are stored.
func (db *DB) GetOrganizationScoreWeights(ctx context.Context, organizationID int64) (*scoring.Weights, error) {
	var w scoring.Weights
	err := db.conn.QueryRowContext(ctx,
		`SELECT adoption_rate_weight, time_saved_weight, cost_efficiency_weight,
			performance_improvement_weight, tool_sprawl_reduction_weight
		FROM organization_score_weights WHERE organization_id = ?`, organizationID,
	).Scan(&w.AdoptionRate, &w.TimeSaved, &w.CostEfficiency, &w.PerformanceImprovement, &w.ToolSprawlReduction)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpsertOrganizationScoreWeights stores w as the organization's weights.
func (db *DB) UpsertOrganizationScoreWeights(ctx context.Context, organizationID int64, w scoring.Weights) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO organization_score_weights
		(organization_id, adoption_rate_weight, time_saved_weight, cost_efficiency_weight,
		 performance_improvement_weight, tool_sprawl_reduction_weight, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(organization_id) DO UPDATE SET
			adoption_rate_weight = excluded.adoption_rate_weight,
			time_saved_weight = excluded.time_saved_weight,
			cost_efficiency_weight = excluded.cost_efficiency_weight,
			performance_improvement_weight = excluded.performance_improvement_weight,
			tool_sprawl_reduction_weight = excluded.tool_sprawl_reduction_weight,
			updated_at = excluded.updated_at`,
		organizationID, w.AdoptionRate, w.TimeSaved, w.CostEfficiency,
		w.PerformanceImprovement, w.ToolSprawlReduction, now(),
	)
	return err
}
