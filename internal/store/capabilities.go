package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

const capabilityColumns = `id, name, category, COALESCE(description, ''),
	COALESCE(default_business_value, ''), COALESCE(default_implementation_effort, ''),
	default_ease_score, default_value_score, default_feasibility_score, default_impact_score,
	COALESCE(tags, ''), is_duplicate, merged_into_id, created_at`

func scanCapability(s scanner) (*assessment.Capability, error) {
	var (
		c                                assessment.Capability
		ease, value, feasibility, impact sql.NullFloat64
		tags, created                    string
		duplicate                        bool
		mergedInto                       sql.NullInt64
	)
	err := s.Scan(&c.ID, &c.Name, &c.Category, &c.Description,
		&c.DefaultBusinessValue, &c.DefaultImplementationEffort,
		&ease, &value, &feasibility, &impact,
		&tags, &duplicate, &mergedInto, &created)
	if err != nil {
		return nil, err
	}
	c.DefaultEaseScore = floatPtr(ease)
	c.DefaultValueScore = floatPtr(value)
	c.DefaultFeasibilityScore = floatPtr(feasibility)
	c.DefaultImpactScore = floatPtr(impact)
	c.CreatedAt = parseTime(created)
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("capability %d tags: %w", c.ID, err)
		}
	}
	c.Lifecycle = assessment.Active{}
	if duplicate && mergedInto.Valid {
		c.Lifecycle = assessment.DuplicateOf{CanonicalID: mergedInto.Int64}
	}
	return &c, nil
}

// FindOrCreateCapability returns the catalog entry for (name, category),
// creating it with the draft's defaults if absent. Concurrent callers with
// the same key get the same row. A merged entry resolves to the capability
// it was merged into.
func (db *DB) FindOrCreateCapability(ctx context.Context, d assessment.CapabilityDraft) (*assessment.Capability, error) {
	var tags any
	if len(d.Tags) > 0 {
		raw, err := json.Marshal(d.Tags)
		if err != nil {
			return nil, err
		}
		tags = string(raw)
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO ai_capabilities
		(name, category, description, default_business_value, default_implementation_effort,
		 default_ease_score, default_value_score, default_feasibility_score, default_impact_score,
		 tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name, category) DO NOTHING`,
		d.Name, d.Category, nullString(d.Description), nullString(d.DefaultBusinessValue),
		nullString(d.DefaultImplementationEffort), nullFloat(d.DefaultEaseScore),
		nullFloat(d.DefaultValueScore), nullFloat(d.DefaultFeasibilityScore),
		nullFloat(d.DefaultImpactScore), tags, now(),
	)
	if err != nil {
		return nil, err
	}

	c, err := scanCapability(db.conn.QueryRowContext(ctx,
		"SELECT "+capabilityColumns+" FROM ai_capabilities WHERE name = ? AND category = ?", d.Name, d.Category))
	if err != nil {
		return nil, err
	}
	if c.IsActive() {
		return c, nil
	}
	canonical, err := db.GetCapability(ctx, c.CanonicalID())
	if err != nil {
		return nil, err
	}
	if canonical == nil {
		return c, nil
	}
	return canonical, nil
}

// GetCapability returns a capability by ID, or nil if it does not exist.
func (db *DB) GetCapability(ctx context.Context, id int64) (*assessment.Capability, error) {
	c, err := scanCapability(db.conn.QueryRowContext(ctx,
		"SELECT "+capabilityColumns+" FROM ai_capabilities WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// ListCapabilities returns the catalog ordered by ID. Merged entries are
// left out unless includeDuplicates is set.
func (db *DB) ListCapabilities(ctx context.Context, includeDuplicates bool) ([]assessment.Capability, error) {
	query := "SELECT " + capabilityColumns + " FROM ai_capabilities"
	if !includeDuplicates {
		query += " WHERE is_duplicate = false"
	}
	rows, err := db.conn.QueryContext(ctx, query+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.Capability
	for rows.Next() {
		c, err := scanCapability(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// MarkDuplicate archives the capability as merged into canonicalID.
// Entries previously merged into it are redirected to canonicalID so no
// duplicate points at another duplicate.
func (db *DB) MarkDuplicate(ctx context.Context, id, canonicalID int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"UPDATE ai_capabilities SET is_duplicate = true, merged_into_id = ? WHERE id = ?", canonicalID, id)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("capability %d: %w", id, ErrNotFound)
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE ai_capabilities SET merged_into_id = ? WHERE merged_into_id = ?", canonicalID, id)
		return err
	})
}

// MapCapabilityToRoles records the capability's impact on each role,
// replacing earlier scores. Roles missing from the directory are ignored.
func (db *DB) MapCapabilityToRoles(ctx context.Context, capabilityID int64, impacts []assessment.RoleImpact) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO capability_role_impacts (capability_id, job_role_id, impact_score)
			SELECT ?, id, ? FROM job_roles WHERE id = ?
			ON CONFLICT(capability_id, job_role_id) DO UPDATE SET impact_score = excluded.impact_score`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, ri := range impacts {
			if _, err := stmt.ExecContext(ctx, capabilityID, ri.ImpactScore, ri.RoleID); err != nil {
				return fmt.Errorf("mapping capability %d to role %d: %w", capabilityID, ri.RoleID, err)
			}
		}
		return nil
	})
}

// ListRoleImpacts returns the role impacts of a capability ordered by role.
func (db *DB) ListRoleImpacts(ctx context.Context, capabilityID int64) ([]assessment.RoleImpact, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT capability_id, job_role_id, impact_score FROM capability_role_impacts
		WHERE capability_id = ? ORDER BY job_role_id`, capabilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.RoleImpact
	for rows.Next() {
		var ri assessment.RoleImpact
		if err := rows.Scan(&ri.CapabilityID, &ri.RoleID, &ri.ImpactScore); err != nil {
			return nil, err
		}
		out = append(out, ri)
	}
	return out, rows.Err()
}

// RepointRoleImpacts moves role impacts from one capability to another.
// Impacts the target already has for a role are kept.
func (db *DB) RepointRoleImpacts(ctx context.Context, fromID, toID int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO capability_role_impacts (capability_id, job_role_id, impact_score)
			SELECT ?, job_role_id, impact_score FROM capability_role_impacts WHERE capability_id = ?
			ON CONFLICT(capability_id, job_role_id) DO NOTHING`, toID, fromID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM capability_role_impacts WHERE capability_id = ?", fromID)
		return err
	})
}

// CreateAssessmentCapability links a capability to an assessment and
// returns the link ID. A second link for the same pair updates the first.
func (db *DB) CreateAssessmentCapability(ctx context.Context, ac assessment.AssessmentCapability) (int64, error) {
	var rank any
	if ac.Rank != nil {
		rank = *ac.Rank
	}
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO assessment_ai_capabilities
		(assessment_id, ai_capability_id, value_score, feasibility_score, impact_score, ease_score,
		 priority, rank, implementation_effort, business_value, assessment_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(assessment_id, ai_capability_id) DO UPDATE SET
			value_score = excluded.value_score,
			feasibility_score = excluded.feasibility_score,
			impact_score = excluded.impact_score,
			ease_score = excluded.ease_score,
			priority = excluded.priority,
			rank = excluded.rank,
			implementation_effort = excluded.implementation_effort,
			business_value = excluded.business_value,
			assessment_notes = excluded.assessment_notes
		RETURNING id`,
		ac.AssessmentID, ac.CapabilityID, nullFloat(ac.ValueScore), nullFloat(ac.FeasibilityScore),
		nullFloat(ac.ImpactScore), nullFloat(ac.EaseScore), ac.Priority, rank,
		ac.ImplementationEffort, ac.BusinessValue, nullString(ac.AssessmentNotes),
	).Scan(&id)
	return id, err
}

// ListAssessmentCapabilities returns the capability links of an assessment.
func (db *DB) ListAssessmentCapabilities(ctx context.Context, assessmentID int64) ([]assessment.AssessmentCapability, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, assessment_id, ai_capability_id, value_score, feasibility_score, impact_score,
			ease_score, priority, rank, implementation_effort, business_value, COALESCE(assessment_notes, '')
		FROM assessment_ai_capabilities WHERE assessment_id = ? ORDER BY id`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.AssessmentCapability
	for rows.Next() {
		var (
			ac                               assessment.AssessmentCapability
			value, feasibility, impact, ease sql.NullFloat64
			rank                             sql.NullInt64
		)
		if err := rows.Scan(&ac.ID, &ac.AssessmentID, &ac.CapabilityID, &value, &feasibility, &impact,
			&ease, &ac.Priority, &rank, &ac.ImplementationEffort, &ac.BusinessValue, &ac.AssessmentNotes); err != nil {
			return nil, err
		}
		ac.ValueScore = floatPtr(value)
		ac.FeasibilityScore = floatPtr(feasibility)
		ac.ImpactScore = floatPtr(impact)
		ac.EaseScore = floatPtr(ease)
		if rank.Valid {
			r := int(rank.Int64)
			ac.Rank = &r
		}
		out = append(out, ac)
	}
	return out, rows.Err()
}
