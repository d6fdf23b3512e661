package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

// UpsertDepartment creates the department or updates its description and
// returns its ID.
func (db *DB) UpsertDepartment(ctx context.Context, d assessment.Department) (int64, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO departments (name, description) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET description = COALESCE(excluded.description, departments.description)
		RETURNING id`,
		d.Name, nullString(d.Description),
	).Scan(&id)
	return id, err
}

// ListDepartments returns all departments ordered by name.
func (db *DB) ListDepartments(ctx context.Context) ([]assessment.Department, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, name, COALESCE(description, '') FROM departments ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.Department
	for rows.Next() {
		var d assessment.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpsertRole creates the role under its department, or refreshes its
// details when a role with the same title already exists there.
func (db *DB) UpsertRole(ctx context.Context, r assessment.Role) (int64, error) {
	resp, err := json.Marshal(r.KeyResponsibilities)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO job_roles (title, department_id, description, key_responsibilities, ai_potential)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(title, department_id) DO UPDATE SET
			description = excluded.description,
			key_responsibilities = excluded.key_responsibilities,
			ai_potential = excluded.ai_potential
		RETURNING id`,
		r.Title, r.DepartmentID, nullString(r.Description), string(resp), nullString(r.AIPotential),
	).Scan(&id)
	return id, err
}

const roleColumns = `r.id, r.title, r.department_id, d.name, COALESCE(r.description, ''),
	COALESCE(r.key_responsibilities, ''), COALESCE(r.ai_potential, '')`

const roleFrom = ` FROM job_roles r JOIN departments d ON d.id = r.department_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRole(s scanner) (*assessment.Role, error) {
	var r assessment.Role
	var resp string
	if err := s.Scan(&r.ID, &r.Title, &r.DepartmentID, &r.Department, &r.Description, &resp, &r.AIPotential); err != nil {
		return nil, err
	}
	if resp != "" {
		if err := json.Unmarshal([]byte(resp), &r.KeyResponsibilities); err != nil {
			return nil, fmt.Errorf("role %d responsibilities: %w", r.ID, err)
		}
	}
	return &r, nil
}

// ListRoles returns every role with its department name.
func (db *DB) ListRoles(ctx context.Context) ([]assessment.Role, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT "+roleColumns+roleFrom+" ORDER BY d.name, r.title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.Role
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// GetRole returns a role by ID, or nil if it does not exist.
func (db *DB) GetRole(ctx context.Context, id int64) (*assessment.Role, error) {
	r, err := scanRole(db.conn.QueryRowContext(ctx, "SELECT "+roleColumns+roleFrom+" WHERE r.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// UpsertOrganization creates the organization or updates its profile and
// returns its ID.
func (db *DB) UpsertOrganization(ctx context.Context, o assessment.Organization) (int64, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO organizations (name, industry, size, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			industry = COALESCE(excluded.industry, organizations.industry),
			size = COALESCE(excluded.size, organizations.size)
		RETURNING id`,
		o.Name, nullString(o.Industry), nullString(o.Size), now(),
	).Scan(&id)
	return id, err
}

// GetOrganization returns an organization by ID, or nil if it does not exist.
func (db *DB) GetOrganization(ctx context.Context, id int64) (*assessment.Organization, error) {
	var o assessment.Organization
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, name, COALESCE(industry, ''), COALESCE(size, '') FROM organizations WHERE id = ?", id,
	).Scan(&o.ID, &o.Name, &o.Industry, &o.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
