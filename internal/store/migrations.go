package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS departments (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL UNIQUE,
			description TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS job_roles (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			title                TEXT NOT NULL,
			department_id        INTEGER NOT NULL REFERENCES departments(id),
			description          TEXT,
			key_responsibilities TEXT,
			ai_potential         TEXT,
			UNIQUE (title, department_id)
		)`,

		`CREATE TABLE IF NOT EXISTS organizations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL UNIQUE,
			industry   TEXT,
			size       TEXT,
			created_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS organization_score_weights (
			organization_id                INTEGER PRIMARY KEY REFERENCES organizations(id),
			adoption_rate_weight           REAL NOT NULL,
			time_saved_weight              REAL NOT NULL,
			cost_efficiency_weight         REAL NOT NULL,
			performance_improvement_weight REAL NOT NULL,
			tool_sprawl_reduction_weight   REAL NOT NULL,
			updated_at                     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS assessments (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			organization_id   INTEGER REFERENCES organizations(id),
			title             TEXT NOT NULL,
			status            TEXT NOT NULL DEFAULT 'draft',
			industry          TEXT,
			company_stage     TEXT,
			industry_maturity TEXT,
			step_data         TEXT NOT NULL DEFAULT '{}',
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS ai_capabilities (
			id                            INTEGER PRIMARY KEY AUTOINCREMENT,
			name                          TEXT NOT NULL,
			category                      TEXT NOT NULL,
			description                   TEXT,
			default_business_value        TEXT,
			default_implementation_effort TEXT,
			default_ease_score            REAL,
			default_value_score           REAL,
			default_feasibility_score     REAL,
			default_impact_score          REAL,
			tags                          TEXT,
			is_duplicate                  BOOLEAN NOT NULL DEFAULT false,
			merged_into_id                INTEGER REFERENCES ai_capabilities(id),
			created_at                    TEXT NOT NULL,
			UNIQUE (name, category)
		)`,

		`CREATE TABLE IF NOT EXISTS capability_role_impacts (
			capability_id INTEGER NOT NULL REFERENCES ai_capabilities(id),
			job_role_id   INTEGER NOT NULL REFERENCES job_roles(id),
			impact_score  REAL NOT NULL,
			PRIMARY KEY (capability_id, job_role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS assessment_ai_capabilities (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_id         INTEGER NOT NULL REFERENCES assessments(id),
			ai_capability_id      INTEGER NOT NULL REFERENCES ai_capabilities(id),
			value_score           REAL,
			feasibility_score     REAL,
			impact_score          REAL,
			ease_score            REAL,
			priority              TEXT NOT NULL,
			rank                  INTEGER,
			implementation_effort TEXT NOT NULL,
			business_value        TEXT NOT NULL,
			assessment_notes      TEXT,
			UNIQUE (assessment_id, ai_capability_id)
		)`,

		`CREATE TABLE IF NOT EXISTS ai_tools (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL UNIQUE,
			description TEXT,
			website     TEXT,
			categories  TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS capability_tool_mappings (
			capability_id INTEGER NOT NULL REFERENCES ai_capabilities(id),
			tool_id       INTEGER NOT NULL REFERENCES ai_tools(id),
			PRIMARY KEY (capability_id, tool_id)
		)`,

		`CREATE TABLE IF NOT EXISTS reports (
			id                        INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_id             INTEGER NOT NULL REFERENCES assessments(id),
			run_id                    TEXT NOT NULL,
			generated_at              TEXT NOT NULL,
			executive_summary         TEXT NOT NULL,
			prioritization_data       TEXT NOT NULL,
			ai_suggestions            TEXT NOT NULL,
			performance_impact        TEXT NOT NULL,
			ai_adoption_score_details TEXT NOT NULL,
			roi_details               TEXT NOT NULL,
			consultant_commentary     TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS assessment_scores (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_id          INTEGER NOT NULL REFERENCES assessments(id),
			wizard_step_id         TEXT NOT NULL,
			time_savings           REAL NOT NULL,
			quality_impact         REAL NOT NULL,
			strategic_alignment    REAL NOT NULL,
			data_readiness         REAL NOT NULL,
			technical_feasibility  REAL NOT NULL,
			adoption_risk          REAL NOT NULL,
			value_potential        REAL NOT NULL,
			ease_of_implementation REAL NOT NULL,
			total_score            REAL NOT NULL,
			updated_at             TEXT NOT NULL,
			UNIQUE (assessment_id, wizard_step_id)
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_job_roles_department ON job_roles(department_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_org ON assessments(organization_id)`,
		`CREATE INDEX IF NOT EXISTS idx_capabilities_duplicate ON ai_capabilities(is_duplicate)`,
		`CREATE INDEX IF NOT EXISTS idx_role_impacts_role ON capability_role_impacts(job_role_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assessment_caps_assessment ON assessment_ai_capabilities(assessment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tool_mappings_tool ON capability_tool_mappings(tool_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_assessment ON reports(assessment_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
