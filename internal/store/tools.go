package store

import (
	"context"
	"encoding/json"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

// UpsertTool creates the tool or refreshes its details and returns its ID.
func (db *DB) UpsertTool(ctx context.Context, t assessment.Tool) (int64, error) {
	cats, err := json.Marshal(t.Categories)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO ai_tools (name, description, website, categories) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			website = excluded.website,
			categories = excluded.categories
		RETURNING id`,
		t.Name, nullString(t.Description), nullString(t.Website), string(cats),
	).Scan(&id)
	return id, err
}

// ListTools returns every tool ordered by name.
func (db *DB) ListTools(ctx context.Context) ([]assessment.Tool, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name, COALESCE(description, ''), COALESCE(website, ''), COALESCE(categories, '') FROM ai_tools ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.Tool
	for rows.Next() {
		var t assessment.Tool
		var cats string
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Website, &cats); err != nil {
			return nil, err
		}
		if cats != "" {
			if err := json.Unmarshal([]byte(cats), &t.Categories); err != nil {
				return nil, err
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MapToolToCapability links a tool to a capability. Existing links are
// left alone.
func (db *DB) MapToolToCapability(ctx context.Context, capabilityID, toolID int64) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO capability_tool_mappings (capability_id, tool_id) VALUES (?, ?)
		ON CONFLICT(capability_id, tool_id) DO NOTHING`, capabilityID, toolID)
	return err
}

// UnmapToolFromCapability removes a tool link.
func (db *DB) UnmapToolFromCapability(ctx context.Context, capabilityID, toolID int64) error {
	_, err := db.conn.ExecContext(ctx,
		"DELETE FROM capability_tool_mappings WHERE capability_id = ? AND tool_id = ?", capabilityID, toolID)
	return err
}

// ListToolMappings returns the tool links of a capability ordered by tool.
func (db *DB) ListToolMappings(ctx context.Context, capabilityID int64) ([]assessment.ToolMapping, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT capability_id, tool_id FROM capability_tool_mappings WHERE capability_id = ? ORDER BY tool_id", capabilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []assessment.ToolMapping
	for rows.Next() {
		var m assessment.ToolMapping
		if err := rows.Scan(&m.CapabilityID, &m.ToolID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
