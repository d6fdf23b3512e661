package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/aiready/internal/store"
)

const catalogYAML = `
departments:
  - name: Customer Service
    description: Front line support
    roles:
      - title: Support Agent
        key_responsibilities: [Resolve tickets, Escalate incidents]
        ai_potential: High
      - title: Support Lead
organizations:
  - name: Acme
    industry: Healthcare
tools:
  - name: Zendesk AI
    categories: [support]
capabilities:
  - name: Ticket Triage
    category: Automation
    tools: [Zendesk AI]
  - name: Reply Drafting
    category: Generation
`

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplySeed(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	sum, err := applySeed(ctx, db, strings.NewReader(catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, seedSummary{Departments: 1, Roles: 2, Organizations: 1, Tools: 1, Capabilities: 2}, sum)

	roles, err := db.ListRoles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Support Agent", roles[0].Title)
	assert.Equal(t, "Customer Service", roles[0].Department)
	assert.Equal(t, []string{"Resolve tickets", "Escalate incidents"}, roles[0].KeyResponsibilities)

	caps, err := db.ListCapabilities(ctx, false)
	require.NoError(t, err)
	require.Len(t, caps, 2)
	mappings, err := db.ListToolMappings(ctx, caps[0].ID)
	require.NoError(t, err)
	assert.Len(t, mappings, 1)

	_, err = applySeed(ctx, db, strings.NewReader(catalogYAML))
	require.NoError(t, err)
	roles, err = db.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2, "seeding is idempotent")
	caps, err = db.ListCapabilities(ctx, false)
	require.NoError(t, err)
	assert.Len(t, caps, 2)
}

func TestApplySeed_Errors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := applySeed(ctx, db, strings.NewReader("departments: [{name: Ops, colour: blue}]"))
	assert.ErrorContains(t, err, "parsing catalog")

	_, err = applySeed(ctx, db, strings.NewReader("capabilities: [{name: X, category: Y, tools: [Missing]}]"))
	assert.ErrorContains(t, err, `unknown tool "Missing"`)

	sum, err := applySeed(ctx, db, strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, sum)
}
