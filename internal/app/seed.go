package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed <catalog.yaml>",
	Short: "Load departments, roles, organizations, tools, and capabilities",
	Long: `Seed reads a YAML catalog and upserts its contents. Running it twice
with the same file changes nothing. Example:

  departments:
    - name: Customer Service
      roles:
        - title: Support Agent
          key_responsibilities: [Resolve tickets]
          ai_potential: High
  organizations:
    - name: Acme
      industry: Healthcare
  tools:
    - name: Zendesk AI
  capabilities:
    - name: Ticket Triage
      category: Automation
      tools: [Zendesk AI]`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedCatalog struct {
	Departments   []seedDepartment          `yaml:"departments"`
	Organizations []assessment.Organization `yaml:"organizations"`
	Tools         []assessment.Tool         `yaml:"tools"`
	Capabilities  []seedCapability          `yaml:"capabilities"`
}

type seedDepartment struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Roles       []assessment.Role `yaml:"roles"`
}

type seedCapability struct {
	Name        string   `yaml:"name"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Tools       []string `yaml:"tools"`
}

// seedSummary counts what a seed run upserted.
type seedSummary struct {
	Departments   int `json:"departments"`
	Roles         int `json:"roles"`
	Organizations int `json:"organizations"`
	Tools         int `json:"tools"`
	Capabilities  int `json:"capabilities"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	return withRuntime(func(rt *runtime) error {
		sum, err := applySeed(cmd.Context(), rt.db, f)
		if err != nil {
			return err
		}
		rt.log.WithField("file", args[0]).Info("catalog seeded")
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), sum)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d departments, %d roles, %d organizations, %d tools, %d capabilities\n",
			sum.Departments, sum.Roles, sum.Organizations, sum.Tools, sum.Capabilities)
		return nil
	})
}

func applySeed(ctx context.Context, db *store.DB, r io.Reader) (seedSummary, error) {
	var sum seedSummary
	var cat seedCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && err != io.EOF {
		return sum, fmt.Errorf("parsing catalog: %w", err)
	}

	for _, d := range cat.Departments {
		deptID, err := db.UpsertDepartment(ctx, assessment.Department{Name: d.Name, Description: d.Description})
		if err != nil {
			return sum, fmt.Errorf("department %q: %w", d.Name, err)
		}
		sum.Departments++
		for _, role := range d.Roles {
			role.DepartmentID = deptID
			if _, err := db.UpsertRole(ctx, role); err != nil {
				return sum, fmt.Errorf("role %q: %w", role.Title, err)
			}
			sum.Roles++
		}
	}

	for _, o := range cat.Organizations {
		if _, err := db.UpsertOrganization(ctx, o); err != nil {
			return sum, fmt.Errorf("organization %q: %w", o.Name, err)
		}
		sum.Organizations++
	}

	toolIDs := make(map[string]int64, len(cat.Tools))
	for _, t := range cat.Tools {
		id, err := db.UpsertTool(ctx, t)
		if err != nil {
			return sum, fmt.Errorf("tool %q: %w", t.Name, err)
		}
		toolIDs[t.Name] = id
		sum.Tools++
	}

	for _, c := range cat.Capabilities {
		created, err := db.FindOrCreateCapability(ctx, assessment.CapabilityDraft{
			Name:        c.Name,
			Category:    c.Category,
			Description: c.Description,
			Tags:        c.Tags,
		})
		if err != nil {
			return sum, fmt.Errorf("capability %q: %w", c.Name, err)
		}
		for _, name := range c.Tools {
			toolID, ok := toolIDs[name]
			if !ok {
				return sum, fmt.Errorf("capability %q references unknown tool %q", c.Name, name)
			}
			if err := db.MapToolToCapability(ctx, created.ID, toolID); err != nil {
				return sum, err
			}
		}
		sum.Capabilities++
	}
	return sum, nil
}
