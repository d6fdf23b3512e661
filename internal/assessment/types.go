// Package assessment holds the domain types shared by the scoring,
// prioritization, rationalization, and persistence layers.
package assessment

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Status is the lifecycle state of an assessment.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusCompleted Status = "completed"
)

// Department is an organizational unit in the role directory.
type Department struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
}

// Role is a job role from the role directory.
type Role struct {
	ID                  int64    `json:"id" yaml:"id"`
	Title               string   `json:"title" yaml:"title"`
	DepartmentID        int64    `json:"departmentId" yaml:"department_id"`
	Department          string   `json:"department,omitempty" yaml:"-"`
	Description         string   `json:"description,omitempty" yaml:"description"`
	KeyResponsibilities []string `json:"keyResponsibilities,omitempty" yaml:"key_responsibilities"`
	AIPotential         string   `json:"aiPotential,omitempty" yaml:"ai_potential"`
}

// Organization groups assessments and owns score weights.
type Organization struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Industry string `json:"industry,omitempty" yaml:"industry"`
	Size     string `json:"size,omitempty" yaml:"size"`
}

// Assessment is one wizard run for a company.
type Assessment struct {
	ID               int64          `json:"id"`
	OrganizationID   int64          `json:"organizationId,omitempty"`
	Title            string         `json:"title"`
	Status           Status         `json:"status"`
	Industry         string         `json:"industry,omitempty"`
	CompanyStage     string         `json:"companyStage,omitempty"`
	IndustryMaturity string         `json:"industryMaturity,omitempty"`
	StepData         WizardStepData `json:"stepData"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Tool is a concrete AI product that can deliver capabilities.
type Tool struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Website     string   `json:"website,omitempty" yaml:"website"`
	Categories  []string `json:"categories,omitempty" yaml:"categories"`
}

// Number is a float that decodes from either a JSON number or a numeric
// string. Recommendation providers emit both.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Non-numeric strings are treated as absent.
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
