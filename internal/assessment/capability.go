package assessment

import (
	"encoding/json"
	"time"
)

// Lifecycle is the state of a catalog capability: Active or DuplicateOf.
type Lifecycle interface {
	lifecycle()
}

// Active marks a canonical capability.
type Active struct{}

// DuplicateOf marks a capability merged into a canonical one.
type DuplicateOf struct {
	CanonicalID int64
}

func (Active) lifecycle()      {}
func (DuplicateOf) lifecycle() {}

// Capability is a global catalog entry, unique by (Name, Category).
type Capability struct {
	ID                          int64
	Name                        string
	Category                    string
	Description                 string
	DefaultBusinessValue        string
	DefaultImplementationEffort string
	DefaultEaseScore            *float64
	DefaultValueScore           *float64
	DefaultFeasibilityScore     *float64
	DefaultImpactScore          *float64
	Tags                        []string
	Lifecycle                   Lifecycle
	CreatedAt                   time.Time
}

// IsActive reports whether the capability has not been merged away.
func (c Capability) IsActive() bool {
	_, dup := c.Lifecycle.(DuplicateOf)
	return !dup
}

// CanonicalID returns the id readers should follow: the capability itself
// when active, the merge target otherwise.
func (c Capability) CanonicalID() int64 {
	if d, ok := c.Lifecycle.(DuplicateOf); ok {
		return d.CanonicalID
	}
	return c.ID
}

// MarshalJSON flattens the lifecycle variant into isDuplicate/mergedIntoId.
func (c Capability) MarshalJSON() ([]byte, error) {
	type out struct {
		ID                          int64     `json:"id"`
		Name                        string    `json:"name"`
		Category                    string    `json:"category"`
		Description                 string    `json:"description,omitempty"`
		DefaultBusinessValue        string    `json:"defaultBusinessValue,omitempty"`
		DefaultImplementationEffort string    `json:"defaultImplementationEffort,omitempty"`
		DefaultEaseScore            *float64  `json:"defaultEaseScore,omitempty"`
		DefaultValueScore           *float64  `json:"defaultValueScore,omitempty"`
		DefaultFeasibilityScore     *float64  `json:"defaultFeasibilityScore,omitempty"`
		DefaultImpactScore          *float64  `json:"defaultImpactScore,omitempty"`
		Tags                        []string  `json:"tags,omitempty"`
		IsDuplicate                 bool      `json:"isDuplicate"`
		MergedIntoID                *int64    `json:"mergedIntoId,omitempty"`
		CreatedAt                   time.Time `json:"createdAt"`
	}
	o := out{
		ID:                          c.ID,
		Name:                        c.Name,
		Category:                    c.Category,
		Description:                 c.Description,
		DefaultBusinessValue:        c.DefaultBusinessValue,
		DefaultImplementationEffort: c.DefaultImplementationEffort,
		DefaultEaseScore:            c.DefaultEaseScore,
		DefaultValueScore:           c.DefaultValueScore,
		DefaultFeasibilityScore:     c.DefaultFeasibilityScore,
		DefaultImpactScore:          c.DefaultImpactScore,
		Tags:                        c.Tags,
		CreatedAt:                   c.CreatedAt,
	}
	if d, ok := c.Lifecycle.(DuplicateOf); ok {
		o.IsDuplicate = true
		o.MergedIntoID = &d.CanonicalID
	}
	return json.Marshal(o)
}

// CapabilityDraft is the input to find-or-create. Defaults only apply when
// the row is created.
type CapabilityDraft struct {
	Name                        string
	Category                    string
	Description                 string
	DefaultBusinessValue        string
	DefaultImplementationEffort string
	DefaultEaseScore            *float64
	DefaultValueScore           *float64
	DefaultFeasibilityScore     *float64
	DefaultImpactScore          *float64
	Tags                        []string
}

// Recommendation is one capability suggested for a role by the
// recommendation provider.
type Recommendation struct {
	CapabilityName              string   `json:"capabilityName"`
	CapabilityCategory          string   `json:"capabilityCategory"`
	CapabilityDescription       string   `json:"capabilityDescription,omitempty"`
	Tags                        []string `json:"tags,omitempty"`
	DefaultBusinessValue        string   `json:"default_business_value,omitempty"`
	DefaultImplementationEffort string   `json:"default_implementation_effort,omitempty"`
	DefaultEaseScore            *Number  `json:"default_ease_score,omitempty"`
	DefaultValueScore           *Number  `json:"default_value_score,omitempty"`
	DefaultFeasibilityScore     *Number  `json:"default_feasibility_score,omitempty"`
	DefaultImpactScore          *Number  `json:"default_impact_score,omitempty"`
	ValueScore                  *Number  `json:"valueScore,omitempty"`
	FeasibilityScore            *Number  `json:"feasibilityScore,omitempty"`
	ImpactScore                 *Number  `json:"impactScore,omitempty"`
	EaseScore                   *Number  `json:"easeScore,omitempty"`
	Priority                    string   `json:"priority,omitempty"`
	Rank                        *int     `json:"rank,omitempty"`
	ImplementationEffort        string   `json:"implementationEffort,omitempty"`
	BusinessValue               string   `json:"businessValue,omitempty"`
	AssessmentNotes             string   `json:"assessmentNotes,omitempty"`
	RecommendedTools            []string `json:"recommendedTools,omitempty"`
}

// Draft converts the recommendation into a catalog find-or-create input.
// Missing names and categories are filled by the caller.
func (r Recommendation) Draft() CapabilityDraft {
	return CapabilityDraft{
		Name:                        r.CapabilityName,
		Category:                    r.CapabilityCategory,
		Description:                 r.CapabilityDescription,
		DefaultBusinessValue:        r.DefaultBusinessValue,
		DefaultImplementationEffort: r.DefaultImplementationEffort,
		DefaultEaseScore:            r.DefaultEaseScore.Float(),
		DefaultValueScore:           r.DefaultValueScore.Float(),
		DefaultFeasibilityScore:     r.DefaultFeasibilityScore.Float(),
		DefaultImpactScore:          r.DefaultImpactScore.Float(),
		Tags:                        r.Tags,
	}
}

// Float converts a possibly nil Number into a *float64.
func (n *Number) Float() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

// AssessmentCapability links a catalog capability to one assessment with
// assessment-specific scoring.
type AssessmentCapability struct {
	ID                   int64    `json:"id"`
	AssessmentID         int64    `json:"assessmentId"`
	CapabilityID         int64    `json:"aiCapabilityId"`
	ValueScore           *float64 `json:"valueScore,omitempty"`
	FeasibilityScore     *float64 `json:"feasibilityScore,omitempty"`
	ImpactScore          *float64 `json:"impactScore,omitempty"`
	EaseScore            *float64 `json:"easeScore,omitempty"`
	Priority             string   `json:"priority"`
	Rank                 *int     `json:"rank,omitempty"`
	ImplementationEffort string   `json:"implementationEffort"`
	BusinessValue        string   `json:"businessValue"`
	AssessmentNotes      string   `json:"assessmentNotes,omitempty"`
}

// RoleImpact is the impact (0..100) a capability has on a role.
type RoleImpact struct {
	CapabilityID int64   `json:"capabilityId"`
	RoleID       int64   `json:"roleId"`
	ImpactScore  float64 `json:"impactScore"`
}

// ToolMapping links a tool to a capability it delivers.
type ToolMapping struct {
	CapabilityID int64 `json:"capabilityId"`
	ToolID       int64 `json:"toolId"`
}
