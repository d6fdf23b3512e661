package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// WizardStepData is the raw questionnaire answer document. Every section
// is optional.
type WizardStepData struct {
	Basics                *Basics               `json:"basics,omitempty"`
	Roles                 *RoleSelection        `json:"roles,omitempty"`
	PainPoints            *PainPointSection     `json:"painPoints,omitempty"`
	WorkVolume            map[string]WorkVolume `json:"workVolume,omitempty"`
	TechStack             *TechStack            `json:"techStack,omitempty"`
	Adoption              *Adoption             `json:"adoption,omitempty"`
	AIAdoptionScoreInputs *AdoptionScoreInputs  `json:"aiAdoptionScoreInputs,omitempty"`
}

// Basics describes the company.
type Basics struct {
	CompanyName  string   `json:"companyName,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	Size         string   `json:"size,omitempty"`
	Goals        string   `json:"goals,omitempty"`
	Stakeholders []string `json:"stakeholders,omitempty"`
}

// RoleSelection lists the roles under consideration.
type RoleSelection struct {
	SelectedRoles    []SelectedRole `json:"selectedRoles,omitempty"`
	PrioritizedRoles []int64        `json:"prioritizedRoles,omitempty"`
}

// SelectedRole is a role reference. The wizard stores either a bare id or
// an object carrying the title and department alongside the id.
type SelectedRole struct {
	ID         int64  `json:"id"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
}

// UnmarshalJSON accepts a bare id or an object.
func (r *SelectedRole) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var n Number
		if err := n.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("selected role: %w", err)
		}
		r.ID = int64(n)
		return nil
	}
	type plain SelectedRole
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = SelectedRole(p)
	return nil
}

// PainPointSection holds per-role pain points keyed by role id.
type PainPointSection struct {
	RoleSpecificPainPoints map[string]PainPoint `json:"roleSpecificPainPoints,omitempty"`
	GeneralPainPoints      string               `json:"generalPainPoints,omitempty"`
}

// PainPoint is a 1..5 rated pain point. Nil ratings default to 3.
type PainPoint struct {
	Severity    *float64 `json:"severity,omitempty"`
	Frequency   *float64 `json:"frequency,omitempty"`
	Impact      *float64 `json:"impact,omitempty"`
	Description string   `json:"description,omitempty"`
}

// WorkVolume describes how much work a role handles.
type WorkVolume struct {
	Volume          string   `json:"volume,omitempty"`
	TimeSpent       string   `json:"timeSpent,omitempty"`
	Complexity      string   `json:"complexity,omitempty"`
	RepetitiveRatio *float64 `json:"repetitiveRatio,omitempty"`
}

// TechStack describes the data and tooling landscape.
type TechStack struct {
	CurrentSystems   string            `json:"currentSystems,omitempty"`
	DataAvailability []string          `json:"dataAvailability"`
	DataQuality      *float64          `json:"dataQuality,omitempty"`
	Existing         map[string]string `json:"existingAiTools,omitempty"`
}

// Adoption captures change-readiness answers.
type Adoption struct {
	ChangeReadiness      *float64 `json:"changeReadiness,omitempty"`
	StakeholderAlignment *float64 `json:"stakeholderAlignment,omitempty"`
	ExpectedChallenges   []string `json:"expectedChallenges,omitempty"`
	SuccessMetrics       []string `json:"successMetrics,omitempty"`
}

// AdoptionScoreInputs are the optional raw inputs to the adoption score.
// A nil field means the input was not supplied.
type AdoptionScoreInputs struct {
	AdoptionRateForecast             *float64 `json:"adoptionRateForecast,omitempty"`
	TimeSavingsPerUserHours          *float64 `json:"timeSavingsPerUserHours,omitempty"`
	AffectedUserCount                *float64 `json:"affectedUserCount,omitempty"`
	CostEfficiencyGainsAmount        *float64 `json:"costEfficiencyGainsAmount,omitempty"`
	PerformanceImprovementPercentage *float64 `json:"performanceImprovementPercentage,omitempty"`
	ToolSprawlReductionScore         *float64 `json:"toolSprawlReductionScore,omitempty"`
}

// RankedRoles returns the role references that drive prioritization: the
// prioritized list when present, otherwise the selected roles. Prioritized
// ids that were never selected are returned separately in unselected.
func (d WizardStepData) RankedRoles() (ranked []SelectedRole, unselected []int64) {
	if d.Roles == nil {
		return nil, nil
	}
	if len(d.Roles.PrioritizedRoles) == 0 {
		return d.Roles.SelectedRoles, nil
	}
	byID := make(map[int64]SelectedRole, len(d.Roles.SelectedRoles))
	for _, r := range d.Roles.SelectedRoles {
		byID[r.ID] = r
	}
	ranked = make([]SelectedRole, 0, len(d.Roles.PrioritizedRoles))
	for _, id := range d.Roles.PrioritizedRoles {
		if r, ok := byID[id]; ok {
			ranked = append(ranked, r)
		} else {
			unselected = append(unselected, id)
		}
	}
	return ranked, unselected
}

// SelectedRoleIDs returns the ids of every selected role.
func (d WizardStepData) SelectedRoleIDs() []int64 {
	if d.Roles == nil {
		return nil
	}
	ids := make([]int64, 0, len(d.Roles.SelectedRoles))
	for _, r := range d.Roles.SelectedRoles {
		ids = append(ids, r.ID)
	}
	return ids
}

// PainPointFor returns the pain point recorded for the role, if any.
func (d WizardStepData) PainPointFor(roleID int64) (PainPoint, bool) {
	if d.PainPoints == nil {
		return PainPoint{}, false
	}
	p, ok := d.PainPoints.RoleSpecificPainPoints[fmt.Sprint(roleID)]
	return p, ok
}
