// Package prioritize turns wizard answers into a prioritized report: it
// scores the selected roles, places them on the value/effort heatmap,
// asks the recommendation provider about the top roles, and persists the
// recommended capabilities.
package prioritize

import (
	"time"

	"github.com/blackwell-systems/aiready/internal/advisor"
	"github.com/blackwell-systems/aiready/internal/scoring"
)

// Level is a value or effort band.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Priority is the label of a heatmap cell.
type Priority string

const (
	PriorityHigh           Priority = "high"
	PriorityMedium         Priority = "medium"
	PriorityLow            Priority = "low"
	PriorityNotRecommended Priority = "not_recommended"
)

// PrioritizedItem is one scored role.
type PrioritizedItem struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Department      string   `json:"department"`
	ValueScore      float64  `json:"valueScore"`
	EffortScore     float64  `json:"effortScore"`
	Priority        Priority `json:"priority"`
	ValueLevel      Level    `json:"valueLevel"`
	EffortLevel     Level    `json:"effortLevel"`
	AIAdoptionScore float64  `json:"aiAdoptionScore"`
}

// HeatmapItem is the role reference stored in a heatmap cell.
type HeatmapItem struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// HeatmapCell holds the fixed priority of a cell and the items placed in it.
type HeatmapCell struct {
	Priority Priority      `json:"priority"`
	Items    []HeatmapItem `json:"items"`
}

// HeatmapRow is one value level, keyed by effort level.
type HeatmapRow struct {
	Low    HeatmapCell `json:"low"`
	Medium HeatmapCell `json:"medium"`
	High   HeatmapCell `json:"high"`
}

// HeatmapMatrix is keyed by value level.
type HeatmapMatrix struct {
	High   HeatmapRow `json:"high"`
	Medium HeatmapRow `json:"medium"`
	Low    HeatmapRow `json:"low"`
}

// Heatmap is the 3x3 value/effort grid.
type Heatmap struct {
	Matrix HeatmapMatrix `json:"matrix"`
}

// PrioritizationData is the heatmap plus the ranked item list.
type PrioritizationData struct {
	Heatmap          Heatmap           `json:"heatmap"`
	PrioritizedItems []PrioritizedItem `json:"prioritizedItems"`
}

// CapabilitySummary is a capability as listed under a role's suggestions.
type CapabilitySummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleSuggestions groups the capabilities suggested for one role.
type RoleSuggestions struct {
	RoleID       int64               `json:"roleId"`
	RoleTitle    string              `json:"roleTitle"`
	Capabilities []CapabilitySummary `json:"capabilities"`
}

// RoleImpact is the predicted metric movement for one role.
type RoleImpact struct {
	RoleTitle string           `json:"roleTitle"`
	Metrics   []advisor.Metric `json:"metrics"`
}

// PerformanceImpact collects the per-role predictions and the summed ROI.
type PerformanceImpact struct {
	RoleImpacts  []RoleImpact `json:"roleImpacts"`
	EstimatedROI float64      `json:"estimatedRoi"`
}

// Report is the output of one prioritization run.
type Report struct {
	ID                   int64                 `json:"id,omitempty"`
	AssessmentID         int64                 `json:"assessmentId"`
	RunID                string                `json:"runId"`
	GeneratedAt          time.Time             `json:"generatedAt"`
	ExecutiveSummary     string                `json:"executiveSummary"`
	PrioritizationData   PrioritizationData    `json:"prioritizationData"`
	AISuggestions        []RoleSuggestions     `json:"aiSuggestions"`
	PerformanceImpact    PerformanceImpact     `json:"performanceImpact"`
	AIAdoptionScore      scoring.AdoptionScore `json:"aiAdoptionScoreDetails"`
	ROIDetails           scoring.ROIDetails    `json:"roiDetails"`
	ConsultantCommentary string                `json:"consultantCommentary,omitempty"`
}
