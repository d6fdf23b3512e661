package prioritize

import (
	"math"
	"sort"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

// Value and effort band thresholds. Effort is inverted: a lower score
// means easier work.
const (
	valueHighMin    = 4.0
	valueMediumMin  = 3.0
	effortLowMax    = 2.5
	effortMediumMax = 3.5

	painPointScale   = 1.67
	defaultRating    = 3.0
	maxScore         = 5.0
	defaultDataScore = 3.0
)

// dataSources are the techStack.dataAvailability entries that count
// towards the data quality score.
var dataSources = []string{
	"structuredData",
	"unstructuredText",
	"historicalRecords",
	"realTimeInputs",
	"apiAccess",
}

// NewHeatmap returns the empty grid with its fixed cell priorities.
func NewHeatmap() Heatmap {
	cell := func(p Priority) HeatmapCell { return HeatmapCell{Priority: p, Items: []HeatmapItem{}} }
	return Heatmap{Matrix: HeatmapMatrix{
		High: HeatmapRow{
			Low:    cell(PriorityHigh),
			Medium: cell(PriorityHigh),
			High:   cell(PriorityMedium),
		},
		Medium: HeatmapRow{
			Low:    cell(PriorityHigh),
			Medium: cell(PriorityMedium),
			High:   cell(PriorityLow),
		},
		Low: HeatmapRow{
			Low:    cell(PriorityLow),
			Medium: cell(PriorityLow),
			High:   cell(PriorityNotRecommended),
		},
	}}
}

// Cell returns the cell for the given levels.
func (h *Heatmap) Cell(value, effort Level) *HeatmapCell {
	var row *HeatmapRow
	switch value {
	case LevelHigh:
		row = &h.Matrix.High
	case LevelMedium:
		row = &h.Matrix.Medium
	default:
		row = &h.Matrix.Low
	}
	switch effort {
	case LevelLow:
		return &row.Low
	case LevelMedium:
		return &row.Medium
	default:
		return &row.High
	}
}

// Place adds item to the cell matching its levels.
func (h *Heatmap) Place(item PrioritizedItem) {
	c := h.Cell(item.ValueLevel, item.EffortLevel)
	c.Items = append(c.Items, HeatmapItem{ID: item.ID, Title: item.Title, Department: item.Department})
}

// PriorityFor returns the fixed priority of the (value, effort) cell.
func PriorityFor(value, effort Level) Priority {
	h := NewHeatmap()
	return h.Cell(value, effort).Priority
}

// ValueLevel bands a value score.
func ValueLevel(score float64) Level {
	switch {
	case score >= valueHighMin:
		return LevelHigh
	case score >= valueMediumMin:
		return LevelMedium
	default:
		return LevelLow
	}
}

// EffortLevel bands an effort score.
func EffortLevel(score float64) Level {
	switch {
	case score <= effortLowMax:
		return LevelLow
	case score <= effortMediumMax:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func rating(p *float64) float64 {
	if p == nil || *p == 0 {
		return defaultRating
	}
	return *p
}

// ValueScore maps a pain point's 1..5 ratings onto the 0..5 value scale.
// Missing ratings count as 3.
func ValueScore(p assessment.PainPoint) float64 {
	mean := (rating(p.Severity) + rating(p.Frequency) + rating(p.Impact)) / 3
	return clamp(mean*painPointScale, 0, maxScore)
}

// DataQuality scores the tech stack 1..5: one point plus one per declared
// data source. Without a dataAvailability answer the explicit dataQuality
// rating is used, and 3 when that is absent too.
func DataQuality(ts *assessment.TechStack) float64 {
	if ts == nil {
		return defaultDataScore
	}
	if ts.DataAvailability == nil {
		if ts.DataQuality != nil {
			return clamp(*ts.DataQuality, 1, maxScore)
		}
		return defaultDataScore
	}
	declared := make(map[string]bool, len(ts.DataAvailability))
	for _, s := range ts.DataAvailability {
		declared[s] = true
	}
	n := 0
	for _, s := range dataSources {
		if declared[s] {
			n++
		}
	}
	return clamp(float64(n+1), 1, maxScore)
}

// EffortScore is the inverse of data quality on the 1..5 scale.
func EffortScore(dataQuality float64) float64 {
	return 6 - dataQuality
}

// ScoreItem builds the prioritized item for a role. Levels are taken from
// the unrounded scores.
func ScoreItem(id int64, title, department string, pain assessment.PainPoint, dataQuality float64) PrioritizedItem {
	value := ValueScore(pain)
	effort := EffortScore(dataQuality)
	vl, el := ValueLevel(value), EffortLevel(effort)
	return PrioritizedItem{
		ID:          id,
		Title:       title,
		Department:  department,
		ValueScore:  round1(value),
		EffortScore: round1(effort),
		Priority:    PriorityFor(vl, el),
		ValueLevel:  vl,
		EffortLevel: el,
	}
}

// SortItems orders items by value descending, then effort ascending.
// Equal items keep their input order.
func SortItems(items []PrioritizedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ValueScore != items[j].ValueScore {
			return items[i].ValueScore > items[j].ValueScore
		}
		return items[i].EffortScore < items[j].EffortScore
	})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
