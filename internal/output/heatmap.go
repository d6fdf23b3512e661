package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/aiready/internal/prioritize"
)

var priorityLabels = map[prioritize.Priority]string{
	prioritize.PriorityHigh:           "HIGH",
	prioritize.PriorityMedium:         "MEDIUM",
	prioritize.PriorityLow:            "LOW",
	prioritize.PriorityNotRecommended: "SKIP",
}

// Heatmap renders the value/effort grid with the number of roles in each
// cell, followed by the roles placed in each non-empty cell.
func Heatmap(h prioritize.Heatmap) string {
	type row struct {
		label string
		cells prioritize.HeatmapRow
	}
	rows := []row{
		{"High value", h.Matrix.High},
		{"Medium value", h.Matrix.Medium},
		{"Low value", h.Matrix.Low},
	}

	tbl := NewTable("", "Low effort", "Medium effort", "High effort")
	var placed []string
	for _, r := range rows {
		efforts := []struct {
			label string
			cell  prioritize.HeatmapCell
		}{
			{"low effort", r.cells.Low},
			{"medium effort", r.cells.Medium},
			{"high effort", r.cells.High},
		}
		values := []string{StyleBold.Render(r.label)}
		for _, e := range efforts {
			values = append(values, cellLabel(e.cell))
			if len(e.cell.Items) == 0 {
				continue
			}
			titles := make([]string, len(e.cell.Items))
			for i, it := range e.cell.Items {
				titles[i] = it.Title
			}
			placed = append(placed, fmt.Sprintf(" %s %s",
				StyleMuted.Render(strings.ToLower(r.label)+" / "+e.label+":"), strings.Join(titles, ", ")))
		}
		tbl.AddRow(values...)
	}

	var sb strings.Builder
	sb.WriteString(tbl.Render())
	if len(placed) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(placed, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func cellLabel(c prioritize.HeatmapCell) string {
	label, ok := priorityLabels[c.Priority]
	if !ok {
		label = strings.ToUpper(string(c.Priority))
	}
	return PriorityStyle(string(c.Priority)).Render(fmt.Sprintf("%s (%d)", label, len(c.Items)))
}

// PriorityItems renders the ranked role list as a table.
func PriorityItems(items []prioritize.PrioritizedItem) string {
	tbl := NewTable("#", "Role", "Department", "Value", "Effort", "Priority").AlignRight(0, 3, 4)
	for i, it := range items {
		tbl.AddRow(
			fmt.Sprintf("%d", i+1),
			it.Title,
			it.Department,
			fmt.Sprintf("%.1f", it.ValueScore),
			fmt.Sprintf("%.1f", it.EffortScore),
			PriorityStyle(string(it.Priority)).Render(string(it.Priority)),
		)
	}
	return tbl.Render()
}
