package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/blackwell-systems/aiready/internal/output"
	"github.com/blackwell-systems/aiready/internal/prioritize"
	"github.com/blackwell-systems/aiready/internal/scoring"
)

func renderReport(w io.Writer, r *prioritize.Report) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Report %d for assessment %d", r.ID, r.AssessmentID)))
	fmt.Fprintln(w, output.Field("Generated", r.GeneratedAt.Format("2006-01-02 15:04 MST")))
	fmt.Fprintln(w, output.Field("Run", r.RunID))

	fmt.Fprintln(w, output.Section("Executive Summary"))
	fmt.Fprintln(w, indent(r.ExecutiveSummary))

	renderAdoptionScore(w, r.AIAdoptionScore)

	fmt.Fprintln(w, output.Section("Value / Effort Heatmap"))
	fmt.Fprint(w, output.Heatmap(r.PrioritizationData.Heatmap))

	fmt.Fprintln(w, output.Section("Prioritized Roles"))
	if len(r.PrioritizationData.PrioritizedItems) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" No roles could be scored."))
	} else {
		fmt.Fprint(w, output.PriorityItems(r.PrioritizationData.PrioritizedItems))
	}

	if len(r.AISuggestions) > 0 {
		fmt.Fprintln(w, output.Section("Suggested Capabilities"))
		for _, s := range r.AISuggestions {
			fmt.Fprintf(w, " %s\n", output.StyleBold.Render(s.RoleTitle))
			for _, c := range s.Capabilities {
				fmt.Fprintf(w, "   • %s %s\n", c.Name, output.StyleMuted.Render(c.Description))
			}
		}
	}

	if len(r.PerformanceImpact.RoleImpacts) > 0 {
		fmt.Fprintln(w, output.Section("Performance Impact"))
		for _, ri := range r.PerformanceImpact.RoleImpacts {
			fmt.Fprintf(w, " %s\n", output.StyleBold.Render(ri.RoleTitle))
			for _, m := range ri.Metrics {
				fmt.Fprintf(w, "   %s %s\n", output.StyleLabel.Render(m.Name), output.StyleSuccess.Render(fmt.Sprintf("+%.0f%%", m.Improvement)))
			}
		}
		fmt.Fprintln(w, output.Field("Estimated annual ROI", output.Money(r.PerformanceImpact.EstimatedROI)))
	}

	if r.ConsultantCommentary != "" {
		fmt.Fprintln(w, output.Section("Consultant Commentary"))
		fmt.Fprintln(w, indent(r.ConsultantCommentary))
	}
}

func renderAdoptionScore(w io.Writer, s scoring.AdoptionScore) {
	fmt.Fprintln(w, output.Section("AI Adoption Score"))
	fmt.Fprintln(w, output.Field("Overall", output.ScoreBar(s.OverallScore, 30)))
	fmt.Fprintln(w, output.Field("Weights", s.WeightSource))

	tbl := output.NewTable("Component", "Input", "Normalized", "Contribution").AlignRight(1, 2, 3)
	comps := []struct {
		name string
		c    scoring.Component
	}{
		{"Adoption rate", s.Components.AdoptionRate},
		{"Time savings", s.Components.TimeSavings},
		{"Cost efficiency", s.Components.CostEfficiency},
		{"Performance", s.Components.PerformanceImprovement},
		{"Tool sprawl reduction", s.Components.ToolSprawlReduction},
	}
	for _, c := range comps {
		tbl.AddRow(c.name,
			fmt.Sprintf("%g", c.c.Input),
			fmt.Sprintf("%.2f", c.c.NormalizedScore),
			fmt.Sprintf("%.1f", c.c.WeightedScore*100))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, indent(s.Summary))

	roi := s.ROIDetails
	if roi.CalculatedROIPercentage != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, output.Field("ROI", fmt.Sprintf("%.0f%%", *roi.CalculatedROIPercentage)))
		fmt.Fprintln(w, output.Field("Investment", output.Money(*roi.InvestmentAmount)))
		fmt.Fprintln(w, output.Field("Net benefit", output.Money(*roi.NetBenefitAmount)))
		if roi.PaybackPeriodMonths != nil {
			fmt.Fprintln(w, output.Field("Payback", fmt.Sprintf("%.1f months", *roi.PaybackPeriodMonths)))
		}
	}
	fmt.Fprintln(w, output.StyleMuted.Render(indent(roi.Assumptions)))
}

func renderRoleScore(w io.Writer, s scoring.RoleScore) {
	fmt.Fprintln(w, output.Section("Role Score"))
	fmt.Fprintln(w, output.Field("Value potential", output.RatingBar(s.ValuePotential.Total)))
	fmt.Fprintln(w, output.Field("Ease of implementation", output.RatingBar(s.EaseOfImplementation.Total)))
	fmt.Fprintln(w, output.Field("Total", output.RatingBar(s.TotalScore)))
	fmt.Fprintln(w, indent(s.Description))
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	return " " + strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n ")
}
