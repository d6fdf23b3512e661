package advisor

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

const fallbackMarker = "(Fallback Data)"

// FallbackExecutiveSummary renders the templated summary from the company
// name and the top two items.
func FallbackExecutiveSummary(req SummaryRequest) string {
	company := orDefault(req.CompanyName, "your company")

	top := req.TopItems
	if len(top) > 2 {
		top = top[:2]
	}
	var departments []string
	seen := make(map[string]bool)
	for _, item := range top {
		if item.Department == "" || seen[item.Department] {
			continue
		}
		seen[item.Department] = true
		departments = append(departments, item.Department)
	}
	deptText := strings.Join(departments, " and ")
	if deptText == "" {
		deptText = "key functional"
	}
	topRole := "key roles"
	if len(top) > 0 && top[0].Title != "" {
		topRole = top[0].Title
	}

	return fmt.Sprintf(`Based on our analysis of %s's current processes and roles, we've identified significant opportunities for AI transformation that could lead to efficiency gains and cost savings.

The assessment reveals that %s functions have the highest potential for immediate AI impact with relatively low implementation barriers. We estimate potential time savings of 15-20 hours per week per agent in %s through AI-assisted processes and automation.

Our recommended approach is a phased implementation starting with these high-impact, low-effort areas to demonstrate quick wins and build organizational momentum for broader AI adoption.`, company, deptText, topRole)
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// FallbackCapabilities returns the two stub recommendations for a role.
func FallbackCapabilities(role assessment.Role) []assessment.Recommendation {
	dept := orDefault(role.Department, "General")
	n := func(v float64) *assessment.Number {
		x := assessment.Number(v)
		return &x
	}
	return []assessment.Recommendation{
		{
			CapabilityName:              fmt.Sprintf("Automated %s Task Processing", role.Title),
			CapabilityCategory:          "Automation",
			CapabilityDescription:       fmt.Sprintf("Automates repetitive tasks specific to the %s role. %s", role.Title, fallbackMarker),
			Tags:                        []string{"automation", slug(role.Title)},
			DefaultBusinessValue:        "Medium",
			DefaultImplementationEffort: "Medium",
			DefaultEaseScore:            n(60),
			DefaultValueScore:           n(65),
			DefaultFeasibilityScore:     n(70),
			DefaultImpactScore:          n(55),
			ValueScore:                  n(70),
			FeasibilityScore:            n(65),
			ImpactScore:                 n(60),
			EaseScore:                   n(60),
			Priority:                    "Medium",
			Rank:                        assessment.Ptr(1),
			ImplementationEffort:        "Medium",
			BusinessValue:               "High",
			AssessmentNotes:             fmt.Sprintf("Significant potential to reduce manual workload for %s in %s. %s", role.Title, dept, fallbackMarker),
		},
		{
			CapabilityName:              fmt.Sprintf("AI-Powered Decision Support for %s", dept),
			CapabilityCategory:          "Analytics & Decision Support",
			CapabilityDescription:       fmt.Sprintf("Provides data-driven insights to aid %s in making informed decisions. %s", role.Title, fallbackMarker),
			Tags:                        []string{"analytics", "decision_support", slug(dept)},
			DefaultBusinessValue:        "High",
			DefaultImplementationEffort: "High",
			DefaultEaseScore:            n(50),
			DefaultValueScore:           n(75),
			DefaultFeasibilityScore:     n(60),
			DefaultImpactScore:          n(70),
			ValueScore:                  n(80),
			FeasibilityScore:            n(55),
			ImpactScore:                 n(75),
			EaseScore:                   n(50),
			Priority:                    "High",
			Rank:                        assessment.Ptr(2),
			ImplementationEffort:        "High",
			BusinessValue:               "Very High",
			AssessmentNotes:             fmt.Sprintf("Could enhance strategic decision-making for %s by leveraging data analytics. %s", role.Title, fallbackMarker),
		},
	}
}

// FallbackPerformanceImpact returns preset metrics keyed on the role title.
func FallbackPerformanceImpact(role assessment.Role) PerformanceEstimate {
	title := strings.ToLower(role.Title)
	switch {
	case strings.Contains(title, "customer support") || strings.Contains(title, "service"):
		return PerformanceEstimate{
			Metrics: []Metric{
				{Name: "Time per ticket", Improvement: 45},
				{Name: "Customer satisfaction", Improvement: 20},
				{Name: "Agent capacity", Improvement: 35},
			},
			EstimatedAnnualROI: 280000,
		}
	case strings.Contains(title, "sales"):
		return PerformanceEstimate{
			Metrics: []Metric{
				{Name: "RFP response time", Improvement: 30},
				{Name: "Proposal quality", Improvement: 25},
				{Name: "Deal analysis time", Improvement: 40},
			},
			EstimatedAnnualROI: 320000,
		}
	case strings.Contains(title, "marketing") || strings.Contains(title, "content"):
		return PerformanceEstimate{
			Metrics: []Metric{
				{Name: "Content creation time", Improvement: 35},
				{Name: "Campaign analysis", Improvement: 30},
			},
			EstimatedAnnualROI: 190000,
		}
	default:
		return PerformanceEstimate{
			Metrics: []Metric{
				{Name: "Process efficiency", Improvement: 30},
				{Name: "Error reduction", Improvement: 25},
			},
			EstimatedAnnualROI: 150000,
		}
	}
}
