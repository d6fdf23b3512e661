package advisor

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/aiready/internal/assessment"
)

const summarySystemPrompt = "You are an AI transformation consultant providing executive-level strategic insights."

const capabilitiesSystemPrompt = "You are an AI transformation consultant providing specific, actionable capability recommendations."

const performanceSystemPrompt = "You are an AI performance analyst who predicts realistic, benchmark-grounded improvements from AI adoption."

// GroupingSystemPrompt is sent with every rationalization batch.
const GroupingSystemPrompt = "You are an expert in AI capabilities analysis. Your task is to identify duplicate or highly similar AI capabilities that could be consolidated. Provide accurate, detailed analysis and only respond with valid JSON."

func summaryPrompt(req SummaryRequest) string {
	company := orDefault(req.CompanyName, "your company")
	industry := orDefault(req.Industry, "your industry")
	goals := orDefault(req.Goals, "improve efficiency and competitiveness")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate an executive summary for AI transformation at %s, a company in the %s industry.\n", company, industry)
	fmt.Fprintf(&sb, "Their primary goals are: %s\n\n", goals)
	sb.WriteString("The assessment identified these top priority opportunities:\n")
	for _, item := range req.TopItems {
		fmt.Fprintf(&sb, "- %s (Priority: %s, Value: %.1f/5, Effort: %.1f/5)\n", item.Title, item.Priority, item.ValueScore, item.EffortScore)
	}
	sb.WriteString(`
Write an executive summary (300-400 words) highlighting:
1. Key opportunities for AI transformation
2. The expected business outcomes
3. A high-level implementation approach
4. Potential strategic benefits

Use a professional, concise tone appropriate for C-level executives.`)
	return sb.String()
}

func rating(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *v)
}

func capabilitiesPrompt(rc RoleContext) string {
	p := rc.PainPoint
	pain := fmt.Sprintf("Severity: %s/5, Frequency: %s/5, Impact: %s/5. Description: %s",
		rating(p.Severity), rating(p.Frequency), rating(p.Impact), orDefault(p.Description, "Not specified"))

	return fmt.Sprintf(`For a %s in the %s department, who faces these challenges: %s.

Identify the top 10 most impactful AI capabilities that could address these issues. For each capability:
1. Provide a clear 'capabilityName' and 'capabilityCategory' (e.g., 'Content Generation', 'Data Analysis', 'Automation').
2. Write a concise 'capabilityDescription' (1-2 sentences).
3. Estimate the 'businessValue' and 'implementationEffort' ('High', 'Medium', or 'Low').
4. Calculate a 'valueScore' (0-100) as Severity * 5 + Frequency * 4 + Impact * 6.
5. Provide a 'feasibilityScore' (0-100) for how technically achievable this is for a typical company in this industry.
6. Suggest 2-3 real-world AI tools that deliver this capability in 'recommendedTools' (array of strings).
7. Provide relevant 'tags' (array of strings).

Return a JSON object with a single key "recommendations" holding an array of these capability objects.`,
		rc.Role.Title, orDefault(rc.Role.Department, "general"), pain)
}

func performancePrompt(rc RoleContext) string {
	resp := "Not provided"
	if len(rc.Role.KeyResponsibilities) > 0 {
		resp = strings.Join(rc.Role.KeyResponsibilities, ", ")
	}
	return fmt.Sprintf(`Based on industry benchmarks and known AI implementation outcomes, predict the performance improvements for this role. Return your response as a valid JSON object with the following structure:

{
  "metrics": [
    {"name": "metric name", "improvement": percentage_number},
    {"name": "another metric", "improvement": percentage_number}
  ],
  "estimatedAnnualRoi": dollar_amount_number
}

Role: %s
Department: %s
Key Responsibilities: %s

Return ONLY the JSON object, no additional text.`, rc.Role.Title, orDefault(rc.Role.Department, "general"), resp)
}

// GroupingPrompt lists a batch of capabilities and asks for duplicate
// groups in the rationalization_result format.
func GroupingPrompt(batch []assessment.Capability) string {
	var sb strings.Builder
	sb.WriteString("Analyze this list of AI capabilities and identify duplicates or highly similar capabilities that could be consolidated. For each group of similar capabilities, select one primary capability and list the others as duplicates that should be merged into it.\n\nCapabilities List:\n")
	for _, c := range batch {
		fmt.Fprintf(&sb, "ID: %d - Name: %s - Category: %s - Description: %s\n", c.ID, c.Name, c.Category, orDefault(c.Description, "No description"))
	}
	sb.WriteString(`
Return your analysis in this JSON format:
{
  "rationalization_result": {
    "capability_groups": [
      {
        "primary_capability_id": 123,
        "duplicate_capability_ids": [456, 789],
        "rationale": "Why these describe the same functionality and why the primary was chosen."
      }
    ],
    "standalone_capability_ids": [345, 678]
  }
}

Only group capabilities that are truly duplicates or so similar that they should be merged. If a capability is unique, include its ID in standalone_capability_ids.`)
	return sb.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
