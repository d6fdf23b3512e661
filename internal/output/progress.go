package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80.0/100"
func ScoreBar(score float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int((score / 100.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleError
	switch {
	case score >= 60:
		style = StyleSuccess
	case score >= 40:
		style = StyleWarning
	}

	return fmt.Sprintf("%s %s", style.Render(bar), StyleMuted.Render(fmt.Sprintf("%.1f/100", score)))
}

// RatingBar renders a 0-5 rating as five blocks. Example: "███░░ 3.2/5"
func RatingBar(rating float64) string {
	filled := int(rating + 0.5)
	filled = max(0, min(filled, 5))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 5-filled)
	return fmt.Sprintf("%s %s", StyleBold.Render(bar), StyleMuted.Render(fmt.Sprintf("%.1f/5", rating)))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// Field renders one label/value line of a detail view.
func Field(label, value string) string {
	return fmt.Sprintf(" %s %s", StyleLabel.Render(label), value)
}

// Money formats a dollar amount with thousands separators.
func Money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := fmt.Sprintf("%.0f", v)
	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-$" + sb.String()
	}
	return "$" + sb.String()
}
