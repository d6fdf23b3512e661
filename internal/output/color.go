// Package output provides styled terminal rendering helpers for aiready.
package output

import "github.com/charmbracelet/lipgloss"

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess marks high priority and strong scores.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError marks cells and scores that are not recommended.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning marks medium priority and moderate scores.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	// StyleLabel is used for field labels in detail views.
	StyleLabel lipgloss.Style

	// StyleValue is used for field values in detail views.
	StyleValue lipgloss.Style
)

func init() {
	SetNoColor(false)
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally by reassigning the
// package-level styles.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(26)
		StyleValue = plain.Width(12)
		return
	}
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleLabel = lipgloss.NewStyle().Width(26)
	StyleValue = lipgloss.NewStyle().Bold(true).Width(12)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// PriorityStyle returns the style for a heatmap priority label.
func PriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "high":
		return StyleSuccess
	case "medium":
		return StyleWarning
	case "not_recommended":
		return StyleError
	default:
		return StyleMuted
	}
}
