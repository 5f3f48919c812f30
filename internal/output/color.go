// Package output provides styled terminal rendering helpers for focuswatch.
package output

import "github.com/charmbracelet/lipgloss"

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for productive time and improvements.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for distractions and regressions.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for mixed or borderline values.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles. SetNoColor swaps them for plain
// renderers and back.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	// StyleLabel is used for metric labels.
	StyleLabel lipgloss.Style

	// StyleValue is used for metric values.
	StyleValue lipgloss.Style
)

// labelWidth is the padded width of metric labels.
const labelWidth = 24

func init() {
	colorStyles()
}

func colorStyles() {
	StyleHeader = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold = lipgloss.NewStyle().Bold(true)
	StyleLabel = lipgloss.NewStyle().Width(labelWidth)
	StyleValue = lipgloss.NewStyle().Bold(true)
}

func plainStyles() {
	plain := lipgloss.NewStyle()
	StyleHeader = plain
	StyleSuccess = plain
	StyleError = plain
	StyleWarning = plain
	StyleMuted = plain
	StyleBold = plain
	StyleLabel = plain.Width(labelWidth)
	StyleValue = plain
}

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plainStyles()
		return
	}
	colorStyles()
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// WeightStyle picks a style for a category weight: green when productive,
// yellow when mixed, red when negative.
func WeightStyle(weight float64) lipgloss.Style {
	switch {
	case weight >= 0.7:
		return StyleSuccess
	case weight >= 0.3:
		return StyleWarning
	case weight >= 0:
		return StyleMuted
	default:
		return StyleError
	}
}

// VerdictStyle picks a style for a death loop verdict.
func VerdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case "productive", "ai_assisted":
		return StyleSuccess
	case "distracting":
		return StyleError
	default:
		return StyleWarning
	}
}
