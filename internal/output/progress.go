package output

import (
	"fmt"
	"strings"
)

// sectionRuleWidth is the length of the rule under section headers.
const sectionRuleWidth = 66

// ScoreBar renders a visual progress bar for a 0-100 score.
// Example: "████████░░ 80/100"
func ScoreBar(score int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := score * width / 100
	filled = max(0, min(filled, width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(...string) string
	switch {
	case score >= 70:
		style = StyleSuccess.Render
	case score >= 40:
		style = StyleWarning.Render
	default:
		style = StyleError.Render
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%d/100", score)))
}

// PercentBar renders a compact bar for a 0-100 percentage, used in the
// hourly breakdown.
func PercentBar(pct float64, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(filled, width))
	return StyleSuccess.Render(strings.Repeat("▇", filled)) + StyleMuted.Render(strings.Repeat("·", width-filled))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", sectionRuleWidth))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// KeyValue renders one aligned "label value" line. The label is padded, not
// wrapped, and the value is never wrapped.
func KeyValue(label, value string) string {
	return fmt.Sprintf(" %s %s", pad(label, labelWidth), StyleValue.Render(value))
}
