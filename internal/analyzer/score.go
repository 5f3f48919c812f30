package analyzer

import "math"

// ActiveHourSeconds is the minimum activity for an hour bucket to count as
// active, and for it to appear in the hourly analysis.
const ActiveHourSeconds = 300

// Focus score thresholds on human switches per active hour.
var focusBands = []struct {
	below float64
	score int
}{
	{50, 85},
	{100, 70},
	{200, 55},
}

const focusFloor = 40

// ProductivityScore rescales the weighted-time ratio from [-0.5, 1.0] to
// [0, 100]. No active time scores 0.
func ProductivityScore(weighted, active float64) int {
	if active <= 0 {
		return 0
	}
	raw := weighted / active
	return clampScore(math.Round((raw + 0.5) / 1.5 * 100))
}

// SwitchRate returns human switches per active hour. Active hours are floored
// at 1 and AI-assisted switches are not counted.
func SwitchRate(activeHours, totalSwitches, aiSwitches int) float64 {
	human := totalSwitches - aiSwitches
	if human < 0 {
		human = 0
	}
	return float64(human) / float64(max(1, activeHours))
}

// FocusScore maps the human switch rate onto fixed bands.
func FocusScore(activeHours, totalSwitches, aiSwitches int) int {
	rate := SwitchRate(activeHours, totalSwitches, aiSwitches)
	for _, b := range focusBands {
		if rate < b.below {
			return b.score
		}
	}
	return focusFloor
}

// CombinedScore weights productivity 60% and focus 40%.
func CombinedScore(productivity, focus int) int {
	return clampScore(math.Round(float64(productivity)*0.6 + float64(focus)*0.4))
}

// Interpret labels a combined score.
func Interpret(combined int) string {
	switch {
	case combined >= 80:
		return "Excellent"
	case combined >= 60:
		return "Good"
	case combined >= 40:
		return "Moderate"
	default:
		return "Needs improvement"
	}
}

// ComputeScores derives all scores. Durations are in seconds.
func ComputeScores(weighted, active float64, activeHours, totalSwitches, aiSwitches int) Scores {
	prod := ProductivityScore(weighted, active)
	focus := FocusScore(activeHours, totalSwitches, aiSwitches)
	combined := CombinedScore(prod, focus)
	return Scores{
		CombinedScore:     combined,
		ProductivityScore: prod,
		FocusScore:        focus,
		Interpretation:    Interpret(combined),
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
