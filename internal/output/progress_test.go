package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score, width int
		filled       int
	}{
		{80, 10, 8},
		{0, 10, 0},
		{100, 10, 10},
		{150, 10, 10},
		{-5, 10, 0},
		{50, 0, 10},
	}
	for _, tc := range tests {
		got := ScoreBar(tc.score, tc.width)
		if n := strings.Count(got, "█"); n != tc.filled {
			t.Errorf("ScoreBar(%d, %d) filled = %d, want %d", tc.score, tc.width, n, tc.filled)
		}
	}
	if !strings.HasSuffix(ScoreBar(73, 10), "73/100") {
		t.Error("expected score suffix")
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		delta float64
		want  string
	}{
		{0, "─"},
		{5, "▲ +5.0"},
		{-2.5, "▼ -2.5"},
	}
	for _, tc := range tests {
		if got := TrendArrow(tc.delta, true); got != tc.want {
			t.Errorf("TrendArrow(%v) = %q, want %q", tc.delta, got, tc.want)
		}
	}
}

func TestWeightStyle(t *testing.T) {
	if WeightStyle(0.9).GetForeground() != ColorSuccess {
		t.Error("0.9 should be success")
	}
	if WeightStyle(-0.5).GetForeground() != ColorError {
		t.Error("-0.5 should be error")
	}
	if VerdictStyle("distracting").GetForeground() != ColorError {
		t.Error("distracting should be error")
	}
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := Section("Scores")
	if !strings.Contains(got, "Scores") || !strings.Contains(got, strings.Repeat("─", sectionRuleWidth)) {
		t.Errorf("Section() = %q", got)
	}
}

func TestKeyValue_LongValueStaysOnOneLine(t *testing.T) {
	for _, noColor := range []bool{true, false} {
		SetNoColor(noColor)
		for _, value := range []string{
			"2024-03-04 to 2024-03-10",
			"America/Los_Angeles",
			"/tmp/TestRules_CustomFile123456789/001/rules.yaml",
		} {
			got := KeyValue("Period", value)
			if strings.Contains(got, "\n") {
				t.Errorf("KeyValue(%q) wrapped: %q", value, got)
			}
			if !strings.Contains(got, value) {
				t.Errorf("KeyValue(%q) = %q, value missing", value, got)
			}
		}
	}
	SetNoColor(false)
}

func TestKeyValue_AlignsValues(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	a := KeyValue("Events", "5")
	b := KeyValue("AI-assisted switches", "12")
	if strings.Index(a, "5") != strings.Index(b, "12") {
		t.Errorf("values not aligned:\n%q\n%q", a, b)
	}
}
