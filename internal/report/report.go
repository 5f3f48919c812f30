// Package report renders an analysis summary as a Markdown focus report.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
)

// Row limits for the report tables.
const (
	CategoryRows = 10
	BrowserRows  = 15
	LoopRows     = 5

	titleWidth = 50
)

// Markdown formats s as a weekly focus report.
func Markdown(s *analyzer.Summary) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# Weekly Focus Report\n")
	line("**Period:** %s", s.Period.DateRange)
	line("**Days tracked:** %d\n", s.Period.DaysTracked)

	sc := s.Scores
	line("## 📊 Scores\n")
	line("| Metric | Score | Interpretation |")
	line("|--------|-------|----------------|")
	line("| **Combined** | %d/100 | %s |", sc.CombinedScore, sc.Interpretation)
	line("| Productivity | %d/100 | How much time on productive work |", sc.ProductivityScore)
	line("| Focus | %d/100 | How well you maintained attention |", sc.FocusScore)
	line("")

	line("## 🎯 Time by Category\n")
	line("| Category | Hours | %% | Type |")
	line("|----------|-------|---|------|")
	for _, c := range head(s.CategoryBreakdown, CategoryRows) {
		line("| %s | %sh | %s%% | %s |", cell(c.Category), num(c.Hours), num(c.Percentage), WeightLabel(c.Weight))
	}
	line("")

	if len(s.BrowserBreakdown) > 0 {
		line("## 🌐 Browser Activity Breakdown\n")
		line("| Activity | Hours | Category |")
		line("|----------|-------|----------|")
		for _, t := range head(s.BrowserBreakdown, BrowserRows) {
			line("| %s | %sh | %s |", cell(runewidth.Truncate(t.Title, titleWidth, "")), num(t.Hours), t.Category)
		}
		line("")
	}

	if len(s.DeathLoops) > 0 {
		line("## 🔄 Context Switching Patterns\n")
		line("| Loop | Count | Verdict | Suggestion |")
		line("|------|-------|---------|------------|")
		for _, l := range head(s.DeathLoops, LoopRows) {
			line("| %s | %d | %s %s | %s |", cell(l.Description), l.Count, verdictMarker(l.Verdict), l.Verdict, cell(l.Suggestion))
		}
		line("")
	}

	in := s.Insights
	line("## 💡 Key Insights\n")
	line("**Top Insight:** %s\n", in.TopInsight)

	if len(in.ScheduleRecommendations) > 0 {
		line("**Schedule Recommendations:**")
		for _, rec := range in.ScheduleRecommendations {
			line("- %s", rec)
		}
		line("")
	}

	line("### 🎯 One Change for Next Week\n")
	b.WriteString("> " + in.OneChange)
	return b.String()
}

// Render formats s and renders the Markdown for a terminal of the given
// width. Colour follows the terminal unless plain is set.
func Render(s *analyzer.Summary, width int, plain bool) (string, error) {
	style := glamour.WithAutoStyle()
	if plain {
		style = glamour.WithStandardStyle("notty")
	}
	opts := []glamour.TermRendererOption{style}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(Markdown(s))
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// WeightLabel is the type column of the category table.
func WeightLabel(weight float64) string {
	switch {
	case weight >= 0.7:
		return "🟢 Productive"
	case weight >= 0.3:
		return "🟡 Mixed"
	case weight >= 0:
		return "⚪ Neutral"
	default:
		return "🔴 Distracting"
	}
}

func verdictMarker(v analyzer.Verdict) string {
	switch v {
	case analyzer.VerdictProductive:
		return "🟢"
	case analyzer.VerdictDistracting:
		return "🔴"
	default:
		return "🟡"
	}
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// cell escapes pipes so free text cannot break a table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// num prints a rounded figure the short way: 4 rather than 4.00.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
