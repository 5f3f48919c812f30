package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

// Display limits for the styled view. The JSON summary carries the full lists.
const (
	displayApps     = 10
	displayBrowser  = 10
	displaySites    = 10
	displayDays     = 14
	displayTitleMax = 48
)

var analyzeDays int

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Analyze activity exports and print a focus summary",
	Long: `Read one or more activity exports (CSV, JSON, or JSON lines), categorize
every event, and print scores, category totals, hourly patterns, context
switching, and recommendations.

Examples:
  focuswatch analyze week.csv
  focuswatch analyze week.csv --days 7 --timezone Europe/Berlin
  focuswatch analyze a.csv b.json --json > summary.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "Only analyze the trailing N days (default: config, 0 = all)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	summary, err := analyzeFiles(cmd.Context(), cfg, args, effectiveDays(analyzeDays, cfg))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return analyzer.WriteSummary(w, summary)
	}
	renderSummary(w, summary)
	return nil
}

// renderSummary prints the styled terminal view of a summary.
func renderSummary(w io.Writer, s *analyzer.Summary) {
	p := s.Period
	fmt.Fprintln(w, output.Section("Focus Summary"))
	fmt.Fprintln(w, output.KeyValue("Period", p.DateRange))
	fmt.Fprintln(w, output.KeyValue("Days tracked", fmt.Sprintf("%d", p.DaysTracked)))
	fmt.Fprintln(w, output.KeyValue("Events", fmt.Sprintf("%d", p.TotalEvents)))
	fmt.Fprintln(w, output.KeyValue("Timezone", s.TimeTotals.Timezone))

	if p.TotalEvents == 0 {
		fmt.Fprintf(w, "\n %s\n", output.StyleMuted.Render("No activity in range."))
		return
	}

	renderScores(w, s)
	renderTime(w, s)
	renderCategories(w, s)
	renderApps(w, s)
	renderBrowser(w, s)
	renderHourly(w, s)
	renderDaily(w, s)
	renderSwitching(w, s)
	renderInsights(w, s)
	fmt.Fprintln(w)
}

func renderScores(w io.Writer, s *analyzer.Summary) {
	sc := s.Scores
	fmt.Fprintln(w, output.Section("Scores"))
	fmt.Fprintf(w, " %s %s  %s\n",
		output.StyleLabel.Render("Combined"),
		output.ScoreBar(sc.CombinedScore, 20),
		output.StyleBold.Render(sc.Interpretation))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Productivity"), output.ScoreBar(sc.ProductivityScore, 20))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Focus"), output.ScoreBar(sc.FocusScore, 20))
}

func renderTime(w io.Writer, s *analyzer.Summary) {
	t := s.TimeTotals
	fmt.Fprintln(w, output.Section("Time"))
	fmt.Fprintln(w, output.KeyValue("Active", fmt.Sprintf("%.1fh", t.TotalActiveHours)))
	fmt.Fprintln(w, output.KeyValue("Idle", fmt.Sprintf("%.1fh", t.TotalIdleHours)))
	fmt.Fprintln(w, output.KeyValue("Tracked", fmt.Sprintf("%.1fh", t.TotalTrackedHours)))
	fmt.Fprintln(w, output.KeyValue("Average per day", fmt.Sprintf("%.1fh", t.AverageHoursPerDay)))
}

func renderCategories(w io.Writer, s *analyzer.Summary) {
	fmt.Fprintln(w, output.Section("Time by Category"))
	fmt.Fprintln(w)
	tbl := output.NewTable("Category", "Hours", "%", "Weight", "")
	for _, c := range s.CategoryBreakdown {
		style := output.WeightStyle(c.Weight)
		tbl.AddRow(
			style.Render(c.Category),
			fmt.Sprintf("%.1f", c.Hours),
			fmt.Sprintf("%.1f", c.Percentage),
			fmt.Sprintf("%+.1f", c.Weight),
			output.PercentBar(c.Percentage, 10),
		)
	}
	tbl.Fprint(w)
}

func renderApps(w io.Writer, s *analyzer.Summary) {
	fmt.Fprintln(w, output.Section("Top Apps"))
	fmt.Fprintln(w)
	tbl := output.NewTable("App", "Hours", "%", "Category").SetMaxWidth(0, 32)
	for _, a := range head(s.TopApps, displayApps) {
		tbl.AddRow(a.Name, fmt.Sprintf("%.1f", a.Hours), fmt.Sprintf("%.1f", a.Percentage), a.Category)
	}
	tbl.Fprint(w)
}

func renderBrowser(w io.Writer, s *analyzer.Summary) {
	if len(s.SiteBreakdown) > 0 {
		fmt.Fprintln(w, output.Section("Sites"))
		fmt.Fprintln(w)
		tbl := output.NewTable("Site", "Hours", "Category").SetMaxWidth(0, displayTitleMax)
		for _, site := range head(s.SiteBreakdown, displaySites) {
			tbl.AddRow(site.Site, fmt.Sprintf("%.1f", site.Hours), output.WeightStyle(site.Weight).Render(site.Category))
		}
		tbl.Fprint(w)
	}

	if len(s.BrowserBreakdown) > 0 {
		fmt.Fprintln(w, output.Section("Browser Activity"))
		fmt.Fprintln(w)
		tbl := output.NewTable("Title", "Hours", "Category").SetMaxWidth(0, displayTitleMax)
		for _, t := range head(s.BrowserBreakdown, displayBrowser) {
			tbl.AddRow(t.Title, fmt.Sprintf("%.1f", t.Hours), t.Category)
		}
		tbl.Fprint(w)
	}
}

func renderHourly(w io.Writer, s *analyzer.Summary) {
	h := s.HourlyAnalysis
	fmt.Fprintln(w, output.Section("Hourly Patterns"))
	fmt.Fprintln(w, output.KeyValue("Peak hours", hourList(h.PeakProductiveHours)))
	fmt.Fprintln(w, output.KeyValue("Danger zones", hourList(h.DangerZones)))
	fmt.Fprintln(w)

	tbl := output.NewTable("Hour", "Hours", "Productive", "", "Switches")
	for _, hs := range h.FullBreakdown {
		tbl.AddRow(
			fmt.Sprintf("%02d:00", hs.Hour),
			fmt.Sprintf("%.1f", hs.TotalHours),
			fmt.Sprintf("%.0f%%", hs.ProductivePct),
			output.PercentBar(hs.ProductivePct, 10),
			fmt.Sprintf("%d", hs.Switches),
		)
	}
	tbl.Fprint(w)
}

func renderDaily(w io.Writer, s *analyzer.Summary) {
	days := s.DailyTrend
	if len(days) > displayDays {
		days = days[len(days)-displayDays:]
	}
	fmt.Fprintln(w, output.Section("Daily Trend"))
	fmt.Fprintln(w)
	tbl := output.NewTable("Day", "Hours", "Productive", "", "Switches")
	for _, d := range days {
		tbl.AddRow(
			d.Day,
			fmt.Sprintf("%.1f", d.TotalHours),
			fmt.Sprintf("%.0f%%", d.ProductivePct),
			output.PercentBar(d.ProductivePct, 10),
			fmt.Sprintf("%d", d.Switches),
		)
	}
	tbl.Fprint(w)
}

func renderSwitching(w io.Writer, s *analyzer.Summary) {
	cs := s.ContextSwitching
	fmt.Fprintln(w, output.Section("Context Switching"))
	fmt.Fprintln(w, output.KeyValue("Total switches", fmt.Sprintf("%d", cs.TotalSwitches)))
	fmt.Fprintln(w, output.KeyValue("Human switches", fmt.Sprintf("%d", cs.HumanSwitches)))
	fmt.Fprintln(w, output.KeyValue("AI-assisted switches", fmt.Sprintf("%d", cs.AIAssistedSwitches)))
	fmt.Fprintln(w, output.KeyValue("Per day", fmt.Sprintf("%.1f", cs.AveragePerDay)))
	fmt.Fprintln(w, output.KeyValue("Per active hour", fmt.Sprintf("%.1f", cs.SwitchesPerHour)))

	if len(s.AIAgents) > 0 {
		fmt.Fprintln(w)
		tbl := output.NewTable("AI agent", "Hours", "Switches")
		for _, a := range s.AIAgents {
			tbl.AddRow(a.Agent, fmt.Sprintf("%.1f", a.Hours), fmt.Sprintf("%d", a.Switches))
		}
		tbl.Fprint(w)
	}

	if len(s.DeathLoops) > 0 {
		fmt.Fprintln(w)
		tbl := output.NewTable("Loop", "Count", "Verdict", "Suggestion").SetMaxWidth(3, 60)
		for _, l := range s.DeathLoops {
			tbl.AddRow(
				l.Description,
				fmt.Sprintf("%d", l.Count),
				output.VerdictStyle(string(l.Verdict)).Render(string(l.Verdict)),
				l.Suggestion,
			)
		}
		tbl.Fprint(w)
	}
}

func renderInsights(w io.Writer, s *analyzer.Summary) {
	in := s.Insights
	fmt.Fprintln(w, output.Section("Insights"))
	fmt.Fprintf(w, " %s\n", in.TopInsight)

	for _, d := range in.ProductivityDrivers {
		fmt.Fprintf(w, " %s %s %.1fh\n", output.StyleSuccess.Render("▲"), d.Category, d.Hours)
	}
	for _, d := range in.ProductivityDrains {
		fmt.Fprintf(w, " %s %s %.1fh\n", output.StyleError.Render("▼"), d.Category, d.Hours)
	}
	for _, rec := range in.ScheduleRecommendations {
		fmt.Fprintf(w, " %s %s\n", output.StyleMuted.Render("•"), rec)
	}
	fmt.Fprintf(w, "\n %s %s\n", output.StyleHeader.Render("One change:"), in.OneChange)
}

// hourList formats hour stats as "09:00, 10:00".
func hourList(hours []analyzer.HourStat) string {
	if len(hours) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, fmt.Sprintf("%02d:00", h.Hour))
	}
	return strings.Join(parts, ", ")
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
