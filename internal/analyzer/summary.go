package analyzer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/activity"
	"github.com/blackwell-systems/focuswatch/internal/category"
	"github.com/blackwell-systems/focuswatch/internal/insight"
)

// List limits for the summary.
const (
	TopAppsLimit  = 20
	BrowserLimit  = 30
	SiteLimit     = 30
	HourRankLimit = 5
)

// browserTitleApp is the app name browser titles are categorized under.
const browserTitleApp = "browser"

// Options configures one analysis run.
type Options struct {
	// Rules defaults to category.Default().
	Rules *category.RuleSet

	// Location buckets hours and days. Defaults to time.Local.
	Location *time.Location
}

// Analyze runs the whole engine over events, which must be in arrival order.
// It holds no state between calls.
func Analyze(events []activity.Event, opts Options) *Summary {
	rules := opts.Rules
	if rules == nil {
		rules = category.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	t := Aggregate(events, rules, loc)
	loops := DetectDeathLoops(t.Switches, rules)

	activeHours := t.ActiveHours(ActiveHourSeconds)
	scores := ComputeScores(t.WeightedTime, t.ActiveTime, activeHours, len(t.Switches), t.AISwitches)

	days := t.Days()
	totalTime := t.AppTime.Total()

	s := &Summary{
		Period:            buildPeriod(t, days),
		Scores:            scores,
		TimeTotals:        buildTimeTotals(t, totalTime, len(days), loc),
		CategoryBreakdown: buildCategories(t, rules, totalTime),
		TopApps:           buildTopApps(t, rules, totalTime),
		BrowserBreakdown:  buildBrowser(t, rules),
		SiteBreakdown:     buildSites(t),
		HourlyAnalysis:    buildHourly(t),
		DailyTrend:        buildDaily(t, days),
		ContextSwitching:  buildSwitching(t, activeHours, len(days)),
		AIAgents:          buildAgents(t),
		DeathLoops:        loops,
	}
	s.Insights = insight.Generate(insightContext(s, t))
	return s
}

func buildPeriod(t *Totals, days []string) Period {
	p := Period{
		DaysTracked: len(days),
		TotalEvents: t.Events,
		DateRange:   "N/A",
	}
	if len(days) > 0 {
		p.FirstDay = days[0]
		p.LastDay = days[len(days)-1]
		p.DateRange = fmt.Sprintf("%s to %s", p.FirstDay, p.LastDay)
	}
	return p
}

func buildTimeTotals(t *Totals, totalTime float64, days int, loc *time.Location) TimeTotals {
	return TimeTotals{
		TotalActiveHours:   hours2(totalTime),
		TotalIdleHours:     hours2(t.IdleTime),
		TotalTrackedHours:  hours2(totalTime + t.IdleTime),
		AverageHoursPerDay: round2(totalTime / 3600 / float64(max(1, days))),
		Timezone:           activity.LocationLabel(loc),
	}
}

func buildCategories(t *Totals, rules *category.RuleSet, totalTime float64) []CategoryShare {
	entries := t.CategoryTime.Sorted()
	out := make([]CategoryShare, 0, len(entries))
	for _, e := range entries {
		out = append(out, CategoryShare{
			Category:   e.Key,
			Hours:      hours2(e.Value),
			Percentage: percent(e.Value, totalTime),
			Weight:     rules.Weight(e.Key),
		})
	}
	return out
}

func buildTopApps(t *Totals, rules *category.RuleSet, totalTime float64) []AppShare {
	entries := t.AppTime.Top(TopAppsLimit)
	out := make([]AppShare, 0, len(entries))
	for _, e := range entries {
		cat, _ := rules.Categorize(e.Key, "")
		out = append(out, AppShare{
			Name:       e.Key,
			Hours:      hours2(e.Value),
			Percentage: percent(e.Value, totalTime),
			Category:   cat,
		})
	}
	return out
}

func buildBrowser(t *Totals, rules *category.RuleSet) []BrowserTitle {
	entries := t.BrowserTitles.Top(BrowserLimit)
	out := make([]BrowserTitle, 0, len(entries))
	for _, e := range entries {
		cat, _ := rules.Categorize(browserTitleApp, e.Key)
		out = append(out, BrowserTitle{
			Title:    e.Key,
			Hours:    hours2(e.Value),
			Category: cat,
		})
	}
	return out
}

func buildSites(t *Totals) []SiteShare {
	entries := t.SiteTime.Top(SiteLimit)
	out := make([]SiteShare, 0, len(entries))
	for _, e := range entries {
		site := t.Sites[e.Key]
		out = append(out, SiteShare{
			Site:     e.Key,
			Hours:    hours2(e.Value),
			Category: site.Category,
			Weight:   site.Weight,
		})
	}
	return out
}

func buildHourly(t *Totals) HourlyAnalysis {
	full := make([]HourStat, 0, 24)
	for h := 0; h < 24; h++ {
		total := t.HourTime[h]
		if total < ActiveHourSeconds {
			continue
		}
		productive := productiveSeconds(t.HourCategory[h])
		full = append(full, HourStat{
			Hour:            h,
			TotalHours:      hours2(total),
			ProductiveHours: hours2(productive),
			ProductivePct:   percent(productive, total),
			Switches:        t.HourSwitches[h],
		})
	}

	peak := rankHours(full, func(a, b HourStat) bool { return a.ProductivePct > b.ProductivePct })
	danger := rankHours(full, func(a, b HourStat) bool { return a.Switches > b.Switches })

	return HourlyAnalysis{
		PeakProductiveHours: peak,
		DangerZones:         danger,
		FullBreakdown:       full,
	}
}

// rankHours returns the top HourRankLimit hours by less; ties stay in hour
// order.
func rankHours(hours []HourStat, less func(a, b HourStat) bool) []HourStat {
	ranked := make([]HourStat, len(hours))
	copy(ranked, hours)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > HourRankLimit {
		ranked = ranked[:HourRankLimit]
	}
	return ranked
}

func buildDaily(t *Totals, days []string) []DayStat {
	out := make([]DayStat, 0, len(days))
	for _, d := range days {
		total := t.DayTime.Get(d)
		productive := productiveSeconds(t.DayCategory[d])
		out = append(out, DayStat{
			Day:             d,
			TotalHours:      hours2(total),
			ProductiveHours: hours2(productive),
			ProductivePct:   percent(productive, total),
			Switches:        t.DaySwitches[d],
		})
	}
	return out
}

func buildSwitching(t *Totals, activeHours, days int) ContextSwitching {
	total := len(t.Switches)
	return ContextSwitching{
		TotalSwitches:      total,
		HumanSwitches:      total - t.AISwitches,
		AIAssistedSwitches: t.AISwitches,
		ActiveHours:        activeHours,
		AveragePerDay:      round1(float64(total) / float64(max(1, days))),
		SwitchesPerHour:    round1(SwitchRate(activeHours, total, t.AISwitches)),
	}
}

func buildAgents(t *Totals) []AgentShare {
	entries := t.AgentTime.Sorted()
	out := make([]AgentShare, 0, len(entries))
	for _, e := range entries {
		out = append(out, AgentShare{
			Agent:    e.Key,
			Hours:    hours2(e.Value),
			Switches: t.AgentSwitches[e.Key],
		})
	}
	return out
}

func insightContext(s *Summary, t *Totals) *insight.Context {
	ctx := &insight.Context{
		ProductivityScore: s.Scores.ProductivityScore,
		FocusScore:        s.Scores.FocusScore,
	}
	for _, e := range t.CategoryTime.Sorted() {
		ctx.Categories = append(ctx.Categories, insight.Amount{Name: e.Key, Seconds: e.Value, Category: e.Key})
	}
	for _, l := range s.DeathLoops {
		ctx.Loops = append(ctx.Loops, insight.Loop{Verdict: string(l.Verdict), Suggestion: l.Suggestion})
	}
	for _, h := range s.HourlyAnalysis.PeakProductiveHours {
		ctx.PeakHours = append(ctx.PeakHours, h.Hour)
	}
	for _, h := range s.HourlyAnalysis.DangerZones {
		ctx.DangerHours = append(ctx.DangerHours, h.Hour)
	}
	for i, e := range t.BrowserTitles.Top(BrowserLimit) {
		ctx.BrowserTitles = append(ctx.BrowserTitles, insight.Amount{
			Name:     e.Key,
			Seconds:  e.Value,
			Category: s.BrowserBreakdown[i].Category,
		})
	}
	for _, e := range t.SiteTime.Top(SiteLimit) {
		ctx.Sites = append(ctx.Sites, insight.Amount{
			Name:     e.Key,
			Seconds:  e.Value,
			Category: t.Sites[e.Key].Category,
		})
	}
	return ctx
}

func productiveSeconds(byCategory map[string]float64) float64 {
	var sum float64
	for _, name := range category.Productive {
		sum += byCategory[name]
	}
	return sum
}

// percent returns part/whole*100 to one decimal, or 0 for an empty whole.
func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(part / whole * 100)
}

func hours2(secs float64) float64 {
	return round2(secs / 3600)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
