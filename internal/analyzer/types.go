// Package analyzer turns an ordered stream of activity events into category
// totals, context-switch patterns, scores, and insights.
package analyzer

import "github.com/blackwell-systems/focuswatch/internal/insight"

// Switch is a transition between two consecutive events with different
// foreground apps.
type Switch struct {
	From string `json:"from"`
	To   string `json:"to"`

	// Hour is the local hour (0-23) of the event switched to.
	Hour int `json:"hour"`

	// Day is the local calendar date (YYYY-MM-DD) of the event switched to.
	Day string `json:"day"`

	// AIAgent names the coding agent running in the terminal side of the
	// switch. Empty when the switch is not AI-assisted.
	AIAgent string `json:"ai_agent,omitempty"`
}

// Verdict classifies a death loop.
type Verdict string

// Death loop verdicts.
const (
	VerdictProductive  Verdict = "productive"
	VerdictDistracting Verdict = "distracting"
	VerdictAIAssisted  Verdict = "ai_assisted"
	VerdictMixed       Verdict = "mixed"
)

// DeathLoop is an app pair the user keeps switching between.
type DeathLoop struct {
	// Apps holds the pair in lexical order.
	Apps [2]string `json:"apps"`

	Count       int    `json:"count"`
	AISwitches  int    `json:"ai_switches"`
	AIAgent     string `json:"ai_agent,omitempty"`
	Description string `json:"description"`

	Verdict    Verdict `json:"verdict"`
	Suggestion string  `json:"suggestion"`
}

// Scores are the 0-100 metrics for one analysis run.
type Scores struct {
	CombinedScore     int    `json:"combined_score"`
	ProductivityScore int    `json:"productivity_score"`
	FocusScore        int    `json:"focus_score"`
	Interpretation    string `json:"interpretation"`
}

// Summary is the complete output of one analysis run. Every list is ordered
// so that encoding the same input twice yields identical bytes.
type Summary struct {
	Period            Period           `json:"period"`
	Scores            Scores           `json:"scores"`
	TimeTotals        TimeTotals       `json:"time_totals"`
	CategoryBreakdown []CategoryShare  `json:"category_breakdown"`
	TopApps           []AppShare       `json:"top_apps"`
	BrowserBreakdown  []BrowserTitle   `json:"browser_breakdown"`
	SiteBreakdown     []SiteShare      `json:"site_breakdown"`
	HourlyAnalysis    HourlyAnalysis   `json:"hourly_analysis"`
	DailyTrend        []DayStat        `json:"daily_trend"`
	ContextSwitching  ContextSwitching `json:"context_switching"`
	AIAgents          []AgentShare     `json:"ai_agents"`
	DeathLoops        []DeathLoop      `json:"death_loops"`
	Insights          insight.Insights `json:"insights"`
}

// Period describes the span of analysed data.
type Period struct {
	DaysTracked int    `json:"days_tracked"`
	TotalEvents int    `json:"total_events"`
	FirstDay    string `json:"first_day,omitempty"`
	LastDay     string `json:"last_day,omitempty"`
	DateRange   string `json:"date_range"`
}

// TimeTotals summarises tracked time.
type TimeTotals struct {
	TotalActiveHours   float64 `json:"total_active_hours"`
	TotalIdleHours     float64 `json:"total_idle_hours"`
	TotalTrackedHours  float64 `json:"total_tracked_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
	Timezone           string  `json:"timezone"`
}

// CategoryShare is one row of the category breakdown.
type CategoryShare struct {
	Category   string  `json:"category"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
	Weight     float64 `json:"weight"`
}

// AppShare is one row of the top-apps list.
type AppShare struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
	Category   string  `json:"category"`
}

// BrowserTitle is time spent on one browser window title.
type BrowserTitle struct {
	Title    string  `json:"title"`
	Hours    float64 `json:"hours"`
	Category string  `json:"category"`
}

// SiteShare is time spent on one site.
type SiteShare struct {
	Site     string  `json:"site"`
	Hours    float64 `json:"hours"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

// HourStat describes one local hour of the day across all tracked days.
type HourStat struct {
	Hour            int     `json:"hour"`
	TotalHours      float64 `json:"total_hours"`
	ProductiveHours float64 `json:"productive_hours"`
	ProductivePct   float64 `json:"productive_pct"`
	Switches        int     `json:"switches"`
}

// HourlyAnalysis ranks hours of the day. Hours with under five minutes of
// activity are left out.
type HourlyAnalysis struct {
	PeakProductiveHours []HourStat `json:"peak_productive_hours"`
	DangerZones         []HourStat `json:"danger_zones"`
	FullBreakdown       []HourStat `json:"full_breakdown"`
}

// DayStat is one day of the daily trend.
type DayStat struct {
	Day             string  `json:"day"`
	TotalHours      float64 `json:"total_hours"`
	ProductiveHours float64 `json:"productive_hours"`
	ProductivePct   float64 `json:"productive_pct"`
	Switches        int     `json:"switches"`
}

// ContextSwitching summarises the switch sequence.
type ContextSwitching struct {
	TotalSwitches      int     `json:"total_switches"`
	HumanSwitches      int     `json:"human_switches"`
	AIAssistedSwitches int     `json:"ai_assisted_switches"`
	ActiveHours        int     `json:"active_hours"`
	AveragePerDay      float64 `json:"average_per_day"`
	SwitchesPerHour    float64 `json:"switches_per_hour"`
}

// AgentShare is time spent with one AI coding agent running in a terminal.
type AgentShare struct {
	Agent    string  `json:"agent"`
	Hours    float64 `json:"hours"`
	Switches int     `json:"switches"`
}
