// Package insight derives human-facing recommendations from analysed
// activity totals.
package insight

// Impact directions for drivers and drains.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
)

// Thresholds in seconds.
const (
	DriverMinSeconds    = 3600
	DrainMinSeconds     = 1800
	OneChangeMinSeconds = 3600
)

// Insights is the recommendation block of a summary.
type Insights struct {
	TopInsight              string   `json:"top_insight"`
	ProductivityDrivers     []Impact `json:"productivity_drivers"`
	ProductivityDrains      []Impact `json:"productivity_drains"`
	ScheduleRecommendations []string `json:"schedule_recommendations"`
	OneChange               string   `json:"one_change"`
}

// Impact is a category that moved productivity one way or the other.
type Impact struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Impact   string  `json:"impact"`
}

// Amount is a named duration in seconds.
type Amount struct {
	Name     string
	Seconds  float64
	Category string
}

// Loop is the part of a death loop the rules look at.
type Loop struct {
	Verdict    string
	Suggestion string
}

// Context provides everything the rules read. Categories, BrowserTitles and
// Sites are sorted by time descending; Loops by count descending; PeakHours
// and DangerHours best first.
type Context struct {
	Categories []Amount

	Loops []Loop

	PeakHours   []int
	DangerHours []int

	ProductivityScore int
	FocusScore        int

	BrowserTitles []Amount
	Sites         []Amount
}

// Rule fills in part of the insights from the context.
type Rule func(ctx *Context, out *Insights)
