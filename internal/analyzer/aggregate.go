package analyzer

import (
	"sort"
	"time"

	"github.com/blackwell-systems/focuswatch/internal/activity"
	"github.com/blackwell-systems/focuswatch/internal/category"
)

// dayLayout formats local calendar days.
const dayLayout = "2006-01-02"

// Totals holds everything accumulated in one pass over the events. All
// durations are in seconds.
type Totals struct {
	Events int

	AppTime      *Tally
	CategoryTime *Tally

	HourTime     [24]float64
	HourCategory [24]map[string]float64
	HourSwitches [24]int

	DayTime     *Tally
	DayCategory map[string]map[string]float64
	DaySwitches map[string]int

	BrowserTitles *Tally
	SiteTime      *Tally
	Sites         map[string]Site

	AgentTime     *Tally
	AgentSwitches map[string]int

	IdleTime float64

	// WeightedTime and ActiveTime exclude inert categories.
	WeightedTime float64
	ActiveTime   float64

	Switches   []Switch
	AISwitches int
}

func newTotals() *Totals {
	t := &Totals{
		AppTime:       NewTally(),
		CategoryTime:  NewTally(),
		DayTime:       NewTally(),
		DayCategory:   make(map[string]map[string]float64),
		DaySwitches:   make(map[string]int),
		BrowserTitles: NewTally(),
		SiteTime:      NewTally(),
		Sites:         make(map[string]Site),
		AgentTime:     NewTally(),
		AgentSwitches: make(map[string]int),
	}
	for h := range t.HourCategory {
		t.HourCategory[h] = make(map[string]float64)
	}
	return t
}

// side is the state of one end of a potential switch.
type side struct {
	app      string
	category string
	terminal bool
	agent    string
}

// Aggregate makes a single pass over events in arrival order. Hour and day
// buckets use loc; a nil loc means the system default.
func Aggregate(events []activity.Event, rules *category.RuleSet, loc *time.Location) *Totals {
	if rules == nil {
		rules = category.Default()
	}
	if loc == nil {
		loc = time.Local
	}

	t := newTotals()
	var (
		prev    side
		hasPrev bool
	)

	for _, e := range events {
		t.Events++
		dur := e.Duration
		if dur < 0 {
			dur = 0
		}

		if IsIdle(e.App) {
			t.IdleTime += dur
			continue
		}

		local := e.Timestamp.In(loc)
		hour := local.Hour()
		day := local.Format(dayLayout)

		cat, weight := rules.Categorize(e.App, e.Title)

		cur := side{app: e.App, category: cat, terminal: IsTerminal(e.App)}
		if cur.terminal {
			cur.agent = DetectAgent(e.Title)
			if cur.agent != "" {
				t.AgentTime.Add(cur.agent, dur)
			}
		}

		t.AppTime.Add(e.App, dur)
		t.CategoryTime.Add(cat, dur)

		t.HourTime[hour] += dur
		t.HourCategory[hour][cat] += dur

		t.DayTime.Add(day, dur)
		if t.DayCategory[day] == nil {
			t.DayCategory[day] = make(map[string]float64)
		}
		t.DayCategory[day][cat] += dur

		if IsBrowser(e.App) {
			if clean := cleanBrowserTitle(e.Title); clean != "" {
				t.BrowserTitles.Add(clean, dur)
				site := ExtractSite(e.Title)
				t.SiteTime.Add(site.Name, dur)
				if _, ok := t.Sites[site.Name]; !ok {
					t.Sites[site.Name] = site
				}
			}
		}

		if !category.In(cat, category.Inert) {
			t.WeightedTime += dur * weight
			t.ActiveTime += dur
		}

		if hasPrev && prev.app != e.App {
			sw := Switch{
				From:    prev.app,
				To:      e.App,
				Hour:    hour,
				Day:     day,
				AIAgent: switchAgent(prev, cur),
			}
			t.Switches = append(t.Switches, sw)
			t.HourSwitches[hour]++
			t.DaySwitches[day]++
			if sw.AIAgent != "" {
				t.AISwitches++
				t.AgentSwitches[sw.AIAgent]++
			}
		}
		prev, hasPrev = cur, true
	}

	return t
}

// switchAgent returns the agent to tag a switch with. A terminal side only
// tags the switch when the other side is not a distracting app, so agent
// runs never hide a real distraction.
func switchAgent(from, to side) string {
	if to.terminal && to.agent != "" && !distracting(from) {
		return to.agent
	}
	if from.terminal && from.agent != "" && !distracting(to) {
		return from.agent
	}
	return ""
}

func distracting(s side) bool {
	return !s.terminal && category.In(s.category, category.Distracting)
}

// ActiveHours counts hour-of-day buckets with at least minSeconds of activity.
func (t *Totals) ActiveHours(minSeconds float64) int {
	n := 0
	for _, secs := range t.HourTime {
		if secs >= minSeconds {
			n++
		}
	}
	return n
}

// Days returns tracked days in calendar order.
func (t *Totals) Days() []string {
	days := t.DayTime.Keys()
	sort.Strings(days)
	return days
}
