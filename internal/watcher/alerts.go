package watcher

import (
	"fmt"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
)

// Alert levels.
const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelInfo     = "info"
)

// lowProductivity is the productivity score below which a warning fires.
const lowProductivity = 50

// Thresholds tune when Compare raises alerts.
type Thresholds struct {
	// ScoreDrop is the combined score drop that raises a critical alert.
	ScoreDrop int

	// Focus is the focus score below which a warning fires.
	Focus int
}

// Compare detects notable changes between two watch states and returns
// alerts, most severe first.
func Compare(prev, curr *WatchState, th Thresholds) []Alert {
	if prev == nil || curr == nil || prev.Summary == nil || curr.Summary == nil {
		return nil
	}
	var alerts []Alert
	alerts = append(alerts, compareCritical(prev, curr, th)...)
	alerts = append(alerts, compareWarning(prev, curr, th)...)
	alerts = append(alerts, compareInfo(prev, curr, th)...)
	return alerts
}

func compareCritical(prev, curr *WatchState, th Thresholds) []Alert {
	var alerts []Alert
	now := curr.Timestamp
	p, c := prev.Summary.Scores, curr.Summary.Scores

	if th.ScoreDrop > 0 && p.CombinedScore-c.CombinedScore >= th.ScoreDrop {
		alerts = append(alerts, Alert{
			Level:   LevelCritical,
			Title:   "Combined score dropped",
			Message: fmt.Sprintf("Score is %d (was %d, %s)", c.CombinedScore, p.CombinedScore, c.Interpretation),
			Time:    now,
		})
	}

	prevDistracting := loopSet(prev.Summary, analyzer.VerdictDistracting)
	for _, l := range curr.Summary.DeathLoops {
		if l.Verdict == analyzer.VerdictDistracting && !prevDistracting[l.Description] {
			alerts = append(alerts, Alert{
				Level:   LevelCritical,
				Title:   fmt.Sprintf("New distracting loop: %s", l.Description),
				Message: fmt.Sprintf("%d switches. %s", l.Count, l.Suggestion),
				Time:    now,
			})
		}
	}
	return alerts
}

func compareWarning(prev, curr *WatchState, th Thresholds) []Alert {
	var alerts []Alert
	now := curr.Timestamp
	p, c := prev.Summary.Scores, curr.Summary.Scores

	if c.FocusScore < th.Focus && p.FocusScore >= th.Focus {
		alerts = append(alerts, Alert{
			Level: LevelWarning,
			Title: "Focus fragmented",
			Message: fmt.Sprintf("Focus score fell to %d (%.1f human switches per active hour)",
				c.FocusScore, curr.Summary.ContextSwitching.SwitchesPerHour),
			Time: now,
		})
	}

	if c.ProductivityScore < lowProductivity && p.ProductivityScore >= lowProductivity {
		alerts = append(alerts, Alert{
			Level:   LevelWarning,
			Title:   "Productivity dropped",
			Message: fmt.Sprintf("Productivity score fell to %d (was %d)", c.ProductivityScore, p.ProductivityScore),
			Time:    now,
		})
	}

	prevDrains := make(map[string]bool)
	for _, d := range prev.Summary.Insights.ProductivityDrains {
		prevDrains[d.Category] = true
	}
	for _, d := range curr.Summary.Insights.ProductivityDrains {
		if !prevDrains[d.Category] {
			alerts = append(alerts, Alert{
				Level:   LevelWarning,
				Title:   fmt.Sprintf("New productivity drain: %s", d.Category),
				Message: fmt.Sprintf("%.1fh tracked", d.Hours),
				Time:    now,
			})
		}
	}
	return alerts
}

func compareInfo(prev, curr *WatchState, th Thresholds) []Alert {
	var alerts []Alert
	now := curr.Timestamp
	p, c := prev.Summary.Scores, curr.Summary.Scores

	if c.FocusScore >= th.Focus && p.FocusScore < th.Focus {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   "Focus recovered",
			Message: fmt.Sprintf("Focus score is back to %d", c.FocusScore),
			Time:    now,
		})
	}

	currLoops := loopSet(curr.Summary, "")
	for _, l := range prev.Summary.DeathLoops {
		if !currLoops[l.Description] {
			alerts = append(alerts, Alert{
				Level:   LevelInfo,
				Title:   fmt.Sprintf("Loop broken: %s", l.Description),
				Message: fmt.Sprintf("Was %d switches (%s)", l.Count, l.Verdict),
				Time:    now,
			})
		}
	}

	if curr.Summary.Period.DaysTracked > prev.Summary.Period.DaysTracked {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   fmt.Sprintf("New day tracked: %s", curr.Summary.Period.LastDay),
			Message: fmt.Sprintf("%d days tracked, combined score %d", curr.Summary.Period.DaysTracked, c.CombinedScore),
			Time:    now,
		})
	}
	return alerts
}

// loopSet indexes loop descriptions, optionally limited to one verdict.
func loopSet(s *analyzer.Summary, verdict analyzer.Verdict) map[string]bool {
	set := make(map[string]bool, len(s.DeathLoops))
	for _, l := range s.DeathLoops {
		if verdict == "" || l.Verdict == verdict {
			set[l.Description] = true
		}
	}
	return set
}
