package store

import (
	"database/sql"
	"fmt"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
)

// Metric names recorded for every snapshot.
const (
	MetricCombined      = "combined_score"
	MetricProductivity  = "productivity_score"
	MetricFocus         = "focus_score"
	MetricActiveHours   = "active_hours"
	MetricIdleHours     = "idle_hours"
	MetricHoursPerDay   = "hours_per_day"
	MetricSwitches      = "total_switches"
	MetricHumanSwitches = "human_switches"
	MetricAISwitches    = "ai_switches"
	MetricSwitchRate    = "switches_per_hour"
	MetricDeathLoops    = "death_loops"
)

// higherIsBetter says which way each metric should move.
var higherIsBetter = map[string]bool{
	MetricCombined:      true,
	MetricProductivity:  true,
	MetricFocus:         true,
	MetricActiveHours:   true,
	MetricIdleHours:     false,
	MetricHoursPerDay:   true,
	MetricSwitches:      false,
	MetricHumanSwitches: false,
	MetricAISwitches:    true,
	MetricSwitchRate:    false,
	MetricDeathLoops:    false,
}

// SummaryMetrics flattens the tracked numbers of a summary.
func SummaryMetrics(s *analyzer.Summary) []MetricRow {
	return []MetricRow{
		{MetricCombined, float64(s.Scores.CombinedScore)},
		{MetricProductivity, float64(s.Scores.ProductivityScore)},
		{MetricFocus, float64(s.Scores.FocusScore)},
		{MetricActiveHours, s.TimeTotals.TotalActiveHours},
		{MetricIdleHours, s.TimeTotals.TotalIdleHours},
		{MetricHoursPerDay, s.TimeTotals.AverageHoursPerDay},
		{MetricSwitches, float64(s.ContextSwitching.TotalSwitches)},
		{MetricHumanSwitches, float64(s.ContextSwitching.HumanSwitches)},
		{MetricAISwitches, float64(s.ContextSwitching.AIAssistedSwitches)},
		{MetricSwitchRate, s.ContextSwitching.SwitchesPerHour},
		{MetricDeathLoops, float64(len(s.DeathLoops))},
	}
}

// SummaryLoops converts a summary's death loops to rows.
func SummaryLoops(s *analyzer.Summary) []LoopRow {
	out := make([]LoopRow, 0, len(s.DeathLoops))
	for _, l := range s.DeathLoops {
		out = append(out, LoopRow{
			AppA:       l.Apps[0],
			AppB:       l.Apps[1],
			Count:      l.Count,
			AISwitches: l.AISwitches,
			Verdict:    string(l.Verdict),
		})
	}
	return out
}

// RecordSummary stores a summary as a new snapshot and returns it. The
// snapshot and all of its rows are written in one transaction.
func (db *DB) RecordSummary(s *analyzer.Summary, command, version, source string) (*Snapshot, error) {
	snap := &Snapshot{
		Command:  command,
		Version:  version,
		Source:   source,
		FirstDay: s.Period.FirstDay,
		LastDay:  s.Period.LastDay,
		Events:   s.Period.TotalEvents,
	}
	cats := make([]CategoryRow, 0, len(s.CategoryBreakdown))
	for _, c := range s.CategoryBreakdown {
		cats = append(cats, CategoryRow{Category: c.Category, Hours: c.Hours})
	}

	err := db.withTx(func(tx *sql.Tx) error {
		if err := createSnapshot(tx, snap); err != nil {
			return fmt.Errorf("creating snapshot: %w", err)
		}
		if err := insertMetrics(tx, snap.ID, SummaryMetrics(s)); err != nil {
			return fmt.Errorf("storing metrics: %w", err)
		}
		if err := insertCategoryTotals(tx, snap.ID, cats); err != nil {
			return fmt.Errorf("storing categories: %w", err)
		}
		if err := insertDeathLoops(tx, snap.ID, SummaryLoops(s)); err != nil {
			return fmt.Errorf("storing death loops: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
