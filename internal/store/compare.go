package store

import (
	"fmt"
	"math"
)

// Compare diffs the metrics and death loops of two snapshots.
func (db *DB) Compare(previousID, currentID int64) (*SnapshotDiff, error) {
	prev, err := db.GetSnapshot(previousID)
	if err != nil {
		return nil, err
	}
	cur, err := db.GetSnapshot(currentID)
	if err != nil {
		return nil, err
	}
	if prev == nil || cur == nil {
		return nil, fmt.Errorf("snapshot %d or %d not found", previousID, currentID)
	}

	prevMetrics, err := db.GetMetrics(previousID)
	if err != nil {
		return nil, err
	}
	curMetrics, err := db.GetMetrics(currentID)
	if err != nil {
		return nil, err
	}
	prevLoops, err := db.GetDeathLoops(previousID)
	if err != nil {
		return nil, err
	}
	curLoops, err := db.GetDeathLoops(currentID)
	if err != nil {
		return nil, err
	}

	return &SnapshotDiff{
		Previous:      prev,
		Current:       cur,
		Deltas:        MetricDeltas(prevMetrics, curMetrics),
		NewLoops:      loopsMissing(curLoops, prevLoops),
		ResolvedLoops: loopsMissing(prevLoops, curLoops),
	}, nil
}

// MetricDeltas pairs metrics by name in the order of cur. Metrics missing
// from prev are skipped.
func MetricDeltas(prev, cur []MetricRow) []MetricDelta {
	before := make(map[string]float64, len(prev))
	for _, m := range prev {
		before[m.Name] = m.Value
	}

	out := make([]MetricDelta, 0, len(cur))
	for _, m := range cur {
		p, ok := before[m.Name]
		if !ok {
			continue
		}
		delta := math.Round((m.Value-p)*100) / 100
		higher, known := higherIsBetter[m.Name]
		if !known {
			higher = true
		}
		out = append(out, MetricDelta{
			Name:           m.Name,
			Previous:       p,
			Current:        m.Value,
			Delta:          delta,
			HigherIsBetter: higher,
			Direction:      direction(delta, higher),
		})
	}
	return out
}

func direction(delta float64, higherIsBetter bool) string {
	switch {
	case delta == 0:
		return DirectionUnchanged
	case (delta > 0) == higherIsBetter:
		return DirectionImproved
	default:
		return DirectionRegressed
	}
}

// loopsMissing returns loops in a whose app pair is absent from b.
func loopsMissing(a, b []LoopRow) []LoopRow {
	seen := make(map[string]bool, len(b))
	for _, l := range b {
		seen[l.Key()] = true
	}
	out := []LoopRow{}
	for _, l := range a {
		if !seen[l.Key()] {
			out = append(out, l)
		}
	}
	return out
}
