// Package store provides SQLite persistence for focuswatch analysis
// snapshots, used by the track command to follow scores over time.
package store

import "time"

// Snapshot is one recorded analysis run.
type Snapshot struct {
	ID      int64     `json:"id"`
	RunID   string    `json:"run_id"`
	TakenAt time.Time `json:"taken_at"`
	Command string    `json:"command"`
	Version string    `json:"version"`

	// Source lists the input files, comma separated.
	Source string `json:"source"`

	FirstDay string `json:"first_day,omitempty"`
	LastDay  string `json:"last_day,omitempty"`
	Events   int    `json:"events"`
}

// MetricRow is a named metric value within a snapshot.
type MetricRow struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// CategoryRow is a category's tracked hours within a snapshot.
type CategoryRow struct {
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
}

// LoopRow is a death loop recorded with a snapshot.
type LoopRow struct {
	AppA       string `json:"app_a"`
	AppB       string `json:"app_b"`
	Count      int    `json:"count"`
	AISwitches int    `json:"ai_switches"`
	Verdict    string `json:"verdict"`
}

// Key identifies the app pair independent of verdict.
func (l LoopRow) Key() string {
	return l.AppA + " ↔ " + l.AppB
}

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`

	// NewLoops are death loops present now but not in the previous snapshot.
	NewLoops []LoopRow `json:"new_loops"`

	// ResolvedLoops disappeared since the previous snapshot.
	ResolvedLoops []LoopRow `json:"resolved_loops"`
}

// Directions reported by MetricDelta.
const (
	DirectionImproved  = "improved"
	DirectionRegressed = "regressed"
	DirectionUnchanged = "unchanged"
)

// MetricDelta represents the change in a single metric between snapshots.
type MetricDelta struct {
	Name           string  `json:"name"`
	Previous       float64 `json:"previous"`
	Current        float64 `json:"current"`
	Delta          float64 `json:"delta"`
	HigherIsBetter bool    `json:"higher_is_better"`
	Direction      string  `json:"direction"`
}
