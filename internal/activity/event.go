// Package activity reads desktop-activity exports into ordered events and
// resolves the timezone used to bucket them.
package activity

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Event is one activity sample.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"` // seconds
	App       string    `json:"app"`
	Title     string    `json:"title"`
}

// ReadStats counts what a reader saw while decoding rows.
type ReadStats struct {
	Rows          int `json:"rows"`
	Skipped       int `json:"skipped"`
	ZeroDurations int `json:"zero_durations"`
}

// Add merges o into s.
func (s *ReadStats) Add(o ReadStats) {
	s.Rows += o.Rows
	s.Skipped += o.Skipped
	s.ZeroDurations += o.ZeroDurations
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. It returns the zero time and
// false if no layout matches.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDuration coerces a raw duration value to non-negative seconds.
// Missing or invalid values yield 0.
func parseDuration(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
		if v == "" {
			return 0
		}
	}
	d, err := cast.ToFloat64E(v)
	if err != nil || d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return d
}

// FilterSince returns the events at or after cutoff, preserving order.
// A zero cutoff returns events unchanged.
func FilterSince(events []Event, cutoff time.Time) []Event {
	if cutoff.IsZero() {
		return events
	}
	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.Timestamp.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// CutoffForDays returns the instant days before now, or the zero time when
// days is not positive.
func CutoffForDays(now time.Time, days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -days)
}
