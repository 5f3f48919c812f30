package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ReadCSV decodes a CSV export with a header row containing at least a
// "timestamp" column; "duration", "app" and "title" are optional. Rows with an
// unparseable timestamp are skipped and counted, never fatal.
func ReadCSV(r io.Reader) ([]Event, ReadStats, error) {
	var stats ReadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	if _, ok := cols["timestamp"]; !ok {
		return nil, stats, fmt.Errorf("%w: timestamp", ErrMissingColumn)
	}

	field := func(rec []string, name string) (string, bool) {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}

	var events []Event
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				stats.Rows++
				stats.Skipped++
				continue
			}
			return events, stats, fmt.Errorf("reading row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		tsRaw, _ := field(rec, "timestamp")
		ts, ok := ParseTimestamp(tsRaw)
		if !ok {
			stats.Skipped++
			continue
		}

		durRaw, _ := field(rec, "duration")
		dur := parseDuration(durRaw)
		if dur == 0 {
			stats.ZeroDurations++
		}

		app, ok := field(rec, "app")
		if !ok {
			app = "Unknown"
		}
		title, _ := field(rec, "title")

		events = append(events, Event{
			Timestamp: ts,
			Duration:  dur,
			App:       app,
			Title:     title,
		})
	}

	return events, stats, nil
}
