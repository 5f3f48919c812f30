package activity

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cast"
)

// rawEvent accepts both flat records and ActivityWatch events, whose app and
// title live under "data".
type rawEvent struct {
	Timestamp any      `json:"timestamp"`
	Duration  any      `json:"duration"`
	App       string   `json:"app"`
	Title     string   `json:"title"`
	Data      *rawData `json:"data,omitempty"`
}

type rawData struct {
	App   string `json:"app"`
	Title string `json:"title"`
}

// envelope covers {"events": [...]} and ActivityWatch bucket exports.
type envelope struct {
	Events  []rawEvent `json:"events"`
	Buckets map[string]struct {
		Events []rawEvent `json:"events"`
	} `json:"buckets"`
}

// ReadJSON decodes a JSON export. Accepted shapes are a top-level array of
// events, an object with an "events" array, or an ActivityWatch export with
// "buckets". Bucket events are ordered by timestamp since the exporter writes
// them newest first.
func ReadJSON(r io.Reader) ([]Event, ReadStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("reading json: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ReadStats{}, nil
	}

	if data[0] == '[' {
		var raws []rawEvent
		if err := sonic.Unmarshal(data, &raws); err != nil {
			return nil, ReadStats{}, fmt.Errorf("decoding event array: %w", err)
		}
		events, stats := convertRaw(raws)
		return events, stats, nil
	}

	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, ReadStats{}, fmt.Errorf("decoding export: %w", err)
	}

	if len(env.Buckets) == 0 {
		events, stats := convertRaw(env.Events)
		return events, stats, nil
	}

	names := make([]string, 0, len(env.Buckets))
	for name := range env.Buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		events []Event
		stats  ReadStats
	)
	for _, name := range names {
		// Only window watchers carry app and title.
		if !strings.Contains(name, "window") {
			continue
		}
		evs, st := convertRaw(env.Buckets[name].Events)
		events = append(events, evs...)
		stats.Add(st)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, stats, nil
}

// ReadJSONLines decodes one JSON event per line. Lines that fail to decode
// are skipped and counted.
func ReadJSONLines(r io.Reader) ([]Event, ReadStats, error) {
	var (
		raws    []rawEvent
		skipped int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var raw rawEvent
		if err := sonic.Unmarshal(line, &raw); err != nil {
			skipped++
			continue
		}
		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, ReadStats{}, fmt.Errorf("scanning lines: %w", err)
	}

	events, stats := convertRaw(raws)
	stats.Rows += skipped
	stats.Skipped += skipped
	return events, stats, nil
}

func convertRaw(raws []rawEvent) ([]Event, ReadStats) {
	stats := ReadStats{Rows: len(raws)}
	events := make([]Event, 0, len(raws))

	for _, raw := range raws {
		tsRaw, err := cast.ToStringE(raw.Timestamp)
		if err != nil {
			stats.Skipped++
			continue
		}
		ts, ok := ParseTimestamp(tsRaw)
		if !ok {
			stats.Skipped++
			continue
		}

		app, title := raw.App, raw.Title
		if raw.Data != nil {
			if app == "" {
				app = raw.Data.App
			}
			if title == "" {
				title = raw.Data.Title
			}
		}
		if app == "" {
			app = "Unknown"
		}

		dur := parseDuration(raw.Duration)
		if dur == 0 {
			stats.ZeroDurations++
		}

		events = append(events, Event{
			Timestamp: ts,
			Duration:  dur,
			App:       app,
			Title:     title,
		})
	}
	return events, stats
}
