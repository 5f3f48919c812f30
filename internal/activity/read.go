package activity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ReadFile reads one export, choosing the decoder by file extension:
// .json, .jsonl/.ndjson, anything else as CSV.
func ReadFile(path string) ([]Event, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".jsonl", ".ndjson":
		return ReadJSONLines(f)
	default:
		return ReadCSV(f)
	}
}

// ReadFiles reads several exports concurrently. A single file keeps its row
// order; multiple files are concatenated in argument order and then stably
// sorted by timestamp so switches span file boundaries correctly.
func ReadFiles(ctx context.Context, paths []string) ([]Event, ReadStats, error) {
	type result struct {
		events []Event
		stats  ReadStats
	}
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			events, stats, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			results[i] = result{events: events, stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ReadStats{}, err
	}

	var (
		all   []Event
		stats ReadStats
	)
	for _, r := range results {
		all = append(all, r.events...)
		stats.Add(r.stats)
	}
	if len(paths) > 1 {
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].Timestamp.Before(all[j].Timestamp)
		})
	}
	return all, stats, nil
}
