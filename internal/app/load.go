package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/focuswatch/internal/activity"
	"github.com/blackwell-systems/focuswatch/internal/analyzer"
	"github.com/blackwell-systems/focuswatch/internal/category"
	"github.com/blackwell-systems/focuswatch/internal/config"
)

// engineOptions resolves the rule set and timezone from configuration.
// Fallbacks are logged as warnings and never fail the command.
func engineOptions(c *config.Config) analyzer.Options {
	rules := category.Default()
	if path := c.RulesPath(); path != "" {
		rs, err := category.Load(path)
		if err != nil {
			log.Warn("using default category rules", zap.String("path", path), zap.Error(err))
		} else {
			log.Debug("loaded category rules", zap.String("path", path), zap.Int("rules", rs.Len()))
		}
		rules = rs
	}

	loc, err := activity.ResolveLocation(c.Timezone)
	if err != nil {
		log.Warn("timezone fallback", zap.Error(err))
	}
	return analyzer.Options{Rules: rules, Location: loc}
}

// loadEvents reads the given exports and applies the trailing-days cutoff.
func loadEvents(ctx context.Context, paths []string, days int) ([]activity.Event, error) {
	events, stats, err := activity.ReadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if stats.Skipped > 0 {
		log.Warn("skipped unreadable rows", zap.Int("skipped", stats.Skipped), zap.Int("rows", stats.Rows))
	}
	log.Debug("read activity",
		zap.Strings("files", paths),
		zap.Int("rows", stats.Rows),
		zap.Int("zero_durations", stats.ZeroDurations))

	if cutoff := activity.CutoffForDays(time.Now(), days); !cutoff.IsZero() {
		before := len(events)
		events = activity.FilterSince(events, cutoff)
		log.Debug("applied day cutoff", zap.Int("days", days), zap.Int("dropped", before-len(events)))
	}
	return events, nil
}

// analyzeFiles runs the full pipeline over paths.
func analyzeFiles(ctx context.Context, c *config.Config, paths []string, days int) (*analyzer.Summary, error) {
	events, err := loadEvents(ctx, paths, days)
	if err != nil {
		return nil, fmt.Errorf("loading activity: %w", err)
	}
	return analyzer.Analyze(events, engineOptions(c)), nil
}

// effectiveDays picks the --days flag when set, else the configured value.
func effectiveDays(flag int, c *config.Config) int {
	if flag > 0 {
		return flag
	}
	return c.Days
}
