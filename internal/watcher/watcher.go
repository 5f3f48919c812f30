// Package watcher re-analyses activity exports when they change on disk and
// emits alerts when scores or death loops shift.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
)

// WatchState is the result of one analysis of the watched files.
type WatchState struct {
	Timestamp time.Time
	Summary   *analyzer.Summary
}

// Alert represents a notable change detected by the watcher.
type Alert struct {
	Level   string    `json:"level"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Loader analyses the watched files.
type Loader func(ctx context.Context) (*analyzer.Summary, error)

// Options configures a Watcher.
type Options struct {
	// Debounce delays re-analysis until writes have settled.
	Debounce time.Duration

	Thresholds Thresholds

	// OnUpdate, when set, receives every fresh state.
	OnUpdate func(*WatchState)

	Logger *zap.Logger
}

// Watcher re-runs a Loader whenever one of its files changes and emits
// alerts for notable changes.
type Watcher struct {
	paths         []string
	load          Loader
	opts          Options
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
	now           func() time.Time
}

// New creates a Watcher for the given files.
func New(paths []string, load Loader, opts Options, alertFn func(Alert)) *Watcher {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = time.Second
	}
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		if a, err := filepath.Abs(p); err == nil {
			p = a
		}
		abs = append(abs, filepath.Clean(p))
	}
	return &Watcher{
		paths:         abs,
		load:          load,
		opts:          opts,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
		now:           time.Now,
	}
}

// Run takes an initial snapshot, then re-checks after each settled change to
// a watched file. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial
	w.publish(initial)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	// Watch directories so editors that replace files by rename are seen.
	watched := make(map[string]bool)
	for _, p := range w.paths {
		dir := filepath.Dir(p)
		if watched[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		watched[dir] = true
	}

	// Armed by the first relevant event.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.opts.Logger.Debug("activity file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(w.opts.Debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// relevant reports whether ev touches a watched file in a way that changes
// its content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	for _, p := range w.paths {
		if p == name {
			return true
		}
	}
	return false
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		w.opts.Logger.Warn("re-analysis failed", zap.Error(err))
		return []Alert{{
			Level:   LevelWarning,
			Title:   "Analysis failed",
			Message: fmt.Sprintf("Could not read activity data: %v", err),
			Time:    w.now(),
		}}
	}
	w.publish(curr)

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr, w.opts.Thresholds)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot runs the loader once.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	summary, err := w.load(ctx)
	if err != nil {
		return nil, err
	}
	return &WatchState{Timestamp: w.now(), Summary: summary}, nil
}

func (w *Watcher) publish(s *WatchState) {
	if w.opts.OnUpdate != nil {
		w.opts.OnUpdate(s)
	}
}
