package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scriptedLoader returns the queued summaries in order, repeating the last.
type scriptedLoader struct {
	mu        sync.Mutex
	summaries []*analyzer.Summary
	err       error
	calls     int
}

func (l *scriptedLoader) load(context.Context) (*analyzer.Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	i := l.calls - 1
	if i >= len(l.summaries) {
		i = len(l.summaries) - 1
	}
	return l.summaries[i], nil
}

func TestSnapshot(t *testing.T) {
	s := makeState(74, 70, 85).Summary
	l := &scriptedLoader{summaries: []*analyzer.Summary{s}}
	w := New([]string{"week.csv"}, l.load, Options{}, nil)
	fixed := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	state, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, state.Summary)
	assert.Equal(t, fixed, state.Timestamp)
}

func TestNew_Defaults(t *testing.T) {
	w := New([]string{"a.csv", "./b.json"}, nil, Options{}, nil)
	assert.Equal(t, time.Second, w.opts.Debounce)
	assert.NotNil(t, w.opts.Logger)
	for _, p := range w.paths {
		assert.True(t, filepath.IsAbs(p), p)
	}
}

func TestCheck_FirstRunHasNoAlerts(t *testing.T) {
	l := &scriptedLoader{summaries: []*analyzer.Summary{makeState(74, 70, 85).Summary}}
	w := New(nil, l.load, Options{Thresholds: defaultThresholds}, nil)
	assert.Empty(t, w.Check(context.Background()))
	assert.NotNil(t, w.previous)
}

func TestCheck_DedupsRepeatedAlerts(t *testing.T) {
	withLoop := makeState(74, 70, 85).Summary
	withLoop.DeathLoops = []analyzer.DeathLoop{loop("Code", "Slack", 25, analyzer.VerdictMixed)}
	without := makeState(74, 70, 85).Summary

	l := &scriptedLoader{summaries: []*analyzer.Summary{withLoop, without, withLoop, without}}
	w := New(nil, l.load, Options{Thresholds: defaultThresholds}, nil)
	ctx := context.Background()

	assert.Empty(t, w.Check(ctx))

	broken := w.Check(ctx)
	require.Len(t, broken, 1)
	assert.Equal(t, "Loop broken: Code ↔ Slack", broken[0].Title)

	// Loop came back: nothing to report, and the dedup set clears.
	assert.Empty(t, w.Check(ctx))

	again := w.Check(ctx)
	require.Len(t, again, 1, "alert fires again once the condition recurs")
}

func TestCheck_LoaderError(t *testing.T) {
	l := &scriptedLoader{err: errors.New("file vanished")}
	w := New(nil, l.load, Options{}, nil)

	alerts := w.Check(context.Background())
	require.Len(t, alerts, 1)
	assert.Equal(t, LevelWarning, alerts[0].Level)
	assert.Contains(t, alerts[0].Message, "file vanished")
}

func TestRun_InitialSnapshotError(t *testing.T) {
	l := &scriptedLoader{err: errors.New("no such file")}
	w := New([]string{filepath.Join(t.TempDir(), "week.csv")}, l.load, Options{}, nil)
	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial snapshot")
}

// fileLoader reads a combined score from the first line of path.
func fileLoader(path string) Loader {
	return func(context.Context) (*analyzer.Summary, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		score, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, err
		}
		return makeState(score, 70, 85).Summary, nil
	}
}

func TestRun_AlertsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "week.csv")
	require.NoError(t, os.WriteFile(path, []byte("80\n"), 0o644))

	alerts := make(chan Alert, 8)
	updates := make(chan *WatchState, 8)
	w := New([]string{path}, fileLoader(path), Options{
		Debounce:   20 * time.Millisecond,
		Thresholds: defaultThresholds,
		OnUpdate: func(s *WatchState) {
			select {
			case updates <- s:
			default:
			}
		},
	}, func(a Alert) {
		select {
		case alerts <- a:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case s := <-updates:
		assert.Equal(t, 80, s.Summary.Scores.CombinedScore)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial snapshot")
	}

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	// Rewrite until the watcher picks it up. Reads that race a partial write
	// surface as analysis failures and are skipped.
	deadline := time.Now().Add(5 * time.Second)
	var got Alert
	received := false
	for !received && time.Now().Before(deadline) {
		require.NoError(t, os.WriteFile(path, []byte("55\n"), 0o644))
		select {
		case got = <-alerts:
			received = got.Title == "Combined score dropped"
		case <-time.After(250 * time.Millisecond):
		}
	}
	require.True(t, received, "expected a score alert after the file changed")
	assert.Equal(t, LevelCritical, got.Level)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "week.csv")
	w := New([]string{path}, nil, Options{}, nil)

	assert.True(t, w.relevant(fsEvent(path, "write")))
	assert.True(t, w.relevant(fsEvent(path, "create")))
	assert.False(t, w.relevant(fsEvent(path, "chmod")))
	assert.False(t, w.relevant(fsEvent(filepath.Join(dir, "other.csv"), "write")))
}

func fsEvent(name, op string) fsnotify.Event {
	ops := map[string]fsnotify.Op{
		"write":  fsnotify.Write,
		"create": fsnotify.Create,
		"chmod":  fsnotify.Chmod,
	}
	return fsnotify.Event{Name: name, Op: ops[op]}
}
