package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/analyzer"
	"github.com/blackwell-systems/focuswatch/internal/config"
	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/watcher"
)

var (
	watchDays     int
	watchDebounce time.Duration
	watchDaemon   bool
	watchStop     bool
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Re-analyze activity exports as they change and alert on regressions",
	Long: `Watch activity exports for changes. After writes settle, the files are
re-analyzed and alerts are printed when the combined score drops, a new
distracting death loop appears, or focus crosses the configured threshold.

Examples:
  focuswatch watch today.csv                  # foreground (ctrl-c to stop)
  focuswatch watch today.csv --debounce 10s
  focuswatch watch today.csv --daemon         # write PID file, log to file
  focuswatch watch --stop                     # stop the background daemon`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDays, "days", 0, "Only analyze the trailing N days (default: config, 0 = all)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Wait this long after the last change before re-analyzing (default: config)")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "Run in background mode (write PID file, log to file)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "Stop a running background daemon")
	watchCmd.Flags().BoolVar(&watchQuiet, "quiet", false, "Only print alerts, no baseline or status lines")
	rootCmd.AddCommand(watchCmd)
}

var errNoDaemon = errors.New("no watch daemon running")

// pidFilePath returns the path to the daemon PID file.
func pidFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.pid")
}

// logFilePath returns the path to the daemon log file.
func logFilePath() string {
	return filepath.Join(config.ConfigDir(), "watch.log")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchStop {
		return stopDaemon(cmd.OutOrStdout())
	}
	if len(args) == 0 {
		return errors.New("watch needs at least one activity file")
	}

	debounce := cfg.Watch.Debounce
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	if watchDaemon {
		return runDaemon(args, debounce)
	}
	return runForeground(cmd.OutOrStdout(), args, debounce)
}

// newFileWatcher wires the analysis pipeline into a watcher.
func newFileWatcher(paths []string, debounce time.Duration, onUpdate func(*watcher.WatchState), alertFn func(watcher.Alert)) *watcher.Watcher {
	opts := engineOptions(cfg)
	days := effectiveDays(watchDays, cfg)
	load := func(ctx context.Context) (*analyzer.Summary, error) {
		events, err := loadEvents(ctx, paths, days)
		if err != nil {
			return nil, err
		}
		return analyzer.Analyze(events, opts), nil
	}

	return watcher.New(paths, load, watcher.Options{
		Debounce: debounce,
		Thresholds: watcher.Thresholds{
			ScoreDrop: cfg.Watch.ScoreDropAlert,
			Focus:     cfg.Watch.FocusAlert,
		},
		OnUpdate: onUpdate,
		Logger:   log,
	}, alertFn)
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), shutdownSignals...)
}

// runForeground runs the watcher with live terminal output.
func runForeground(w io.Writer, paths []string, debounce time.Duration) error {
	ctx, cancel := signalContext()
	defer cancel()

	if !watchQuiet {
		fmt.Fprintf(w, "focuswatch watching %s... (debounce %s)\n", strings.Join(paths, ", "), debounce)
	}

	onUpdate := func(s *watcher.WatchState) {
		if watchQuiet {
			return
		}
		sc := s.Summary.Scores
		fmt.Fprintf(w, "%s %s combined %d, productivity %d, focus %d (%d events)\n",
			output.StyleMuted.Render(s.Timestamp.Format("15:04:05")),
			output.StyleSuccess.Render("✓"),
			sc.CombinedScore, sc.ProductivityScore, sc.FocusScore,
			s.Summary.Period.TotalEvents)
	}

	fw := newFileWatcher(paths, debounce, onUpdate, watcher.NotifyTo(w))
	err := fw.Run(ctx)
	if errors.Is(err, context.Canceled) {
		if !watchQuiet {
			fmt.Fprintln(w, "\nStopped.")
		}
		return nil
	}
	return err
}

// runDaemon sets up PID and log files, then runs the watcher. The actual
// backgrounding should be done by the caller (nohup, &, etc.) since Go
// cannot reliably fork.
func runDaemon(paths []string, debounce time.Duration) error {
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if pid, err := readPID(); err == nil {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d). Use --stop to stop it", pid)
		}
		// Stale PID file.
		_ = os.Remove(pidFilePath())
	}

	pid := os.Getpid()
	if err := os.WriteFile(pidFilePath(), []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer func() { _ = os.Remove(pidFilePath()) }()

	logFile, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	// Diagnostics go to the log file alongside alerts.
	log = newLogger(logFile, flagVerbose)
	output.SetNoColor(true)

	ctx, cancel := signalContext()
	defer cancel()

	writeLog(logFile, "focuswatch daemon started (PID %d, debounce %s, files %s)", pid, debounce, strings.Join(paths, ", "))

	alertFn := func(a watcher.Alert) {
		writeLog(logFile, "%s", watcher.FormatAlert(a))
	}

	err = newFileWatcher(paths, debounce, nil, alertFn).Run(ctx)
	if errors.Is(err, context.Canceled) {
		writeLog(logFile, "daemon stopped")
		return nil
	}
	return err
}

// readPID reads the daemon PID from the PID file.
func readPID() (int, error) {
	data, err := os.ReadFile(pidFilePath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// writeLog writes a timestamped line to the log file.
func writeLog(f io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	_, _ = fmt.Fprintf(f, "[%s] %s\n", timestamp, msg)
}
