package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/store"
)

var (
	trackDays    int
	trackCompare int
	trackHistory int
)

var trackCmd = &cobra.Command{
	Use:   "track FILE...",
	Short: "Snapshot and compare scores over time",
	Long: `Analyze activity exports, store a snapshot of the scores, hours, and
death loops, and compare against a previous snapshot to show deltas with
trend arrows.

Examples:
  focuswatch track week.csv
  focuswatch track week.csv --compare 4     # against four runs ago
  focuswatch track week.csv --history 8     # timeline of the last 8 runs`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackDays, "days", 0, "Only analyze the trailing N days (default: config, 0 = all)")
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "Show score trends across N most recent snapshots")
	rootCmd.AddCommand(trackCmd)
}

// trackResult is the JSON output of the track command.
type trackResult struct {
	Snapshot *store.Snapshot     `json:"snapshot"`
	Diff     *store.SnapshotDiff `json:"diff,omitempty"`
	History  []historyRow        `json:"history,omitempty"`
}

type historyRow struct {
	Snapshot store.Snapshot    `json:"snapshot"`
	Metrics  []store.MetricRow `json:"metrics"`
}

func runTrack(cmd *cobra.Command, args []string) error {
	if trackCompare < 1 {
		return fmt.Errorf("--compare must be at least 1, got %d", trackCompare)
	}

	summary, err := analyzeFiles(cmd.Context(), cfg, args, effectiveDays(trackDays, cfg))
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Database())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	current, err := db.RecordSummary(summary, "track", appVersion, strings.Join(args, ","))
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	log.Debug("recorded snapshot", zap.Int64("id", current.ID), zap.String("run_id", current.RunID))

	w := cmd.OutOrStdout()

	if trackHistory > 0 {
		history, err := loadHistory(db, trackHistory)
		if err != nil {
			return err
		}
		if flagJSON {
			return writeJSON(w, trackResult{Snapshot: current, History: history})
		}
		renderHistory(w, history)
		return nil
	}

	// trackCompare=1 means the immediate predecessor, which is second newest.
	prev, err := db.GetSnapshotN(trackCompare + 1)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	var diff *store.SnapshotDiff
	if prev != nil {
		diff, err = db.Compare(prev.ID, current.ID)
		if err != nil {
			return fmt.Errorf("comparing snapshots: %w", err)
		}
	}

	if flagJSON {
		return writeJSON(w, trackResult{Snapshot: current, Diff: diff})
	}
	renderTrackOutput(w, current, diff)
	return nil
}

func loadHistory(db *store.DB, n int) ([]historyRow, error) {
	snapshots, err := db.ListSnapshots(n)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	rows := make([]historyRow, 0, len(snapshots))
	// Oldest first reads naturally as a timeline.
	for i := len(snapshots) - 1; i >= 0; i-- {
		metrics, err := db.GetMetrics(snapshots[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loading metrics for snapshot %d: %w", snapshots[i].ID, err)
		}
		rows = append(rows, historyRow{Snapshot: snapshots[i], Metrics: metrics})
	}
	return rows, nil
}

func renderTrackOutput(w io.Writer, current *store.Snapshot, diff *store.SnapshotDiff) {
	fmt.Fprintln(w, output.Section("Track: Snapshot Comparison"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " Snapshot #%d taken at %s\n\n", current.ID, current.TakenAt.Local().Format("2006-01-02 15:04:05"))

	if diff == nil {
		fmt.Fprintln(w, " First snapshot recorded. Run 'focuswatch track' again later to see trends.")
		return
	}

	fmt.Fprintf(w, " Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Local().Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Metric", "Previous", "Current", "Delta", "Trend")
	for _, d := range diff.Deltas {
		tbl.AddRow(
			metricShortName(d.Name),
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			fmt.Sprintf("%+.1f", d.Delta),
			output.TrendArrow(d.Delta, d.HigherIsBetter),
		)
	}
	tbl.Fprint(w)

	for _, l := range diff.NewLoops {
		fmt.Fprintf(w, " %s %s (%d switches, %s)\n",
			output.StyleError.Render("+ new loop"), l.Key(), l.Count,
			output.VerdictStyle(l.Verdict).Render(l.Verdict))
	}
	for _, l := range diff.ResolvedLoops {
		fmt.Fprintf(w, " %s %s\n", output.StyleSuccess.Render("- broken loop"), l.Key())
	}
}

// historyMetrics are the columns of the history table.
var historyMetrics = []string{
	store.MetricCombined,
	store.MetricProductivity,
	store.MetricFocus,
	store.MetricActiveHours,
	store.MetricSwitchRate,
	store.MetricDeathLoops,
}

func renderHistory(w io.Writer, rows []historyRow) {
	fmt.Fprintln(w, output.Section("Track: History"))
	fmt.Fprintln(w)
	if len(rows) == 0 {
		fmt.Fprintln(w, " No snapshots recorded yet.")
		return
	}

	headers := []string{"#", "Taken", "Period"}
	for _, m := range historyMetrics {
		headers = append(headers, metricShortName(m))
	}
	tbl := output.NewTable(headers...)
	for _, r := range rows {
		byName := make(map[string]float64, len(r.Metrics))
		for _, m := range r.Metrics {
			byName[m.Name] = m.Value
		}
		period := r.Snapshot.FirstDay
		if r.Snapshot.LastDay != "" && r.Snapshot.LastDay != r.Snapshot.FirstDay {
			period += " to " + r.Snapshot.LastDay
		}
		cells := []string{
			fmt.Sprintf("%d", r.Snapshot.ID),
			r.Snapshot.TakenAt.Local().Format("2006-01-02 15:04"),
			period,
		}
		for _, m := range historyMetrics {
			cells = append(cells, fmt.Sprintf("%.1f", byName[m]))
		}
		tbl.AddRow(cells...)
	}
	tbl.Fprint(w)
}

// metricShortName returns a compact label for display.
func metricShortName(name string) string {
	short := map[string]string{
		store.MetricCombined:      "Combined",
		store.MetricProductivity:  "Productivity",
		store.MetricFocus:         "Focus",
		store.MetricActiveHours:   "Active h",
		store.MetricIdleHours:     "Idle h",
		store.MetricHoursPerDay:   "h/day",
		store.MetricSwitches:      "Switches",
		store.MetricHumanSwitches: "Human switches",
		store.MetricAISwitches:    "AI switches",
		store.MetricSwitchRate:    "Switches/h",
		store.MetricDeathLoops:    "Loops",
	}
	if s, ok := short[name]; ok {
		return s
	}
	return name
}

// writeJSON encodes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
