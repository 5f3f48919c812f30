package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/focuswatch/internal/output"
)

const sampleCSV = "timestamp,duration,app,title\n" +
	"2024-03-04T09:00:00Z,1800,Code,main.go - focuswatch\n" +
	"2024-03-04T09:30:00Z,300,Slack,Slack | general\n" +
	"2024-03-04T09:35:00Z,1500,Terminal,claude code\n" +
	"2024-03-04T10:00:00Z,900,Google Chrome,Reddit - Pair programming tips\n" +
	"2024-03-04T10:15:00Z,600,loginwindow,\n"

// runCLI executes the root command with args in an isolated home directory
// and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TZ", "UTC")

	flagNoColor, flagJSON, flagVerbose = false, false, false
	flagConfig, flagTimezone, flagRules = "", "", ""
	analyzeDays, reportDays, trackDays, watchDays = 0, 0, 0, 0
	reportRender = false
	trackCompare, trackHistory = 1, 0
	watchStop, watchDaemon, watchQuiet = false, false, false
	t.Cleanup(func() { output.SetNoColor(false) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestAnalyze_JSON(t *testing.T) {
	path := writeSample(t)
	stdout, _, err := runCLI(t, "analyze", path, "--json", "--timezone", "UTC")
	require.NoError(t, err)

	var got struct {
		Period struct {
			TotalEvents int `json:"total_events"`
			DaysTracked int `json:"days_tracked"`
		} `json:"period"`
		TimeTotals struct {
			Timezone string `json:"timezone"`
		} `json:"time_totals"`
		CategoryBreakdown []struct {
			Category string `json:"category"`
		} `json:"category_breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 5, got.Period.TotalEvents)
	assert.Equal(t, 1, got.Period.DaysTracked)
	assert.Equal(t, "UTC", got.TimeTotals.Timezone)
	require.NotEmpty(t, got.CategoryBreakdown)
	assert.Equal(t, "deep_work", got.CategoryBreakdown[0].Category)
}

func TestAnalyze_JSONIsStable(t *testing.T) {
	path := writeSample(t)
	first, _, err := runCLI(t, "analyze", path, "--json")
	require.NoError(t, err)
	second, _, err := runCLI(t, "analyze", path, "--json")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze_Styled(t *testing.T) {
	path := writeSample(t)
	stdout, _, err := runCLI(t, "analyze", path, "--no-color")
	require.NoError(t, err)
	for _, want := range []string{"Focus Summary", "Scores", "Time by Category", "deep_work", "Context Switching", "One change:"} {
		assert.Contains(t, stdout, want)
	}
	assert.NotContains(t, stdout, "\x1b[")
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := runCLI(t, "analyze")
	assert.Error(t, err)

	_, _, err = runCLI(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading activity")
}

func TestAnalyze_WarnsOnFallbacks(t *testing.T) {
	path := writeSample(t)
	_, stderr, err := runCLI(t, "analyze", path, "--json",
		"--timezone", "Mars/Olympus",
		"--rules", filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "timezone fallback")
	assert.Contains(t, stderr, "using default category rules")
}

func TestReport(t *testing.T) {
	path := writeSample(t)
	stdout, _, err := runCLI(t, "report", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# Weekly Focus Report"))
	assert.Contains(t, stdout, "| **Combined** |")
	assert.Contains(t, stdout, "One Change for Next Week")
}

func TestRules_JSON(t *testing.T) {
	stdout, _, err := runCLI(t, "rules", "--json")
	require.NoError(t, err)

	var got rulesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "built-in defaults", got.Source)
	require.NotEmpty(t, got.Rules)
	assert.Equal(t, "deep_work", got.Rules[0].Name)
}

func TestRules_CustomFile(t *testing.T) {
	rules := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("focus:\n  weight: 1\n  apps: [Code]\nchat:\n  weight: 0.2\n  apps: [Slack]\n"), 0o644))

	stdout, _, err := runCLI(t, "rules", "--rules", rules, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, rules)
	assert.Less(t, strings.Index(stdout, "focus"), strings.Index(stdout, "chat"))
}

func TestTrack_ComparesSnapshots(t *testing.T) {
	path := writeSample(t)
	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.yaml")
	dbPath := filepath.Join(home, "fw.db")
	require.NoError(t, os.WriteFile(cfgPath, []byte("db_path: "+dbPath+"\n"), 0o644))

	stdout, _, err := runCLI(t, "track", path, "--config", cfgPath, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "First snapshot recorded")

	stdout, _, err = runCLI(t, "track", path, "--config", cfgPath, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Comparing against snapshot #1")
	assert.Contains(t, stdout, "Combined")

	stdout, _, err = runCLI(t, "track", path, "--config", cfgPath, "--history", "5", "--json")
	require.NoError(t, err)
	var got trackResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, int64(3), got.Snapshot.ID)
	require.Len(t, got.History, 3)
	assert.Equal(t, int64(1), got.History[0].Snapshot.ID)
}

func TestTrack_RejectsBadCompare(t *testing.T) {
	path := writeSample(t)
	_, _, err := runCLI(t, "track", path, "--compare", "0")
	assert.Error(t, err)
}

func TestWatch_NeedsFiles(t *testing.T) {
	_, _, err := runCLI(t, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one activity file")
}

func TestWatch_StopWithoutDaemon(t *testing.T) {
	_, _, err := runCLI(t, "watch", "--stop")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoDaemon)
}
