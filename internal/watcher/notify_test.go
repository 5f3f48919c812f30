package watcher

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/focuswatch/internal/output"
)

func TestFormatAlert(t *testing.T) {
	output.SetNoColor(true)
	t.Cleanup(func() { output.SetNoColor(false) })

	tests := []struct {
		name     string
		alert    Alert
		expected string
	}{
		{
			name: "critical with time",
			alert: Alert{
				Level:   LevelCritical,
				Title:   "Combined score dropped",
				Message: "Score is 52 (was 74, Needs Work)",
				Time:    time.Date(2024, 3, 4, 14, 5, 9, 0, time.UTC),
			},
			expected: "14:05:09 [CRITICAL] Combined score dropped: Score is 52 (was 74, Needs Work)",
		},
		{
			name:     "no message",
			alert:    Alert{Level: LevelInfo, Title: "Focus recovered"},
			expected: "[INFO] Focus recovered",
		},
		{
			name:     "empty fields",
			alert:    Alert{},
			expected: "[ALERT] ",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAlert(tc.alert))
		})
	}
}

func TestNotifyTo(t *testing.T) {
	output.SetNoColor(true)
	t.Cleanup(func() { output.SetNoColor(false) })

	var buf bytes.Buffer
	emit := NotifyTo(&buf)
	emit(Alert{Level: LevelWarning, Title: "Focus fragmented", Message: "Focus score fell to 40"})
	emit(Alert{Level: LevelInfo, Title: "Loop broken: Code ↔ Slack"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[WARNING] Focus fragmented: Focus score fell to 40", lines[0])
	assert.Equal(t, "[INFO] Loop broken: Code ↔ Slack", lines[1])
}
