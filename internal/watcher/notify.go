package watcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/focuswatch/internal/output"
)

// levelStyle picks the style used for an alert level.
func levelStyle(level string) lipgloss.Style {
	switch level {
	case LevelCritical:
		return output.StyleError
	case LevelWarning:
		return output.StyleWarning
	default:
		return output.StyleMuted
	}
}

// FormatAlert renders an alert as a single terminal line.
func FormatAlert(a Alert) string {
	tag := "[" + strings.ToUpper(a.Level) + "]"
	if a.Level == "" {
		tag = "[ALERT]"
	}
	stamp := ""
	if !a.Time.IsZero() {
		stamp = output.StyleMuted.Render(a.Time.Format("15:04:05")) + " "
	}
	line := fmt.Sprintf("%s%s %s", stamp, levelStyle(a.Level).Render(tag), output.StyleBold.Render(a.Title))
	if a.Message != "" {
		line += ": " + a.Message
	}
	return line
}

// Notify writes an alert to w as one line.
func Notify(w io.Writer, a Alert) error {
	_, err := fmt.Fprintln(w, FormatAlert(a))
	return err
}

// NotifyTo returns an alert callback that writes every alert to w.
func NotifyTo(w io.Writer) func(Alert) {
	return func(a Alert) {
		_ = Notify(w, a)
	}
}
