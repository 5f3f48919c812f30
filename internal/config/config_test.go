package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultDays, cfg.Days)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultWatch, cfg.Watch)
	assert.Empty(t, cfg.RulesFile)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`timezone: Europe/Berlin
rules_file: /tmp/rules.yaml
days: 7
output:
  color: false
watch:
  debounce: 500ms
  score_drop_alert: 5
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, "/tmp/rules.yaml", cfg.RulesFile)
	assert.Equal(t, "/tmp/rules.yaml", cfg.RulesPath())
	assert.Equal(t, 7, cfg.Days)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, DefaultOutput.Width, cfg.Output.Width)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 5, cfg.Watch.ScoreDropAlert)
	assert.Equal(t, DefaultWatch.FocusAlert, cfg.Watch.FocusAlert)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NegativeDaysClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("days: -3\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Days)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x/y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs", expandPath("/abs"))
	assert.Equal(t, "", expandPath(""))
}

func TestDatabase(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DBPath(), cfg.Database())

	cfg.DBPath = "/tmp/fw.db"
	assert.Equal(t, "/tmp/fw.db", cfg.Database())
}
