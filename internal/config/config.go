package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level focuswatch configuration.
type Config struct {
	// Timezone is an IANA zone name, or "local".
	Timezone string `mapstructure:"timezone"`

	// RulesFile points at a JSON or YAML category rule file.
	RulesFile string `mapstructure:"rules_file"`

	// Days limits analysis to the trailing N days. Zero means all.
	Days int `mapstructure:"days"`

	// DBPath overrides the snapshot database location.
	DBPath string `mapstructure:"db_path"`

	Output Output `mapstructure:"output"`
	Watch  Watch  `mapstructure:"watch"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Watch defines the watch command's behaviour.
type Watch struct {
	// Debounce is how long to wait after the last file change before
	// re-analysing.
	Debounce time.Duration `mapstructure:"debounce"`

	// ScoreDropAlert is the combined score drop that raises an alert.
	ScoreDropAlert int `mapstructure:"score_drop_alert"`

	// FocusAlert is the focus score below which an alert is raised.
	FocusAlert int `mapstructure:"focus_alert"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("timezone", DefaultTimezone)
	v.SetDefault("rules_file", "")
	v.SetDefault("days", DefaultDays)
	v.SetDefault("db_path", "")
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("watch.debounce", DefaultWatch.Debounce)
	v.SetDefault("watch.score_drop_alert", DefaultWatch.ScoreDropAlert)
	v.SetDefault("watch.focus_alert", DefaultWatch.FocusAlert)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.RulesFile = expandPath(cfg.RulesFile)
	cfg.DBPath = expandPath(cfg.DBPath)
	if cfg.Days < 0 {
		cfg.Days = 0
	}

	return &cfg, nil
}

// RulesPath returns the rules file to load: the configured one, else
// rules.yaml in the config directory when it exists, else "".
func (c *Config) RulesPath() string {
	if c.RulesFile != "" {
		return c.RulesFile
	}
	p := filepath.Join(ConfigDir(), DefaultRulesFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Database returns the snapshot database path.
func (c *Config) Database() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DBPath()
}

// DBPath returns the default path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
