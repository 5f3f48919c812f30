// Package config provides configuration loading and defaults for focuswatch.
package config

import "time"

// DefaultConfigDir is the default location for focuswatch configuration.
const DefaultConfigDir = "~/.config/focuswatch"

// DefaultDBName is the filename for the snapshot database.
const DefaultDBName = "focuswatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultRulesFile is looked up in the config directory when no rules file
// is configured. A missing file means the built-in rules.
const DefaultRulesFile = "rules.yaml"

// DefaultTimezone means the system zone.
const DefaultTimezone = "local"

// DefaultDays of zero analyses everything in the input.
const DefaultDays = 0

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultWatch holds the default watch settings.
var DefaultWatch = Watch{
	Debounce:       2 * time.Second,
	ScoreDropAlert: 10,
	FocusAlert:     50,
}
