// Package app contains the Cobra command tree for focuswatch.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/focuswatch/internal/config"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor  bool
	flagJSON     bool
	flagVerbose  bool
	flagConfig   string
	flagTimezone string
	flagRules    string
)

// Set up by the root PersistentPreRunE for every command.
var (
	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "focuswatch",
	Short: "Productivity and focus analysis for desktop activity logs",
	Long: `focuswatch reads desktop activity exports (CSV or JSON) and reports where
your time went: category totals, productive hours, context-switching death
loops, AI-assisted workflows, and a single change worth making next week.

Run 'focuswatch analyze export.csv' to get started.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/focuswatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA timezone for hour and day buckets (default: config, then system)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Category rule file (JSON or YAML)")
}

// setup loads configuration, builds the logger and decides on colour.
func setup(cmd *cobra.Command, _ []string) error {
	log = newLogger(cmd.ErrOrStderr(), flagVerbose)

	c, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagTimezone != "" {
		c.Timezone = flagTimezone
	}
	if flagRules != "" {
		c.RulesFile = flagRules
	}
	cfg = c

	output.SetNoColor(flagNoColor || !c.Output.Color || !isTerminal(cmd.OutOrStdout()))
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
