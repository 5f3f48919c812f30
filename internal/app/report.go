package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/output"
	"github.com/blackwell-systems/focuswatch/internal/report"
)

var (
	reportDays   int
	reportRender bool
)

var reportCmd = &cobra.Command{
	Use:   "report FILE...",
	Short: "Print a Markdown focus report",
	Long: `Analyze activity exports and print a weekly focus report as Markdown:
scores, time by category, browser activity, context-switching patterns,
insights, and one change for next week.

Examples:
  focuswatch report week.csv > report.md
  focuswatch report week.csv --render`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportDays, "days", 0, "Only analyze the trailing N days (default: config, 0 = all)")
	reportCmd.Flags().BoolVar(&reportRender, "render", false, "Render the Markdown for the terminal")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	summary, err := analyzeFiles(cmd.Context(), cfg, args, effectiveDays(reportDays, cfg))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if !reportRender {
		_, err := fmt.Fprintln(w, report.Markdown(summary))
		return err
	}

	rendered, err := report.Render(summary, cfg.Output.Width, output.IsNoColor())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
