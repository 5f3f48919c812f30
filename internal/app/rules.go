package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/focuswatch/internal/category"
	"github.com/blackwell-systems/focuswatch/internal/output"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective category rules in match order",
	Long: `Print the ordered category rule set that analyze, report, track, and watch
use. Rules are tried top to bottom; for each rule, app patterns are checked
before title patterns. The first match wins.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

// rulesOutput is the JSON form of the rules command.
type rulesOutput struct {
	Source string          `json:"source"`
	Rules  []category.Rule `json:"rules"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	rules := engineOptions(cfg).Rules
	source := cfg.RulesPath()
	if source == "" {
		source = "built-in defaults"
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, rulesOutput{Source: source, Rules: rules.Rules()})
	}

	fmt.Fprintln(w, output.Section("Category Rules"))
	fmt.Fprintln(w, output.KeyValue("Source", source))
	fmt.Fprintln(w)

	tbl := output.NewTable("#", "Category", "Weight", "Apps", "Titles").
		SetMaxWidth(3, 40).
		SetMaxWidth(4, 40)
	for i, r := range rules.Rules() {
		tbl.AddRow(
			fmt.Sprintf("%d", i+1),
			output.WeightStyle(r.Weight).Render(r.Name),
			fmt.Sprintf("%+.1f", r.Weight),
			strings.Join(r.Apps, ", "),
			strings.Join(r.Titles, ", "),
		)
	}
	tbl.Fprint(w)
	return nil
}
