// Package category holds the ordered productivity rule set and the categorizer
// that maps an (app, title) pair to a category and weight.
package category

import "strings"

// Uncategorized is returned when no rule matches.
const Uncategorized = "uncategorized"

// Rule is a single category definition. Patterns are matched as
// case-insensitive substrings.
type Rule struct {
	Name   string   `json:"name" yaml:"name"`
	Weight float64  `json:"weight" yaml:"weight"`
	Apps   []string `json:"apps" yaml:"apps"`
	Titles []string `json:"titles" yaml:"titles"`
}

// RuleSet is an ordered list of rules. Order is match priority: the first
// rule whose app or title patterns match wins.
type RuleSet struct {
	rules []Rule

	// lowered patterns, parallel to rules
	apps   [][]string
	titles [][]string
}

// NewRuleSet builds a RuleSet from rules in priority order. The input slice
// is copied.
func NewRuleSet(rules []Rule) *RuleSet {
	rs := &RuleSet{
		rules:  make([]Rule, len(rules)),
		apps:   make([][]string, len(rules)),
		titles: make([][]string, len(rules)),
	}
	copy(rs.rules, rules)
	for i, r := range rs.rules {
		rs.apps[i] = lowerAll(r.Apps)
		rs.titles[i] = lowerAll(r.Titles)
	}
	return rs
}

// Rules returns a copy of the rules in priority order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Categorize returns the category name and weight for an activity. For each
// rule in order, app patterns are checked before title patterns.
func (rs *RuleSet) Categorize(app, title string) (string, float64) {
	appLower := strings.ToLower(app)
	titleLower := strings.ToLower(title)

	for i, r := range rs.rules {
		for _, p := range rs.apps[i] {
			if strings.Contains(appLower, p) {
				return r.Name, r.Weight
			}
		}
		for _, p := range rs.titles[i] {
			if strings.Contains(titleLower, p) {
				return r.Name, r.Weight
			}
		}
	}
	return Uncategorized, 0
}

// Weight returns the weight of the named category, or 0 if it is unknown.
func (rs *RuleSet) Weight(name string) float64 {
	for _, r := range rs.rules {
		if r.Name == name {
			return r.Weight
		}
	}
	return 0
}

// lowerAll lowercases patterns. An empty pattern is kept and matches every
// activity, as a substring test would.
func lowerAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToLower(p)
	}
	return out
}

// Category groups used by the analyzer and insight generator.
var (
	// Productive categories count toward productive time per hour and day.
	Productive = []string{"deep_work", "ai_tools", "development", "writing", "design"}

	// Drains are categories reported as productivity drains.
	Drains = []string{"entertainment", "social_media", "news"}

	// Distracting categories mark a death loop as distracting and block AI
	// tagging of a switch.
	Distracting = []string{"communication_personal", "social_media", "entertainment"}

	// Inert categories are excluded from the productivity accumulators.
	Inert = []string{"system", "browser_idle"}

	// Dev categories make a death loop productive when both apps belong.
	Dev = []string{"deep_work", "development"}
)

// In reports whether name is one of set.
func In(name string, set []string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}
