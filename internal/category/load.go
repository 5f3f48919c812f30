package category

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoRules is returned when a rule file parses but defines no categories.
var ErrNoRules = errors.New("rule file defines no categories")

// ruleSpec is the on-disk shape of one category.
type ruleSpec struct {
	Weight float64  `yaml:"weight"`
	Apps   []string `yaml:"apps"`
	Titles []string `yaml:"titles"`
}

// Load reads a rule file mapping category name to {weight, apps, titles}.
// JSON and YAML are both accepted; key order in the file becomes match
// priority. Keys starting with "_" are comments.
//
// On any failure Load returns the default rule set together with the error,
// so callers can warn and continue.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading rule file: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes rule file contents, preserving mapping order.
func Parse(data []byte) (*RuleSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrNoRules
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping of categories, got %s", kindName(root.Kind))
	}

	var rules []Rule
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		name := key.Value
		if strings.HasPrefix(name, "_") {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true

		var spec ruleSpec
		if err := val.Decode(&spec); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		rules = append(rules, Rule{
			Name:   name,
			Weight: spec.Weight,
			Apps:   spec.Apps,
			Titles: spec.Titles,
		})
	}

	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	return NewRuleSet(rules), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
