package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSONPreservesOrder(t *testing.T) {
	data := []byte(`{
  "_comment": "later keys lose to earlier ones",
  "zeta": {"weight": 1.0, "apps": ["Editor"], "titles": []},
  "alpha": {"weight": -0.5, "apps": ["Editor", "Player"], "titles": ["movie"]}
}`)

	rs, err := Parse(data)
	require.NoError(t, err)

	rules := rs.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "zeta", rules[0].Name)
	assert.Equal(t, "alpha", rules[1].Name)

	cat, w := rs.Categorize("Editor", "movie")
	assert.Equal(t, "zeta", cat)
	assert.Equal(t, 1.0, w)

	cat, _ = rs.Categorize("Player", "")
	assert.Equal(t, "alpha", cat)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
deep_work:
  weight: 1
  apps: [Terminal]
_notes: ignored
entertainment:
  weight: -0.5
  titles: [YouTube]
`)
	rs, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Len())

	cat, w := rs.Categorize("Safari", "YouTube - cats")
	assert.Equal(t, "entertainment", cat)
	assert.Equal(t, -0.5, w)
}

func TestParse_EmptyPatternIsCatchAll(t *testing.T) {
	rs, err := Parse([]byte("focus:\n  weight: 1\n  apps: [Code]\nrest:\n  weight: 0\n  apps: [\"\"]\n"))
	require.NoError(t, err)

	cat, _ := rs.Categorize("Code", "")
	assert.Equal(t, "focus", cat)
	cat, w := rs.Categorize("Spotify", "")
	assert.Equal(t, "rest", cat)
	assert.Equal(t, 0.0, w)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"only comments", `{"_a": 1}`},
		{"sequence root", `[1, 2]`},
		{"bad weight", `{"x": {"weight": "heavy"}}`},
		{"duplicate", "a: {weight: 1}\na: {weight: 2}\n"},
		{"syntax", `{"x": `},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FallsBackToDefaults(t *testing.T) {
	rs, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	require.NotNil(t, rs)
	assert.Equal(t, Default().Len(), rs.Len())

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	rs, err = Load(bad)
	require.Error(t, err)
	assert.Equal(t, Default().Rules(), rs.Rules())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"work": {"weight": 0.7, "apps": ["Xcode"]}}`), 0o644))

	rs, err := Load(path)
	require.NoError(t, err)
	cat, w := rs.Categorize("Xcode", "")
	assert.Equal(t, "work", cat)
	assert.Equal(t, 0.7, w)
}
