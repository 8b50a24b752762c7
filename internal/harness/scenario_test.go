package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "widget_adjust.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "widget_adjust", scenario.Name)
	assert.Len(t, scenario.Steps, 5)
	assert.Equal(t, OpAdd, scenario.Steps[0].Op)
	assert.Equal(t, 2.5, scenario.Steps[0].UnitPrice)
	require.NotNil(t, scenario.Steps[1].Expect)
	require.NotNil(t, scenario.Steps[1].Expect.Quantity)
	assert.Equal(t, 7, *scenario.Steps[1].Expect.Quantity)
	assert.Equal(t, "VALIDATION", scenario.Steps[3].Expect.Error)
	assert.Len(t, scenario.Final, 1)
}

func TestLoadScenario_SeedResolvesRelativeToFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "round_trip.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "seed.csv"), scenario.seedPath())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		match   string
	}{
		{
			name:    "unknown field",
			content: "name: x\ndescription: d\nstep:\n  - op: list\n",
			match:   "failed to parse YAML",
		},
		{
			name:    "missing name",
			content: "description: d\nsteps:\n  - op: list\n",
			match:   "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\nsteps:\n  - op: list\n",
			match:   "description is required",
		},
		{
			name:    "no steps",
			content: "name: x\ndescription: d\nsteps: []\n",
			match:   "steps list is required",
		},
		{
			name:    "unknown op",
			content: "name: x\ndescription: d\nsteps:\n  - op: eval\n",
			match:   `unknown op "eval"`,
		},
		{
			name:    "missing op",
			content: "name: x\ndescription: d\nsteps:\n  - sku: A\n",
			match:   "op is required",
		},
		{
			name:    "missing sku",
			content: "name: x\ndescription: d\nsteps:\n  - op: adjust\n    delta: 1\n",
			match:   "sku is required for adjust",
		},
		{
			name:    "missing path",
			content: "name: x\ndescription: d\nsteps:\n  - op: save\n",
			match:   "path is required for save",
		},
		{
			name:    "absolute path",
			content: "name: x\ndescription: d\nsteps:\n  - op: load\n    path: /etc/passwd\n",
			match:   "must stay inside the work directory",
		},
		{
			name:    "parent path",
			content: "name: x\ndescription: d\nsteps:\n  - op: save\n    path: ../../escape.csv\n",
			match:   "must stay inside the work directory",
		},
		{
			name:    "bad error code",
			content: "name: x\ndescription: d\nsteps:\n  - op: list\n    expect:\n      error: OOPS\n",
			match:   `unknown error code "OOPS"`,
		},
		{
			name:    "missing seed",
			content: "name: x\ndescription: d\nseed: nope.csv\nsteps:\n  - op: list\n",
			match:   "seed file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.match)
		})
	}
}
