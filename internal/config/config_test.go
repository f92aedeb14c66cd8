package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, 10000, c.Defaults.Trials)
	assert.Equal(t, 1000, c.Defaults.Steps)
	assert.Equal(t, 10000, c.Defaults.MaxSteps)
	assert.Equal(t, 50, c.Defaults.Window)
	assert.Equal(t, 64, c.Defaults.Power)
	assert.Equal(t, "info", c.Logging.Level)
	assert.NoError(t, c.Validate())
}

func TestLoadConfigs_Single(t *testing.T) {
	c, err := LoadConfigs(nil, []string{"testdata/experiments.yaml"})
	require.NoError(t, err)

	assert.Equal(t, uint64(77), c.Seed)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 1000, c.Defaults.Steps, "default kept")
	require.Len(t, c.Experiments, 3)

	abs, err := c.Experiments[0].Absorbing()
	require.NoError(t, err)
	require.Len(t, abs.Matrix, 4)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, abs.Matrix[1])
	assert.Equal(t, []float64{1, 0, 0, 0}, abs.Matrix[0], "integers decode as floats")
	assert.Empty(t, abs.Starts)

	erg, err := c.Experiments[1].Ergodic()
	require.NoError(t, err)
	assert.Equal(t, "ramp", erg.Initial)
	assert.Equal(t, 1000, erg.Trials)
	assert.Equal(t, uint64(100), erg.Seed)

	tr, err := c.Experiments[2].Trace()
	require.NoError(t, err)
	require.NotNil(t, tr.Builder)
	assert.Equal(t, "cycle", tr.Builder.Kind)
	assert.Equal(t, 3, tr.Builder.N)
	assert.Equal(t, 0.5, tr.Builder.Hold)
	assert.Equal(t, 5, tr.Every)
}

func TestLoadConfigs_LogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := LoadConfigs(logger, []string{"testdata/experiments.yaml", "testdata/override.yaml"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "file=testdata/experiments.yaml")
	assert.Contains(t, buf.String(), "file=testdata/override.yaml")
}

func TestLoadConfigs_Merge(t *testing.T) {
	c, err := LoadConfigs(nil, []string{"testdata/experiments.yaml", "testdata/override.yaml"})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), c.Seed, "later file wins")
	assert.Equal(t, 2, c.Workers, "unset field keeps earlier value")
	assert.Equal(t, 25, c.Defaults.Window)
	assert.Equal(t, "/tmp/markovsim.prom", c.Metrics.File)
	require.Len(t, c.Experiments, 4)
	assert.Equal(t, "ruin", c.Experiments[3].Name)

	ruin, err := c.Experiments[3].Absorbing()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ruin.Starts)
}

func TestLoadConfigs_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown top-level key", "seeds: 1\n"},
		{"unknown type", "experiments:\n  - name: x\n    type: markov\n    spec: {matrix: [[1]]}\n"},
		{"missing name", "experiments:\n  - type: ergodic\n    spec: {matrix: [[1]]}\n"},
		{"duplicate name", "experiments:\n" +
			"  - {name: a, type: ergodic, spec: {matrix: [[1]]}}\n" +
			"  - {name: a, type: trace, spec: {matrix: [[1]]}}\n"},
		{"unknown spec key", "experiments:\n  - {name: a, type: ergodic, spec: {matrix: [[1]], trails: 5}}\n"},
		{"no chain", "experiments:\n  - {name: a, type: absorbing, spec: {trials: 5}}\n"},
		{"matrix and builder", "experiments:\n  - {name: a, type: trace, spec: {matrix: [[1]], builder: {kind: cycle, n: 2}}}\n"},
		{"initial twice", "experiments:\n  - {name: a, type: ergodic, spec: {matrix: [[1]], initial: ramp, initialWeights: [1]}}\n"},
		{"negative workers", "workers: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigs(nil, []string{writeFile(t, tt.body)})
			require.Error(t, err)
		})
	}
}

func TestLoadConfigs_MissingFile(t *testing.T) {
	_, err := LoadConfigs(nil, []string{filepath.Join(t.TempDir(), "absent.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_WrapsInvalidConfig(t *testing.T) {
	c := Default()
	c.Experiments = []Experiment{{Name: "x", Type: "nope"}}
	require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
}

func TestMarshalYAML_RoundTrip(t *testing.T) {
	c, err := LoadConfigs(nil, []string{"testdata/experiments.yaml"})
	require.NoError(t, err)

	b, err := MarshalYAML(c)
	require.NoError(t, err)

	again, err := LoadConfigs(nil, []string{writeFile(t, string(b))})
	require.NoError(t, err)
	assert.Equal(t, c.Seed, again.Seed)
	assert.Len(t, again.Experiments, len(c.Experiments))
}
