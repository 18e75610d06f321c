package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dla-sim/parameter"
	"github.com/lixenwraith/dla-sim/render"
)

// execute runs the root command with args and returns stdout and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func configParams(t *testing.T, args ...string) parameter.Params {
	t.Helper()
	out, _, err := execute(t, append([]string{"config"}, args...)...)
	require.NoError(t, err)
	p, err := parameter.UnmarshalSnapshot([]byte(out))
	require.NoError(t, err)
	return p
}

func TestConfigDefaults(t *testing.T) {
	out, _, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "particle_count: 5000")
	assert.Equal(t, parameter.Default(), configParams(t))
}

func TestFlagsOverride(t *testing.T) {
	p := configParams(t,
		"--particles", "300",
		"--stickiness", "0.5",
		"--seed", "ring",
		"--speed", "12",
		"--spawn", "edges",
		"--scheme", "fire",
		"--set", "boundary=wrap",
		"--set", "walk-angle=90",
	)
	assert.Equal(t, 300, p.ParticleCount)
	assert.Equal(t, 0.5, p.BaseStickiness)
	assert.Equal(t, parameter.SeedRing, p.SeedPattern)
	assert.Equal(t, 12, p.StepsPerFrame)
	assert.Equal(t, parameter.SpawnEdges, p.SpawnMode)
	assert.Equal(t, parameter.SchemeFire, p.ColorScheme)
	assert.Equal(t, parameter.BoundaryWrap, p.Boundary)
	assert.Equal(t, 90.0, p.WalkAngle)
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"particles out of range", []string{"--particles", "5"}},
		{"unknown seed", []string{"--seed", "spiral"}},
		{"set without equals", []string{"--set", "boundary"}},
		{"set unknown name", []string{"--set", "gravity=1"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"unknown preset", []string{"--preset", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"config"}, tt.args...)...)
			assert.Error(t, err)
		})
	}

	_, _, err := execute(t, "config", "--particles", "5")
	var ip *parameter.InvalidParamError
	require.True(t, errors.As(err, &ip))
	assert.Equal(t, "particle_count", ip.Name)
}

func TestPresetThenFlags(t *testing.T) {
	p := configParams(t, "--preset", "dense", "--particles", "200")
	assert.Equal(t, parameter.Moore, p.Neighborhood, "from the preset")
	assert.Equal(t, 2, p.MultiContact)
	assert.Equal(t, 200, p.ParticleCount, "flags win over the preset")
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	saved := configParams(t, "--save-config", path, "--boundary", "bounce", "--set", "highlight=10")

	_, err := os.Stat(path)
	require.NoError(t, err)

	loaded := configParams(t, "--config", path)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, parameter.BoundaryBounce, loaded.Boundary)
	assert.Equal(t, 10, loaded.Highlight)
}

func TestPresetsCommands(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "presets", "--preset-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Classic")
	assert.Contains(t, out, "builtin")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), len(parameter.Builtins()))

	_, _, err = execute(t, "presets", "save", "My Tree", "-d", "wide", "--preset-dir", dir, "--particles", "400")
	require.NoError(t, err)

	out, _, err = execute(t, "presets", "--preset-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "My Tree")
	assert.Contains(t, out, "user")

	p := configParams(t, "--preset-dir", dir, "--preset", "my tree")
	assert.Equal(t, 400, p.ParticleCount)

	_, _, err = execute(t, "presets", "save", "classic", "--preset-dir", dir)
	assert.Error(t, err, "built-in names are reserved")

	_, _, err = execute(t, "presets", "delete", "My Tree", "--preset-dir", dir)
	require.NoError(t, err)
	out, _, err = execute(t, "presets", "--preset-dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "My Tree")
}

func TestRenderHeadless(t *testing.T) {
	out, errOut, err := execute(t, "render",
		"--cols", "12", "--rows", "5",
		"--particles", "100",
		"--spawn", "top",
		"--boundary", "stick",
		"--rng-seed", "7",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, out, "\x1b[38;2;")

	dots := 0
	for _, r := range out {
		if m, ok := render.MaskOf(r); ok {
			for ; m != 0; m &= m - 1 {
				dots++
			}
		}
	}
	assert.Equal(t, 100, dots, "every attached dot is drawn")
	assert.Contains(t, errOut, "particles 100/100")
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.txt")
	out, _, err := execute(t, "render", "--cols", "10", "--rows", "4", "--max-steps", "10", "-o", path, "--rng-seed", "1")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), 4)
}

func TestTerminalSizeExplicit(t *testing.T) {
	cols, rows := terminalSize(33, 9)
	assert.Equal(t, 33, cols)
	assert.Equal(t, 9, rows)

	cols, rows = terminalSize(0, 9)
	assert.Positive(t, cols)
	assert.Equal(t, 9, rows)
}

func TestRenderColorModes(t *testing.T) {
	out, _, err := execute(t, "render", "--cols", "10", "--rows", "4", "--max-steps", "1", "--color", "none", "--rng-seed", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b")
	assert.Contains(t, out, "⠁", "point seed at the center cell")

	_, _, err = execute(t, "render", "--cols", "10", "--rows", "4", "--color", "sixteen")
	assert.Error(t, err)
}
