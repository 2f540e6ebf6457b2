package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alessiobaldini01/Lookback-Pricing/internal/errors"
	"github.com/alessiobaldini01/Lookback-Pricing/internal/pricing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10000, cfg.Simulation.Paths)
	assert.Equal(t, uint64(42), cfg.Simulation.Seed)
	assert.Equal(t, 1.0, cfg.Grid.SpotStep)
	assert.Equal(t, 20, cfg.Grid.Points)
	assert.Equal(t, pricing.DefaultBumps(), cfg.Bumps())
	assert.Equal(t, "pathwise", cfg.Greeks.Method)
	assert.Equal(t, 6, cfg.Output.Precision)
	assert.Equal(t, ";", cfg.Output.Separator)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, `
[simulation]
paths = 500
seed = 7

[grid]
ds = 2.5

[output]
precision = 4
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Simulation.Paths)
	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, 2.5, cfg.Grid.SpotStep)
	assert.Equal(t, 20, cfg.Grid.Points)
	assert.Equal(t, 4, cfg.Output.Precision)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LOOKBACK_SIMULATION_PATHS", "321")
	t.Setenv("LOOKBACK_GREEKS_METHOD", "bump")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 321, cfg.Simulation.Paths)
	assert.Equal(t, "bump", cfg.Greeks.Method)
}

func TestMalformedEnvOverride(t *testing.T) {
	t.Setenv("LOOKBACK_SIMULATION_PATHS", "abc")

	// The built-in configuration ignores the environment.
	assert.Equal(t, 10000, Default().Simulation.Paths)

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.paths")
}

func TestLoadInvalid(t *testing.T) {
	dir := writeConfig(t, `
[simulation]
paths = 0
`)
	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
}

func TestLoadMalformed(t *testing.T) {
	dir := writeConfig(t, "[simulation\npaths = ")
	_, err := Load(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrConfigInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"grid step", func(c *Config) { c.Grid.SpotStep = 0 }},
		{"grid points", func(c *Config) { c.Grid.Points = -1 }},
		{"theta bump", func(c *Config) { c.Greeks.ThetaBump = 0 }},
		{"vol bump", func(c *Config) { c.Greeks.VolBump = -0.01 }},
		{"method", func(c *Config) { c.Greeks.Method = "adjoint" }},
		{"precision", func(c *Config) { c.Output.Precision = 16 }},
		{"separator", func(c *Config) { c.Output.Separator = "" }},
		{"workers", func(c *Config) { c.Sweep.Workers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrConfigInvalid)
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := WriteTemplate(dir, false)
	require.NoError(t, err)
	assert.Equal(t, ConfigFile(dir), path)

	// The template documents the defaults.
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = WriteTemplate(dir, false)
	assert.Error(t, err)

	_, err = WriteTemplate(dir, true)
	assert.NoError(t, err)
}

func TestLogConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.File = true

	lc := cfg.LogConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.Console)
	assert.True(t, lc.File)
	assert.Equal(t, cfg.Log.FilePath, lc.FilePath)
}
