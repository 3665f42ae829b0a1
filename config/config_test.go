package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, domain.GridConfig{Rows: 6, Cols: 10}, cfg.Grid)
	assert.Equal(t, 3.0, cfg.Zoom.Factor)
	assert.Equal(t, 0.5, cfg.Zoom.Padding)
	assert.Equal(t, "largest", cfg.Display.Policy)
	assert.Equal(t, 3*time.Second, cfg.Dispatch.Cooldown)
	assert.Equal(t, "left", cfg.Dispatch.Button)
	assert.Empty(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, errs, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
grid:
  rows: 4
  cols: 8
zoom:
  factor: 4
  padding: 0.25
dispatch:
  cooldown: 750ms
  button: right
`)

	cfg, errs, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Empty(t, errs)

	assert.Equal(t, domain.GridConfig{Rows: 4, Cols: 8}, cfg.Grid)
	assert.Equal(t, 4.0, cfg.Zoom.Factor)
	assert.Equal(t, 0.25, cfg.Zoom.Padding)
	assert.Equal(t, 750*time.Millisecond, cfg.Dispatch.Cooldown)
	assert.Equal(t, "right", cfg.Dispatch.Button)
	assert.Equal(t, "nearest", cfg.Zoom.Interpolation, "unset keys keep defaults")
}

func TestLoad_InvalidKeysFallBackPerKey(t *testing.T) {
	path := writeConfig(t, `
grid:
  rows: 0
  cols: 12
zoom:
  factor: 3
  padding: -1
`)

	cfg, errs, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"grid.rows", "zoom.padding"}, errs.Keys())
	assert.Equal(t, 6, cfg.Grid.Rows)
	assert.Equal(t, 12, cfg.Grid.Cols)
	assert.Equal(t, 0.5, cfg.Zoom.Padding)
}

func TestLoad_UndecodableSectionFallsBack(t *testing.T) {
	path := writeConfig(t, `
grid:
  rows: lots
  cols: 5
zoom:
  factor: 2
`)

	cfg, errs, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Contains(t, errs.Keys(), "grid")
	assert.Equal(t, domain.GridConfig{Rows: 6, Cols: 10}, cfg.Grid)
	assert.Equal(t, 2.0, cfg.Zoom.Factor)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GRIDPICK_GRID_ROWS", "9")
	t.Setenv("GRIDPICK_DISPATCH_BACKEND", "dry-run")

	cfg, _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Grid.Rows)
	assert.Equal(t, "dry-run", cfg.Dispatch.Backend)
}

func TestLoad_DotEnvNextToConfig(t *testing.T) {
	path := writeConfig(t, "grid:\n  rows: 5\n")
	envPath := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("GRIDPICK_GRID_COLS=7\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("GRIDPICK_GRID_COLS") })

	cfg, _, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Grid.Rows)
	assert.Equal(t, 7, cfg.Grid.Cols)
}

func TestLoad_UnparsableFile(t *testing.T) {
	path := writeConfig(t, "grid: [rows\n")

	_, _, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	original := DefaultConfig()
	original.Grid.Rows = 3
	original.Dispatch.Cooldown = 1500 * time.Millisecond
	require.NoError(t, original.SaveConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cooldown: 1.5s")

	loaded, errs, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, original, loaded)
}

func TestDefaultKeys(t *testing.T) {
	keys := DefaultKeys()

	assert.Equal(t, 6, keys["grid.rows"])
	assert.Equal(t, "3s", keys["dispatch.cooldown"])
	assert.Contains(t, SortedKeys(), "surface.web.port")
}
