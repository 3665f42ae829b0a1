package container

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	config "github.com/inference-gateway/gridpick/config"
	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	injector "github.com/inference-gateway/gridpick/internal/injector"
	zoom "github.com/inference-gateway/gridpick/internal/zoom"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestSettingsFrom(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Grid = domain.GridConfig{Rows: 4, Cols: 5}
	cfg.Zoom.Factor = 2.5
	cfg.Zoom.Padding = 0.25
	cfg.Zoom.Interpolation = "catmullrom"
	cfg.Zoom.MaxViewportWidth = 800
	cfg.Zoom.MaxViewportHeight = 600
	cfg.Dispatch.Button = "right"
	cfg.Dispatch.Cooldown = 750 * time.Millisecond
	cfg.Dispatch.Timeout = 2 * time.Second

	settings := SettingsFrom(cfg)

	assert.Equal(t, domain.GridConfig{Rows: 4, Cols: 5}, settings.Grid)
	assert.Equal(t, 2.5, settings.ZoomFactor)
	assert.Equal(t, 0.25, settings.Padding)
	assert.Equal(t, domain.Size{Width: 800, Height: 600}, settings.MaxViewport)
	assert.Equal(t, domain.MouseButtonRight, settings.Button)
	assert.Equal(t, zoom.InterpolationCatmullRom, settings.Interpolation)
	assert.Equal(t, 750*time.Millisecond, settings.Cooldown)
	assert.Equal(t, 2*time.Second, settings.Timeout)
}

func TestPolicyFrom(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		index    int
		expected display.Policy
	}{
		{"largest", "largest", 0, display.Largest()},
		{"index", "index", 2, display.AtIndex(2)},
		{"primary", "primary", 0, display.Policy{Kind: display.PolicyPrimary}},
		{"unknown falls back", "smallest", 0, display.Largest()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Display.Policy = tt.policy
			cfg.Display.Index = tt.index
			assert.Equal(t, tt.expected, PolicyFrom(cfg))
		})
	}
}

func TestGetInjector_DryRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dispatch.Backend = BackendDryRun
	cfg.Dispatch.RateLimit.Enabled = false

	c := NewServiceContainer(cfg, nil)
	var out bytes.Buffer
	c.DryRunOutput = &out

	inj, err := c.GetInjector()
	require.NoError(t, err)
	require.IsType(t, &injector.DryRunInjector{}, inj)
	assert.True(t, c.isDryRun(), "completions are reported as dry runs")

	again, err := c.GetInjector()
	require.NoError(t, err)
	assert.Same(t, inj, again)

	ctx := context.Background()
	require.NoError(t, inj.Move(ctx, 10, 20))
	require.NoError(t, inj.Click(ctx, domain.MouseButtonLeft))
	assert.Equal(t, "xdotool mousemove 10 20\nxdotool click 1\n", out.String())
}

func TestGetInjector_RateLimited(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dispatch.Backend = BackendDryRun
	cfg.Dispatch.RateLimit = config.RateLimitConfig{Enabled: true, MaxActionsPerMinute: 1, WindowSeconds: 60}

	c := NewServiceContainer(cfg, nil)
	inj, err := c.GetInjector()
	require.NoError(t, err)
	require.IsType(t, &injector.RateLimited{}, inj)

	ctx := context.Background()
	require.NoError(t, inj.Click(ctx, domain.MouseButtonLeft))
	assert.Error(t, inj.Click(ctx, domain.MouseButtonLeft))
}

func TestGetInjector_XdotoolMissing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dispatch.Backend = BackendXdotool
	cfg.Dispatch.XdotoolPath = filepath.Join(t.TempDir(), "no-such-xdotool")

	_, err := NewServiceContainer(cfg, nil).GetInjector()
	assert.ErrorContains(t, err, "xdotool not found")
}

func TestGetLocator(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr string
	}{
		{name: "dry run has no pointer", backend: BackendDryRun, wantErr: "cannot read the pointer position"},
		{name: "xdotool missing", backend: BackendXdotool, wantErr: "xdotool not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Dispatch.Backend = tt.backend
			cfg.Dispatch.XdotoolPath = filepath.Join(t.TempDir(), "no-such-xdotool")

			_, err := NewServiceContainer(cfg, nil).GetLocator()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetJournal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Type = "jsonl"
	cfg.Storage.JSONL.Path = filepath.Join(t.TempDir(), "dispatches.jsonl")

	c := NewServiceContainer(cfg, nil)
	journal, err := c.GetJournal()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))
	require.NoError(t, journal.Record(ctx, domain.DispatchRecord{ID: "r1", Button: "left", Success: true, CreatedAt: time.Now()}))

	records, err := journal.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)

	require.NoError(t, c.Close())
}

func TestGetConfig_IsSnapshot(t *testing.T) {
	c := NewServiceContainer(config.DefaultConfig(), nil)

	snapshot := c.GetConfig()
	snapshot.Grid.Rows = 99

	assert.Equal(t, 6, c.GetConfig().Grid.Rows)
	assert.Equal(t, 6, c.Settings().Grid.Rows)
}
