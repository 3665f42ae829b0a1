package app

import (
	"bytes"
	"strings"
	"testing"

	config "github.com/inference-gateway/gridpick/config"
	container "github.com/inference-gateway/gridpick/internal/container"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestPickerApplication_Transport(t *testing.T) {
	tests := []struct {
		name        string
		surfaceType string
		expected    any
		wantErr     bool
	}{
		{name: "default is stdio", surfaceType: "", expected: stdioTransport{}},
		{name: "stdio", surfaceType: SurfaceStdio, expected: stdioTransport{}},
		{name: "web", surfaceType: SurfaceWeb, expected: webTransport{}},
		{name: "unknown", surfaceType: "gtk", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Surface.Type = tt.surfaceType
			a := NewPickerApplication(container.NewServiceContainer(config.DefaultConfig(), nil), strings.NewReader(""), &bytes.Buffer{})

			tr, err := a.transport(cfg)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported surface type")
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expected, tr)
		})
	}
}
