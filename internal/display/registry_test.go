package display

import (
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

type stubProvider struct {
	name      string
	available bool
}

func (p stubProvider) GetController(string) (DisplayController, error) { return nil, nil }

func (p stubProvider) GetDisplayInfo() DisplayInfo { return DisplayInfo{Name: p.name} }

func (p stubProvider) IsAvailable() bool { return p.available }

func withProviders(t *testing.T, providers ...Provider) {
	t.Helper()
	saved := GetAllProviders()
	ClearProviders()
	for _, p := range providers {
		Register(p)
	}
	t.Cleanup(func() {
		ClearProviders()
		for _, p := range saved {
			Register(p)
		}
	})
}

func TestSelectProvider(t *testing.T) {
	tests := []struct {
		name      string
		providers []Provider
		server    string
		expected  string
		wantErr   string
	}{
		{
			name:      "auto picks first available",
			providers: []Provider{stubProvider{"x11", false}, stubProvider{"wayland", true}, stubProvider{"native", true}},
			server:    AutoDetect,
			expected:  "wayland",
		},
		{
			name:      "empty means auto",
			providers: []Provider{stubProvider{"x11", true}},
			expected:  "x11",
		},
		{
			name:      "named provider",
			providers: []Provider{stubProvider{"x11", true}, stubProvider{"wayland", true}},
			server:    "wayland",
			expected:  "wayland",
		},
		{
			name:      "unregistered name",
			providers: []Provider{stubProvider{"x11", true}},
			server:    "quartz",
			wantErr:   "not registered",
		},
		{
			name:      "named but unavailable",
			providers: []Provider{stubProvider{"x11", false}},
			server:    "x11",
			wantErr:   "not available",
		},
		{
			name:      "nothing available",
			providers: []Provider{stubProvider{"x11", false}},
			server:    AutoDetect,
			wantErr:   "no compatible display server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProviders(t, tt.providers...)

			p, err := SelectProvider(tt.server)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.GetDisplayInfo().Name)
		})
	}
}

func TestGetAllProviders_DetectionOrder(t *testing.T) {
	withProviders(t,
		stubProvider{"native", true},
		stubProvider{"x11", true},
		stubProvider{"custom", true},
		stubProvider{"wayland", false},
		stubProvider{"x11", false},
	)

	var names []string
	for _, p := range GetAllProviders() {
		names = append(names, p.GetDisplayInfo().Name)
	}
	assert.Equal(t, []string{"wayland", "x11", "native", "custom"}, names)

	p, err := DetectDisplay()
	require.NoError(t, err)
	assert.Equal(t, "native", p.GetDisplayInfo().Name, "re-registered x11 is unavailable")
}

func TestGetProvider(t *testing.T) {
	withProviders(t, stubProvider{"x11", true})

	assert.NotNil(t, GetProvider("x11"))
	assert.Nil(t, GetProvider("wayland"))
	assert.Len(t, GetAllProviders(), 1)
}
