//go:build !darwin && !windows

package native

import (
	"fmt"

	display "github.com/inference-gateway/gridpick/internal/display"
)

// Provider is a stub on platforms served by the x11 and wayland backends
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates the stub provider
func NewProvider() *Provider {
	return &Provider{}
}

// GetController always fails on this platform
func (p *Provider) GetController(name string) (display.DisplayController, error) {
	return nil, fmt.Errorf("native display backend not available on this system")
}

// GetDisplayInfo returns information about the native platform
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{Name: "native"}
}

// IsAvailable is always false on this platform
func (p *Provider) IsAvailable() bool {
	return false
}

// No init(): the stub is not registered
