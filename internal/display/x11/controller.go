package x11

import (
	"context"
	"image"
	"os"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Controller wraps X11Client to implement display.DisplayController
type Controller struct {
	client *X11Client
}

var _ display.DisplayController = (*Controller)(nil)

// ListDisplays enumerates the attached monitors
func (c *Controller) ListDisplays(ctx context.Context) ([]domain.Display, error) {
	return c.client.ListDisplays()
}

// CaptureScreen captures region, or the whole root window when region is nil
func (c *Controller) CaptureScreen(ctx context.Context, region *domain.Rect) (image.Image, error) {
	if region == nil {
		return c.client.CaptureScreen(domain.Rect{})
	}
	return c.client.CaptureScreen(*region)
}

// GetCursorPosition returns the current cursor position
func (c *Controller) GetCursorPosition(ctx context.Context) (x, y int, err error) {
	return c.client.GetCursorPosition()
}

// MoveMouse moves the cursor to the specified coordinates
func (c *Controller) MoveMouse(ctx context.Context, x, y int) error {
	return c.client.MoveMouse(x, y)
}

// ClickMouse clicks the specified mouse button
func (c *Controller) ClickMouse(ctx context.Context, button domain.MouseButton, clicks int) error {
	return c.client.ClickMouse(button, clicks)
}

// Close closes the X11 connection
func (c *Controller) Close() error {
	c.client.Close()
	return nil
}

// Provider implements the display.Provider interface for X11
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new X11 provider
func NewProvider() *Provider {
	return &Provider{}
}

// GetController connects to the named X display
func (p *Provider) GetController(name string) (display.DisplayController, error) {
	if name == "" {
		name = os.Getenv("DISPLAY")
	}
	client, err := NewX11Client(name)
	if err != nil {
		return nil, err
	}
	return &Controller{client: client}, nil
}

// GetDisplayInfo returns information about the X11 platform
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{
		Name:              "x11",
		SupportsRegions:   true,
		SupportsMouse:     true,
		SupportsMultihead: true,
		RequiresElevation: false,
	}
}

// IsAvailable returns true if X11 is available on the current system
func (p *Provider) IsAvailable() bool {
	// Wayland takes priority when both are set (XWayland)
	return os.Getenv("DISPLAY") != "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

func init() {
	display.Register(NewProvider())
}
