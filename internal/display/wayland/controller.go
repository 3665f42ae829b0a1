package wayland

import (
	"context"
	"fmt"
	"image"
	"os"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Controller wraps WaylandClient to implement display.DisplayController
type Controller struct {
	client *WaylandClient
}

var _ display.DisplayController = (*Controller)(nil)

// ListDisplays enumerates the enabled outputs
func (c *Controller) ListDisplays(ctx context.Context) ([]domain.Display, error) {
	return c.client.ListDisplays(ctx)
}

// CaptureScreen captures region, or every output when region is nil
func (c *Controller) CaptureScreen(ctx context.Context, region *domain.Rect) (image.Image, error) {
	if region == nil {
		return c.client.CaptureScreen(ctx, domain.Rect{})
	}
	return c.client.CaptureScreen(ctx, *region)
}

// GetCursorPosition is not supported: Wayland does not expose the pointer
func (c *Controller) GetCursorPosition(ctx context.Context) (x, y int, err error) {
	return 0, 0, fmt.Errorf("getting cursor position is not supported on Wayland")
}

// MoveMouse moves the cursor to the specified coordinates
func (c *Controller) MoveMouse(ctx context.Context, x, y int) error {
	return c.client.MoveMouse(ctx, x, y)
}

// ClickMouse clicks the specified mouse button
func (c *Controller) ClickMouse(ctx context.Context, button domain.MouseButton, clicks int) error {
	return c.client.ClickMouse(ctx, button, clicks)
}

// Close closes the Wayland client
func (c *Controller) Close() error {
	c.client.Close()
	return nil
}

// Provider implements the display.Provider interface for Wayland
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new Wayland provider
func NewProvider() *Provider {
	return &Provider{}
}

// GetController creates a controller for the named Wayland display
func (p *Provider) GetController(name string) (display.DisplayController, error) {
	if name == "" || name == ":0" {
		name = os.Getenv("WAYLAND_DISPLAY")
	}
	client, err := NewWaylandClient(name)
	if err != nil {
		return nil, err
	}
	return &Controller{client: client}, nil
}

// GetDisplayInfo returns information about the Wayland platform
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{
		Name:              "wayland",
		SupportsRegions:   true,
		SupportsMouse:     true,
		SupportsMultihead: true,
		RequiresElevation: true,
	}
}

// IsAvailable returns true if Wayland is available on the current system
func (p *Provider) IsAvailable() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// registered before x11 so that XWayland sessions prefer the native tools
func init() {
	display.Register(NewProvider())
}
