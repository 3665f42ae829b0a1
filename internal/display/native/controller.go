//go:build darwin || windows

package native

import (
	"context"
	"fmt"
	"image"
	"time"

	robotgo "github.com/go-vgo/robotgo"
	screenshot "github.com/kbinani/screenshot"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Controller implements display.DisplayController with robotgo for pointer
// input and kbinani/screenshot for enumeration and capture
type Controller struct{}

var _ display.DisplayController = (*Controller)(nil)

// ListDisplays enumerates the active displays
func (c *Controller) ListDisplays(ctx context.Context) ([]domain.Display, error) {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return toDisplays(bounds), nil
}

// CaptureScreen captures region, or the union of all displays when nil
func (c *Controller) CaptureScreen(ctx context.Context, region *domain.Rect) (image.Image, error) {
	var rect image.Rectangle
	if region != nil {
		rect = region.Image()
	} else {
		for i := 0; i < screenshot.NumActiveDisplays(); i++ {
			rect = rect.Union(screenshot.GetDisplayBounds(i))
		}
	}

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

// GetCursorPosition returns the current cursor position
func (c *Controller) GetCursorPosition(ctx context.Context) (x, y int, err error) {
	x, y = robotgo.Location()
	return x, y, nil
}

// MoveMouse moves the cursor to the absolute coordinates
func (c *Controller) MoveMouse(ctx context.Context, x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// ClickMouse clicks button at the current position
func (c *Controller) ClickMouse(ctx context.Context, button domain.MouseButton, clicks int) error {
	if clicks < 1 || clicks > 3 {
		return fmt.Errorf("invalid click count: %d (must be 1-3)", clicks)
	}
	for i := range clicks {
		if i > 0 {
			time.Sleep(100 * time.Millisecond)
		}
		robotgo.Click(robotButton(button), false)
	}
	return nil
}

// Close is a no-op for robotgo
func (c *Controller) Close() error {
	return nil
}

// Provider implements display.Provider for macOS and Windows
type Provider struct{}

var _ display.Provider = (*Provider)(nil)

// NewProvider creates a new native provider
func NewProvider() *Provider {
	return &Provider{}
}

// GetController returns the native controller; name is ignored
func (p *Provider) GetController(name string) (display.DisplayController, error) {
	return &Controller{}, nil
}

// GetDisplayInfo returns information about the native platform
func (p *Provider) GetDisplayInfo() display.DisplayInfo {
	return display.DisplayInfo{
		Name:              "native",
		SupportsRegions:   true,
		SupportsMouse:     true,
		SupportsMultihead: true,
		RequiresElevation: true,
	}
}

// IsAvailable reports whether at least one display is active
func (p *Provider) IsAvailable() bool {
	return screenshot.NumActiveDisplays() > 0
}

func init() {
	display.Register(NewProvider())
}
