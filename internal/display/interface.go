package display

import (
	"context"
	"image"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// DisplayController abstracts display server-specific operations (X11, Wayland, native)
type DisplayController interface {
	// Display operations
	ListDisplays(ctx context.Context) ([]domain.Display, error)
	CaptureScreen(ctx context.Context, region *domain.Rect) (image.Image, error)

	// Mouse operations
	GetCursorPosition(ctx context.Context) (x, y int, err error)
	MoveMouse(ctx context.Context, x, y int) error
	ClickMouse(ctx context.Context, button domain.MouseButton, clicks int) error

	// Lifecycle
	Close() error
}

// Provider creates DisplayController instances for a specific display server/protocol
type Provider interface {
	// GetController creates a new DisplayController for the specified display
	GetController(display string) (DisplayController, error)

	// GetDisplayInfo returns information about the display server/protocol
	GetDisplayInfo() DisplayInfo

	// IsAvailable returns true if this display server is available on the current system
	IsAvailable() bool
}

// DisplayInfo contains metadata about a display server or protocol
type DisplayInfo struct {
	Name              string // "x11", "wayland", "native"
	SupportsRegions   bool
	SupportsMouse     bool
	SupportsMultihead bool
	RequiresElevation bool
}
