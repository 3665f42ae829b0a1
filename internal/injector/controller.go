package injector

import (
	"context"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// ControllerInjector drives the pointer through the active display backend
type ControllerInjector struct {
	controller display.DisplayController
}

var (
	_ domain.PointerInjector = (*ControllerInjector)(nil)
	_ Locator                = (*ControllerInjector)(nil)
)

// Locator reads the current pointer position
type Locator interface {
	Position(ctx context.Context) (domain.Point, error)
}

// NewControllerInjector creates an injector over controller
func NewControllerInjector(controller display.DisplayController) *ControllerInjector {
	return &ControllerInjector{controller: controller}
}

// Move warps the pointer to the absolute point (x, y)
func (c *ControllerInjector) Move(ctx context.Context, x, y int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.controller.MoveMouse(ctx, x, y)
}

// Position reports where the pointer currently is
func (c *ControllerInjector) Position(ctx context.Context) (domain.Point, error) {
	x, y, err := c.controller.GetCursorPosition(ctx)
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: x, Y: y}, nil
}

// Click presses and releases button once at the current pointer position
func (c *ControllerInjector) Click(ctx context.Context, button domain.MouseButton) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.controller.ClickMouse(ctx, button, 1)
}
