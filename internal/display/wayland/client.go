package wayland

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
	"time"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
)

const (
	captureTimeout = 10 * time.Second
	commandTimeout = 5 * time.Second
)

// Runner executes an external tool. Output holds stdout only, CombinedOutput
// stdout and stderr.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
		return out, fmt.Errorf("%s: %w", strings.TrimSpace(string(exitErr.Stderr)), err)
	}
	return out, err
}

func (execRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// WaylandClient provides Wayland screen control through command-line tools:
// wlr-randr for outputs, grim for capture and ydotool for pointer input
type WaylandClient struct {
	display string
	runner  Runner
}

// NewWaylandClient creates a new Wayland client
func NewWaylandClient(display string) (*WaylandClient, error) {
	return newWaylandClient(display, execRunner{})
}

func newWaylandClient(display string, runner Runner) (*WaylandClient, error) {
	if _, err := runner.LookPath("grim"); err != nil {
		return nil, fmt.Errorf("required tool 'grim' not found in PATH (install with: sudo apt install grim)")
	}
	return &WaylandClient{display: display, runner: runner}, nil
}

// Close is a no-op for command-line tools
func (c *WaylandClient) Close() {}

// ListDisplays parses the enabled outputs reported by wlr-randr
func (c *WaylandClient) ListDisplays(ctx context.Context) ([]domain.Display, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := c.runner.Output(ctx, "wlr-randr")
	if err != nil {
		return nil, fmt.Errorf("wlr-randr failed: %w", err)
	}
	return ParseRandr(string(out))
}

// CaptureScreen captures rect with grim, or every output when rect is empty
func (c *WaylandClient) CaptureScreen(ctx context.Context, rect domain.Rect) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	args := []string{"-"}
	if !rect.Empty() {
		args = []string{"-g", GrimGeometry(rect), "-"}
	}

	out, err := c.runner.Output(ctx, "grim", args...)
	if err != nil {
		return nil, fmt.Errorf("grim failed: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}
	return img, nil
}

// MoveMouse moves the cursor to absolute coordinates with ydotool
func (c *WaylandClient) MoveMouse(ctx context.Context, x, y int) error {
	if _, err := c.runner.LookPath("ydotool"); err != nil {
		return fmt.Errorf("ydotool not found (install with: sudo apt install ydotool)")
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := c.runner.CombinedOutput(ctx, "ydotool", "mousemove", "--absolute", "--",
		strconv.Itoa(x), strconv.Itoa(y))
	if err != nil {
		return fmt.Errorf("ydotool mousemove failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// ClickMouse clicks button with ydotool
func (c *WaylandClient) ClickMouse(ctx context.Context, button domain.MouseButton, clicks int) error {
	if _, err := c.runner.LookPath("ydotool"); err != nil {
		return fmt.Errorf("ydotool not found (install with: sudo apt install ydotool)")
	}
	if clicks < 1 {
		return fmt.Errorf("invalid click count: %d", clicks)
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	code := YdotoolButton(button)
	for i := 0; i < clicks; i++ {
		out, err := c.runner.CombinedOutput(ctx, "ydotool", "click", code)
		if err != nil {
			return fmt.Errorf("ydotool click failed: %s: %w", strings.TrimSpace(string(out)), err)
		}
		if i < clicks-1 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	logger.Debug("ydotool click", "button", button.String(), "clicks", clicks)
	return nil
}

// GrimGeometry formats rect the way grim -g expects: "x,y wxh"
func GrimGeometry(rect domain.Rect) string {
	return fmt.Sprintf("%d,%d %dx%d", rect.X, rect.Y, rect.Width, rect.Height)
}

// YdotoolButton returns the ydotool click code (press and release) for button
func YdotoolButton(button domain.MouseButton) string {
	switch button {
	case domain.MouseButtonMiddle:
		return "0xC2"
	case domain.MouseButtonRight:
		return "0xC1"
	default:
		return "0xC0"
	}
}
