package injector

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
)

// Runner executes an external command and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run executes name with args, bounded by ctx
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// XdotoolInjector issues `xdotool mousemove x y` and `xdotool click N`
type XdotoolInjector struct {
	path   string
	runner Runner
}

var (
	_ domain.PointerInjector = (*XdotoolInjector)(nil)
	_ Locator                = (*XdotoolInjector)(nil)
)

// NewXdotoolInjector creates an xdotool injector. An empty path uses
// "xdotool" from PATH; a nil runner uses ExecRunner.
func NewXdotoolInjector(path string, runner Runner) *XdotoolInjector {
	if path == "" {
		path = "xdotool"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &XdotoolInjector{path: path, runner: runner}
}

// CheckAvailable reports whether the xdotool binary can be found
func (x *XdotoolInjector) CheckAvailable() error {
	if _, err := exec.LookPath(x.path); err != nil {
		return fmt.Errorf("xdotool not found (install with: sudo apt install xdotool): %w", err)
	}
	return nil
}

// Move runs xdotool mousemove
func (x *XdotoolInjector) Move(ctx context.Context, px, py int) error {
	return x.run(ctx, MoveArgs(px, py)...)
}

// Click runs xdotool click with the X11 button number
func (x *XdotoolInjector) Click(ctx context.Context, button domain.MouseButton) error {
	return x.run(ctx, ClickArgs(button)...)
}

var locationPattern = regexp.MustCompile(`x:(-?\d+) y:(-?\d+)`)

// Position runs xdotool getmouselocation and parses the pointer position
func (x *XdotoolInjector) Position(ctx context.Context) (domain.Point, error) {
	out, err := x.runner.Run(ctx, x.path, "getmouselocation")
	if err != nil {
		return domain.Point{}, fmt.Errorf("xdotool getmouselocation failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return ParseMouseLocation(string(out))
}

func (x *XdotoolInjector) run(ctx context.Context, args ...string) error {
	logger.Debug("Running xdotool", "args", strings.Join(args, " "))
	out, err := x.runner.Run(ctx, x.path, args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("xdotool %s failed: %w", args[0], err)
		}
		return fmt.Errorf("xdotool %s failed: %s: %w", args[0], msg, err)
	}
	return nil
}

// MoveArgs returns the xdotool arguments that move the pointer to (x, y)
func MoveArgs(x, y int) []string {
	return []string{"mousemove", strconv.Itoa(x), strconv.Itoa(y)}
}

// ClickArgs returns the xdotool arguments that click button
func ClickArgs(button domain.MouseButton) []string {
	return []string{"click", strconv.Itoa(button.X11Code())}
}

// ParseMouseLocation extracts the pointer position from getmouselocation output
func ParseMouseLocation(out string) (domain.Point, error) {
	m := locationPattern.FindStringSubmatch(out)
	if m == nil {
		return domain.Point{}, fmt.Errorf("unexpected getmouselocation output %q", strings.TrimSpace(out))
	}
	x, _ := strconv.Atoi(m[1])
	y, _ := strconv.Atoi(m[2])
	return domain.Point{X: x, Y: y}, nil
}
