package x11

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	xgb "github.com/BurntSushi/xgb"
	xgbxinerama "github.com/BurntSushi/xgb/xinerama"
	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	xgbutil "github.com/BurntSushi/xgbutil"
	ewmh "github.com/BurntSushi/xgbutil/ewmh"
	xgraphics "github.com/BurntSushi/xgbutil/xgraphics"
	xinerama "github.com/BurntSushi/xgbutil/xinerama"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
)

// buttonHold is how long a synthetic button stays pressed
const buttonHold = 50 * time.Millisecond

// X11Client wraps an X11 connection and provides screen control operations
type X11Client struct {
	xu       *xgbutil.XUtil
	conn     *xgb.Conn
	screen   *xproto.ScreenInfo
	display  string
	xinerama bool

	// xgb is safe for concurrent requests but press/release pairs must not
	// interleave
	mu sync.Mutex
}

// NewX11Client creates a new X11 client connection
func NewX11Client(display string) (*X11Client, error) {
	oldStderr := os.Stderr
	devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if devErr == nil {
		os.Stderr = devNull
	}

	xu, err := xgbutil.NewConnDisplay(display)

	if devErr == nil {
		os.Stderr = oldStderr
		_ = devNull.Close()
	}

	if err != nil {
		logger.Error("Failed to connect to X11 display", "display", display, "error", err)
		return nil, fmt.Errorf("failed to connect to X11 display %s: %w", display, err)
	}

	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		logger.Error("Failed to initialize XTEST extension", "error", err)
		return nil, fmt.Errorf("failed to initialize XTEST extension: %w", err)
	}

	client := &X11Client{
		xu:      xu,
		conn:    xu.Conn(),
		screen:  xproto.Setup(xu.Conn()).DefaultScreen(xu.Conn()),
		display: display,
	}

	if err := xgbxinerama.Init(xu.Conn()); err != nil {
		logger.Warn("Xinerama not available, treating the root window as one display", "error", err)
	} else {
		client.xinerama = true
	}

	return client, nil
}

// Close closes the X11 connection
func (c *X11Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// RootBounds returns the root window rectangle
func (c *X11Client) RootBounds() domain.Rect {
	return domain.Rect{Width: int(c.screen.WidthInPixels), Height: int(c.screen.HeightInPixels)}
}

// ListDisplays enumerates Xinerama heads, falling back to the root window
func (c *X11Client) ListDisplays() ([]domain.Display, error) {
	var heads []domain.Rect
	if c.xinerama {
		physical, err := xinerama.PhysicalHeads(c.xu)
		if err != nil {
			logger.Warn("Failed to query Xinerama heads", "error", err)
		}
		for _, h := range physical {
			heads = append(heads, domain.Rect{X: h.X(), Y: h.Y(), Width: h.Width(), Height: h.Height()})
		}
	}

	var workarea *domain.Rect
	if areas, err := ewmh.WorkareaGet(c.xu); err == nil && len(areas) > 0 {
		wa := areas[0]
		workarea = &domain.Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}
	}

	return buildDisplays(heads, workarea, c.RootBounds()), nil
}

// CaptureScreen captures the absolute rectangle rect of the root window
func (c *X11Client) CaptureScreen(rect domain.Rect) (image.Image, error) {
	root := c.RootBounds()
	if rect.Empty() {
		rect = root
	}
	if !root.ContainsRect(rect) {
		return nil, fmt.Errorf("region %s exceeds root window %s", rect, root)
	}

	ximg, err := xgraphics.NewDrawable(c.xu, xproto.Drawable(c.screen.Root))
	if err != nil {
		return nil, fmt.Errorf("failed to create drawable: %w", err)
	}

	return ximg.SubImage(rect.Image()), nil
}

// GetCursorPosition returns the current cursor position
func (c *X11Client) GetCursorPosition() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.conn, c.screen.Root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query pointer: %w", err)
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}

// MoveMouse warps the cursor to the absolute coordinates
func (c *X11Client) MoveMouse(x, y int) error {
	if x < -32768 || x > 32767 || y < -32768 || y > 32767 {
		return fmt.Errorf("coordinates (%d,%d) outside the X11 coordinate space", x, y)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := xproto.WarpPointerChecked(
		c.conn,
		xproto.WindowNone,
		c.screen.Root,
		0, 0,
		0, 0,
		int16(x), int16(y),
	).Check()
	if err != nil {
		return fmt.Errorf("failed to move mouse: %w", err)
	}

	c.conn.Sync()
	return nil
}

// ClickMouse presses and releases button clicks times at the cursor
func (c *X11Client) ClickMouse(button domain.MouseButton, clicks int) error {
	if clicks < 1 {
		return fmt.Errorf("invalid click count: %d", clicks)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	root := c.screen.Root
	code := byte(button.X11Code())

	for i := 0; i < clicks; i++ {
		if err := xtest.FakeInputChecked(c.conn, xproto.ButtonPress, code, 0, root, 0, 0, 0).Check(); err != nil {
			return fmt.Errorf("failed to send button press: %w", err)
		}
		time.Sleep(buttonHold)

		if err := xtest.FakeInputChecked(c.conn, xproto.ButtonRelease, code, 0, root, 0, 0, 0).Check(); err != nil {
			return fmt.Errorf("failed to send button release: %w", err)
		}

		if i < clicks-1 {
			time.Sleep(2 * buttonHold)
		}
	}

	c.conn.Sync()
	return nil
}
