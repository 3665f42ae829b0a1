package capture

import (
	"context"
	"fmt"
	"image"

	draw "golang.org/x/image/draw"

	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	logger "github.com/inference-gateway/gridpick/internal/logger"
)

// Acquirer enumerates displays and takes screenshots through a display
// controller
type Acquirer struct {
	controller display.DisplayController
}

var (
	_ domain.DisplaySource  = (*Acquirer)(nil)
	_ domain.ScreenCapturer = (*Acquirer)(nil)
)

// NewAcquirer creates an acquirer over controller
func NewAcquirer(controller display.DisplayController) *Acquirer {
	return &Acquirer{controller: controller}
}

// ListDisplays returns a fresh enumeration of the attached displays
func (a *Acquirer) ListDisplays(ctx context.Context) ([]domain.Display, error) {
	displays, err := a.controller.ListDisplays(ctx)
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, domain.ErrNoDisplays
	}
	return displays, nil
}

// Capture grabs the absolute rectangle rect. The returned screenshot covers
// exactly rect.
func (a *Acquirer) Capture(ctx context.Context, rect domain.Rect) (*domain.Screenshot, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("cannot capture empty rect %s", rect)
	}

	img, err := a.controller.CaptureScreen(ctx, &rect)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}

	shot, err := Normalize(img, rect)
	if err != nil {
		return nil, err
	}

	logger.Debug("Captured screenshot", "rect", rect.String())
	return shot, nil
}

// Normalize wraps a backend image as a screenshot of rect so that every
// pixel sits at its absolute position:
//   - a buffer of rect's size is used as is;
//   - a uniformly scaled buffer of rect (HiDPI output) is scaled down to
//     rect's size;
//   - a buffer in absolute coordinates that covers rect (a whole virtual
//     screen) is cropped at rect.
func Normalize(img image.Image, rect domain.Rect) (*domain.Screenshot, error) {
	if img == nil {
		return nil, fmt.Errorf("capture returned no image")
	}

	b := img.Bounds()
	switch {
	case b.Dx() == rect.Width && b.Dy() == rect.Height:
	case uniformScale(b, rect) && (b.Min == rect.Image().Min || !rect.Image().In(b)):
		dst := image.NewRGBA(image.Rect(0, 0, rect.Width, rect.Height))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		logger.Debug("Scaled capture buffer", "from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "to", rect.Size().String())
		img = dst
	case rect.Image().In(b):
		sub, ok := img.(interface {
			SubImage(image.Rectangle) image.Image
		})
		if !ok {
			return nil, fmt.Errorf("captured image of type %T cannot be cropped", img)
		}
		img = sub.SubImage(rect.Image())
	default:
		return nil, fmt.Errorf("captured %dx%d image at %v does not match %s", b.Dx(), b.Dy(), b.Min, rect)
	}

	return &domain.Screenshot{Image: img, Bounds: rect}, nil
}

// uniformScale reports whether b is rect enlarged by the same factor on
// both axes
func uniformScale(b image.Rectangle, rect domain.Rect) bool {
	if b.Dx() < rect.Width || b.Dy() < rect.Height {
		return false
	}
	return b.Dx()*rect.Height == b.Dy()*rect.Width
}
