package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

type fakeController struct {
	displays   []domain.Display
	listErr    error
	img        image.Image
	captureErr error
	region     *domain.Rect
}

func (f *fakeController) ListDisplays(ctx context.Context) ([]domain.Display, error) {
	return f.displays, f.listErr
}

func (f *fakeController) CaptureScreen(ctx context.Context, region *domain.Rect) (image.Image, error) {
	f.region = region
	return f.img, f.captureErr
}

func (f *fakeController) GetCursorPosition(ctx context.Context) (int, int, error) { return 0, 0, nil }
func (f *fakeController) MoveMouse(ctx context.Context, x, y int) error           { return nil }
func (f *fakeController) ClickMouse(ctx context.Context, button domain.MouseButton, clicks int) error {
	return nil
}
func (f *fakeController) Close() error { return nil }

func TestAcquirer_ListDisplays(t *testing.T) {
	tests := []struct {
		name     string
		displays []domain.Display
		err      error
		wantErr  error
	}{
		{name: "one display", displays: []domain.Display{{Bounds: domain.Rect{Width: 1920, Height: 1080}}}},
		{name: "no displays", wantErr: domain.ErrNoDisplays},
		{name: "backend error", err: errors.New("connection refused"), wantErr: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAcquirer(&fakeController{displays: tt.displays, listErr: tt.err})
			got, err := a.ListDisplays(context.Background())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.displays, got)
		})
	}
}

func TestAcquirer_Capture(t *testing.T) {
	rect := domain.Rect{X: 1920, Y: 0, Width: 4, Height: 2}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(3, 1, color.RGBA{R: 255, A: 255})

	ctrl := &fakeController{img: img}
	shot, err := NewAcquirer(ctrl).Capture(context.Background(), rect)
	require.NoError(t, err)

	require.NotNil(t, ctrl.region)
	assert.Equal(t, rect, *ctrl.region)
	assert.Equal(t, rect, shot.Bounds)

	pixel, err := shot.SubImage(domain.Rect{X: 1923, Y: 1, Width: 1, Height: 1})
	require.NoError(t, err)
	r, _, _, _ := pixel.At(pixel.Bounds().Min.X, pixel.Bounds().Min.Y).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestAcquirer_CaptureErrors(t *testing.T) {
	a := NewAcquirer(&fakeController{captureErr: errors.New("grim failed")})
	_, err := a.Capture(context.Background(), domain.Rect{Width: 10, Height: 10})
	assert.ErrorContains(t, err, "grim failed")

	_, err = a.Capture(context.Background(), domain.Rect{})
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	rect := domain.Rect{X: 0, Y: 0, Width: 4, Height: 2}

	tests := []struct {
		name    string
		img     image.Image
		wantErr bool
	}{
		{name: "exact size", img: image.NewRGBA(image.Rect(0, 0, 4, 2))},
		{name: "scaled buffer", img: image.NewRGBA(image.Rect(0, 0, 8, 4))},
		{name: "virtual screen buffer", img: image.NewRGBA(image.Rect(0, 0, 10, 2))},
		{name: "offset origin", img: image.NewRGBA(image.Rect(10, 10, 14, 12))},
		{name: "too small", img: image.NewRGBA(image.Rect(0, 0, 2, 2)), wantErr: true},
		{name: "does not cover rect", img: image.NewRGBA(image.Rect(5, 5, 15, 7)), wantErr: true},
		{name: "nil image", img: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shot, err := Normalize(tt.img, rect)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, shot.Image.Bounds().Dx())
			assert.Equal(t, 2, shot.Image.Bounds().Dy())
		})
	}
}

// halves paints the right half of b red and the left half black
func halves(b image.Rectangle) *image.RGBA {
	img := image.NewRGBA(b)
	mid := b.Min.X + b.Dx()/2
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBA{A: 255}
			if x >= mid {
				c.R = 255
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func redAt(t *testing.T, shot *domain.Screenshot, p domain.Point) uint32 {
	t.Helper()
	px, err := shot.SubImage(domain.Rect{X: p.X, Y: p.Y, Width: 1, Height: 1})
	require.NoError(t, err)
	r, _, _, _ := px.At(px.Bounds().Min.X, px.Bounds().Min.Y).RGBA()
	return r
}

func TestNormalize_PixelsStayAtTheirAbsolutePosition(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		rect  domain.Rect
		red   domain.Point
		black domain.Point
	}{
		{
			name:  "HiDPI buffer is scaled, not cropped",
			img:   halves(image.Rect(0, 0, 200, 200)),
			rect:  domain.Rect{Width: 100, Height: 100},
			red:   domain.Point{X: 75, Y: 50},
			black: domain.Point{X: 25, Y: 50},
		},
		{
			name:  "HiDPI buffer of a secondary display",
			img:   halves(image.Rect(0, 0, 200, 100)),
			rect:  domain.Rect{X: 1920, Width: 100, Height: 50},
			red:   domain.Point{X: 1995, Y: 10},
			black: domain.Point{X: 1925, Y: 10},
		},
		{
			name:  "virtual screen is cropped at the display",
			img:   halves(image.Rect(0, 0, 200, 50)),
			rect:  domain.Rect{X: 50, Width: 100, Height: 50},
			red:   domain.Point{X: 110, Y: 10},
			black: domain.Point{X: 60, Y: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shot, err := Normalize(tt.img, tt.rect)
			require.NoError(t, err)
			assert.Equal(t, tt.rect, shot.Bounds)
			assert.Greater(t, redAt(t, shot, tt.red), uint32(0xf000))
			assert.Less(t, redAt(t, shot, tt.black), uint32(0x1000))
		})
	}
}
