package domain

import (
	"fmt"
	"image"
)

// Display is an immutable snapshot of one attached monitor in absolute pixels.
// It goes stale when the OS reconfigures displays, so it is re-resolved on
// every activation.
type Display struct {
	ID       int    `json:"id"`
	Name     string `json:"name,omitempty"`
	Bounds   Rect   `json:"bounds"`
	WorkArea Rect   `json:"work_area"`
	Primary  bool   `json:"primary,omitempty"`
}

// Origin returns the absolute top-left corner of the display
func (d Display) Origin() Point {
	return Point{X: d.Bounds.X, Y: d.Bounds.Y}
}

// Size returns the pixel dimensions of the display
func (d Display) Size() Size {
	return d.Bounds.Size()
}

// Area returns width*height of the display bounds
func (d Display) Area() int {
	return d.Bounds.Area()
}

func (d Display) String() string {
	label := d.Name
	if label == "" {
		label = fmt.Sprintf("display %d", d.ID+1)
	}
	return fmt.Sprintf("%s: %dx%d at (%d,%d)", label, d.Bounds.Width, d.Bounds.Height, d.Bounds.X, d.Bounds.Y)
}

// Screenshot is an opaque raster plus the absolute rectangle it covers.
// One screenshot is captured per activation and reused for the grid and
// every zoom crop of that activation.
type Screenshot struct {
	Image  image.Image
	Bounds Rect
}

// SubImage returns the part of the screenshot covering the absolute rect r.
// Pixels outside the captured area are not returned.
func (s *Screenshot) SubImage(r Rect) (image.Image, error) {
	if s == nil || s.Image == nil {
		return nil, fmt.Errorf("no screenshot available")
	}
	if !s.Bounds.ContainsRect(r) {
		return nil, fmt.Errorf("rect %s exceeds screenshot bounds %s", r, s.Bounds)
	}

	origin := s.Image.Bounds().Min
	local := image.Rect(
		r.X-s.Bounds.X+origin.X,
		r.Y-s.Bounds.Y+origin.Y,
		r.MaxX()-s.Bounds.X+origin.X,
		r.MaxY()-s.Bounds.Y+origin.Y,
	)

	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if si, ok := s.Image.(subImager); ok {
		return si.SubImage(local), nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			rgba.Set(x, y, s.Image.At(local.Min.X+x, local.Min.Y+y))
		}
	}
	return rgba, nil
}
