package domain

import (
	"fmt"
	"image"
)

// Point is an absolute or viewport pixel coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Size is a width/height pair in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether either dimension is non-positive
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect represents a rectangular area in absolute screen pixels.
// X and Y are inclusive, X+Width and Y+Height are exclusive.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewRect builds a rect from its two corners (max exclusive)
func NewRect(x0, y0, x1, y1 int) Rect {
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// MaxX returns the exclusive right edge
func (r Rect) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive bottom edge
func (r Rect) MaxY() int { return r.Y + r.Height }

// Size returns the dimensions of the rect
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Area returns width*height, zero for empty rects
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rect covers no pixels
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() &&
		p.Y >= r.Y && p.Y < r.MaxY()
}

// ContainsRect reports whether o lies fully inside r
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Intersect returns the overlap of r and o, or an empty rect
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.MaxX(), o.MaxX()), min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return NewRect(x0, y0, x1, y1)
}

// Overlaps reports whether r and o share at least one pixel
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Centroid returns the integer centre of the rect (floor division)
func (r Rect) Centroid() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Image converts the rect to an image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.MaxX(), r.MaxY())
}

// RectFromImage converts an image.Rectangle to a Rect
func RectFromImage(ir image.Rectangle) Rect {
	return NewRect(ir.Min.X, ir.Min.Y, ir.Max.X, ir.Max.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("x∈[%d,%d) y∈[%d,%d)", r.X, r.MaxX(), r.Y, r.MaxY())
}
