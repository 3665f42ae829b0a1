// Package zoom computes the padded region magnified after a cell pick and
// maps points between the zoom viewport and absolute screen pixels.
//
// The ZoomRegion value returned by ComputeRegion is the only input to both
// Render and ViewportToAbsolute, so the crop the operator sees and the point
// that gets clicked never drift apart.
package zoom

import (
	"math"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// ComputeRegion pads cell by round(padding*width) left and right and
// round(padding*height) top and bottom, then clamps to the display. Padding
// that would leave the display is dropped on that side only; the region is
// never shifted.
func ComputeRegion(display domain.Display, cell domain.Rect, padding float64) (domain.ZoomRegion, error) {
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		return domain.ZoomRegion{}, domain.NewGeometryError("zoom region", domain.ErrPointOutside,
			"padding %v must be a non-negative number", padding)
	}
	if cell.Empty() || !display.Bounds.ContainsRect(cell) {
		return domain.ZoomRegion{}, domain.NewGeometryError("zoom region", domain.ErrPointOutside,
			"cell %s is not inside display %s", cell, display)
	}

	padX := roundHalfUp(padding * float64(cell.Width))
	padY := roundHalfUp(padding * float64(cell.Height))

	padded := domain.NewRect(cell.X-padX, cell.Y-padY, cell.MaxX()+padX, cell.MaxY()+padY)

	return domain.ZoomRegion{
		Source:          padded.Intersect(display.Bounds),
		Cell:            cell,
		PaddingFraction: padding,
	}, nil
}

// ViewportSize returns the default viewport for a region: the source size
// times factor. When limit has a positive dimension the viewport is shrunk to
// fit it, keeping the aspect ratio.
func ViewportSize(region domain.ZoomRegion, factor float64, limit domain.Size) domain.Size {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		factor = 1
	}

	width := max(1, roundHalfUp(float64(region.Source.Width)*factor))
	height := max(1, roundHalfUp(float64(region.Source.Height)*factor))

	if limit.Width > 0 && width > limit.Width {
		ratio := float64(limit.Width) / float64(width)
		width = limit.Width
		height = max(1, int(float64(height)*ratio))
	}

	if limit.Height > 0 && height > limit.Height {
		ratio := float64(limit.Height) / float64(height)
		height = limit.Height
		width = max(1, int(float64(width)*ratio))
	}

	return domain.Size{Width: width, Height: height}
}

// ViewportToAbsolute maps a point inside the zoom viewport to the absolute
// pixel it shows:
//
//	absolute = source.origin + viewportPoint * source.size / viewport.size
//
// rounded half-up. X and Y scale independently. A result that rounds onto the
// exclusive edge of the source is pulled back onto its last pixel.
func ViewportToAbsolute(region domain.ZoomRegion, viewport domain.Size, p domain.Point) (domain.Point, error) {
	if viewport.Empty() || region.Source.Empty() {
		return domain.Point{}, domain.NewGeometryError("viewport to absolute", domain.ErrPointOutside,
			"viewport %s or region %s is empty", viewport, region.Source)
	}
	if p.X < 0 || p.Y < 0 || p.X >= viewport.Width || p.Y >= viewport.Height {
		return domain.Point{}, domain.NewGeometryError("viewport to absolute", domain.ErrPointOutside,
			"point %s outside viewport %s", p, viewport)
	}

	src := region.Source
	x := src.X + scaleHalfUp(p.X, src.Width, viewport.Width)
	y := src.Y + scaleHalfUp(p.Y, src.Height, viewport.Height)

	return domain.Point{
		X: min(x, src.MaxX()-1),
		Y: min(y, src.MaxY()-1),
	}, nil
}

// Resolve turns the operator's zoom pick into the absolute target point
func Resolve(region domain.ZoomRegion, sel domain.Selection) (domain.Point, error) {
	return ViewportToAbsolute(region, sel.Viewport, sel.ViewportPoint)
}

// AbsoluteToViewport is the forward mapping of ViewportToAbsolute
func AbsoluteToViewport(region domain.ZoomRegion, viewport domain.Size, a domain.Point) (domain.Point, error) {
	if viewport.Empty() || region.Source.Empty() {
		return domain.Point{}, domain.NewGeometryError("absolute to viewport", domain.ErrPointOutside,
			"viewport %s or region %s is empty", viewport, region.Source)
	}
	src := region.Source
	if !src.Contains(a) {
		return domain.Point{}, domain.NewGeometryError("absolute to viewport", domain.ErrPointOutside,
			"point %s outside zoom region %s", a, src)
	}

	vx := scaleHalfUp(a.X-src.X, viewport.Width, src.Width)
	vy := scaleHalfUp(a.Y-src.Y, viewport.Height, src.Height)

	return domain.Point{
		X: min(vx, viewport.Width-1),
		Y: min(vy, viewport.Height-1),
	}, nil
}

// CellInViewport returns the rect the picked cell occupies inside the
// viewport, used by surfaces to outline it
func CellInViewport(region domain.ZoomRegion, viewport domain.Size) domain.Rect {
	src := region.Source
	if viewport.Empty() || src.Empty() {
		return domain.Rect{}
	}
	x0 := scaleHalfUp(region.Cell.X-src.X, viewport.Width, src.Width)
	y0 := scaleHalfUp(region.Cell.Y-src.Y, viewport.Height, src.Height)
	x1 := scaleHalfUp(region.Cell.MaxX()-src.X, viewport.Width, src.Width)
	y1 := scaleHalfUp(region.Cell.MaxY()-src.Y, viewport.Height, src.Height)
	return domain.NewRect(x0, y0, x1, y1)
}

// scaleHalfUp returns round-half-up(v * num / den) for v, num >= 0, den > 0
// in integer arithmetic
func scaleHalfUp(v, num, den int) int {
	return (2*v*num + den) / (2 * den)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
