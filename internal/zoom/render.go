package zoom

import (
	"fmt"
	"image"
	"strings"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	draw "golang.org/x/image/draw"
)

// Interpolation selects the scaler used to magnify the crop
type Interpolation string

const (
	InterpolationNearest        Interpolation = "nearest"
	InterpolationApproxBiLinear Interpolation = "approx-bilinear"
	InterpolationBiLinear       Interpolation = "bilinear"
	InterpolationCatmullRom     Interpolation = "catmullrom"
)

// ParseInterpolation validates an interpolation name, defaulting to nearest
func ParseInterpolation(s string) (Interpolation, error) {
	switch Interpolation(strings.ToLower(strings.TrimSpace(s))) {
	case "", InterpolationNearest:
		return InterpolationNearest, nil
	case InterpolationApproxBiLinear:
		return InterpolationApproxBiLinear, nil
	case InterpolationBiLinear:
		return InterpolationBiLinear, nil
	case InterpolationCatmullRom:
		return InterpolationCatmullRom, nil
	default:
		return "", fmt.Errorf("unknown interpolation %q (valid: nearest, approx-bilinear, bilinear, catmullrom)", s)
	}
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationApproxBiLinear:
		return draw.ApproxBiLinear
	case InterpolationBiLinear:
		return draw.BiLinear
	case InterpolationCatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Render crops region.Source out of the activation screenshot and scales it
// to the viewport.
func Render(shot *domain.Screenshot, region domain.ZoomRegion, viewport domain.Size, interpolation Interpolation) (*image.RGBA, error) {
	if viewport.Empty() {
		return nil, domain.NewGeometryError("render zoom", domain.ErrPointOutside, "viewport %s is empty", viewport)
	}

	crop, err := shot.SubImage(region.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to crop zoom region: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, viewport.Width, viewport.Height))
	interpolation.scaler().Scale(dst, dst.Bounds(), crop, crop.Bounds(), draw.Src, nil)
	return dst, nil
}
