package native

import (
	"fmt"
	"image"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// toDisplays converts OS display bounds into displays. The OS reports the
// main display first.
func toDisplays(bounds []image.Rectangle) []domain.Display {
	displays := make([]domain.Display, 0, len(bounds))
	for i, b := range bounds {
		r := domain.RectFromImage(b)
		if r.Empty() {
			continue
		}
		displays = append(displays, domain.Display{
			ID:       len(displays),
			Name:     fmt.Sprintf("screen-%d", i),
			Bounds:   r,
			WorkArea: r,
			Primary:  i == 0,
		})
	}
	return displays
}

// robotButton maps a button to robotgo's name for it
func robotButton(b domain.MouseButton) string {
	switch b {
	case domain.MouseButtonMiddle:
		return "center"
	case domain.MouseButtonRight:
		return "right"
	default:
		return "left"
	}
}
