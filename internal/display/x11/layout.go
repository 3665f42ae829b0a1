package x11

import (
	"fmt"
	"sort"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// buildDisplays turns Xinerama heads into displays ordered left to right,
// then top to bottom. With no heads the root window is the only display.
// The head at the origin is primary; the EWMH work area is clipped to each
// head.
func buildDisplays(heads []domain.Rect, workarea *domain.Rect, root domain.Rect) []domain.Display {
	if len(heads) == 0 {
		heads = []domain.Rect{root}
	}

	sorted := append([]domain.Rect(nil), heads...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	displays := make([]domain.Display, 0, len(sorted))
	primary := -1
	for i, head := range sorted {
		d := domain.Display{
			ID:       i,
			Name:     fmt.Sprintf("head-%d", i),
			Bounds:   head,
			WorkArea: head,
		}
		if workarea != nil {
			if wa := head.Intersect(*workarea); !wa.Empty() {
				d.WorkArea = wa
			}
		}
		if primary < 0 && head.X == 0 && head.Y == 0 {
			primary = i
		}
		displays = append(displays, d)
	}

	if primary < 0 {
		primary = 0
	}
	displays[primary].Primary = true
	return displays
}
