package display

import (
	"fmt"
	"strings"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// PolicyKind selects how the target display is chosen
type PolicyKind string

const (
	// PolicyLargest picks the display with the greatest pixel area
	PolicyLargest PolicyKind = "largest"
	// PolicyIndex picks the display at an explicit enumeration index
	PolicyIndex PolicyKind = "index"
	// PolicyPrimary picks the display containing the origin
	PolicyPrimary PolicyKind = "primary"
)

// Policy is a display-selection policy
type Policy struct {
	Kind  PolicyKind
	Index int
}

// Largest returns the default policy
func Largest() Policy {
	return Policy{Kind: PolicyLargest}
}

// AtIndex returns a policy selecting the display at index i (zero-based)
func AtIndex(i int) Policy {
	return Policy{Kind: PolicyIndex, Index: i}
}

// ParsePolicyKind parses a configured policy name
func ParsePolicyKind(s string) (PolicyKind, error) {
	switch PolicyKind(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyLargest, "":
		return PolicyLargest, nil
	case PolicyIndex:
		return PolicyIndex, nil
	case PolicyPrimary:
		return PolicyPrimary, nil
	default:
		return "", fmt.Errorf("unknown display policy %q (must be largest, index or primary)", s)
	}
}

func (p Policy) String() string {
	if p.Kind == PolicyIndex {
		return fmt.Sprintf("index:%d", p.Index)
	}
	return string(p.Kind)
}

// ResolveTarget selects the target display from an enumeration. The returned
// value is a copy and is never mutated; a different display means a new
// resolution.
func ResolveTarget(displays []domain.Display, policy Policy) (domain.Display, error) {
	if len(displays) == 0 {
		return domain.Display{}, &domain.GeometryError{Op: "resolve display", Kind: domain.ErrNoDisplays}
	}

	switch policy.Kind {
	case PolicyIndex:
		if policy.Index < 0 || policy.Index >= len(displays) {
			return domain.Display{}, domain.NewGeometryError("resolve display", domain.ErrIndexOutOfRange,
				"display index %d, %d display(s) attached", policy.Index, len(displays))
		}
		return displays[policy.Index], nil

	case PolicyPrimary:
		for _, d := range displays {
			if d.Primary {
				return d, nil
			}
		}
		for _, d := range displays {
			if d.Bounds.Contains(domain.Point{}) {
				return d, nil
			}
		}
		return displays[0], nil

	default:
		largest := displays[0]
		for _, d := range displays[1:] {
			if d.Area() > largest.Area() {
				largest = d
			}
		}
		return largest, nil
	}
}

// VirtualBounds returns the smallest rect covering every display
func VirtualBounds(displays []domain.Display) domain.Rect {
	if len(displays) == 0 {
		return domain.Rect{}
	}
	b := displays[0].Bounds
	x0, y0, x1, y1 := b.X, b.Y, b.MaxX(), b.MaxY()
	for _, d := range displays[1:] {
		x0 = min(x0, d.Bounds.X)
		y0 = min(y0, d.Bounds.Y)
		x1 = max(x1, d.Bounds.MaxX())
		y1 = max(y1, d.Bounds.MaxY())
	}
	return domain.NewRect(x0, y0, x1, y1)
}
