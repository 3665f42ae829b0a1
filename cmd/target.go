package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	container "github.com/inference-gateway/gridpick/internal/container"
	display "github.com/inference-gateway/gridpick/internal/display"
	domain "github.com/inference-gateway/gridpick/internal/domain"
	cobra "github.com/spf13/cobra"
)

// addBoundsFlag lets offline commands describe the target display instead of
// asking the display server
func addBoundsFlag(cmd *cobra.Command) {
	cmd.Flags().String("bounds", "", "target display bounds as x,y,width,height (skips the display server)")
}

// targetDisplay returns the display given by --bounds, or the one the
// configured policy resolves to on the live display server
func targetDisplay(ctx context.Context, cmd *cobra.Command, services *container.ServiceContainer) (domain.Display, error) {
	if raw, _ := cmd.Flags().GetString("bounds"); raw != "" {
		r, err := parseRect(raw)
		if err != nil {
			return domain.Display{}, err
		}
		return domain.Display{Name: "bounds", Bounds: r, WorkArea: r, Primary: true}, nil
	}

	acquirer, err := services.GetAcquirer()
	if err != nil {
		return domain.Display{}, err
	}
	displays, err := acquirer.ListDisplays(ctx)
	if err != nil {
		return domain.Display{}, err
	}
	return display.ResolveTarget(displays, container.PolicyFrom(services.GetConfig()))
}

func parseInts(raw string, n int, what string) ([]int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("invalid %s %q: expected %d comma separated integers", what, raw, n)
	}
	values := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", what, raw, err)
		}
		values[i] = v
	}
	return values, nil
}

func parsePoint(raw string) (domain.Point, error) {
	v, err := parseInts(raw, 2, "point")
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: v[0], Y: v[1]}, nil
}

func parseRect(raw string) (domain.Rect, error) {
	v, err := parseInts(raw, 4, "bounds")
	if err != nil {
		return domain.Rect{}, err
	}
	r := domain.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if r.Empty() {
		return domain.Rect{}, fmt.Errorf("invalid bounds %q: width and height must be positive", raw)
	}
	return r, nil
}

func parseSize(raw string) (domain.Size, error) {
	parts := strings.Split(strings.ToLower(raw), "x")
	if len(parts) != 2 {
		return domain.Size{}, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", raw)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return domain.Size{}, fmt.Errorf("invalid size %q: expected positive WIDTHxHEIGHT", raw)
	}
	return domain.Size{Width: w, Height: h}, nil
}
