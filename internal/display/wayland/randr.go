package wayland

import (
	"bufio"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

type randrOutput struct {
	name      string
	enabled   bool
	width     int
	height    int
	x, y      int
	scale     float64
	transform string
	hasMode   bool
}

// ParseRandr parses wlr-randr's text output into displays in the compositor's
// logical coordinate space. Disabled outputs are skipped. The output at the
// origin is primary.
func ParseRandr(out string) ([]domain.Display, error) {
	var outputs []*randrOutput
	var cur *randrOutput

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line[0] != ' ' && line[0] != '\t' {
			cur = &randrOutput{name: strings.Fields(line)[0], enabled: true, scale: 1}
			outputs = append(outputs, cur)
			continue
		}
		if cur == nil {
			continue
		}

		field := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(field, "Enabled:"):
			cur.enabled = strings.TrimSpace(strings.TrimPrefix(field, "Enabled:")) == "yes"
		case strings.HasPrefix(field, "Position:"):
			x, y, err := parsePair(strings.TrimPrefix(field, "Position:"), ",")
			if err != nil {
				return nil, fmt.Errorf("output %s: bad position: %w", cur.name, err)
			}
			cur.x, cur.y = x, y
		case strings.HasPrefix(field, "Scale:"):
			s, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(field, "Scale:")), 64)
			if err != nil || s <= 0 {
				return nil, fmt.Errorf("output %s: bad scale %q", cur.name, field)
			}
			cur.scale = s
		case strings.HasPrefix(field, "Transform:"):
			cur.transform = strings.TrimSpace(strings.TrimPrefix(field, "Transform:"))
		case strings.Contains(field, "current") && strings.Contains(field, " px"):
			w, h, err := parsePair(strings.Fields(field)[0], "x")
			if err != nil {
				return nil, fmt.Errorf("output %s: bad mode: %w", cur.name, err)
			}
			cur.width, cur.height, cur.hasMode = w, h, true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var displays []domain.Display
	for _, o := range outputs {
		if !o.enabled || !o.hasMode {
			continue
		}
		w, h := o.width, o.height
		switch o.transform {
		case "90", "270", "flipped-90", "flipped-270":
			w, h = h, w
		}
		bounds := domain.Rect{
			X:      o.x,
			Y:      o.y,
			Width:  int(math.Round(float64(w) / o.scale)),
			Height: int(math.Round(float64(h) / o.scale)),
		}
		displays = append(displays, domain.Display{
			Name:     o.name,
			Bounds:   bounds,
			WorkArea: bounds,
			Primary:  o.x == 0 && o.y == 0,
		})
	}

	if len(displays) == 0 {
		return nil, domain.ErrNoDisplays
	}

	sort.SliceStable(displays, func(i, j int) bool {
		if displays[i].Bounds.X != displays[j].Bounds.X {
			return displays[i].Bounds.X < displays[j].Bounds.X
		}
		return displays[i].Bounds.Y < displays[j].Bounds.Y
	})
	for i := range displays {
		displays[i].ID = i
	}
	return displays, nil
}

func parsePair(s, sep string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected two values in %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
