// Package grid partitions a display into numbered cells and maps between
// cell indices and absolute pixels.
//
// Cell width is floor(display.width / cols) and the last column absorbs the
// remainder; rows follow the same rule. Both directions of the mapping use
// this rule, so cells tile the display with no gaps and no overlap.
package grid

import (
	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Validate checks that cfg produces non-degenerate cells on display
func Validate(display domain.Display, cfg domain.GridConfig) error {
	if !cfg.Valid() {
		return domain.NewGeometryError("grid", domain.ErrInvalidIndex,
			"grid %s must have at least one row and one column", cfg)
	}
	if display.Bounds.Empty() {
		return domain.NewGeometryError("grid", domain.ErrPointOutside, "display %s has no area", display)
	}
	if cfg.Cols > display.Bounds.Width || cfg.Rows > display.Bounds.Height {
		return domain.NewGeometryError("grid", domain.ErrInvalidIndex,
			"grid %s is finer than display %s", cfg, display.Size())
	}
	return nil
}

// span returns the offset and length of slot i out of n over total pixels
func span(total, n, i int) (offset, length int) {
	base := total / n
	offset = i * base
	if i == n-1 {
		return offset, total - offset
	}
	return offset, base
}

// slot returns the slot covering offset d out of n over total pixels
func slot(total, n, d int) int {
	i := d / (total / n)
	if i >= n {
		i = n - 1
	}
	return i
}

// CellRect returns the absolute rect of the cell at index
func CellRect(display domain.Display, cfg domain.GridConfig, index int) (domain.Rect, error) {
	cell, err := CellByIndex(display, cfg, index)
	if err != nil {
		return domain.Rect{}, err
	}
	return cell.Rect, nil
}

// CellByIndex returns the cell at index with its row, column and rect
func CellByIndex(display domain.Display, cfg domain.GridConfig, index int) (domain.Cell, error) {
	if err := Validate(display, cfg); err != nil {
		return domain.Cell{}, err
	}
	if index < 0 || index >= cfg.CellCount() {
		return domain.Cell{}, domain.NewGeometryError("cell rect", domain.ErrInvalidIndex,
			"index %d outside [0, %d)", index, cfg.CellCount())
	}

	row, col := index/cfg.Cols, index%cfg.Cols
	b := display.Bounds
	dx, w := span(b.Width, cfg.Cols, col)
	dy, h := span(b.Height, cfg.Rows, row)

	return domain.Cell{
		Index: index,
		Row:   row,
		Col:   col,
		Rect:  domain.Rect{X: b.X + dx, Y: b.Y + dy, Width: w, Height: h},
	}, nil
}

// CellAt returns the index of the cell covering p. ok is false when p lies
// outside the display or the grid is degenerate.
func CellAt(display domain.Display, cfg domain.GridConfig, p domain.Point) (index int, ok bool) {
	if Validate(display, cfg) != nil {
		return 0, false
	}
	b := display.Bounds
	if !b.Contains(p) {
		return 0, false
	}

	col := slot(b.Width, cfg.Cols, p.X-b.X)
	row := slot(b.Height, cfg.Rows, p.Y-b.Y)
	return row*cfg.Cols + col, true
}

// Cells enumerates every cell in index order
func Cells(display domain.Display, cfg domain.GridConfig) ([]domain.Cell, error) {
	if err := Validate(display, cfg); err != nil {
		return nil, err
	}

	cells := make([]domain.Cell, 0, cfg.CellCount())
	for i := 0; i < cfg.CellCount(); i++ {
		cell, err := CellByIndex(display, cfg, i)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}
