package grid

import (
	"errors"
	"fmt"
	"testing"

	domain "github.com/inference-gateway/gridpick/internal/domain"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func fullHD() domain.Display {
	r := domain.Rect{Width: 1920, Height: 1080}
	return domain.Display{Bounds: r, WorkArea: r}
}

func TestCellRect_Scenario(t *testing.T) {
	cfg := domain.GridConfig{Rows: 6, Cols: 10}

	cell, err := CellByIndex(fullHD(), cfg, 23)
	require.NoError(t, err)

	assert.Equal(t, 2, cell.Row)
	assert.Equal(t, 3, cell.Col)
	assert.Equal(t, domain.NewRect(576, 360, 768, 540), cell.Rect)
	assert.Equal(t, 24, cell.Label())
}

func TestCellRect_InvalidIndex(t *testing.T) {
	cfg := domain.GridConfig{Rows: 6, Cols: 10}

	for _, index := range []int{-1, 60, 1000} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			_, err := CellRect(fullHD(), cfg, index)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidIndex))
		})
	}
}

func TestCellRect_LastColumnAbsorbsRemainder(t *testing.T) {
	display := domain.Display{Bounds: domain.Rect{X: 100, Y: 50, Width: 1000, Height: 700}}
	cfg := domain.GridConfig{Rows: 3, Cols: 7}

	last, err := CellRect(display, cfg, cfg.CellCount()-1)
	require.NoError(t, err)

	assert.Equal(t, 1100, last.MaxX())
	assert.Equal(t, 750, last.MaxY())
	assert.Equal(t, 1000-6*(1000/7), last.Width)
	assert.Equal(t, 700-2*(700/3), last.Height)
}

var propertyCases = []struct {
	name    string
	display domain.Display
	cfg     domain.GridConfig
}{
	{"1920x1080 6x10", fullHD(), domain.GridConfig{Rows: 6, Cols: 10}},
	{"1x1", fullHD(), domain.GridConfig{Rows: 1, Cols: 1}},
	{"odd sizes", domain.Display{Bounds: domain.Rect{X: 1920, Y: 0, Width: 1366, Height: 769}}, domain.GridConfig{Rows: 7, Cols: 13}},
	{"negative origin", domain.Display{Bounds: domain.Rect{X: -2560, Y: -300, Width: 2560, Height: 1440}}, domain.GridConfig{Rows: 9, Cols: 16}},
	{"tiny display", domain.Display{Bounds: domain.Rect{Width: 11, Height: 5}}, domain.GridConfig{Rows: 5, Cols: 11}},
	{"one pixel remainder", domain.Display{Bounds: domain.Rect{Width: 101, Height: 99}}, domain.GridConfig{Rows: 2, Cols: 2}},
}

func TestCellAt_CentroidRoundTrip(t *testing.T) {
	for _, tt := range propertyCases {
		t.Run(tt.name, func(t *testing.T) {
			for index := 0; index < tt.cfg.CellCount(); index++ {
				rect, err := CellRect(tt.display, tt.cfg, index)
				require.NoError(t, err)

				got, ok := CellAt(tt.display, tt.cfg, rect.Centroid())
				require.True(t, ok, "centroid of %d not inside display", index)
				assert.Equal(t, index, got)
			}
		})
	}
}

func TestCells_TileDisplayExactly(t *testing.T) {
	for _, tt := range propertyCases {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := Cells(tt.display, tt.cfg)
			require.NoError(t, err)
			require.Len(t, cells, tt.cfg.CellCount())

			total := 0
			for i, a := range cells {
				assert.True(t, tt.display.Bounds.ContainsRect(a.Rect), "cell %d leaves the display", i)
				total += a.Rect.Area()
				for _, b := range cells[i+1:] {
					assert.False(t, a.Rect.Overlaps(b.Rect), "cells %d and %d overlap", a.Index, b.Index)
				}
			}
			assert.Equal(t, tt.display.Bounds.Area(), total)
		})
	}
}

func TestCellAt_EveryPixelMapsToItsCell(t *testing.T) {
	display := domain.Display{Bounds: domain.Rect{X: -7, Y: 3, Width: 53, Height: 29}}
	cfg := domain.GridConfig{Rows: 4, Cols: 6}

	for y := display.Bounds.Y; y < display.Bounds.MaxY(); y++ {
		for x := display.Bounds.X; x < display.Bounds.MaxX(); x++ {
			p := domain.Point{X: x, Y: y}
			index, ok := CellAt(display, cfg, p)
			require.True(t, ok)

			rect, err := CellRect(display, cfg, index)
			require.NoError(t, err)
			require.True(t, rect.Contains(p), "pixel %s mapped to cell %d %s", p, index, rect)
		}
	}
}

func TestCellAt_OutsideDisplay(t *testing.T) {
	cfg := domain.GridConfig{Rows: 6, Cols: 10}

	for _, p := range []domain.Point{{X: -1, Y: 0}, {X: 1920, Y: 10}, {X: 10, Y: 1080}, {X: 5000, Y: 5000}} {
		_, ok := CellAt(fullHD(), cfg, p)
		assert.False(t, ok, "point %s", p)
	}
}

func TestValidate_DegenerateGrid(t *testing.T) {
	display := domain.Display{Bounds: domain.Rect{Width: 10, Height: 10}}

	assert.Error(t, Validate(display, domain.GridConfig{Rows: 0, Cols: 4}))
	assert.Error(t, Validate(display, domain.GridConfig{Rows: 4, Cols: 11}))
	assert.Error(t, Validate(domain.Display{}, domain.GridConfig{Rows: 1, Cols: 1}))
	assert.NoError(t, Validate(display, domain.GridConfig{Rows: 10, Cols: 10}))
}
