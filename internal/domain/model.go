package domain

import "fmt"

// GridConfig partitions a display into rows × cols cells
type GridConfig struct {
	Rows int `json:"rows" yaml:"rows" mapstructure:"rows"`
	Cols int `json:"cols" yaml:"cols" mapstructure:"cols"`
}

// CellCount returns rows*cols
func (g GridConfig) CellCount() int {
	return g.Rows * g.Cols
}

// Valid reports whether both dimensions are at least one
func (g GridConfig) Valid() bool {
	return g.Rows >= 1 && g.Cols >= 1
}

func (g GridConfig) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Cols)
}

// Cell is one numbered unit of the grid. Index is zero-based, Label is the
// one-based number an operator types or reads on the overlay.
type Cell struct {
	Index int  `json:"index"`
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Rect  Rect `json:"rect"`
}

// Label returns the one-based cell number
func (c Cell) Label() int {
	return c.Index + 1
}

// ZoomRegion is the padded absolute rectangle magnified after a cell pick.
// Source is the single source of truth for both the rendered crop and the
// inverse viewport mapping.
type ZoomRegion struct {
	Source          Rect    `json:"source"`
	Cell            Rect    `json:"cell"`
	PaddingFraction float64 `json:"padding_fraction"`
}

// Selection is the operator's final pick inside the zoom viewport
type Selection struct {
	CellIndex     int   `json:"cell_index"`
	ViewportPoint Point `json:"viewport_point"`
	Viewport      Size  `json:"viewport"`
}
