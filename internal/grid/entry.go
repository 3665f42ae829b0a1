package grid

import (
	"strconv"

	domain "github.com/inference-gateway/gridpick/internal/domain"
)

// Typed cell numbers are one-based: the label drawn on the overlay is
// index+1, so "1" selects index 0 and "60" selects index 59 on a 6x10 grid.

// ParseCellNumber resolves a typed one-based cell number to a zero-based index
func ParseCellNumber(digits string, cfg domain.GridConfig) (int, error) {
	if digits == "" {
		return 0, &domain.GeometryError{Op: "cell number", Kind: domain.ErrEmptyEntry}
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, domain.NewGeometryError("cell number", domain.ErrInvalidIndex, "%q is not a number", digits)
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > cfg.CellCount() {
		return 0, domain.NewGeometryError("cell number", domain.ErrInvalidIndex,
			"cell %s outside 1..%d", digits, cfg.CellCount())
	}
	return n - 1, nil
}

// NumericEntry accumulates typed digits for a cell number. It is a value
// type so sessions can carry it without sharing.
type NumericEntry struct {
	Digits    string
	CellCount int
}

// NewNumericEntry starts an empty entry for a grid with cellCount cells
func NewNumericEntry(cellCount int) NumericEntry {
	return NumericEntry{CellCount: cellCount}
}

// Empty reports whether no digit has been typed
func (e NumericEntry) Empty() bool {
	return e.Digits == ""
}

// Push appends one digit. complete is true when no further digit could form
// a valid cell number, so the entry can be committed right away. A digit that
// makes the number invalid is rejected and the entry is cleared.
func (e NumericEntry) Push(d rune) (next NumericEntry, complete bool, err error) {
	if d < '0' || d > '9' {
		return e, false, domain.NewGeometryError("cell number", domain.ErrInvalidIndex, "%q is not a digit", d)
	}
	if e.Digits == "" && d == '0' {
		return e, false, domain.NewGeometryError("cell number", domain.ErrInvalidIndex, "cell numbers start at 1")
	}

	digits := e.Digits + string(d)
	n, convErr := strconv.Atoi(digits)
	if convErr != nil || n > e.CellCount {
		cleared := NewNumericEntry(e.CellCount)
		return cleared, false, domain.NewGeometryError("cell number", domain.ErrInvalidIndex,
			"cell %s outside 1..%d", digits, e.CellCount)
	}

	next = NumericEntry{Digits: digits, CellCount: e.CellCount}
	return next, n*10 > e.CellCount, nil
}

// Backspace removes the last digit
func (e NumericEntry) Backspace() NumericEntry {
	if e.Digits == "" {
		return e
	}
	return NumericEntry{Digits: e.Digits[:len(e.Digits)-1], CellCount: e.CellCount}
}

// Clear drops every typed digit
func (e NumericEntry) Clear() NumericEntry {
	return NewNumericEntry(e.CellCount)
}

// Commit resolves the typed digits to a zero-based cell index
func (e NumericEntry) Commit(cfg domain.GridConfig) (int, error) {
	return ParseCellNumber(e.Digits, cfg)
}
