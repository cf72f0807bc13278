package common

import "math"

// Scale converts logical units to terminal cells.
type Scale struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultScale matches the default configuration: one column is 8 units
// wide, one row is 16 units tall.
var DefaultScale = Scale{CellWidth: 8, CellHeight: 16}

// Rows converts a vertical length to rows, rounding to the nearest row.
func (s Scale) Rows(units float64) int {
	if s.CellHeight <= 0 || units <= 0 {
		return 0
	}
	return int(math.Round(units / s.CellHeight))
}

// Cols converts a horizontal length to columns, rounding to the nearest
// column.
func (s Scale) Cols(units float64) int {
	if s.CellWidth <= 0 || units <= 0 {
		return 0
	}
	return int(math.Round(units / s.CellWidth))
}

// Height converts rows back to logical units.
func (s Scale) Height(rows int) float64 { return float64(rows) * s.CellHeight }

// Width converts columns back to logical units.
func (s Scale) Width(cols int) float64 { return float64(cols) * s.CellWidth }
