package model

// Cell classifies one cell of the host's occupancy map. The agent carries
// the grid but leaves pathing and collision to the host.
type Cell byte

const (
	Open    Cell = 0 // land
	Water   Cell = 1 // naval only
	Blocked Cell = 2 // mountain or other obstacle
)

// Grid is the host's occupancy map, row-major.
type Grid struct {
	Cols  int
	Rows  int
	Cells []Cell // Cells[row*Cols + col]
}

// NewGrid builds a grid from raw host values. Unknown values are kept as-is.
// Returns nil when the dimensions do not match the data.
func NewGrid(cols, rows int, raw []int) *Grid {
	if cols <= 0 || rows <= 0 || len(raw) != cols*rows {
		return nil
	}
	cells := make([]Cell, len(raw))
	for i, v := range raw {
		cells[i] = Cell(v)
	}
	return &Grid{Cols: cols, Rows: rows, Cells: cells}
}

// At returns the cell at (col, row). Returns Open for out-of-bounds
// coordinates.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return Open
	}
	return g.Cells[row*g.Cols+col]
}

// AtPoint returns the cell containing p.
func (g *Grid) AtPoint(p Point) Cell {
	if p.X < 0 || p.Y < 0 {
		return Open
	}
	return g.At(int(p.X), int(p.Y))
}

// HasWater returns true if any cell is water.
func (g *Grid) HasWater() bool {
	for _, c := range g.Cells {
		if c == Water {
			return true
		}
	}
	return false
}
