// Package workbook models a spreadsheet as a mapping of sheet names to
// grids of values. Grid row r and column c hold the spreadsheet cell at
// row r+1 and column c+1.
package workbook

import (
	"github.com/gnames/tfingest/pkg/value"
)

// End is the open stop of a Slice.
const End = int(^uint(0) >> 1)

// Workbook maps sheet names to grids.
type Workbook map[string]*Grid

// Sheet returns the named grid and true if the sheet exists.
func (wb Workbook) Sheet(name string) (*Grid, bool) {
	g, ok := wb[name]
	return g, ok
}

// Set writes a value to a sheet, creating the sheet if needed.
func (wb Workbook) Set(sheet string, r, c int, v value.Value) {
	g, ok := wb[sheet]
	if !ok {
		g = NewGrid(0, 0)
		wb[sheet] = g
	}
	g.Set(r, c, v)
}

// Grid is a rectangular 2-D array of values.
type Grid struct {
	cells  [][]value.Value
	nCols  int
	origin [2]int
}

// NewGrid creates a grid of nulls.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{nCols: cols}
	g.cells = make([][]value.Value, rows)
	for i := range g.cells {
		g.cells[i] = make([]value.Value, cols)
	}
	return g
}

// FromRows creates a grid from ragged rows, padding them with nulls.
func FromRows(rows [][]value.Value) *Grid {
	var cols int
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	g := NewGrid(len(rows), cols)
	for i, r := range rows {
		copy(g.cells[i], r)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.nCols }

// Origin returns the position of the top-left cell of the grid in the
// sheet it was sliced from.
func (g *Grid) Origin() (row, col int) {
	return g.origin[0], g.origin[1]
}

// At returns the value at (r, c), or Null when out of range.
func (g *Grid) At(r, c int) value.Value {
	if r < 0 || c < 0 || r >= len(g.cells) || c >= g.nCols {
		return value.NullValue
	}
	return g.cells[r][c]
}

// Set writes a value, growing the grid when needed.
func (g *Grid) Set(r, c int, v value.Value) {
	if r < 0 || c < 0 {
		return
	}
	if c >= g.nCols {
		g.nCols = c + 1
		for i := range g.cells {
			g.cells[i] = grow(g.cells[i], g.nCols)
		}
	}
	for len(g.cells) <= r {
		g.cells = append(g.cells, make([]value.Value, g.nCols))
	}
	g.cells[r][c] = v
}

// Row returns a copy of row r. Out of range rows are all null.
func (g *Grid) Row(r int) []value.Value {
	res := make([]value.Value, g.nCols)
	if r >= 0 && r < len(g.cells) {
		copy(res, g.cells[r])
	}
	return res
}

// Col returns a copy of column c.
func (g *Grid) Col(c int) []value.Value {
	res := make([]value.Value, len(g.cells))
	for i := range g.cells {
		res[i] = g.At(i, c)
	}
	return res
}

// Slice returns the half-open sub-grid [r0,r1) x [c0,c1). Negative stops
// count from the end, End leaves a stop open, and stops past the grid are
// clipped.
func (g *Grid) Slice(r0, r1, c0, c1 int) *Grid {
	r0, r1 = bounds(r0, r1, len(g.cells))
	c0, c1 = bounds(c0, c1, g.nCols)
	res := NewGrid(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		copy(res.cells[i-r0], g.cells[i][c0:c1])
	}
	res.origin = [2]int{g.origin[0] + r0, g.origin[1] + c0}
	return res
}

func bounds(start, stop, n int) (int, int) {
	norm := func(i int) int {
		if i < 0 {
			i += n
		}
		return min(max(i, 0), n)
	}
	start, stop = norm(start), norm(stop)
	if stop < start {
		stop = start
	}
	return start, stop
}

func grow(row []value.Value, n int) []value.Value {
	if len(row) >= n {
		return row
	}
	res := make([]value.Value, n)
	copy(res, row)
	return res
}
