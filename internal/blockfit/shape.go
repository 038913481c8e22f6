package blockfit

import (
	"math/rand/v2"
)

// Shape is an immutable rectangular occupancy matrix describing which cells a
// piece covers relative to its top-left corner.
type Shape struct {
	name  string
	cells [][]bool
	count int
}

// NewShape builds a shape from 0/1 rows. It panics on empty or ragged input,
// or when no cell is set.
func NewShape(name string, rows ...[]int) Shape {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("shape " + name + " has no rows")
	}

	width := len(rows[0])
	cells := make([][]bool, len(rows))
	count := 0
	for i, row := range rows {
		if len(row) != width {
			panic("shape " + name + " is not rectangular")
		}
		cells[i] = make([]bool, width)
		for j, v := range row {
			if v != 0 {
				cells[i][j] = true
				count++
			}
		}
	}

	if count == 0 {
		panic("shape " + name + " has no filled cells")
	}

	return Shape{name: name, cells: cells, count: count}
}

func (s Shape) Name() string { return s.name }
func (s Shape) Rows() int    { return len(s.cells) }

func (s Shape) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// Filled reports whether the relative cell (i, j) is part of the shape.
func (s Shape) Filled(i, j int) bool {
	if i < 0 || i >= len(s.cells) || j < 0 || j >= len(s.cells[i]) {
		return false
	}
	return s.cells[i][j]
}

// CellCount is the number of filled cells, which is also the placement score.
func (s Shape) CellCount() int { return s.count }

// Offsets returns the relative coordinates of every filled cell in row-major order.
func (s Shape) Offsets() []Cell {
	out := make([]Cell, 0, s.count)
	for i, row := range s.cells {
		for j, v := range row {
			if v {
				out = append(out, Cell{Row: i, Col: j})
			}
		}
	}
	return out
}

// Matrix returns a copy of the occupancy matrix.
func (s Shape) Matrix() [][]bool {
	out := make([][]bool, len(s.cells))
	for i := range s.cells {
		out[i] = append([]bool(nil), s.cells[i]...)
	}
	return out
}

// Catalog is a fixed set of shapes that hands are drawn from.
type Catalog []Shape

// Random draws one shape uniformly.
func (c Catalog) Random(rng *rand.Rand) Shape {
	return c[rng.IntN(len(c))]
}

// Lookup finds a shape by name.
func (c Catalog) Lookup(name string) (Shape, bool) {
	for _, s := range c {
		if s.name == name {
			return s, true
		}
	}
	return Shape{}, false
}

var standardCatalog = Catalog{
	NewShape("dot", []int{1}),
	NewShape("line4", []int{1, 1, 1, 1}),
	NewShape("tee", []int{1, 1, 1}, []int{0, 1, 0}),
	NewShape("square", []int{1, 1}, []int{1, 1}),
	NewShape("zig", []int{1, 1, 0}, []int{0, 1, 1}),
	NewShape("zag", []int{0, 1, 1}, []int{1, 1, 0}),
	NewShape("ell", []int{1, 0, 0}, []int{1, 1, 1}),
	NewShape("jay", []int{0, 0, 1}, []int{1, 1, 1}),
	NewShape("line2", []int{1, 1}),
	NewShape("line3", []int{1, 1, 1}),
	NewShape("corner", []int{1, 1}, []int{1, 0}),
}

// StandardCatalog returns the eleven shapes offered by the game. Shapes are
// never rotated or mirrored.
func StandardCatalog() Catalog {
	return append(Catalog(nil), standardCatalog...)
}
