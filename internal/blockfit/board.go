package blockfit

import (
	"fmt"
	"strings"
)

// DefaultBoardSize is the width and height of a standard board.
const DefaultBoardSize = 8

// Cell addresses a board position.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a square occupancy grid. Cells flagged as pending belong to a clear
// cycle that has been scored but not yet committed; they still count as
// occupied until ClearCells vacates them.
type Board struct {
	size     int
	occupied [][]bool
	pending  [][]bool
}

// NewBoard creates an empty board of the given size.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic("board size must be positive")
	}
	return &Board{
		size:     size,
		occupied: newGrid(size),
		pending:  newGrid(size),
	}
}

// FromRows builds a board from text rows where '#' marks an occupied cell and
// any other rune an empty one. The row count sets the board size.
func FromRows(rows ...string) *Board {
	b := NewBoard(len(rows))
	for r, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != b.size {
			panic(fmt.Sprintf("row %d has %d cells, want %d", r, len(line), b.size))
		}
		for c, ch := range line {
			b.occupied[r][c] = ch == '#'
		}
	}
	return b
}

// FromGrid builds a board from an occupancy grid such as Snapshot.Board.
func FromGrid(grid [][]bool) *Board {
	b := NewBoard(len(grid))
	for r, row := range grid {
		if len(row) != b.size {
			panic(fmt.Sprintf("row %d has %d cells, want %d", r, len(row), b.size))
		}
		copy(b.occupied[r], row)
	}
	return b
}

func newGrid(size int) [][]bool {
	grid := make([][]bool, size)
	for i := range grid {
		grid[i] = make([]bool, size)
	}
	return grid
}

// Size returns the board width, which is also its height.
func (b *Board) Size() int { return b.size }

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.size && c >= 0 && c < b.size
}

// IsOccupied reports the occupancy of a cell.
func (b *Board) IsOccupied(r, c int) (bool, error) {
	if !b.inBounds(r, c) {
		return false, fmt.Errorf("cell (%d,%d) on %dx%d board: %w", r, c, b.size, b.size, ErrOutOfRange)
	}
	return b.occupied[r][c], nil
}

// FitsAt reports whether every filled cell of shape, anchored at (r, c), lands
// inside the board on an empty cell.
func (b *Board) FitsAt(shape Shape, r, c int) bool {
	for i := 0; i < shape.Rows(); i++ {
		for j := 0; j < shape.Cols(); j++ {
			if !shape.Filled(i, j) {
				continue
			}

			rr, cc := r+i, c+j
			if !b.inBounds(rr, cc) || b.occupied[rr][cc] {
				return false
			}
		}
	}
	return true
}

// Place marks every filled cell of shape as occupied. Callers must check
// FitsAt first; placing a shape that does not fit panics.
func (b *Board) Place(shape Shape, r, c int) {
	if !b.FitsAt(shape, r, c) {
		panic(fmt.Sprintf("shape %s does not fit at (%d,%d)", shape.Name(), r, c))
	}

	for _, off := range shape.Offsets() {
		b.occupied[r+off.Row][c+off.Col] = true
	}
}

// Footprint returns the absolute cells shape would cover at (r, c).
func (b *Board) Footprint(shape Shape, r, c int) []Cell {
	offsets := shape.Offsets()
	for i := range offsets {
		offsets[i].Row += r
		offsets[i].Col += c
	}
	return offsets
}

// IsRowFull reports whether every cell of row r is occupied. Pending cells
// count as occupied.
func (b *Board) IsRowFull(r int) bool {
	if r < 0 || r >= b.size {
		return false
	}
	for c := 0; c < b.size; c++ {
		if !b.occupied[r][c] {
			return false
		}
	}
	return true
}

// IsColFull is IsRowFull for column c.
func (b *Board) IsColFull(c int) bool {
	if c < 0 || c >= b.size {
		return false
	}
	for r := 0; r < b.size; r++ {
		if !b.occupied[r][c] {
			return false
		}
	}
	return true
}

// ClearCells vacates the given cells and drops any pending mark on them.
// Cells outside the board are ignored.
func (b *Board) ClearCells(cells []Cell) {
	for _, cell := range cells {
		if !b.inBounds(cell.Row, cell.Col) {
			continue
		}
		b.occupied[cell.Row][cell.Col] = false
		b.pending[cell.Row][cell.Col] = false
	}
}

// Reset empties the board.
func (b *Board) Reset() {
	for r := 0; r < b.size; r++ {
		clear(b.occupied[r])
		clear(b.pending[r])
	}
}

// MarkPending flags cells as awaiting a clear commit.
func (b *Board) MarkPending(cells []Cell) {
	for _, cell := range cells {
		if b.inBounds(cell.Row, cell.Col) {
			b.pending[cell.Row][cell.Col] = true
		}
	}
}

func (b *Board) IsPending(r, c int) bool {
	return b.inBounds(r, c) && b.pending[r][c]
}

// PendingCells lists pending cells in row-major order.
func (b *Board) PendingCells() []Cell {
	var out []Cell
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.pending[r][c] {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// HasPending reports whether a clear is waiting to be committed.
func (b *Board) HasPending() bool {
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.pending[r][c] {
				return true
			}
		}
	}
	return false
}

// OccupiedCount counts occupied cells, pending ones included.
func (b *Board) OccupiedCount() int {
	n := 0
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			if b.occupied[r][c] {
				n++
			}
		}
	}
	return n
}

// Grid returns a copy of the occupancy grid.
func (b *Board) Grid() [][]bool {
	out := newGrid(b.size)
	for r := range out {
		copy(out[r], b.occupied[r])
	}
	return out
}

// Clone returns an independent copy including pending marks.
func (b *Board) Clone() *Board {
	out := NewBoard(b.size)
	for r := 0; r < b.size; r++ {
		copy(out.occupied[r], b.occupied[r])
		copy(out.pending[r], b.pending[r])
	}
	return out
}

// Settled returns a copy of the board as it will look once pending clears are
// committed.
func (b *Board) Settled() *Board {
	out := b.Clone()
	out.ClearCells(out.PendingCells())
	return out
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			switch {
			case b.pending[r][c]:
				sb.WriteByte('*')
			case b.occupied[r][c]:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
