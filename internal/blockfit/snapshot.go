package blockfit

// NoDrag is the Dragging value when no piece is held.
const NoDrag = -1

// Snapshot is a read-only copy of the session state handed to the
// presentation layer after every call.
type Snapshot struct {
	Board   [][]bool
	Pending []Cell
	Hand    []Piece

	Score int
	Best  int

	GameOver bool

	// Cleared lists the cells vacated by the last placement, for animation.
	Cleared       []Cell
	RefillPending bool
	Dragging      int
	Generation    int
}

// Occupied reports the occupancy of (r, c) in the snapshot, false when out of
// range.
func (s Snapshot) Occupied(r, c int) bool {
	if r < 0 || r >= len(s.Board) || c < 0 || c >= len(s.Board[r]) {
		return false
	}
	return s.Board[r][c]
}

// Unplaced counts hand pieces still available.
func (s Snapshot) Unplaced() int {
	n := 0
	for _, p := range s.Hand {
		if !p.Placed {
			n++
		}
	}
	return n
}

// SettledBoard rebuilds the board as it will be once pending cells are
// vacated, which is the board the next placement is judged against.
func (s Snapshot) SettledBoard() *Board {
	b := FromGrid(s.Board)
	b.ClearCells(s.Pending)
	return b
}
