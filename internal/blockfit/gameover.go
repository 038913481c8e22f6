package blockfit

// IsGameOver reports whether none of the unplaced pieces fits anywhere on the
// board. An empty hand is never game over since a refill is pending.
func IsGameOver(board *Board, unplaced []Piece) bool {
	remaining := 0
	for _, p := range unplaced {
		if p.Placed {
			continue
		}
		remaining++
		if _, _, ok := FirstFit(board, p.Shape); ok {
			return false
		}
	}
	return remaining > 0
}

// FirstFit scans anchors in row-major order and returns the first one where
// shape fits.
func FirstFit(board *Board, shape Shape) (row, col int, ok bool) {
	size := board.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board.FitsAt(shape, r, c) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
