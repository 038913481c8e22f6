package blockfit

// Clear scoring: every vacated cell and every completed line earn points.
const (
	PointsPerClearedCell = 10
	PointsPerLine        = 10
)

// ClearResult summarises one clear cycle.
type ClearResult struct {
	// Cells holds every cell vacated by the cycle in row-major order. A cell
	// shared by a full row and a full column appears once.
	Cells      []Cell
	Rows       []int
	Cols       []int
	ScoreDelta int
}

func (r ClearResult) Cleared() int { return len(r.Cells) }
func (r ClearResult) Lines() int   { return len(r.Rows) + len(r.Cols) }

// LineClearEngine detects complete rows and columns and scores them.
type LineClearEngine struct {
	score *ScoreTracker
}

// NewLineClearEngine returns an engine crediting clears to score. A nil
// tracker disables scoring.
func NewLineClearEngine(score *ScoreTracker) *LineClearEngine {
	return &LineClearEngine{score: score}
}

// Evaluate runs the mark phase of a clear cycle: complete lines are found,
// their cells flagged pending on the board and the score applied. Lines whose
// cells are all pending already belong to an earlier uncommitted cycle and are
// not counted again.
func (e *LineClearEngine) Evaluate(board *Board) ClearResult {
	size := board.Size()

	fullRows := make([]bool, size)
	fullCols := make([]bool, size)
	var result ClearResult

	for r := 0; r < size; r++ {
		if board.IsRowFull(r) && !e.linePending(board, r, -1) {
			fullRows[r] = true
			result.Rows = append(result.Rows, r)
		}
	}
	for c := 0; c < size; c++ {
		if board.IsColFull(c) && !e.linePending(board, -1, c) {
			fullCols[c] = true
			result.Cols = append(result.Cols, c)
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if (fullRows[r] || fullCols[c]) && !board.IsPending(r, c) {
				result.Cells = append(result.Cells, Cell{Row: r, Col: c})
			}
		}
	}

	if len(result.Cells) == 0 {
		return ClearResult{}
	}

	board.MarkPending(result.Cells)
	result.ScoreDelta = len(result.Cells)*PointsPerClearedCell + result.Lines()*PointsPerLine
	if e.score != nil {
		e.score.AddScore(result.ScoreDelta)
	}

	return result
}

// Commit vacates every pending cell and returns them.
func (e *LineClearEngine) Commit(board *Board) []Cell {
	cells := board.PendingCells()
	board.ClearCells(cells)
	return cells
}

// linePending reports whether every cell of row r (col < 0) or column c
// (row < 0) is pending.
func (e *LineClearEngine) linePending(board *Board, row, col int) bool {
	for i := 0; i < board.Size(); i++ {
		r, c := row, col
		if row < 0 {
			r = i
		} else {
			c = i
		}
		if !board.IsPending(r, c) {
			return false
		}
	}
	return true
}
