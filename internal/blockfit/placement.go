package blockfit

import "fmt"

type PlaceOutcome int

const (
	// Rejected means the drop target was invalid; nothing changed.
	Rejected PlaceOutcome = iota
	Placed
)

func (o PlaceOutcome) String() string {
	if o == Placed {
		return "placed"
	}
	return "rejected"
}

// PlaceResult describes what a placement attempt did.
type PlaceResult struct {
	Outcome        PlaceOutcome
	Piece          Piece
	Row, Col       int
	PlacementScore int
	Clear          ClearResult
	HandEmptied    bool
}

// PlacementEngine validates and applies placements, then runs the clear
// cycle as part of the same step.
type PlacementEngine struct {
	score  *ScoreTracker
	clears *LineClearEngine
}

func NewPlacementEngine(score *ScoreTracker, clears *LineClearEngine) *PlacementEngine {
	return &PlacementEngine{score: score, clears: clears}
}

// AttemptPlace tries to drop the piece in slot with its top-left corner on
// (r, c). A piece that does not fit yields a Rejected result and no error;
// errors are reserved for slots that are empty or already placed.
func (e *PlacementEngine) AttemptPlace(board *Board, hand *HandManager, slot, r, c int) (PlaceResult, error) {
	piece, err := hand.Piece(slot)
	if err != nil {
		return PlaceResult{}, err
	}
	if piece.Placed {
		return PlaceResult{Piece: piece}, fmt.Errorf("slot %d: %w", slot, ErrPiecePlaced)
	}

	result := PlaceResult{Piece: piece, Row: r, Col: c}
	if !board.FitsAt(piece.Shape, r, c) {
		return result, nil
	}

	board.Place(piece.Shape, r, c)
	result.Outcome = Placed
	result.PlacementScore = piece.Shape.CellCount()
	e.score.AddScore(result.PlacementScore)

	emptied, err := hand.Consume(slot)
	if err != nil {
		return result, err
	}
	result.HandEmptied = emptied
	result.Piece.Placed = true

	result.Clear = e.clears.Evaluate(board)
	return result, nil
}
