package blockfit

import "errors"

var (
	// ErrOutOfRange reports a coordinate outside the board. It signals a caller
	// bug and is never shown to the player.
	ErrOutOfRange = errors.New("blockfit: coordinate out of range")

	ErrNoSuchPiece = errors.New("blockfit: no such piece in hand")
	ErrPiecePlaced = errors.New("blockfit: piece already placed")
	ErrGameOver    = errors.New("blockfit: game is over")
)
