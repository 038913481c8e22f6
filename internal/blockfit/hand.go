package blockfit

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// DefaultHandSize is the number of pieces dealt per hand.
const DefaultHandSize = 3

// Piece is one slot of the player's hand.
type Piece struct {
	ID     string
	Slot   int
	Shape  Shape
	Placed bool
}

type HandState int

const (
	// HandEmpty means every piece of the current hand has been placed.
	HandEmpty HandState = iota
	HandActive
)

func (s HandState) String() string {
	switch s {
	case HandActive:
		return "active"
	default:
		return "empty"
	}
}

// HandManager deals and tracks the pieces available to the player.
type HandManager struct {
	catalog    Catalog
	rng        *rand.Rand
	size       int
	pieces     []Piece
	generation int
}

// NewHandManager returns a manager dealing size pieces per hand from catalog.
// No hand is dealt until Spawn is called.
func NewHandManager(catalog Catalog, rng *rand.Rand, size int) *HandManager {
	if len(catalog) == 0 {
		panic("hand manager needs a non-empty catalog")
	}
	if size <= 0 {
		size = DefaultHandSize
	}
	return &HandManager{
		catalog: catalog,
		rng:     rng,
		size:    size,
	}
}

// Spawn replaces the hand with freshly drawn, unplaced pieces. Each shape is
// drawn independently, so duplicates are possible.
func (h *HandManager) Spawn() []Piece {
	h.pieces = make([]Piece, h.size)
	for i := range h.pieces {
		h.pieces[i] = Piece{
			ID:    uuid.NewString(),
			Slot:  i,
			Shape: h.catalog.Random(h.rng),
		}
	}
	h.generation++
	return h.Pieces()
}

// Piece returns the piece in slot.
func (h *HandManager) Piece(slot int) (Piece, error) {
	if slot < 0 || slot >= len(h.pieces) {
		return Piece{}, fmt.Errorf("slot %d: %w", slot, ErrNoSuchPiece)
	}
	return h.pieces[slot], nil
}

// Consume marks the piece in slot as placed and reports whether that emptied
// the hand.
func (h *HandManager) Consume(slot int) (bool, error) {
	if slot < 0 || slot >= len(h.pieces) {
		return false, fmt.Errorf("slot %d: %w", slot, ErrNoSuchPiece)
	}
	if h.pieces[slot].Placed {
		return false, fmt.Errorf("slot %d: %w", slot, ErrPiecePlaced)
	}

	h.pieces[slot].Placed = true
	return h.State() == HandEmpty, nil
}

// Unplaced returns the pieces still waiting to be placed.
func (h *HandManager) Unplaced() []Piece {
	out := make([]Piece, 0, len(h.pieces))
	for _, p := range h.pieces {
		if !p.Placed {
			out = append(out, p)
		}
	}
	return out
}

// Pieces returns the current hand by slot. Placed slots stay in place.
func (h *HandManager) Pieces() []Piece {
	return append([]Piece(nil), h.pieces...)
}

// State reports whether the hand still holds unplaced pieces.
func (h *HandManager) State() HandState {
	for _, p := range h.pieces {
		if !p.Placed {
			return HandActive
		}
	}
	return HandEmpty
}

// Generation counts how many hands have been dealt.
func (h *HandManager) Generation() int { return h.generation }
