// Package autoplay chooses moves for a computer player and drives them
// through the same pointer path a human uses.
package autoplay

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/plus3/blockfit/internal/blockfit"
)

// Move is one legal placement and what it would earn.
type Move struct {
	Slot, Row, Col int

	Cells   int
	Cleared int
	Lines   int
	Gain    int
}

// Moves lists every legal placement of the unplaced pieces on board, ordered
// by slot and then row-major position.
func Moves(board *blockfit.Board, hand []blockfit.Piece) []Move {
	clears := blockfit.NewLineClearEngine(nil)
	n := board.Size()

	var moves []Move
	for _, piece := range hand {
		if piece.Placed {
			continue
		}
		for r := 0; r < n; r++ {
			for c := 0; c < n; c++ {
				if !board.FitsAt(piece.Shape, r, c) {
					continue
				}

				trial := board.Clone()
				trial.Place(piece.Shape, r, c)
				result := clears.Evaluate(trial)

				moves = append(moves, Move{
					Slot:    piece.Slot,
					Row:     r,
					Col:     c,
					Cells:   piece.Shape.CellCount(),
					Cleared: result.Cleared(),
					Lines:   result.Lines(),
					Gain:    piece.Shape.CellCount() + result.ScoreDelta,
				})
			}
		}
	}
	return moves
}

// Strategy picks one of the legal moves.
type Strategy interface {
	Name() string
	Choose(moves []Move) (Move, bool)
}

// Greedy takes the move with the highest immediate gain, the earliest one on
// ties.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Choose(moves []Move) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Gain > best.Gain {
			best = m
		}
	}
	return best, true
}

// First takes the first legal move in slot and row-major order.
type First struct{}

func (First) Name() string { return "first" }

func (First) Choose(moves []Move) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[0], true
}

// Random picks uniformly among the legal moves.
type Random struct {
	Rand *rand.Rand
}

func (Random) Name() string { return "random" }

func (s Random) Choose(moves []Move) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[s.Rand.IntN(len(moves))], true
}

var strategies = map[string]func(*rand.Rand) Strategy{
	"greedy": func(*rand.Rand) Strategy { return Greedy{} },
	"first":  func(*rand.Rand) Strategy { return First{} },
	"random": func(rng *rand.Rand) Strategy { return Random{Rand: rng} },
}

// Names lists the strategies New accepts.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func New(name string, rng *rand.Rand) (Strategy, error) {
	factory, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, Names())
	}
	return factory(rng), nil
}
