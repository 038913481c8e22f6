package autoplay_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfit/internal/autoplay"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(t *testing.T, names ...string) []blockfit.Piece {
	t.Helper()
	pieces := make([]blockfit.Piece, len(names))
	for i, name := range names {
		shape, ok := blockfit.StandardCatalog().Lookup(name)
		require.True(t, ok, name)
		pieces[i] = blockfit.Piece{ID: name, Slot: i, Shape: shape}
	}
	return pieces
}

func TestMovesOnEmptyBoard(t *testing.T) {
	moves := autoplay.Moves(blockfit.NewBoard(8), hand(t, "dot", "line4", "square"))

	// 64 dot positions, 8*5 for a horizontal four, 7*7 for the square.
	assert.Len(t, moves, 64+40+49)
	for _, m := range moves {
		assert.Zero(t, m.Cleared)
		assert.Equal(t, m.Cells, m.Gain)
	}
	assert.Equal(t, autoplay.Move{Slot: 0, Row: 0, Col: 0, Cells: 1, Gain: 1}, moves[0])
}

func TestMovesSkipPlacedPieces(t *testing.T) {
	pieces := hand(t, "dot", "dot")
	pieces[0].Placed = true

	for _, m := range autoplay.Moves(blockfit.NewBoard(4), pieces) {
		assert.Equal(t, 1, m.Slot)
	}
}

func TestMovesDoNotTouchBoard(t *testing.T) {
	board := blockfit.FromRows(
		"###.",
		"....",
		"....",
		"....",
	)
	moves := autoplay.Moves(board, hand(t, "dot"))
	assert.Len(t, moves, 13)
	assert.Equal(t, 3, board.OccupiedCount())
	assert.False(t, board.HasPending())
}

func TestGreedyPrefersClears(t *testing.T) {
	board := blockfit.FromRows(
		"###.",
		"....",
		"....",
		"....",
	)
	moves := autoplay.Moves(board, hand(t, "line2", "dot"))

	move, ok := autoplay.Greedy{}.Choose(moves)
	require.True(t, ok)
	assert.Equal(t, 1, move.Slot)
	assert.Equal(t, [2]int{0, 3}, [2]int{move.Row, move.Col})
	assert.Equal(t, 4, move.Cleared)
	assert.Equal(t, 1+4*10+10, move.Gain)
}

func TestStrategiesOnNoMoves(t *testing.T) {
	for _, name := range autoplay.Names() {
		s, err := autoplay.New(name, rand.New(rand.NewPCG(1, 1)))
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())

		_, ok := s.Choose(nil)
		assert.False(t, ok, name)
	}
}

func TestRandomChoosesLegalMove(t *testing.T) {
	moves := autoplay.Moves(blockfit.NewBoard(8), hand(t, "tee", "zig"))
	s := autoplay.Random{Rand: rand.New(rand.NewPCG(3, 4))}

	for i := 0; i < 20; i++ {
		m, ok := s.Choose(moves)
		require.True(t, ok)
		assert.Contains(t, moves, m)
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := autoplay.New("clairvoyant", nil)
	assert.ErrorContains(t, err, "clairvoyant")
	assert.Equal(t, []string{"first", "greedy", "random"}, autoplay.Names())
}
