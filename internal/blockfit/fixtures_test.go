package blockfit_test

import (
	"strings"
	"testing"

	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

func loadBoard(t *testing.T, name string) *blockfit.Board {
	t.Helper()

	archive, err := txtar.ParseFile("testdata/boards.txtar")
	require.NoError(t, err)

	for _, f := range archive.Files {
		if f.Name != name {
			continue
		}
		lines := strings.Split(strings.TrimSpace(string(f.Data)), "\n")
		return blockfit.FromRows(lines...)
	}

	t.Fatalf("board fixture %q not found", name)
	return nil
}

func mustShape(t *testing.T, name string) blockfit.Shape {
	t.Helper()
	shape, ok := blockfit.StandardCatalog().Lookup(name)
	require.True(t, ok, "shape %s", name)
	return shape
}

func piecesOf(shapes ...blockfit.Shape) []blockfit.Piece {
	out := make([]blockfit.Piece, len(shapes))
	for i, s := range shapes {
		out[i] = blockfit.Piece{Slot: i, Shape: s}
	}
	return out
}
