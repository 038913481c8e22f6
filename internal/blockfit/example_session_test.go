package blockfit_test

import (
	"context"
	"fmt"

	"github.com/plus3/blockfit/internal/blockfit"
)

func ExampleSession() {
	dot, _ := blockfit.StandardCatalog().Lookup("dot")
	s := blockfit.NewSession(blockfit.DefaultConfig(), blockfit.WithCatalog(blockfit.Catalog{dot}))

	snap, _ := s.Start(context.Background())
	fmt.Printf("hand: %d pieces, score %d\n", len(snap.Hand), snap.Score)

	// Fill the top row one dot at a time. The hand refills every third drop.
	var result blockfit.PlaceResult
	for c := 0; c < 8; c++ {
		snap, result, _ = s.DragRelease(c%3, 0, c)
	}
	fmt.Printf("cleared %d cells, score %d\n", result.Clear.Cleared(), snap.Score)
	fmt.Println(snap.Occupied(0, 0), snap.GameOver)

	// Output:
	// hand: 3 pieces, score 0
	// cleared 8 cells, score 98
	// false false
}

func ExampleBoard_String() {
	board := blockfit.NewBoard(4)
	square, _ := blockfit.StandardCatalog().Lookup("square")
	board.Place(square, 1, 1)
	fmt.Print(board)

	// Output:
	// ....
	// .##.
	// .##.
	// ....
}
