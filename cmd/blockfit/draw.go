package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/ui"
)

var (
	backgroundColor = color.RGBA{30, 32, 44, 255}
	boardColor      = color.RGBA{44, 48, 66, 255}
	emptyCellColor  = color.RGBA{56, 61, 84, 255}
	blockColor      = color.RGBA{98, 160, 234, 255}
	pendingColor    = color.RGBA{250, 222, 120, 255}
	ghostColor      = color.RGBA{98, 160, 234, 110}
	overlayColor    = color.RGBA{10, 10, 16, 200}
	buttonColor     = color.RGBA{98, 160, 234, 255}
)

// Pastel colours for hand pieces, keyed by shape name.
var shapeColors = map[string]color.RGBA{
	"dot":    {255, 179, 186, 255},
	"line2":  {179, 229, 252, 255},
	"line3":  {255, 223, 186, 255},
	"line4":  {186, 255, 201, 255},
	"square": {255, 200, 221, 255},
	"tee":    {255, 255, 186, 255},
	"zig":    {217, 186, 255, 255},
	"zag":    {217, 186, 255, 255},
	"ell":    {186, 225, 255, 255},
	"jay":    {186, 225, 255, 255},
	"corner": {255, 223, 186, 255},
}

func pieceColor(shape blockfit.Shape) color.RGBA {
	if c, ok := shapeColors[shape.Name()]; ok {
		return c
	}
	return blockColor
}

func draw(screen *ebiten.Image, game *ui.Game, layout *ui.Layout, drag *ui.Drag, flashes *ecs.Query[struct{ *ui.Flash }]) {
	screen.Fill(backgroundColor)
	snap := game.Snap

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", snap.Score), int(layout.BoardX), 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("BEST %d", snap.Best), int(layout.BoardX), 40)

	drawBoard(screen, snap, layout)

	for f := range flashes.Values() {
		x, y := layout.CellOrigin(f.Flash.Cell.Row, f.Flash.Cell.Col)
		a := uint8(255 * f.Flash.Alpha())
		fillCell(screen, x, y, layout.CellSize, layout.CellGap, color.RGBA{a, a, a, a})
	}

	if drag.Active && drag.Valid {
		for _, cell := range drag.Preview {
			x, y := layout.CellOrigin(cell.Row, cell.Col)
			fillCell(screen, x, y, layout.CellSize, layout.CellGap, ghostColor)
		}
	}

	for _, piece := range snap.Hand {
		if piece.Placed || (drag.Active && drag.Slot == piece.Slot) {
			continue
		}
		x, y := layout.PieceOrigin(piece.Slot, piece.Shape)
		drawShape(screen, piece.Shape, x, y, layout.TrayCell, layout.CellGap/2, pieceColor(piece.Shape))
	}

	if drag.Active && drag.Slot < len(snap.Hand) {
		shape := snap.Hand[drag.Slot].Shape
		drawShape(screen, shape, drag.X, drag.Y, layout.CellSize, layout.CellGap, pieceColor(shape))
	}

	if snap.GameOver {
		drawGameOver(screen, snap, layout)
	}
}

func drawBoard(screen *ebiten.Image, snap blockfit.Snapshot, layout *ui.Layout) {
	size := float32(layout.BoardPixels())
	vector.DrawFilledRect(screen, float32(layout.BoardX), float32(layout.BoardY), size, size, boardColor, false)

	pending := make(map[blockfit.Cell]bool, len(snap.Pending))
	for _, c := range snap.Pending {
		pending[c] = true
	}

	for r := range snap.Board {
		for c := range snap.Board[r] {
			x, y := layout.CellOrigin(r, c)
			clr := emptyCellColor
			switch {
			case pending[blockfit.Cell{Row: r, Col: c}]:
				clr = pendingColor
			case snap.Board[r][c]:
				clr = blockColor
			}
			fillCell(screen, x, y, layout.CellSize, layout.CellGap, clr)
		}
	}
}

func drawShape(screen *ebiten.Image, shape blockfit.Shape, x, y, cell, gap float64, clr color.Color) {
	for _, off := range shape.Offsets() {
		fillCell(screen, x+float64(off.Col)*cell, y+float64(off.Row)*cell, cell, gap, clr)
	}
}

func fillCell(screen *ebiten.Image, x, y, size, gap float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x+gap/2), float32(y+gap/2), float32(size-gap), float32(size-gap), clr, false)
}

func drawGameOver(screen *ebiten.Image, snap blockfit.Snapshot, layout *ui.Layout) {
	size := float32(layout.BoardPixels())
	vector.DrawFilledRect(screen, float32(layout.BoardX), float32(layout.BoardY), size, size, overlayColor, false)

	cx := int(layout.BoardX + layout.BoardPixels()/2)
	cy := int(layout.BoardY + layout.BoardPixels()/2)
	ebitenutil.DebugPrintAt(screen, "GAME OVER", cx-27, cy-int(layout.CellSize))
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), cx-30, cy-int(layout.CellSize)+20)

	x, y, w, h := layout.RestartButton()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), buttonColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, color.White, false)
	ebitenutil.DebugPrintAt(screen, "Restart (R)", int(x+w/2)-33, int(y+h/2)-8)
}
