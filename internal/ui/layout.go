package ui

import (
	"math"

	"github.com/plus3/blockfit/internal/blockfit"
)

const (
	margin       = 16.0
	headerHeight = 64.0

	// trayScale is the size of a resting hand piece relative to the board.
	trayScale = 0.55
)

// Layout places the board and the hand tray in screen pixels. It is a pure
// function of the window size, so it is rebuilt on every resize.
type Layout struct {
	Width, Height int
	BoardSize     int
	HandSize      int

	BoardX, BoardY float64
	CellSize       float64
	CellGap        float64

	TrayY      float64
	TrayHeight float64
	TrayCell   float64
	SlotWidth  float64

	// DragLift raises a held piece above the pointer so a finger does not
	// hide it.
	DragLift float64
}

func NewLayout(width, height, boardSize, handSize int) Layout {
	w, h := float64(width), float64(height)
	n := float64(boardSize)

	// The tray must fit a four-cell-tall piece at tray scale plus padding,
	// half a cell below the board.
	trayCells := 4*trayScale + 1
	cell := math.Min((w-2*margin)/n, (h-headerHeight-2*margin)/(n+trayCells+0.5))
	cell = math.Max(cell, 4)

	l := Layout{
		Width:     width,
		Height:    height,
		BoardSize: boardSize,
		HandSize:  handSize,
		CellSize:  cell,
		CellGap:   math.Max(1, math.Round(cell*0.06)),
		BoardX:    (w - cell*n) / 2,
		BoardY:    headerHeight + margin/2,
		TrayCell:  cell * trayScale,
		SlotWidth: w / float64(max(handSize, 1)),
		DragLift:  cell,
	}
	l.TrayY = l.BoardY + l.BoardPixels() + cell/2
	l.TrayHeight = cell * trayCells
	return l
}

// BoardPixels is the side length of the board.
func (l Layout) BoardPixels() float64 {
	return l.CellSize * float64(l.BoardSize)
}

// CellOrigin is the top-left pixel of board cell (r, c).
func (l Layout) CellOrigin(r, c int) (x, y float64) {
	return l.BoardX + float64(c)*l.CellSize, l.BoardY + float64(r)*l.CellSize
}

// CellAt returns the board cell under (x, y).
func (l Layout) CellAt(x, y float64) (row, col int, ok bool) {
	col = int(math.Floor((x - l.BoardX) / l.CellSize))
	row = int(math.Floor((y - l.BoardY) / l.CellSize))
	ok = row >= 0 && row < l.BoardSize && col >= 0 && col < l.BoardSize
	return row, col, ok
}

// Anchor snaps the top-left corner of a dragged piece at (x, y) to the
// nearest cell. The result may lie off the board.
func (l Layout) Anchor(x, y float64) (row, col int) {
	col = int(math.Round((x - l.BoardX) / l.CellSize))
	row = int(math.Round((y - l.BoardY) / l.CellSize))
	return row, col
}

// SlotAt returns the hand slot whose tray area contains (x, y).
func (l Layout) SlotAt(x, y float64) (int, bool) {
	if y < l.TrayY || y >= l.TrayY+l.TrayHeight || x < 0 || x >= float64(l.Width) {
		return 0, false
	}
	slot := int(x / l.SlotWidth)
	if slot >= l.HandSize {
		return 0, false
	}
	return slot, true
}

// PieceOrigin is the top-left pixel of shape resting centred in slot.
func (l Layout) PieceOrigin(slot int, shape blockfit.Shape) (x, y float64) {
	w := float64(shape.Cols()) * l.TrayCell
	h := float64(shape.Rows()) * l.TrayCell
	x = float64(slot)*l.SlotWidth + (l.SlotWidth-w)/2
	y = l.TrayY + (l.TrayHeight-h)/2
	return x, y
}

// RestartButton is the button drawn on the game-over overlay, centred on the
// lower half of the board.
func (l Layout) RestartButton() (x, y, w, h float64) {
	w = math.Min(l.BoardPixels()/2, 200)
	h = l.CellSize
	x = l.BoardX + (l.BoardPixels()-w)/2
	y = l.BoardY + l.BoardPixels()/2 + l.CellSize/2
	return x, y, w, h
}

func (l Layout) InRestartButton(px, py float64) bool {
	x, y, w, h := l.RestartButton()
	return px >= x && px < x+w && py >= y && py < y+h
}
