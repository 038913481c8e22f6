package ui_test

import (
	"testing"

	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/ui"
	"github.com/stretchr/testify/assert"
)

func TestLayoutFitsWindow(t *testing.T) {
	for _, size := range [][2]int{{480, 800}, {1280, 720}, {320, 480}} {
		l := ui.NewLayout(size[0], size[1], 8, 3)

		assert.GreaterOrEqual(t, l.BoardX, 0.0)
		assert.LessOrEqual(t, l.BoardX+l.BoardPixels(), float64(size[0]))
		assert.LessOrEqual(t, l.TrayY+l.TrayHeight, float64(size[1]))
		assert.Greater(t, l.TrayY, l.BoardY+l.BoardPixels())
	}
}

func TestLayoutCellAt(t *testing.T) {
	l := ui.NewLayout(480, 800, 8, 3)

	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			x, y := l.CellOrigin(r, c)
			row, col, ok := l.CellAt(x+l.CellSize/2, y+l.CellSize/2)
			assert.True(t, ok)
			assert.Equal(t, [2]int{r, c}, [2]int{row, col})
		}
	}

	_, _, ok := l.CellAt(l.BoardX-1, l.BoardY)
	assert.False(t, ok)
	_, _, ok = l.CellAt(l.BoardX, l.BoardY+l.BoardPixels()+1)
	assert.False(t, ok)
}

func TestLayoutAnchorRounds(t *testing.T) {
	l := ui.NewLayout(480, 800, 8, 3)
	x, y := l.CellOrigin(2, 3)

	row, col := l.Anchor(x+0.4*l.CellSize, y-0.4*l.CellSize)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	row, col = l.Anchor(x+0.6*l.CellSize, y+0.6*l.CellSize)
	assert.Equal(t, 3, row)
	assert.Equal(t, 4, col)

	row, col = l.Anchor(l.BoardX-2*l.CellSize, l.BoardY)
	assert.Equal(t, 0, row)
	assert.Equal(t, -2, col, "anchors may fall off the board")
}

func TestLayoutSlots(t *testing.T) {
	l := ui.NewLayout(480, 800, 8, 3)
	y := l.TrayY + l.TrayHeight/2

	for slot := 0; slot < 3; slot++ {
		got, ok := l.SlotAt(float64(slot)*l.SlotWidth+1, y)
		assert.True(t, ok)
		assert.Equal(t, slot, got)
	}

	_, ok := l.SlotAt(10, l.TrayY-1)
	assert.False(t, ok)
	_, ok = l.SlotAt(480, y)
	assert.False(t, ok)

	line4, _ := blockfit.StandardCatalog().Lookup("line4")
	px, py := l.PieceOrigin(1, line4)
	assert.GreaterOrEqual(t, px, l.SlotWidth)
	assert.LessOrEqual(t, px+float64(line4.Cols())*l.TrayCell, 2*l.SlotWidth)
	slot, ok := l.SlotAt(px+1, py+1)
	assert.True(t, ok)
	assert.Equal(t, 1, slot)
}

func TestLayoutRestartButtonOnBoard(t *testing.T) {
	l := ui.NewLayout(480, 800, 8, 3)
	x, y, w, h := l.RestartButton()

	assert.GreaterOrEqual(t, x, l.BoardX)
	assert.LessOrEqual(t, x+w, l.BoardX+l.BoardPixels())
	assert.LessOrEqual(t, y+h, l.BoardY+l.BoardPixels())
	assert.True(t, l.InRestartButton(x+w/2, y+h/2))
	assert.False(t, l.InRestartButton(x+w, y))
}
