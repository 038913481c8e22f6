package ui_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const dt = 1.0 / 60

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	layout    ui.Layout

	game    *ecs.Singleton[ui.Game]
	pointer *ecs.Singleton[ui.Pointer]
	drag    *ecs.Singleton[ui.Drag]
	flashes *ecs.Query[struct{ *ui.Flash }]
	timers  *ecs.Query[struct{ *ui.Timer }]
}

func newWorld(t *testing.T) *world {
	t.Helper()

	cfg := blockfit.DefaultConfig()
	cfg.Seed = 7
	cfg.DeferCommit = true
	cfg.DeferRefill = true
	return newWorldWith(t, cfg, "dot")
}

func newWorldWith(t *testing.T, cfg blockfit.Config, shape string) *world {
	t.Helper()

	piece, ok := blockfit.StandardCatalog().Lookup(shape)
	require.True(t, ok)
	log := zaptest.NewLogger(t)
	session := blockfit.NewSession(cfg, blockfit.WithCatalog(blockfit.Catalog{piece}), blockfit.WithLogger(log))
	_, err := session.Start(context.Background())
	require.NoError(t, err)

	registry := ecs.NewComponentRegistry()
	ui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	layout := ui.NewLayout(480, 800, cfg.BoardSize, cfg.HandSize)
	ui.Install(storage, scheduler, session, layout, log)

	return &world{
		storage:   storage,
		scheduler: scheduler,
		layout:    layout,
		game:      ecs.NewSingleton[ui.Game](storage),
		pointer:   ecs.NewSingleton[ui.Pointer](storage),
		drag:      ecs.NewSingleton[ui.Drag](storage),
		flashes:   ecs.NewQuery[struct{ *ui.Flash }](storage),
		timers:    ecs.NewQuery[struct{ *ui.Timer }](storage),
	}
}

func (w *world) tick(p ui.Pointer) {
	*w.pointer.Get() = p
	w.scheduler.Once(dt)
}

func (w *world) wait(d time.Duration) {
	for i := 0; i <= int(math.Ceil(d.Seconds()/dt)); i++ {
		w.tick(ui.Pointer{})
	}
}

func (w *world) snap() blockfit.Snapshot { return w.game.Get().Snap }

// carry presses on slot and moves the piece over (row, col) without
// releasing it.
func (w *world) carry(slot, row, col int) (x, y float64) {
	ox, oy := w.layout.PieceOrigin(slot, w.snap().Hand[slot].Shape)
	w.tick(ui.Pointer{X: ox + w.layout.TrayCell/2, Y: oy + w.layout.TrayCell/2, Down: true, Pressed: true})

	cx, cy := w.layout.CellOrigin(row, col)
	x, y = cx+w.layout.CellSize/2, cy+w.layout.CellSize/2+w.layout.DragLift
	w.tick(ui.Pointer{X: x, Y: y, Down: true})
	return x, y
}

func (w *world) dropAt(slot, row, col int) {
	x, y := w.carry(slot, row, col)
	w.tick(ui.Pointer{X: x, Y: y, Released: true})
}

func (w *world) dropNext(t *testing.T, row, col int) {
	t.Helper()
	if w.snap().RefillPending {
		w.wait(600 * time.Millisecond)
	}
	for _, p := range w.snap().Hand {
		if !p.Placed {
			w.dropAt(p.Slot, row, col)
			return
		}
	}
	t.Fatal("no piece to drop")
}

func TestDragPreviewAndDrop(t *testing.T) {
	w := newWorld(t)

	w.carry(1, 2, 3)
	drag := w.drag.Get()
	require.True(t, drag.Active)
	assert.Equal(t, 1, drag.Slot)
	assert.Equal(t, 2, drag.Row)
	assert.Equal(t, 3, drag.Col)
	assert.True(t, drag.Valid)
	assert.Equal(t, []blockfit.Cell{{Row: 2, Col: 3}}, drag.Preview)
	assert.Equal(t, 1, w.snap().Dragging)

	w.tick(ui.Pointer{X: w.pointer.Get().X, Y: w.pointer.Get().Y, Released: true})
	assert.False(t, w.drag.Get().Active)

	snap := w.snap()
	assert.True(t, snap.Occupied(2, 3))
	assert.True(t, snap.Hand[1].Placed)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, blockfit.Placed, w.game.Get().Last.Outcome)
}

func TestDropOffBoardIsRejected(t *testing.T) {
	w := newWorld(t)

	w.dropAt(0, -3, 0)
	snap := w.snap()
	assert.Equal(t, blockfit.Rejected, w.game.Get().Last.Outcome)
	assert.False(t, snap.Hand[0].Placed)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, blockfit.NoDrag, snap.Dragging)
}

func TestPressOutsideTrayDoesNothing(t *testing.T) {
	w := newWorld(t)

	x, y := w.layout.CellOrigin(4, 4)
	w.tick(ui.Pointer{X: x, Y: y, Down: true, Pressed: true})
	assert.False(t, w.drag.Get().Active)
	assert.Equal(t, blockfit.NoDrag, w.snap().Dragging)
}

func TestRowClearFlashesThenCommits(t *testing.T) {
	w := newWorld(t)

	for c := 0; c < 8; c++ {
		w.dropNext(t, 0, c)
	}

	snap := w.snap()
	assert.Equal(t, 98, snap.Score)
	assert.Len(t, snap.Pending, 8)
	assert.Equal(t, 8, w.flashes.Count())
	assert.Equal(t, 1, w.timers.Count())

	w.wait(350 * time.Millisecond)
	snap = w.snap()
	assert.Empty(t, snap.Pending)
	assert.False(t, snap.Occupied(0, 0))
	assert.Zero(t, w.flashes.Count())
}

func TestRefillAfterDelay(t *testing.T) {
	w := newWorld(t)

	w.dropNext(t, 5, 0)
	w.dropNext(t, 5, 1)
	w.dropNext(t, 5, 2)

	require.True(t, w.snap().RefillPending)
	assert.Equal(t, 1, w.timers.Count())

	w.wait(250 * time.Millisecond)
	assert.True(t, w.snap().RefillPending)

	w.wait(300 * time.Millisecond)
	snap := w.snap()
	assert.False(t, snap.RefillPending)
	assert.Equal(t, 3, snap.Unplaced())
	assert.Equal(t, 2, snap.Generation)
	assert.Zero(t, w.timers.Count())
}

func TestRestartClearsTransientState(t *testing.T) {
	w := newWorld(t)

	for c := 0; c < 8; c++ {
		w.dropNext(t, 0, c)
	}
	require.Positive(t, w.flashes.Count())

	ecs.NewSingleton[ui.Controls](w.storage).Get().Restart = true
	w.tick(ui.Pointer{})

	snap := w.snap()
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 98, snap.Best)
	assert.Empty(t, snap.Pending)
	assert.Zero(t, w.flashes.Count())
	assert.Zero(t, w.timers.Count())
	assert.False(t, ecs.NewSingleton[ui.Controls](w.storage).Get().Restart)
}

func TestSecondClearRestartsCommitTimer(t *testing.T) {
	cfg := blockfit.DefaultConfig()
	cfg.Seed = 3
	cfg.DeferCommit = true
	w := newWorldWith(t, cfg, "line4")

	w.dropAt(0, 1, 0)
	w.dropAt(1, 0, 0)
	w.dropAt(2, 0, 4)
	require.Len(t, w.snap().Pending, 8, "row 0 marked")
	require.Equal(t, 1, w.timers.Count())

	w.wait(100 * time.Millisecond)
	w.dropAt(0, 1, 4)
	snap := w.snap()
	require.Len(t, snap.Pending, 8, "row 0 committed, row 1 marked")
	assert.False(t, snap.Occupied(0, 0))
	assert.Equal(t, 1, w.timers.Count())

	// The first clear's timer would have fired by now.
	w.wait(200 * time.Millisecond)
	assert.Len(t, w.snap().Pending, 8)

	w.wait(150 * time.Millisecond)
	assert.Empty(t, w.snap().Pending)
	assert.Zero(t, w.timers.Count())
}

func TestGameOverButtonRestarts(t *testing.T) {
	cfg := blockfit.DefaultConfig()
	cfg.BoardSize = 3
	w := newWorldWith(t, cfg, "square")

	w.dropAt(0, 0, 0)
	require.True(t, w.snap().GameOver)

	x, y, bw, bh := w.layout.RestartButton()
	w.tick(ui.Pointer{X: x - 1, Y: y + bh/2, Down: true, Pressed: true})
	assert.True(t, w.snap().GameOver, "press outside the button")

	w.tick(ui.Pointer{X: x + bw/2, Y: y + bh/2, Down: true, Pressed: true})
	snap := w.snap()
	assert.False(t, snap.GameOver)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 4, snap.Best)
	assert.False(t, w.drag.Get().Active)
}

func TestFlashAlpha(t *testing.T) {
	assert.Equal(t, 1.0, ui.Flash{Remaining: 0.3, Duration: 0.3}.Alpha())
	assert.InDelta(t, 0.5, ui.Flash{Remaining: 0.15, Duration: 0.3}.Alpha(), 1e-9)
	assert.Equal(t, 0.0, ui.Flash{Remaining: -1, Duration: 0.3}.Alpha())
	assert.Equal(t, 0.0, ui.Flash{}.Alpha())
}
