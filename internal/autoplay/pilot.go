package autoplay

import (
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/blockfit"
	"github.com/plus3/blockfit/internal/ui"
)

type phase int

const (
	idle phase = iota
	carrying
	dropping
)

// Tally counts what the pilot has done since it was installed.
type Tally struct {
	Moves        int
	Rejected     int
	Lines        int
	ClearedCells int
	BestTurn     int
}

// PilotSystem plays by writing the Pointer singleton: press on the chosen
// piece, carry it over the target, release. It must run before
// ui.DragSystem.
type PilotSystem struct {
	Game     ecs.Singleton[ui.Game]
	Pointer  ecs.Singleton[ui.Pointer]
	Layout   ecs.Singleton[ui.Layout]
	Controls ecs.Singleton[ui.Controls]
	Tally    ecs.Singleton[Tally]

	Strategy Strategy

	phase   phase
	move    Move
	dropped bool
}

func NewPilot(storage *ecs.Storage, strategy Strategy) *PilotSystem {
	ecs.NewSingleton(storage, Tally{})
	return &PilotSystem{Strategy: strategy}
}

func (s *PilotSystem) Execute(*ecs.UpdateFrame) {
	game, pointer, layout := s.Game.Get(), s.Pointer.Get(), s.Layout.Get()
	pointer.Pressed, pointer.Released = false, false

	if s.dropped {
		s.dropped = false
		s.record(game.Last)
	}

	// A restart is about to run. Let go of whatever is held.
	if s.Controls.Get().Restart {
		pointer.Down = false
		s.Reset()
		return
	}

	switch s.phase {
	case idle:
		snap := game.Snap
		if snap.GameOver || snap.RefillPending || snap.Unplaced() == 0 {
			return
		}
		move, ok := s.Strategy.Choose(Moves(snap.SettledBoard(), snap.Hand))
		if !ok {
			return
		}
		s.move = move

		// Grab the piece by the centre of its top-left cell so the carried
		// corner lands exactly on the target cell.
		x, y := layout.PieceOrigin(move.Slot, snap.Hand[move.Slot].Shape)
		pointer.X, pointer.Y = x+layout.TrayCell/2, y+layout.TrayCell/2
		pointer.Down, pointer.Pressed = true, true
		s.phase = carrying

	case carrying:
		x, y := layout.CellOrigin(s.move.Row, s.move.Col)
		pointer.X = x + layout.CellSize/2
		pointer.Y = y + layout.CellSize/2 + layout.DragLift
		s.phase = dropping

	case dropping:
		pointer.Down, pointer.Released = false, true
		s.phase = idle
		s.dropped = true
	}
}

func (s *PilotSystem) record(result blockfit.PlaceResult) {
	tally := s.Tally.Get()
	if tally == nil {
		return
	}
	if result.Outcome != blockfit.Placed {
		tally.Rejected++
		return
	}

	tally.Moves++
	tally.Lines += result.Clear.Lines()
	tally.ClearedCells += result.Clear.Cleared()
	tally.BestTurn = max(tally.BestTurn, result.PlacementScore+result.Clear.ScoreDelta)
}

// Reset returns the pilot to idle.
func (s *PilotSystem) Reset() {
	s.phase = idle
	s.dropped = false
}
