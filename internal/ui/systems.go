package ui

import (
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/blockfit"
	"go.uber.org/zap"
)

// Install adds the play singletons to storage and registers the play systems
// on scheduler in update order. session must already be started.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler, session *blockfit.Session, layout Layout, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	ecs.NewSingleton(storage, Game{Session: session, Snap: session.Snapshot(), Log: log})
	ecs.NewSingleton(storage, layout)
	ecs.NewSingleton(storage, Pointer{})
	ecs.NewSingleton(storage, Controls{})
	ecs.NewSingleton(storage, Drag{})

	scheduler.Register(&ControlSystem{})
	scheduler.Register(&DragSystem{})
	scheduler.Register(&TimerSystem{})
	scheduler.Register(&FlashSystem{})
}

// ControlSystem handles restart, from the R key or the game-over button.
type ControlSystem struct {
	Controls ecs.Singleton[Controls]
	Pointer  ecs.Singleton[Pointer]
	Layout   ecs.Singleton[Layout]
	Game     ecs.Singleton[Game]
	Drag     ecs.Singleton[Drag]
	Timers   ecs.Query[struct{ *Timer }]
	Flashes  ecs.Query[struct{ *Flash }]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	controls, pointer, game := s.Controls.Get(), s.Pointer.Get(), s.Game.Get()
	if game.Snap.GameOver && pointer.Pressed && s.Layout.Get().InRestartButton(pointer.X, pointer.Y) {
		controls.Restart = true
		pointer.Pressed = false
	}
	if !controls.Restart {
		return
	}
	controls.Restart = false

	game.Snap = game.Session.Restart()
	game.Last = blockfit.PlaceResult{}
	*s.Drag.Get() = Drag{}

	for id := range s.Timers.Iter() {
		frame.Commands.Delete(id)
	}
	for id := range s.Flashes.Iter() {
		frame.Commands.Delete(id)
	}
}

// DragSystem turns pointer movement into pickups, previews and drops.
type DragSystem struct {
	Game    ecs.Singleton[Game]
	Pointer ecs.Singleton[Pointer]
	Layout  ecs.Singleton[Layout]
	Drag    ecs.Singleton[Drag]
	Timers  ecs.Query[struct{ *Timer }]
}

func (s *DragSystem) Execute(frame *ecs.UpdateFrame) {
	game, pointer, layout, drag := s.Game.Get(), s.Pointer.Get(), s.Layout.Get(), s.Drag.Get()

	if pointer.Pressed && !drag.Active {
		s.pickUp(game, pointer, layout, drag)
	}
	if !drag.Active {
		return
	}

	drag.X = pointer.X - drag.GrabX*layout.CellSize
	drag.Y = pointer.Y - drag.GrabY*layout.CellSize - layout.DragLift
	drag.Row, drag.Col = layout.Anchor(drag.X, drag.Y)
	drag.Preview, drag.Valid = game.Session.Preview(drag.Slot, drag.Row, drag.Col)

	if pointer.Released || !pointer.Down {
		s.drop(frame, game, drag)
	}
}

func (s *DragSystem) pickUp(game *Game, pointer *Pointer, layout *Layout, drag *Drag) {
	slot, ok := layout.SlotAt(pointer.X, pointer.Y)
	if !ok {
		return
	}

	snap, err := game.Session.DragStart(slot)
	game.Snap = snap
	if err != nil {
		game.Log.Debug("pickup refused", zap.Int("slot", slot), zap.Error(err))
		return
	}

	ox, oy := layout.PieceOrigin(slot, snap.Hand[slot].Shape)
	*drag = Drag{
		Active: true,
		Slot:   slot,
		GrabX:  (pointer.X - ox) / layout.TrayCell,
		GrabY:  (pointer.Y - oy) / layout.TrayCell,
	}
}

func (s *DragSystem) drop(frame *ecs.UpdateFrame, game *Game, drag *Drag) {
	slot, row, col := drag.Slot, drag.Row, drag.Col
	*drag = Drag{}

	snap, result, err := game.Session.DragRelease(slot, row, col)
	game.Snap = snap
	if err != nil {
		game.Log.Debug("drop refused", zap.Int("slot", slot), zap.Error(err))
		return
	}
	game.Last = result
	if result.Outcome == blockfit.Rejected {
		return
	}

	cfg := game.Session.Config()
	if result.Clear.Cleared() > 0 {
		d := cfg.ClearDelay.Seconds()
		for _, cell := range result.Clear.Cells {
			frame.Commands.Spawn(Flash{Cell: cell, Remaining: d, Duration: d})
		}
		if cfg.DeferCommit {
			// One commit timer at a time. The session already committed any
			// earlier clear before placing this piece.
			for id, t := range s.Timers.Iter() {
				if t.Timer.Action == CommitClear {
					frame.Commands.Delete(id)
				}
			}
			frame.Commands.Spawn(Timer{Action: CommitClear, Remaining: d})
		}
	}
	if snap.RefillPending {
		frame.Commands.Spawn(Timer{Action: Refill, Remaining: cfg.RefillDelay.Seconds()})
	}
}

// TimerSystem fires deferred session steps.
type TimerSystem struct {
	Game   ecs.Singleton[Game]
	Timers ecs.Query[struct{ *Timer }]
}

func (s *TimerSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Get()

	for id, t := range s.Timers.Iter() {
		t.Timer.Remaining -= frame.DeltaTime
		if t.Timer.Remaining > 0 {
			continue
		}

		switch t.Timer.Action {
		case CommitClear:
			game.Snap = game.Session.CommitClear()
		case Refill:
			game.Snap = game.Session.Refill()
		}
		game.Log.Debug("timer fired", zap.Stringer("action", t.Timer.Action))
		frame.Commands.Delete(id)
	}
}

// FlashSystem fades out cleared-cell highlights.
type FlashSystem struct {
	Flashes ecs.Query[struct{ *Flash }]
}

func (s *FlashSystem) Execute(frame *ecs.UpdateFrame) {
	for id, f := range s.Flashes.Iter() {
		f.Flash.Remaining -= frame.DeltaTime
		if f.Flash.Remaining <= 0 {
			frame.Commands.Delete(id)
		}
	}
}
