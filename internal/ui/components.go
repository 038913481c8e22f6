package ui

import (
	"github.com/plus3/blockfit/ecs"
	"github.com/plus3/blockfit/internal/blockfit"
	"go.uber.org/zap"
)

// Game is the singleton tying the ECS world to one play session.
type Game struct {
	Session *blockfit.Session
	Snap    blockfit.Snapshot
	Last    blockfit.PlaceResult
	Log     *zap.Logger
}

// Pointer is the latest mouse or touch state. The platform layer writes it
// before each tick; Pressed and Released are edge flags for this tick only.
type Pointer struct {
	X, Y     float64
	Down     bool
	Pressed  bool
	Released bool
}

// Controls carries one-shot key commands for this tick.
type Controls struct {
	Restart bool
}

// Drag describes the piece currently held by the pointer.
type Drag struct {
	Active bool
	Slot   int

	// GrabX and GrabY locate the pointer inside the piece, in cells.
	GrabX, GrabY float64

	// X and Y are the top-left pixel of the held piece at board scale.
	X, Y float64

	Row, Col int
	Preview  []blockfit.Cell
	Valid    bool
}

type TimerAction int

const (
	CommitClear TimerAction = iota
	Refill
)

func (a TimerAction) String() string {
	switch a {
	case CommitClear:
		return "commit-clear"
	case Refill:
		return "refill"
	default:
		return "unknown"
	}
}

// Timer runs Action on the session once Remaining seconds have passed.
type Timer struct {
	Action    TimerAction
	Remaining float64
}

// Flash highlights one cleared cell while it fades out.
type Flash struct {
	Cell      blockfit.Cell
	Remaining float64
	Duration  float64
}

// Alpha is the remaining opacity, 1 when spawned and 0 when expired.
func (f Flash) Alpha() float64 {
	if f.Duration <= 0 {
		return 0
	}
	return max(0, min(1, f.Remaining/f.Duration))
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Timer](registry)
	ecs.RegisterComponent[Flash](registry)
}
