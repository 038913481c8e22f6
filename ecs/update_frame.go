package ecs

// UpdateFrame is what a system sees for one scheduler tick.
type UpdateFrame struct {
	// DeltaTime is the elapsed time since the previous tick, in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Tick      uint64
}
