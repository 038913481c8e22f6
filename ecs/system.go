package ecs

// System is one step of a frame. Query and Singleton fields of a registered
// system are bound by the Scheduler; other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// NamedSystem overrides the name reported in scheduler stats, which otherwise
// is the system's type name.
type NamedSystem interface {
	System
	Name() string
}
