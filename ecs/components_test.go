package ecs_test

import "github.com/plus3/blockfit/ecs"

type Tile struct {
	Row, Col int
}

type Tint struct {
	R, G, B uint8
}

type Fade struct {
	Remaining float64
}

type Label string

type Slot int

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Tile](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Fade](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Slot](registry)
	return ecs.NewStorage(registry)
}
