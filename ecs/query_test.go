package ecs_test

import (
	"testing"

	"github.com/plus3/blockfit/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[struct{ *Tile }](storage)

	storage.Spawn(Tile{Row: 1})
	assert.Equal(t, 1, query.Count())

	storage.Spawn(Tile{Row: 2}, Fade{})
	storage.Spawn(Fade{})
	assert.Equal(t, 2, query.Count())

	rows := []int{}
	for v := range query.Values() {
		rows = append(rows, v.Tile.Row)
	}
	assert.Equal(t, []int{1, 2}, rows, "archetypes iterate in creation order")
}

func TestQuerySeesDeletes(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[struct{ *Fade }](storage)

	a := storage.Spawn(Fade{Remaining: 1})
	storage.Spawn(Fade{Remaining: 2})
	assert.Equal(t, 2, query.Count())

	storage.Delete(a)
	assert.Equal(t, 1, query.Count())
	assert.Nil(t, query.Get(a))
}

func TestQueryBeforeInit(t *testing.T) {
	var query ecs.Query[struct{ *Tile }]
	assert.Panics(t, func() { query.Iter() })
}
