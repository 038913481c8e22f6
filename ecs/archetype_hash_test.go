package ecs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hashCell struct{ Row, Col int }

type hashMark struct{ On bool }

func TestArchetypeHashCollision(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[hashCell](registry)
	RegisterComponent[hashMark](registry)
	storage := NewStorage(registry)

	// Occupy the id hashCell would hash to with a different type set.
	cellTypes := []reflect.Type{reflect.TypeFor[hashCell]()}
	taken := archetypeHash(cellTypes)
	squatter := newArchetype(taken, []reflect.Type{reflect.TypeFor[hashMark]()}, registry)
	storage.byId.Put(taken, squatter)
	storage.archetypes = append(storage.archetypes, squatter)

	id := storage.Spawn(hashCell{Row: 2, Col: 3})
	assert.NotEqual(t, taken, id.ArchetypeId())

	cell := ReadComponent[hashCell](storage, id)
	require.NotNil(t, cell)
	assert.Equal(t, hashCell{Row: 2, Col: 3}, *cell)
	assert.Zero(t, squatter.Len())

	again := storage.Spawn(hashCell{Row: 4})
	assert.Equal(t, id.ArchetypeId(), again.ArchetypeId(), "second spawn reuses the relocated archetype")

	arch := storage.GetArchetype(hashCell{})
	require.NotNil(t, arch)
	assert.Equal(t, id.ArchetypeId(), arch.ID())
	assert.Equal(t, 2, arch.Len())
}
