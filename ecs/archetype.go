package ecs

import (
	"iter"
	"reflect"
	"slices"
)

// Archetype stores every entity that has exactly one particular set of
// component types, one column per type. Columns are kept in step so a slot
// index addresses the same entity in each of them.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

func (a *Archetype) ID() uint32 { return a.id }

// Types returns the component types sorted by name. The slice must not be
// modified.
func (a *Archetype) Types() []reflect.Type { return a.types }

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].size()
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for _, comp := range components {
		at := a.columns[a.columnIndex(componentType(comp))].add(comp)
		if index >= 0 && at != index {
			panic("ecs: archetype columns out of step")
		}
		index = at
	}
	return uint32(index)
}

func (a *Archetype) component(index uint32, t reflect.Type) any {
	ci := a.columnIndex(t)
	if ci < 0 {
		return nil
	}
	return a.columns[ci].at(int(index))
}

func (a *Archetype) alive(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].at(int(index)) != nil
}

func (a *Archetype) remove(index uint32) {
	for _, col := range a.columns {
		col.remove(int(index))
	}
}

// Entities yields the ids of live entities in slot order.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].indices() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
