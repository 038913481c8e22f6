package ecs

import (
	"reflect"
	"slices"
	"strings"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage holds every entity and singleton of one world.
type Storage struct {
	registry *ComponentRegistry

	// archetypes keeps creation order so iteration is deterministic; byId
	// indexes the same values.
	archetypes []*Archetype
	byId       *intmap.Map[uint32, *Archetype]
	singletons *intmap.Map[int, *singletonEntry]
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		byId:       intmap.New[uint32, *Archetype](16),
		singletons: intmap.New[int, *singletonEntry](16),
	}
}

func (s *Storage) Registry() *ComponentRegistry { return s.registry }

// Archetypes returns the archetypes in creation order. The slice must not be
// modified.
func (s *Storage) Archetypes() []*Archetype { return s.archetypes }

// GetArchetype returns the archetype holding exactly the given component
// types, or nil if none has been created.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	archetype, _ := s.findArchetype(componentTypes(components))
	return archetype
}

// Spawn creates an entity from components, given as values or pointers.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn an entity without components")
	}

	types := componentTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity. Deleting a dead entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.byId.Get(id.ArchetypeId()); ok {
		archetype.remove(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.byId.Get(id.ArchetypeId())
	return ok && archetype.alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.byId.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), t)
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	archetype, ok := s.byId.Get(id.ArchetypeId())
	return ok && archetype.HasComponent(t)
}

// findArchetype looks types up by hash. A hash already taken by a different
// type set moves on to the following ids; the first free id is returned on a miss.
func (s *Storage) findArchetype(types []reflect.Type) (*Archetype, uint32) {
	id := archetypeHash(types)
	for {
		archetype, ok := s.byId.Get(id)
		if !ok {
			return nil, id
		}
		if slices.Equal(archetype.types, types) {
			return archetype, id
		}
		id++
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetype, id := s.findArchetype(types)
	if archetype != nil {
		return archetype
	}

	archetype = newArchetype(id, types, s.registry)
	s.byId.Put(id, archetype)
	s.archetypes = append(s.archetypes, archetype)
	return archetype
}

// componentType returns the value type of a component passed by value or by
// pointer.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// componentTypes returns the sorted component types, panicking on duplicates.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
	}

	sortTypes(types)
	for i := 1; i < len(types); i++ {
		if types[i] == types[i-1] {
			panic("ecs: duplicate component type " + types[i].String())
		}
	}
	return types
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// ifaceWords is the two-word layout every interface value shares. For a
// reflect.Type the data word is the *rtype, which is unique per type.
type ifaceWords struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func typeId(t reflect.Type) int {
	return int(uintptr((*ifaceWords)(unsafe.Pointer(&t)).data))
}

// archetypeHash is FNV-1a over the runtime type pointers of sorted types.
func archetypeHash(types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)

	h := offset
	for _, t := range types {
		p := uint64(typeId(t))
		h ^= uint32(p) ^ uint32(p>>32)
		h *= prime
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	comp, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return comp
}
