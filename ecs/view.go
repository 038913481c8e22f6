package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// View reads entities through a struct of component pointers. Every field of
// T must be a pointer to a component type. Embedded fields are required;
// named fields may be tagged `ecs:"optional"` and are left nil when absent.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	fields := make([]viewField, structType.NumField())
	for i := range fields {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View field " + field.Name + " must be a pointer")
		}

		optional := false
		switch tag := field.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			optional = !field.Anonymous
		default:
			panic("ecs: invalid ecs tag \"" + tag + "\" on " + field.Name)
		}

		fields[i] = viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		}
	}

	return &View[T]{storage: storage, fields: fields}
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsOf maps each field to its column in archetype, -1 when absent.
func (v *View[T]) columnsOf(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.columnIndex(f.typ)
	}
	return cols
}

// fill writes component pointers for the entity at index into dst.
func (v *View[T]) fill(dst unsafe.Pointer, archetype *Archetype, index int, cols []int) bool {
	for i, f := range v.fields {
		slot := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))

		var comp any
		if cols[i] >= 0 {
			comp = archetype.columns[cols[i]].at(index)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*slot = nil
			continue
		}
		*slot = (*ifaceWords)(unsafe.Pointer(&comp)).data
	}
	return true
}

// Fill populates dst for id. It returns false if the entity is gone or lacks a
// required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	archetype, ok := v.storage.byId.Get(id.ArchetypeId())
	if !ok || !archetype.alive(id.Index()) {
		return false
	}
	return v.fill(unsafe.Pointer(dst), archetype, int(id.Index()), v.columnsOf(archetype))
}

// Get returns the populated struct for id, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if len(archetype.columns) == 0 {
		return true
	}

	cols := v.columnsOf(archetype)
	var result T
	for index := range archetype.columns[0].indices() {
		if !v.fill(unsafe.Pointer(&result), archetype, index, cols) {
			continue
		}
		if !yield(NewEntityId(archetype.id, uint32(index)), result) {
			return false
		}
	}
	return true
}

// Iter yields every matching entity, archetypes in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if v.matches(archetype) && !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
