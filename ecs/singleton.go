package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	typ reflect.Type
	ptr unsafe.Pointer
}

// AddSingleton stores value as the singleton of its type. An existing
// singleton is overwritten in place, so pointers to it stay valid.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if entry, ok := s.singletons.Get(typeId(t)); ok {
		reflect.NewAt(t, entry.ptr).Elem().Set(v)
		return
	}

	stored := reflect.New(t)
	stored.Elem().Set(v)
	s.singletons.Put(typeId(t), &singletonEntry{typ: t, ptr: stored.UnsafePointer()})
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	s.singletons.Del(typeId(t))
}

func (s *Storage) singleton(t reflect.Type) unsafe.Pointer {
	if entry, ok := s.singletons.Get(typeId(t)); ok {
		return entry.ptr
	}
	return nil
}

// ReadSingleton points *target at the stored singleton. target must be a
// **T; it reports false and leaves target untouched when no T exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton needs a pointer to a pointer")
	}

	t := v.Elem().Type().Elem()
	ptr := s.singleton(t)
	if ptr == nil {
		return false
	}
	v.Elem().Set(reflect.NewAt(t, ptr))
	return true
}

// Singleton gives systems typed access to a component that belongs to the
// world rather than to an entity.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.singleton(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The Scheduler calls it for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.storage == nil {
		return
	}
	s.ptr = (*T)(s.storage.singleton(reflect.TypeFor[T]()))
}

// Get returns the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.resolve()
	}
	return s.ptr
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
