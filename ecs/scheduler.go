package ecs

import (
	"math"
	"reflect"
	"time"
)

type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type registeredSystem struct {
	system System
	stats  SystemStats
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	storage  *Storage
	commands Commands
	systems  []*registeredSystem
	tick     uint64
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// storageBinder is implemented by Query and Singleton.
type storageBinder interface {
	Init(*Storage)
}

// Register appends system and binds its exported Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.bindFields(system)

	name := systemName(system)
	s.systems = append(s.systems, &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        name,
			MinDuration: time.Duration(math.MaxInt64),
		},
	})
}

func systemName(system System) string {
	if named, ok := system.(NamedSystem); ok {
		return named.Name()
	}
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Once runs every system with dt seconds of elapsed time, then flushes the
// queued commands.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Commands:  &s.commands,
		Storage:   s.storage,
		Tick:      s.tick,
	}

	for _, rs := range s.systems {
		start := time.Now()
		rs.system.Execute(frame)
		rs.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (rs *registeredSystem) record(d time.Duration) {
	st := &rs.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	st.MinDuration = min(st.MinDuration, d)
	st.MaxDuration = max(st.MaxDuration, d)
	st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
}

// Ticks is the number of completed calls to Once.
func (s *Scheduler) Ticks() uint64 { return s.tick }

func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rs := range s.systems {
		stats.Systems[i] = rs.stats
		stats.TotalExecutions += rs.stats.ExecutionCount
	}
	return stats
}
