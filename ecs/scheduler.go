package ecs

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/platformer/input"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in registration order, one tick at a time.
type Scheduler struct {
	store       *Store
	systems     []System
	systemStats []*systemStatsInternal
	tick        uint64
}

// NewScheduler creates a new scheduler for the given store.
func NewScheduler(store *Store) *Scheduler {
	return &Scheduler{
		store:   store,
		systems: make([]System, 0),
	}
}

// Register appends a system, naming it after its type.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	s.RegisterNamed(systemType.Name(), system)
}

// RegisterNamed appends a system under the given stats name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Store returns the store the scheduler drives
func (s *Scheduler) Store() *Store {
	return s.store
}

// Tick returns the number of completed ticks
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Once executes all registered systems once with no keys held.
func (s *Scheduler) Once(dt float64) {
	s.Step(dt, input.State{})
}

// Step executes all registered systems once with the given key state, then
// flushes the frame's commands.
func (s *Scheduler) Step(dt float64, state input.State) {
	frame := newUpdateFrame(dt, s.tick, state, s.store)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.store)
	s.tick++
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled. poll supplies the key state for each tick and may be nil.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, poll func() input.State) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			var state input.State
			if poll != nil {
				state = poll()
			}
			s.Step(dt, state)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
