package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/plus3/platformer/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     time.Second,
		Entities:     10,
		MapWidth:     20,
		MapHeight:    10,
		TotalUpdates: 60,
		Scheduler: &ecs.SchedulerStats{
			Systems: []ecs.SystemStats{{Name: "CollisionSystem", ExecutionCount: 60}},
		},
		Store:  ecs.StoreStats{Entities: 11, Movements: 11},
		Landed: 7,
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "| CollisionSystem | 60 |")
	assert.Contains(t, out, "Entities: 11 (11 moving)")
	assert.Contains(t, out, "Resting on a floor: 7")
	assert.NotContains(t, out, "GC Pause")
}

func TestSpawnerSpawnsInBatches(t *testing.T) {
	m, err := room(20, 10, 70)
	require.NoError(t, err)

	store := ecs.NewStore()
	sched := ecs.NewScheduler(store)
	sched.Register(&Spawner{Map: m, Total: 5, Batch: 2, Rand: newRand()})

	sched.Once(1)
	assert.Equal(t, 2, store.Len())
	sched.Once(1)
	sched.Once(1)
	sched.Once(1)
	assert.Equal(t, 5, store.Len())

	for id, obj := range store.Objects() {
		assert.True(t, m.Bounds().Contains(obj.Rect), "%v", id)
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}
