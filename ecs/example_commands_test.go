package ecs_test

import (
	"fmt"

	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/physics"
)

// CleanupSystem removes entities that fell below the world
type CleanupSystem struct {
	Floor float64
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	fallen := 0
	for id, obj := range frame.Store.Objects() {
		if obj.Rect.Y > s.Floor {
			frame.Commands.Delete(id)
			fallen++
		}
	}
	if fallen > 0 {
		fmt.Printf("Queued %d fallen entities for deletion\n", fallen)
	}
}

// ExampleCommands demonstrates using command buffers to defer entity mutations.
// Removing entities while iterating over the store would skip or revisit
// entries, so systems queue deletes and spawns and the Scheduler flushes them
// at the end of the frame.
func ExampleCommands() {
	store := ecs.NewStore()
	for _, y := range []float64{0, 10, 2000} {
		obj := physics.NewObject(0, y, 1, 1)
		store.Add(ecs.EntityConfig{Object: &obj})
	}

	scheduler := ecs.NewScheduler(store)
	scheduler.Register(&CleanupSystem{Floor: 1000})

	scheduler.Once(1.0)

	fmt.Printf("Remaining entities: %d\n", store.Len())

	// Output:
	// Queued 1 fallen entities for deletion
	// Remaining entities: 2
}
