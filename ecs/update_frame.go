package ecs

import "github.com/plus3/platformer/input"

// UpdateFrame is the per-tick context handed to every system
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Input     input.State
	Commands  *Commands
	Store     *Store
}

func newUpdateFrame(dt float64, tick uint64, state input.State, store *Store) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Input:     state,
		Commands:  newCommands(),
		Store:     store,
	}
}
