package ecs

import (
	"strconv"

	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/physics"
)

// EntityId is the opaque handle joining an entity's components
type EntityId uint64

// Nil is never assigned to an entity
const Nil EntityId = 0

// IsNil reports whether the id is the nil id
func (e EntityId) IsNil() bool {
	return e == Nil
}

func (e EntityId) String() string {
	return "#" + strconv.FormatUint(uint64(e), 10)
}

// EntityConfig lists the components of a new entity. Nil or empty fields are
// left out of the store. Object is copied; the store takes ownership of the
// Movement and Input pointers, so each config needs its own.
type EntityConfig struct {
	Name     string
	Asset    string
	Object   *physics.Object
	Movement *physics.Movement
	Input    *input.Input
}
