// Package collision moves entities by their velocity and resolves their
// overlaps with the solid cells of a tile map, one axis at a time.
package collision

import (
	"iter"
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/physics"
	"github.com/plus3/platformer/tilemap"
)

// Epsilon is the smallest overlap extent treated as a contact. Thinner
// overlaps come from floating point drift along an edge the entity rests on.
const Epsilon = 1e-6

// Result reports what happened to one entity during one tick
type Result struct {
	HitX       bool
	HitY       bool
	HitFromTop bool
}

// Hit reports whether either axis collided
func (r Result) Hit() bool {
	return r.HitX || r.HitY
}

type axis int

const (
	axisX axis = iota
	axisY
)

// System resolves every entity that has both an object and a movement
// against the solid cells of the map.
type System struct {
	Map *tilemap.Map

	// OnLand is called when an entity lands on top of a cell, but not again
	// while it keeps resting there
	OnLand func(id ecs.EntityId, result Result)

	results  *intmap.Map[ecs.EntityId, Result]
	previous *intmap.Map[ecs.EntityId, Result]
}

// NewSystem creates a collision system over m
func NewSystem(m *tilemap.Map) *System {
	return &System{
		Map:      m,
		results:  intmap.New[ecs.EntityId, Result](64),
		previous: intmap.New[ecs.EntityId, Result](64),
	}
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	s.results, s.previous = s.previous, s.results
	s.results.Clear()

	for id := range frame.Store.Entities() {
		if frame.Store.Object(id) == nil || frame.Store.Movement(id) == nil {
			continue
		}

		result := s.Resolve(frame.Store, id)
		s.results.Put(id, result)

		if result.HitFromTop && s.OnLand != nil {
			if before, ok := s.previous.Get(id); !ok || !before.HitFromTop {
				s.OnLand(id, result)
			}
		}
	}
}

// Resolve moves one entity by its movement's displacement and corrects it out
// of solid cells. Entities missing an object or a movement are left alone.
func (s *System) Resolve(store *ecs.Store, id ecs.EntityId) Result {
	obj := store.Object(id)
	movement := store.Movement(id)
	if obj == nil || movement == nil {
		return Result{}
	}

	dx := movement.DX()
	dy := movement.DY()

	var result Result
	result.HitX = s.move(obj, dx, axisX)
	result.HitY = s.move(obj, dy, axisY)
	result.HitFromTop = result.HitY && dy > 0

	if result.Hit() && dy > 0 {
		movement.ResetSpeedY()
	}

	if result.HitFromTop {
		if in := store.Input(id); in != nil {
			in.ResetJump()
		}
	}

	return result
}

// LastResult returns the result recorded for id by the last Execute
func (s *System) LastResult(id ecs.EntityId) (Result, bool) {
	return s.results.Get(id)
}

// Results iterates over the results recorded by the last Execute
func (s *System) Results() iter.Seq2[ecs.EntityId, Result] {
	return s.results.All()
}

// move displaces obj by d along one axis, stopping at the first sub-step that
// hits a solid cell. Sub-steps are no longer than a tile or the object's own
// extent on the axis, so a correction always clears the cell it entered.
// Travel is capped at the grid span plus two tiles; non-finite displacements
// are ignored.
func (s *System) move(obj *physics.Object, d float64, a axis) bool {
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return false
	}

	ts := s.Map.TileSize()
	stepLen, span := ts, s.Map.Width()
	extent := obj.Rect.Width
	if a == axisY {
		span = s.Map.Height()
		extent = obj.Rect.Height
	}
	if extent > Epsilon && extent < stepLen {
		stepLen = extent
	}

	travel := math.Min(math.Abs(d), float64(span+2)*ts)
	steps := int(math.Ceil(travel / stepLen))
	step := math.Copysign(travel/float64(steps), d)

	for range steps {
		if a == axisX {
			obj.MoveBy(step, 0)
		} else {
			obj.MoveBy(0, step)
		}

		if s.correct(obj, step, a) {
			return true
		}
	}
	return false
}

// correct pushes obj back out of the deepest solid overlap along the axis,
// opposite to the direction of motion.
func (s *System) correct(obj *physics.Object, d float64, a axis) bool {
	deepest := 0.0
	for _, cell := range s.Map.CollidableTiles(obj.Rect) {
		overlap, ok := obj.Overlap(&cell.Object)
		if !ok || overlap.Width <= Epsilon || overlap.Height <= Epsilon {
			continue
		}

		extent := overlap.Width
		if a == axisY {
			extent = overlap.Height
		}
		if extent > deepest {
			deepest = extent
		}
	}

	if deepest == 0 {
		return false
	}

	push := deepest
	if d > 0 {
		push = -deepest
	}
	if a == axisX {
		obj.MoveBy(push, 0)
	} else {
		obj.MoveBy(0, push)
	}
	return true
}
