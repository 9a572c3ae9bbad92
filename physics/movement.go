package physics

import (
	"math"
	"slices"

	"github.com/plus3/platformer/geom"
)

// Drag is subtracted from the magnitude of the horizontal velocity every tick.
const Drag = 0.4

// Unbounded disables the speed limit on an axis
var Unbounded = math.Inf(1)

// Movement accumulates forces into a velocity. Persistent forces apply every
// tick; instantaneous forces apply once and are then discarded.
type Movement struct {
	velocity      geom.Vec2
	forces        []geom.Vec2
	instantaneous []geom.Vec2
	maxSpeed      geom.Vec2
	dirty         bool
}

// NewMovement creates a movement with no forces and no speed limit
func NewMovement(forces ...geom.Vec2) *Movement {
	return &Movement{
		forces:   slices.Clone(forces),
		maxSpeed: geom.Vec2{X: Unbounded, Y: Unbounded},
		dirty:    true,
	}
}

// WithMaxSpeed sets the per-axis speed limit. Use Unbounded for no limit.
func (m *Movement) WithMaxSpeed(x, y float64) *Movement {
	m.maxSpeed = geom.Vec2{X: math.Abs(x), Y: math.Abs(y)}
	return m
}

// MaxSpeed returns the per-axis speed limit
func (m *Movement) MaxSpeed() geom.Vec2 {
	return m.maxSpeed
}

// Velocity returns the current velocity without recomputing it
func (m *Movement) Velocity() geom.Vec2 {
	return m.velocity
}

// SetVelocity overwrites the current velocity
func (m *Movement) SetVelocity(v geom.Vec2) {
	m.velocity = v
}

// Forces returns a copy of the persistent forces
func (m *Movement) Forces() []geom.Vec2 {
	return slices.Clone(m.forces)
}

// Pending returns a copy of the instantaneous forces not yet folded in
func (m *Movement) Pending() []geom.Vec2 {
	return slices.Clone(m.instantaneous)
}

// Dirty reports whether the next DX/DY call will recompute the velocity
func (m *Movement) Dirty() bool {
	return m.dirty
}

// AddForce adds a persistent force
func (m *Movement) AddForce(force geom.Vec2) {
	m.forces = append(m.forces, force)
	m.dirty = true
}

// AddInstantaneousForce adds a force applied by the next recomputation only
func (m *Movement) AddInstantaneousForce(force geom.Vec2) {
	m.instantaneous = append(m.instantaneous, force)
	m.dirty = true
}

// Invalidate arms the velocity recomputation for a new tick
func (m *Movement) Invalidate() {
	m.dirty = true
}

// Update folds the forces into the velocity. It is a no-op until the
// movement is invalidated again, so it runs at most once per tick.
func (m *Movement) Update() {
	if !m.dirty {
		return
	}

	m.velocity = m.velocity.Add(geom.Sum(m.instantaneous)).Add(geom.Sum(m.forces))

	m.velocity.X = clamp(m.velocity.X, m.maxSpeed.X)
	m.velocity.Y = clamp(m.velocity.Y, m.maxSpeed.Y)

	m.instantaneous = m.instantaneous[:0]

	if Drag <= math.Abs(m.velocity.X) {
		m.velocity.X -= math.Copysign(Drag, m.velocity.X)
	} else {
		m.velocity.X = 0
	}

	m.dirty = false
}

// DX returns this tick's horizontal displacement
func (m *Movement) DX() float64 {
	m.Update()
	return m.velocity.X
}

// DY returns this tick's vertical displacement
func (m *Movement) DY() float64 {
	m.Update()
	return m.velocity.Y
}

// ResetSpeed zeroes the velocity
func (m *Movement) ResetSpeed() {
	m.velocity = geom.Vec2{}
}

// ResetSpeedY zeroes the vertical velocity
func (m *Movement) ResetSpeedY() {
	m.velocity.Y = 0
}

// clamp limits |v| to limit keeping the sign of v
func clamp(v, limit float64) float64 {
	return math.Copysign(math.Min(math.Abs(v), limit), v)
}
