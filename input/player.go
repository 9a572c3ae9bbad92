package input

import "github.com/plus3/platformer/geom"

const (
	DefaultRunForce    = 5.0
	DefaultJumpImpulse = 30.0
)

// Tuning holds the forces a player input produces
type Tuning struct {
	RunForce    float64 `yaml:"run_force"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

// DefaultTuning returns the stock run and jump forces
func DefaultTuning() Tuning {
	return Tuning{RunForce: DefaultRunForce, JumpImpulse: DefaultJumpImpulse}
}

// Direction is the horizontal direction requested by the player
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// Player holds the transient key state of a keyboard-controlled entity.
// A held jump key produces a single impulse; the key has to be released and
// pressed again, while a jump is available, to produce another.
type Player struct {
	tuning    Tuning
	direction Direction
	crouched  bool

	jump          bool
	jumpAvailable bool
	jumpReleased  bool
}

func newPlayer(tuning Tuning) *Player {
	return &Player{
		tuning:        tuning,
		jumpAvailable: true,
		jumpReleased:  true,
	}
}

func (p *Player) update(state State) {
	p.direction = DirectionNone
	if state.Left {
		p.direction = DirectionLeft
	}
	// right wins when both are held
	if state.Right {
		p.direction = DirectionRight
	}
	p.crouched = state.Crouch

	p.jump = state.Jump && p.jumpReleased && p.jumpAvailable
	if p.jump {
		p.jumpAvailable = false
	}
	p.jumpReleased = !state.Jump
}

func (p *Player) force() geom.Vec2 {
	var result geom.Vec2

	switch p.direction {
	case DirectionLeft:
		result.X = -p.tuning.RunForce
	case DirectionRight:
		result.X = p.tuning.RunForce
	}

	if p.jump {
		result.Y = -p.tuning.JumpImpulse
	}
	return result
}

// ResetJump marks a jump as available again
func (p *Player) ResetJump() {
	p.jumpAvailable = true
}

// Direction returns the requested horizontal direction
func (p *Player) Direction() Direction {
	return p.direction
}

// Crouched reports whether the crouch key was held on the last update
func (p *Player) Crouched() bool {
	return p.crouched
}

// Jumping reports whether the last update produced a jump impulse
func (p *Player) Jumping() bool {
	return p.jump
}

// JumpAvailable reports whether a new jump press would be honored
func (p *Player) JumpAvailable() bool {
	return p.jumpAvailable
}
