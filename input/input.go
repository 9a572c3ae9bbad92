package input

import "github.com/plus3/platformer/geom"

// State is the decoded key state for one tick
type State struct {
	Left   bool
	Right  bool
	Crouch bool
	Jump   bool
}

// Kind selects the Input variant
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	default:
		return "none"
	}
}

// Input is the control component of an entity. It is a closed union: new
// variants are added as a Kind and a case in each method.
type Input struct {
	kind   Kind
	player *Player
}

// None returns an input that applies no force
func None() *Input {
	return &Input{kind: KindNone}
}

// NewPlayer returns a keyboard-driven input with the given tuning
func NewPlayer(tuning Tuning) *Input {
	return &Input{kind: KindPlayer, player: newPlayer(tuning)}
}

// Kind returns the variant
func (i *Input) Kind() Kind {
	return i.kind
}

// Player returns the player variant, or nil for other kinds
func (i *Input) Player() *Player {
	if i.kind != KindPlayer {
		return nil
	}
	return i.player
}

// Update consumes the tick's key state and returns the resulting force
func (i *Input) Update(state State) geom.Vec2 {
	switch i.kind {
	case KindPlayer:
		i.player.update(state)
		return i.player.force()
	default:
		return geom.Vec2{}
	}
}

// Force returns the force derived by the last Update
func (i *Input) Force() geom.Vec2 {
	switch i.kind {
	case KindPlayer:
		return i.player.force()
	default:
		return geom.Vec2{}
	}
}

// ResetJump makes a jump available again, typically after landing
func (i *Input) ResetJump() {
	if i.kind == KindPlayer {
		i.player.ResetJump()
	}
}
