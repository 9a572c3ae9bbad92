package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/platformer/input"
)

// Bindings lists the keys mapped to each action. Any of them triggers it.
type Bindings struct {
	Left   []ebiten.Key
	Right  []ebiten.Key
	Crouch []ebiten.Key
	Jump   []ebiten.Key
}

// DefaultBindings maps WASD and the arrow keys, with space as a second jump
func DefaultBindings() Bindings {
	return Bindings{
		Left:   []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right:  []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Crouch: []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
		Jump:   []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp, ebiten.KeySpace},
	}
}

// State decodes the bound keys using pressed
func (b Bindings) State(pressed func(ebiten.Key) bool) input.State {
	return input.State{
		Left:   anyPressed(pressed, b.Left),
		Right:  anyPressed(pressed, b.Right),
		Crouch: anyPressed(pressed, b.Crouch),
		Jump:   anyPressed(pressed, b.Jump),
	}
}

// Keyboard polls ebiten's key state. It satisfies game.InputSource.
type Keyboard struct {
	Bindings Bindings
}

func (k *Keyboard) Poll() input.State {
	return k.Bindings.State(ebiten.IsKeyPressed)
}

// PollKeyboard reads the default bindings
func PollKeyboard() input.State {
	return DefaultBindings().State(ebiten.IsKeyPressed)
}

func anyPressed(pressed func(ebiten.Key) bool, keys []ebiten.Key) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}
