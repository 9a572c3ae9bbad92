package term

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/platformer/input"
)

// DefaultHold is how long a key counts as held after its last press or
// auto-repeat
const DefaultHold = 150 * time.Millisecond

type action int

const (
	actionLeft action = iota
	actionRight
	actionCrouch
	actionJump
	actionCount
)

// Keyboard turns terminal key presses into held-key state. Terminals report
// presses and auto-repeats but no releases, so a key is considered released
// once it has not been seen for the hold duration.
type Keyboard struct {
	mu   sync.Mutex
	seen [actionCount]time.Time
	hold time.Duration
	now  func() time.Time
}

// NewKeyboard creates a keyboard with the given hold duration
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{hold: hold, now: time.Now}
}

// Handle records a key event. It reports whether the key is bound.
func (k *Keyboard) Handle(ev *tcell.EventKey) bool {
	a, ok := bind(ev)
	if !ok {
		return false
	}

	k.mu.Lock()
	k.seen[a] = k.now()
	k.mu.Unlock()
	return true
}

// Poll returns the keys currently considered held
func (k *Keyboard) Poll() input.State {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	held := func(a action) bool {
		return !k.seen[a].IsZero() && now.Sub(k.seen[a]) < k.hold
	}

	return input.State{
		Left:   held(actionLeft),
		Right:  held(actionRight),
		Crouch: held(actionCrouch),
		Jump:   held(actionJump),
	}
}

func bind(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actionLeft, true
	case tcell.KeyRight:
		return actionRight, true
	case tcell.KeyDown:
		return actionCrouch, true
	case tcell.KeyUp:
		return actionJump, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return actionLeft, true
		case 'd', 'D':
			return actionRight, true
		case 's', 'S':
			return actionCrouch, true
		case 'w', 'W', ' ':
			return actionJump, true
		}
	}
	return 0, false
}

// isQuit reports whether ev asks to leave the game
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
