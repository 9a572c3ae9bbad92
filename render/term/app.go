package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/game"
	"github.com/rs/zerolog"
)

// App runs a world in a terminal: key events feed the keyboard, and every
// interval the world steps and the screen is redrawn.
type App struct {
	Screen   tcell.Screen
	World    *game.World
	Renderer *Renderer
	Keyboard *Keyboard
	Interval time.Duration
	Log      zerolog.Logger
}

// NewApp wires a renderer and a keyboard for screen
func NewApp(screen tcell.Screen, world *game.World, interval time.Duration) *App {
	return &App{
		Screen:   screen,
		World:    world,
		Renderer: NewRenderer(screen, world),
		Keyboard: NewKeyboard(DefaultHold),
		Interval: interval,
		Log:      zerolog.Nop(),
	}
}

// Run processes events and ticks until ctx is cancelled or a quit key is
// pressed. The screen stays initialized; the caller finalizes it.
func (a *App) Run(ctx context.Context) {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					a.Log.Info().Msg("quit requested")
					return
				}
				a.Keyboard.Handle(ev)
			case *tcell.EventResize:
				a.Screen.Sync()
			}

		case <-ticker.C:
			a.World.Step(a.Keyboard.Poll())
			a.Renderer.Draw()
		}
	}
}

// OpenScreen creates and initializes the terminal screen
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errs.Backend("create screen", err)
	}
	if err := screen.Init(); err != nil {
		return nil, errs.Backend("init screen", err)
	}
	return screen, nil
}
