package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/platformer/assets"
	"github.com/plus3/platformer/config"
	"github.com/plus3/platformer/debugui"
	debugui_ebiten "github.com/plus3/platformer/debugui/ebiten"
	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/game"
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/render"
	"github.com/plus3/platformer/tilemap"
	"github.com/rs/zerolog"
)

const debugKey = ebiten.KeyF3

type Game struct {
	world    *game.World
	renderer *render.Renderer
	keyboard render.Keyboard
	backend  *debugui_ebiten.ImguiBackend
	ui       *debugui.DebugUI

	sheet      *ebiten.Image
	debugSheet *ebiten.Image
	log        zerolog.Logger
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(debugKey) {
		g.renderer.Debug = !g.renderer.Debug
		g.log.Debug().Bool("debug", g.renderer.Debug).Msg("toggled overlay")
	}

	if g.renderer.Debug && g.debugSheet != nil {
		g.renderer.SetSheet(g.debugSheet)
	} else {
		g.renderer.SetSheet(g.sheet)
	}

	x, y := ebiten.CursorPosition()
	g.renderer.Cursor = geom.Vec2{X: float64(x), Y: float64(y)}

	return g.backend.Frame(func() error {
		state := g.keyboard.Poll()
		if g.ui.WantsInput() {
			state = input.State{}
		}
		g.world.Step(state)
		return nil
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	g.backend.DrawOver(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	cfg, err := config.FromEnv()
	log := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	m, created, err := tilemap.LoadOrCreate(cfg.Paths.Map)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Paths.Map).Msg("failed to load map")
	}
	if created {
		log.Info().Str("path", cfg.Paths.Map).Msg("created default map")
	}

	atlas, err := assets.Load(cfg.Paths.Atlas, cfg.TileSize)
	if err != nil {
		log.Warn().Err(err).Msg("no atlas, drawing flat shapes")
		atlas = nil
	}
	sheet := loadSheet(log, cfg.Paths.Spritesheet)
	debugSheet := loadSheet(log, cfg.Paths.DebugSheet)

	backend := debugui_ebiten.NewImguiBackend("Platformer", cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	world := game.FromConfig(cfg, m, game.WithLogger(log))
	renderer := render.New(world, atlas, sheet, cfg.Screen.Scale)

	g := &Game{
		world:      world,
		renderer:   renderer,
		keyboard:   render.Keyboard{Bindings: render.DefaultBindings()},
		backend:    backend,
		ui:         debugui.Install(world, &renderer.Debug),
		sheet:      sheet,
		debugSheet: debugSheet,
		log:        log,
	}

	err = ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(errs.Backend("run game", err)).Msg("game exited")
	}

	if err := world.SaveMap(cfg.Paths.Map); err != nil {
		log.Fatal().Err(err).Msg("failed to save map")
	}
}

func loadSheet(log zerolog.Logger, path string) *ebiten.Image {
	if path == "" {
		return nil
	}
	img, err := render.LoadImage(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("spritesheet unavailable")
		return nil
	}
	return img
}
