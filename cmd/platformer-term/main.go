package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/config"
	"github.com/plus3/platformer/game"
	"github.com/plus3/platformer/render/term"
	"github.com/plus3/platformer/tilemap"
)

func main() {
	logFile := flag.String("log", "platformer-term.log", "File to write logs to; the terminal is busy drawing.")
	flag.Parse()

	cfg, err := config.FromEnv()

	out, ferr := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if ferr != nil {
		out = os.Stderr
	}
	defer out.Close()

	log := cfg.Logger(out)
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

	screen, err := term.OpenScreen()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open terminal")
	}

	// The camera views the terminal rather than the configured window
	cols, rows := screen.Size()
	view := term.TerminalView(cols, rows, m.TileSize())
	cam := camera.New(view).
		WithBounds(m.Bounds()).
		WithMargin(camera.UniformMargin(m.TileSize()))

	world := game.New(m, cam, game.WithLogger(log), game.WithTarget(cfg.Player.Name), game.WithTickRate(cfg.TickRate))
	world.SpawnPlayer(cfg.Player)

	app := term.NewApp(screen, world, time.Second/time.Duration(cfg.TickRate))
	app.Log = log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
	screen.Fini()

	if err := world.SaveMap(cfg.Paths.Map); err != nil {
		log.Error().Err(err).Msg("failed to save map")
	}
}
