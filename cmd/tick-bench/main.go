package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/config"
	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/game"
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/physics"
	"github.com/plus3/platformer/tilemap"
	"github.com/rs/zerolog"
)

// Spawner adds falling boxes through the command buffer until Total have
// been spawned, at most Batch per tick.
type Spawner struct {
	Map   *tilemap.Map
	Total int
	Batch int
	Rand  *rand.Rand

	spawned int
}

func (s *Spawner) Execute(frame *ecs.UpdateFrame) {
	ts := s.Map.TileSize()
	for i := 0; i < s.Batch && s.spawned < s.Total; i++ {
		x := ts + s.Rand.Float64()*float64(s.Map.Width()-3)*ts
		y := ts + s.Rand.Float64()*float64(s.Map.Height()-3)*ts
		obj := physics.NewObject(x, y, ts/2, ts/2)

		frame.Commands.Spawn(ecs.EntityConfig{
			Asset:    "box",
			Object:   &obj,
			Movement: physics.NewMovement(geom.Vec2{Y: 0.5}).WithMaxSpeed(10, 20),
			Input:    input.None(),
		})
		s.spawned++
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of falling boxes to spawn.")
	batch := flag.Int("batch", 500, "The number of boxes spawned per tick until the total is reached.")
	width := flag.Int("width", 200, "Map width in tiles.")
	height := flag.Int("height", 60, "Map height in tiles.")
	seed := flag.Int64("seed", 1, "Random seed for spawn positions.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log := config.Default().Logger(os.Stderr)
	log.Info().Msg("Starting tick benchmark...")

	m, err := room(*width, *height, 70)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build map")
	}

	cfg := config.Default()
	cam := camera.New(geom.NewRect(0, 0, float64(cfg.Screen.Width), float64(cfg.Screen.Height))).WithBounds(m.Bounds())
	world := game.New(m, cam,
		game.WithLogger(log.Level(zerolog.InfoLevel)),
		game.WithSystem("Spawner", &Spawner{Map: m, Total: *entityCount, Batch: *batch, Rand: rand.New(rand.NewSource(*seed))}),
	)
	world.SpawnPlayer(cfg.Player)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		MapWidth:       *width,
		MapHeight:      *height,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Dur("duration", *duration).Msg("Running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			world.Step(input.State{Right: totalUpdates%120 < 60})
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Scheduler = world.Scheduler.GetStats()
	report.Store = world.Store.CollectStats()
	report.Landed = countLanded(world)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info().Msg("Simulation finished.")

	fmt.Println("\n\n--- Tick Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}

// room builds a width x height map with solid borders and a few floating
// platforms
func room(width, height int, tileSize float64) (*tilemap.Map, error) {
	specs := make([]tilemap.CellSpec, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			platform := y%8 == 0 && x%12 < 5
			specs = append(specs, tilemap.CellSpec{Asset: "box", Solid: border || platform})
		}
	}
	return tilemap.New(width, height, tileSize, specs)
}

func countLanded(world *game.World) int {
	landed := 0
	for _, result := range world.Collision.Results() {
		if result.HitFromTop {
			landed++
		}
	}
	return landed
}
