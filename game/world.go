// Package game wires the store, the tile map and the camera into a tick
// driver. Each tick runs input, forces, collision and camera, in that order.
package game

import (
	"context"
	"time"

	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/collision"
	"github.com/plus3/platformer/config"
	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/physics"
	"github.com/plus3/platformer/tilemap"
	"github.com/rs/zerolog"
)

// InputSource supplies the key state for each tick
type InputSource interface {
	Poll() input.State
}

// SourceFunc adapts a function to InputSource
type SourceFunc func() input.State

func (f SourceFunc) Poll() input.State {
	return f()
}

// World owns everything the simulation touches
type World struct {
	Store     *ecs.Store
	Map       *tilemap.Map
	Camera    *camera.Camera
	Scheduler *ecs.Scheduler
	Collision *collision.System

	cameraSystem *CameraSystem
	deltaTime    float64
	log          zerolog.Logger
}

type Option func(*World)

// WithLogger sets the logger used for world events
func WithLogger(log zerolog.Logger) Option {
	return func(w *World) {
		w.log = log
	}
}

// WithTarget sets the name of the entity the camera follows
func WithTarget(name string) Option {
	return func(w *World) {
		w.cameraSystem.Target = name
	}
}

// WithTickRate sets the delta time handed to systems
func WithTickRate(hz int) Option {
	return func(w *World) {
		if hz > 0 {
			w.deltaTime = 1 / float64(hz)
		}
	}
}

// WithSystem registers an extra system after the built-in ones
func WithSystem(name string, system ecs.System) Option {
	return func(w *World) {
		w.Scheduler.RegisterNamed(name, system)
	}
}

// New creates a world over m viewed through cam. The camera follows the
// entity named "player" unless WithTarget says otherwise.
func New(m *tilemap.Map, cam *camera.Camera, opts ...Option) *World {
	store := ecs.NewStore()
	w := &World{
		Store:        store,
		Map:          m,
		Camera:       cam,
		Scheduler:    ecs.NewScheduler(store),
		Collision:    collision.NewSystem(m),
		cameraSystem: &CameraSystem{Camera: cam, Target: "player"},
		deltaTime:    1.0 / 60,
		log:          zerolog.Nop(),
	}

	w.cameraSystem.transform = cam.Current()

	w.Collision.OnLand = func(id ecs.EntityId, _ collision.Result) {
		w.log.Debug().Stringer("entity", id).Uint64("tick", w.Scheduler.Tick()).Msg("landed")
	}

	w.Scheduler.Register(&InputSystem{})
	w.Scheduler.Register(&ForceSystem{})
	w.Scheduler.RegisterNamed("CollisionSystem", w.Collision)
	w.Scheduler.Register(w.cameraSystem)

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// FromConfig builds a world from settings: the camera covers the screen,
// is bounded by the map and follows the configured player, which is spawned.
func FromConfig(cfg config.Config, m *tilemap.Map, opts ...Option) *World {
	cam := camera.New(geom.NewRect(0, 0, float64(cfg.Screen.Width), float64(cfg.Screen.Height))).
		WithBounds(m.Bounds()).
		WithMargin(cfg.Camera.Margin).
		WithZoom(cfg.Camera.Zoom)

	opts = append([]Option{WithTarget(cfg.Player.Name), WithTickRate(cfg.TickRate)}, opts...)
	w := New(m, cam, opts...)
	w.SpawnPlayer(cfg.Player)
	return w
}

// SpawnPlayer adds a keyboard-controlled entity with gravity
func (w *World) SpawnPlayer(p config.Player) ecs.EntityId {
	obj := physics.NewObject(p.X, p.Y, p.Width, p.Height)
	maxX, maxY := p.MaxSpeedX, p.MaxSpeedY
	if maxX <= 0 {
		maxX = physics.Unbounded
	}
	if maxY <= 0 {
		maxY = physics.Unbounded
	}

	id := w.Store.Add(ecs.EntityConfig{
		Name:     p.Name,
		Asset:    p.Asset,
		Object:   &obj,
		Movement: physics.NewMovement(geom.Vec2{Y: p.Gravity}).WithMaxSpeed(maxX, maxY),
		Input:    input.NewPlayer(p.Tuning),
	})

	w.log.Info().Stringer("entity", id).Str("name", p.Name).Float64("x", p.X).Float64("y", p.Y).Msg("spawned player")
	return id
}

// Step runs a single tick with the given key state
func (w *World) Step(state input.State) {
	w.Scheduler.Step(w.deltaTime, state)
}

// Run steps the world at interval until ctx is cancelled. A nil source
// steps with no keys held.
func (w *World) Run(ctx context.Context, interval time.Duration, source InputSource) {
	var poll func() input.State
	if source != nil {
		poll = source.Poll
	}

	w.log.Info().Dur("interval", interval).Msg("world running")
	w.Scheduler.Run(ctx, interval, poll)
	w.log.Info().Uint64("ticks", w.Scheduler.Tick()).Msg("world stopped")
}

// Target returns the rectangle of the entity the camera follows
func (w *World) Target() *geom.Rect {
	return TargetRect(w.Store, w.cameraSystem.Target)
}

// TargetId returns the id of the entity the camera follows
func (w *World) TargetId() (ecs.EntityId, bool) {
	return w.Store.ByName(w.cameraSystem.Target)
}

// Transform returns the camera transform committed by the last tick
func (w *World) Transform() camera.Transform {
	return w.cameraSystem.Transform()
}

// DebugTransform computes the camera transform for the current target
// without moving the camera
func (w *World) DebugTransform() camera.Transform {
	return w.Camera.GetTransform(w.Target())
}

// SaveMap writes the tile map to path
func (w *World) SaveMap(path string) error {
	if err := w.Map.Save(path); err != nil {
		return err
	}
	w.log.Info().Str("path", path).Msg("map saved")
	return nil
}
