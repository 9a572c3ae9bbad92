package game_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floor = 14 * 70.0

func newWorld(t *testing.T, opts ...game.Option) *game.World {
	t.Helper()
	return game.FromConfig(config.Default(), tilemap.Default(), opts...)
}

func steps(w *game.World, n int, state input.State) {
	for range n {
		w.Step(state)
	}
}

func player(t *testing.T, w *game.World) (*physics.Object, *physics.Movement, *input.Input) {
	t.Helper()
	id, ok := w.TargetId()
	require.True(t, ok)
	return w.Store.Object(id), w.Store.Movement(id), w.Store.Input(id)
}

func TestPlayerFallsAndLands(t *testing.T) {
	w := newWorld(t)
	steps(w, 120, input.State{})

	obj, movement, in := player(t, w)
	assert.Equal(t, floor, obj.Rect.Bottom())
	assert.Equal(t, 100.0, obj.Rect.X)
	assert.Equal(t, 0.0, movement.Velocity().Y)
	assert.True(t, in.Player().JumpAvailable())
}

func TestJumpRequiresReleaseAndLanding(t *testing.T) {
	w := newWorld(t)
	steps(w, 120, input.State{})
	obj, movement, _ := player(t, w)
	rest := obj.Rect.Y

	w.Step(input.State{Jump: true})
	assert.Equal(t, rest-20, obj.Rect.Y, "jump is clamped to the vertical max speed")
	assert.Equal(t, -20.0, movement.Velocity().Y)

	// held through the whole arc and the landing
	steps(w, 120, input.State{Jump: true})
	assert.Equal(t, rest, obj.Rect.Y)

	w.Step(input.State{})
	w.Step(input.State{Jump: true})
	assert.Less(t, obj.Rect.Y, rest)
}

func TestRunIntoWall(t *testing.T) {
	w := newWorld(t)
	steps(w, 60, input.State{})
	steps(w, 300, input.State{Right: true})

	obj, movement, _ := player(t, w)
	assert.InDelta(t, 29*70.0, obj.Rect.Right(), 1e-9)
	assert.Equal(t, floor, obj.Rect.Bottom())
	assert.InDelta(t, 9.6, movement.Velocity().X, 1e-9)

	// the view is pinned to the right edge of the world
	assert.InDelta(t, 2100.0-1260.0, w.Transform().Offset.X, 1e-9)
	assert.Equal(t, 0.0, w.Transform().Offset.Y)
}

func TestRunLeftThenStop(t *testing.T) {
	w := newWorld(t)
	steps(w, 60, input.State{})
	steps(w, 10, input.State{Left: true})
	steps(w, 60, input.State{})

	obj, movement, _ := player(t, w)
	assert.InDelta(t, 70.0, obj.Rect.X, 1e-9)
	assert.Equal(t, 0.0, movement.Velocity().X)
}

func TestTransforms(t *testing.T) {
	w := newWorld(t)

	assert.Equal(t, camera.Transform{Scale: 1}, w.Transform())

	w.Step(input.State{})
	committed := w.Transform()
	assert.Equal(t, committed, w.DebugTransform())

	// moving the target without a tick previews a new offset but leaves the camera
	obj, _, _ := player(t, w)
	obj.MoveBy(1500, 0)
	preview := w.DebugTransform()
	assert.NotEqual(t, committed, preview)
	assert.Equal(t, committed.Offset, w.Camera.View().Point())
}

func TestMissingTargetLeavesCamera(t *testing.T) {
	cam := camera.New(geom.NewRect(0, 0, 700, 700)).WithBounds(tilemap.Default().Bounds())
	w := game.New(tilemap.Default(), cam, game.WithTarget("nobody"))

	steps(w, 5, input.State{})

	assert.Nil(t, w.Target())
	assert.Equal(t, geom.Vec2{}, w.Transform().Offset)
}

func TestEntitiesWithoutInputOnlyFeelGravity(t *testing.T) {
	cam := camera.New(geom.NewRect(0, 0, 700, 700))
	w := game.New(tilemap.Default(), cam)

	box := physics.NewObject(300, 300, 70, 70)
	id := w.Store.Add(ecs.EntityConfig{
		Asset:    "box",
		Object:   &box,
		Movement: physics.NewMovement(geom.Vec2{Y: 0.5}),
		Input:    input.None(),
	})

	steps(w, 200, input.State{Right: true, Jump: true})

	obj := w.Store.Object(id)
	assert.Equal(t, 300.0, obj.Rect.X)
	assert.Equal(t, floor, obj.Rect.Bottom())
}

func TestLandingIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	w := newWorld(t, game.WithLogger(log))
	steps(w, 120, input.State{})

	assert.Contains(t, buf.String(), `"message":"landed"`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"landed"`)))
}

func TestExtraSystemsRunLast(t *testing.T) {
	var seen []float64
	w := newWorld(t, game.WithSystem("probe", ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		id, _ := frame.Store.ByName("player")
		seen = append(seen, frame.Store.Object(id).Rect.Y)
	})))

	w.Step(input.State{})
	require.Len(t, seen, 1)
	assert.Equal(t, 100.5, seen[0])

	stats := w.Scheduler.GetStats()
	names := make([]string, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"InputSystem", "ForceSystem", "CollisionSystem", "CameraSystem", "probe"}, names)
}

func TestRunUntilCancelled(t *testing.T) {
	w := newWorld(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	polled := 0
	w.Run(ctx, time.Millisecond, game.SourceFunc(func() input.State {
		polled++
		return input.State{Right: true}
	}))

	assert.Greater(t, polled, 0)
	assert.Equal(t, uint64(polled), w.Scheduler.Tick())
}

func TestSaveMap(t *testing.T) {
	w := newWorld(t)
	path := filepath.Join(t.TempDir(), "saved.map")

	require.NoError(t, w.SaveMap(path))

	loaded, err := tilemap.Load(path)
	require.NoError(t, err)
	assert.Equal(t, w.Map.Specs(), loaded.Specs())
}
