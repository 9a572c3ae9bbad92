package collision_test

import (
	"math"
	"testing"

	"github.com/plus3/platformer/collision"
	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/physics"
	"github.com/plus3/platformer/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// room builds a width x height map with a solid border
func room(t *testing.T, width, height int, tileSize float64) *tilemap.Map {
	t.Helper()
	specs := make([]tilemap.CellSpec, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			solid := x == 0 || y == 0 || x == width-1 || y == height-1
			specs = append(specs, tilemap.CellSpec{Solid: solid})
		}
	}
	m, err := tilemap.New(width, height, tileSize, specs)
	require.NoError(t, err)
	return m
}

// moving returns a movement whose next displacement is exactly (dx, dy)
func moving(dx, dy float64) *physics.Movement {
	m := physics.NewMovement()
	m.Update()
	m.SetVelocity(geom.Vec2{X: dx, Y: dy})
	return m
}

func spawn(store *ecs.Store, rect geom.Rect, movement *physics.Movement) ecs.EntityId {
	obj := physics.NewObject(rect.X, rect.Y, rect.Width, rect.Height)
	return store.Add(ecs.EntityConfig{Object: &obj, Movement: movement})
}

func TestPushedBackAgainstWall(t *testing.T) {
	m := room(t, 3, 3, 1)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(1, 1, 1, 1), moving(2, 0))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitX)
	assert.False(t, result.HitY)

	wall, _ := m.At(2, 1)
	assert.Equal(t, wall.Object.Rect.X, store.Object(id).Rect.Right())
	assert.Equal(t, 1.0, store.Object(id).Rect.X)
}

func TestMovingLeftIsPushedRight(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(12, 12, 5, 5), moving(-4, 0))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitX)
	assert.Equal(t, 10.0, store.Object(id).Rect.X)
}

func TestLandingResetsJumpAndVerticalSpeed(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()

	player := input.NewPlayer(input.DefaultTuning())
	player.Update(input.State{Jump: true})
	player.Update(input.State{})
	require.False(t, player.Player().JumpAvailable())

	obj := physics.NewObject(20, 25, 10, 10)
	movement := moving(0, 8)
	id := store.Add(ecs.EntityConfig{Object: &obj, Movement: movement, Input: player})

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitY)
	assert.True(t, result.HitFromTop)
	assert.Equal(t, 0.0, movement.Velocity().Y)
	assert.Equal(t, 40.0, store.Object(id).Rect.Bottom())

	force := player.Update(input.State{Jump: true})
	assert.Equal(t, -input.DefaultJumpImpulse, force.Y)
}

func TestHittingCeilingKeepsVerticalSpeed(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	movement := moving(0, -8)
	id := spawn(store, geom.NewRect(20, 15, 10, 10), movement)

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitY)
	assert.False(t, result.HitFromTop)
	assert.Equal(t, -8.0, movement.Velocity().Y)
	assert.Equal(t, 10.0, store.Object(id).Rect.Y)
}

func TestWallHitWhileFallingResetsVerticalSpeed(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	movement := moving(5, 2)
	id := spawn(store, geom.NewRect(28, 15, 10, 10), movement)

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitX)
	assert.False(t, result.HitY)
	assert.Equal(t, 0.0, movement.Velocity().Y)
	assert.Equal(t, 5.0, movement.Velocity().X)
}

func TestNoMotionNoCorrection(t *testing.T) {
	m := room(t, 3, 3, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(2, 2, 5, 5), moving(0, 0))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.Equal(t, collision.Result{}, result)
	assert.Equal(t, geom.NewRect(2, 2, 5, 5), store.Object(id).Rect)
}

func TestMultipleOverlapsCorrectOnce(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	// tall enough to touch two wall cells on the right
	id := spawn(store, geom.NewRect(25, 12, 10, 15), moving(8, 0))

	collision.NewSystem(m).Resolve(store, id)

	assert.Equal(t, 30.0, store.Object(id).Rect.X)
}

func TestRestingOnFloorWalksFreely(t *testing.T) {
	m := room(t, 6, 5, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(12, 30, 10, 10), moving(3, 0))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.False(t, result.Hit())
	assert.Equal(t, 15.0, store.Object(id).Rect.X)
}

func TestFastEntityDoesNotTunnel(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(12, 12, 5, 5), moving(0, 45))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitFromTop)
	assert.Equal(t, 40.0, store.Object(id).Rect.Bottom())
}

func TestSmallEntityIsPushedFullyOutOfWall(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(32, 12, 4, 4), moving(10, 0))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitX)
	assert.InDelta(t, 40.0, store.Object(id).Rect.Right(), 1e-9)
}

func TestHugeDisplacementStaysInsideRoom(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(12, 12, 5, 5), moving(1e15, -1e15))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.True(t, result.HitX)
	assert.True(t, result.HitY)
	assert.Equal(t, 40.0, store.Object(id).Rect.Right())
	assert.Equal(t, 10.0, store.Object(id).Rect.Y)
}

func TestInfiniteDisplacementIsIgnored(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	id := spawn(store, geom.NewRect(12, 12, 5, 5), moving(math.Inf(1), math.Inf(-1)))

	result := collision.NewSystem(m).Resolve(store, id)

	assert.False(t, result.Hit())
	assert.Equal(t, geom.NewRect(12, 12, 5, 5), store.Object(id).Rect)
}

func TestNonSolidEntityPassesThrough(t *testing.T) {
	m := room(t, 3, 3, 1)
	store := ecs.NewStore()
	obj := physics.NewObject(1, 1, 1, 1)
	obj.Solid = false
	id := store.Add(ecs.EntityConfig{Object: &obj, Movement: moving(1, 0)})

	result := collision.NewSystem(m).Resolve(store, id)

	assert.False(t, result.HitX)
	assert.Equal(t, 2.0, store.Object(id).Rect.X)
}

func TestExecuteSkipsIncompleteEntities(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()

	static := physics.NewObject(12, 12, 5, 5)
	staticId := store.Add(ecs.EntityConfig{Object: &static})
	ghostId := store.Add(ecs.EntityConfig{Movement: moving(1, 1)})
	fallingId := spawn(store, geom.NewRect(20, 25, 10, 10), moving(0, 8))

	system := collision.NewSystem(m)
	var landed []ecs.EntityId
	system.OnLand = func(id ecs.EntityId, _ collision.Result) {
		landed = append(landed, id)
	}

	scheduler := ecs.NewScheduler(store)
	scheduler.Register(system)
	scheduler.Once(1)

	assert.Equal(t, []ecs.EntityId{fallingId}, landed)

	_, ok := system.LastResult(staticId)
	assert.False(t, ok)
	_, ok = system.LastResult(ghostId)
	assert.False(t, ok)

	result, ok := system.LastResult(fallingId)
	require.True(t, ok)
	assert.True(t, result.HitFromTop)

	count := 0
	for range system.Results() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestGravityKeepsEntityOnFloor(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	movement := physics.NewMovement(geom.Vec2{Y: 0.5}).WithMaxSpeed(10, 20)
	id := spawn(store, geom.NewRect(20, 12, 10, 10), movement)

	system := collision.NewSystem(m)
	for range 60 {
		movement.Invalidate()
		system.Resolve(store, id)
	}

	assert.Equal(t, 40.0, store.Object(id).Rect.Bottom())
	assert.LessOrEqual(t, movement.Velocity().Y, 0.5)
}

func TestProbe(t *testing.T) {
	m := room(t, 5, 5, 10)
	obj := physics.NewObject(5, 12, 10, 5)

	contacts := collision.Probe(m, &obj)
	require.Len(t, contacts, 2)

	assert.True(t, contacts[0].Overlapped)
	assert.Equal(t, geom.NewRect(5, 12, 5, 5), contacts[0].Overlap)
	assert.False(t, contacts[1].Overlapped)
	assert.Equal(t, geom.NewRect(5, 12, 10, 5), obj.Rect)
}

func TestOnLandFiresOncePerLanding(t *testing.T) {
	m := room(t, 5, 5, 10)
	store := ecs.NewStore()
	spawn(store, geom.NewRect(20, 28, 10, 10), physics.NewMovement(geom.Vec2{Y: 1}))

	system := collision.NewSystem(m)
	landings := 0
	system.OnLand = func(ecs.EntityId, collision.Result) {
		landings++
	}

	scheduler := ecs.NewScheduler(store)
	scheduler.RegisterNamed("forces", ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		for _, movement := range frame.Store.Movements() {
			movement.Invalidate()
		}
	}))
	scheduler.Register(system)

	for range 10 {
		scheduler.Once(1)
	}
	assert.Equal(t, 1, landings)
}
