package tilemap_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRoom builds a width x height map whose border cells are solid
func newRoom(t *testing.T, width, height int, tileSize float64) *tilemap.Map {
	t.Helper()
	specs := make([]tilemap.CellSpec, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			border := x == 0 || y == 0 || x == width-1 || y == height-1
			specs = append(specs, tilemap.CellSpec{Asset: "c", Solid: border})
		}
	}
	m, err := tilemap.New(width, height, tileSize, specs)
	require.NoError(t, err)
	return m
}

func TestNewValidates(t *testing.T) {
	_, err := tilemap.New(2, 2, 1, make([]tilemap.CellSpec, 3))
	assert.Error(t, err)

	_, err = tilemap.New(0, 2, 1, nil)
	assert.Error(t, err)

	_, err = tilemap.New(1, 1, 0, make([]tilemap.CellSpec, 1))
	assert.Error(t, err)
}

func TestCellGeometry(t *testing.T) {
	m := newRoom(t, 4, 3, 10)

	cell, ok := m.At(2, 1)
	require.True(t, ok)
	assert.Equal(t, geom.NewRect(20, 10, 10, 10), cell.Object.Rect)
	assert.False(t, cell.Object.Solid)

	idx, ok := m.Index(2, 1)
	require.True(t, ok)
	assert.Equal(t, 6, idx)

	byIdx, ok := m.Cell(idx)
	require.True(t, ok)
	assert.Same(t, cell, byIdx)

	assert.Equal(t, geom.NewRect(0, 0, 40, 30), m.Bounds())
	assert.Equal(t, 12, m.Len())
}

func TestOutOfRangeLookups(t *testing.T) {
	m := newRoom(t, 3, 3, 1)

	for _, pos := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		_, ok := m.At(pos[0], pos[1])
		assert.False(t, ok, "%v", pos)
	}

	_, ok := m.Cell(9)
	assert.False(t, ok)
	_, ok = m.Cell(-1)
	assert.False(t, ok)
}

func TestIterVisitsRowMajor(t *testing.T) {
	m := newRoom(t, 3, 2, 1)

	var visited []tilemap.GridPos
	for pos, cell := range m.Iter() {
		visited = append(visited, pos)
		assert.Equal(t, float64(pos.X), cell.Object.Rect.X)
	}
	assert.Equal(t, []tilemap.GridPos{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, visited)
}

func TestCollidableTiles(t *testing.T) {
	m := newRoom(t, 5, 5, 10)

	tests := []struct {
		name string
		rect geom.Rect
		want [][2]int
	}{
		{"inside one cell", geom.NewRect(12, 12, 5, 5), [][2]int{{1, 1}}},
		{"aligned to cell", geom.NewRect(10, 10, 10, 10), [][2]int{{1, 1}}},
		{"straddles columns", geom.NewRect(15, 12, 10, 5), [][2]int{{1, 1}, {2, 1}}},
		{"straddles both", geom.NewRect(15, 15, 10, 10), [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}},
		{"negative clamps to zero", geom.NewRect(-15, -5, 20, 10), [][2]int{{0, 0}}},
		{"past the grid", geom.NewRect(45, 45, 20, 20), [][2]int{{4, 4}}},
		{"entirely outside", geom.NewRect(60, 0, 5, 5), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			for _, cell := range m.CollidableTiles(tt.rect) {
				got = append(got, [2]int{int(cell.Object.Rect.X / 10), int(cell.Object.Rect.Y / 10)})
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// The broad phase never misses a cell the rectangle overlaps with positive area.
func TestCollidableTilesCoversOverlaps(t *testing.T) {
	m := newRoom(t, 6, 6, 7)
	rect := geom.NewRect(9.5, 3.25, 15, 22)

	candidates := map[*tilemap.Cell]bool{}
	for _, c := range m.CollidableTiles(rect) {
		candidates[c] = true
	}

	for _, cell := range m.Iter() {
		got, ok := rect.Overlap(cell.Object.Rect)
		if ok && got.Area() > 0 {
			assert.True(t, candidates[cell], "missing %v", cell.Object.Rect)
		}
	}
}

func TestDefaultRoom(t *testing.T) {
	m := tilemap.Default()
	assert.Equal(t, 30, m.Width())
	assert.Equal(t, 15, m.Height())
	assert.Equal(t, 70.0, m.TileSize())

	corner, _ := m.At(0, 0)
	assert.True(t, corner.Object.Solid)
	assert.Equal(t, "box", corner.Asset)

	inner, _ := m.At(5, 5)
	assert.False(t, inner.Object.Solid)
	assert.Equal(t, "dirtCenter", inner.Asset)
	assert.True(t, inner.HasAsset())
}

func TestEncodeDecode(t *testing.T) {
	m := newRoom(t, 4, 3, 16)

	var buf bytes.Buffer
	require.NoError(t, m.Encode(&buf))
	assert.Contains(t, buf.String(), `"tilesize": 16`)

	back, err := tilemap.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Specs(), back.Specs())
	assert.Equal(t, m.Bounds(), back.Bounds())
}

func TestDecodeFailures(t *testing.T) {
	_, err := tilemap.Decode(strings.NewReader("{not json"))
	assert.True(t, errors.Is(err, errs.ErrDecode))

	_, err = tilemap.Decode(strings.NewReader(`{"width":2,"height":2,"tilesize":1,"cells":[]}`))
	assert.True(t, errors.Is(err, errs.ErrDecode))

	// width*height wraps to zero in int arithmetic
	_, err = tilemap.Decode(strings.NewReader(`{"width":4294967296,"height":4294967296,"tilesize":1,"cells":[]}`))
	assert.True(t, errors.Is(err, errs.ErrDecode))

	_, err = tilemap.Decode(strings.NewReader(`{"width":2,"height":1,"tilesize":1,"cells":[{},{},{}]}`))
	assert.True(t, errors.Is(err, errs.ErrDecode))
}

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "map.map")

	m, created, err := tilemap.LoadOrCreate(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 30, m.Width())

	_, err = os.Stat(path)
	require.NoError(t, err)

	again, created, err := tilemap.LoadOrCreate(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, m.Specs(), again.Specs())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := tilemap.Load(filepath.Join(t.TempDir(), "nope.map"))
	assert.True(t, errors.Is(err, errs.ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
