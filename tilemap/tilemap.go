package tilemap

import (
	"fmt"
	"iter"
	"math"

	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/physics"
)

// Cell is one tile of the grid
type Cell struct {
	Object physics.Object
	Asset  string
}

// HasAsset reports whether the cell references a sprite
func (c *Cell) HasAsset() bool {
	return c.Asset != ""
}

// Map is a fixed-size grid of cells addressed as y*width+x. Cells do not move
// once the map is built.
type Map struct {
	cells    []Cell
	width    int
	height   int
	tileSize float64
}

// CellSpec describes a cell before it is placed on the grid
type CellSpec struct {
	Asset string
	Solid bool
}

// New builds a map from row-major cell specs. Each cell's rectangle is derived
// from its grid position and the tile size.
func New(width, height int, tileSize float64, specs []CellSpec) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if !(tileSize > 0) || math.IsInf(tileSize, 0) {
		return nil, fmt.Errorf("invalid tile size %v", tileSize)
	}
	if len(specs)%width != 0 || len(specs)/width != height {
		return nil, fmt.Errorf("map is %dx%d but has %d cells", width, height, len(specs))
	}

	m := &Map{
		cells:    make([]Cell, len(specs)),
		width:    width,
		height:   height,
		tileSize: tileSize,
	}

	for i, spec := range specs {
		x := i % width
		y := i / width
		obj := physics.NewObject(float64(x)*tileSize, float64(y)*tileSize, tileSize, tileSize)
		obj.Solid = spec.Solid
		m.cells[i] = Cell{Object: obj, Asset: spec.Asset}
	}

	return m, nil
}

// Default returns a 30x15 room with solid walls around an open interior
func Default() *Map {
	const (
		width  = 30
		height = 15
	)

	wall := CellSpec{Asset: "box", Solid: true}
	empty := CellSpec{Asset: "dirtCenter", Solid: false}

	specs := make([]CellSpec, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				specs = append(specs, wall)
			} else {
				specs = append(specs, empty)
			}
		}
	}

	m, err := New(width, height, 70, specs)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the number of columns
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows
func (m *Map) Height() int {
	return m.height
}

// TileSize returns the edge length of a cell in world units
func (m *Map) TileSize() float64 {
	return m.tileSize
}

// Len returns the number of cells
func (m *Map) Len() int {
	return len(m.cells)
}

// Bounds returns the world-space rectangle covered by the grid
func (m *Map) Bounds() geom.Rect {
	return geom.NewRect(0, 0, float64(m.width)*m.tileSize, float64(m.height)*m.tileSize)
}

// Index converts a grid position to a cell index
func (m *Map) Index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, false
	}
	return y*m.width + x, true
}

// Cell returns the cell at index i
func (m *Map) Cell(i int) (*Cell, bool) {
	if i < 0 || i >= len(m.cells) {
		return nil, false
	}
	return &m.cells[i], true
}

// At returns the cell at grid position (x, y)
func (m *Map) At(x, y int) (*Cell, bool) {
	i, ok := m.Index(x, y)
	if !ok {
		return nil, false
	}
	return &m.cells[i], true
}

// GridPos is a column/row position on the grid
type GridPos struct {
	X, Y int
}

// Iter returns an iterator over cells and their grid positions in index order
func (m *Map) Iter() iter.Seq2[GridPos, *Cell] {
	return func(yield func(GridPos, *Cell) bool) {
		for i := range m.cells {
			if !yield(GridPos{X: i % m.width, Y: i / m.width}, &m.cells[i]) {
				return
			}
		}
	}
}

// Specs returns the row-major cell specs the map was built from
func (m *Map) Specs() []CellSpec {
	specs := make([]CellSpec, len(m.cells))
	for i, c := range m.cells {
		specs[i] = CellSpec{Asset: c.Asset, Solid: c.Object.Solid}
	}
	return specs
}
