package tilemap

import (
	"math"

	"github.com/plus3/platformer/geom"
)

// Span returns the half-open column and row ranges covered by rect: the
// minimum edges are floored and the maximum edges ceiled, both clamped to
// the grid.
func (m *Map) Span(rect geom.Rect) (minX, maxX, minY, maxY int) {
	minX = m.clampColumn(math.Floor(rect.X / m.tileSize))
	maxX = m.clampColumn(math.Ceil(rect.Right() / m.tileSize))
	minY = m.clampRow(math.Floor(rect.Y / m.tileSize))
	maxY = m.clampRow(math.Ceil(rect.Bottom() / m.tileSize))
	return minX, maxX, minY, maxY
}

// CollidableTiles returns every cell in the grid span of rect, column by
// column. It is a broad phase: callers still test each cell for overlap.
func (m *Map) CollidableTiles(rect geom.Rect) []*Cell {
	minX, maxX, minY, maxY := m.Span(rect)
	if minX >= maxX || minY >= maxY {
		return nil
	}

	cells := make([]*Cell, 0, (maxX-minX)*(maxY-minY))
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			cells = append(cells, &m.cells[y*m.width+x])
		}
	}
	return cells
}

func (m *Map) clampColumn(v float64) int {
	return clampIndex(v, m.width)
}

func (m *Map) clampRow(v float64) int {
	return clampIndex(v, m.height)
}

func clampIndex(v float64, limit int) int {
	if !(v > 0) {
		return 0
	}
	if v > float64(limit) {
		return limit
	}
	return int(v)
}
