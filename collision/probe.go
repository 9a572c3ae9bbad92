package collision

import (
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/physics"
	"github.com/plus3/platformer/tilemap"
)

// Contact is a broad-phase candidate cell and its exact overlap with a shape
type Contact struct {
	Cell       *tilemap.Cell
	Overlap    geom.Rect
	Overlapped bool
}

// Probe lists the cells the broad phase returns for obj, with the overlap of
// each. It does not move anything.
func Probe(m *tilemap.Map, obj *physics.Object) []Contact {
	cells := m.CollidableTiles(obj.Rect)
	contacts := make([]Contact, 0, len(cells))
	for _, cell := range cells {
		overlap, ok := obj.Overlap(&cell.Object)
		contacts = append(contacts, Contact{Cell: cell, Overlap: overlap, Overlapped: ok})
	}
	return contacts
}
