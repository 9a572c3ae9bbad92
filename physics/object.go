package physics

import "github.com/plus3/platformer/geom"

// Object is the position/shape component of an entity or map cell
type Object struct {
	Rect    geom.Rect `json:"rect"`
	Visible bool      `json:"visible"`
	Solid   bool      `json:"solid"`
}

// NewObject creates a visible, solid object of the given size at (x, y)
func NewObject(x, y, width, height float64) Object {
	return Object{
		Rect:    geom.NewRect(x, y, width, height),
		Visible: true,
		Solid:   true,
	}
}

// MoveBy translates the object's rectangle
func (o *Object) MoveBy(dx, dy float64) {
	o.Rect.X += dx
	o.Rect.Y += dy
}

// Overlap returns the intersection with other. Non-solid objects never overlap.
func (o *Object) Overlap(other *Object) (geom.Rect, bool) {
	if !o.Solid || !other.Solid {
		return geom.Rect{}, false
	}
	return o.Rect.Overlap(other.Rect)
}
