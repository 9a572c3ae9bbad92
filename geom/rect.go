package geom

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of v and o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Sum adds up a list of vectors
func Sum(vs []Vec2) Vec2 {
	var total Vec2
	for _, v := range vs {
		total = total.Add(v)
	}
	return total
}

// Rect is an axis-aligned rectangle. Width and Height are never negative.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect creates a rectangle, normalizing negative sizes to zero
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: math.Max(width, 0), Height: math.Max(height, 0)}
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Area returns Width * Height
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Point returns the top-left corner
func (r Rect) Point() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// At returns a copy of the rectangle moved to (x, y)
func (r Rect) At(x, y float64) Rect {
	r.X = x
	r.Y = y
	return r
}

// MoveBy returns a copy of the rectangle translated by (dx, dy)
func (r Rect) MoveBy(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// ContainsPoint reports whether p lies inside r, edges included
func (r Rect) ContainsPoint(p Vec2) bool {
	return r.X <= p.X && p.X <= r.Right() &&
		r.Y <= p.Y && p.Y <= r.Bottom()
}

// Contains reports whether o lies entirely inside r, edges included
func (r Rect) Contains(o Rect) bool {
	return r.X <= o.X && o.Right() <= r.Right() &&
		r.Y <= o.Y && o.Bottom() <= r.Bottom()
}

// HasOverlap reports whether the rectangles intersect. Touching edges count.
func (r Rect) HasOverlap(o Rect) bool {
	if r.Right() < o.X || o.Right() < r.X {
		return false
	}
	if r.Bottom() < o.Y || o.Bottom() < r.Y {
		return false
	}
	return true
}

// Overlap returns the intersection of r and o. The result has zero area when
// the rectangles only touch, and ok is false when they are disjoint.
func (r Rect) Overlap(o Rect) (Rect, bool) {
	if !r.HasOverlap(o) {
		return Rect{}, false
	}

	x := math.Max(r.X, o.X)
	y := math.Max(r.Y, o.Y)
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())

	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}, true
}
