// Package camera keeps a viewport following a target rectangle inside the
// world bounds.
package camera

import "github.com/plus3/platformer/geom"

// DefaultMargin is the distance kept between the target and each view edge
const DefaultMargin = 100.0

// Margin is the band inside the view the target must stay within
type Margin struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// UniformMargin returns a margin of m on every side
func UniformMargin(m float64) Margin {
	return Margin{Left: m, Top: m, Right: m, Bottom: m}
}

// Transform maps world coordinates to screen coordinates
type Transform struct {
	Scale  float64
	Offset geom.Vec2
}

// Apply returns p in screen coordinates
func (t Transform) Apply(p geom.Vec2) geom.Vec2 {
	return p.Sub(t.Offset).Scale(t.Scale)
}

// Unapply maps a screen point back to world coordinates
func (t Transform) Unapply(p geom.Vec2) geom.Vec2 {
	if t.Scale == 0 {
		return t.Offset
	}
	return p.Scale(1 / t.Scale).Add(t.Offset)
}

// ApplyRect returns r in screen coordinates
func (t Transform) ApplyRect(r geom.Rect) geom.Rect {
	p := t.Apply(r.Point())
	return geom.NewRect(p.X, p.Y, r.Width*t.Scale, r.Height*t.Scale)
}

// Camera is a view rectangle in world units. Its size is fixed; its position
// moves with the target.
type Camera struct {
	view      geom.Rect
	margin    Margin
	bounds    geom.Rect
	hasBounds bool
	zoom      float64
}

// New creates a camera over the given view with the default margin and no
// zoom
func New(view geom.Rect) *Camera {
	return &Camera{
		view:   view,
		margin: UniformMargin(DefaultMargin),
		zoom:   1,
	}
}

// WithMargin sets the follow margin
func (c *Camera) WithMargin(m Margin) *Camera {
	c.margin = m
	return c
}

// WithBounds restricts the view to the given world rectangle
func (c *Camera) WithBounds(bounds geom.Rect) *Camera {
	c.bounds = bounds
	c.hasBounds = true
	return c
}

// WithZoom sets the scale factor of the transform. Non-positive values are
// ignored.
func (c *Camera) WithZoom(zoom float64) *Camera {
	if zoom > 0 {
		c.zoom = zoom
	}
	return c
}

func (c *Camera) View() geom.Rect {
	return c.view
}

func (c *Camera) Margin() Margin {
	return c.margin
}

func (c *Camera) Bounds() (geom.Rect, bool) {
	return c.bounds, c.hasBounds
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// ComputeOffset returns the view position that keeps target inside the margin
// band and the view inside the bounds. The camera is not modified.
func (c *Camera) ComputeOffset(target *geom.Rect) geom.Vec2 {
	x, y := c.view.X, c.view.Y
	w, h := c.view.Width, c.view.Height

	if target != nil {
		x = follow(x, w, target.X, target.Width, c.margin.Left, c.margin.Right)
		y = follow(y, h, target.Y, target.Height, c.margin.Top, c.margin.Bottom)
	}

	if c.hasBounds {
		// an oversized view with no target centres on the bounds, not on their max edge
		center := c.bounds.Center()
		if target != nil {
			center = target.Center()
		}
		x = confine(x, w, c.bounds.X, c.bounds.Width, center.X)
		y = confine(y, h, c.bounds.Y, c.bounds.Height, center.Y)
	}

	return geom.Vec2{X: x, Y: y}
}

// Update moves the camera for target and returns the new transform
func (c *Camera) Update(target *geom.Rect) Transform {
	offset := c.ComputeOffset(target)
	c.view.X, c.view.Y = offset.X, offset.Y
	return c.transform(offset)
}

// GetTransform returns the transform Update would return without moving the
// camera
func (c *Camera) GetTransform(target *geom.Rect) Transform {
	return c.transform(c.ComputeOffset(target))
}

// Current returns the transform of the committed view
func (c *Camera) Current() Transform {
	return c.transform(c.view.Point())
}

func (c *Camera) transform(offset geom.Vec2) Transform {
	return Transform{Scale: c.zoom, Offset: offset}
}

// follow pushes the view position pos of length size just enough to keep
// [start, start+length] within the margins
func follow(pos, size, start, length, before, after float64) float64 {
	if pos > start-before {
		pos = start - before
	}
	if limit := start + length + after - size; pos < limit {
		pos = limit
	}
	return pos
}

// confine keeps [pos, pos+size] inside [min, min+extent]. A view larger than
// the bounds is centred on center instead.
func confine(pos, size, min, extent, center float64) float64 {
	if size > extent {
		return center - size/2
	}
	if pos < min {
		pos = min
	}
	if pos+size > min+extent {
		pos = min + extent - size
	}
	return pos
}
