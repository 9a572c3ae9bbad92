// Package term renders a game.World in a terminal with tcell and reads the
// keyboard from terminal key events.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/game"
	"github.com/plus3/platformer/geom"
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	entityStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Renderer draws the world as characters. Each terminal cell covers
// CellWidth x CellHeight world units.
type Renderer struct {
	Screen     tcell.Screen
	World      *game.World
	CellWidth  float64
	CellHeight float64
	Status     bool
}

// NewRenderer creates a renderer drawing one map tile as two columns by one
// row
func NewRenderer(screen tcell.Screen, world *game.World) *Renderer {
	ts := world.Map.TileSize()
	return &Renderer{
		Screen:     screen,
		World:      world,
		CellWidth:  ts / 2,
		CellHeight: ts,
		Status:     true,
	}
}

// Viewport returns the world-space view matching a terminal of the given size
func (r *Renderer) Viewport(cols, rows int) geom.Rect {
	return geom.NewRect(0, 0, float64(cols)*r.CellWidth, float64(rows)*r.CellHeight)
}

// TerminalView is the viewport of a default renderer over a map with the
// given tile size, for building a camera before the world exists
func TerminalView(cols, rows int, tileSize float64) geom.Rect {
	return geom.NewRect(0, 0, float64(cols)*tileSize/2, float64(rows)*tileSize)
}

// Draw renders the world as of the last tick and shows the screen
func (r *Renderer) Draw() {
	r.Screen.Clear()
	t := r.World.Transform()

	for _, cell := range r.World.Map.Iter() {
		if cell.Object.Solid && cell.Object.Visible {
			r.fill(t, cell.Object.Rect, '█', wallStyle)
		}
	}

	target, _ := r.World.TargetId()
	for id, obj := range r.World.Store.Objects() {
		if !obj.Visible {
			continue
		}
		style := entityStyle
		if id == target {
			style = targetStyle
		}
		r.fill(t, obj.Rect, '@', style)
	}

	if r.Status {
		r.drawStatus()
	}

	r.Screen.Show()
}

// fill covers every terminal cell the world rectangle touches
func (r *Renderer) fill(t camera.Transform, rect geom.Rect, ch rune, style tcell.Style) {
	sr := t.ApplyRect(rect)
	cols, rows := r.Screen.Size()

	x0 := max(int(math.Floor(sr.X/r.CellWidth)), 0)
	y0 := max(int(math.Floor(sr.Y/r.CellHeight)), 0)
	x1 := min(int(math.Ceil(sr.Right()/r.CellWidth)), cols)
	y1 := min(int(math.Ceil(sr.Bottom()/r.CellHeight)), rows)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.Screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (r *Renderer) drawStatus() {
	cols, rows := r.Screen.Size()
	if rows == 0 {
		return
	}

	line := fmt.Sprintf(" tick %d", r.World.Scheduler.Tick())
	if id, ok := r.World.TargetId(); ok {
		if obj := r.World.Store.Object(id); obj != nil {
			line += fmt.Sprintf("  pos %.0f,%.0f", obj.Rect.X, obj.Rect.Y)
		}
		if mv := r.World.Store.Movement(id); mv != nil {
			v := mv.Velocity()
			line += fmt.Sprintf("  vel %.1f,%.1f", v.X, v.Y)
		}
	}
	line += "  [a/d move, w jump, q quit]"

	x := 0
	for _, ch := range line {
		if x >= cols {
			break
		}
		r.Screen.SetContent(x, rows-1, ch, nil, statusStyle)
		x++
	}
}
