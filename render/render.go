// Package render draws a game.World with ebiten: the tile map and every
// visible entity through the camera transform, plus an optional collision
// overlay.
package render

import (
	"image"
	"image/color"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/platformer/assets"
	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/collision"
	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/game"
	"github.com/plus3/platformer/geom"
)

var (
	background   = color.RGBA{0, 0, 0, 255}
	solidColor   = color.RGBA{120, 90, 60, 255}
	entityColor  = color.RGBA{90, 200, 120, 255}
	probeColor   = color.RGBA{255, 255, 255, 160}
	overlapColor = color.RGBA{230, 40, 40, 160}
	cursorColor  = color.RGBA{80, 160, 255, 160}
)

// LoadImage reads an image file into an ebiten image
func LoadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, errs.IO("load image "+path, err)
	}
	return img, nil
}

// Renderer draws a world. Without a spritesheet every shape is drawn as a
// flat rectangle.
type Renderer struct {
	world *game.World
	atlas *assets.Atlas
	sheet *ebiten.Image
	scale float64

	// Debug enables the collision overlay
	Debug bool
	// Cursor is the mouse position in screen coordinates, probed by the overlay
	Cursor geom.Vec2

	sprites map[geom.Rect]*ebiten.Image
}

// New creates a renderer. atlas and sheet may both be nil.
func New(world *game.World, atlas *assets.Atlas, sheet *ebiten.Image, scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{
		world:   world,
		atlas:   atlas,
		sheet:   sheet,
		scale:   scale,
		sprites: make(map[geom.Rect]*ebiten.Image),
	}
}

// SetSheet swaps the spritesheet, keeping the atlas regions
func (r *Renderer) SetSheet(sheet *ebiten.Image) {
	if sheet == r.sheet {
		return
	}
	r.sheet = sheet
	clear(r.sprites)
}

// Draw renders the world as of the last tick
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	t := r.world.Transform()
	r.drawMap(screen, t)
	r.drawEntities(screen, t)

	if r.Debug {
		r.drawOverlay(screen)
	}
}

func (r *Renderer) drawMap(screen *ebiten.Image, t camera.Transform) {
	for _, cell := range r.world.Map.Iter() {
		if !cell.Object.Visible {
			continue
		}

		if sprite := r.sprite(cell.Asset, true); sprite != nil {
			screen.DrawImage(sprite, &ebiten.DrawImageOptions{GeoM: SpriteGeoM(t, cell.Object.Rect.Point(), r.scale)})
			continue
		}

		if cell.Object.Solid {
			fillRect(screen, t.ApplyRect(cell.Object.Rect), solidColor)
		}
	}
}

func (r *Renderer) drawEntities(screen *ebiten.Image, t camera.Transform) {
	for id, asset := range r.world.Store.Assets() {
		obj := r.world.Store.Object(id)
		if obj == nil || !obj.Visible {
			continue
		}

		if sprite := r.sprite(asset, false); sprite != nil {
			screen.DrawImage(sprite, &ebiten.DrawImageOptions{GeoM: SpriteGeoM(t, obj.Rect.Point(), 1)})
			continue
		}
		fillRect(screen, t.ApplyRect(obj.Rect), entityColor)
	}
}

// drawOverlay outlines the cells the broad phase returns for the camera
// target and for the cursor, and fills the target's exact overlaps
func (r *Renderer) drawOverlay(screen *ebiten.Image) {
	t := r.world.DebugTransform()

	if id, ok := r.world.TargetId(); ok {
		if obj := r.world.Store.Object(id); obj != nil {
			for _, contact := range collision.Probe(r.world.Map, obj) {
				strokeRect(screen, t.ApplyRect(contact.Cell.Object.Rect), probeColor)
				if contact.Overlapped {
					fillRect(screen, t.ApplyRect(contact.Overlap), overlapColor)
				}
			}
		}
	}

	cursor := t.Unapply(r.Cursor)
	for _, cell := range r.world.Map.CollidableTiles(geom.NewRect(cursor.X, cursor.Y, 0, 0)) {
		strokeRect(screen, t.ApplyRect(cell.Object.Rect), cursorColor)
	}
}

// sprite returns the atlas region for name as a sub-image of the sheet.
// Unknown names use the atlas fallback region when fallback is set.
func (r *Renderer) sprite(name string, fallback bool) *ebiten.Image {
	if r.sheet == nil || r.atlas == nil || name == "" {
		return nil
	}

	region, ok := r.atlas.Region(name)
	if !ok {
		if !fallback {
			return nil
		}
		region = r.atlas.RegionOrDefault(name)
	}

	if img, ok := r.sprites[region]; ok {
		return img
	}
	img := r.sheet.SubImage(SourceRect(region)).(*ebiten.Image)
	r.sprites[region] = img
	return img
}

// SourceRect converts an atlas region to an image rectangle
func SourceRect(region geom.Rect) image.Rectangle {
	return image.Rect(int(region.X), int(region.Y), int(region.Right()), int(region.Bottom()))
}

// SpriteGeoM places a sprite drawn at world position pos, scaled by scale
// before the camera transform is applied
func SpriteGeoM(t camera.Transform, pos geom.Vec2, scale float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(scale, scale)
	m.Translate(pos.X, pos.Y)
	m.Translate(-t.Offset.X, -t.Offset.Y)
	m.Scale(t.Scale, t.Scale)
	return m
}

func fillRect(screen *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func strokeRect(screen *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, clr, false)
}
