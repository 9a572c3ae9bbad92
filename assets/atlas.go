// Package assets reads the texture atlas describing where each named sprite
// sits on the spritesheet.
package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/geom"
)

// SubTexture is one named region of the spritesheet
type SubTexture struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Region returns the sub-texture's pixel rectangle
func (s SubTexture) Region() geom.Rect {
	return geom.NewRect(float64(s.X), float64(s.Y), float64(s.Width), float64(s.Height))
}

type document struct {
	Path  string       `json:"path"`
	Items []SubTexture `json:"items"`
}

// Atlas maps asset names to spritesheet regions. Unknown names resolve to the
// fallback region at the sheet origin.
type Atlas struct {
	Sheet    string
	regions  map[string]geom.Rect
	fallback geom.Rect
}

// NewAtlas builds an atlas from sub-textures. The fallback region is the
// top-left tile of the given size.
func NewAtlas(sheet string, tileSize float64, items []SubTexture) *Atlas {
	a := &Atlas{
		Sheet:    sheet,
		regions:  make(map[string]geom.Rect, len(items)),
		fallback: geom.NewRect(0, 0, tileSize, tileSize),
	}
	for _, item := range items {
		a.regions[item.Name] = item.Region()
	}
	return a
}

// Decode reads an atlas document
func Decode(r io.Reader, tileSize float64) (*Atlas, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Decode("decode atlas", err)
	}

	for _, item := range doc.Items {
		if item.Name == "" {
			return nil, errs.Decode("decode atlas", fmt.Errorf("sub-texture at %d,%d has no name", item.X, item.Y))
		}
		if item.Width < 0 || item.Height < 0 {
			return nil, errs.Decode("decode atlas", fmt.Errorf("sub-texture %q has a negative size", item.Name))
		}
	}

	return NewAtlas(doc.Path, tileSize, doc.Items), nil
}

// Load reads the atlas document at path
func Load(path string, tileSize float64) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open atlas", err)
	}
	defer f.Close()

	return Decode(f, tileSize)
}

// Region returns the spritesheet rectangle for name
func (a *Atlas) Region(name string) (geom.Rect, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// RegionOrDefault returns the region for name, or the fallback region
func (a *Atlas) RegionOrDefault(name string) geom.Rect {
	if r, ok := a.regions[name]; ok {
		return r
	}
	return a.fallback
}

// Len returns the number of named regions
func (a *Atlas) Len() int {
	return len(a.regions)
}
