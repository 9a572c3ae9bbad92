package tilemap

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/plus3/platformer/errs"
)

type cellDocument struct {
	Asset string `json:"asset"`
	Solid bool   `json:"solid"`
}

type document struct {
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	TileSize float64        `json:"tilesize"`
	Cells    []cellDocument `json:"cells"`
}

// Decode reads a map document
func Decode(r io.Reader) (*Map, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Decode("decode map", err)
	}

	specs := make([]CellSpec, len(doc.Cells))
	for i, c := range doc.Cells {
		specs[i] = CellSpec{Asset: c.Asset, Solid: c.Solid}
	}

	m, err := New(doc.Width, doc.Height, doc.TileSize, specs)
	if err != nil {
		return nil, errs.Decode("decode map", err)
	}
	return m, nil
}

// Encode writes the map as an indented document
func (m *Map) Encode(w io.Writer) error {
	doc := document{
		Width:    m.width,
		Height:   m.height,
		TileSize: m.tileSize,
		Cells:    make([]cellDocument, len(m.cells)),
	}
	for i, spec := range m.Specs() {
		doc.Cells[i] = cellDocument{Asset: spec.Asset, Solid: spec.Solid}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errs.IO("encode map", err)
	}
	return nil
}

// Load reads a map document from path
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open map", err)
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

// Save writes the map document to path, creating parent directories
func (m *Map) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.IO("save map", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errs.IO("save map", err)
	}

	w := bufio.NewWriter(f)
	if err := m.Encode(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errs.IO("save map", err)
	}
	if err := f.Close(); err != nil {
		return errs.IO("save map", err)
	}
	return nil
}

// LoadOrCreate loads the map at path, writing Default there first if the file
// does not exist. The bool reports whether the default map was created.
func LoadOrCreate(path string) (*Map, bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		m := Default()
		if err := m.Save(path); err != nil {
			return nil, false, err
		}
		return m, true, nil
	}
	if err != nil {
		return nil, false, errs.IO("stat map", err)
	}

	m, err := Load(path)
	return m, false, err
}
