package assets_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/platformer/assets"
	"github.com/plus3/platformer/errs"
	"github.com/plus3/platformer/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atlasDoc = `{
  "path": "tiles.png",
  "items": [
    {"name": "box", "path": "box.png", "x": 0, "y": 70, "width": 70, "height": 70},
    {"name": "hillSmall", "path": "hill_small.png", "x": 140, "y": 0, "width": 48, "height": 106}
  ]
}`

func TestDecodeAtlas(t *testing.T) {
	atlas, err := assets.Decode(strings.NewReader(atlasDoc), 70)
	require.NoError(t, err)

	assert.Equal(t, "tiles.png", atlas.Sheet)
	assert.Equal(t, 2, atlas.Len())

	r, ok := atlas.Region("hillSmall")
	assert.True(t, ok)
	assert.Equal(t, geom.NewRect(140, 0, 48, 106), r)

	_, ok = atlas.Region("missing")
	assert.False(t, ok)
	assert.Equal(t, geom.NewRect(0, 0, 70, 70), atlas.RegionOrDefault("missing"))
	assert.Equal(t, geom.NewRect(0, 70, 70, 70), atlas.RegionOrDefault("box"))
}

func TestDecodeAtlasErrors(t *testing.T) {
	tests := []string{
		`not json`,
		`{"path": "x.png", "items": [{"x": 1}]}`,
		`{"path": "x.png", "items": [{"name": "a", "width": -3}]}`,
	}

	for _, doc := range tests {
		_, err := assets.Decode(strings.NewReader(doc), 70)
		assert.True(t, errors.Is(err, errs.ErrDecode), doc)
	}
}

func TestLoadAtlas(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiles.json")
	require.NoError(t, os.WriteFile(path, []byte(atlasDoc), 0o644))

	atlas, err := assets.Load(path, 70)
	require.NoError(t, err)
	assert.Equal(t, 2, atlas.Len())

	_, err = assets.Load(filepath.Join(dir, "nope.json"), 70)
	assert.True(t, errors.Is(err, errs.ErrIO))
}
