// Package ebiten hosts the debug windows inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The ImGui ini file is
// disabled so window layout is not persisted between runs.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Frame runs update between the backend's BeginFrame and EndFrame so that any
// ImGui calls made by update end up in this frame's draw data.
func (b *ImguiBackend) Frame(update func() error) error {
	b.BeginFrame()
	defer b.EndFrame()
	return update()
}

// DrawOver draws the ImGui output on top of screen
func (b *ImguiBackend) DrawOver(screen *ebiten.Image) {
	b.Draw(screen)
}
