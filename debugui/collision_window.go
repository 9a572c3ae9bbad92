package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platformer/collision"
	"github.com/plus3/platformer/game"
)

// CollisionWindow lists last tick's collision results and the broad-phase
// contacts of the camera target. Overlay points at the renderer's debug
// flag so the window can toggle it.
type CollisionWindow struct {
	world   *game.World
	Overlay *bool
}

func NewCollisionWindow(world *game.World, overlay *bool) *CollisionWindow {
	return &CollisionWindow{world: world, Overlay: overlay}
}

func (cw *CollisionWindow) Render() {
	if !imgui.BeginV("Collision", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if cw.Overlay != nil {
		imgui.Checkbox("Show overlay", cw.Overlay)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("CollisionResults", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Hit X")
		imgui.TableSetupColumn("Hit Y")
		imgui.TableSetupColumn("Landed")
		imgui.TableHeadersRow()

		for id, result := range cw.world.Collision.Results() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(id.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%v", result.HitX))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%v", result.HitY))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%v", result.HitFromTop))
		}

		imgui.EndTable()
	}

	if id, ok := cw.world.TargetId(); ok {
		if obj := cw.world.Store.Object(id); obj != nil && imgui.TreeNodeStr("Target contacts") {
			for _, c := range collision.Probe(cw.world.Map, obj) {
				r := c.Cell.Object.Rect
				if c.Overlapped {
					imgui.BulletText(fmt.Sprintf("(%.0f, %.0f) overlap %.2fx%.2f", r.X, r.Y, c.Overlap.Width, c.Overlap.Height))
				} else {
					imgui.BulletText(fmt.Sprintf("(%.0f, %.0f) %s", r.X, r.Y, cellKind(c.Cell.Object.Solid)))
				}
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func cellKind(solid bool) string {
	if solid {
		return "solid"
	}
	return "open"
}
