package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/geom"
	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/physics"
)

// Inspector edits the components of the entity selected in a browser
type Inspector struct {
	store   *ecs.Store
	browser *EntityBrowser
}

func NewInspector(store *ecs.Store, browser *EntityBrowser) *Inspector {
	return &Inspector{store: store, browser: browser}
}

func (ci *Inspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := ci.browser.GetSelectedEntity()
	if id == ecs.Nil || !ci.store.Exists(id) {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	name, _ := ci.store.Name(id)
	imgui.Text(fmt.Sprintf("Entity: %s %s", id, name))
	if asset, ok := ci.store.Asset(id); ok {
		imgui.Text("Asset: " + asset)
	}
	imgui.Separator()

	if obj := ci.store.Object(id); obj != nil {
		if imgui.TreeNodeStr("Object") {
			renderObject(obj)
			imgui.TreePop()
		}
	}

	if mov := ci.store.Movement(id); mov != nil {
		if imgui.TreeNodeStr("Movement") {
			renderMovement(mov)
			imgui.TreePop()
		}
	}

	if in := ci.store.Input(id); in != nil {
		if imgui.TreeNodeStr("Input") {
			renderInput(in)
			imgui.TreePop()
		}
	}

	if imgui.Button("Delete Entity") {
		ci.store.Remove(id)
		ci.browser.Select(ecs.Nil)
	}

	imgui.End()
}

func renderObject(obj *physics.Object) {
	inputFloat64("X", &obj.Rect.X)
	inputFloat64("Y", &obj.Rect.Y)

	width, height := obj.Rect.Width, obj.Rect.Height
	if inputFloat64("Width", &width) && width >= 0 {
		obj.Rect.Width = width
	}
	if inputFloat64("Height", &height) && height >= 0 {
		obj.Rect.Height = height
	}

	imgui.Checkbox("Visible", &obj.Visible)
	imgui.SameLine()
	imgui.Checkbox("Solid", &obj.Solid)
}

func renderMovement(mov *physics.Movement) {
	velocity := mov.Velocity()
	changed := inputFloat64("Velocity X", &velocity.X)
	changed = inputFloat64("Velocity Y", &velocity.Y) || changed
	if changed {
		mov.SetVelocity(velocity)
	}

	imgui.Text(fmt.Sprintf("Max Speed: %s", formatVec(mov.MaxSpeed())))
	imgui.Text(fmt.Sprintf("Dirty: %v", mov.Dirty()))

	if imgui.TreeNodeStr(fmt.Sprintf("Forces (%d)", len(mov.Forces()))) {
		for _, f := range mov.Forces() {
			imgui.BulletText(formatVec(f))
		}
		imgui.TreePop()
	}

	if pending := mov.Pending(); len(pending) > 0 {
		imgui.Text(fmt.Sprintf("Pending impulses: %d", len(pending)))
	}

	if imgui.Button("Stop") {
		mov.ResetSpeed()
	}
}

func renderInput(in *input.Input) {
	imgui.Text("Kind: " + in.Kind().String())

	player := in.Player()
	if player == nil {
		return
	}

	imgui.Text(fmt.Sprintf("Direction: %s", directionName(player.Direction())))
	imgui.Text(fmt.Sprintf("Crouched: %v", player.Crouched()))
	imgui.Text(fmt.Sprintf("Jumping: %v", player.Jumping()))
	imgui.Text(fmt.Sprintf("Jump available: %v", player.JumpAvailable()))

	if imgui.Button("Reset Jump") {
		in.ResetJump()
	}
}

func inputFloat64(label string, v *float64) bool {
	f := float32(*v)
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat(label, &f) {
		*v = float64(f)
		return true
	}
	return false
}

func formatVec(v geom.Vec2) string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

func directionName(d input.Direction) string {
	switch d {
	case input.DirectionLeft:
		return "left"
	case input.DirectionRight:
		return "right"
	default:
		return "none"
	}
}
