// Package debugui draws Dear ImGui windows over a running world: an entity
// browser, a component inspector, scheduler performance and collision
// results.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platformer/ecs"
)

// ImguiItem holds a Dear ImGui render function called once per frame
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Game input should be ignored while it is.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every item's render function to the end of the frame
// and refreshes the input capture state.
type ImguiSystem struct {
	Items      []ImguiItem
	InputState ImguiInputState
}

// Add registers a render function
func (i *ImguiSystem) Add(render func()) {
	i.Items = append(i.Items, ImguiItem{Render: render})
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range i.Items {
		frame.Commands.Defer(item.Render)
	}
}
