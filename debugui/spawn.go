package debugui

import (
	"github.com/plus3/platformer/game"
)

// DebugUI bundles the debug windows of a world
type DebugUI struct {
	System           *ImguiSystem
	EntityBrowser    *EntityBrowser
	Inspector        *Inspector
	PerformanceStats *PerformanceStats
	Collision        *CollisionWindow
}

// Install creates the debug windows for world and registers the system that
// draws them at the end of each tick. overlay may be nil.
func Install(world *game.World, overlay *bool) *DebugUI {
	browser := NewEntityBrowser(world.Store, 50)
	ui := &DebugUI{
		System:           &ImguiSystem{},
		EntityBrowser:    browser,
		Inspector:        NewInspector(world.Store, browser),
		PerformanceStats: NewPerformanceStats(world.Scheduler, 120),
		Collision:        NewCollisionWindow(world, overlay),
	}

	if id, ok := world.TargetId(); ok {
		browser.Select(id)
	}

	ui.System.Add(browser.Render)
	ui.System.Add(ui.Inspector.Render)
	ui.System.Add(ui.PerformanceStats.Render)
	ui.System.Add(ui.Collision.Render)

	world.Scheduler.RegisterNamed("ImguiSystem", ui.System)
	return ui
}

// WantsInput reports whether ImGui consumed last frame's keyboard input
func (ui *DebugUI) WantsInput() bool {
	return ui.System.InputState.WantCaptureKeyboard
}
