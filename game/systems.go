package game

import (
	"github.com/plus3/platformer/camera"
	"github.com/plus3/platformer/ecs"
	"github.com/plus3/platformer/geom"
)

// InputSystem feeds the tick's key state to every input component
type InputSystem struct{}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	for _, in := range frame.Store.Inputs() {
		in.Update(frame.Input)
	}
}

// ForceSystem starts a new integration step for every movement and adds the
// force produced by the entity's input, if any.
type ForceSystem struct{}

func (s *ForceSystem) Execute(frame *ecs.UpdateFrame) {
	for id, movement := range frame.Store.Movements() {
		movement.Invalidate()
		if in := frame.Store.Input(id); in != nil {
			if force := in.Force(); force != (geom.Vec2{}) {
				movement.AddInstantaneousForce(force)
			}
		}
		movement.Update()
	}
}

// CameraSystem moves the camera to follow the entity bound to Target
type CameraSystem struct {
	Camera *camera.Camera
	Target string

	transform camera.Transform
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	s.transform = s.Camera.Update(TargetRect(frame.Store, s.Target))
}

// Transform returns the transform committed by the last tick
func (s *CameraSystem) Transform() camera.Transform {
	return s.transform
}

// TargetRect returns a copy of the named entity's rectangle, or nil when the
// entity or its object is missing
func TargetRect(store *ecs.Store, name string) *geom.Rect {
	id, ok := store.ByName(name)
	if !ok {
		return nil
	}
	obj := store.Object(id)
	if obj == nil {
		return nil
	}
	rect := obj.Rect
	return &rect
}
