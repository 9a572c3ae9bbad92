package ecs

// System is one phase of a tick. Systems run in registration order and may
// keep their own state between frames, but must address entities by id and not
// hold component pointers from one frame to the next.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface
type SystemFunc func(frame *UpdateFrame)

// Execute calls f(frame)
func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
