package ecs

import (
	"github.com/kamstrup/intmap"
)

const defaultComponentCapacity = 64

// ComponentMap stores one component type keyed by entity. An entity has the
// component iff the map holds a value for its id.
type ComponentMap[T any] struct {
	values *intmap.Map[EntityId, *T]
}

// NewComponentMap creates an empty component map
func NewComponentMap[T any]() *ComponentMap[T] {
	return &ComponentMap[T]{
		values: intmap.New[EntityId, *T](defaultComponentCapacity),
	}
}

// Put stores the component for id, replacing any previous one
func (cm *ComponentMap[T]) Put(id EntityId, component *T) {
	if component == nil {
		cm.values.Del(id)
		return
	}
	cm.values.Put(id, component)
}

// Get returns the component for id or nil
func (cm *ComponentMap[T]) Get(id EntityId) *T {
	component, ok := cm.values.Get(id)
	if !ok {
		return nil
	}
	return component
}

// Has reports whether id has the component
func (cm *ComponentMap[T]) Has(id EntityId) bool {
	return cm.values.Has(id)
}

// Delete removes the component for id
func (cm *ComponentMap[T]) Delete(id EntityId) {
	cm.values.Del(id)
}

// Len returns the number of entities with the component
func (cm *ComponentMap[T]) Len() int {
	return cm.values.Len()
}

// Clear removes every component
func (cm *ComponentMap[T]) Clear() {
	cm.values.Clear()
}
