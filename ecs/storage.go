package ecs

import (
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/plus3/platformer/input"
	"github.com/plus3/platformer/physics"
)

// Store owns every component of every entity. Components live in separate
// maps keyed by EntityId; systems look them up by id each tick.
type Store struct {
	nextId EntityId

	// spawn order, may contain removed ids until the next compaction
	order []EntityId
	live  *intmap.Set[EntityId]

	names     *ComponentMap[string]
	byName    map[string]EntityId
	assets    *ComponentMap[string]
	objects   *ComponentMap[physics.Object]
	movements *ComponentMap[physics.Movement]
	inputs    *ComponentMap[input.Input]
}

// StoreStats summarizes the store contents
type StoreStats struct {
	Entities  int
	Named     int
	Objects   int
	Assets    int
	Movements int
	Inputs    int
}

// NewStore creates an empty entity store
func NewStore() *Store {
	return &Store{
		nextId:    1,
		live:      intmap.NewSet[EntityId](defaultComponentCapacity),
		names:     NewComponentMap[string](),
		byName:    make(map[string]EntityId),
		assets:    NewComponentMap[string](),
		objects:   NewComponentMap[physics.Object](),
		movements: NewComponentMap[physics.Movement](),
		inputs:    NewComponentMap[input.Input](),
	}
}

// Add creates an entity with the components present in cfg
func (s *Store) Add(cfg EntityConfig) EntityId {
	id := s.nextId
	s.nextId++

	s.order = append(s.order, id)
	s.live.Add(id)
	s.Attach(id, cfg)

	return id
}

// Attach adds the components present in cfg to an existing entity, replacing
// components of the same type. The Object is copied while Movement and Input
// are stored as given. A name already bound to another entity is
// re-bound to this one.
func (s *Store) Attach(id EntityId, cfg EntityConfig) {
	if !s.live.Has(id) {
		return
	}

	if cfg.Object != nil {
		if cfg.Object.Rect.Width < 0 || cfg.Object.Rect.Height < 0 {
			panic("entity object cannot have a negative size")
		}
		obj := *cfg.Object
		s.objects.Put(id, &obj)
	}

	if cfg.Name != "" {
		if old, ok := s.names.values.Get(id); ok && s.byName[*old] == id {
			delete(s.byName, *old)
		}
		if prev, ok := s.byName[cfg.Name]; ok && prev != id {
			s.names.Delete(prev)
		}
		name := cfg.Name
		s.names.Put(id, &name)
		s.byName[name] = id
	}

	if cfg.Asset != "" {
		asset := cfg.Asset
		s.assets.Put(id, &asset)
	}

	if cfg.Movement != nil {
		s.movements.Put(id, cfg.Movement)
	}

	if cfg.Input != nil {
		s.inputs.Put(id, cfg.Input)
	}
}

// Remove deletes an entity and all its components
func (s *Store) Remove(id EntityId) bool {
	if !s.live.Del(id) {
		return false
	}

	if name := s.names.Get(id); name != nil && s.byName[*name] == id {
		delete(s.byName, *name)
	}
	s.names.Delete(id)
	s.assets.Delete(id)
	s.objects.Delete(id)
	s.movements.Delete(id)
	s.inputs.Delete(id)

	if len(s.order) > 2*s.live.Len()+defaultComponentCapacity {
		s.Compact()
	}
	return true
}

// Compact drops removed ids from the iteration order
func (s *Store) Compact() {
	kept := s.order[:0]
	for _, id := range s.order {
		if s.live.Has(id) {
			kept = append(kept, id)
		}
	}
	clear(s.order[len(kept):])
	s.order = kept
}

// Exists reports whether id refers to a live entity
func (s *Store) Exists(id EntityId) bool {
	return s.live.Has(id)
}

// Len returns the number of live entities
func (s *Store) Len() int {
	return s.live.Len()
}

// ByName returns the entity bound to name
func (s *Store) ByName(name string) (EntityId, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Name returns the entity's name
func (s *Store) Name(id EntityId) (string, bool) {
	if name := s.names.Get(id); name != nil {
		return *name, true
	}
	return "", false
}

// Asset returns the entity's display asset
func (s *Store) Asset(id EntityId) (string, bool) {
	if asset := s.assets.Get(id); asset != nil {
		return *asset, true
	}
	return "", false
}

// Object returns the entity's shape component, or nil
func (s *Store) Object(id EntityId) *physics.Object {
	return s.objects.Get(id)
}

// Movement returns the entity's movement component, or nil
func (s *Store) Movement(id EntityId) *physics.Movement {
	return s.movements.Get(id)
}

// Input returns the entity's input component, or nil
func (s *Store) Input(id EntityId) *input.Input {
	return s.inputs.Get(id)
}

// Entities iterates over live entities in spawn order
func (s *Store) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range s.order {
			if s.live.Has(id) && !yield(id) {
				return
			}
		}
	}
}

// Objects iterates over entities with a shape component in spawn order
func (s *Store) Objects() iter.Seq2[EntityId, *physics.Object] {
	return each(s, s.objects)
}

// Movements iterates over entities with a movement component in spawn order
func (s *Store) Movements() iter.Seq2[EntityId, *physics.Movement] {
	return each(s, s.movements)
}

// Inputs iterates over entities with an input component in spawn order
func (s *Store) Inputs() iter.Seq2[EntityId, *input.Input] {
	return each(s, s.inputs)
}

// Assets iterates over entities with a display asset in spawn order
func (s *Store) Assets() iter.Seq2[EntityId, string] {
	return func(yield func(EntityId, string) bool) {
		for id, asset := range each(s, s.assets) {
			if !yield(id, *asset) {
				return
			}
		}
	}
}

// CollectStats counts entities and components
func (s *Store) CollectStats() StoreStats {
	return StoreStats{
		Entities:  s.live.Len(),
		Named:     s.names.Len(),
		Objects:   s.objects.Len(),
		Assets:    s.assets.Len(),
		Movements: s.movements.Len(),
		Inputs:    s.inputs.Len(),
	}
}

func each[T any](s *Store, cm *ComponentMap[T]) iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for _, id := range s.order {
			component := cm.Get(id)
			if component == nil {
				continue
			}
			if !yield(id, component) {
				return
			}
		}
	}
}
