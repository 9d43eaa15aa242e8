package ecs

import "github.com/milk9111/viewangle/ecs/component"

// World owns entities, component storage and the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// Events returns the frame event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// AddComponent stores value under the component id for e.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

// GetComponent returns the raw component value for e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	store := w.store(id, false)
	if store == nil {
		return nil, false
	}
	v := store.Get(e)
	return v, v != nil
}

// HasComponent reports whether e carries the component id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	_, ok := w.GetComponent(e, id)
	return ok
}

// RemoveComponent deletes the component id from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	store := w.store(id, false)
	if store == nil {
		return false
	}
	return store.Remove(e)
}

// First returns the first live entity carrying the component id.
func (w *World) First(id component.ComponentID) (Entity, bool) {
	store := w.store(id, false)
	for _, e := range store.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
