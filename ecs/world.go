package ecs

import "github.com/milk9111/ratchet/ecs/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, the frame clock and system order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	systems  []System
	events   EventQueue
	clock    Clock
}

// NewWorld creates an empty ECS world stepping at DefaultDelta.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]componentStore),
		clock:  Clock{Delta: DefaultDelta},
	}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity drops every component of e and recycles its id.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities lists live entities in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update advances the clock, runs all systems once and drops leftover events.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.clock.advance()
	for _, s := range w.systems {
		s.Update(w)
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clock returns the frame clock.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return &w.clock
}
