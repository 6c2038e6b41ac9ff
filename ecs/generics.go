package ecs

import (
	"slices"

	"github.com/milk9111/ratchet/ecs/component"
)

// storeFor returns the typed store of kind, creating it when create is set.
// ok is false when the kind is invalid or registered with another type.
func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) (*SparseSet[T], bool) {
	if w == nil || !kind.Valid() {
		return nil, false
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil, false
		}
		set := newSparseSet[T]()
		w.stores[kind.ID()] = set
		return set, true
	}
	set, ok := raw.(*SparseSet[T])
	return set, ok
}

// Add attaches value to e, replacing any previous value of the same kind.
// The world keeps the pointer, so later mutations through it are visible.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	if value == nil {
		return component.ErrNilComponent
	}
	set, ok := storeFor(w, kind, true)
	if !ok {
		return component.ErrInvalidComponentKind
	}
	set.Set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	set, ok := storeFor(w, kind, false)
	if !ok {
		return nil, false
	}
	v := set.Get(e.id())
	return v, v != nil
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	set, ok := storeFor(w, kind, false)
	return ok && set.Has(e.id())
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	set, ok := storeFor(w, kind, false)
	return ok && set.Remove(e.id())
}

// First returns the lowest-id live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	set, ok := storeFor(w, kind, false)
	if !ok || set.Len() == 0 {
		return 0, false
	}
	for _, id := range set.IDs() {
		if e := w.entities.entity(id); e.Valid() {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity with kind in id order. The id list is a
// snapshot, so fn may add, remove or destroy freely.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa, ok := storeFor(w, ka, false)
	if !ok {
		return
	}
	for _, id := range sa.IDs() {
		e := w.entities.entity(id)
		a := sa.Get(id)
		if !e.Valid() || a == nil {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, ok := storeFor(w, ka, false)
	if !ok {
		return
	}
	sb, ok := storeFor(w, kb, false)
	if !ok {
		return
	}
	for _, id := range sa.IDs() {
		e := w.entities.entity(id)
		a, b := sa.Get(id), sb.Get(id)
		if !e.Valid() || a == nil || b == nil {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, ok := storeFor(w, ka, false)
	if !ok {
		return
	}
	sb, ok := storeFor(w, kb, false)
	if !ok {
		return
	}
	sc, ok := storeFor(w, kc, false)
	if !ok {
		return
	}
	for _, id := range sa.IDs() {
		e := w.entities.entity(id)
		a, b, c := sa.Get(id), sb.Get(id), sc.Get(id)
		if !e.Valid() || a == nil || b == nil || c == nil {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, ok := storeFor(w, ka, false)
	if !ok {
		return
	}
	sb, ok := storeFor(w, kb, false)
	if !ok {
		return
	}
	sc, ok := storeFor(w, kc, false)
	if !ok {
		return
	}
	sd, ok := storeFor(w, kd, false)
	if !ok {
		return
	}
	for _, id := range sa.IDs() {
		e := w.entities.entity(id)
		a, b, c, d := sa.Get(id), sb.Get(id), sc.Get(id), sd.Get(id)
		if !e.Valid() || a == nil || b == nil || c == nil || d == nil {
			continue
		}
		fn(e, a, b, c, d)
	}
}

// Query returns the live entities that carry every kind, in id order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		store, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, store)
	}
	slices.SortFunc(stores, func(a, b componentStore) int { return a.Len() - b.Len() })

	var out []Entity
	for _, id := range stores[0].IDs() {
		matched := true
		for _, store := range stores[1:] {
			if !store.Has(id) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if e := w.entities.entity(id); e.Valid() {
			out = append(out, e)
		}
	}
	return out
}
