package ecs

import "github.com/milk9111/foxtrot/ecs/component"

// snapshot copies the id list of the smallest store so callbacks may add,
// remove, or destroy while iterating.
func snapshot(w *World, kinds ...component.Kind) []entityID {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	var smallest store
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || s == nil {
			return nil
		}
		if smallest == nil || s.len() < smallest.len() {
			smallest = s
		}
	}
	ids := smallest.ids()
	out := make([]entityID, len(ids))
	copy(out, ids)
	return out
}

func hasAll(w *World, id entityID, kinds []component.Kind) bool {
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s == nil || !s.has(id) {
			return false
		}
	}
	return true
}

// Query returns the live entities that carry every kind.
func Query(w *World, kinds ...component.Kind) []Entity {
	ids := snapshot(w, kinds...)
	if len(ids) == 0 {
		return nil
	}
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if !hasAll(w, id, kinds) {
			continue
		}
		if e, ok := w.entities.entityFor(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns any live entity carrying kind. Used for singletons.
func First(w *World, kind component.Kind) (Entity, bool) {
	for _, id := range snapshot(w, kind) {
		if e, ok := w.entities.entityFor(id); ok {
			return e, true
		}
	}
	return 0, false
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range Query(w, ka) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range Query(w, ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range Query(w, ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
