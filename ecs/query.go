package ecs

import "github.com/milk9111/viewangle/ecs/component"

// snapshot copies the dense entity list so callbacks may add or remove
// components while iterating.
func snapshot(s *SparseSet) []Entity {
	if s == nil || s.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.Entities()...)
}

// ForEach visits every live entity holding A.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range snapshot(w.store(ka.ID(), false)) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// ForEach2 visits every live entity holding A and B.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range snapshot(w.store(ka.ID(), false)) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 visits every live entity holding A, B and C.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// ForEach4 visits every live entity holding A, B, C and D.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := Get(w, e, kd)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}

// Query returns live entities holding every listed component id.
func (w *World) Query(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	base := w.store(ids[0], false)
	if base == nil {
		return nil
	}
	out := make([]Entity, 0, base.Len())
	for _, e := range base.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		ok := true
		for _, id := range ids[1:] {
			if !w.HasComponent(e, id) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}
