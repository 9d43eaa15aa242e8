package system

import (
	"log/slog"

	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/view"
)

// ViewChangedSystem drains pending view-changed notifications and points each
// entity's sprite at the sheet the registry resolves for its current view.
type ViewChangedSystem struct {
	registry *view.Registry
	queue    *ecs.Queue[ViewChanged]
	logger   *slog.Logger
}

func NewViewChangedSystem(registry *view.Registry, queue *ecs.Queue[ViewChanged], logger *slog.Logger) *ViewChangedSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewChangedSystem{registry: registry, queue: queue, logger: logger}
}

func (s *ViewChangedSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.registry == nil {
		return
	}

	for _, evt := range s.queue.Drain() {
		s.apply(w, evt.Entity)
	}
}

func (s *ViewChangedSystem) apply(w *ecs.World, e ecs.Entity) {
	if !w.IsAlive(e) {
		return
	}
	actor, ok := ecs.Get(w, e, component.ViewActorComponent.Kind())
	if !ok {
		return
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return
	}

	res, ok := s.registry.Resolve(actor.Actor, actor.Action, actor.Angle)
	if !ok {
		s.logger.Debug("view: no sprite sheet",
			"entity", e.String(),
			"actor", uint64(actor.Actor),
			"action", uint64(actor.Action),
			"angle", actor.Angle.String(),
		)
		return
	}

	actor.Flipped = res.Flipped
	sprite.FlipX = res.Flipped
	if res.Sheet.Image.Valid() {
		sprite.Image = res.Sheet.Image
	}
	if res.Sheet.Layout.Valid() {
		if atlas, ok := ecs.Get(w, e, component.TextureAtlasComponent.Kind()); ok {
			// Frame counts differ between layouts.
			if atlas.Layout != res.Sheet.Layout {
				atlas.Index = 0
			}
			atlas.Layout = res.Sheet.Layout
		}
	}
}
