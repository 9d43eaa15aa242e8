package system

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
)

// ViewAnimationSystem advances the atlas frame of every view actor whose
// animation timer elapsed this tick.
type ViewAnimationSystem struct {
	layouts *asset.Store[asset.AtlasLayout]
	queue   *ecs.Queue[ViewChanged]
	delta   func() time.Duration
}

func NewViewAnimationSystem(layouts *asset.Store[asset.AtlasLayout], queue *ecs.Queue[ViewChanged]) *ViewAnimationSystem {
	return &ViewAnimationSystem{layouts: layouts, queue: queue, delta: tickDuration}
}

// SetDelta overrides the per-update time step.
func (s *ViewAnimationSystem) SetDelta(delta func() time.Duration) {
	if s == nil || delta == nil {
		return
	}
	s.delta = delta
}

func tickDuration() time.Duration {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return time.Second / time.Duration(tps)
}

func (s *ViewAnimationSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.layouts == nil {
		return
	}
	dt := s.delta()

	ecs.ForEach2(w, component.ViewActorComponent.Kind(), component.TextureAtlasComponent.Kind(), func(e ecs.Entity, actor *component.ViewActor, atlas *component.TextureAtlas) {
		if actor.AnimationTimer == nil {
			return
		}
		actor.AnimationTimer.Tick(dt)
		if !actor.AnimationTimer.JustFinished() {
			return
		}

		layout, ok := s.layouts.Get(atlas.Layout)
		if !ok {
			return
		}
		frames := layout.Len()
		if frames == 0 {
			return
		}

		if actor.Subscribed(component.NotifyLastFrame) && atlas.Index == frames-1 {
			w.Events().Push(ecs.Event{Type: EventLastFrame, Data: LastFrame{Entity: e}})
		}

		atlas.Index = (atlas.Index + 1) % frames
		if atlas.Index != 0 {
			return
		}

		next, ok := actor.PopAction()
		if !ok {
			return
		}
		actor.Action = next
		w.Events().Push(ecs.Event{Type: EventActionChanged, Data: ActionChanged{Entity: e, Action: next}})
		s.queue.Push(ViewChanged{Entity: e})
	})
}
