package system

import (
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/view"
)

// FacingSystem turns view actors toward the direction their physics body is
// moving once its speed exceeds the threshold.
type FacingSystem struct {
	queue     *ecs.Queue[ViewChanged]
	threshold float64
	diagonals bool
}

func NewFacingSystem(queue *ecs.Queue[ViewChanged], threshold float64, diagonals bool) *FacingSystem {
	if threshold < 0 {
		threshold = 0
	}
	return &FacingSystem{queue: queue, threshold: threshold, diagonals: diagonals}
}

func (s *FacingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.ViewActorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, actor *component.ViewActor, body *component.PhysicsBody) {
		if body.Body == nil {
			return
		}
		vel := body.Body.Velocity()
		if vel.Length() <= s.threshold {
			return
		}
		angle, ok := view.AngleFromDirection(vel, s.diagonals)
		if !ok || angle == actor.Angle {
			return
		}
		actor.Angle = angle
		s.queue.Push(ViewChanged{Entity: e})
	})
}
