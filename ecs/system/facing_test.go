package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacingFollowsVelocity(t *testing.T) {
	tests := []struct {
		name      string
		vx, vy    float64
		diagonals bool
		want      view.Angle
		changed   bool
	}{
		{name: "down faces camera", vx: 0, vy: 50, want: view.AngleFront, changed: false},
		{name: "up", vx: 0, vy: -50, want: view.AngleBack, changed: true},
		{name: "left", vx: -50, vy: 0, want: view.AngleLeft, changed: true},
		{name: "down right diagonal", vx: 40, vy: 40, diagonals: true, want: view.AngleFrontRight, changed: true},
		{name: "up left diagonal", vx: -40, vy: -40, diagonals: true, want: view.AngleBackLeft, changed: true},
		{name: "below threshold", vx: 1, vy: -1, want: view.AngleFront, changed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			queue := &ecs.Queue[ViewChanged]{}
			sys := NewFacingSystem(queue, 5, tc.diagonals)

			e := spawnActor(t, w, frog, idle, view.AngleFront)
			body := cp.NewBody(1, 1)
			body.SetVelocity(tc.vx, tc.vy)
			require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}))

			sys.Update(w)

			actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
			assert.Equal(t, tc.want, actor.Angle)
			if tc.changed {
				assert.Equal(t, []ViewChanged{{Entity: e}}, queue.Drain())
			} else {
				assert.Zero(t, queue.Len())
			}
		})
	}
}
