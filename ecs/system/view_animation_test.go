package system

import (
	"image"
	"testing"
	"time"

	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameStep = 100 * time.Millisecond

func animationFixture(t *testing.T, frames int) (*ecs.World, *ViewAnimationSystem, *ecs.Queue[ViewChanged], ecs.Entity) {
	t.Helper()
	layouts := asset.NewStore[asset.AtlasLayout]()
	h := layouts.Add("strip", &asset.AtlasLayout{
		Size:     image.Pt(16*frames, 16),
		Textures: make([]image.Rectangle, frames),
	})

	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewAnimationSystem(layouts, queue)
	sys.SetDelta(func() time.Duration { return frameStep })

	w := ecs.NewWorld()
	e := spawnActor(t, w, frog, idle, view.AngleFront)
	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.AnimationTimer = component.NewRepeatingTimer(frameStep)
	atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	atlas.Layout = h
	return w, sys, queue, e
}

func TestViewAnimationWrapsAndNotifiesOncePerCycle(t *testing.T) {
	const frames = 4
	w, sys, _, e := animationFixture(t, frames)
	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.Subscribe(component.NotifyLastFrame)

	var (
		indices []int
		notices []int
	)
	for i := 0; i < frames*3; i++ {
		atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
		before := atlas.Index

		sys.Update(w)
		if lf := LastFrames(w); len(lf) > 0 {
			require.Len(t, lf, 1)
			assert.Equal(t, e, lf[0].Entity)
			assert.Equal(t, frames-1, before)
			notices = append(notices, i)
		}
		w.Events().Drain()

		indices = append(indices, atlas.Index)
	}

	assert.Equal(t, []int{1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0}, indices)
	assert.Equal(t, []int{3, 7, 11}, notices)
}

func TestViewAnimationWithoutSubscriptionIsSilent(t *testing.T) {
	w, sys, _, _ := animationFixture(t, 2)
	for i := 0; i < 4; i++ {
		sys.Update(w)
		assert.Empty(t, LastFrames(w))
		w.Events().Drain()
	}
}

func TestViewAnimationWaitsForTimer(t *testing.T) {
	w, sys, _, e := animationFixture(t, 3)
	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.AnimationTimer = component.NewRepeatingTimer(3 * frameStep)

	sys.Update(w)
	sys.Update(w)
	atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	assert.Equal(t, 0, atlas.Index)

	sys.Update(w)
	assert.Equal(t, 1, atlas.Index)
}

func TestViewAnimationPlaysQueuedActionOnWrap(t *testing.T) {
	w, sys, queue, e := animationFixture(t, 2)
	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.QueueActions(hop)

	sys.Update(w)
	assert.Equal(t, idle, actor.Action)
	assert.Zero(t, queue.Len())

	sys.Update(w)
	assert.Equal(t, hop, actor.Action)
	assert.Empty(t, actor.NextActions)
	assert.Equal(t, []ViewChanged{{Entity: e}}, queue.Drain())

	changes := ActionChanges(w)
	require.Len(t, changes, 1)
	assert.Equal(t, ActionChanged{Entity: e, Action: hop}, changes[0])
}

func TestViewAnimationSkipsUnknownLayout(t *testing.T) {
	w, sys, _, e := animationFixture(t, 2)
	atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	atlas.Layout = layout(404)

	sys.Update(w)
	assert.Equal(t, 0, atlas.Index)
}
