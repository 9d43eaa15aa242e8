package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	frog = view.ActorOf("frog")
	idle = view.ActionOf("idle")
	hop  = view.ActionOf("hop")
)

func img(id uint64) view.ImageHandle {
	return asset.HandleOf[ebiten.Image](id)
}

func layout(id uint64) view.LayoutHandle {
	return asset.HandleOf[asset.AtlasLayout](id)
}

func spawnActor(t *testing.T, w *ecs.World, actor view.ActorID, action view.ActionID, angle view.Angle) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.ViewActorComponent.Kind(), &component.ViewActor{Actor: actor, Action: action, Angle: angle}))
	require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{}))
	require.NoError(t, ecs.Add(w, e, component.TextureAtlasComponent.Kind(), &component.TextureAtlas{}))
	return e
}

func display(t *testing.T, w *ecs.World, e ecs.Entity) (component.Sprite, component.TextureAtlas, bool) {
	t.Helper()
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	require.True(t, ok)
	atlas, ok := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	require.True(t, ok)
	actor, ok := ecs.Get(w, e, component.ViewActorComponent.Kind())
	require.True(t, ok)
	return *sprite, *atlas, actor.Flipped
}

func frogRegistry() *view.Registry {
	reg := view.NewRegistry()
	reg.Register(
		view.Entry{Actor: view.ActorRef(frog), Action: view.ActionRef(idle), Angle: view.AngleFront, Image: img(1)},
		view.Entry{Angle: view.AngleLeft, Image: img(2)},
		view.Entry{Angle: view.AngleAny, Layout: layout(9)},
	)
	return reg
}

func TestViewChangedAppliesResolvedSheet(t *testing.T) {
	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(frogRegistry(), queue, nil)

	e := spawnActor(t, w, frog, idle, view.AngleFront)
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)

	sprite, atlas, flipped := display(t, w, e)
	assert.Equal(t, img(1), sprite.Image)
	assert.Equal(t, layout(9), atlas.Layout)
	assert.False(t, flipped)
	assert.False(t, sprite.FlipX)
	assert.Zero(t, queue.Len())
}

func TestViewChangedMirrorsMissingSide(t *testing.T) {
	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(frogRegistry(), queue, nil)

	e := spawnActor(t, w, frog, idle, view.AngleRight)
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)

	sprite, _, flipped := display(t, w, e)
	assert.Equal(t, img(2), sprite.Image)
	assert.True(t, flipped)
	assert.True(t, sprite.FlipX)

	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.Angle = view.AngleLeft
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)

	sprite, _, flipped = display(t, w, e)
	assert.Equal(t, img(2), sprite.Image)
	assert.False(t, flipped)
	assert.False(t, sprite.FlipX)
}

func TestViewChangedUnavailableKeepsDisplay(t *testing.T) {
	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(frogRegistry(), queue, nil)

	e := spawnActor(t, w, frog, idle, view.AngleRight)
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)
	beforeSprite, beforeAtlas, beforeFlipped := display(t, w, e)
	require.True(t, beforeFlipped)

	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.Actor = view.ActorOf("heron")
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)

	sprite, atlas, flipped := display(t, w, e)
	assert.Equal(t, beforeSprite, sprite)
	assert.Equal(t, beforeAtlas, atlas)
	assert.Equal(t, beforeFlipped, flipped)
}

func TestViewChangedIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(frogRegistry(), queue, nil)

	for _, angle := range view.Angles() {
		t.Run(angle.String(), func(t *testing.T) {
			e := spawnActor(t, w, frog, idle, angle)

			queue.Push(ViewChanged{Entity: e})
			sys.Update(w)
			firstSprite, firstAtlas, firstFlipped := display(t, w, e)

			queue.Push(ViewChanged{Entity: e})
			queue.Push(ViewChanged{Entity: e})
			sys.Update(w)
			sprite, atlas, flipped := display(t, w, e)

			assert.Equal(t, firstSprite, sprite)
			assert.Equal(t, firstAtlas, atlas)
			assert.Equal(t, firstFlipped, flipped)
		})
	}
}

func TestViewChangedPartialSheet(t *testing.T) {
	reg := view.NewRegistry()
	reg.Insert(frog, hop, view.NewAngleTable(view.AnglePair{Angle: view.AngleFront, Sheet: view.SpriteSheet{Image: img(5)}}))

	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(reg, queue, nil)

	e := spawnActor(t, w, frog, hop, view.AngleFront)
	atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	atlas.Layout = layout(3)
	atlas.Index = 2

	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)

	sprite, got, _ := display(t, w, e)
	assert.Equal(t, img(5), sprite.Image)
	assert.Equal(t, layout(3), got.Layout)
	assert.Equal(t, 2, got.Index)
}

func TestViewChangedSkipsDeadAndIncompleteEntities(t *testing.T) {
	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(frogRegistry(), queue, nil)

	dead := spawnActor(t, w, frog, idle, view.AngleFront)
	require.True(t, ecs.DestroyEntity(w, dead))

	bare := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, bare, component.ViewActorComponent.Kind(), &component.ViewActor{Actor: frog, Action: idle}))

	queue.Push(ViewChanged{Entity: dead})
	queue.Push(ViewChanged{Entity: bare})
	assert.NotPanics(t, func() { sys.Update(w) })
	assert.Zero(t, queue.Len())
}

func TestViewChangedResetsFrameOnLayoutSwap(t *testing.T) {
	reg := view.NewRegistry()
	reg.Register(
		view.Entry{Actor: view.ActorRef(frog), Action: view.ActionRef(hop), Angle: view.AngleAny, Image: img(3), Layout: layout(6)},
		view.Entry{Action: view.ActionRef(idle), Angle: view.AngleFront, Image: img(1)},
		view.Entry{Angle: view.AngleLeft, Image: img(2)},
		view.Entry{Angle: view.AngleAny, Layout: layout(4)},
	)
	w := ecs.NewWorld()
	queue := &ecs.Queue[ViewChanged]{}
	sys := NewViewChangedSystem(reg, queue, nil)

	e := spawnActor(t, w, frog, hop, view.AngleFront)
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)

	atlas, _ := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	require.Equal(t, layout(6), atlas.Layout)
	atlas.Index = 5

	// re-resolving to the same layout keeps the running frame
	actor, _ := ecs.Get(w, e, component.ViewActorComponent.Kind())
	actor.Angle = view.AngleLeft
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)
	assert.Equal(t, 5, atlas.Index)

	actor.Action = idle
	queue.Push(ViewChanged{Entity: e})
	sys.Update(w)
	assert.Equal(t, layout(4), atlas.Layout)
	assert.Equal(t, 0, atlas.Index)
}
