package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
)

// RenderSystem draws every entity with a Transform and a Sprite, cutting the
// current atlas frame out of the sheet when the entity has a TextureAtlas.
type RenderSystem struct {
	images  *asset.Store[ebiten.Image]
	layouts *asset.Store[asset.AtlasLayout]
}

func NewRenderSystem(images *asset.Store[ebiten.Image], layouts *asset.Store[asset.AtlasLayout]) *RenderSystem {
	return &RenderSystem{images: images, layouts: layouts}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil || r.images == nil {
		return
	}

	entities := w.Query(component.TransformComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		img, ok := r.images.Get(s.Image)
		if !ok || img == nil {
			continue
		}
		img = r.frame(w, e, img)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		// Mirroring happens around the origin.
		if s.FlipX {
			sx = -sx
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X, t.Y)

		screen.DrawImage(img, op)
	}
}

func (r *RenderSystem) frame(w *ecs.World, e ecs.Entity, img *ebiten.Image) *ebiten.Image {
	if r.layouts == nil {
		return img
	}
	atlas, ok := ecs.Get(w, e, component.TextureAtlasComponent.Kind())
	if !ok {
		return img
	}
	layout, ok := r.layouts.Get(atlas.Layout)
	if !ok {
		return img
	}
	n := layout.Len()
	if n == 0 {
		return img
	}
	rect, ok := layout.Frame(((atlas.Index % n) + n) % n)
	if !ok {
		return img
	}
	if sub, ok := img.SubImage(rect).(*ebiten.Image); ok {
		return sub
	}
	return img
}
