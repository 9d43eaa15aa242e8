package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/prefabs"
	"github.com/milk9111/viewangle/view"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// Options carries what prefab components need from the host.
type Options struct {
	Layouts       *asset.Store[asset.AtlasLayout]
	FrameDuration time.Duration
}

type buildContext struct {
	PrefabPath string
	Options
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":     addTransform,
	"sprite":        addSprite,
	"texture_atlas": addTextureAtlas,
	"render_layer":  addRenderLayer,
	"view_actor":    addViewActor,
	"view_script":   addViewScript,
	"physics_body":  addPhysicsBody,
}

var componentBuildOrder = []string{
	"transform",
	"sprite",
	"texture_atlas",
	"render_layer",
	"view_actor",
	"view_script",
	"physics_body",
}

func BuildEntity(w *ecs.World, prefabPath string, opts Options) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return Build(w, prefabPath, spec, opts)
}

// Build creates an entity from an already decoded prefab.
func Build(w *ecs.World, prefabPath string, spec entityPrefabSpec, opts Options) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Options: opts}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform places e at (x, y) with the given rotation, adding a
// unit-scale Transform when e has none. A physics body is moved along so the
// next step does not snap the entity back.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
		body.Body.SetAngle(rotation)
	}
	return nil
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

// addSprite leaves the image empty; the view systems fill it once the entity
// is marked changed.
func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
	})
}

type textureAtlasSpec = prefabs.TextureAtlasComponentSpec

func addTextureAtlas(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[textureAtlasSpec](raw)
	if err != nil {
		return fmt.Errorf("decode texture atlas spec: %w", err)
	}
	atlas := &component.TextureAtlas{Index: spec.Index}
	if spec.Layout != "" {
		h, ok := ctx.Layouts.Lookup(spec.Layout)
		if !ok {
			return fmt.Errorf("unknown layout %q: %w", spec.Layout, view.ErrUnknownAsset)
		}
		atlas.Layout = h
	}
	return ecs.Add(w, e, component.TextureAtlasComponent.Kind(), atlas)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type viewActorSpec = prefabs.ViewActorComponentSpec

func addViewActor(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[viewActorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode view actor spec: %w", err)
	}

	var actor component.ViewActor
	if spec.Actor != "" {
		if actor.Actor, err = view.ParseActorID(spec.Actor); err != nil {
			return err
		}
	}
	if spec.Action != "" {
		if actor.Action, err = view.ParseActionID(spec.Action); err != nil {
			return err
		}
	}
	if spec.Angle != "" {
		if actor.Angle, err = view.ParseAngle(spec.Angle); err != nil {
			return err
		}
	}
	for _, name := range spec.NextActions {
		next, err := view.ParseActionID(name)
		if err != nil {
			return err
		}
		actor.QueueActions(next)
	}
	if spec.NotifyLastFrame {
		actor.Subscribe(component.NotifyLastFrame)
	}

	frame := time.Duration(spec.FrameMS) * time.Millisecond
	if frame <= 0 {
		frame = ctx.FrameDuration
	}
	if frame > 0 {
		actor.AnimationTimer = component.NewRepeatingTimer(frame)
	}

	return ecs.Add(w, e, component.ViewActorComponent.Kind(), &actor)
}

type viewScriptSpec = prefabs.ViewScriptComponentSpec

func addViewScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[viewScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode view script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("view script has no path")
	}
	return ecs.Add(w, e, component.ViewScriptComponent.Kind(), &component.ViewScript{
		Path:  spec.Path,
		State: spec.State,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

// addPhysicsBody creates a free-standing circle body positioned at the
// entity's transform. The host decides whether to add it to a space.
func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	if spec.Radius <= 0 {
		spec.Radius = 16
	}

	body := cp.NewBody(spec.Mass, cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{}))
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && tr != nil {
		body.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})
	}
	body.SetVelocity(spec.VelocityX, spec.VelocityY)
	shape := cp.NewCircle(body, spec.Radius, cp.Vector{})

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:  body,
		Shape: shape,
	})
}
