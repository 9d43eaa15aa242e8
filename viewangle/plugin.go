// Package viewangle wires the view registry and the view systems into an ecs
// scheduler.
package viewangle

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/viewangle/asset"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/ecs/entity"
	"github.com/milk9111/viewangle/ecs/system"
	"github.com/milk9111/viewangle/prefabs"
	"github.com/milk9111/viewangle/view"
)

type Config struct {
	// RunStates limits the view systems to these host states. Empty runs
	// them always.
	RunStates    []string
	CurrentState func() string

	Logger *slog.Logger

	Diagonals       bool
	FacingThreshold float64
	// FrameDuration is the frame time for actors whose prefab sets none.
	FrameDuration time.Duration

	Scripts system.ScriptLoader
}

// ConfigFromSpec builds a Config from a decoded plugin spec.
func ConfigFromSpec(spec *prefabs.PluginSpec, currentState func() string) Config {
	cfg := Config{CurrentState: currentState}
	if spec == nil {
		return cfg
	}
	cfg.RunStates = slices.Clone(spec.RunStates)
	cfg.Diagonals = spec.Diagonals
	cfg.FacingThreshold = spec.FacingThreshold
	cfg.FrameDuration = spec.FrameDuration
	return cfg
}

type Plugin struct {
	cfg      Config
	logger   *slog.Logger
	registry *view.Registry
	images   *asset.Store[ebiten.Image]
	layouts  *asset.Store[asset.AtlasLayout]
	queue    *ecs.Queue[system.ViewChanged]

	// static holds entries added in code; reloads replay them before the
	// manifests.
	static    [][]view.Entry
	manifests []string

	scripts  *system.ViewScriptSystem
	renderer *system.RenderSystem
}

func New(cfg Config, images *asset.Store[ebiten.Image], layouts *asset.Store[asset.AtlasLayout]) *Plugin {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.FrameDuration <= 0 {
		cfg.FrameDuration = prefabs.DefaultFrameDuration
	}
	if cfg.Scripts == nil {
		cfg.Scripts = prefabs.LoadScript
	}
	if images == nil {
		images = asset.NewStore[ebiten.Image]()
	}
	if layouts == nil {
		layouts = asset.NewStore[asset.AtlasLayout]()
	}

	p := &Plugin{
		cfg:      cfg,
		logger:   cfg.Logger,
		registry: view.NewRegistry(),
		images:   images,
		layouts:  layouts,
		queue:    &ecs.Queue[system.ViewChanged]{},
	}
	p.scripts = system.NewViewScriptSystem(cfg.Scripts, p.queue, p.logger)
	p.renderer = system.NewRenderSystem(images, layouts)
	return p
}

// Install adds the view systems to s in the order facing, script,
// view-changed, animation.
func (p *Plugin) Install(s *ecs.Scheduler) {
	if p == nil || s == nil {
		return
	}
	gate := func(sys ecs.System) ecs.System {
		return system.RunInStates(sys, p.cfg.CurrentState, p.cfg.RunStates...)
	}
	s.Add(gate(system.NewFacingSystem(p.queue, p.cfg.FacingThreshold, p.cfg.Diagonals)))
	s.Add(gate(p.scripts))
	s.Add(gate(system.NewViewChangedSystem(p.registry, p.queue, p.logger)))
	s.Add(gate(system.NewViewAnimationSystem(p.layouts, p.queue)))
}

// MarkViewChanged queues e for re-resolution on the next update. Call it
// after changing an actor's angle, action or actor id.
func (p *Plugin) MarkViewChanged(e ecs.Entity) {
	if p == nil {
		return
	}
	p.queue.Push(system.ViewChanged{Entity: e})
}

// RefreshAll marks every view actor in w changed.
func (p *Plugin) RefreshAll(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.ViewActorComponent.Kind(), func(e ecs.Entity, _ *component.ViewActor) {
		p.MarkViewChanged(e)
	})
}

func (p *Plugin) Registry() *view.Registry {
	return p.registry
}

func (p *Plugin) Images() *asset.Store[ebiten.Image] {
	return p.images
}

func (p *Plugin) Layouts() *asset.Store[asset.AtlasLayout] {
	return p.layouts
}

// Register adds entries to the registry and keeps them across reloads.
func (p *Plugin) Register(entries ...view.Entry) {
	if p == nil || len(entries) == 0 {
		return
	}
	p.static = append(p.static, slices.Clone(entries))
	p.registry.Register(entries...)
}

// LoadStruct registers the view fields of an annotated asset struct, or the
// entries of a view.Collection. Nothing is registered on error.
func (p *Plugin) LoadStruct(collection any) (view.Symbols, error) {
	if c, ok := collection.(view.Collection); ok {
		p.Register(c.ViewEntries()...)
		return view.Symbols{}, nil
	}
	entries, symbols, err := view.Compile(collection)
	if err != nil {
		return view.Symbols{}, err
	}
	p.Register(entries...)
	return symbols, nil
}

// LoadManifest registers a yaml view manifest and remembers it for
// ReloadManifests. The manifest's layouts are added to the layout store once
// every entry has compiled; a failing manifest leaves both stores and the
// registry untouched.
func (p *Plugin) LoadManifest(path string) error {
	if p == nil {
		return nil
	}
	staged, err := p.stageManifests(path)
	if err != nil {
		return err
	}
	batches, err := p.commitManifests(staged)
	if err != nil {
		return err
	}
	p.registry.Register(batches[0]...)
	if !slices.Contains(p.manifests, path) {
		p.manifests = append(p.manifests, path)
	}
	p.logger.Info("view: manifest loaded", "path", path, "entries", len(batches[0]))
	return nil
}

// ReloadManifests rebuilds the registry from the code-registered entries and
// every loaded manifest. On error the current registry and layouts are kept.
func (p *Plugin) ReloadManifests() error {
	if p == nil {
		return nil
	}
	staged, err := p.stageManifests(p.manifests...)
	if err != nil {
		return err
	}
	batches, err := p.commitManifests(staged)
	if err != nil {
		return err
	}

	fresh := view.NewRegistry()
	for _, batch := range p.static {
		fresh.Register(batch...)
	}
	for _, batch := range batches {
		fresh.Register(batch...)
	}
	p.registry.Replace(fresh)
	p.logger.Info("view: manifests reloaded", "count", len(p.manifests), "tables", p.registry.Len())
	return nil
}

type stagedManifest struct {
	manifest *prefabs.ViewManifest
	layouts  map[string]*asset.AtlasLayout
}

// stageManifests loads and checks manifests in order without touching the
// stores. Later manifests may use layouts declared by earlier ones.
func (p *Plugin) stageManifests(paths ...string) ([]stagedManifest, error) {
	pending := make(map[string]*asset.AtlasLayout)
	resolver := prefabs.StagedResolver{
		Base:    prefabs.StoreResolver{Images: p.images, Layouts: p.layouts},
		Layouts: pending,
	}

	staged := make([]stagedManifest, 0, len(paths))
	for _, path := range paths {
		m, err := prefabs.LoadViewManifest(path)
		if err != nil {
			return nil, err
		}
		layouts, err := m.BuildLayouts()
		if err != nil {
			return nil, err
		}
		maps.Copy(pending, layouts)
		if _, err := m.Compile(resolver); err != nil {
			return nil, err
		}
		staged = append(staged, stagedManifest{manifest: m, layouts: layouts})
	}
	return staged, nil
}

// commitManifests adds the staged layouts and compiles the entries against
// the real handles.
func (p *Plugin) commitManifests(staged []stagedManifest) ([][]view.Entry, error) {
	for _, s := range staged {
		prefabs.AddLayouts(p.layouts, s.layouts)
	}
	resolver := prefabs.StoreResolver{Images: p.images, Layouts: p.layouts}
	batches := make([][]view.Entry, 0, len(staged))
	for _, s := range staged {
		entries, err := s.manifest.Compile(resolver)
		if err != nil {
			return nil, err
		}
		batches = append(batches, entries)
	}
	return batches, nil
}

// HandleChange reacts to a prefab file edit: manifests are reloaded and every
// actor re-resolved, scripts are recompiled on their next run.
func (p *Plugin) HandleChange(w *ecs.World, change prefabs.Change) error {
	if p == nil {
		return nil
	}
	switch change.Kind {
	case prefabs.ChangeManifest:
		if !slices.Contains(p.manifests, change.Name) {
			return nil
		}
		if err := p.ReloadManifests(); err != nil {
			return err
		}
		p.RefreshAll(w)
	case prefabs.ChangeScript:
		p.scripts.Invalidate(change.Name)
		p.logger.Info("view: script invalidated", "path", change.Name)
	}
	return nil
}

// Spawn builds an entity from a prefab and marks it changed so its sprite is
// resolved on the next update.
func (p *Plugin) Spawn(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if p == nil {
		return 0, fmt.Errorf("viewangle: nil plugin")
	}
	e, err := entity.BuildEntity(w, prefabPath, entity.Options{
		Layouts:       p.layouts,
		FrameDuration: p.cfg.FrameDuration,
	})
	if err != nil {
		return 0, err
	}
	p.MarkViewChanged(e)
	return e, nil
}

// SpawnAt builds an entity from a prefab and moves it to (x, y), keeping the
// prefab's rotation.
func (p *Plugin) SpawnAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	e, err := p.Spawn(w, prefabPath)
	if err != nil {
		return 0, err
	}
	var rotation float64
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		rotation = t.Rotation
	}
	if err := entity.SetEntityTransform(w, e, x, y, rotation); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("viewangle: place %s: %w", prefabPath, err)
	}
	return e, nil
}

// Draw renders every sprite in w.
func (p *Plugin) Draw(w *ecs.World, screen *ebiten.Image) {
	if p == nil {
		return
	}
	p.renderer.Draw(w, screen)
}
