package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/viewangle/assets"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/ecs/system"
	"github.com/milk9111/viewangle/prefabs"
	"github.com/milk9111/viewangle/view"
	"github.com/milk9111/viewangle/viewangle"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = 640
	baseHeight = 360

	statePlaying = "playing"
	statePaused  = "paused"

	playerSpeed = 90.0
)

type Game struct {
	logger *slog.Logger
	state  string

	world     *ecs.World
	scheduler *ecs.Scheduler
	space     *cp.Space
	plugin    *viewangle.Plugin
	watcher   *prefabs.Watcher

	player ecs.Entity
	toad   ecs.Entity

	hud          *hud
	pauseUI      *ebitenui.UI
	clipboardOK  bool
	lastFrames   int
	actionSwaps  int
	reloadStatus string
}

func NewGame(logger *slog.Logger, watch bool) (*Game, error) {
	spec, err := prefabs.LoadPluginSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		logger: logger,
		state:  statePlaying,
		world:  ecs.NewWorld(),
		space:  cp.NewSpace(),
	}
	g.space.SetGravity(cp.Vector{})

	cfg := viewangle.ConfigFromSpec(spec, func() string { return g.state })
	cfg.Logger = logger
	g.plugin = viewangle.New(cfg, nil, nil)

	toadSheets, err := assets.Load(g.plugin.Images(), g.plugin.Layouts())
	if err != nil {
		return nil, err
	}
	if _, err := g.plugin.LoadStruct(toadSheets); err != nil {
		return nil, fmt.Errorf("register toad sheets: %w", err)
	}
	for _, m := range spec.Manifests {
		if err := g.plugin.LoadManifest(m); err != nil {
			return nil, err
		}
	}

	g.scheduler = ecs.NewScheduler(ecs.SystemFunc(g.stepPhysics))
	g.plugin.Install(g.scheduler)
	g.scheduler.Add(ecs.SystemFunc(g.collectEvents))

	if err := g.spawn(); err != nil {
		return nil, err
	}

	if watch && spec.HotReload {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}

	g.hud, err = newHUD()
	if err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) spawn() error {
	player, err := g.plugin.Spawn(g.world, "frog.yaml")
	if err != nil {
		return err
	}
	if body, ok := ecs.Get(g.world, player, component.PhysicsBodyComponent.Kind()); ok {
		g.space.AddBody(body.Body)
		g.space.AddShape(body.Shape)
	}
	g.player = player

	if _, err := g.plugin.Spawn(g.world, "wandering_frog.yaml"); err != nil {
		return err
	}

	toad := ecs.CreateEntity(g.world)
	components := []error{
		ecs.Add(g.world, toad, component.TransformComponent.Kind(), &component.Transform{X: 480, Y: 240, ScaleX: 2, ScaleY: 2}),
		ecs.Add(g.world, toad, component.SpriteComponent.Kind(), &component.Sprite{OriginX: assets.TileSize / 2, OriginY: assets.TileSize / 2}),
		ecs.Add(g.world, toad, component.TextureAtlasComponent.Kind(), &component.TextureAtlas{}),
		ecs.Add(g.world, toad, component.ViewActorComponent.Kind(), &component.ViewActor{
			Actor:          assets.ActorToadSheetsToad,
			Action:         assets.ActionToadSheetsIdle,
			AnimationTimer: component.NewRepeatingTimer(200 * time.Millisecond),
		}),
	}
	for _, err := range components {
		if err != nil {
			return fmt.Errorf("spawn toad: %w", err)
		}
	}
	g.toad = toad
	g.plugin.MarkViewChanged(toad)
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.togglePause()
	}
	g.pollWatcher()

	if g.state == statePaused {
		g.pauseUI.Update()
		g.scheduler.Update(g.world)
		return nil
	}

	g.handleInput()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) togglePause() {
	if g.state == statePaused {
		g.state = statePlaying
		return
	}
	g.state = statePaused
}

func (g *Game) handleInput() {
	var dir cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	if body, ok := ecs.Get(g.world, g.player, component.PhysicsBodyComponent.Kind()); ok {
		if dir.X != 0 || dir.Y != 0 {
			dir = dir.Normalize().Mult(playerSpeed)
		}
		body.Body.SetVelocityVector(dir)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if actor, ok := ecs.Get(g.world, g.player, component.ViewActorComponent.Kind()); ok {
			actor.QueueActions(view.ActionOf("hop"), view.ActionOf("idle"))
		}
	}

	if actor, ok := ecs.Get(g.world, g.toad, component.ViewActorComponent.Kind()); ok {
		changed := false
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			actor.Angle = stepAngle(actor.Angle, -1)
			changed = true
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyE) {
			actor.Angle = stepAngle(actor.Angle, 1)
			changed = true
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyT) {
			if actor.Action == assets.ActionToadSheetsCroak {
				actor.Action = assets.ActionToadSheetsIdle
			} else {
				actor.Action = assets.ActionToadSheetsCroak
			}
			changed = true
		}
		if changed {
			g.plugin.MarkViewChanged(g.toad)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		x, y := ebiten.CursorPosition()
		if _, err := g.plugin.SpawnAt(g.world, "wandering_frog.yaml", float64(x), float64(y)); err != nil {
			g.logger.Error("spawn wandering frog", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
}

// ring is the clockwise order Q and E step the toad through.
var ring = []view.Angle{
	view.AngleFront, view.AngleFrontLeft, view.AngleLeft, view.AngleBackLeft,
	view.AngleBack, view.AngleBackRight, view.AngleRight, view.AngleFrontRight,
}

func stepAngle(a view.Angle, step int) view.Angle {
	for i, r := range ring {
		if r == a {
			return ring[(i+step+len(ring))%len(ring)]
		}
	}
	return view.AngleFront
}

func (g *Game) stepPhysics(w *ecs.World) {
	if g.state != statePlaying {
		return
	}
	g.space.Step(1 / float64(ebiten.TPS()))
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil {
			return
		}
		pos := body.Body.Position()
		t.X, t.Y = pos.X, pos.Y
	})
}

// collectEvents runs after the view systems so it sees this frame's events
// before the scheduler clears them.
func (g *Game) collectEvents(w *ecs.World) {
	g.lastFrames += len(system.LastFrames(w))
	for _, change := range system.ActionChanges(w) {
		g.actionSwaps++
		g.logger.Debug("action changed", "entity", change.Entity.String(), "action", uint64(change.Action))
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.plugin.HandleChange(g.world, change); err != nil {
				g.reloadStatus = fmt.Sprintf("reload %s failed: %v", change.Name, err)
				g.logger.Error("hot reload", "file", change.Name, "err", err)
				continue
			}
			g.reloadStatus = "reloaded " + change.Name
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("prefab watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload() {
	if err := g.plugin.ReloadManifests(); err != nil {
		g.reloadStatus = fmt.Sprintf("reload failed: %v", err)
		return
	}
	g.plugin.RefreshAll(g.world)
	g.reloadStatus = "manifests reloaded"
}

func (g *Game) copyReport() {
	if !g.clipboardOK {
		g.reloadStatus = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(g.report()))
	g.reloadStatus = "view report copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.plugin.Draw(g.world, screen)
	g.hud.Draw(screen, g.report(), g.reloadStatus)
	if g.state == statePaused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
