package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/ecs/component"
	"github.com/milk9111/viewangle/view"
)

// ScriptLoader returns the source of a view script by path.
type ScriptLoader func(path string) ([]byte, error)

const viewScriptDispatch = `
update(__view, __state)
`

type viewScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool

	pendingAngle  view.Angle
	angleSet      bool
	pendingAction view.ActionID
	actionSet     bool
}

// ViewScriptSystem runs each entity's tengo view script once per update. A
// script defines update(view, state) and steers the actor through
// view.set_angle and view.set_action.
type ViewScriptSystem struct {
	load     ScriptLoader
	queue    *ecs.Queue[ViewChanged]
	logger   *slog.Logger
	programs map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*viewScriptRuntime
}

func NewViewScriptSystem(load ScriptLoader, queue *ecs.Queue[ViewChanged], logger *slog.Logger) *ViewScriptSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewScriptSystem{
		load:     load,
		queue:    queue,
		logger:   logger,
		programs: map[string]*tengo.Compiled{},
		runtimes: map[ecs.Entity]*viewScriptRuntime{},
	}
}

// Invalidate drops the compiled program for path so the next update reloads
// it. Entities running it start over with fresh state.
func (s *ViewScriptSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	delete(s.programs, path)
	for e, rt := range s.runtimes {
		if rt.path == path {
			delete(s.runtimes, e)
		}
	}
}

func (s *ViewScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.load == nil {
		return
	}

	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.ViewActorComponent.Kind(), component.ViewScriptComponent.Kind(), func(e ecs.Entity, actor *component.ViewActor, sc *component.ViewScript) {
		if strings.TrimSpace(sc.Path) == "" {
			return
		}
		rt, err := s.runtime(e, sc)
		if err != nil {
			s.logger.Error("view: load script", "entity", e.String(), "path", sc.Path, "err", err)
			return
		}
		if rt.failed {
			return
		}

		if err := rt.run(actor, sc); err != nil {
			rt.failed = true
			s.logger.Error("view: run script", "entity", e.String(), "path", sc.Path, "err", err)
			return
		}
		sc.Tick++
		if state, ok := tengo.ToInterface(rt.state).(map[string]any); ok {
			sc.State = state
		}

		changed := false
		if rt.angleSet && rt.pendingAngle != actor.Angle {
			actor.Angle = rt.pendingAngle
			changed = true
		}
		if rt.actionSet && rt.pendingAction != actor.Action {
			actor.Action = rt.pendingAction
			changed = true
		}
		if changed {
			s.queue.Push(ViewChanged{Entity: e})
		}
	})
}

func (s *ViewScriptSystem) runtime(e ecs.Entity, sc *component.ViewScript) (*viewScriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == sc.Path {
		return rt, nil
	}

	rt := &viewScriptRuntime{path: sc.Path}
	s.runtimes[e] = rt

	program, err := s.program(sc.Path)
	if err != nil {
		rt.failed = true
		return nil, err
	}
	rt.compiled = program.Clone()

	state, err := tengo.FromInterface(map[string]any(sc.State))
	if err != nil {
		rt.failed = true
		return nil, fmt.Errorf("initial state: %w", err)
	}
	m, ok := state.(*tengo.Map)
	if !ok {
		m = &tengo.Map{Value: map[string]tengo.Object{}}
	}
	rt.state = m
	return rt, nil
}

func (s *ViewScriptSystem) program(path string) (*tengo.Compiled, error) {
	if compiled, ok := s.programs[path]; ok {
		return compiled, nil
	}

	src, err := s.load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + viewScriptDispatch))
	_ = script.Add("__view", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	s.programs[path] = compiled
	return compiled, nil
}

func (rt *viewScriptRuntime) run(actor *component.ViewActor, sc *component.ViewScript) error {
	rt.angleSet = false
	rt.actionSet = false

	if err := rt.compiled.Set("__view", buildViewScriptEngine(rt, actor, sc)); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildViewScriptEngine(rt *viewScriptRuntime, actor *component.ViewActor, sc *component.ViewScript) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"tick":   &tengo.Int{Value: int64(sc.Tick)},
		"angle":  &tengo.String{Value: actor.Angle.String()},
		"action": &tengo.Int{Value: int64(actor.Action)},
	}

	values["set_angle"] = &tengo.UserFunction{Name: "set_angle", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		angle, err := view.ParseAngle(name)
		if err != nil {
			return nil, err
		}
		rt.pendingAngle = angle
		rt.angleSet = true
		return tengo.TrueValue, nil
	}}

	values["set_action"] = &tengo.UserFunction{Name: "set_action", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		action, err := scriptActionID(args[0])
		if err != nil {
			return nil, err
		}
		rt.pendingAction = action
		rt.actionSet = true
		return tengo.TrueValue, nil
	}}

	values["is_action"] = &tengo.UserFunction{Name: "is_action", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		action, err := scriptActionID(args[0])
		if err != nil || action != actor.Action {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// scriptActionID reads an action argument. view.action is exposed as a tengo
// int, so ids with the high bit set arrive negative and are reinterpreted
// bit for bit; strings parse like annotation values.
func scriptActionID(arg tengo.Object) (view.ActionID, error) {
	if n, ok := arg.(*tengo.Int); ok {
		return view.ActionID(uint64(n.Value)), nil
	}
	raw, ok := tengo.ToString(arg)
	if !ok {
		return 0, fmt.Errorf("view: action must be a name or id, got %s", arg.TypeName())
	}
	return view.ParseActionID(raw)
}
