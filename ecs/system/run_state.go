package system

import "github.com/milk9111/viewangle/ecs"

// stateGate runs the wrapped system only while the host is in one of the
// allowed states.
type stateGate struct {
	system  ecs.System
	current func() string
	allowed map[string]struct{}
}

// RunInStates wraps sys so it only updates while current() returns one of
// states. With no states, or no current func, sys always runs and is
// returned unwrapped.
func RunInStates(sys ecs.System, current func() string, states ...string) ecs.System {
	if sys == nil || current == nil || len(states) == 0 {
		return sys
	}
	allowed := make(map[string]struct{}, len(states))
	for _, st := range states {
		allowed[st] = struct{}{}
	}
	return &stateGate{system: sys, current: current, allowed: allowed}
}

func (g *stateGate) Update(w *ecs.World) {
	if _, ok := g.allowed[g.current()]; !ok {
		return
	}
	g.system.Update(w)
}
