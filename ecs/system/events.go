package system

import (
	"github.com/milk9111/viewangle/ecs"
	"github.com/milk9111/viewangle/view"
)

// Event types pushed onto the world's frame event queue.
const (
	EventLastFrame     = "view.last_frame"
	EventActionChanged = "view.action_changed"
)

// ViewChanged asks the view-changed system to re-resolve the entity's sprite.
type ViewChanged struct {
	Entity ecs.Entity
}

// LastFrame is emitted when a subscribed actor shows its final atlas frame
// and is about to wrap to the first.
type LastFrame struct {
	Entity ecs.Entity
}

// ActionChanged is emitted when a queued action replaces the current one.
type ActionChanged struct {
	Entity ecs.Entity
	Action view.ActionID
}

// LastFrames returns the LastFrame events pushed so far this frame.
func LastFrames(w *ecs.World) []LastFrame {
	if w == nil {
		return nil
	}
	var out []LastFrame
	for _, evt := range w.Events().Peek(EventLastFrame) {
		if lf, ok := evt.Data.(LastFrame); ok {
			out = append(out, lf)
		}
	}
	return out
}

// ActionChanges returns the ActionChanged events pushed so far this frame.
func ActionChanges(w *ecs.World) []ActionChanged {
	if w == nil {
		return nil
	}
	var out []ActionChanged
	for _, evt := range w.Events().Peek(EventActionChanged) {
		if ac, ok := evt.Data.(ActionChanged); ok {
			out = append(out, ac)
		}
	}
	return out
}
