package component

import (
	"time"

	"github.com/milk9111/viewangle/view"
)

// Notification is an event an actor can subscribe to.
type Notification uint8

const (
	// NotifyLastFrame emits a LastFrame event when the animation is about to
	// wrap from its last frame back to the first.
	NotifyLastFrame Notification = iota + 1
)

// ViewActor is the per-entity view state. Game code changes Angle, Action or
// Actor and then marks the view changed; the view systems own Flipped.
type ViewActor struct {
	Angle   view.Angle
	Action  view.ActionID
	Actor   view.ActorID
	Flipped bool

	AnimationTimer *AnimationTimer
	// NextActions is played in order, one action each time the current
	// animation wraps.
	NextActions []view.ActionID
	Notify      map[Notification]struct{}
}

// Subscribe adds n to the actor's notifications.
func (a *ViewActor) Subscribe(n Notification) {
	if a.Notify == nil {
		a.Notify = make(map[Notification]struct{})
	}
	a.Notify[n] = struct{}{}
}

// Subscribed reports whether the actor listens for n.
func (a *ViewActor) Subscribed(n Notification) bool {
	_, ok := a.Notify[n]
	return ok
}

// QueueActions appends actions to play after the current animation.
func (a *ViewActor) QueueActions(actions ...view.ActionID) {
	a.NextActions = append(a.NextActions, actions...)
}

// PopAction removes and returns the next queued action.
func (a *ViewActor) PopAction() (view.ActionID, bool) {
	if len(a.NextActions) == 0 {
		return 0, false
	}
	next := a.NextActions[0]
	a.NextActions = a.NextActions[1:]
	return next, true
}

var ViewActorComponent = NewComponent[ViewActor]()

// AnimationTimer counts down Duration and reports each time it elapses.
type AnimationTimer struct {
	Duration  time.Duration
	Repeating bool

	elapsed      time.Duration
	justFinished bool
	finished     bool
}

// NewRepeatingTimer returns a timer that restarts after each elapse.
func NewRepeatingTimer(d time.Duration) *AnimationTimer {
	return &AnimationTimer{Duration: d, Repeating: true}
}

// Tick advances the timer by dt.
func (t *AnimationTimer) Tick(dt time.Duration) {
	t.justFinished = false
	if t.Duration <= 0 || (t.finished && !t.Repeating) {
		return
	}
	t.elapsed += dt
	if t.elapsed < t.Duration {
		return
	}
	t.justFinished = true
	if t.Repeating {
		t.elapsed %= t.Duration
		return
	}
	t.elapsed = t.Duration
	t.finished = true
}

// JustFinished reports whether the last Tick crossed the duration.
func (t *AnimationTimer) JustFinished() bool {
	return t.justFinished
}

// Reset restarts the countdown.
func (t *AnimationTimer) Reset() {
	t.elapsed = 0
	t.justFinished = false
	t.finished = false
}
