package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventQueue is a frame-scoped FIFO queue. The scheduler clears it after all
// systems have run, so consumers must be scheduled after producers.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns the events of the given type without consuming them.
func (q *EventQueue) Peek(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// Queue is a FIFO that survives across frames until drained.
type Queue[T any] struct {
	items []T
}

// Push appends v.
func (q *Queue[T]) Push(v T) {
	if q == nil {
		return
	}
	q.items = append(q.items, v)
}

// Drain returns every queued item in push order and empties the queue.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of queued items.
func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
