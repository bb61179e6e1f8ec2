package ecs

// Event is something a system reports about an entity during a tick. Data
// holds an optional payload whose shape depends on Type.
type Event struct {
	Type   string
	Entity Entity
	Data   any
}

// EventQueue collects the events of one tick. Engine.Update clears it before
// running phases, so readers see the previous tick's events until then.
type EventQueue struct {
	pending []Event
}

func (q *EventQueue) Push(evt Event) {
	if q != nil {
		q.pending = append(q.pending, evt)
	}
}

// Peek returns the pending events in push order. The slice is only valid
// until the next Update.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.pending
}

// Drain hands over the pending events and leaves the queue empty.
func (q *EventQueue) Drain() []Event {
	if q.Len() == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.pending)
}

func (q *EventQueue) flush() {
	if q != nil {
		q.pending = nil
	}
}
