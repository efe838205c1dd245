package ecs

// EventKind identifies gameplay cue types.
type EventKind string

const (
	EventJumped        EventKind = "jumped"
	EventLanded        EventKind = "landed"
	EventFootstep      EventKind = "footstep"
	EventDialogStarted EventKind = "dialog_started"
	EventDialogEnded   EventKind = "dialog_ended"
)

// Event is a frame-scoped cue emitted by one system and read by later ones.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a FIFO that lives for one frame.
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

// Read returns the events pushed so far this frame without consuming them.
func (q *EventQueue) Read(kind EventKind) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Kind == kind {
			out = append(out, evt)
		}
	}
	return out
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
