package domain

import "time"

// Event is a record of a notable aggregate state change. Events are
// queued on the owning aggregate and dispatched by the application
// layer after the state change has been persisted.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// EventLog is an insertion-ordered buffer of events owned by a single
// aggregate. Aggregates embed it as a field; they never dispatch
// events themselves.
type EventLog struct {
	events []Event
}

// Record appends an event to the log.
func (l *EventLog) Record(e Event) {
	l.events = append(l.events, e)
}

// Drain returns the recorded events in insertion order and empties the
// log. Callers dispatch the returned events after persistence succeeds;
// delivery is at-least-once.
func (l *EventLog) Drain() []Event {
	out := l.events
	l.events = nil
	return out
}

// Clear drops all recorded events without returning them.
func (l *EventLog) Clear() {
	l.events = nil
}

// Events returns a copy of the pending events without draining them.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len reports the number of pending events.
func (l *EventLog) Len() int {
	return len(l.events)
}
