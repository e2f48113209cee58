package highlight

import "fmt"

// EventKind distinguishes the events of a highlight stream.
type EventKind uint8

const (
	// EventSource covers the source bytes [Start, End).
	EventSource EventKind = iota
	// EventStart opens the scope Name.
	EventStart
	// EventEnd closes the innermost open scope.
	EventEnd
)

// Event is one element of a highlight stream. Offsets are byte offsets
// into the highlighted source.
type Event struct {
	Kind  EventKind
	Start int
	End   int
	Name  string
}

// String returns a compact representation for debugging.
func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		return fmt.Sprintf("start(%s)", e.Name)
	case EventEnd:
		return "end"
	default:
		return fmt.Sprintf("source[%d,%d)", e.Start, e.End)
	}
}

// Source returns a source event for [start, end).
func Source(start, end int) Event {
	return Event{Kind: EventSource, Start: start, End: end}
}

// Start returns a scope start event.
func Start(name string) Event {
	return Event{Kind: EventStart, Name: name}
}

// End returns a scope end event.
func End() Event {
	return Event{Kind: EventEnd}
}
