package sse

// DefaultEventName is the event name used for events that arrive without an
// explicit "event:" field, matching EventSource semantics.
const DefaultEventName = "message"

// ErrorEventName is the name of the event synthesized by the client when the
// transport fails. Its Data holds the error text.
const ErrorEventName = "error"

// Event is a single server-sent event.
type Event struct {
	// Name is the event type from the "event:" field, or DefaultEventName
	// when the field was absent.
	Name string

	// ID is the last value of the "id:" field seen on the stream, empty if
	// none was ever sent.
	ID string

	// Data is the payload: all "data:" field values joined with a newline.
	Data string
}

// HandlerFunc processes a single event. Handlers run sequentially in the
// client's reader goroutine and must not block indefinitely.
type HandlerFunc func(Event)
