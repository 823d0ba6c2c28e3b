package pagestream

import "context"

// HostAPI receives direct viewer events that bypass the readiness gate, such
// as the terminal completion or failure signal.
type HostAPI interface {
	Fire(event string, payload any)
}

// MessageBus receives gated notifications for the viewer's internal bus.
// *bus.Bus satisfies this interface.
type MessageBus interface {
	Publish(ctx context.Context, name string, payload any) error
}

// Viewer is the ambient viewer configuration the host injects at construction.
// There is no global plugin registry: the host hands the plugin everything it
// needs explicitly.
type Viewer struct {
	// NumPages is the total expected page count of the document.
	NumPages int

	// VectorGraphics reports whether the viewer can render vector output.
	// It selects the rendering mode, and with it the stream event names, once
	// at construction.
	VectorGraphics bool

	// API fires direct events on the host, bypassing the readiness gate.
	API HostAPI
}

// Mode is the page-rendering output format. Exactly one mode's stream event
// names are registered per plugin instance.
type Mode string

const (
	// ModeVector streams pages as vector graphics.
	ModeVector Mode = "svg"

	// ModeRaster streams pages as raster images.
	ModeRaster Mode = "png"
)

func modeFor(vectorGraphics bool) Mode {
	if vectorGraphics {
		return ModeVector
	}
	return ModeRaster
}

// Notification and direct-event names exchanged with the host.
const (
	// NotificationPageAvailable is published on the message bus for every
	// page that becomes available, with a PagePayload or UpToPayload.
	NotificationPageAvailable = "pageavailable"

	// EventRealtimeComplete fires once on the host API when the stream
	// reports the conversion finished.
	EventRealtimeComplete = "realtimecomplete"

	// EventRealtimeError fires once on the host API when the stream reports
	// a failure or the transport breaks, with an ErrorPayload.
	EventRealtimeError = "realtimeerror"

	// MessageReady is the host-bus message that signals viewer readiness.
	// The host wires it to Plugin.Ready.
	MessageReady = "ready"
)

// PagePayload reports a single page as available.
type PagePayload struct {
	Page int `json:"page"`
}

// UpToPayload reports every page up to and including UpTo as available.
// Emitted once when the conversion finishes.
type UpToPayload struct {
	UpTo int `json:"upto"`
}

// ErrorPayload carries the failure message of a broken or failed stream.
type ErrorPayload struct {
	Error string `json:"error"`
}
