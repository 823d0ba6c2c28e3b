package sse

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ContentType is the MIME type of an event stream.
const ContentType = "text/event-stream"

// WriteEvent serializes a single event in SSE wire framing. Multi-line data is
// split across consecutive "data:" fields so the client-side join round-trips.
func WriteEvent(w io.Writer, ev Event) error {
	if ev.Name != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", ev.Name); err != nil {
			return err
		}
	}
	if ev.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}

	for _, line := range strings.Split(ev.Data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// WriteComment writes a comment line, useful as a keep-alive or connection
// acknowledgement that clients ignore.
func WriteComment(w io.Writer, comment string) error {
	_, err := fmt.Fprintf(w, ": %s\n\n", comment)
	return err
}

// SetStreamHeaders prepares an HTTP response for event streaming.
func SetStreamHeaders(h http.Header) {
	h.Set("Content-Type", ContentType)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}
