package sse

import (
	"bufio"
	"io"
	"strings"
)

// readerBufferSize caps a single stream line at 1MB, which comfortably covers
// page-availability payloads while bounding memory on a misbehaving server.
const readerBufferSize = 1 << 20

// reader decodes server-sent events from a byte stream using the W3C
// EventSource field grammar.
type reader struct {
	scanner *bufio.Scanner
	lastID  string
}

func newReader(r io.Reader) *reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), readerBufferSize)
	return &reader{scanner: sc}
}

// next returns the next complete event from the stream. It returns io.EOF when
// the stream ends cleanly and the underlying read error otherwise. Incomplete
// trailing events (no terminating blank line) are discarded, matching
// EventSource behavior.
func (r *reader) next() (Event, error) {
	name := ""
	var data []string
	seen := false

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if !seen {
				continue
			}
			if name == "" {
				name = DefaultEventName
			}
			return Event{Name: name, ID: r.lastID, Data: strings.Join(data, "\n")}, nil
		}

		field, value := splitField(line)
		switch field {
		case "":
			// Comment line, ignored.
		case "event":
			name = value
			seen = true
		case "data":
			data = append(data, value)
			seen = true
		case "id":
			// EventSource ignores ids containing NUL bytes.
			if !strings.ContainsRune(value, '\x00') {
				r.lastID = value
			}
		case "retry":
			// Parsed and dropped: this client never reconnects.
		}
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// splitField splits a stream line into field name and value, stripping the
// single optional space after the colon. A line starting with ":" is a comment
// and yields an empty field name.
func splitField(line string) (field, value string) {
	colon := strings.IndexByte(line, ':')
	if colon == -1 {
		return line, ""
	}
	field = line[:colon]
	value = line[colon+1:]
	value = strings.TrimPrefix(value, " ")
	return field, value
}
