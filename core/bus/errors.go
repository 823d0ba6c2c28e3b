package bus

import "errors"

var (
	// ErrBusClosed is returned by Publish after the bus has been closed.
	ErrBusClosed = errors.New("bus: closed")
)
