package sse

import "errors"

var (
	// ErrEmptyURL is returned when a client is created without an endpoint URL.
	ErrEmptyURL = errors.New("sse: empty endpoint URL")

	// ErrInvalidURL is returned when the endpoint URL cannot be parsed or uses
	// a scheme other than http or https.
	ErrInvalidURL = errors.New("sse: invalid endpoint URL")

	// ErrStreamingUnsupported is returned by Connect when the endpoint does not
	// speak the event-stream protocol (non-200 status or wrong content type).
	// This is a fatal precondition failure, never retried.
	ErrStreamingUnsupported = errors.New("sse: endpoint does not support event streaming")

	// ErrAlreadyConnected is returned by Connect when the client already has a
	// live subscription. A client owns at most one subscription per lifetime.
	ErrAlreadyConnected = errors.New("sse: client already connected")

	// ErrClosed is returned by Connect on a client that has been closed.
	ErrClosed = errors.New("sse: client closed")
)
