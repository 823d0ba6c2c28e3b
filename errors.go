package pagestream

import "errors"

var (
	// ErrNilBus is returned by New when no message bus is provided.
	ErrNilBus = errors.New("pagestream: nil message bus")

	// ErrNilHostAPI is returned by New when the viewer configuration carries
	// no host API for direct notifications.
	ErrNilHostAPI = errors.New("pagestream: nil host API")

	// ErrAlreadyStarted is returned by Start on a plugin that is already
	// active. A plugin owns one subscription per lifetime.
	ErrAlreadyStarted = errors.New("pagestream: plugin already started")

	// ErrTerminated is returned by Start on a plugin whose subscription has
	// ended. Terminated plugins never reactivate.
	ErrTerminated = errors.New("pagestream: plugin terminated")
)
