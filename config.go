package pagestream

import "time"

// Config holds the plugin's own settings. An empty URL means no realtime feed
// is available for the document; the plugin then stays inert and every entry
// point is a safe no-op.
type Config struct {
	// URL is the server-sent-event endpoint streaming conversion progress.
	URL string `env:"PAGESTREAM_URL"`

	// ConnectTimeout bounds how long the plugin waits for the endpoint to
	// answer the subscription request with response headers. It does not
	// limit the lifetime of the stream itself.
	ConnectTimeout time.Duration `env:"PAGESTREAM_CONNECT_TIMEOUT" envDefault:"30s"`
}
