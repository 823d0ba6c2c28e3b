package pagestream

import (
	"log/slog"
	"net/http"
)

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger configures structured logging for the plugin and its stream
// client. Defaults to a discard handler.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithHTTPClient sets the HTTP client used to open the stream subscription,
// overriding the default built from Config.ConnectTimeout. The client must
// not enforce an overall request timeout, or it would sever the stream.
func WithHTTPClient(httpc *http.Client) Option {
	return func(p *Plugin) {
		if httpc != nil {
			p.httpc = httpc
		}
	}
}

// WithRequestHeader adds a header to the subscription request, e.g. an
// authorization token for the conversion service.
func WithRequestHeader(key, value string) Option {
	return func(p *Plugin) {
		p.header[key] = value
	}
}
