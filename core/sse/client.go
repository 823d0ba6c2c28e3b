package sse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"sync"
)

// Client subscribes to a single server-sent-event endpoint and dispatches
// incoming events to registered handlers. A client owns at most one live
// subscription; once closed it cannot be reused.
type Client struct {
	url    string
	httpc  *http.Client
	header http.Header
	logger *slog.Logger

	mu        sync.Mutex
	handlers  map[string][]listener
	nextToken int64
	connected bool
	closed    bool
	cancel    context.CancelFunc
	body      io.ReadCloser
}

type listener struct {
	token int64
	fn    HandlerFunc
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used to open the subscription.
// Defaults to http.DefaultClient. The client must not enforce an overall
// request timeout, or it would sever long-lived streams.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithLogger configures structured logging for the client.
// Defaults to a discard handler.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a request header to the subscription request, e.g. an
// authorization token.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// NewClient creates a client for the given stream endpoint.
//
// Example:
//
//	client, err := sse.NewClient(streamURL,
//		sse.WithLogger(logger),
//		sse.WithHeader("Authorization", "Bearer "+token),
//	)
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEmptyURL
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	c := &Client{
		url:      endpoint,
		httpc:    http.DefaultClient,
		header:   make(http.Header),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		handlers: make(map[string][]listener),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// On registers fn for events with the given name and returns a token that
// unregisters it via Off. Multiple handlers may share a name; they run in
// registration order.
func (c *Client) On(name string, fn HandlerFunc) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextToken++
	c.handlers[name] = append(c.handlers[name], listener{token: c.nextToken, fn: fn})
	return c.nextToken
}

// Off unregisters the handler identified by token from the given event name.
// Unknown tokens are ignored.
func (c *Client) Off(name string, token int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ls := c.handlers[name]
	for i, l := range ls {
		if l.token == token {
			c.handlers[name] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Connect opens the subscription and starts dispatching events. It returns
// ErrStreamingUnsupported when the endpoint does not answer with an event
// stream; that failure is a fatal precondition, not something to retry.
//
// The context bounds the whole subscription: cancelling it stops dispatch the
// same way Close does.
func (c *Client) Connect(ctx context.Context) error {
	// Claim the single subscription slot up front so concurrent Connect
	// calls cannot both proceed; release it on any failure below.
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.connected = true
	c.mu.Unlock()

	release := func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}

	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		cancel()
		release()
		return fmt.Errorf("sse: build request: %w", err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", ContentType)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpc.Do(req)
	if err != nil {
		cancel()
		release()
		return fmt.Errorf("sse: connect %s: %w", c.url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		release()
		return fmt.Errorf("%w: unexpected status %d", ErrStreamingUnsupported, resp.StatusCode)
	}
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err != nil || mediaType != ContentType {
		resp.Body.Close()
		cancel()
		release()
		return fmt.Errorf("%w: content type %q", ErrStreamingUnsupported, resp.Header.Get("Content-Type"))
	}

	c.mu.Lock()
	if c.closed {
		// Closed while connecting: release the subscription quietly.
		c.mu.Unlock()
		resp.Body.Close()
		cancel()
		return ErrClosed
	}
	c.cancel = cancel
	c.body = resp.Body
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "sse subscription opened", slog.String("url", c.url))

	go c.readLoop(ctx, resp.Body)

	return nil
}

// Close releases the subscription. It is idempotent: closing an already
// closed or never connected client is a safe no-op. No events dispatch after
// Close returns, even if the transport has more buffered.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	body := c.body
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if body != nil {
		body.Close()
	}

	c.logger.Debug("sse subscription closed", slog.String("url", c.url))
	return nil
}

// readLoop parses the stream and dispatches events until the stream ends, the
// transport fails, or the client closes. A transport failure is surfaced
// exactly once as a synthesized "error" event, after which the client closes
// itself.
func (c *Client) readLoop(ctx context.Context, body io.Reader) {
	r := newReader(body)

	for {
		ev, err := r.next()
		if err != nil {
			if c.isClosed() || ctx.Err() != nil {
				return
			}

			// The server ended the stream without a terminal event. Surface
			// it as a transport error; an empty message lets the consumer
			// apply its own fallback wording.
			msg := ""
			if !errors.Is(err, io.EOF) {
				msg = err.Error()
			}
			c.logger.Warn("sse transport failed",
				slog.String("url", c.url),
				slog.Any("error", err),
			)
			c.dispatch(Event{Name: ErrorEventName, Data: msg})
			c.Close()
			return
		}

		c.dispatch(ev)
	}
}

// dispatch invokes handlers registered for the event's name, sequentially and
// in registration order. Nothing dispatches once the client is closed.
func (c *Client) dispatch(ev Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ls := make([]listener, len(c.handlers[ev.Name]))
	copy(ls, c.handlers[ev.Name])
	c.mu.Unlock()

	for _, l := range ls {
		l.fn(ev)
	}
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
