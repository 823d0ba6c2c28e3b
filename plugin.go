package pagestream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/docview/pagestream/core/gate"
	"github.com/docview/pagestream/core/logger"
	"github.com/docview/pagestream/core/sse"
)

// State is the plugin lifecycle state. Transitions are one-way:
// StateInit → StateActive → StateTerminated.
type State int32

const (
	// StateInit means no subscription has been opened yet.
	StateInit State = iota

	// StateActive means the subscription is open and dispatching.
	StateActive

	// StateTerminated means the subscription has closed, via a terminal
	// stream event, a transport failure, or host-initiated teardown.
	StateTerminated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Plugin bridges a conversion progress stream to the viewer's message bus.
// It forwards page-availability notifications through a readiness gate and
// fires exactly one terminal signal (realtimecomplete or realtimeerror) on
// the host API per lifetime.
//
// Example:
//
//	plugin, err := pagestream.New(cfg, viewer, msgBus,
//		pagestream.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer plugin.Destroy()
//
//	if err := plugin.Start(ctx); err != nil {
//		return err
//	}
//
//	// Once the viewer can accept notifications:
//	plugin.Ready()
type Plugin struct {
	cfg    Config
	viewer Viewer
	mode   Mode
	bus    MessageBus
	logger *slog.Logger
	httpc  *http.Client
	header map[string]string

	gate *gate.Gate

	mu       sync.Mutex
	state    State
	client   *sse.Client
	terminal bool
	started  time.Time
}

// New constructs the plugin in StateInit. The subscription is not opened
// until Start. When cfg.URL is empty the document has no realtime feed and
// the plugin stays permanently inert; Start and Destroy remain safe no-ops.
func New(cfg Config, viewer Viewer, msgBus MessageBus, opts ...Option) (*Plugin, error) {
	if msgBus == nil {
		return nil, ErrNilBus
	}
	if viewer.API == nil {
		return nil, ErrNilHostAPI
	}

	p := &Plugin{
		cfg:    cfg,
		viewer: viewer,
		mode:   modeFor(viewer.VectorGraphics),
		bus:    msgBus,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		header: make(map[string]string),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.httpc == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = cfg.ConnectTimeout
		p.httpc = &http.Client{Transport: transport}
	}

	p.gate = gate.New(p.forward)

	return p, nil
}

// Start opens the stream subscription and begins dispatching. When the
// endpoint does not support event streaming the returned error wraps
// sse.ErrStreamingUnsupported; that failure is fatal and never retried.
//
// With no URL configured Start does nothing and returns nil.
func (p *Plugin) Start(ctx context.Context) error {
	if p.cfg.URL == "" {
		p.logger.Debug("no stream endpoint configured, realtime feed disabled",
			logger.Component("pagestream"))
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateActive:
		return ErrAlreadyStarted
	case StateTerminated:
		return ErrTerminated
	}

	p.started = time.Now()

	clientOpts := []sse.ClientOption{
		sse.WithHTTPClient(p.httpc),
		sse.WithLogger(p.logger),
	}
	for k, v := range p.header {
		clientOpts = append(clientOpts, sse.WithHeader(k, v))
	}

	client, err := sse.NewClient(p.cfg.URL, clientOpts...)
	if err != nil {
		return err
	}

	p.route(client)

	if err := client.Connect(ctx); err != nil {
		return err
	}

	p.client = client
	p.state = StateActive

	p.logger.Info("realtime page feed active",
		logger.Component("pagestream"),
		logger.URL(p.cfg.URL),
		logger.Mode(string(p.mode)),
		logger.Count("num_pages", p.viewer.NumPages),
	)

	return nil
}

// Ready delivers the viewer's one-shot readiness signal: queued notifications
// flush to the bus in arrival order and later ones pass straight through.
// Safe to call repeatedly and before Start.
func (p *Plugin) Ready() {
	p.gate.MarkReady()
}

// Pending returns the number of notifications queued behind the readiness
// gate. Always zero once Ready has been called.
func (p *Plugin) Pending() int {
	return p.gate.Pending()
}

// State returns the current lifecycle state.
func (p *Plugin) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Destroy closes the subscription and ends the plugin's active life without
// firing any terminal signal. It is idempotent and safe when no subscription
// was ever opened.
func (p *Plugin) Destroy() {
	p.mu.Lock()
	if p.state == StateTerminated {
		p.mu.Unlock()
		return
	}
	p.state = StateTerminated
	client := p.client
	p.mu.Unlock()

	if client != nil {
		client.Close()
	}

	p.logger.Debug("plugin destroyed", logger.Component("pagestream"))
}

// forward publishes a gated notification to the viewer bus. Publish failures
// are logged and dropped: the bus is fire-and-forget from the stream's side.
func (p *Plugin) forward(n gate.Notification) {
	if err := p.bus.Publish(context.Background(), n.Name, n.Payload); err != nil {
		p.logger.Warn("dropping notification, bus publish failed",
			logger.Component("pagestream"),
			logger.Event(n.Name),
			logger.Error(err),
		)
	}
}

// claimTerminal reserves the plugin's single terminal signal. Only the first
// terminal stream event of a lifetime wins, and a destroyed plugin fires
// nothing, so the host sees realtimecomplete or realtimeerror exactly once
// and never both.
func (p *Plugin) claimTerminal() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.terminal || p.state == StateTerminated {
		return false
	}
	p.terminal = true
	return true
}

// shutdown closes the subscription and marks the plugin terminated.
func (p *Plugin) shutdown() {
	p.mu.Lock()
	p.state = StateTerminated
	client := p.client
	p.mu.Unlock()

	if client != nil {
		client.Close()
	}
}
