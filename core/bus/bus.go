package bus

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is a single bus notification with delivery metadata.
type Message struct {
	ID        string    // Unique identifier for the message
	Name      string    // Notification name (e.g., "pageavailable")
	Payload   any       // Notification data
	CreatedAt time.Time // When the message was published
}

// HandlerFunc processes a delivered message.
type HandlerFunc func(Message)

// Bus routes named messages to subscribed handlers, synchronously and in
// publish order. It is safe for concurrent use.
type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]subscriber
	nextToken int64
	closed    bool
	logger    *slog.Logger
}

type subscriber struct {
	token int64
	fn    HandlerFunc
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger configures structured logging for the bus.
// Defaults to a discard handler.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates an empty message bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		subs:   make(map[string][]subscriber),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Subscribe registers fn for messages published under name and returns a
// token for Unsubscribe. Handlers sharing a name run in subscription order.
func (b *Bus) Subscribe(name string, fn HandlerFunc) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextToken++
	b.subs[name] = append(b.subs[name], subscriber{token: b.nextToken, fn: fn})
	return b.nextToken
}

// Unsubscribe removes the handler identified by token from name.
// Unknown tokens are ignored.
func (b *Bus) Unsubscribe(name string, token int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ss := b.subs[name]
	for i, s := range ss {
		if s.token == token {
			b.subs[name] = append(ss[:i:i], ss[i+1:]...)
			return
		}
	}
}

// Publish delivers the payload to every handler subscribed to name, in the
// caller's goroutine. Messages with no subscribers are dropped silently.
func (b *Bus) Publish(ctx context.Context, name string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	ss := make([]subscriber, len(b.subs[name]))
	copy(ss, b.subs[name])
	b.mu.RUnlock()

	msg := Message{
		ID:        uuid.New().String(),
		Name:      name,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	b.logger.DebugContext(ctx, "bus message published",
		slog.String("message_id", msg.ID),
		slog.String("name", name),
		slog.Int("subscribers", len(ss)),
	)

	for _, s := range ss {
		s.fn(msg)
	}
	return nil
}

// Close shuts the bus down. Subsequent publishes return ErrBusClosed;
// repeated closes are safe.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.subs = make(map[string][]subscriber)
	b.logger.Info("bus closed")
	return nil
}
