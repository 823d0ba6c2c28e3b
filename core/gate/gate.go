// Package gate provides a readiness gate: an ordered buffer that holds
// notifications until a one-shot ready signal arrives, then flushes them in
// FIFO order and passes everything after that straight through.
//
// The gate exists for the window between a producer starting to emit and a
// consumer announcing it can receive. Nothing emitted before readiness is
// lost, and nothing emitted after the flip can overtake what was queued.
//
// Example:
//
//	g := gate.New(func(n gate.Notification) {
//		bus.Publish(context.Background(), n.Name, n.Payload)
//	})
//
//	g.Emit("pageavailable", payload) // queued
//	g.MarkReady()                    // queue drains in order
//	g.Emit("pageavailable", payload) // forwarded immediately
package gate

import (
	"sync"
	"sync/atomic"
)

// Notification is a named payload held by the gate.
type Notification struct {
	Name    string
	Payload any
}

// ForwardFunc receives notifications released by the gate. The gate holds its
// lock while forwarding to keep the no-reordering guarantee, so the function
// must not call Emit or MarkReady on the same gate, directly or through
// anything it notifies (a bus subscriber, for example): that re-entry
// deadlocks. Ready and Pending are lock-free and safe to call from inside.
type ForwardFunc func(Notification)

// Gate buffers notifications until marked ready, exactly once per lifetime.
// The ready transition is one-way; the gate is never reset.
type Gate struct {
	mu      sync.Mutex
	ready   atomic.Bool
	queued  atomic.Int64
	pending []Notification
	forward ForwardFunc
}

// New creates a gate in the not-ready state forwarding to fn.
// It panics on a nil forward function since a gate without a destination
// cannot do anything useful.
func New(fn ForwardFunc) *Gate {
	if fn == nil {
		panic("gate: nil forward function")
	}
	return &Gate{forward: fn}
}

// Emit queues the notification while the gate is not ready and forwards it
// immediately once it is. The lock is held across the forward call so a
// concurrent MarkReady cannot reorder this notification ahead of queued ones.
func (g *Gate) Emit(name string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := Notification{Name: name, Payload: payload}
	if !g.ready.Load() {
		g.pending = append(g.pending, n)
		g.queued.Store(int64(len(g.pending)))
		return
	}
	g.forward(n)
}

// MarkReady flips the gate to ready and drains the queue in FIFO order. The
// drain is atomic with respect to new arrivals: emits racing the transition
// either land in the queue before the drain or forward after it completes.
// Repeat calls are no-ops; queued notifications deliver exactly once.
func (g *Gate) MarkReady() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ready.Load() {
		return
	}

	for _, n := range g.pending {
		g.forward(n)
	}
	g.pending = nil
	g.queued.Store(0)
	g.ready.Store(true)
}

// Ready reports whether the gate has been marked ready. It takes no lock, so
// it is safe even from inside the forward function.
func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// Pending returns the number of notifications currently queued. Like Ready it
// takes no lock; during a drain it still reports the pre-drain count.
func (g *Gate) Pending() int {
	return int(g.queued.Load())
}
