package gate_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docview/pagestream/core/gate"
)

func TestGate_QueuesUntilReady(t *testing.T) {
	t.Parallel()

	var got []gate.Notification
	g := gate.New(func(n gate.Notification) {
		got = append(got, n)
	})

	g.Emit("pageavailable", 1)
	g.Emit("pageavailable", 2)
	g.Emit("pageavailable", 3)

	assert.Empty(t, got, "nothing may forward before the ready signal")
	assert.Equal(t, 3, g.Pending())
	assert.False(t, g.Ready())

	g.MarkReady()

	require.Len(t, got, 3)
	assert.Equal(t, []gate.Notification{
		{Name: "pageavailable", Payload: 1},
		{Name: "pageavailable", Payload: 2},
		{Name: "pageavailable", Payload: 3},
	}, got, "queued notifications must flush in FIFO order")
	assert.Equal(t, 0, g.Pending())
	assert.True(t, g.Ready())
}

func TestGate_PassThroughWhenReady(t *testing.T) {
	t.Parallel()

	var got []gate.Notification
	g := gate.New(func(n gate.Notification) {
		got = append(got, n)
	})

	g.MarkReady()
	g.Emit("pageavailable", "a")
	g.Emit("pageavailable", "b")

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Payload)
	assert.Equal(t, "b", got[1].Payload)
	assert.Equal(t, 0, g.Pending())
}

func TestGate_MarkReadyIdempotent(t *testing.T) {
	t.Parallel()

	var got []gate.Notification
	g := gate.New(func(n gate.Notification) {
		got = append(got, n)
	})

	g.Emit("pageavailable", 1)
	g.MarkReady()
	g.MarkReady()
	g.MarkReady()

	assert.Len(t, got, 1, "repeated ready signals must not duplicate delivery")
}

func TestGate_MixedQueueThenLive(t *testing.T) {
	t.Parallel()

	var got []any
	g := gate.New(func(n gate.Notification) {
		got = append(got, n.Payload)
	})

	g.Emit("pageavailable", 1)
	g.Emit("pageavailable", 2)
	g.MarkReady()
	g.Emit("pageavailable", 3)

	assert.Equal(t, []any{1, 2, 3}, got,
		"live notifications may not overtake previously queued ones")
}

func TestGate_ForwardMayInspectGate(t *testing.T) {
	t.Parallel()

	// A forward target often fans out to code that checks the gate, e.g. a
	// bus subscriber polling Pending. Those reads must not deadlock even
	// though the gate is mid-drain or mid-emit.
	var g *gate.Gate
	var states []bool
	g = gate.New(func(n gate.Notification) {
		g.Pending()
		states = append(states, g.Ready())
	})

	g.Emit("pageavailable", 1)
	g.Emit("pageavailable", 2)
	g.MarkReady()
	g.Emit("pageavailable", 3)

	require.Len(t, states, 3)
	assert.False(t, states[0], "the drain is not complete during the flush")
	assert.False(t, states[1])
	assert.True(t, states[2], "pass-through forwards observe a ready gate")
	assert.Zero(t, g.Pending())
}

func TestGate_NilForwardPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		gate.New(nil)
	})
}

func TestGate_ConcurrentEmitNoLossNoEarlyDelivery(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var got []gate.Notification
	g := gate.New(func(n gate.Notification) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, n)
	})

	const emitters = 8
	const perEmitter = 50

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < emitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < perEmitter; j++ {
				g.Emit("pageavailable", j)
			}
		}()
	}

	close(start)
	g.MarkReady()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, emitters*perEmitter,
		"every notification must deliver exactly once across the ready boundary")
}
