package pagestream_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docview/pagestream"
	"github.com/docview/pagestream/core/bus"
	"github.com/docview/pagestream/core/sse"
)

// Exercises the full host wiring: the plugin publishes into a real viewer bus
// and the readiness signal itself arrives as a bus message.
func TestPlugin_ViewerBusWiring(t *testing.T) {
	t.Parallel()

	srv, events := newStreamServer(t)

	viewerBus := bus.New()
	defer viewerBus.Close()

	host := &recorder{}
	plugin, err := pagestream.New(
		pagestream.Config{URL: srv.URL},
		pagestream.Viewer{NumPages: 4, VectorGraphics: true, API: host},
		viewerBus,
	)
	require.NoError(t, err)
	defer plugin.Destroy()

	var mu sync.Mutex
	var received []any
	viewerBus.Subscribe(pagestream.NotificationPageAvailable, func(msg bus.Message) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, msg.Payload)
	})
	viewerBus.Subscribe(pagestream.MessageReady, func(bus.Message) {
		plugin.Ready()
	})

	require.NoError(t, plugin.Start(context.Background()))

	// Pages stream in before the viewer is ready and must queue.
	events <- sse.Event{Name: "pageavailable.svg", Data: `{"pages":[1,2]}`}
	eventually(t, func() bool { return plugin.Pending() == 2 }, "pages should queue before readiness")

	mu.Lock()
	assert.Empty(t, received)
	mu.Unlock()

	// The host announces readiness through its own bus.
	require.NoError(t, viewerBus.Publish(context.Background(), pagestream.MessageReady, nil))

	events <- sse.Event{Name: "pageavailable.svg", Data: `{"pages":[3]}`}
	events <- sse.Event{Name: "finished.svg"}

	eventually(t, func() bool { return plugin.State() == pagestream.StateTerminated }, "stream should finish")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []any{
		pagestream.PagePayload{Page: 1},
		pagestream.PagePayload{Page: 2},
		pagestream.PagePayload{Page: 3},
		pagestream.UpToPayload{UpTo: 4},
	}, received)

	fires := host.fires()
	require.Len(t, fires, 1)
	assert.Equal(t, pagestream.EventRealtimeComplete, fires[0].name)
}
