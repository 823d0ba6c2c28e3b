// Package pagestream bridges a document viewer to the realtime page feed of a
// conversion service. It subscribes to a server-sent-event endpoint,
// forwards page-availability notifications into the viewer's message bus, and
// signals conversion completion or failure directly on the host API.
//
// Notifications queue until the viewer announces readiness, then flush in
// arrival order; everything after that passes straight through. The plugin
// owns exactly one subscription per lifetime: one terminal signal, no retry,
// no reconnection.
//
// # Package Organization
//
//	github.com/docview/pagestream             - the plugin: routing, lifecycle, host wiring
//	github.com/docview/pagestream/core/sse    - server-sent-event client and wire codec
//	github.com/docview/pagestream/core/gate   - readiness gate buffering notifications FIFO
//	github.com/docview/pagestream/core/bus    - in-process viewer message bus
//	github.com/docview/pagestream/core/config - type-safe environment configuration loading
//	github.com/docview/pagestream/core/logger - slog attribute helpers
//
// # Usage
//
//	var cfg pagestream.Config
//	config.MustLoad(&cfg)
//
//	msgBus := bus.New()
//	viewer := pagestream.Viewer{NumPages: 24, VectorGraphics: true, API: hostAPI}
//
//	plugin, err := pagestream.New(cfg, viewer, msgBus)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer plugin.Destroy()
//
//	if err := plugin.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	msgBus.Subscribe(pagestream.MessageReady, func(bus.Message) {
//		plugin.Ready()
//	})
//
// The conversion is treated as incomplete until the stream itself reports
// finished or failed, even when the viewer already knows the page count; the
// upstream service requires that extra round-trip.
package pagestream
