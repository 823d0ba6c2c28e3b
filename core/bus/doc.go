// Package bus provides a minimal in-process message bus for viewer-internal
// notifications. Delivery is synchronous in the publisher's goroutine, so
// messages arrive in publish order, which is the property the realtime page
// feed depends on.
//
// Basic usage:
//
//	b := bus.New(bus.WithLogger(logger))
//	defer b.Close()
//
//	token := b.Subscribe("pageavailable", func(msg bus.Message) {
//		fmt.Println("got", msg.Name, msg.Payload)
//	})
//	defer b.Unsubscribe("pageavailable", token)
//
//	err := b.Publish(ctx, "pageavailable", payload)
//
// Handlers run sequentially in subscription order and must not block; a slow
// handler stalls the publisher. The bus is safe for concurrent use, but
// ordering is only defined per publishing goroutine.
package bus
