// Package sse provides a minimal Server-Sent Events client with named-event
// listener registration, plus the wire encoder used by test and example servers.
//
// The client owns exactly one live subscription per instance. It performs no
// reconnection, retry, or backoff: a transport failure is surfaced once as a
// synthesized "error" event and the client closes itself. Callers that need a
// new subscription create a new client.
//
// Basic usage:
//
//	client, err := sse.NewClient("https://converter.example.com/stream/doc-42")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client.On("pageavailable.svg", func(ev sse.Event) {
//		fmt.Println("payload:", ev.Data)
//	})
//	client.On("error", func(ev sse.Event) {
//		fmt.Println("stream failed:", ev.Data)
//	})
//
//	if err := client.Connect(ctx); err != nil {
//		log.Fatal(err) // endpoint does not speak SSE: fatal, not retryable
//	}
//	defer client.Close()
//
// # Event dispatch
//
// All events dispatch sequentially from a single reader goroutine in the order
// the transport delivers them. A handler runs to completion before the next
// event is parsed, so handlers never race each other.
//
// # Wire format
//
// The parser implements the W3C EventSource field grammar: "event:", "data:"
// (multiple data lines join with a newline), "id:", comment lines starting
// with ":". The "retry:" field is parsed and ignored since the client never
// reconnects. Events without an explicit name dispatch as "message".
package sse
