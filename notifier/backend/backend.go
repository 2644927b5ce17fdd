// Package backend defines the notification delivery channel abstraction.
package backend

import "context"

// Backend delivers the record of a terminated job over some notification
// channel (eg. HTTP, Kafka).
type Backend interface {
	// ID returns a constant string used as an identifier for the
	// concrete backend implementation.
	ID() string

	// Start initializes the backend. Start must be called once, before
	// any calls to Notify.
	Start(context.Context, map[string]interface{}) error

	// Notify delivers payload to destination. The semantics of
	// destination depend on the implementation: a URL for HTTP, a topic
	// for Kafka, a queue URL for SQS. Depending on the underlying
	// implementation Notify might be an asynchronous operation, so a nil
	// error does NOT necessarily mean the notification was delivered.
	Notify(destination string, payload []byte) error

	// Stop flushes outstanding notifications and performs finalization
	// actions. After calling Stop the backend is no longer usable.
	Stop() error
}
