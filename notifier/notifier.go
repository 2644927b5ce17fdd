// Package notifier delivers job-completion notifications. When the service
// is configured with a notification destination, the record of every
// terminated job is delivered there through the configured backend, so an
// operator can hook the downloader into other systems without polling
// /progress.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/tubedl/tubedl/job"
	"github.com/tubedl/tubedl/notifier/backend"
	"github.com/tubedl/tubedl/notifier/backend/httpbackend"
	"github.com/tubedl/tubedl/notifier/backend/kafkabackend"
	"github.com/tubedl/tubedl/notifier/backend/sqsbackend"
)

// DefaultBackend is used when the configuration names no backend.
const DefaultBackend = "http"

var backends = map[string]func() backend.Backend{
	"http":  func() backend.Backend { return new(httpbackend.Backend) },
	"kafka": func() backend.Backend { return new(kafkabackend.Backend) },
	"sqs":   func() backend.Backend { return new(sqsbackend.Backend) },
}

// Notifier is the component responsible for delivering the outcome of
// terminated jobs to the configured destination.
type Notifier struct {
	// Destination of the notifications. Its semantics depend on the
	// backend: a callback URL for "http", a topic for "kafka", a queue
	// URL for "sqs".
	Destination string

	backend backend.Backend
	options map[string]interface{}
}

// New returns a Notifier delivering to destination through the named
// backend. An empty backendID selects DefaultBackend. options are passed
// to the backend on Start.
func New(backendID, destination string, options map[string]interface{}) (*Notifier, error) {
	if destination == "" {
		return nil, errors.New("Notification destination cannot be empty")
	}
	if backendID == "" {
		backendID = DefaultBackend
	}
	newBackend, ok := backends[backendID]
	if !ok {
		return nil, fmt.Errorf("Invalid notification backend: %q", backendID)
	}

	return &Notifier{
		Destination: destination,
		backend:     newBackend(),
		options:     options,
	}, nil
}

// Start initializes the underlying backend. It must be called once, before
// any calls to Notify.
func (n *Notifier) Start(ctx context.Context) error {
	return n.backend.Start(ctx, n.options)
}

// Notify delivers r to the destination. Delivery is best-effort; a failure
// is reported as an error and it is up to the caller to log it.
func (n *Notifier) Notify(r *job.Record) error {
	payload, err := r.Bytes()
	if err != nil {
		return err
	}
	return n.backend.Notify(n.Destination, payload)
}

// Stop shuts down the underlying backend.
func (n *Notifier) Stop() error {
	return n.backend.Stop()
}
