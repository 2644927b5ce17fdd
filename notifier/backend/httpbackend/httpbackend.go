package httpbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"
)

// DefaultClientTimeoutSec defines a default timeout in seconds for our http client
const DefaultClientTimeoutSec = 30

// Based on http.DefaultTransport
//
// See https://golang.org/pkg/net/http/#RoundTripper
var transport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		DualStack: true,
	}).DialContext,
	MaxIdleConns:          100,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// Backend delivers a job record by executing an HTTP POST request.
type Backend struct {
	client *http.Client
}

// ID returns "http"
func (b *Backend) ID() string {
	return "http"
}

// Start starts the backend based on configuration provided by options.
func (b *Backend) Start(ctx context.Context, options map[string]interface{}) error {
	timeout := time.Duration(DefaultClientTimeoutSec) * time.Second

	if v, ok := options["timeout"]; ok {
		n, ok := v.(json.Number)
		if !ok {
			return fmt.Errorf("timeout must be a number, was: %T", v)
		}
		t, err := n.Int64()
		if err != nil {
			return err
		}
		timeout = time.Duration(t) * time.Second
	}

	b.client = &http.Client{
		Transport: transport,
		Timeout:   timeout, // Larger than Dial + TLS timeouts
	}

	return nil
}

// Notify posts payload to url as JSON.
func (b *Backend) Notify(url string, payload []byte) error {
	res, err := b.client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("Received Status: %s", res.Status)
	}
	return nil
}

// Stop shuts down the backend
func (b *Backend) Stop() error {
	return nil
}
