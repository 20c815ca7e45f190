// Package natsconn opens the NATS connection the event sink publishes
// through. Configuration comes in through Options; this package reads no
// environment of its own.
package natsconn

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	defaultMaxReconnects = 5
	defaultReconnectWait = 2 * time.Second
)

// Options configures the connection. URL is required; the caller decides
// whether a missing broker is fatal.
type Options struct {
	URL           string
	Name          string // connection name shown by the server, usually the service name
	MaxReconnects int
	ReconnectWait time.Duration
}

// Connect dials NATS and fails fast: no retry loop on the initial dial, so
// callers can degrade to a no-op sink immediately.
func Connect(opts Options) (*nats.Conn, error) {
	if opts.URL == "" {
		return nil, errors.New("nats url not configured")
	}
	if opts.MaxReconnects <= 0 {
		opts.MaxReconnects = defaultMaxReconnects
	}
	if opts.ReconnectWait <= 0 {
		opts.ReconnectWait = defaultReconnectWait
	}

	nc, err := nats.Connect(opts.URL,
		nats.Name(opts.Name),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.RetryOnFailedConnect(false),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", opts.URL, err)
	}
	return nc, nil
}
