// SPDX-License-Identifier: MIT

package client

import (
	"log/slog"
	"time"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDialTimeout bounds the connect phase only.
	DefaultDialTimeout = 5 * time.Second

	// DefaultIOTimeout is zero: a command blocks until its response arrives
	// or the transport fails. Set WithIOTimeout in production.
	DefaultIOTimeout time.Duration = 0

	// exitTimeout bounds the best-effort EXIT notification in Close so that
	// Close never blocks on a stalled peer.
	exitTimeout = time.Second
)

const (
	panicDialTimeoutInvalid = "client: WithDialTimeout: timeout must be non-negative"
	panicIOTimeoutInvalid   = "client: WithIOTimeout: timeout must be non-negative"
)

// Option configures a Client. Constructors panic only on nonsensical values
// (programmer error).
type Option func(*options)

// options holds the effective configuration after applying Option setters.
type options struct {
	logger      *slog.Logger
	dialTimeout time.Duration
	ioTimeout   time.Duration
}

func defaultOptions() options {
	return options{
		logger:      slog.New(slog.DiscardHandler),
		dialTimeout: DefaultDialTimeout,
		ioTimeout:   DefaultIOTimeout,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the structured logger. A nil logger keeps the default,
// which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDialTimeout bounds the connect phase of Dial. Zero means no bound
// beyond the context and the operating system.
func WithDialTimeout(d time.Duration) Option {
	if d < 0 {
		panic(panicDialTimeoutInvalid)
	}

	return func(o *options) { o.dialTimeout = d }
}

// WithIOTimeout bounds each command round trip (request write plus response
// read). Zero disables the bound. A context deadline, when earlier, wins.
func WithIOTimeout(d time.Duration) Option {
	if d < 0 {
		panic(panicIOTimeoutInvalid)
	}

	return func(o *options) { o.ioTimeout = d }
}
