package cert

import (
	"log/slog"
	"time"
)

type options struct {
	logger         *slog.Logger
	pollInterval   time.Duration
	recordAttempts uint64
	recordInterval time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:         slog.Default(),
		pollInterval:   20 * time.Second,
		recordAttempts: 5,
		recordInterval: 2 * time.Second,
	}
}

func applyOptions(options *options, opts []Option) {
	for _, opt := range opts {
		opt(options)
	}
}

// Option configures the certificate client.
type Option func(*options)

// WithLogger sets the logger used for certificate lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPollInterval sets how often the issuance waiter checks certificate
// status. Defaults to 20 seconds.
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pollInterval = interval
	}
}

// WithRecordRetry tunes the retry schedule used while waiting for ACM to
// attach validation records to a freshly requested certificate. Defaults to
// 5 attempts starting at a 2 second interval.
func WithRecordRetry(attempts uint64, initialInterval time.Duration) Option {
	return func(o *options) {
		o.recordAttempts = attempts
		o.recordInterval = initialInterval
	}
}
