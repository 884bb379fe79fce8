package cdn

import (
	"log/slog"
	"time"
)

type options struct {
	logger       *slog.Logger
	pollInterval time.Duration
	originRegion string
}

func defaultOptions() *options {
	return &options{
		logger:       slog.Default(),
		pollInterval: 45 * time.Second,
		originRegion: "us-east-1",
	}
}

func applyOptions(options *options, opts []Option) {
	for _, opt := range opts {
		opt(options)
	}
}

// Option configures the CDN client.
type Option func(*options)

// WithLogger sets the logger used for distribution lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPollInterval sets how often the deployment waiter checks distribution
// status. Defaults to 45 seconds; distributions take many minutes to deploy.
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pollInterval = interval
	}
}

// WithOriginRegion sets the region used to build the S3 website endpoint the
// distribution fronts. Defaults to us-east-1.
func WithOriginRegion(region string) Option {
	return func(o *options) {
		o.originRegion = region
	}
}
