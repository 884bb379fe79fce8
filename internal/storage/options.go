package storage

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
)

type options struct {
	region string
	fs     billy.Filesystem
	logger *slog.Logger
}

func defaultOptions() *options {
	return &options{
		logger: slog.Default(),
	}
}

func applyOptions(options *options, opts []Option) {
	for _, opt := range opts {
		opt(options)
	}
}

// Option configures the storage client.
type Option func(*options)

// WithRegion sets the AWS region for S3 operations.
func WithRegion(region string) Option {
	return func(o *options) {
		o.region = region
	}
}

// WithFilesystem sets a custom filesystem implementation for reading upload
// sources. This allows in-memory filesystems in tests. Defaults to the OS
// filesystem rooted at /.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger used for upload progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
