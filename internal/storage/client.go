package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Client provides a high-level interface for uploading site files to S3.
// All methods are safe for concurrent use; the underlying AWS SDK v2 client
// is thread-safe and the remaining fields are immutable after construction.
type Client struct {
	api    S3API
	fs     billy.Filesystem
	logger *slog.Logger
}

// New creates a new S3 client using the default AWS credential chain.
//
// Example:
//
//	client, err := storage.New(ctx,
//	    storage.WithRegion("us-east-1"),
//	    storage.WithLogger(logger),
//	)
func New(ctx context.Context, opts ...Option) (*Client, error) {
	options := defaultOptions()
	applyOptions(options, opts)

	var cfgOpts []func(*config.LoadOptions) error
	if options.region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(options.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}

	return newClient(s3.NewFromConfig(cfg), options), nil
}

// NewFromConfig creates a new S3 client from an existing AWS configuration.
func NewFromConfig(cfg aws.Config, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)
	if options.region != "" {
		cfg.Region = options.region
	}
	return newClient(s3.NewFromConfig(cfg), options)
}

// NewWithAPI creates a client with a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api S3API, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)
	return newClient(api, options)
}

func newClient(api S3API, options *options) *Client {
	fs := options.fs
	if fs == nil {
		fs = osfs.New("/")
	}
	return &Client{
		api:    api,
		fs:     fs,
		logger: options.logger,
	}
}

// ListKeys returns every object key in bucket under prefix.
func (c *Client) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	var token *string
	for {
		out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, NewBucketError("list", bucket, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		token = out.NextContinuationToken
	}
	return keys, nil
}
