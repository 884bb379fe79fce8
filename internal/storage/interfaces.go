package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the S3 operations used by this package. The interface
// abstracts the AWS SDK v2 client to enable testing with mocks.
type S3API interface {
	// PutObject uploads an object to S3.
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)

	// ListObjectsV2 lists objects in an S3 bucket.
	ListObjectsV2(
		ctx context.Context,
		params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Verify that the AWS S3 client implements our interface.
var _ S3API = (*s3.Client)(nil)
