package storage

import "fmt"

// Error represents a storage operation error with context about the operation
// that failed. It wraps the underlying AWS SDK error.
type Error struct {
	// Op is the operation that failed (e.g. "upload", "list").
	Op string

	// Bucket is the S3 bucket name.
	Bucket string

	// Key is the S3 object key, if applicable.
	Key string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("storage.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Err: err}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Key: key, Err: err}
}
