// Package storage uploads static build output to Amazon S3.
//
// The Client wraps the AWS SDK v2 S3 client behind a small S3API interface so
// tests can substitute a mock. UploadDir walks a directory on a billy
// filesystem and publishes every file under relative-path keys, which makes
// repeated uploads of an unchanged directory idempotent: the key set is
// derived purely from the directory layout, never from generated names.
package storage
