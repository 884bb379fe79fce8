package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5/util"
)

// UploadResult contains statistics about a completed directory upload.
type UploadResult struct {
	// Bucket is the target bucket.
	Bucket string

	// Prefix is the key prefix every object was uploaded under.
	Prefix string

	// FileCount is the number of files uploaded.
	FileCount int

	// Keys lists every uploaded object key in walk order.
	Keys []string
}

// UploadDir uploads every file under dir to bucket, preserving relative paths
// as object keys, optionally under prefix and optionally with a public-read
// ACL. Directories contribute no keys of their own. The upload is sequential:
// the pipeline needs the complete file set committed before any later step
// reads the bucket, and a static site is small enough that parallelism buys
// little.
func (c *Client) UploadDir(
	ctx context.Context,
	dir, bucket, prefix string,
	public bool,
) (*UploadResult, error) {
	if dir == "" {
		return nil, NewBucketError("upload", bucket, fmt.Errorf("source directory cannot be empty"))
	}
	if bucket == "" {
		return nil, NewBucketError("upload", bucket, fmt.Errorf("bucket cannot be empty"))
	}

	result := &UploadResult{
		Bucket: bucket,
		Prefix: prefix,
	}

	c.logger.Info("uploading build output", "dir", dir, "bucket", bucket, "prefix", prefix, "public", public)

	err := util.Walk(c.fs, dir, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, filePath)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", filePath, err)
		}
		key := objectKey(prefix, rel)

		if err := c.putFile(ctx, filePath, bucket, key, public); err != nil {
			return NewObjectError("upload", bucket, key, err)
		}

		c.logger.Debug("uploaded", "key", key)
		result.FileCount++
		result.Keys = append(result.Keys, key)
		return nil
	})
	if err != nil {
		if _, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, NewBucketError("upload", bucket, err)
	}

	c.logger.Info("upload complete", "bucket", bucket, "files", result.FileCount)
	return result, nil
}

func (c *Client) putFile(ctx context.Context, filePath, bucket, key string, public bool) error {
	f, err := c.fs.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	contentType, err := detectContentType(filePath, f)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	}
	if public {
		input.ACL = s3types.ObjectCannedACLPublicRead
	}

	_, err = c.api.PutObject(ctx, input)
	return err
}

// objectKey joins the prefix with the slash-normalized relative path.
func objectKey(prefix, rel string) string {
	key := path.Join(prefix, filepath.ToSlash(rel))
	return strings.TrimPrefix(key, "/")
}

// detectContentType resolves the MIME type by file extension first, which
// gets text assets like .css and .js right, and falls back to content
// sniffing for extensions the platform table does not know. The reader is
// rewound after sniffing so the upload still sends the whole file.
func detectContentType(filePath string, f io.ReadSeeker) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(filePath)); ct != "" {
		return ct, nil
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect content type for %s: %w", filePath, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind %s after content detection: %w", filePath, err)
	}
	return mt.String(), nil
}
