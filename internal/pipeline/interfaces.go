package pipeline

import (
	"context"
	"time"

	"github.com/omkar-bitkraft/comfactory/internal/cdn"
	"github.com/omkar-bitkraft/comfactory/internal/dns"
	"github.com/omkar-bitkraft/comfactory/internal/poll"
	"github.com/omkar-bitkraft/comfactory/internal/storage"
)

// Builder runs the local build and resolves its output directory.
type Builder interface {
	// Install installs project dependencies in dir.
	Install(ctx context.Context, dir string) error

	// Build runs command in dir and returns the build output directory.
	Build(ctx context.Context, dir, command string) (string, error)
}

// Uploader copies a local directory into object storage.
type Uploader interface {
	UploadDir(ctx context.Context, dir, bucket, prefix string, public bool) (*storage.UploadResult, error)
}

// CertificateIssuer requests DNS-validated certificates and tracks issuance.
type CertificateIssuer interface {
	Request(ctx context.Context, domain string, includeWWW bool) (string, error)
	ValidationRecords(ctx context.Context, arn string) ([]dns.Record, error)
	AwaitIssued(ctx context.Context, arn string, timeout time.Duration) poll.Outcome
}

// ZoneWriter writes records into the domain's authoritative zone.
type ZoneWriter interface {
	UpsertValidationRecords(ctx context.Context, domain string, records []dns.Record) (string, error)
	PointToDistribution(ctx context.Context, domain, distributionDomain string) (string, error)
}

// CDNManager creates distributions and tracks their rollout.
type CDNManager interface {
	CreateForBucket(ctx context.Context, bucket, domain, certARN string) (*cdn.Distribution, error)
	AwaitDeployed(ctx context.Context, id string, timeout time.Duration) poll.Outcome
}
