// Package pipeline orchestrates the launch of a static site onto a public
// HTTPS domain. It owns the fixed nine step sequence from local build to
// final DNS cutover, carries identifiers forward between steps, and fails
// fast: the first step error aborts the run with the step index, a failure
// kind, and whatever cloud resource identifiers already exist.
//
// The pipeline itself is stateless between runs and performs no rollback of
// cloud changes already applied. Re-running after a late failure creates a
// second certificate and distribution rather than reusing existing ones.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/omkar-bitkraft/comfactory/internal/dns"
	"github.com/omkar-bitkraft/comfactory/internal/poll"
)

// Default wait budgets for the two long-running steps.
const (
	DefaultCertificateTimeout  = 30 * time.Minute
	DefaultDistributionTimeout = 30 * time.Minute
)

// Request is the immutable input for one pipeline run.
type Request struct {
	// AppDir is the local project directory to build.
	AppDir string

	// BuildCommand overrides the build command. Empty means the builder's
	// default.
	BuildCommand string

	// Install runs dependency installation before the build.
	Install bool

	// Bucket is the target storage bucket.
	Bucket string

	// Prefix is an optional object key prefix.
	Prefix string

	// Public uploads objects with a public-read ACL.
	Public bool

	// Domain is the apex domain to launch on.
	Domain string

	// CertificateTimeout bounds the certificate issuance wait.
	CertificateTimeout time.Duration

	// DistributionTimeout bounds the distribution rollout wait.
	DistributionTimeout time.Duration
}

func (r Request) withDefaults() Request {
	if r.CertificateTimeout <= 0 {
		r.CertificateTimeout = DefaultCertificateTimeout
	}
	if r.DistributionTimeout <= 0 {
		r.DistributionTimeout = DefaultDistributionTimeout
	}
	return r
}

// State accumulates the identifiers produced by completed steps. Each field
// is written once by the step that produces it and read-only afterwards.
type State struct {
	OutputDir          string
	FileCount          int
	CertificateARN     string
	ValidationRecords  []dns.Record
	DistributionID     string
	DistributionDomain string
}

// StepResult records one completed step.
type StepResult struct {
	Step     int
	Name     string
	Duration time.Duration
}

// Result is produced only when every step succeeds.
type Result struct {
	// URL is the live site URL, https://<domain>.
	URL string

	DistributionID     string
	DistributionDomain string
	CertificateARN     string

	// Steps lists every completed step in order.
	Steps []StepResult
}

// Pipeline drives the deployment sequence against its collaborators.
type Pipeline struct {
	builder  Builder
	uploader Uploader
	issuer   CertificateIssuer
	zones    ZoneWriter
	cdn      CDNManager
	logger   *slog.Logger
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for step progress.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a pipeline from its collaborators.
func New(builder Builder, uploader Uploader, issuer CertificateIssuer, zones ZoneWriter, cdn CDNManager, opts ...Option) *Pipeline {
	p := &Pipeline{
		builder:  builder,
		uploader: uploader,
		issuer:   issuer,
		zones:    zones,
		cdn:      cdn,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// step is one named pipeline stage. kind is the failure classification used
// unless the stage reports a more specific one.
type step struct {
	name string
	kind Kind
	run  func(ctx context.Context, req *Request, state *State) error
}

// steps returns the fixed sequence. The order is the data dependency order:
// every stage consumes only identifiers produced by earlier stages.
func (p *Pipeline) steps() []step {
	return []step{
		{
			name: "install dependencies",
			kind: KindBuildFailed,
			run: func(ctx context.Context, req *Request, _ *State) error {
				if !req.Install {
					return nil
				}
				return p.builder.Install(ctx, req.AppDir)
			},
		},
		{
			name: "build site",
			kind: KindBuildFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				outputDir, err := p.builder.Build(ctx, req.AppDir, req.BuildCommand)
				if err != nil {
					return err
				}
				state.OutputDir = outputDir
				return nil
			},
		},
		{
			name: "upload to bucket",
			kind: KindUploadFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				result, err := p.uploader.UploadDir(ctx, state.OutputDir, req.Bucket, req.Prefix, req.Public)
				if err != nil {
					return err
				}
				state.FileCount = result.FileCount
				return nil
			},
		},
		{
			name: "request certificate",
			kind: KindCertificateRequestFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				arn, err := p.issuer.Request(ctx, req.Domain, true)
				if err != nil {
					return err
				}
				state.CertificateARN = arn

				records, err := p.issuer.ValidationRecords(ctx, arn)
				if err != nil {
					return &kindError{kind: KindValidationRecordsUnavailable, err: err}
				}
				state.ValidationRecords = records
				return nil
			},
		},
		{
			name: "write validation records",
			kind: KindDNSWriteFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				_, err := p.zones.UpsertValidationRecords(ctx, req.Domain, state.ValidationRecords)
				return err
			},
		},
		{
			name: "wait for certificate issuance",
			kind: KindCertificateIssuanceFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				outcome := p.issuer.AwaitIssued(ctx, state.CertificateARN, req.CertificateTimeout)
				return waitError(outcome, KindCertificateIssuanceTimedOut,
					fmt.Sprintf("certificate %s not issued within %s", state.CertificateARN, req.CertificateTimeout))
			},
		},
		{
			name: "create distribution",
			kind: KindDistributionCreateFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				dist, err := p.cdn.CreateForBucket(ctx, req.Bucket, req.Domain, state.CertificateARN)
				if err != nil {
					return err
				}
				state.DistributionID = dist.ID
				state.DistributionDomain = dist.Domain
				return nil
			},
		},
		{
			name: "wait for distribution deployment",
			kind: KindDistributionDeployFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				outcome := p.cdn.AwaitDeployed(ctx, state.DistributionID, req.DistributionTimeout)
				return waitError(outcome, KindDistributionDeployTimedOut,
					fmt.Sprintf("distribution %s not deployed within %s", state.DistributionID, req.DistributionTimeout))
			},
		},
		{
			name: "point domain at distribution",
			kind: KindDNSWriteFailed,
			run: func(ctx context.Context, req *Request, state *State) error {
				_, err := p.zones.PointToDistribution(ctx, req.Domain, state.DistributionDomain)
				return err
			},
		},
	}
}

// Run executes the full sequence. On failure it returns a *Error carrying
// the failing step, its classification, and the identifiers already created.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	req = req.withDefaults()
	state := &State{}

	steps := p.steps()
	results := make([]StepResult, 0, len(steps))

	for i, s := range steps {
		index := i + 1
		p.logger.Info("starting step", "step", index, "name", s.name, "domain", req.Domain)

		start := time.Now()
		if err := s.run(ctx, &req, state); err != nil {
			kind := s.kind
			var ke *kindError
			if errors.As(err, &ke) {
				kind = ke.kind
				err = ke.err
			}

			p.logger.Error("step failed",
				"step", index, "name", s.name, "kind", string(kind), "error", err,
				"certificate_arn", state.CertificateARN, "distribution_id", state.DistributionID)

			return nil, &Error{
				Step:           index,
				Name:           s.name,
				Kind:           kind,
				Err:            err,
				CertificateARN: state.CertificateARN,
				DistributionID: state.DistributionID,
			}
		}

		duration := time.Since(start)
		results = append(results, StepResult{Step: index, Name: s.name, Duration: duration})
		p.logger.Info("step complete", "step", index, "name", s.name, "duration", duration)
	}

	return &Result{
		URL:                "https://" + req.Domain,
		DistributionID:     state.DistributionID,
		DistributionDomain: state.DistributionDomain,
		CertificateARN:     state.CertificateARN,
		Steps:              results,
	}, nil
}

// waitError maps a poll outcome onto step errors: ready is success, timed out
// gets the step's timeout kind, and a failed probe keeps the step's default
// failure kind.
func waitError(outcome poll.Outcome, timeoutKind Kind, timeoutMsg string) error {
	switch outcome.Status {
	case poll.Ready:
		return nil
	case poll.TimedOut:
		err := fmt.Errorf("%s", timeoutMsg)
		if outcome.LastState != "" {
			err = fmt.Errorf("%s (last status %s)", timeoutMsg, outcome.LastState)
		}
		return &kindError{kind: timeoutKind, err: err}
	default:
		return outcome.Err
	}
}
