// Package cert manages TLS certificates for deployed sites through AWS
// Certificate Manager. It requests DNS-validated certificates covering the
// apex domain and its www variant, surfaces the CNAME validation records the
// domain owner must publish, and waits for issuance.
//
// Certificates intended for CloudFront must live in us-east-1 regardless of
// where the rest of the deployment runs, so constructors pin the client to
// that region.
package cert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	acmtypes "github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/cenkalti/backoff/v4"

	"github.com/omkar-bitkraft/comfactory/internal/dns"
	"github.com/omkar-bitkraft/comfactory/internal/poll"
)

// ValidationRegion is the region ACM certificates for CloudFront must be
// requested in.
const ValidationRegion = "us-east-1"

// ErrRecordsUnavailable is returned when ACM has not yet attached validation
// records to a certificate. Callers retry; the records usually appear within
// seconds of the request.
var ErrRecordsUnavailable = errors.New("cert: validation records not yet available")

// Client requests and tracks ACM certificates.
type Client struct {
	api            ACMAPI
	logger         *slog.Logger
	pollInterval   time.Duration
	recordAttempts uint64
	recordInterval time.Duration
}

// NewFromConfig creates a certificate client from an existing AWS
// configuration. The underlying ACM client is pinned to us-east-1.
func NewFromConfig(cfg aws.Config, opts ...Option) *Client {
	regional := cfg.Copy()
	regional.Region = ValidationRegion
	return NewWithAPI(acm.NewFromConfig(regional), opts...)
}

// NewWithAPI creates a client with a custom ACMAPI implementation. This is
// primarily used for testing with mocked clients.
func NewWithAPI(api ACMAPI, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Client{
		api:            api,
		logger:         options.logger,
		pollInterval:   options.pollInterval,
		recordAttempts: options.recordAttempts,
		recordInterval: options.recordInterval,
	}
}

// Request asks ACM for a DNS-validated certificate covering domain. When
// includeWWW is set the certificate also covers "www." + domain as a subject
// alternative name. It returns the certificate ARN.
func (c *Client) Request(ctx context.Context, domain string, includeWWW bool) (string, error) {
	input := &acm.RequestCertificateInput{
		DomainName:       aws.String(domain),
		ValidationMethod: acmtypes.ValidationMethodDns,
	}
	if includeWWW {
		input.SubjectAlternativeNames = []string{"www." + domain}
	}

	out, err := c.api.RequestCertificate(ctx, input)
	if err != nil {
		return "", fmt.Errorf("cert: request certificate for %s: %w", domain, err)
	}

	arn := aws.ToString(out.CertificateArn)
	c.logger.Info("requested certificate", "domain", domain, "arn", arn)
	return arn, nil
}

// ValidationRecords returns the CNAME records the domain owner must publish
// for ACM to validate ownership. ACM attaches the records asynchronously
// after the request, so this retries with backoff until every domain on the
// certificate carries one. Records are deduplicated by name since the apex
// and www validations typically share a single CNAME.
func (c *Client) ValidationRecords(ctx context.Context, arn string) ([]dns.Record, error) {
	var records []dns.Record

	operation := func() error {
		out, err := c.api.DescribeCertificate(ctx, &acm.DescribeCertificateInput{
			CertificateArn: aws.String(arn),
		})
		if err != nil {
			return backoff.Permanent(fmt.Errorf("cert: describe certificate %s: %w", arn, err))
		}

		opts := out.Certificate.DomainValidationOptions
		if len(opts) == 0 {
			return ErrRecordsUnavailable
		}

		seen := make(map[string]bool, len(opts))
		records = records[:0]
		for _, opt := range opts {
			if opt.ResourceRecord == nil {
				return ErrRecordsUnavailable
			}
			name := aws.ToString(opt.ResourceRecord.Name)
			if seen[name] {
				continue
			}
			seen[name] = true
			records = append(records, dns.Record{
				Name:  name,
				Value: aws.ToString(opt.ResourceRecord.Value),
			})
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(c.recordInterval),
		), c.recordAttempts),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	c.logger.Info("validation records available", "arn", arn, "records", len(records))
	return records, nil
}

// Status returns the current certificate status.
func (c *Client) Status(ctx context.Context, arn string) (acmtypes.CertificateStatus, error) {
	out, err := c.api.DescribeCertificate(ctx, &acm.DescribeCertificateInput{
		CertificateArn: aws.String(arn),
	})
	if err != nil {
		return "", fmt.Errorf("cert: describe certificate %s: %w", arn, err)
	}
	return out.Certificate.Status, nil
}

// AwaitIssued polls the certificate until it is issued, reaches a terminal
// failure state, or the timeout elapses. The returned outcome carries the
// last observed status either way.
func (c *Client) AwaitIssued(ctx context.Context, arn string, timeout time.Duration) poll.Outcome {
	c.logger.Info("waiting for certificate issuance", "arn", arn, "timeout", timeout)

	probe := func(ctx context.Context) (string, bool, error) {
		status, err := c.Status(ctx, arn)
		if err != nil {
			return "", false, err
		}
		switch status {
		case acmtypes.CertificateStatusIssued:
			return string(status), true, nil
		case acmtypes.CertificateStatusPendingValidation:
			c.logger.Debug("certificate pending validation", "arn", arn)
			return string(status), false, nil
		default:
			// FAILED, VALIDATION_TIMED_OUT, REVOKED and anything else ACM
			// may add are terminal for our purposes.
			return string(status), false, fmt.Errorf("cert: certificate %s entered status %s", arn, status)
		}
	}

	outcome := poll.Until(ctx, probe, c.pollInterval, timeout)
	c.logger.Info("certificate wait finished", "arn", arn, "status", outcome.Status, "state", outcome.LastState, "elapsed", outcome.Elapsed)
	return outcome
}
