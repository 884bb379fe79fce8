// Package cdn creates and tracks CloudFront distributions that front
// S3-hosted static sites. A distribution is created against the bucket's
// website endpoint as a custom HTTP origin, with viewer TLS enabled whenever
// an issued ACM certificate is supplied, and the package can wait for the
// distribution to finish its global rollout.
package cdn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/google/uuid"

	"github.com/omkar-bitkraft/comfactory/internal/poll"
)

// Distribution statuses reported by the CloudFront API.
const (
	StatusDeployed   = "Deployed"
	StatusInProgress = "InProgress"
)

// Distribution describes a created distribution.
type Distribution struct {
	// ID is the distribution id, e.g. "E1A2B3C4D5".
	ID string

	// Domain is the CloudFront domain name, e.g. "d111abc.cloudfront.net".
	Domain string

	// ARN is the distribution ARN.
	ARN string

	// Status is the status at creation time, normally "InProgress".
	Status string
}

// Client creates and inspects CloudFront distributions.
type Client struct {
	api          CloudFrontAPI
	logger       *slog.Logger
	pollInterval time.Duration
	originRegion string
}

// NewFromConfig creates a CDN client from an existing AWS configuration. The
// CloudFront control plane lives in us-east-1, so the underlying client is
// pinned there; the configuration's own region is kept as the origin region
// for building S3 website endpoints.
func NewFromConfig(cfg aws.Config, opts ...Option) *Client {
	if cfg.Region != "" {
		opts = append([]Option{WithOriginRegion(cfg.Region)}, opts...)
	}
	regional := cfg.Copy()
	regional.Region = "us-east-1"
	return NewWithAPI(cloudfront.NewFromConfig(regional), opts...)
}

// NewWithAPI creates a client with a custom CloudFrontAPI implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api CloudFrontAPI, opts ...Option) *Client {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Client{
		api:          api,
		logger:       options.logger,
		pollInterval: options.pollInterval,
		originRegion: options.originRegion,
	}
}

// CreateForBucket creates a distribution that serves bucket's website
// endpoint under domain. When certARN is non-empty the distribution serves
// HTTPS with that certificate, covers the www alias, and redirects plain HTTP
// to HTTPS; otherwise it serves the apex alias over the default CloudFront
// certificate and allows both schemes.
//
// Every call creates a new distribution. CloudFront rejects the create if the
// alias already belongs to another distribution, which surfaces re-runs
// against an already launched domain as an explicit error.
func (c *Client) CreateForBucket(ctx context.Context, bucket, domain, certARN string) (*Distribution, error) {
	config := c.distributionConfig(bucket, domain, certARN)

	out, err := c.api.CreateDistribution(ctx, &cloudfront.CreateDistributionInput{
		DistributionConfig: config,
	})
	if err != nil {
		return nil, fmt.Errorf("cdn: create distribution for %s: %w", domain, err)
	}

	dist := &Distribution{
		ID:     aws.ToString(out.Distribution.Id),
		Domain: aws.ToString(out.Distribution.DomainName),
		ARN:    aws.ToString(out.Distribution.ARN),
		Status: aws.ToString(out.Distribution.Status),
	}
	c.logger.Info("created distribution", "id", dist.ID, "domain", dist.Domain, "status", dist.Status)
	return dist, nil
}

func (c *Client) distributionConfig(bucket, domain, certARN string) *cftypes.DistributionConfig {
	originID := "S3-Website-" + bucket
	originDomain := fmt.Sprintf("%s.s3-website-%s.amazonaws.com", bucket, c.originRegion)

	aliases := []string{domain}
	if certARN != "" {
		aliases = append(aliases, "www."+domain)
	}

	config := &cftypes.DistributionConfig{
		CallerReference: aws.String(uuid.NewString()),
		Comment:         aws.String("distribution for " + domain),
		Enabled:         aws.Bool(true),
		Aliases: &cftypes.Aliases{
			Quantity: aws.Int32(int32(len(aliases))),
			Items:    aliases,
		},
		Origins: &cftypes.Origins{
			Quantity: aws.Int32(1),
			Items: []cftypes.Origin{
				{
					Id:         aws.String(originID),
					DomainName: aws.String(originDomain),
					// S3 website endpoints speak plain HTTP only.
					CustomOriginConfig: &cftypes.CustomOriginConfig{
						HTTPPort:             aws.Int32(80),
						HTTPSPort:            aws.Int32(443),
						OriginProtocolPolicy: cftypes.OriginProtocolPolicyHttpOnly,
					},
				},
			},
		},
		DefaultCacheBehavior: &cftypes.DefaultCacheBehavior{
			TargetOriginId:       aws.String(originID),
			ViewerProtocolPolicy: cftypes.ViewerProtocolPolicyAllowAll,
			ForwardedValues: &cftypes.ForwardedValues{
				QueryString: aws.Bool(false),
				Cookies: &cftypes.CookiePreference{
					Forward: cftypes.ItemSelectionNone,
				},
			},
			MinTTL: aws.Int64(0),
		},
		ViewerCertificate: &cftypes.ViewerCertificate{
			CloudFrontDefaultCertificate: aws.Bool(true),
		},
	}

	if certARN != "" {
		config.DefaultCacheBehavior.ViewerProtocolPolicy = cftypes.ViewerProtocolPolicyRedirectToHttps
		config.ViewerCertificate = &cftypes.ViewerCertificate{
			ACMCertificateArn:      aws.String(certARN),
			SSLSupportMethod:       cftypes.SSLSupportMethodSniOnly,
			MinimumProtocolVersion: cftypes.MinimumProtocolVersionTLSv122021,
		}
	}

	return config
}

// Status returns the distribution's current status string.
func (c *Client) Status(ctx context.Context, id string) (string, error) {
	out, err := c.api.GetDistribution(ctx, &cloudfront.GetDistributionInput{
		Id: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("cdn: get distribution %s: %w", id, err)
	}
	return aws.ToString(out.Distribution.Status), nil
}

// AwaitDeployed polls the distribution until its status reaches Deployed or
// the timeout elapses. An unrecognized status is treated as a failure rather
// than polled forever.
func (c *Client) AwaitDeployed(ctx context.Context, id string, timeout time.Duration) poll.Outcome {
	c.logger.Info("waiting for distribution deployment", "id", id, "timeout", timeout)

	probe := func(ctx context.Context) (string, bool, error) {
		status, err := c.Status(ctx, id)
		if err != nil {
			return "", false, err
		}
		switch status {
		case StatusDeployed:
			return status, true, nil
		case StatusInProgress:
			c.logger.Debug("distribution still deploying", "id", id)
			return status, false, nil
		default:
			return status, false, fmt.Errorf("cdn: distribution %s entered unexpected status %s", id, status)
		}
	}

	outcome := poll.Until(ctx, probe, c.pollInterval, timeout)
	c.logger.Info("distribution wait finished", "id", id, "status", outcome.Status, "state", outcome.LastState, "elapsed", outcome.Elapsed)
	return outcome
}
