// Package dns writes records into a domain's authoritative Route53 hosted
// zone: certificate validation CNAMEs while a certificate is pending, and the
// final alias records that point the domain at a CDN distribution.
//
// Change submission is fire-and-forget from the deployment pipeline's point of
// view: methods return the Route53 change id without waiting for propagation.
// The pipeline only ever waits on authority-side or CDN-side status.
package dns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
)

// cloudFrontHostedZoneID is the fixed hosted zone id CloudFront alias targets
// must reference, identical for every distribution in every account.
const cloudFrontHostedZoneID = "Z2FDTNDATAQYW2"

// recordTTL is the TTL for CNAME records written by this package.
const recordTTL int64 = 300

// ErrZoneNotFound is returned when no hosted zone matches the domain.
var ErrZoneNotFound = errors.New("dns: hosted zone not found")

// Record is a simple name/value DNS record pair.
type Record struct {
	Name  string
	Value string
}

// Client writes records into Route53 hosted zones.
type Client struct {
	api    Route53API
	logger *slog.Logger
}

// Option configures the DNS client.
type Option func(*Client)

// WithLogger sets the logger used for change submissions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewFromConfig creates a DNS client from an existing AWS configuration.
func NewFromConfig(cfg aws.Config, opts ...Option) *Client {
	return NewWithAPI(route53.NewFromConfig(cfg), opts...)
}

// NewWithAPI creates a client with a custom Route53API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api Route53API, opts ...Option) *Client {
	c := &Client{
		api:    api,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpsertValidationRecords writes certificate validation CNAME records into the
// domain's hosted zone and returns the Route53 change id.
func (c *Client) UpsertValidationRecords(ctx context.Context, domain string, records []Record) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("dns: no validation records to write for %s", domain)
	}

	changes := make([]r53types.Change, 0, len(records))
	for _, record := range records {
		changes = append(changes, r53types.Change{
			Action: r53types.ChangeActionUpsert,
			ResourceRecordSet: &r53types.ResourceRecordSet{
				Name: aws.String(record.Name),
				Type: r53types.RRTypeCname,
				TTL:  aws.Int64(recordTTL),
				ResourceRecords: []r53types.ResourceRecord{
					{Value: aws.String(record.Value)},
				},
			},
		})
	}

	return c.submit(ctx, domain, "certificate validation", changes)
}

// PointToDistribution writes the records that put the domain in front of a
// CDN distribution: an alias A record for the apex and a CNAME for www. It
// returns the Route53 change id.
func (c *Client) PointToDistribution(ctx context.Context, domain, distributionDomain string) (string, error) {
	changes := []r53types.Change{
		{
			Action: r53types.ChangeActionUpsert,
			ResourceRecordSet: &r53types.ResourceRecordSet{
				Name: aws.String(domain),
				Type: r53types.RRTypeA,
				AliasTarget: &r53types.AliasTarget{
					DNSName:              aws.String(distributionDomain),
					HostedZoneId:         aws.String(cloudFrontHostedZoneID),
					EvaluateTargetHealth: false,
				},
			},
		},
		{
			Action: r53types.ChangeActionUpsert,
			ResourceRecordSet: &r53types.ResourceRecordSet{
				Name: aws.String("www." + domain),
				Type: r53types.RRTypeCname,
				TTL:  aws.Int64(recordTTL),
				ResourceRecords: []r53types.ResourceRecord{
					{Value: aws.String(distributionDomain)},
				},
			},
		},
	}

	return c.submit(ctx, domain, "point at distribution", changes)
}

func (c *Client) submit(ctx context.Context, domain, comment string, changes []r53types.Change) (string, error) {
	zoneID, err := c.zoneID(ctx, domain)
	if err != nil {
		return "", err
	}

	out, err := c.api.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(zoneID),
		ChangeBatch: &r53types.ChangeBatch{
			Comment: aws.String(comment),
			Changes: changes,
		},
	})
	if err != nil {
		return "", fmt.Errorf("dns: change records for %s: %w", domain, err)
	}

	changeID := aws.ToString(out.ChangeInfo.Id)
	c.logger.Info("submitted record change", "domain", domain, "zone", zoneID, "change_id", changeID, "records", len(changes))
	return changeID, nil
}

// zoneID resolves the hosted zone id for domain. Route53 returns zone names
// with a trailing dot, so comparison happens on the normalized form.
func (c *Client) zoneID(ctx context.Context, domain string) (string, error) {
	out, err := c.api.ListHostedZonesByName(ctx, &route53.ListHostedZonesByNameInput{
		DNSName: aws.String(domain),
	})
	if err != nil {
		return "", fmt.Errorf("dns: list hosted zones for %s: %w", domain, err)
	}

	want := strings.TrimSuffix(domain, ".")
	for _, zone := range out.HostedZones {
		if strings.TrimSuffix(aws.ToString(zone.Name), ".") == want {
			return strings.TrimPrefix(aws.ToString(zone.Id), "/hostedzone/"), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrZoneNotFound, domain)
}
