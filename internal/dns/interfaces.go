package dns

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/route53"
)

// Route53API defines the Route53 operations used by this package. The
// interface abstracts the AWS SDK v2 client to enable testing with mocks.
type Route53API interface {
	// ListHostedZonesByName lists hosted zones ordered by DNS name.
	ListHostedZonesByName(
		ctx context.Context,
		params *route53.ListHostedZonesByNameInput,
		optFns ...func(*route53.Options),
	) (*route53.ListHostedZonesByNameOutput, error)

	// ChangeResourceRecordSets submits a record change batch to a hosted zone.
	ChangeResourceRecordSets(
		ctx context.Context,
		params *route53.ChangeResourceRecordSetsInput,
		optFns ...func(*route53.Options),
	) (*route53.ChangeResourceRecordSetsOutput, error)
}

// Verify that the AWS Route53 client implements our interface.
var _ Route53API = (*route53.Client)(nil)
