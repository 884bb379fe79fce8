package registrar

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/route53domains"
)

// Route53DomainsAPI defines the Route53 Domains operations used by this
// package. The interface abstracts the AWS SDK v2 client to enable testing
// with mocks.
type Route53DomainsAPI interface {
	// CheckDomainAvailability reports whether a domain can be registered.
	CheckDomainAvailability(
		ctx context.Context,
		params *route53domains.CheckDomainAvailabilityInput,
		optFns ...func(*route53domains.Options),
	) (*route53domains.CheckDomainAvailabilityOutput, error)

	// GetDomainSuggestions returns alternative domain names.
	GetDomainSuggestions(
		ctx context.Context,
		params *route53domains.GetDomainSuggestionsInput,
		optFns ...func(*route53domains.Options),
	) (*route53domains.GetDomainSuggestionsOutput, error)

	// RegisterDomain starts a domain registration.
	RegisterDomain(
		ctx context.Context,
		params *route53domains.RegisterDomainInput,
		optFns ...func(*route53domains.Options),
	) (*route53domains.RegisterDomainOutput, error)
}

// Verify that the AWS Route53 Domains client implements our interface.
var _ Route53DomainsAPI = (*route53domains.Client)(nil)
