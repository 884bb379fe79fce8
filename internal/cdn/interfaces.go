package cdn

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
)

// CloudFrontAPI defines the CloudFront operations used by this package. The
// interface abstracts the AWS SDK v2 client to enable testing with mocks.
type CloudFrontAPI interface {
	// CreateDistribution creates a new distribution.
	CreateDistribution(
		ctx context.Context,
		params *cloudfront.CreateDistributionInput,
		optFns ...func(*cloudfront.Options),
	) (*cloudfront.CreateDistributionOutput, error)

	// GetDistribution returns a distribution's configuration and status.
	GetDistribution(
		ctx context.Context,
		params *cloudfront.GetDistributionInput,
		optFns ...func(*cloudfront.Options),
	) (*cloudfront.GetDistributionOutput, error)
}

// Verify that the AWS CloudFront client implements our interface.
var _ CloudFrontAPI = (*cloudfront.Client)(nil)
