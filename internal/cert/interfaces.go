package cert

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/acm"
)

// ACMAPI defines the ACM operations used by this package. The interface
// abstracts the AWS SDK v2 client to enable testing with mocks.
type ACMAPI interface {
	// RequestCertificate requests a public certificate.
	RequestCertificate(
		ctx context.Context,
		params *acm.RequestCertificateInput,
		optFns ...func(*acm.Options),
	) (*acm.RequestCertificateOutput, error)

	// DescribeCertificate returns detailed metadata about a certificate.
	DescribeCertificate(
		ctx context.Context,
		params *acm.DescribeCertificateInput,
		optFns ...func(*acm.Options),
	) (*acm.DescribeCertificateOutput, error)
}

// Verify that the AWS ACM client implements our interface.
var _ ACMAPI = (*acm.Client)(nil)
