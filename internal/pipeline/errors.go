package pipeline

import "fmt"

// Kind classifies a pipeline failure by the step responsibility that broke.
type Kind string

const (
	KindBuildFailed                  Kind = "BuildFailed"
	KindUploadFailed                 Kind = "UploadFailed"
	KindCertificateRequestFailed     Kind = "CertificateRequestFailed"
	KindValidationRecordsUnavailable Kind = "ValidationRecordsUnavailable"
	KindCertificateIssuanceFailed    Kind = "CertificateIssuanceFailed"
	KindCertificateIssuanceTimedOut  Kind = "CertificateIssuanceTimedOut"
	KindDNSWriteFailed               Kind = "DNSWriteFailed"
	KindDistributionCreateFailed     Kind = "DistributionCreateFailed"
	KindDistributionDeployFailed     Kind = "DistributionDeployFailed"
	KindDistributionDeployTimedOut   Kind = "DistributionDeployTimedOut"
)

// Error reports which step failed and why. Identifiers of cloud resources
// already created before the failure are carried along so an operator can
// clean up or resume manually.
type Error struct {
	// Step is the 1-based index of the failed step.
	Step int

	// Name is the failed step's name.
	Name string

	// Kind classifies the failure.
	Kind Kind

	// Err is the underlying error.
	Err error

	// CertificateARN is set if a certificate was requested before the failure.
	CertificateARN string

	// DistributionID is set if a distribution was created before the failure.
	DistributionID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pipeline: step %d (%s) failed: %s: %v", e.Step, e.Name, e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// kindError lets a step report a more specific failure kind than the step's
// default, e.g. the certificate step distinguishing a rejected request from
// validation records that never appeared.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string {
	return e.err.Error()
}

func (e *kindError) Unwrap() error {
	return e.err
}
