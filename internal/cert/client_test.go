package cert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	acmtypes "github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar-bitkraft/comfactory/internal/dns"
	"github.com/omkar-bitkraft/comfactory/internal/poll"
)

// mockACMClient implements ACMAPI with overridable functions.
type mockACMClient struct {
	requestCertificateFunc  func(ctx context.Context, params *acm.RequestCertificateInput, optFns ...func(*acm.Options)) (*acm.RequestCertificateOutput, error)
	describeCertificateFunc func(ctx context.Context, params *acm.DescribeCertificateInput, optFns ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error)
}

func (m *mockACMClient) RequestCertificate(ctx context.Context, params *acm.RequestCertificateInput, optFns ...func(*acm.Options)) (*acm.RequestCertificateOutput, error) {
	return m.requestCertificateFunc(ctx, params, optFns...)
}

func (m *mockACMClient) DescribeCertificate(ctx context.Context, params *acm.DescribeCertificateInput, optFns ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
	return m.describeCertificateFunc(ctx, params, optFns...)
}

func describeWithStatuses(t *testing.T, arn string, statuses ...acmtypes.CertificateStatus) (*mockACMClient, *int) {
	t.Helper()
	calls := 0
	mock := &mockACMClient{
		describeCertificateFunc: func(_ context.Context, params *acm.DescribeCertificateInput, _ ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
			assert.Equal(t, arn, aws.ToString(params.CertificateArn))
			status := statuses[len(statuses)-1]
			if calls < len(statuses) {
				status = statuses[calls]
			}
			calls++
			return &acm.DescribeCertificateOutput{
				Certificate: &acmtypes.CertificateDetail{Status: status},
			}, nil
		},
	}
	return mock, &calls
}

func TestRequest(t *testing.T) {
	mock := &mockACMClient{
		requestCertificateFunc: func(_ context.Context, params *acm.RequestCertificateInput, _ ...func(*acm.Options)) (*acm.RequestCertificateOutput, error) {
			assert.Equal(t, "demo.example.com", aws.ToString(params.DomainName))
			assert.Equal(t, acmtypes.ValidationMethodDns, params.ValidationMethod)
			assert.Equal(t, []string{"www.demo.example.com"}, params.SubjectAlternativeNames)
			return &acm.RequestCertificateOutput{CertificateArn: aws.String("cert/demo")}, nil
		},
	}

	arn, err := NewWithAPI(mock).Request(context.Background(), "demo.example.com", true)

	require.NoError(t, err)
	assert.Equal(t, "cert/demo", arn)
}

func TestRequest_WithoutWWW(t *testing.T) {
	mock := &mockACMClient{
		requestCertificateFunc: func(_ context.Context, params *acm.RequestCertificateInput, _ ...func(*acm.Options)) (*acm.RequestCertificateOutput, error) {
			assert.Empty(t, params.SubjectAlternativeNames)
			return &acm.RequestCertificateOutput{CertificateArn: aws.String("cert/demo")}, nil
		},
	}

	_, err := NewWithAPI(mock).Request(context.Background(), "demo.example.com", false)

	require.NoError(t, err)
}

func TestRequest_Error(t *testing.T) {
	mock := &mockACMClient{
		requestCertificateFunc: func(_ context.Context, _ *acm.RequestCertificateInput, _ ...func(*acm.Options)) (*acm.RequestCertificateOutput, error) {
			return nil, errors.New("limit exceeded")
		},
	}

	_, err := NewWithAPI(mock).Request(context.Background(), "demo.example.com", true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit exceeded")
}

func TestValidationRecords_RetriesUntilAvailable(t *testing.T) {
	calls := 0
	record := &acmtypes.ResourceRecord{
		Name:  aws.String("_abc123.demo.example.com."),
		Value: aws.String("_def456.acm-validations.aws."),
	}
	mock := &mockACMClient{
		describeCertificateFunc: func(_ context.Context, _ *acm.DescribeCertificateInput, _ ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
			calls++
			detail := &acmtypes.CertificateDetail{}
			if calls >= 3 {
				// Apex and www share one validation CNAME.
				detail.DomainValidationOptions = []acmtypes.DomainValidation{
					{DomainName: aws.String("demo.example.com"), ResourceRecord: record},
					{DomainName: aws.String("www.demo.example.com"), ResourceRecord: record},
				}
			}
			return &acm.DescribeCertificateOutput{Certificate: detail}, nil
		},
	}

	client := NewWithAPI(mock, WithRecordRetry(5, time.Millisecond))
	records, err := client.ValidationRecords(context.Background(), "cert/demo")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	require.Len(t, records, 1, "shared validation record must be deduplicated")
	assert.Equal(t, dns.Record{
		Name:  "_abc123.demo.example.com.",
		Value: "_def456.acm-validations.aws.",
	}, records[0])
}

func TestValidationRecords_AttemptsExhausted(t *testing.T) {
	calls := 0
	mock := &mockACMClient{
		describeCertificateFunc: func(_ context.Context, _ *acm.DescribeCertificateInput, _ ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
			calls++
			return &acm.DescribeCertificateOutput{Certificate: &acmtypes.CertificateDetail{}}, nil
		},
	}

	client := NewWithAPI(mock, WithRecordRetry(2, time.Millisecond))
	_, err := client.ValidationRecords(context.Background(), "cert/demo")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordsUnavailable)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestValidationRecords_PermanentAPIError(t *testing.T) {
	calls := 0
	mock := &mockACMClient{
		describeCertificateFunc: func(_ context.Context, _ *acm.DescribeCertificateInput, _ ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
			calls++
			return nil, errors.New("certificate not found")
		},
	}

	client := NewWithAPI(mock, WithRecordRetry(5, time.Millisecond))
	_, err := client.ValidationRecords(context.Background(), "cert/demo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificate not found")
	assert.Equal(t, 1, calls, "API errors must not be retried")
}

func TestValidationRecords_PartialRecordSetNotReady(t *testing.T) {
	calls := 0
	mock := &mockACMClient{
		describeCertificateFunc: func(_ context.Context, _ *acm.DescribeCertificateInput, _ ...func(*acm.Options)) (*acm.DescribeCertificateOutput, error) {
			calls++
			return &acm.DescribeCertificateOutput{
				Certificate: &acmtypes.CertificateDetail{
					DomainValidationOptions: []acmtypes.DomainValidation{
						{DomainName: aws.String("demo.example.com")},
					},
				},
			}, nil
		},
	}

	client := NewWithAPI(mock, WithRecordRetry(1, time.Millisecond))
	_, err := client.ValidationRecords(context.Background(), "cert/demo")

	assert.ErrorIs(t, err, ErrRecordsUnavailable)
	assert.Equal(t, 2, calls)
}

func TestAwaitIssued_ReadyAfterPolls(t *testing.T) {
	mock, calls := describeWithStatuses(t, "cert/demo",
		acmtypes.CertificateStatusPendingValidation,
		acmtypes.CertificateStatusPendingValidation,
		acmtypes.CertificateStatusIssued,
	)

	client := NewWithAPI(mock, WithPollInterval(time.Millisecond))
	outcome := client.AwaitIssued(context.Background(), "cert/demo", time.Second)

	assert.Equal(t, poll.Ready, outcome.Status)
	assert.Equal(t, string(acmtypes.CertificateStatusIssued), outcome.LastState)
	assert.Equal(t, 3, *calls)
}

func TestAwaitIssued_TerminalFailure(t *testing.T) {
	tests := []acmtypes.CertificateStatus{
		acmtypes.CertificateStatusFailed,
		acmtypes.CertificateStatusValidationTimedOut,
		acmtypes.CertificateStatusRevoked,
	}

	for _, status := range tests {
		t.Run(string(status), func(t *testing.T) {
			mock, _ := describeWithStatuses(t, "cert/demo", status)

			client := NewWithAPI(mock, WithPollInterval(time.Millisecond))
			outcome := client.AwaitIssued(context.Background(), "cert/demo", time.Second)

			assert.Equal(t, poll.Failed, outcome.Status)
			require.Error(t, outcome.Err)
			assert.Contains(t, outcome.Err.Error(), string(status))
		})
	}
}

func TestAwaitIssued_TimedOut(t *testing.T) {
	mock, _ := describeWithStatuses(t, "cert/demo", acmtypes.CertificateStatusPendingValidation)

	client := NewWithAPI(mock, WithPollInterval(5*time.Millisecond))
	outcome := client.AwaitIssued(context.Background(), "cert/demo", 25*time.Millisecond)

	assert.Equal(t, poll.TimedOut, outcome.Status)
	assert.Equal(t, string(acmtypes.CertificateStatusPendingValidation), outcome.LastState)
}

func TestStatus(t *testing.T) {
	mock, _ := describeWithStatuses(t, "cert/demo", acmtypes.CertificateStatusIssued)

	status, err := NewWithAPI(mock).Status(context.Background(), "cert/demo")

	require.NoError(t, err)
	assert.Equal(t, acmtypes.CertificateStatusIssued, status)
}
