package registrar

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53domains"
	r53dtypes "github.com/aws/aws-sdk-go-v2/service/route53domains/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDomainsClient implements Route53DomainsAPI with overridable functions.
type mockDomainsClient struct {
	checkDomainAvailabilityFunc func(ctx context.Context, params *route53domains.CheckDomainAvailabilityInput, optFns ...func(*route53domains.Options)) (*route53domains.CheckDomainAvailabilityOutput, error)
	getDomainSuggestionsFunc    func(ctx context.Context, params *route53domains.GetDomainSuggestionsInput, optFns ...func(*route53domains.Options)) (*route53domains.GetDomainSuggestionsOutput, error)
	registerDomainFunc          func(ctx context.Context, params *route53domains.RegisterDomainInput, optFns ...func(*route53domains.Options)) (*route53domains.RegisterDomainOutput, error)
}

func (m *mockDomainsClient) CheckDomainAvailability(ctx context.Context, params *route53domains.CheckDomainAvailabilityInput, optFns ...func(*route53domains.Options)) (*route53domains.CheckDomainAvailabilityOutput, error) {
	return m.checkDomainAvailabilityFunc(ctx, params, optFns...)
}

func (m *mockDomainsClient) GetDomainSuggestions(ctx context.Context, params *route53domains.GetDomainSuggestionsInput, optFns ...func(*route53domains.Options)) (*route53domains.GetDomainSuggestionsOutput, error) {
	return m.getDomainSuggestionsFunc(ctx, params, optFns...)
}

func (m *mockDomainsClient) RegisterDomain(ctx context.Context, params *route53domains.RegisterDomainInput, optFns ...func(*route53domains.Options)) (*route53domains.RegisterDomainOutput, error) {
	return m.registerDomainFunc(ctx, params, optFns...)
}

func testContact() Contact {
	return Contact{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PhoneNumber:  "+1.2025550100",
		AddressLine1: "1 Analytical Way",
		City:         "London",
		State:        "LDN",
		CountryCode:  "GB",
		ZipCode:      "SW1A 1AA",
	}
}

func TestCheckAvailability(t *testing.T) {
	mock := &mockDomainsClient{
		checkDomainAvailabilityFunc: func(_ context.Context, params *route53domains.CheckDomainAvailabilityInput, _ ...func(*route53domains.Options)) (*route53domains.CheckDomainAvailabilityOutput, error) {
			assert.Equal(t, "demo.example.com", aws.ToString(params.DomainName))
			return &route53domains.CheckDomainAvailabilityOutput{
				Availability: r53dtypes.DomainAvailabilityAvailable,
			}, nil
		},
	}

	availability, err := NewWithAPI(mock).CheckAvailability(context.Background(), "demo.example.com")

	require.NoError(t, err)
	assert.Equal(t, "AVAILABLE", availability)
}

func TestSuggestions(t *testing.T) {
	mock := &mockDomainsClient{
		getDomainSuggestionsFunc: func(_ context.Context, params *route53domains.GetDomainSuggestionsInput, _ ...func(*route53domains.Options)) (*route53domains.GetDomainSuggestionsOutput, error) {
			assert.Equal(t, "demo.example.com", aws.ToString(params.DomainName))
			assert.Equal(t, int32(5), params.SuggestionCount)
			assert.True(t, aws.ToBool(params.OnlyAvailable))
			return &route53domains.GetDomainSuggestionsOutput{
				SuggestionsList: []r53dtypes.DomainSuggestion{
					{DomainName: aws.String("demo.site"), Availability: aws.String("AVAILABLE")},
					{DomainName: aws.String("getdemo.com"), Availability: aws.String("AVAILABLE")},
				},
			}, nil
		},
	}

	suggestions, err := NewWithAPI(mock).Suggestions(context.Background(), "demo.example.com", 5, true)

	require.NoError(t, err)
	assert.Equal(t, []Suggestion{
		{Name: "demo.site", Availability: "AVAILABLE"},
		{Name: "getdemo.com", Availability: "AVAILABLE"},
	}, suggestions)
}

func TestRegister(t *testing.T) {
	var captured *route53domains.RegisterDomainInput
	mock := &mockDomainsClient{
		registerDomainFunc: func(_ context.Context, params *route53domains.RegisterDomainInput, _ ...func(*route53domains.Options)) (*route53domains.RegisterDomainOutput, error) {
			captured = params
			return &route53domains.RegisterDomainOutput{OperationId: aws.String("op-123")}, nil
		},
	}

	operationID, err := NewWithAPI(mock).Register(context.Background(), "demo.site", 2, testContact())

	require.NoError(t, err)
	assert.Equal(t, "op-123", operationID)

	require.NotNil(t, captured)
	assert.Equal(t, "demo.site", aws.ToString(captured.DomainName))
	assert.Equal(t, int32(2), aws.ToInt32(captured.DurationInYears))
	assert.True(t, aws.ToBool(captured.AutoRenew))
	assert.True(t, aws.ToBool(captured.PrivacyProtectRegistrantContact))
	assert.True(t, aws.ToBool(captured.PrivacyProtectAdminContact))
	assert.True(t, aws.ToBool(captured.PrivacyProtectTechContact))

	for _, detail := range []*r53dtypes.ContactDetail{captured.RegistrantContact, captured.AdminContact, captured.TechContact} {
		require.NotNil(t, detail)
		assert.Equal(t, r53dtypes.ContactTypePerson, detail.ContactType)
		assert.Equal(t, "Ada", aws.ToString(detail.FirstName))
		assert.Equal(t, "Lovelace", aws.ToString(detail.LastName))
		assert.Equal(t, "ada@example.com", aws.ToString(detail.Email))
		assert.Equal(t, r53dtypes.CountryCode("GB"), detail.CountryCode)
	}
}

func TestRegister_Error(t *testing.T) {
	mock := &mockDomainsClient{
		registerDomainFunc: func(_ context.Context, _ *route53domains.RegisterDomainInput, _ ...func(*route53domains.Options)) (*route53domains.RegisterDomainOutput, error) {
			return nil, errors.New("unsupported TLD")
		},
	}

	_, err := NewWithAPI(mock).Register(context.Background(), "demo.nope", 1, testContact())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported TLD")
}
