// Package registrar handles domain acquisition through Route53 Domains:
// availability checks, name suggestions, and registration. Registration is
// asynchronous on the AWS side and can take days for some TLDs, so it lives
// outside the deployment pipeline as a standalone operation.
package registrar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53domains"
	r53dtypes "github.com/aws/aws-sdk-go-v2/service/route53domains/types"
)

// The Route53 Domains API is only served from us-east-1.
const endpointRegion = "us-east-1"

// Contact holds the registrant details required by registries. The same
// contact is used for the registrant, administrative, and technical roles.
type Contact struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line_1"`
	City         string `json:"city"`
	State        string `json:"state"`
	CountryCode  string `json:"country_code"`
	ZipCode      string `json:"zip_code"`
}

// Suggestion is an alternative domain name with its availability.
type Suggestion struct {
	Name         string
	Availability string
}

// Client talks to the Route53 Domains registrar API.
type Client struct {
	api    Route53DomainsAPI
	logger *slog.Logger
}

// Option configures the registrar client.
type Option func(*Client)

// WithLogger sets the logger used for registrar operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewFromConfig creates a registrar client from an existing AWS
// configuration, pinned to the us-east-1 endpoint.
func NewFromConfig(cfg aws.Config, opts ...Option) *Client {
	regional := cfg.Copy()
	regional.Region = endpointRegion
	return NewWithAPI(route53domains.NewFromConfig(regional), opts...)
}

// NewWithAPI creates a client with a custom Route53DomainsAPI implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api Route53DomainsAPI, opts ...Option) *Client {
	c := &Client{
		api:    api,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckAvailability reports the registry's availability verdict for domain,
// e.g. "AVAILABLE" or "UNAVAILABLE".
func (c *Client) CheckAvailability(ctx context.Context, domain string) (string, error) {
	out, err := c.api.CheckDomainAvailability(ctx, &route53domains.CheckDomainAvailabilityInput{
		DomainName: aws.String(domain),
	})
	if err != nil {
		return "", fmt.Errorf("registrar: check availability of %s: %w", domain, err)
	}
	return string(out.Availability), nil
}

// Suggestions returns up to count alternative names for domain. When
// onlyAvailable is set, only registrable names are returned.
func (c *Client) Suggestions(ctx context.Context, domain string, count int32, onlyAvailable bool) ([]Suggestion, error) {
	out, err := c.api.GetDomainSuggestions(ctx, &route53domains.GetDomainSuggestionsInput{
		DomainName:      aws.String(domain),
		SuggestionCount: count,
		OnlyAvailable:   aws.Bool(onlyAvailable),
	})
	if err != nil {
		return nil, fmt.Errorf("registrar: suggestions for %s: %w", domain, err)
	}

	suggestions := make([]Suggestion, 0, len(out.SuggestionsList))
	for _, s := range out.SuggestionsList {
		suggestions = append(suggestions, Suggestion{
			Name:         aws.ToString(s.DomainName),
			Availability: aws.ToString(s.Availability),
		})
	}
	return suggestions, nil
}

// Register starts registering domain for durationYears using contact for all
// three contact roles, with registry auto-renew and WHOIS privacy enabled. It
// returns the registrar operation id; registration completes asynchronously.
func (c *Client) Register(ctx context.Context, domain string, durationYears int32, contact Contact) (string, error) {
	detail := contactDetail(contact)

	out, err := c.api.RegisterDomain(ctx, &route53domains.RegisterDomainInput{
		DomainName:                      aws.String(domain),
		DurationInYears:                 aws.Int32(durationYears),
		AutoRenew:                       aws.Bool(true),
		AdminContact:                    detail,
		RegistrantContact:               detail,
		TechContact:                     detail,
		PrivacyProtectAdminContact:      aws.Bool(true),
		PrivacyProtectRegistrantContact: aws.Bool(true),
		PrivacyProtectTechContact:       aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("registrar: register %s: %w", domain, err)
	}

	operationID := aws.ToString(out.OperationId)
	c.logger.Info("registration submitted", "domain", domain, "operation_id", operationID)
	return operationID, nil
}

func contactDetail(contact Contact) *r53dtypes.ContactDetail {
	return &r53dtypes.ContactDetail{
		ContactType:  r53dtypes.ContactTypePerson,
		FirstName:    aws.String(contact.FirstName),
		LastName:     aws.String(contact.LastName),
		Email:        aws.String(contact.Email),
		PhoneNumber:  aws.String(contact.PhoneNumber),
		AddressLine1: aws.String(contact.AddressLine1),
		City:         aws.String(contact.City),
		State:        aws.String(contact.State),
		CountryCode:  r53dtypes.CountryCode(contact.CountryCode),
		ZipCode:      aws.String(contact.ZipCode),
	}
}
