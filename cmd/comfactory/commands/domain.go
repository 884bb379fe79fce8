package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/omkar-bitkraft/comfactory/internal/registrar"
)

// DomainCmd groups the registrar subcommands.
type DomainCmd struct {
	Search   DomainSearchCmd   `cmd:"" help:"Check whether a domain is available"`
	Suggest  DomainSuggestCmd  `cmd:"" help:"Suggest alternative domain names"`
	Register DomainRegisterCmd `cmd:"" help:"Register a domain"`
}

// DomainSearchCmd implements 'domain search'.
type DomainSearchCmd struct {
	Domain string `arg:"" help:"Domain name to check"`
}

func (d *DomainSearchCmd) Run(g *Global) error {
	ctx := context.Background()

	client, err := registrarClient(ctx, g)
	if err != nil {
		return err
	}

	availability, err := client.CheckAvailability(ctx, d.Domain)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", d.Domain, availability)
	return nil
}

// DomainSuggestCmd implements 'domain suggest'.
type DomainSuggestCmd struct {
	Domain        string `arg:"" help:"Domain name to base suggestions on"`
	Count         int32  `help:"Number of suggestions" default:"10"`
	OnlyAvailable bool   `help:"Only show registrable names" default:"true" negatable:""`
}

func (d *DomainSuggestCmd) Run(g *Global) error {
	ctx := context.Background()

	client, err := registrarClient(ctx, g)
	if err != nil {
		return err
	}

	suggestions, err := client.Suggestions(ctx, d.Domain, d.Count, d.OnlyAvailable)
	if err != nil {
		return err
	}

	for _, s := range suggestions {
		fmt.Printf("%s: %s\n", s.Name, s.Availability)
	}
	return nil
}

// DomainRegisterCmd implements 'domain register'. Registration completes
// asynchronously on the registrar side; the command prints the operation id
// to track it.
type DomainRegisterCmd struct {
	Domain      string `arg:"" help:"Domain name to register"`
	ContactFile string `help:"JSON file with registrant contact details" required:"" type:"existingfile"`
	Years       int32  `help:"Registration duration in years" default:"1"`
}

func (d *DomainRegisterCmd) Run(g *Global) error {
	ctx := context.Background()

	contact, err := loadContact(d.ContactFile)
	if err != nil {
		return err
	}

	client, err := registrarClient(ctx, g)
	if err != nil {
		return err
	}

	operationID, err := client.Register(ctx, d.Domain, d.Years, contact)
	if err != nil {
		return err
	}

	fmt.Printf("registration submitted for %s, operation id %s\n", d.Domain, operationID)
	return nil
}

func registrarClient(ctx context.Context, g *Global) (*registrar.Client, error) {
	cfg, err := g.AWSConfig(ctx)
	if err != nil {
		return nil, err
	}
	return registrar.NewFromConfig(cfg, registrar.WithLogger(g.Logger)), nil
}

func loadContact(path string) (registrar.Contact, error) {
	var contact registrar.Contact

	data, err := os.ReadFile(path)
	if err != nil {
		return contact, fmt.Errorf("read contact file: %w", err)
	}
	if err := json.Unmarshal(data, &contact); err != nil {
		return contact, fmt.Errorf("parse contact file %s: %w", path, err)
	}
	return contact, nil
}
