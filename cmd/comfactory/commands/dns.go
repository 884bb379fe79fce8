package commands

import (
	"context"
	"fmt"

	"github.com/omkar-bitkraft/comfactory/internal/dns"
)

// DNSCmd groups the DNS subcommands.
type DNSCmd struct {
	Point DNSPointCmd `cmd:"" help:"Point a domain at a distribution"`
}

// DNSPointCmd implements 'dns point': writes the apex alias and www CNAME for
// an existing distribution without running the rest of the pipeline.
type DNSPointCmd struct {
	Domain string `arg:"" help:"Apex domain to point"`
	Target string `arg:"" help:"Distribution domain name, e.g. d111abc.cloudfront.net"`
}

func (d *DNSPointCmd) Run(g *Global) error {
	ctx := context.Background()

	cfg, err := g.AWSConfig(ctx)
	if err != nil {
		return err
	}

	client := dns.NewFromConfig(cfg, dns.WithLogger(g.Logger))
	changeID, err := client.PointToDistribution(ctx, d.Domain, d.Target)
	if err != nil {
		return err
	}

	fmt.Printf("submitted change %s pointing %s at %s\n", changeID, d.Domain, d.Target)
	return nil
}
