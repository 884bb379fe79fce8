package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omkar-bitkraft/comfactory/internal/cdn"
	"github.com/omkar-bitkraft/comfactory/internal/cert"
	"github.com/omkar-bitkraft/comfactory/internal/dns"
	"github.com/omkar-bitkraft/comfactory/internal/pipeline"
	"github.com/omkar-bitkraft/comfactory/internal/site"
	"github.com/omkar-bitkraft/comfactory/internal/storage"
)

// LaunchCmd implements the 'launch' command: the full pipeline from local
// build to a live HTTPS domain.
type LaunchCmd struct {
	AppDir      string `help:"Project directory to build" default:"." type:"path"`
	Install     bool   `help:"Install dependencies before building"`
	BuildCmd    string `help:"Build command override"`
	S3Bucket    string `name:"s3-bucket" help:"Target bucket (defaults to the configured bucket)"`
	S3Prefix    string `name:"s3-prefix" help:"Object key prefix"`
	Domain      string `help:"Apex domain to launch on" required:""`
	CertTimeout int    `name:"cert-timeout" help:"Certificate wait timeout in minutes" default:"30"`
	DistTimeout int    `name:"dist-timeout" help:"Distribution wait timeout in minutes" default:"30"`
}

func (l *LaunchCmd) Run(g *Global) error {
	ctx := context.Background()

	bucket, err := g.resolveBucket(l.S3Bucket)
	if err != nil {
		return err
	}

	cfg, err := g.AWSConfig(ctx)
	if err != nil {
		return err
	}

	p := pipeline.New(
		site.NewBuilder(site.WithLogger(g.Logger)),
		storage.NewFromConfig(cfg, storage.WithLogger(g.Logger)),
		cert.NewFromConfig(cfg, cert.WithLogger(g.Logger)),
		dns.NewFromConfig(cfg, dns.WithLogger(g.Logger)),
		cdn.NewFromConfig(cfg, cdn.WithLogger(g.Logger)),
		pipeline.WithLogger(g.Logger),
	)

	result, err := p.Run(ctx, pipeline.Request{
		AppDir:              l.AppDir,
		BuildCommand:        l.BuildCmd,
		Install:             l.Install,
		Bucket:              bucket,
		Prefix:              l.S3Prefix,
		Public:              true,
		Domain:              l.Domain,
		CertificateTimeout:  time.Duration(l.CertTimeout) * time.Minute,
		DistributionTimeout: time.Duration(l.DistTimeout) * time.Minute,
	})
	if err != nil {
		var perr *pipeline.Error
		if errors.As(err, &perr) {
			if perr.CertificateARN != "" {
				fmt.Printf("certificate already requested: %s\n", perr.CertificateARN)
			}
			if perr.DistributionID != "" {
				fmt.Printf("distribution already created: %s\n", perr.DistributionID)
			}
		}
		return err
	}

	fmt.Printf("site is live at %s\n", result.URL)
	fmt.Printf("distribution: %s (%s)\n", result.DistributionID, result.DistributionDomain)
	fmt.Printf("certificate:  %s\n", result.CertificateARN)
	return nil
}
