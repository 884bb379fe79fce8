package commands

import (
	"context"
	"fmt"

	"github.com/omkar-bitkraft/comfactory/internal/site"
	"github.com/omkar-bitkraft/comfactory/internal/storage"
)

// DeployCmd implements the 'deploy' command: local build plus upload, without
// touching certificates, CDN, or DNS.
type DeployCmd struct {
	AppDir   string `help:"Project directory to build" default:"." type:"path"`
	Install  bool   `help:"Install dependencies before building"`
	BuildCmd string `help:"Build command override"`
	S3Bucket string `name:"s3-bucket" help:"Target bucket (defaults to the configured bucket)"`
	S3Prefix string `name:"s3-prefix" help:"Object key prefix"`
	Public   bool   `help:"Upload objects with a public-read ACL"`
}

func (d *DeployCmd) Run(g *Global) error {
	ctx := context.Background()

	bucket, err := g.resolveBucket(d.S3Bucket)
	if err != nil {
		return err
	}

	builder := site.NewBuilder(site.WithLogger(g.Logger))
	if d.Install {
		if err := builder.Install(ctx, d.AppDir); err != nil {
			return err
		}
	}

	outputDir, err := builder.Build(ctx, d.AppDir, d.BuildCmd)
	if err != nil {
		return err
	}

	store, err := storage.New(ctx,
		storage.WithRegion(g.Settings.Region),
		storage.WithLogger(g.Logger),
	)
	if err != nil {
		return err
	}

	result, err := store.UploadDir(ctx, outputDir, bucket, d.S3Prefix, d.Public)
	if err != nil {
		return err
	}

	fmt.Printf("uploaded %d files to s3://%s/%s\n", result.FileCount, result.Bucket, result.Prefix)
	return nil
}
