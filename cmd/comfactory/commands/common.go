package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/omkar-bitkraft/comfactory/internal/config"
)

// CLI is the root command definition with global flags.
type CLI struct {
	EnvFile string `help:"Env file to load before reading configuration" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Deploy DeployCmd `cmd:"" help:"Build the site and upload it to a bucket"`
	Launch LaunchCmd `cmd:"" help:"Run the full deployment pipeline onto a domain"`
	Domain DomainCmd `cmd:"" help:"Search, suggest, and register domains"`
	DNS    DNSCmd    `cmd:"" name:"dns" help:"Manage DNS records"`
}

// Global carries shared state into subcommand Run methods.
type Global struct {
	Settings *config.Settings
	Logger   *slog.Logger
}

// NewGlobal resolves settings and sets up logging for one invocation.
func NewGlobal(envFile string, verbose bool) (*Global, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	settings, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	return &Global{Settings: settings, Logger: logger}, nil
}

// AWSConfig loads the AWS configuration for the configured region.
func (g *Global) AWSConfig(ctx context.Context) (aws.Config, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(g.Settings.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// resolveBucket picks the flag value over the configured default bucket.
func (g *Global) resolveBucket(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if g.Settings.DefaultBucket != "" {
		return g.Settings.DefaultBucket, nil
	}
	return "", fmt.Errorf("no bucket given: pass --s3-bucket or set %s", config.EnvDefaultBucket)
}
