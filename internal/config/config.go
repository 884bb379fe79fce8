// Package config resolves runtime settings from the environment, with an
// optional .env file for local use.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names read by Load.
const (
	EnvRegion        = "AWS_REGION"
	EnvDefaultBucket = "COMFACTORY_BUCKET"
)

// DefaultRegion is used when AWS_REGION is unset.
const DefaultRegion = "us-east-1"

// Settings holds resolved runtime configuration.
type Settings struct {
	// Region is the AWS region for regional services (S3, Route53 queries).
	Region string

	// DefaultBucket is the bucket used when a command does not name one.
	DefaultBucket string
}

// Load reads settings from the process environment. When envFile is
// non-empty the file is loaded first; variables already set in the
// environment win over file values. A missing explicit env file is an error,
// but the conventional ".env" is loaded only if present.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	settings := &Settings{
		Region:        os.Getenv(EnvRegion),
		DefaultBucket: os.Getenv(EnvDefaultBucket),
	}
	if settings.Region == "" {
		settings.Region = DefaultRegion
	}
	return settings, nil
}
