package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvRegion, "")
	t.Setenv(EnvDefaultBucket, "")

	settings, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, settings.Region)
	assert.Empty(t, settings.DefaultBucket)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(EnvRegion, "eu-west-1")
	t.Setenv(EnvDefaultBucket, "my-site-bucket")

	settings, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", settings.Region)
	assert.Equal(t, "my-site-bucket", settings.DefaultBucket)
}

func TestLoad_EnvFile(t *testing.T) {
	// Register cleanup, then unset so the file values are not shadowed.
	t.Setenv(EnvRegion, "")
	t.Setenv(EnvDefaultBucket, "")
	require.NoError(t, os.Unsetenv(EnvRegion))
	require.NoError(t, os.Unsetenv(EnvDefaultBucket))

	envFile := filepath.Join(t.TempDir(), "deploy.env")
	content := EnvRegion + "=ap-southeast-2\n" + EnvDefaultBucket + "=file-bucket\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	settings, err := Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", settings.Region)
	assert.Equal(t, "file-bucket", settings.DefaultBucket)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	t.Setenv(EnvRegion, "us-west-2")

	envFile := filepath.Join(t.TempDir(), "deploy.env")
	require.NoError(t, os.WriteFile(envFile, []byte(EnvRegion+"=ap-southeast-2\n"), 0o600))

	settings, err := Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "us-west-2", settings.Region)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}
