package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_OutputDirPrecedence(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want string
	}{
		{name: "static export wins", dirs: []string{"out", "dist", "build"}, want: "out"},
		{name: "framework dir over bundler dir", dirs: []string{".next", "dist"}, want: ".next"},
		{name: "dist fallback", dirs: []string{"dist", "build"}, want: "dist"},
		{name: "build last", dirs: []string{"build"}, want: "build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, d := range tt.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0o755))
			}

			got, err := NewBuilder().Build(context.Background(), dir, "true")

			require.NoError(t, err)
			assert.Equal(t, tt.want, filepath.Base(got))
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestBuild_NoOutputDir(t *testing.T) {
	dir := t.TempDir()

	_, err := NewBuilder().Build(context.Background(), dir, "true")

	assert.ErrorIs(t, err, ErrNoOutputDir)
}

func TestBuild_CommandFails(t *testing.T) {
	dir := t.TempDir()

	_, err := NewBuilder().Build(context.Background(), dir, "false")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "build failed")
}

func TestBuild_OutputDirMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out"), []byte("not a dir"), 0o644))

	_, err := NewBuilder().Build(context.Background(), dir, "true")

	assert.ErrorIs(t, err, ErrNoOutputDir)
}

func TestInstall(t *testing.T) {
	dir := t.TempDir()

	err := NewBuilder(WithInstallCommand("true")).Install(context.Background(), dir)
	require.NoError(t, err)

	err = NewBuilder(WithInstallCommand("false")).Install(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "install failed")
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dist"), 0o755))

	got, err := NewBuilder().OutputDir(dir)

	require.NoError(t, err)
	assert.Equal(t, "dist", filepath.Base(got))
}
