// Package site runs the local build of a static web application and locates
// the build output directory that gets published.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/omkar-bitkraft/comfactory/internal/executor"
)

const (
	// DefaultBuildCommand is the build command used when none is supplied.
	DefaultBuildCommand = "pnpm build"

	// DefaultInstallCommand installs dependencies before a build.
	DefaultInstallCommand = "pnpm install"
)

// outputDirs lists recognized build output directories in precedence order:
// the framework static-export directory first, generic bundler output last.
var outputDirs = []string{"out", ".next", "dist", "build"}

// ErrNoOutputDir is returned when a build completed but none of the
// recognized output directories exists.
var ErrNoOutputDir = errors.New("site: no build output directory found")

// Builder runs install and build commands for an application directory.
type Builder struct {
	logger         *slog.Logger
	installCommand string
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for build progress.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithInstallCommand overrides the dependency install command.
func WithInstallCommand(command string) BuilderOption {
	return func(b *Builder) {
		b.installCommand = command
	}
}

// NewBuilder creates a Builder with the default pnpm tooling.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		logger:         slog.Default(),
		installCommand: DefaultInstallCommand,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Install runs the dependency install command in dir.
func (b *Builder) Install(ctx context.Context, dir string) error {
	cmd, err := executor.Parse(b.installCommand)
	if err != nil {
		return fmt.Errorf("site: install command: %w", err)
	}

	b.logger.Info("installing dependencies", "dir", dir, "command", cmd.String())
	result, err := cmd.Execute(ctx, executor.WithWorkingDir(dir))
	if err != nil {
		return fmt.Errorf("site: install failed (exit %d): %w: %s", result.ExitCode, err, result.Stderr)
	}
	return nil
}

// Build runs command in dir and returns the absolute path of the build output
// directory. An empty command falls back to DefaultBuildCommand. The output
// directory is located by fixed precedence; a successful build without any
// recognized output directory is an error.
func (b *Builder) Build(ctx context.Context, dir, command string) (string, error) {
	if command == "" {
		command = DefaultBuildCommand
	}

	cmd, err := executor.Parse(command)
	if err != nil {
		return "", fmt.Errorf("site: build command: %w", err)
	}

	b.logger.Info("running build", "dir", dir, "command", cmd.String())
	result, err := cmd.Execute(ctx, executor.WithWorkingDir(dir))
	if err != nil {
		return "", fmt.Errorf("site: build failed (exit %d): %w: %s", result.ExitCode, err, result.Stderr)
	}

	out, err := b.outputDir(dir)
	if err != nil {
		return "", err
	}

	b.logger.Info("build completed", "output", out)
	return out, nil
}

// OutputDir locates the build output directory for dir without building.
func (b *Builder) OutputDir(dir string) (string, error) {
	return b.outputDir(dir)
}

func (b *Builder) outputDir(dir string) (string, error) {
	for _, name := range outputDirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", fmt.Errorf("site: resolve output directory: %w", err)
			}
			return abs, nil
		}
	}
	return "", fmt.Errorf("%w in %s (expected one of %v)", ErrNoOutputDir, dir, outputDirs)
}
