// Package executor runs external build tooling with captured output,
// environment overrides, and context support for cancellation.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result holds the output and exit information from a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Options configures command execution behavior.
type Options struct {
	// RedirectToConsole mirrors the command's output to the process
	// stdout/stderr in addition to capturing it.
	RedirectToConsole bool

	// WorkingDir is the directory the command runs in.
	WorkingDir string

	// Env holds environment variables appended to the current environment.
	Env map[string]string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkingDir sets the working directory for the command.
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// WithEnv adds environment variables for the command.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		for k, v := range env {
			o.Env[k] = v
		}
	}
}

// WithConsoleRedirect mirrors command output to the console.
func WithConsoleRedirect(redirect bool) Option {
	return func(o *Options) {
		o.RedirectToConsole = redirect
	}
}

// CommandExecutor runs a single program with fixed arguments.
type CommandExecutor struct {
	program string
	args    []string
}

// New creates a new CommandExecutor for the given program and arguments.
func New(program string, args ...string) *CommandExecutor {
	return &CommandExecutor{
		program: program,
		args:    args,
	}
}

// Parse splits a shell-style command line into a CommandExecutor.
// It returns an error for an empty command.
func Parse(command string) (*CommandExecutor, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return New(fields[0], fields[1:]...), nil
}

// Execute runs the command and captures its output. A non-zero exit returns
// both the partial Result and an error wrapping the underlying exec failure.
func (c *CommandExecutor) Execute(ctx context.Context, opts ...Option) (*Result, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	cmd := exec.CommandContext(ctx, c.program, c.args...)

	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}
	if len(options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if options.RedirectToConsole {
		cmd.Stdout = io.MultiWriter(&stdoutBuf, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()

	result := &Result{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err != nil && errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		result.ExitCode = -1
	}

	if err != nil {
		return result, fmt.Errorf("command %q failed: %w", c.program, err)
	}
	return result, nil
}

// String returns the command line the executor will run.
func (c *CommandExecutor) String() string {
	if len(c.args) == 0 {
		return c.program
	}
	return c.program + " " + strings.Join(c.args, " ")
}
