// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/choria-io/updater/model"
)

var _ model.CommandRunner = (*CommandRunner)(nil)

// CommandRunner executes system commands and captures their output
type CommandRunner struct {
	logger model.Logger
}

// NewCommandRunner creates a new CommandRunner instance with the provided logger
func NewCommandRunner(log model.Logger) (*CommandRunner, error) {
	return &CommandRunner{logger: log}, nil
}

// ExecuteWithOptions runs a command, a non zero exit code is returned without an error
func (c *CommandRunner) ExecuteWithOptions(ctx context.Context, opts model.ExtendedExecOptions) ([]byte, []byte, int, error) {
	if opts.Command == "" {
		return nil, nil, 0, errors.New("command not specified")
	}

	logOpts := []any{"command", opts.Command, "args", opts.Args}
	if opts.Cwd != "" {
		logOpts = append(logOpts, "cwd", opts.Cwd)
	}

	c.logger.Debug("Running command", logOpts...)

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)
	cmd.Env = []string{
		"PATH=/usr/bin:/bin:/usr/sbin:/sbin:/usr/local/bin:/usr/local/sbin",
		"LANG=C",
		"LC_ALL=C",
	}
	cmd.Env = append(cmd.Env, opts.Environment...)

	if opts.Cwd != "" {
		cmd.Dir = opts.Cwd
	} else {
		cmd.Dir = "/"
	}

	stdout := bytes.NewBuffer([]byte{})
	stderr := bytes.NewBuffer([]byte{})

	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	exitCode := cmd.ProcessState.ExitCode()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitCode > 0 {
		return stdout.Bytes(), stderr.Bytes(), exitCode, nil
	}

	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}

// Execute runs a command with the given arguments and returns stdout, stderr, exit code, and any error
func (c *CommandRunner) Execute(ctx context.Context, command string, args ...string) ([]byte, []byte, int, error) {
	return c.ExecuteWithOptions(ctx, model.ExtendedExecOptions{Command: command, Args: args})
}
