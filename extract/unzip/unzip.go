// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package unzip

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/choria-io/updater/model"
)

const (
	ProviderName   = "unzip"
	DefaultCommand = "unzip -q -o"
	DefaultTimeout = time.Minute
)

var _ model.Extractor = (*Provider)(nil)

// Provider extracts zip archives using an external unzip compatible command
type Provider struct {
	log     model.Logger
	runner  model.CommandRunner
	command string
	args    []string
	timeout time.Duration
}

func NewUnzipProvider(log model.Logger, runner model.CommandRunner, opts model.ExtractorOptions) (*Provider, error) {
	command, args, err := parseCommand(opts.Command)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Provider{
		log:     log,
		runner:  runner,
		command: command,
		args:    args,
		timeout: timeout,
	}, nil
}

func parseCommand(cmd string) (string, []string, error) {
	if cmd == "" {
		cmd = DefaultCommand
	}

	words, err := shellquote.Split(cmd)
	if err != nil {
		return "", nil, fmt.Errorf("invalid unzip command %q: %w", cmd, err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("invalid unzip command %q", cmd)
	}

	return words[0], words[1:], nil
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) Extract(ctx context.Context, archive string, dest string) error {
	err := os.MkdirAll(dest, 0755)
	if err != nil {
		return err
	}

	args := append([]string{}, p.args...)
	args = append(args, "-d", dest, archive)

	_, stderr, exitCode, err := p.runner.ExecuteWithOptions(ctx, model.ExtendedExecOptions{
		Command: p.command,
		Args:    args,
		Cwd:     dest,
		Timeout: p.timeout,
	})
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return fmt.Errorf("%s exited with code %d: %s", p.command, exitCode, stderr)
	}

	return nil
}
