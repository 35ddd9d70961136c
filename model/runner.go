// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"time"
)

// ExtendedExecOptions describes a command to run along with its execution environment
type ExtendedExecOptions struct {
	Command     string
	Args        []string
	Cwd         string
	Environment []string
	Timeout     time.Duration
}

// CommandRunner runs external commands, used by command based extractors
type CommandRunner interface {
	Execute(ctx context.Context, cmd string, args ...string) (stdout []byte, stderr []byte, exitCode int, err error)
	ExecuteWithOptions(ctx context.Context, opts ExtendedExecOptions) ([]byte, []byte, int, error)
}
