// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"time"
)

// Extractor unpacks an archive into a directory
type Extractor interface {
	Name() string
	Extract(ctx context.Context, archive string, dest string) error
}

// ExtractorOptions configures extractors created by an ExtractorFactory
type ExtractorOptions struct {
	// Command is the command line used by command based extractors
	Command string
	// Timeout limits how long an extraction may take, 0 means no limit
	Timeout time.Duration
}

// ExtractorFactory creates extractors and is registered in the extractor registry
type ExtractorFactory interface {
	// IsManageable reports if the extractor can be used on this system and its priority, lower is preferred
	IsManageable(opts ExtractorOptions) (bool, int, error)
	Name() string
	New(log Logger, runner CommandRunner, opts ExtractorOptions) (Extractor, error)
}

// BackupExcluder marks a path as excluded from platform backup and sync mechanisms
type BackupExcluder interface {
	Name() string
	Exclude(path string) error
}
