// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/choria-io/updater/model"
)

// Option configures an Engine
type Option func(*Engine) error

// WithExtractor sets the extractor used to unpack archives, it is required
func WithExtractor(e model.Extractor) Option {
	return func(eng *Engine) error {
		if e == nil {
			return fmt.Errorf("extractor is required")
		}

		eng.extractor = e
		return nil
	}
}

// WithBackupExcluder sets how stored archives are excluded from backups
func WithBackupExcluder(x model.BackupExcluder) Option {
	return func(eng *Engine) error {
		eng.excluder = x
		return nil
	}
}

// WithScratchDirectory sets the directory holding temporary extraction artifacts
func WithScratchDirectory(dir string) Option {
	return func(eng *Engine) error {
		if dir == "" {
			return fmt.Errorf("scratch directory is required")
		}

		eng.scratchDir = dir
		return nil
	}
}

// WithDocumentsDirectory sets the directory the storage root is created in
func WithDocumentsDirectory(dir string) Option {
	return func(eng *Engine) error {
		eng.documentsDir = dir
		return nil
	}
}

// WithStorageRoot places stored archives directly in dir rather than below the documents directory
func WithStorageRoot(dir string) Option {
	return func(eng *Engine) error {
		eng.storageRoot = dir
		return nil
	}
}
