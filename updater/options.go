// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"fmt"
	"net/http"
	"time"

	"github.com/choria-io/updater/model"
)

// Option configures an Updater
type Option func(*Updater) error

// WithDocumentsDirectory sets the directory archives are stored below, in an updater subdirectory
func WithDocumentsDirectory(dir string) Option {
	return func(u *Updater) error {
		if dir == "" {
			return fmt.Errorf("documents directory is required")
		}

		u.documentsDir = dir
		return nil
	}
}

// WithStorageRoot stores archives directly in dir
func WithStorageRoot(dir string) Option {
	return func(u *Updater) error {
		if dir == "" {
			return fmt.Errorf("storage root is required")
		}

		u.storageRoot = dir
		return nil
	}
}

// WithScratchDirectory sets the directory used for downloads and extraction
func WithScratchDirectory(dir string) Option {
	return func(u *Updater) error {
		if dir == "" {
			return fmt.Errorf("scratch directory is required")
		}

		u.scratchDir = dir
		return nil
	}
}

// WithExtractor selects the extractor provider by name, by default the most preferred available one is used
func WithExtractor(name string) Option {
	return func(u *Updater) error {
		u.extractor = name
		return nil
	}
}

// WithExtractorOptions configures the extractor providers
func WithExtractorOptions(opts model.ExtractorOptions) Option {
	return func(u *Updater) error {
		u.extractorOpts = opts
		return nil
	}
}

// WithBackupExclusion selects how stored archives are excluded from backups. The xattr default
// fails every download with model.ErrMetadata when the storage root does not support user extended
// attributes, select cachedir or none for such filesystems
func WithBackupExclusion(kind string) Option {
	return func(u *Updater) error {
		u.backupExclusion = kind
		return nil
	}
}

// WithHTTPClient sets the client used for downloads
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) error {
		u.client = c
		return nil
	}
}

// WithUserAgent sets the User-Agent sent with downloads
func WithUserAgent(ua string) Option {
	return func(u *Updater) error {
		u.userAgent = ua
		return nil
	}
}

// WithTimeout bounds every download, 0 disables the limit
func WithTimeout(t time.Duration) Option {
	return func(u *Updater) error {
		if t < 0 {
			return fmt.Errorf("timeout cannot be negative")
		}

		u.timeout = t
		return nil
	}
}

// WithCleanupConcurrency limits how many paths are removed at the same time
func WithCleanupConcurrency(n int) Option {
	return func(u *Updater) error {
		if n < 1 {
			return fmt.Errorf("cleanup concurrency must be at least 1")
		}

		u.cleanupConcurrency = n
		return nil
	}
}
