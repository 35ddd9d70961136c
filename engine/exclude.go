// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/choria-io/updater/model"
)

const (
	// XattrExclusion marks stored archives using extended attributes understood by the platform backup tools.
	// Filesystems without user extended attributes, such as some overlayfs, NFS and older tmpfs mounts,
	// reject the attribute and every download then fails with model.ErrMetadata, use CacheDirExclusion
	// or NoExclusion there
	XattrExclusion = "xattr"
	// CacheDirExclusion writes a CACHEDIR.TAG into stored archives
	CacheDirExclusion = "cachedir"
	// NoExclusion leaves stored archives unmarked
	NoExclusion = "none"

	cacheDirTagName = "CACHEDIR.TAG"
	cacheDirTag     = "Signature: 8a477f597d28d172789f06886806bc55\n# This file is a cache directory tag created by choria updater.\n# For information about cache directory tags, see https://bford.info/cachedir/\n"
)

// NewBackupExcluder creates the excluder called kind, an empty kind selects the platform default
func NewBackupExcluder(kind string) (model.BackupExcluder, error) {
	switch kind {
	case "":
		return NewBackupExcluder(DefaultBackupExclusion)
	case XattrExclusion:
		return newXattrExcluder()
	case CacheDirExclusion:
		return &cacheDirExcluder{}, nil
	case NoExclusion:
		return &noExcluder{}, nil
	default:
		return nil, fmt.Errorf("unknown backup exclusion %q", kind)
	}
}

type cacheDirExcluder struct{}

func (c *cacheDirExcluder) Name() string { return CacheDirExclusion }

func (c *cacheDirExcluder) Exclude(path string) error {
	return os.WriteFile(filepath.Join(path, cacheDirTagName), []byte(cacheDirTag), 0644)
}

type noExcluder struct{}

func (n *noExcluder) Name() string           { return NoExclusion }
func (n *noExcluder) Exclude(_ string) error { return nil }
