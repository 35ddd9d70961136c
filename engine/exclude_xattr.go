// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build linux || darwin

package engine

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/choria-io/updater/model"
)

// DefaultBackupExclusion is the backup exclusion used when none is configured. Storage roots on
// filesystems without user extended attributes need cachedir or none instead, see XattrExclusion
const DefaultBackupExclusion = XattrExclusion

type xattrExcluder struct {
	attr     string
	value    string
	setxattr func(path string, attr string, data []byte, flags int) error
}

func newXattrExcluder() (model.BackupExcluder, error) {
	return &xattrExcluder{attr: backupXattrName, value: backupXattrValue, setxattr: unix.Setxattr}, nil
}

func (x *xattrExcluder) Name() string { return XattrExclusion }

func (x *xattrExcluder) Exclude(path string) error {
	err := x.setxattr(path, x.attr, []byte(x.value), 0)
	switch {
	case errors.Is(err, unix.ENOTSUP), errors.Is(err, unix.EOPNOTSUPP):
		return fmt.Errorf("could not set %s on %s: %w: the filesystem does not support extended attributes, use the %s or %s backup exclusion", x.attr, path, err, CacheDirExclusion, NoExclusion)
	case err != nil:
		return fmt.Errorf("could not set %s on %s: %w", x.attr, path, err)
	}

	return nil
}
