// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build !linux && !darwin

package engine

import (
	"fmt"
	"runtime"

	"github.com/choria-io/updater/model"
)

// DefaultBackupExclusion is the backup exclusion used when none is configured
const DefaultBackupExclusion = NoExclusion

func newXattrExcluder() (model.BackupExcluder, error) {
	return nil, fmt.Errorf("%s backup exclusion is not supported on %s", XattrExclusion, runtime.GOOS)
}
