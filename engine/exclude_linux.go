// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package engine

const (
	backupXattrName  = "user.xdg.robots.backup"
	backupXattrValue = "false"
)
