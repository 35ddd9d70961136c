// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package engine

// Time Machine skips items carrying this attribute
const (
	backupXattrName  = "com.apple.metadata:com_apple_backup_excludeItem"
	backupXattrValue = "com.apple.backupd"
)
