// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package extract registers the available archive extractors
package extract

import (
	"sync"

	"github.com/choria-io/updater/extract/native"
	"github.com/choria-io/updater/extract/unzip"
)

var once sync.Once

// RegisterAll registers all extractors with the registry, it is safe to call many times
func RegisterAll() {
	once.Do(func() {
		native.Register()
		unzip.Register()
	})
}
