// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"github.com/choria-io/updater/internal/registry"
	"github.com/choria-io/updater/model"
)

func Register() {
	registry.MustRegister(&factory{})
}

type factory struct{}

func (p *factory) Name() string { return ProviderName }
func (p *factory) New(log model.Logger, _ model.CommandRunner, _ model.ExtractorOptions) (model.Extractor, error) {
	return NewNativeProvider(log)
}

// IsManageable is always true, the native extractor is preferred over external tools
func (p *factory) IsManageable(_ model.ExtractorOptions) (bool, int, error) {
	return true, 1, nil
}
