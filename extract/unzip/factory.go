// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package unzip

import (
	"github.com/choria-io/updater/internal/registry"
	iu "github.com/choria-io/updater/internal/util"
	"github.com/choria-io/updater/model"
)

func Register() {
	registry.MustRegister(&factory{})
}

type factory struct{}

func (p *factory) Name() string { return ProviderName }
func (p *factory) New(log model.Logger, runner model.CommandRunner, opts model.ExtractorOptions) (model.Extractor, error) {
	return NewUnzipProvider(log, runner, opts)
}

func (p *factory) IsManageable(opts model.ExtractorOptions) (bool, int, error) {
	command, _, err := parseCommand(opts.Command)
	if err != nil {
		return false, 0, err
	}

	_, found, _ := iu.ExecutableInPath(command)
	if !found {
		return false, 0, nil
	}

	return true, 2, nil
}
