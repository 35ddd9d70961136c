// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/choria-io/updater/config"
	"github.com/choria-io/updater/metrics"
	"github.com/choria-io/updater/model"
	"github.com/choria-io/updater/updater"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	switch {
	case debug:
		cfg.LogLevel = "debug"
	case info:
		cfg.LogLevel = "info"
	}

	if monitorPort > 0 {
		cfg.MonitorPort = monitorPort
	}
	if documentsDir != "" {
		cfg.DocumentsDirectory = documentsDir
	}
	if scratchDir != "" {
		cfg.ScratchDirectory = scratchDir
	}
	if extractor != "" {
		cfg.Extractor = extractor
	}

	return cfg, cfg.Validate()
}

func newUpdater() (*updater.Updater, model.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, nil, err
	}

	if cfg.MonitorPort > 0 {
		metrics.RegisterMetrics()
		metrics.ListenAndServe(cfg.MonitorPort, logger)
	}

	upd, err := updater.New(logger, cfg.UpdaterOptions()...)
	if err != nil {
		return nil, nil, err
	}

	return upd, logger, nil
}
