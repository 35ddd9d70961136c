// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/choria-io/fisk"
)

var (
	ctx          context.Context
	debug        bool
	info         bool
	configFile   string
	monitorPort  int
	documentsDir string
	scratchDir   string
	extractor    string
	Version      = "development"
)

func main() {
	app := fisk.New("updater", "Choria Archive Updater")
	app.Version(Version)
	app.Author("https://choria.io")

	app.Flag("config", "Configuration file to use").ExistingFileVar(&configFile)
	app.Flag("debug", "Enable debug logging").UnNegatableBoolVar(&debug)
	app.Flag("info", "Enable info logging").UnNegatableBoolVar(&info)
	app.Flag("monitor-port", "Port to expose Prometheus metrics on").PlaceHolder("PORT").IntVar(&monitorPort)
	app.Flag("documents", "Directory to store archives below").PlaceHolder("DIR").StringVar(&documentsDir)
	app.Flag("scratch", "Directory for downloads and extraction in progress").PlaceHolder("DIR").StringVar(&scratchDir)
	app.Flag("extractor", "Extractor to use").EnumVar(&extractor, "zip", "unzip")

	registerDownloadCommand(app)
	registerRemoveCommand(app)
	registerListCommand(app)

	ctx, _ = signal.NotifyContext(context.Background(), os.Interrupt)

	app.MustParseWithUsage(os.Args[1:])
}
