// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/choria-io/fisk"
	"github.com/schollz/progressbar/v3"

	"github.com/choria-io/updater/model"
)

type downloadCommand struct {
	url   string
	json  bool
	quiet bool
}

func registerDownloadCommand(app *fisk.Application) {
	cmd := &downloadCommand{}

	dl := app.Command("download", "Downloads and extracts an archive").Alias("dl").Action(cmd.downloadAction)
	dl.Arg("url", "The http or https URL of the zip archive").Required().StringVar(&cmd.url)
	dl.Flag("json", "Produce one JSON document per event").UnNegatableBoolVar(&cmd.json)
	dl.Flag("quiet", "Do not show download progress").Short('q').UnNegatableBoolVar(&cmd.quiet)
}

func (c *downloadCommand) downloadAction(_ *fisk.ParseContext) error {
	upd, log, err := newUpdater()
	if err != nil {
		return err
	}
	defer upd.Close()

	enc := json.NewEncoder(os.Stdout)

	events, err := upd.DownloadArchive(ctx, c.url)
	if err != nil {
		if c.json {
			enc.Encode(model.Event{Type: model.ErrorEventType, Error: err.Error()})
		}
		return err
	}

	var bar *progressbar.ProgressBar
	if !c.json && !c.quiet {
		bar = progressbar.NewOptions(1000,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetDescription(c.url),
			progressbar.OptionThrottle(80*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}

	var last model.Event
	for event := range events {
		last = event

		if c.json {
			err = enc.Encode(event)
			if err != nil {
				return err
			}
			continue
		}

		if bar != nil && event.Type == model.ProgressEventType {
			bar.Set(int(event.Progress * 1000))
		}
	}

	if bar != nil && last.Type == model.CompleteEventType {
		bar.Finish()
	}

	switch {
	case last.Type == model.CompleteEventType:
		if !c.json {
			fmt.Println(last.Path)
		}

	case model.IsCaveat(last.Err):
		log.Warn("Archive stored with errors", "path", last.Path, "error", last.Err)
		if !c.json {
			fmt.Println(last.Path)
		}

	default:
		return last.Err
	}

	return nil
}
