// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/choria-io/fisk"
)

type removeCommand struct {
	paths []string
}

func registerRemoveCommand(app *fisk.Application) {
	cmd := &removeCommand{}

	rm := app.Command("remove", "Removes stored archives").Alias("rm").Action(cmd.removeAction)
	rm.Arg("path", "Paths to remove").Required().StringsVar(&cmd.paths)
}

func (c *removeCommand) removeAction(_ *fisk.ParseContext) error {
	upd, _, err := newUpdater()
	if err != nil {
		return err
	}
	defer upd.Close()

	<-upd.RemoveArchives(c.paths)

	fmt.Println("ok")

	return nil
}
