// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/choria-io/fisk"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

type listCommand struct {
	yamlFormat bool
	query      string
}

func registerListCommand(app *fisk.Application) {
	cmd := &listCommand{}

	list := app.Command("list", "Shows stored archives").Alias("ls").Action(cmd.listAction)
	list.Arg("query", "Query to execute").StringVar(&cmd.query)
	list.Flag("yaml", "Output archives in YAML format").UnNegatableBoolVar(&cmd.yamlFormat)
}

func (c *listCommand) listAction(_ *fisk.ParseContext) error {
	upd, _, err := newUpdater()
	if err != nil {
		return err
	}
	defer upd.Close()

	archives, err := upd.List()
	if err != nil {
		return err
	}

	j, err := json.Marshal(archives)
	if err != nil {
		return err
	}

	if c.query != "" {
		res := gjson.GetBytes(j, c.query)
		j = []byte(res.Raw)
	}

	if c.yamlFormat {
		y, err := yaml.JSONToYAML(j)
		if err != nil {
			return err
		}

		fmt.Println(string(y))
		return nil
	}

	out := bytes.NewBuffer([]byte{})
	err = json.Indent(out, j, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(out.String())

	return nil
}
