// Copyright 2026 valicast Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/valicast/valicast/config"
	"github.com/valicast/valicast/split"
)

var methodsCommand = &cobra.Command{
	Use:   "methods",
	Short: "List validation schemes and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Method", "Description", "Required", "Optional", "Random"})
		for _, info := range split.Methods() {
			random := ""
			if info.Random {
				random = "yes"
			}
			if err := table.Append([]string{
				string(info.Method),
				info.Description,
				joinParams(info.Required),
				joinParams(info.Optional),
				random,
			}); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var schemaCommand = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of configuration files",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	},
}

func init() {
	rootCommand.AddCommand(methodsCommand)
	rootCommand.AddCommand(schemaCommand)
}

func joinParams(params []split.ParamName) string {
	return strings.Join(lo.Map(params, func(p split.ParamName, _ int) string { return string(p) }), ", ")
}
