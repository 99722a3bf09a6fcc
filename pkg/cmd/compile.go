// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"os"

	"github.com/consensys/go-requite/pkg/requite/module"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] source_file(s)",
	Short: "print the raw expressions of one or more source files.",
	Long: `Parse each source file into raw expressions, which have not been
	situated, and print them one top-level expression per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		compileAndPrint(cmd, args, module.PARSE, printModule)
	},
}

var situateCmd = &cobra.Command{
	Use:   "situate [flags] source_file(s)",
	Short: "print the situated expressions of one or more source files.",
	Long: `Run the whole pipeline on each source file, and print the situated
	expressions one top-level expression per line.  The output can be read
	back using --intermediate-form.`,
	Run: func(cmd *cobra.Command, args []string) {
		compileAndPrint(cmd, args, module.SITUATE, printModule)
	},
}

func printModule(m *module.Module) error {
	return m.Dump(os.Stdout)
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(situateCmd)
}
