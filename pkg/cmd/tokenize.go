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
	"github.com/consensys/go-requite/pkg/requite/token"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] source_file(s)",
	Short: "print the tokens of one or more source files.",
	Long: `Split each source file into tokens and print them, either as a
	human-readable listing or in CSV form.`,
	Run: func(cmd *cobra.Command, args []string) {
		csv := GetFlag(cmd, "csv")
		//
		compileAndPrint(cmd, args, module.TOKENIZE, func(m *module.Module) error {
			if csv {
				return token.WriteCsv(os.Stdout, m.File, m.Tokens)
			}
			//
			return m.Dump(os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().Bool("csv", false, "print tokens in CSV form")
}
