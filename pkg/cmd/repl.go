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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/module"
	"github.com/consensys/go-requite/pkg/requite/token"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

// HISTORY_FILE is where the history of the repl is kept, relative to the home
// directory of the user.
const HISTORY_FILE = ".requite_history"

// PROMPT is shown when the repl awaits a new expression.
const PROMPT = "requite> "

// CONTINUATION is shown when the repl awaits the rest of an expression.
const CONTINUATION = "       | "

var replCmd = &cobra.Command{
	Use:   "repl [flags]",
	Short: "situate expressions interactively.",
	Long: `Read expressions interactively, printing each as it is situated.  Input
	continues across lines until every grouping is closed.  Enter :quit (or
	end of file) to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
		config := getConfig(cmd, module.SITUATE)
		os.Exit(runRepl(config, getPrinter(cmd)))
	},
}

func runRepl(config module.Config, printer *diag.Printer) int {
	var (
		home, _ = os.UserHomeDir()
		history = filepath.Join(home, HISTORY_FILE)
		ln      = liner.NewLiner()
	)
	//
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	//
	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	//
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	//
	for n := 1; ; n++ {
		text, ok := readInput(ln)
		//
		if !ok {
			fmt.Println()
			return 0
		} else if strings.TrimSpace(text) == "" {
			continue
		} else if strings.TrimSpace(text) == ":quit" {
			return 0
		}
		//
		ln.AppendHistory(strings.ReplaceAll(text, "\n", " "))
		//
		file := source.NewSourceFile(fmt.Sprintf("<repl:%d>", n), []byte(text))
		m := module.Compile(file, config)
		printer.PrintLog(m.Log)
		//
		if err := m.Dump(os.Stdout); err != nil {
			fmt.Println(err)
			return 2
		}
	}
}

// Read lines until every grouping opened has been closed, returning false
// when there is no more input.
func readInput(ln *liner.State) (string, bool) {
	var builder strings.Builder
	//
	for {
		prompt := PROMPT
		if builder.Len() > 0 {
			prompt = CONTINUATION
		}
		//
		line, err := ln.Prompt(prompt)
		if err != nil {
			// End of file, or aborted
			return "", false
		}
		//
		if builder.Len() > 0 {
			builder.WriteByte('\n')
		}
		//
		builder.WriteString(line)
		//
		if !isIncomplete(builder.String()) {
			return builder.String(), true
		}
	}
}

// Check whether some text leaves a grouping open, in which case more input is
// expected.
func isIncomplete(text string) bool {
	var (
		file      = source.NewSourceFile("<repl>", []byte(text))
		tokens, _ = token.Tokenize(file, &diag.Log{})
	)
	//
	for _, tok := range tokens {
		// Middle pieces of an interpolated string are matched via its ends
		if tok.Kind.IsLeftGrouping() && tok.Kind != token.INTERPOLATION_MIDDLE && tok.Match == token.NO_MATCH {
			return true
		}
	}
	//
	return false
}

func init() {
	rootCmd.AddCommand(replCmd)
}
