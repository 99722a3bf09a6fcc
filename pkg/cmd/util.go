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

	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/module"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/consensys/go-requite/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure logging and construct the compilation configuration requested by
// the flags of a given command.
func getConfig(cmd *cobra.Command, stage module.Stage) module.Config {
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	return module.Config{
		IntermediateForm: GetFlag(cmd, "intermediate-form"),
		Stage:            stage,
	}
}

// Read the given source files, or exit if any cannot be read.
func readSourceFiles(args []string) []source.File {
	files, err := source.ReadFiles(args...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Debugf("read %d source file(s)", len(files))
	//
	return files
}

// Construct a printer for diagnostics, which colours its output only when
// printing to a terminal.
func getPrinter(cmd *cobra.Command) *diag.Printer {
	colour := GetFlag(cmd, "colour") && termio.IsTerminal(os.Stdout)
	return diag.NewPrinter(os.Stdout, colour)
}

// Compile every file given on the command line up to some stage, print each
// module using a given function and then exit with an appropriate status.
func compileAndPrint(cmd *cobra.Command, args []string, stage module.Stage, show func(*module.Module) error) {
	if len(args) < 1 {
		fmt.Println(cmd.UsageString())
		os.Exit(1)
	}
	//
	var (
		config  = getConfig(cmd, stage)
		files   = readSourceFiles(args)
		modules = module.CompileAll(files, config)
		printer = getPrinter(cmd)
	)
	//
	for _, m := range modules {
		printer.PrintLog(m.Log)
		//
		if err := show(m); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if !module.Ok(modules) {
		os.Exit(1)
	}
}
