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
package module

import (
	"io"
	"time"

	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/requite/parser"
	"github.com/consensys/go-requite/pkg/requite/situator"
	"github.com/consensys/go-requite/pkg/requite/token"
	"github.com/consensys/go-requite/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Stage identifies how far through the pipeline a module is taken.
type Stage uint8

// TOKENIZE stops after tokenizing.
const TOKENIZE Stage = 0

// PARSE stops after parsing into raw expressions.
const PARSE Stage = 1

// SITUATE runs the whole pipeline.
const SITUATE Stage = 2

func (p Stage) String() string {
	switch p {
	case TOKENIZE:
		return "tokenize"
	case PARSE:
		return "parse"
	case SITUATE:
		return "situate"
	default:
		return "unknown"
	}
}

// Config determines how modules are compiled.
type Config struct {
	// IntermediateForm permits internal and intermediate opcodes to be written
	// directly in source text.
	IntermediateForm bool
	// Stage after which compilation stops.
	Stage Stage
}

// Module holds everything produced by compiling a single source file.
type Module struct {
	File   *source.File
	Tokens []token.Token
	// Tree holding the expressions of this module.  Root is the first
	// top-level expression, or expr.NONE.
	Tree *expr.Tree
	Root expr.Id
	// Diagnostics reported by every stage.
	Log *diag.Log
	// Last stage which was run.
	Stage Stage
}

// Ok checks whether every stage run on this module succeeded.  Later stages
// still run after an earlier stage fails, so that as many problems as possible
// are reported together.
func (p *Module) Ok() bool {
	return p.Log.Ok()
}

// Dump writes the expressions of this module in textual form, one top-level
// expression per line.  Modules which were only tokenized dump their tokens
// instead.
func (p *Module) Dump(out io.Writer) error {
	if p.Stage == TOKENIZE {
		return token.Dump(out, p.File, p.Tokens)
	}
	//
	return expr.Dump(out, p.Tree, p.Root)
}

// Compile a single source file up to the configured stage.  The pipeline for
// one module is strictly sequential: tokens are fully materialised before
// parsing, and expressions before situating.
func Compile(file *source.File, config Config) *Module {
	var (
		start  = time.Now()
		module = &Module{File: file, Tree: expr.NewTree(), Root: expr.NONE, Log: &diag.Log{}}
		fields = log.Fields{"file": file.Filename()}
	)
	//
	module.Tokens, _ = token.Tokenize(file, module.Log)
	log.WithFields(fields).WithField("tokens", len(module.Tokens)).Debug("tokenized")
	//
	if config.Stage >= PARSE {
		module.Stage = PARSE
		module.Root, _ = parser.Parse(file, module.Tokens, module.Tree, module.Log,
			parser.Config{IntermediateForm: config.IntermediateForm})
		log.WithFields(fields).WithField("expressions", module.Tree.Len()).Debug("parsed")
	}
	//
	if config.Stage >= SITUATE {
		module.Stage = SITUATE
		module.Root, _ = situator.Situate(file, module.Tree, module.Root, opcode.ROOT_STATEMENT, module.Log)
	}
	//
	log.WithFields(fields).WithFields(log.Fields{
		"stage":  module.Stage,
		"errors": module.Log.Errors(),
		"time":   time.Since(start),
	}).Debug("compiled")
	//
	return module
}

// CompileAll compiles several source files in parallel, one go-routine per
// file.  Modules are returned in the same order as their files.
func CompileAll(files []source.File, config Config) []*Module {
	var (
		modules = make([]*Module, len(files))
		c       = make(chan compiled, len(files))
	)
	// Dispatch go-routines
	for i := range files {
		go func(index int) {
			c <- compiled{index, Compile(&files[index], config)}
		}(i)
	}
	// Collect results
	for range files {
		res := <-c
		modules[res.index] = res.module
	}
	//
	return modules
}

// Ok checks whether every module in a given set compiled successfully.
func Ok(modules []*Module) bool {
	for _, m := range modules {
		if !m.Ok() {
			return false
		}
	}
	//
	return true
}

type compiled struct {
	index  int
	module *Module
}
