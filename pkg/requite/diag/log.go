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
package diag

import (
	"fmt"

	"github.com/consensys/go-requite/pkg/util/source"
)

// Log accumulates the diagnostics reported whilst processing a module.  Each
// stage of the pipeline reports into the same log and carries on after an
// error, so that as many problems as possible surface in one pass.
type Log struct {
	diagnostics []Diagnostic
	errors      uint
}

// Ok checks whether no errors have been reported.
func (p *Log) Ok() bool {
	return p.errors == 0
}

// Errors returns the number of errors reported.
func (p *Log) Errors() uint {
	return p.errors
}

// Len returns the total number of diagnostics reported.
func (p *Log) Len() int {
	return len(p.diagnostics)
}

// Diagnostics returns the diagnostics reported so far, in order.
func (p *Log) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// Add reports a given diagnostic.
func (p *Log) Add(d Diagnostic) {
	if d.Kind == ERROR {
		p.errors++
	}
	//
	p.diagnostics = append(p.diagnostics, d)
}

// Error reports an error over a given span of a source file.
func (p *Log) Error(file *source.File, span source.Span, format string, args ...any) {
	p.Add(Diagnostic{ERROR, file, span, fmt.Sprintf(format, args...), nil})
}

// Warning reports a warning over a given span of a source file.
func (p *Log) Warning(file *source.File, span source.Span, format string, args ...any) {
	p.Add(Diagnostic{WARNING, file, span, fmt.Sprintf(format, args...), nil})
}

// Note reports a note over a given span of a source file.
func (p *Log) Note(file *source.File, span source.Span, format string, args ...any) {
	p.Add(Diagnostic{NOTE, file, span, fmt.Sprintf(format, args...), nil})
}

// Append reports every diagnostic held in another log.
func (p *Log) Append(other *Log) {
	for _, d := range other.diagnostics {
		p.Add(d)
	}
}
