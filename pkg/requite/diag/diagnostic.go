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

// Kind classifies the severity of a diagnostic.
type Kind uint8

// ERROR marks a diagnostic which causes the module to fail.
const ERROR Kind = 0

// WARNING marks a diagnostic which is reported but does not cause failure.
const WARNING Kind = 1

// NOTE marks supplementary information, typically attached to a preceding
// error or warning.
const NOTE Kind = 2

func (p Kind) String() string {
	switch p {
	case ERROR:
		return "error"
	case WARNING:
		return "warning"
	case NOTE:
		return "note"
	default:
		panic("unreachable")
	}
}

// FixIt suggests replacing a given span of the source file with some text.
type FixIt struct {
	Span        source.Span
	Replacement string
}

// Diagnostic is a single message reported against a module.  A diagnostic
// without a file carries no source location.
type Diagnostic struct {
	Kind    Kind
	File    *source.File
	Span    source.Span
	Message string
	FixIts  []FixIt
}

// HasLocation checks whether this diagnostic is attached to a location in some
// source file.
func (p *Diagnostic) HasLocation() bool {
	return p.File != nil
}

// Position returns the line and column (both counting from 1) where this
// diagnostic begins.
func (p *Diagnostic) Position() (int, int) {
	if p.File == nil {
		return 0, 0
	}
	//
	return p.File.Position(p.Span.Start())
}

// Error implements the error interface.
func (p *Diagnostic) Error() string {
	if p.File == nil {
		return fmt.Sprintf("%s: %s", p.Kind, p.Message)
	}
	//
	line, col := p.Position()
	//
	return fmt.Sprintf("%s:%d:%d: %s: %s", p.File.Filename(), line, col, p.Kind, p.Message)
}

// WithFixIt attaches a suggested replacement to this diagnostic.
func (p Diagnostic) WithFixIt(span source.Span, replacement string) Diagnostic {
	p.FixIts = append(p.FixIts, FixIt{span, replacement})
	return p
}
