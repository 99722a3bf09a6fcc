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
	"io"
	"strings"

	"github.com/consensys/go-requite/pkg/util/termio"
)

// Printer writes diagnostics in a human-readable form, showing the enclosing
// source line with the offending span highlighted.
type Printer struct {
	out    io.Writer
	colour bool
}

// NewPrinter constructs a printer writing to a given output.  When colour is
// set, ANSI escapes are used to highlight the severity and location.
func NewPrinter(out io.Writer, colour bool) *Printer {
	return &Printer{out, colour}
}

// PrintLog prints every diagnostic in a given log.
func (p *Printer) PrintLog(log *Log) {
	for i := range log.diagnostics {
		p.Print(&log.diagnostics[i])
	}
}

// Print a single diagnostic.
func (p *Printer) Print(d *Diagnostic) {
	var (
		bold  = termio.NewAnsiEscape().Bold()
		kind  = bold.FgColour(kindColour(d.Kind)).Wrap(d.Kind.String(), p.colour)
		caret = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
	)
	//
	if !d.HasLocation() {
		fmt.Fprintf(p.out, "%s: %s\n", kind, d.Message)
		return
	}
	//
	var (
		line, col = d.Position()
		location  = fmt.Sprintf("%s:%d:%d:", d.File.Filename(), line, col)
		enclosing = d.File.FindFirstEnclosingLine(d.Span)
		text      = enclosing.String()
		offset    = min(d.Span.Start()-enclosing.Start(), len(text))
		// Highlight no further than the end of the enclosing line.
		width = max(1, min(d.Span.End(), enclosing.Start()+len(text))-d.Span.Start())
	)
	// Print error + location
	fmt.Fprintf(p.out, "%s %s: %s\n", bold.Wrap(location, p.colour), kind, d.Message)
	// Print line
	fmt.Fprintln(p.out, text)
	// Print indent, preserving tabs so the highlight lines up.
	fmt.Fprint(p.out, indentation(text[:offset]))
	// Print highlight
	fmt.Fprintln(p.out, caret.Wrap(strings.Repeat("^", width), p.colour))
	//
	for _, fix := range d.FixIts {
		fmt.Fprintf(p.out, "%s replace with \"%s\"\n", bold.Wrap("fix-it:", p.colour), fix.Replacement)
	}
}

func indentation(prefix string) string {
	var builder strings.Builder
	//
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	//
	return builder.String()
}

func kindColour(kind Kind) uint {
	switch kind {
	case ERROR:
		return termio.TERM_RED
	case WARNING:
		return termio.TERM_YELLOW
	default:
		return termio.TERM_CYAN
	}
}
