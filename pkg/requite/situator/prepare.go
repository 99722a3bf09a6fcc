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
package situator

import (
	"fmt"

	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/opcode"
)

// A variable declared by name alone has an inferred type, thus "[local x 1]"
// becomes "[local [bind_symbol x [inferenced_type]] 1]".
func (p *Situator) prepareDeclaration(id expr.Id) {
	branches := p.tree.Branches(id)
	//
	if len(branches) == 0 || p.tree.Opcode(branches[0]) != opcode.IDENTIFIER {
		return
	}
	//
	var (
		name = branches[0]
		span = p.tree.Span(name)
		bind = p.tree.New(opcode.BIND_SYMBOL, span)
	)
	//
	p.tree.SetBranches(bind, []expr.Id{name, p.tree.New(opcode.INFERENCED_TYPE, span.Collapse())})
	branches[0] = bind
	p.tree.SetBranches(id, branches)
}

// A property without an initialiser has no default value.
func (p *Situator) prepareProperty(id expr.Id) {
	p.prepareDeclaration(id)
	//
	if p.tree.BranchCount(id) == 1 {
		p.tree.AppendBranch(id, p.tree.New(opcode.NO_DEFAULT_VALUE, p.tree.Span(id).Collapse()))
	}
}

// An integer type without a width is as wide as an address.
func (p *Situator) prepareIntegerType(id expr.Id) {
	if p.tree.BranchCount(id) == 0 {
		p.tree.AppendBranch(id, p.tree.New(opcode.ADDRESS_DEPTH, p.tree.Span(id).Collapse()))
	}
}

// An array type without a count has its count inferred.
func (p *Situator) prepareArray(id expr.Id) {
	if p.tree.BranchCount(id) == 1 {
		p.tree.AppendBranch(id, p.tree.New(opcode.INFERENCED_COUNT, p.tree.Span(id).Collapse()))
	}
}

// An assertion without a message reports its condition and where it was made.
func (p *Situator) prepareAssert(id expr.Id) {
	if p.tree.BranchCount(id) != 1 {
		return
	}
	//
	var (
		condition    = p.tree.Branch(id)
		span         = p.tree.Span(condition)
		line, column = p.srcfile.Position(span.Start())
		message      = fmt.Sprintf("%s at %s:%d:%d", p.srcfile.Text(span), p.srcfile.Filename(), line, column)
	)
	//
	p.tree.AppendBranch(id, p.tree.NewText(opcode.STRING_LITERAL, span.Collapse(), message))
}
