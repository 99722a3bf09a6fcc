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
package expr

import (
	"fmt"
	"math"
	"math/big"

	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/util/source"
)

// Id identifies an expression within a tree.
type Id uint32

// NONE marks the absence of an expression (e.g. the end of a sibling chain).
const NONE Id = math.MaxUint32

// Node is a single expression.  Expressions form a first-child / next-sibling
// tree with no parent links.
type Node struct {
	opcode opcode.Opcode
	// next sibling in the enclosing chain.
	next Id
	// first branch.
	branch Id
	span   source.Span
	data   Data
	// deleted nodes remain in the arena, but are never reachable.
	deleted bool
}

// Tree is an arena of expressions.  Expressions are never freed individually,
// rather they are released together with the tree.  This suits the pipeline
// where each module's tree is confined to a single goroutine.
type Tree struct {
	nodes []Node
}

// NewTree constructs an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of expressions ever allocated in this tree
// (including deleted ones).
func (p *Tree) Len() int {
	return len(p.nodes)
}

// New allocates a new expression with a given opcode and no branches.  Its
// data is initialised to the zero value for its opcode.
func (p *Tree) New(op opcode.Opcode, span source.Span) Id {
	id := Id(len(p.nodes))
	p.nodes = append(p.nodes, Node{op, NONE, NONE, span, zeroData(op.Data()), false})
	//
	return id
}

// NewText allocates a new expression holding some text.
func (p *Tree) NewText(op opcode.Opcode, span source.Span, text string) Id {
	if op.Data() != opcode.TEXT {
		panic(fmt.Sprintf("opcode \"%s\" does not hold text", op))
	}
	//
	id := p.New(op, span)
	p.nodes[id].data = Text{text}
	//
	return id
}

// NewInteger allocates a new expression holding an integer value.
func (p *Tree) NewInteger(op opcode.Opcode, span source.Span, value *big.Int) Id {
	if op.Data() != opcode.INTEGER {
		panic(fmt.Sprintf("opcode \"%s\" does not hold an integer", op))
	}
	//
	id := p.New(op, span)
	p.nodes[id].data = Integer{value}
	//
	return id
}

// Opcode returns the opcode of a given expression.
func (p *Tree) Opcode(id Id) opcode.Opcode {
	return p.nodes[id].opcode
}

// SetOpcode changes the opcode of a given expression in place.  Data is
// retained when the new opcode holds the same kind of data, and reset
// otherwise.  Discarding text or an integer indicates a broken rewrite, and
// panics.
func (p *Tree) SetOpcode(id Id, op opcode.Opcode) {
	node := &p.nodes[id]
	//
	if node.opcode.Data() != op.Data() {
		switch node.opcode.Data() {
		case opcode.TEXT, opcode.INTEGER:
			panic(fmt.Sprintf("cannot change opcode \"%s\" into \"%s\"", node.opcode, op))
		}
		//
		node.data = zeroData(op.Data())
	}
	//
	node.opcode = op
}

// Span returns the source span of a given expression, which is empty for
// synthesized expressions.
func (p *Tree) Span(id Id) source.Span {
	return p.nodes[id].span
}

// SetSpan updates the source span of a given expression.
func (p *Tree) SetSpan(id Id, span source.Span) {
	p.nodes[id].span = span
}

// Data returns the data of a given expression (or nil).
func (p *Tree) Data(id Id) Data {
	return p.nodes[id].data
}

// Text returns the text held by a given expression.
func (p *Tree) Text(id Id) string {
	if text, ok := p.nodes[id].data.(Text); ok {
		return text.Value
	}
	//
	panic(fmt.Sprintf("opcode \"%s\" does not hold text", p.nodes[id].opcode))
}

// Integer returns the value held by a given expression.
func (p *Tree) Integer(id Id) *big.Int {
	if integer, ok := p.nodes[id].data.(Integer); ok {
		return integer.Value
	}
	//
	panic(fmt.Sprintf("opcode \"%s\" does not hold an integer", p.nodes[id].opcode))
}

// SetEntity installs a reference to the entity declared by a given expression.
func (p *Tree) SetEntity(id Id, ref any) {
	entity, ok := p.nodes[id].data.(Entity)
	if !ok {
		panic(fmt.Sprintf("opcode \"%s\" does not refer to an entity", p.nodes[id].opcode))
	}
	//
	entity.Ref = ref
	p.nodes[id].data = entity
}

// Next returns the next sibling of a given expression.
func (p *Tree) Next(id Id) Id {
	return p.nodes[id].next
}

// SetNext updates the next sibling of a given expression.
func (p *Tree) SetNext(id Id, next Id) {
	p.nodes[id].next = next
}

// Branch returns the first branch of a given expression.
func (p *Tree) Branch(id Id) Id {
	return p.nodes[id].branch
}

// SetBranch updates the first branch of a given expression.
func (p *Tree) SetBranch(id Id, branch Id) {
	p.nodes[id].branch = branch
}

// Chain returns the expressions in a sibling chain, starting from a given
// expression.
func (p *Tree) Chain(first Id) []Id {
	var ids []Id
	//
	for id := first; id != NONE; id = p.nodes[id].next {
		ids = append(ids, id)
	}
	//
	return ids
}

// Branches returns the branches of a given expression in order.
func (p *Tree) Branches(id Id) []Id {
	return p.Chain(p.nodes[id].branch)
}

// BranchCount returns the number of branches of a given expression.
func (p *Tree) BranchCount(id Id) uint {
	var n uint
	//
	for b := p.nodes[id].branch; b != NONE; b = p.nodes[b].next {
		n++
	}
	//
	return n
}

// SetBranches replaces the branches of a given expression, relinking them
// into a chain in the given order.
func (p *Tree) SetBranches(id Id, branches []Id) {
	p.nodes[id].branch = p.Link(branches)
}

// AppendBranch adds a given expression as the last branch of another.
func (p *Tree) AppendBranch(id Id, branch Id) {
	p.nodes[branch].next = NONE
	//
	if p.nodes[id].branch == NONE {
		p.nodes[id].branch = branch
		return
	}
	//
	last := p.nodes[id].branch
	for p.nodes[last].next != NONE {
		last = p.nodes[last].next
	}
	//
	p.nodes[last].next = branch
}

// PrependBranch adds a given expression as the first branch of another.
func (p *Tree) PrependBranch(id Id, branch Id) {
	p.nodes[branch].next = p.nodes[id].branch
	p.nodes[id].branch = branch
}

// Clone makes a deep copy of a given expression and its branches (but not its
// siblings).  The copy is given the same spans as the original.
func (p *Tree) Clone(id Id) Id {
	node := p.nodes[id]
	dup := p.New(node.opcode, node.span)
	// Integers are shared by pointer, so must be copied
	switch data := node.data.(type) {
	case Integer:
		p.nodes[dup].data = Integer{new(big.Int).Set(data.Value)}
	default:
		p.nodes[dup].data = data
	}
	//
	var branches []Id
	for _, b := range p.Branches(id) {
		branches = append(branches, p.Clone(b))
	}
	//
	p.SetBranches(dup, branches)
	//
	return dup
}

// Delete marks a given expression (but not its branches) as deleted.  This is
// used when a rewrite discards an expression whose branches are re-homed
// elsewhere.
func (p *Tree) Delete(id Id) {
	p.nodes[id].deleted = true
	p.nodes[id].next = NONE
	p.nodes[id].branch = NONE
}

// IsDeleted checks whether a given expression has been deleted.
func (p *Tree) IsDeleted(id Id) bool {
	return p.nodes[id].deleted
}

// Link chains a given sequence of expressions together as siblings, returning
// the first (or NONE).
func (p *Tree) Link(ids []Id) Id {
	if len(ids) == 0 {
		return NONE
	}
	//
	for i := 0; i+1 < len(ids); i++ {
		p.nodes[ids[i]].next = ids[i+1]
	}
	//
	p.nodes[ids[len(ids)-1]].next = NONE
	//
	return ids[0]
}
