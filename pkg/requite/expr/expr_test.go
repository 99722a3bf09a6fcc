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
	"bytes"
	"math/big"
	"testing"

	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nowhere = source.NewSpan(0, 0)

func Test_Tree_Branches(t *testing.T) {
	tree := NewTree()
	add := tree.New(opcode.ADD, source.NewSpan(0, 5))
	a := tree.NewText(opcode.IDENTIFIER, source.NewSpan(0, 1), "a")
	b := tree.NewText(opcode.IDENTIFIER, source.NewSpan(4, 5), "b")
	//
	tree.AppendBranch(add, b)
	tree.PrependBranch(add, a)
	//
	assert.Equal(t, []Id{a, b}, tree.Branches(add))
	assert.Equal(t, uint(2), tree.BranchCount(add))
	assert.Equal(t, NONE, tree.Next(b))
	assert.Equal(t, "[add a b]", String(tree, add))
}

func Test_Tree_SetOpcode(t *testing.T) {
	tree := NewTree()
	id := tree.New(opcode.SIZE, nowhere)
	//
	tree.SetOpcode(id, opcode.SIZE_OF_VALUE)
	assert.Equal(t, opcode.SIZE_OF_VALUE, tree.Opcode(id))
	assert.Nil(t, tree.Data(id))
	//
	tree.SetOpcode(id, opcode.SCOPE)
	assert.Equal(t, opcode.SCOPE_DATA, tree.Data(id).Kind())
	//
	text := tree.NewText(opcode.IDENTIFIER, nowhere, "x")
	assert.Panics(t, func() { tree.SetOpcode(text, opcode.TRUE) })
	// Same kind of data is retained
	tree.SetOpcode(text, opcode.REAL_LITERAL)
	assert.Equal(t, "x", tree.Text(text))
}

func Test_Tree_Data(t *testing.T) {
	tree := NewTree()
	fn := tree.New(opcode.FUNCTION, nowhere)
	//
	assert.Equal(t, opcode.PROCEDURE_DATA, tree.Data(fn).Kind())
	tree.SetEntity(fn, "foo")
	assert.Equal(t, "<procedure foo>", tree.Data(fn).String())
	//
	add := tree.New(opcode.ADD, nowhere)
	assert.Panics(t, func() { tree.SetEntity(add, 1) })
	assert.Panics(t, func() { tree.Text(add) })
	assert.Panics(t, func() { tree.NewText(opcode.ADD, nowhere, "x") })
	assert.Panics(t, func() { tree.NewInteger(opcode.IDENTIFIER, nowhere, big.NewInt(1)) })
}

func Test_Tree_Clone(t *testing.T) {
	tree := NewTree()
	neg := tree.New(opcode.NEGATE, nowhere)
	one := tree.NewInteger(opcode.INTEGER_LITERAL, nowhere, big.NewInt(1))
	tree.AppendBranch(neg, one)
	tree.SetNext(neg, one)
	//
	clone := tree.Clone(neg)
	require.NotEqual(t, neg, clone)
	assert.Equal(t, NONE, tree.Next(clone))
	assert.Equal(t, String(tree, neg), String(tree, clone))
	// Deep copy
	tree.Integer(tree.Branch(clone)).SetInt64(2)
	assert.Equal(t, "[negate 1]", String(tree, neg))
	assert.Equal(t, "[negate 2]", String(tree, clone))
}

func Test_Tree_Delete(t *testing.T) {
	tree := NewTree()
	id := tree.New(opcode.TRIP, nowhere)
	tree.AppendBranch(id, tree.New(opcode.TRUE, nowhere))
	//
	tree.Delete(id)
	assert.True(t, tree.IsDeleted(id))
	assert.Equal(t, NONE, tree.Branch(id))
	assert.Equal(t, 2, tree.Len())
}

func Test_Dump_Literals(t *testing.T) {
	tree := NewTree()
	ids := []Id{
		tree.NewText(opcode.IDENTIFIER, nowhere, "foo"),
		tree.NewText(opcode.IDENTIFIER, nowhere, "two words"),
		tree.NewText(opcode.STRING_LITERAL, nowhere, "a\n\"b\"\x01"),
		tree.NewText(opcode.CODEUNIT_LITERAL, nowhere, "x"),
		tree.NewInteger(opcode.INTEGER_LITERAL, nowhere, big.NewInt(255)),
		tree.NewText(opcode.REAL_LITERAL, nowhere, "3.5"),
		tree.New(opcode.TRUE, nowhere),
	}
	//
	var buffer bytes.Buffer
	//
	require.NoError(t, Dump(&buffer, tree, tree.Link(ids)))
	assert.Equal(t, "foo\n\\\"two words\"\n\"a\\n\\\"b\\\"\\01\\\"\n'x'\n255\n3.5\n[true]\n", buffer.String())
}

func Test_Dump_IsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("_x1"))
	assert.True(t, IsIdentifier("caf\xc3\xa9"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("a-b"))
}
