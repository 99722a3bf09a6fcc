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
package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Opcode_Lookup(t *testing.T) {
	for op := Opcode(0); op < NUM_OPCODES; op++ {
		found, ok := Lookup(op.Name())
		require.True(t, ok, op.Name())
		assert.Equal(t, op, found)
	}
	//
	_, ok := Lookup("no_such_opcode")
	assert.False(t, ok)
}

func Test_Opcode_InternalNames(t *testing.T) {
	for op := Opcode(0); op < NUM_OPCODES; op++ {
		assert.Equal(t, op.IsInternal(), op.Name()[0] == '_', op.Name())
		assert.False(t, op.IsInternal() && op.IsIntermediate(), op.Name())
	}
}

func Test_Opcode_Consistent(t *testing.T) {
	for op := Opcode(0); op < NUM_OPCODES; op++ {
		assert.NoError(t, check(op))
	}
}

func Test_Opcode_Legality(t *testing.T) {
	assert.True(t, FUNCTION.CanBe(ROOT_STATEMENT))
	assert.True(t, FUNCTION.CanBe(GLOBAL_STATEMENT))
	assert.False(t, FUNCTION.CanBe(MATTE_VALUE))
	assert.True(t, ADD.CanBe(MATTE_VALUE))
	assert.True(t, ADD.CanBe(MATTE_JUNCTION))
	assert.False(t, ADD.CanBe(VALUE_REFLECTIVE_VALUE))
	assert.True(t, SIZE.CanBe(VALUE_REFLECTIVE_VALUE))
	assert.False(t, SIZE.CanBe(MATTE_VALUE))
	assert.True(t, IMPORT.CanBe(ROOT_STATEMENT))
	assert.False(t, IMPORT.CanBe(BASE_STATEMENT))
	assert.True(t, MEMBER_SYMBOL_OF_SYMBOL.CanBe(SYMBOL_PATH))
	//
	for s := Situation(0); s < NUM_SITUATIONS; s++ {
		assert.True(t, ERROR.CanBe(s))
	}
}

func Test_Opcode_IdentifierSituations(t *testing.T) {
	for s := MATTE_LOCAL_STATEMENT; s <= SYMBOL_REFLECTIVE_SYMBOL; s++ {
		assert.True(t, IDENTIFIER.CanBe(s), s.String())
	}
	//
	assert.True(t, IDENTIFIER.CanBe(SYMBOL_NAME))
	assert.True(t, IDENTIFIER.CanBe(CAPTURE))
	assert.False(t, IDENTIFIER.CanBe(ROOT_STATEMENT))
	assert.False(t, IDENTIFIER.CanBe(ATTRIBUTE))
}

func Test_Opcode_Resolve(t *testing.T) {
	op, ok := CONDUIT.Resolve(MATTE_SYMBOL)
	assert.True(t, ok)
	assert.Equal(t, SYMBOL_CONDUIT, op)
	//
	op, ok = BIND_VALUE_OR_DEFAULT_VALUE.Resolve(POSITIONAL_FIELD)
	assert.True(t, ok)
	assert.Equal(t, POSITIONAL_FIELD_DECLARATION, op)
	//
	op, ok = INFERENCED_TYPE_OR_INDETERMINATE.Resolve(MATTE_DESTINATION)
	assert.True(t, ok)
	assert.Equal(t, IGNORE, op)
	//
	_, ok = TRIP.Resolve(MATTE_VALUE)
	assert.False(t, ok)
}

func Test_Opcode_Universalize(t *testing.T) {
	op, ok := SIZE.Universalize(false)
	assert.True(t, ok)
	assert.Equal(t, SIZE_OF_VALUE, op)
	//
	op, ok = SIZE.Universalize(true)
	assert.True(t, ok)
	assert.Equal(t, SIZE_OF_TYPE, op)
	//
	_, ok = TYPE.Universalize(true)
	assert.False(t, ok)
	//
	_, ok = ADD.Universalize(false)
	assert.False(t, ok)
}

func Test_Opcode_Arity(t *testing.T) {
	n, bounded := SELECT.Arity().Max()
	assert.True(t, bounded)
	assert.Equal(t, uint(3), n)
	assert.Equal(t, uint(3), SELECT.Arity().Minimum())
	//
	_, bounded = ADD.Arity().Max()
	assert.False(t, bounded)
	assert.Equal(t, uint(2), ADD.Arity().Minimum())
	//
	n, bounded = RETURN.Arity().Max()
	assert.True(t, bounded)
	assert.Equal(t, uint(1), n)
	assert.Equal(t, uint(0), RETURN.Arity().Minimum())
	//
	assert.Equal(t, BINARY, SWAP.Arity().Handler)
}

func Test_Opcode_Flags(t *testing.T) {
	assert.True(t, ADD.IsConverging())
	assert.False(t, SUBTRACT.IsConverging())
	assert.True(t, LOCAL.IsPrepared())
	assert.True(t, TRIP.IsSituational())
	assert.True(t, TRIP.IsInternal())
	assert.True(t, MANGLED_NAME.IsSituational())
	assert.False(t, MANGLED_NAME.IsInternal())
	assert.True(t, TUPLE_VALUE.IsIntermediate())
	assert.Equal(t, TEXT, IDENTIFIER.Data())
	assert.Equal(t, INTEGER, INTEGER_LITERAL.Data())
	assert.True(t, FUNCTION.Data().IsEntity())
	assert.False(t, IDENTIFIER.Data().IsEntity())
}
