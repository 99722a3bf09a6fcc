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
)

func Test_Situation_Families(t *testing.T) {
	assert.Equal(t, MATTE_VALUE, InFamily(VALUE_FAMILY, MATTE))
	assert.Equal(t, SYMBOL_REFLECTIVE_SYMBOL, InFamily(SYMBOL_FAMILY, SYMBOL_REFLECTIVE))
	assert.Equal(t, VALUE_REFLECTIVE_LOCAL_STATEMENT, InFamily(LOCAL_STATEMENT_FAMILY, VALUE_REFLECTIVE))
	//
	for s := MATTE_LOCAL_STATEMENT; s <= SYMBOL_REFLECTIVE_SYMBOL; s++ {
		family, ok := s.Family()
		assert.True(t, ok)
		assert.Equal(t, s, InFamily(family, s.Variant()))
	}
	//
	_, ok := ROOT_STATEMENT.Family()
	assert.False(t, ok)
	_, ok = SYMBOL_PATH.Family()
	assert.False(t, ok)
}

func Test_Situation_Lattice(t *testing.T) {
	assert.Equal(t, BASE_STATEMENT, NextScopeStatement(ROOT_STATEMENT))
	assert.Equal(t, GLOBAL_STATEMENT, NextScopeStatement(OBJECT_STATEMENT))
	assert.Equal(t, MATTE_LOCAL_STATEMENT, NextScopeStatement(VALUE_REFLECTIVE_LOCAL_STATEMENT))
	assert.Equal(t, VALUE_REFLECTIVE_VALUE, NextValueReflective(MATTE_VALUE))
	assert.Equal(t, SYMBOL_REFLECTIVE_JUNCTION, NextSymbolReflective(VALUE_REFLECTIVE_JUNCTION))
	assert.Equal(t, MATTE_DESTINATION, NextAssignLvalue(MATTE_LOCAL_STATEMENT))
	assert.Equal(t, VALUE_REFLECTIVE_DESTINATION, NextAssignLvalue(VALUE_REFLECTIVE_LOCAL_STATEMENT))
	//
	assert.Panics(t, func() { NextScopeStatement(MATTE_VALUE) })
	assert.Panics(t, func() { NextValueReflective(SYMBOL_NAME) })
	assert.Panics(t, func() { NextAssignLvalue(MATTE_VALUE) })
}

func Test_Situation_Transitions(t *testing.T) {
	assert.Equal(t, MATTE_SYMBOL, To(MATTE_SYMBOL).Apply(ROOT_STATEMENT))
	assert.Equal(t, MATTE_JUNCTION, Same().Apply(MATTE_JUNCTION))
	assert.Equal(t, BASE_STATEMENT, NextScope().Apply(BASE_STATEMENT))
	assert.Equal(t, InFamily(DESTINATION_FAMILY, MATTE_LOCAL_STATEMENT.Variant()), AssignLvalue().Apply(MATTE_LOCAL_STATEMENT))
	assert.Panics(t, func() { AssignLvalue().Apply(MATTE_VALUE) })
	assert.Equal(t, SYMBOL_PATH, PathOrSymbol().Apply(SYMBOL_PATH))
	assert.Equal(t, MATTE_SYMBOL, PathOrSymbol().Apply(MATTE_JUNCTION))
	assert.Equal(t, Same(), Same())
	assert.NotEqual(t, To(MATTE_VALUE), To(MATTE_SYMBOL))
}

func Test_Situation_Describe(t *testing.T) {
	assert.Equal(t, "a matte value", MATTE_VALUE.Describe())
	assert.Equal(t, "a value-reflective junction", VALUE_REFLECTIVE_JUNCTION.Describe())
	assert.Equal(t, "an attribute", ATTRIBUTE.Describe())
	assert.Equal(t, "a base statement", BASE_STATEMENT.Describe())
	assert.True(t, MATTE_SYMBOL.IsSymbolic())
	assert.True(t, SYMBOL_PATH.IsSymbolic())
	assert.False(t, MATTE_JUNCTION.IsSymbolic())
	assert.True(t, OBJECT_STATEMENT.IsScopeStatement())
}
