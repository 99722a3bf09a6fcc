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

import "strings"

// Situation identifies the syntactic position an expression occupies, such as
// a statement within a function body or the type of a parameter.  Whether an
// opcode is legal, and what it means, depends upon its situation.
type Situation uint8

// ROOT_STATEMENT is a statement at the top level of a module.
const ROOT_STATEMENT Situation = 0

// BASE_STATEMENT is a statement within a namespace of the root module.
const BASE_STATEMENT Situation = 1

// GLOBAL_STATEMENT is a statement within any other global scope.
const GLOBAL_STATEMENT Situation = 2

// OBJECT_STATEMENT is a statement within the body of an object.
const OBJECT_STATEMENT Situation = 3

// MATTE_LOCAL_STATEMENT is a statement within a function body.
const MATTE_LOCAL_STATEMENT Situation = 4

// VALUE_REFLECTIVE_LOCAL_STATEMENT is a statement applied to a value through
// reflection, as in "x.destroy".
const VALUE_REFLECTIVE_LOCAL_STATEMENT Situation = 5

// SYMBOL_REFLECTIVE_LOCAL_STATEMENT is a statement applied to a symbol through
// reflection.
const SYMBOL_REFLECTIVE_LOCAL_STATEMENT Situation = 6

// MATTE_DESTINATION is something assigned to.
const MATTE_DESTINATION Situation = 7

// VALUE_REFLECTIVE_DESTINATION is a destination reached by reflecting on a
// value.
const VALUE_REFLECTIVE_DESTINATION Situation = 8

// SYMBOL_REFLECTIVE_DESTINATION is a destination reached by reflecting on a
// symbol.
const SYMBOL_REFLECTIVE_DESTINATION Situation = 9

// MATTE_VALUE is an ordinary value.
const MATTE_VALUE Situation = 10

// VALUE_REFLECTIVE_VALUE is a value obtained by reflecting on a value, as in
// "x.size".
const VALUE_REFLECTIVE_VALUE Situation = 11

// SYMBOL_REFLECTIVE_VALUE is a value obtained by reflecting on a symbol, as in
// "T..size".
const SYMBOL_REFLECTIVE_VALUE Situation = 12

// MATTE_JUNCTION accepts either a value or a symbol.
const MATTE_JUNCTION Situation = 13

// VALUE_REFLECTIVE_JUNCTION is a junction obtained by reflecting on a value.
const VALUE_REFLECTIVE_JUNCTION Situation = 14

// SYMBOL_REFLECTIVE_JUNCTION is a junction obtained by reflecting on a symbol.
const SYMBOL_REFLECTIVE_JUNCTION Situation = 15

// MATTE_SYMBOL is an ordinary symbol, typically a type.
const MATTE_SYMBOL Situation = 16

// VALUE_REFLECTIVE_SYMBOL is a symbol obtained by reflecting on a value, as in
// "x.type".
const VALUE_REFLECTIVE_SYMBOL Situation = 17

// SYMBOL_REFLECTIVE_SYMBOL is a symbol obtained by reflecting on a symbol.
const SYMBOL_REFLECTIVE_SYMBOL Situation = 18

// VALUE_BINDING binds a name to a value, as in a named argument.
const VALUE_BINDING Situation = 19

// SYMBOL_BINDING binds a name to a symbol, as in a variable declaration.
const SYMBOL_BINDING Situation = 20

// NAMED_FIELD is an item of a named parameter list.
const NAMED_FIELD Situation = 21

// POSITIONAL_FIELD is an item of a positional parameter list.
const POSITIONAL_FIELD Situation = 22

// SYMBOL_NAME is the name of something being declared or accessed.
const SYMBOL_NAME Situation = 23

// SYMBOL_PATH is a (possibly qualified) path to a symbol, as in an import.
const SYMBOL_PATH Situation = 24

// SWITCH_CASE is a case of a switch statement.
const SWITCH_CASE Situation = 25

// TEMPLATE_PARAMETER is a parameter of a template.
const TEMPLATE_PARAMETER Situation = 26

// CAPTURE is an item captured by an anonymous function.
const CAPTURE Situation = 27

// ATTRIBUTE is an attribute ascribed to a declaration.
const ATTRIBUTE Situation = 28

// NUM_SITUATIONS is the number of distinct situations.
const NUM_SITUATIONS = 29

var situationNames = [NUM_SITUATIONS]string{
	"ROOT_STATEMENT", "BASE_STATEMENT", "GLOBAL_STATEMENT", "OBJECT_STATEMENT",
	"MATTE_LOCAL_STATEMENT", "VALUE_REFLECTIVE_LOCAL_STATEMENT", "SYMBOL_REFLECTIVE_LOCAL_STATEMENT",
	"MATTE_DESTINATION", "VALUE_REFLECTIVE_DESTINATION", "SYMBOL_REFLECTIVE_DESTINATION",
	"MATTE_VALUE", "VALUE_REFLECTIVE_VALUE", "SYMBOL_REFLECTIVE_VALUE",
	"MATTE_JUNCTION", "VALUE_REFLECTIVE_JUNCTION", "SYMBOL_REFLECTIVE_JUNCTION",
	"MATTE_SYMBOL", "VALUE_REFLECTIVE_SYMBOL", "SYMBOL_REFLECTIVE_SYMBOL",
	"VALUE_BINDING", "SYMBOL_BINDING", "NAMED_FIELD", "POSITIONAL_FIELD", "SYMBOL_NAME", "SYMBOL_PATH",
	"SWITCH_CASE", "TEMPLATE_PARAMETER", "CAPTURE", "ATTRIBUTE",
}

func (p Situation) String() string {
	return situationNames[p]
}

// Describe returns a human-readable description of this situation, as used in
// diagnostics (e.g. "a base statement").
func (p Situation) Describe() string {
	words := strings.ToLower(strings.ReplaceAll(situationNames[p], "_", " "))
	words = strings.ReplaceAll(words, "value reflective", "value-reflective")
	words = strings.ReplaceAll(words, "symbol reflective", "symbol-reflective")
	//
	switch words[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + words
	default:
		return "a " + words
	}
}

// Family groups the local statement, destination, value, junction and symbol
// situations, each of which comes in three variants.
type Family uint8

// LOCAL_STATEMENT_FAMILY holds the local statement situations.
const LOCAL_STATEMENT_FAMILY Family = 0

// DESTINATION_FAMILY holds the destination situations.
const DESTINATION_FAMILY Family = 1

// VALUE_FAMILY holds the value situations.
const VALUE_FAMILY Family = 2

// JUNCTION_FAMILY holds the junction situations.
const JUNCTION_FAMILY Family = 3

// SYMBOL_FAMILY holds the symbol situations.
const SYMBOL_FAMILY Family = 4

// Variant distinguishes the plain (matte) situation of a family from those
// reached through reflection.
type Variant uint8

// MATTE is the plain variant.
const MATTE Variant = 0

// VALUE_REFLECTIVE is the variant reached by reflecting on a value.
const VALUE_REFLECTIVE Variant = 1

// SYMBOL_REFLECTIVE is the variant reached by reflecting on a symbol.
const SYMBOL_REFLECTIVE Variant = 2

// InFamily constructs the situation of a given family and variant.
func InFamily(family Family, variant Variant) Situation {
	return MATTE_LOCAL_STATEMENT + Situation(family)*3 + Situation(variant)
}

// Family returns the family of this situation, or false if it belongs to none.
func (p Situation) Family() (Family, bool) {
	if p < MATTE_LOCAL_STATEMENT || p > SYMBOL_REFLECTIVE_SYMBOL {
		return 0, false
	}
	//
	return Family((p - MATTE_LOCAL_STATEMENT) / 3), true
}

// Variant returns the variant of this situation.  Situations outside of any
// family are considered matte.
func (p Situation) Variant() Variant {
	if _, ok := p.Family(); !ok {
		return MATTE
	}
	//
	return Variant((p - MATTE_LOCAL_STATEMENT) % 3)
}

// IsScopeStatement checks whether this is a statement of a global or object
// scope.
func (p Situation) IsScopeStatement() bool {
	return p <= OBJECT_STATEMENT
}

// IsSymbolic checks whether expressions in this situation denote symbols
// rather than values.
func (p Situation) IsSymbolic() bool {
	if family, ok := p.Family(); ok {
		return family == SYMBOL_FAMILY
	}
	//
	return p == SYMBOL_PATH
}

// NextScopeStatement determines the situation of statements within a scope
// opened in this situation.  Namespaces of the root module hold base
// statements, any other global scope holds global statements and local scopes
// hold local statements.
func NextScopeStatement(s Situation) Situation {
	switch s {
	case ROOT_STATEMENT, BASE_STATEMENT:
		return BASE_STATEMENT
	case GLOBAL_STATEMENT, OBJECT_STATEMENT:
		return GLOBAL_STATEMENT
	}
	//
	if family, ok := s.Family(); ok && family == LOCAL_STATEMENT_FAMILY {
		return MATTE_LOCAL_STATEMENT
	}
	//
	panic("unreachable")
}

// NextValueReflective determines the situation of an operand reached by
// reflecting on a value in this situation.
func NextValueReflective(s Situation) Situation {
	if family, ok := s.Family(); ok {
		return InFamily(family, VALUE_REFLECTIVE)
	}
	//
	panic("unreachable")
}

// NextSymbolReflective determines the situation of an operand reached by
// reflecting on a symbol in this situation.
func NextSymbolReflective(s Situation) Situation {
	if family, ok := s.Family(); ok {
		return InFamily(family, SYMBOL_REFLECTIVE)
	}
	//
	panic("unreachable")
}

// NextAssignLvalue determines the situation of the destination of an
// assignment made in this (local statement) situation.
func NextAssignLvalue(s Situation) Situation {
	if family, ok := s.Family(); ok && family == LOCAL_STATEMENT_FAMILY {
		return InFamily(DESTINATION_FAMILY, s.Variant())
	}
	//
	panic("unreachable")
}
