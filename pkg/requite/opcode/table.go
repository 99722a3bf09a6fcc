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
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Commonly used groups of situations.
var (
	anywhere    = allSituations()
	valueish    = []Situation{MATTE_VALUE, MATTE_JUNCTION}
	symbolish   = []Situation{MATTE_SYMBOL, MATTE_JUNCTION}
	destination = []Situation{MATTE_DESTINATION}
	local       = []Situation{MATTE_LOCAL_STATEMENT}
	scopeLevel  = []Situation{ROOT_STATEMENT, BASE_STATEMENT, GLOBAL_STATEMENT}
	callable    = join(local, destination, valueish)
	families    = familySituations()
	nameable    = join(families, []Situation{SYMBOL_NAME, SYMBOL_PATH, SYMBOL_BINDING, TEMPLATE_PARAMETER,
		CAPTURE})
	fields            = []Situation{POSITIONAL_FIELD, NAMED_FIELD}
	reflectiveValue   = []Situation{VALUE_REFLECTIVE_VALUE, VALUE_REFLECTIVE_JUNCTION}
	reflectiveQuery   = join(reflectiveValue, []Situation{SYMBOL_REFLECTIVE_VALUE, SYMBOL_REFLECTIVE_JUNCTION})
	declarationLevel  = join(scopeLevel, []Situation{OBJECT_STATEMENT})
	ascriptionLevel   = join(declarationLevel, local)
	valueOrDest       = join(valueish, destination)
	valueSymbolOrDest = join(valueish, symbolish, destination)
)

// Commonly used transitions.
var (
	toValue    = To(MATTE_VALUE)
	toSymbol   = To(MATTE_SYMBOL)
	toJunction = To(MATTE_JUNCTION)
	toDest     = To(MATTE_DESTINATION)
	toLocal    = To(MATTE_LOCAL_STATEMENT)
	toName     = To(SYMBOL_NAME)
)

// The table of all opcodes.  Entries are filled by define() at initialisation
// time, and checked for internal consistency once complete.
var table [NUM_OPCODES]Info

// Legality matrix, indexed by (opcode * NUM_SITUATIONS) + situation.
var legality *bitset.BitSet

// Names mapped to opcodes.
var byName map[string]Opcode

func init() {
	defineLiterals()
	definePlaceholders()
	defineResolved()
	defineReflective()
	defineValues()
	defineLocalStatements()
	defineScopeStatements()
	defineTypes()
	//
	legality = bitset.New(uint(NUM_OPCODES) * NUM_SITUATIONS)
	byName = make(map[string]Opcode, NUM_OPCODES)
	//
	for op := Opcode(0); op < NUM_OPCODES; op++ {
		info := &table[op]
		//
		if info.Name == "" {
			panic(fmt.Sprintf("opcode %d is not defined", op))
		} else if _, ok := byName[info.Name]; ok {
			panic(fmt.Sprintf("opcode \"%s\" is defined twice", info.Name))
		}
		//
		byName[info.Name] = op
		//
		for _, s := range info.Situations {
			legality.Set(index(op, s))
		}
	}
	// Sanity check the table
	for op := Opcode(0); op < NUM_OPCODES; op++ {
		if err := check(op); err != nil {
			panic(err.Error())
		}
	}
}

func define(op Opcode, name string, flags Flags, situations []Situation, arity Arity) *Info {
	table[op] = Info{
		Name:            name,
		Flags:           flags,
		Situations:      situations,
		Arity:           arity,
		UniversalValue:  ERROR,
		UniversalSymbol: ERROR,
	}
	//
	return &table[op]
}

func defineLiterals() {
	define(ERROR, "_error", INTERNAL, anywhere, nullary())
	define(IDENTIFIER, "_identifier", INTERNAL, nameable, nullary()).Data = TEXT
	define(INTEGER_LITERAL, "_integer_literal", INTERNAL, valueish, nullary()).Data = INTEGER
	define(REAL_LITERAL, "_real_literal", INTERNAL, valueish, nullary()).Data = TEXT
	define(STRING_LITERAL, "_string_literal", INTERNAL, valueish, nullary()).Data = TEXT
	define(CODEUNIT_LITERAL, "_codeunit_literal", INTERNAL, valueish, nullary()).Data = TEXT
	define(INTERPOLATE_STRING, "_interpolate_string", INTERNAL, valueish, nary(1, &toValue))
	define(IGNORE, "ignore", INTERMEDIATE, destination, nullary())
	define(INFERENCED_TYPE, "inferenced_type", INTERMEDIATE, symbolish, nullary())
	define(INFERENCED_COUNT, "inferenced_count", INTERMEDIATE, valueish, nullary())
	define(NO_DEFAULT_VALUE, "no_default_value", INTERMEDIATE, valueish, nullary())
	define(NULL_VALUE, "null_value", INTERMEDIATE, valueish, nullary())
	define(NULL_TYPE, "null_type", INTERMEDIATE, symbolish, nullary())
	define(TUPLE_VALUE, "tuple_value", INTERMEDIATE, valueish, nary(2, &toValue))
	define(TUPLE_TYPE, "tuple_type", INTERMEDIATE, symbolish, nary(2, &toSymbol))
	define(TUPLE_DESTINATION, "tuple_destination", INTERMEDIATE, destination, nary(2, &toDest))
	define(ANONYMOUS_OBJECT_VALUE, "anonymous_object_value", INTERMEDIATE, valueish,
		nary(1, transition(To(VALUE_BINDING))))
	define(ANONYMOUS_OBJECT_TYPE, "anonymous_object_type", INTERMEDIATE, symbolish,
		nary(1, transition(To(SYMBOL_BINDING))))
	define(LEFT_FIELD_SEPARATOR, "_left_field_separator", INTERNAL, fields, nullary())
	define(RIGHT_FIELD_SEPARATOR, "_right_field_separator", INTERNAL, fields, nullary())
	define(FIELD_SEPARATOR, "_field_separator", INTERNAL, fields, nullary())
}

func definePlaceholders() {
	const flags = INTERNAL | SITUATIONAL
	//
	define(CALL_OR_SIGNATURE, "_call_or_signature", flags, join(callable, symbolish), special())
	define(BIND_VALUE_OR_DEFAULT_VALUE, "_bind_value_or_default_value", flags,
		[]Situation{VALUE_BINDING, CAPTURE, POSITIONAL_FIELD, TEMPLATE_PARAMETER},
		special()).Resolution = map[Situation]Opcode{
		VALUE_BINDING:      BIND_VALUE,
		CAPTURE:            BIND_VALUE,
		POSITIONAL_FIELD:   POSITIONAL_FIELD_DECLARATION,
		TEMPLATE_PARAMETER: DEFAULT_VALUE,
	}
	define(BIND_SYMBOL_OR_DEFAULT_SYMBOL, "_bind_symbol_or_default_symbol", flags,
		[]Situation{SYMBOL_BINDING, NAMED_FIELD, TEMPLATE_PARAMETER},
		special()).Resolution = map[Situation]Opcode{
		SYMBOL_BINDING:     BIND_SYMBOL,
		NAMED_FIELD:        NAMED_FIELD_DECLARATION,
		TEMPLATE_PARAMETER: DEFAULT_SYMBOL,
	}
	define(TRIP, "_trip", flags, join(valueSymbolOrDest, local), special())
	define(CONDUIT, "_conduit", flags, valueSymbolOrDest, special()).Resolution = map[Situation]Opcode{
		MATTE_VALUE:       VALUE_CONDUIT,
		MATTE_SYMBOL:      SYMBOL_CONDUIT,
		MATTE_DESTINATION: DESTINATION_CONDUIT,
		MATTE_JUNCTION:    JUNCTION_CONDUIT,
	}
	define(INFERENCED_TYPE_OR_INDETERMINATE, "_inferenced_type_or_indeterminate", flags,
		[]Situation{MATTE_VALUE, MATTE_SYMBOL, MATTE_DESTINATION}, special()).Resolution = map[Situation]Opcode{
		MATTE_VALUE:       INDETERMINATE,
		MATTE_SYMBOL:      INFERENCED_TYPE,
		MATTE_DESTINATION: IGNORE,
	}
	define(MANGLED_NAME, "mangled_name", SITUATIONAL, []Situation{SYMBOL_NAME, ATTRIBUTE, MATTE_SYMBOL},
		special()).Resolution = map[Situation]Opcode{
		SYMBOL_NAME:  MANGLED_SYMBOL_NAME,
		ATTRIBUTE:    MANGLED_NAME_ATTRIBUTE,
		MATTE_SYMBOL: MANGLED_SYMBOL,
	}
	define(NEGATE_OR_SUBTRACT, "_negate_or_subtract", flags, valueish, special())
	define(REFLECT_VALUE, "_reflect_value", flags, join(families, []Situation{SYMBOL_PATH}), special())
	define(REFLECT_SYMBOL, "_reflect_symbol", flags, join(families, []Situation{SYMBOL_PATH}), special())
	define(IDENTIFY, "_identify", flags, nameable, special())
	// Compound assignment
	define(ASSIGN_ADD, "_assign_add", flags, local, special())
	define(ASSIGN_SUBTRACT, "_assign_subtract", flags, local, special())
	define(ASSIGN_MULTIPLY, "_assign_multiply", flags, local, special())
	define(ASSIGN_DIVIDE, "_assign_divide", flags, local, special())
	define(ASSIGN_MODULUS, "_assign_modulus", flags, local, special())
	define(CAST_ASSIGN, "_cast_assign", flags, local, special())
}

func defineResolved() {
	define(NO_ARGUMENT_CALL, "no_argument_call", INTERMEDIATE, callable, unary(toValue))
	define(POSITIONAL_ARGUMENT_CALL, "positional_argument_call", INTERMEDIATE, callable,
		fieldList(toValue, toValue, To(VALUE_BINDING), false))
	define(NAMED_ARGUMENT_CALL, "named_argument_call", INTERMEDIATE, callable,
		fieldList(toValue, toValue, To(VALUE_BINDING), true))
	define(NO_PARAMETER_SIGNATURE, "no_parameter_signature", INTERMEDIATE, symbolish, unary(toSymbol))
	define(POSITIONAL_PARAMETER_SIGNATURE, "positional_parameter_signature", INTERMEDIATE, symbolish,
		fieldList(toSymbol, To(POSITIONAL_FIELD), To(NAMED_FIELD), false))
	define(NAMED_PARAMETER_SIGNATURE, "named_parameter_signature", INTERMEDIATE, symbolish,
		fieldList(toSymbol, To(POSITIONAL_FIELD), To(NAMED_FIELD), true))
	// Binders
	define(BIND_VALUE, "bind_value", INTERMEDIATE, []Situation{VALUE_BINDING, CAPTURE}, binary(toName, toValue))
	define(BIND_SYMBOL, "bind_symbol", INTERMEDIATE, []Situation{SYMBOL_BINDING}, binary(toName, toSymbol))
	define(POSITIONAL_FIELD_DECLARATION, "positional_field", INTERMEDIATE, []Situation{POSITIONAL_FIELD},
		binary(toName, toSymbol))
	define(NAMED_FIELD_DECLARATION, "named_field", INTERMEDIATE, []Situation{NAMED_FIELD},
		binary(toName, toSymbol))
	define(DEFAULT_VALUE, "default_value", INTERMEDIATE, []Situation{TEMPLATE_PARAMETER}, binary(toName, toValue))
	define(DEFAULT_SYMBOL, "default_symbol", INTERMEDIATE, []Situation{TEMPLATE_PARAMETER},
		binary(toName, toSymbol))
	// Conduits
	define(VALUE_CONDUIT, "value_conduit", INTERMEDIATE, []Situation{MATTE_VALUE}, unary(toValue))
	define(SYMBOL_CONDUIT, "symbol_conduit", INTERMEDIATE, []Situation{MATTE_SYMBOL}, unary(toSymbol))
	define(DESTINATION_CONDUIT, "destination_conduit", INTERMEDIATE, destination, unary(toDest))
	define(JUNCTION_CONDUIT, "junction_conduit", INTERMEDIATE, []Situation{MATTE_JUNCTION}, unary(toJunction))
	// Mangled names
	define(MANGLED_SYMBOL_NAME, "mangled_symbol_name", INTERMEDIATE, []Situation{SYMBOL_NAME}, unary(toValue))
	define(MANGLED_NAME_ATTRIBUTE, "mangled_name_attribute", INTERMEDIATE, []Situation{ATTRIBUTE},
		unary(toValue))
	define(MANGLED_SYMBOL, "mangled_symbol", INTERMEDIATE, []Situation{MATTE_SYMBOL}, unary(toValue))
	// Members
	define(MEMBER_VALUE_OF_VALUE, "member_value_of_value", INTERMEDIATE, valueOrDest, binary(toValue, toName))
	define(MEMBER_SYMBOL_OF_VALUE, "member_symbol_of_value", INTERMEDIATE, symbolish, binary(toValue, toName))
	define(MEMBER_VALUE_OF_SYMBOL, "member_value_of_symbol", INTERMEDIATE, valueOrDest, binary(toSymbol, toName))
	define(MEMBER_SYMBOL_OF_SYMBOL, "member_symbol_of_symbol", INTERMEDIATE,
		join(symbolish, []Situation{SYMBOL_PATH}), binary(PathOrSymbol(), toName))
}

func defineReflective() {
	shorthand := func(op Opcode, name string, situations []Situation, ofValue Opcode, ofType Opcode) {
		info := define(op, name, 0, situations, universalizing())
		info.UniversalValue = ofValue
		info.UniversalSymbol = ofType
	}
	//
	shorthand(SIZE, "size", reflectiveQuery, SIZE_OF_VALUE, SIZE_OF_TYPE)
	shorthand(ALIGNMENT, "alignment", reflectiveQuery, ALIGNMENT_OF_VALUE, ALIGNMENT_OF_TYPE)
	shorthand(COUNT, "count", reflectiveQuery, COUNT_OF_VALUE, COUNT_OF_TYPE)
	shorthand(DEPTH, "depth", reflectiveQuery, DEPTH_OF_VALUE, DEPTH_OF_TYPE)
	shorthand(TYPE, "type", []Situation{VALUE_REFLECTIVE_SYMBOL, VALUE_REFLECTIVE_JUNCTION}, TYPE_OF_VALUE, ERROR)
	shorthand(ADDRESS, "address", reflectiveValue, ADDRESS_OF_VALUE, ERROR)
	shorthand(ELEMENT, "element", join(reflectiveValue, []Situation{VALUE_REFLECTIVE_DESTINATION}),
		ELEMENT_OF_VALUE, ERROR)
	shorthand(DESTROY, "destroy", []Situation{VALUE_REFLECTIVE_LOCAL_STATEMENT}, DESTROY_VALUE, ERROR)
	shorthand(INITIALIZE, "initialize", []Situation{VALUE_REFLECTIVE_LOCAL_STATEMENT}, INITIALIZE_VALUE, ERROR)
	//
	define(SIZE_OF_VALUE, "size_of_value", INTERMEDIATE, valueish, unary(toValue))
	define(SIZE_OF_TYPE, "size_of_type", INTERMEDIATE, valueish, unary(toSymbol))
	define(ALIGNMENT_OF_VALUE, "alignment_of_value", INTERMEDIATE, valueish, unary(toValue))
	define(ALIGNMENT_OF_TYPE, "alignment_of_type", INTERMEDIATE, valueish, unary(toSymbol))
	define(COUNT_OF_VALUE, "count_of_value", INTERMEDIATE, valueish, unary(toValue))
	define(COUNT_OF_TYPE, "count_of_type", INTERMEDIATE, valueish, unary(toSymbol))
	define(DEPTH_OF_VALUE, "depth_of_value", INTERMEDIATE, valueish, unary(toValue))
	define(DEPTH_OF_TYPE, "depth_of_type", INTERMEDIATE, valueish, unary(toSymbol))
	define(TYPE_OF_VALUE, "type_of_value", INTERMEDIATE, symbolish, unary(toValue))
	define(ADDRESS_OF_VALUE, "address_of_value", INTERMEDIATE, valueish, unary(toValue))
	define(ELEMENT_OF_VALUE, "element_of_value", INTERMEDIATE, valueOrDest, binary(toValue, toValue))
	define(DESTROY_VALUE, "destroy_value", INTERMEDIATE, local, unary(toDest))
	define(INITIALIZE_VALUE, "initialize_value", INTERMEDIATE, local, nary(1, &toValue, toDest))
}

func defineValues() {
	define(TRUE, "true", 0, valueish, nullary())
	define(FALSE, "false", 0, valueish, nullary())
	define(INDETERMINATE, "indeterminate", 0, valueish, nullary())
	define(THIS, "this", 0, valueOrDest, nullary())
	define(ADDRESS_DEPTH, "address_depth", 0, valueish, nullary())
	// Arithmetic
	define(ADD, "add", CONVERGING, valueish, nary(2, &toValue))
	define(SUBTRACT, "subtract", 0, valueish, nary(2, &toValue))
	define(MULTIPLY, "multiply", CONVERGING, valueish, nary(2, &toValue))
	define(DIVIDE, "divide", 0, valueish, nary(2, &toValue))
	define(MODULUS, "modulus", 0, valueish, nary(2, &toValue))
	define(CONCATENATE, "concatenate", CONVERGING, valueish, nary(2, &toValue))
	define(NEGATE, "negate", 0, valueish, unary(toValue))
	// Logic
	define(LOGICAL_AND, "logical_and", CONVERGING, valueish, nary(2, &toValue))
	define(LOGICAL_OR, "logical_or", CONVERGING, valueish, nary(2, &toValue))
	define(LOGICAL_NOT, "logical_not", 0, valueish, unary(toValue))
	// Comparison
	define(GREATER, "greater", 0, valueish, nary(2, &toValue))
	define(GREATER_EQUAL, "greater_equal", 0, valueish, nary(2, &toValue))
	define(LESS, "less", 0, valueish, nary(2, &toValue))
	define(LESS_EQUAL, "less_equal", 0, valueish, nary(2, &toValue))
	define(EQUAL, "equal", 0, valueish, nary(2, &toValue))
	define(NOT_EQUAL, "not_equal", 0, valueish, nary(2, &toValue))
	// Bitwise
	define(SHIFT_LEFT, "shift_left", 0, valueish, nary(2, &toValue))
	define(SHIFT_RIGHT, "shift_right", 0, valueish, nary(2, &toValue))
	define(ROTATE, "rotate", 0, valueish, nary(2, &toValue))
	define(BITWISE_AND, "bitwise_and", CONVERGING, valueish, nary(2, &toValue))
	define(BITWISE_OR, "bitwise_or", CONVERGING, valueish, nary(2, &toValue))
	define(BITWISE_XOR, "bitwise_xor", CONVERGING, valueish, nary(2, &toValue))
	define(BITWISE_NOT, "bitwise_not", 0, valueish, unary(toValue))
	// Conversion and compile time evaluation
	define(CAST, "cast", 0, valueish, binary(toSymbol, toValue))
	define(BITWISE_CAST, "bitwise_cast", 0, valueish, binary(toSymbol, toValue))
	define(BAKE, "bake", 0, valueish, unary(toJunction))
	define(EXPAND, "expand", 0, valueish, unary(toValue))
	define(STRINGIFY, "stringify", 0, valueish, unary(toJunction))
	define(SELECT, "select", 0, valueish, nary(3, nil, toValue, toValue, toValue))
	define(DEREFERENCE, "dereference", 0, valueOrDest, unary(toValue))
	define(SPECIALIZATION, "_specialization", INTERNAL, join(valueish, symbolish), nary(1, &toJunction, Same()))
	define(ANONYMOUS_FUNCTION, "_anonymous_function", INTERNAL, valueish,
		nary(2, &toLocal, toValue, toSymbol)).Data = ANONYMOUS_FUNCTION_DATA
	define(CAPTURES, "_captures", INTERNAL, []Situation{MATTE_VALUE}, nary(0, transition(To(CAPTURE))))
}

func defineLocalStatements() {
	define(ASSIGN, "_assign", INTERNAL, local, naryWithLast(2, AssignLvalue(), toValue))
	define(COPY, "copy", 0, local, binary(AssignLvalue(), toValue))
	define(SWAP, "swap", 0, local, binary(toDest, toDest))
	define(RETURN, "return", 0, local, nary(0, nil, toValue))
	define(BREAK, "break", 0, local, nary(0, nil, toName))
	define(CONTINUE, "continue", 0, local, nary(0, nil, toName))
	define(LABEL, "label", 0, local, unary(toName)).Data = LABEL_DATA
	define(GOTO, "goto", 0, local, unary(toName))
	define(IF, "if", 0, local, nary(1, &toLocal, toValue))
	define(ELSE_IF, "else_if", 0, local, nary(1, &toLocal, toValue))
	define(ELSE, "else", 0, local, nary(0, &toLocal))
	define(SWITCH, "switch", 0, local, nary(1, transition(To(SWITCH_CASE)), toValue))
	define(CASE, "case", 0, []Situation{SWITCH_CASE}, nary(1, &toLocal, toValue))
	define(DEFAULT_CASE, "default_case", 0, []Situation{SWITCH_CASE}, nary(0, &toLocal))
	define(FALLTHROUGH, "fallthrough", 0, local, nullary())
	define(WHILE, "while", 0, local, nary(1, &toLocal, toValue))
	define(FOR, "for", 0, local, nary(3, &toLocal, toLocal, toValue, toLocal))
	define(LOOP, "loop", 0, local, nary(0, &toLocal))
	define(FOR_EACH, "for_each", 0, local, nary(2, &toLocal, To(SYMBOL_BINDING), toValue))
	define(SCOPE, "scope", 0, local, nary(0, transition(NextScope()))).Data = SCOPE_DATA
	define(DEFER, "defer", 0, local, nary(0, &toLocal))
	define(LOCAL, "local", PREPARED, local, nary(1, nil, To(SYMBOL_BINDING), toValue)).Data = VARIABLE_DATA
	define(ASSERT, "assert", PREPARED, join(local, declarationLevel), nary(1, nil, toValue, toValue))
	define(UNREACHABLE, "unreachable", 0, local, nullary())
}

func defineScopeStatements() {
	define(FUNCTION, "function", 0, declarationLevel,
		nary(2, &toLocal, toName, toSymbol)).Data = PROCEDURE_DATA
	define(CONSTRUCTOR, "constructor", 0, []Situation{OBJECT_STATEMENT},
		nary(1, &toLocal, toSymbol)).Data = PROCEDURE_DATA
	define(DESTRUCTOR, "destructor", 0, []Situation{OBJECT_STATEMENT},
		nary(0, &toLocal)).Data = PROCEDURE_DATA
	define(OBJECT, "object", 0, declarationLevel,
		nary(1, transition(To(OBJECT_STATEMENT)), toName)).Data = OBJECT_DATA
	define(PROPERTY, "property", PREPARED, []Situation{OBJECT_STATEMENT},
		nary(2, nil, To(SYMBOL_BINDING), toValue)).Data = VARIABLE_DATA
	define(NAMESPACE, "namespace", 0, scopeLevel, nary(1, transition(NextScope()), toName)).Data = SCOPE_DATA
	define(ALIAS, "alias", 0, join(declarationLevel, local), binary(toName, toJunction)).Data = ALIAS_DATA
	define(GLOBAL, "global", PREPARED, scopeLevel,
		nary(1, nil, To(SYMBOL_BINDING), toValue)).Data = VARIABLE_DATA
	define(CONSTANT, "constant", PREPARED, join(declarationLevel, local),
		nary(2, nil, To(SYMBOL_BINDING), toValue)).Data = VARIABLE_DATA
	define(IMPORT, "import", 0, []Situation{ROOT_STATEMENT}, nary(1, transition(To(SYMBOL_PATH))))
	define(USE, "use", 0, join(scopeLevel, local), nary(1, transition(To(SYMBOL_PATH))))
	define(ENTRY_POINT, "entry_point", 0, []Situation{ROOT_STATEMENT}, nary(0, &toLocal))
	define(EXTEND, "extend", 0, scopeLevel, nary(1, transition(To(OBJECT_STATEMENT)), toSymbol))
	define(TEMPLATE, "template", 0, declarationLevel, naryWithLast(2, To(TEMPLATE_PARAMETER), Same()))
	define(ASCRIBE, "ascribe", 0, ascriptionLevel, naryWithLast(2, To(ATTRIBUTE), Same()))
	// Attributes
	define(PUBLIC, "public", 0, []Situation{ATTRIBUTE}, nullary())
	define(PRIVATE, "private", 0, []Situation{ATTRIBUTE}, nullary())
	define(PROTECTED, "protected", 0, []Situation{ATTRIBUTE}, nullary())
	define(EXPORT, "export", 0, []Situation{ATTRIBUTE}, nullary())
	define(EXTERNAL, "external", 0, []Situation{ATTRIBUTE}, nullary())
	define(INLINE, "inline", 0, []Situation{ATTRIBUTE}, nullary())
}

func defineTypes() {
	define(VOID, "void", 0, symbolish, nullary())
	define(BOOLEAN, "boolean", 0, symbolish, nullary())
	define(CODEUNIT, "codeunit", 0, symbolish, nullary())
	define(BINARY16, "binary16", 0, symbolish, nullary())
	define(BINARY32, "binary32", 0, symbolish, nullary())
	define(BINARY64, "binary64", 0, symbolish, nullary())
	define(WORD, "word", PREPARED, symbolish, nary(1, nil, toValue))
	define(SIGNED_INTEGER, "signed_integer", PREPARED, symbolish, nary(1, nil, toValue))
	define(UNSIGNED_INTEGER, "unsigned_integer", PREPARED, symbolish, nary(1, nil, toValue))
	define(POINTER, "pointer", 0, symbolish, unary(toSymbol))
	define(FAT_POINTER, "fat_pointer", 0, symbolish, unary(toSymbol))
	define(REFERENCE, "reference", 0, symbolish, unary(toSymbol))
	define(STOLEN_REFERENCE, "stolen_reference", 0, symbolish, unary(toSymbol))
	define(MUTABLE, "mutable", 0, symbolish, unary(toSymbol))
	define(ARRAY, "array", PREPARED, symbolish, nary(2, nil, toSymbol, toValue))
}

// check that an opcode is internally consistent.
func check(op Opcode) (err error) {
	info := &table[op]
	arity := &info.Arity
	// Transitions must be defined in every legal situation
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("opcode \"%s\" has an invalid transition (%v)", info.Name, r)
		}
	}()
	//
	for _, s := range info.Situations {
		for _, t := range arity.Leading {
			t.Apply(s)
		}
		//
		if arity.Rest != nil {
			arity.Rest.Apply(s)
		}
		//
		if arity.Handler == NARY_WITH_LAST || arity.Handler == FIELDS {
			arity.Last.Apply(s)
		}
	}
	//
	switch arity.Handler {
	case NULLARY, SPECIAL, UNIVERSALIZING:
		if len(arity.Leading) != 0 || arity.Rest != nil {
			return fmt.Errorf("opcode \"%s\" has unexpected transitions", info.Name)
		}
	case UNARY, BINARY:
		if uint(len(arity.Leading)) != arity.Minimum() || arity.Rest != nil {
			return fmt.Errorf("opcode \"%s\" has inconsistent arity", info.Name)
		}
	case NARY:
		if len(arity.Leading) > 3 || (arity.Rest == nil && uint(len(arity.Leading)) < arity.Min) {
			return fmt.Errorf("opcode \"%s\" has inconsistent arity", info.Name)
		}
	case NARY_WITH_LAST:
		if arity.Rest == nil || arity.Min == 0 {
			return fmt.Errorf("opcode \"%s\" has inconsistent arity", info.Name)
		}
	case FIELDS:
		if len(arity.Leading) != 1 || arity.Rest == nil || arity.Min < 2 {
			return fmt.Errorf("opcode \"%s\" has inconsistent arity", info.Name)
		}
	}
	// Resolutions must be legal on both sides
	if info.Resolution != nil && info.Flags&SITUATIONAL == 0 {
		return fmt.Errorf("opcode \"%s\" has resolutions but is not situational", info.Name)
	}
	//
	for s, target := range info.Resolution {
		if !op.CanBe(s) {
			return fmt.Errorf("opcode \"%s\" resolves in %s, where it is illegal", info.Name, s)
		} else if !target.CanBe(s) {
			return fmt.Errorf("opcode \"%s\" resolves to \"%s\" in %s, where it is illegal", info.Name,
				target.Name(), s)
		}
	}
	// Shorthands must be universalizable wherever they are legal
	if arity.Handler == UNIVERSALIZING {
		for _, s := range info.Situations {
			family, ok := s.Family()
			universal := info.UniversalValue
			//
			if s.Variant() == SYMBOL_REFLECTIVE {
				universal = info.UniversalSymbol
			}
			//
			if !ok || s.Variant() == MATTE || universal == ERROR {
				return fmt.Errorf("opcode \"%s\" is not universalizable in %s", info.Name, s)
			} else if !universal.CanBe(InFamily(family, MATTE)) {
				return fmt.Errorf("opcode \"%s\" universalizes to \"%s\", which is illegal in %s", info.Name,
					universal.Name(), InFamily(family, MATTE))
			}
		}
	}
	//
	return nil
}

func index(op Opcode, s Situation) uint {
	return uint(op)*NUM_SITUATIONS + uint(s)
}

func nullary() Arity {
	return Arity{Handler: NULLARY}
}

func unary(t Transition) Arity {
	return Arity{Handler: UNARY, Leading: []Transition{t}}
}

func binary(first Transition, second Transition) Arity {
	return Arity{Handler: BINARY, Leading: []Transition{first, second}}
}

func nary(minimum uint, rest *Transition, leading ...Transition) Arity {
	return Arity{Handler: NARY, Min: minimum, Leading: leading, Rest: rest}
}

func naryWithLast(minimum uint, rest Transition, last Transition) Arity {
	return Arity{Handler: NARY_WITH_LAST, Min: minimum, Rest: &rest, Last: last}
}

// A leading branch followed by at least one field.
func fieldList(head Transition, positional Transition, named Transition, startNamed bool) Arity {
	return Arity{Handler: FIELDS, Min: 2, Leading: []Transition{head}, Rest: &positional, Last: named,
		Named: startNamed}
}

func special() Arity {
	return Arity{Handler: SPECIAL}
}

func universalizing() Arity {
	return Arity{Handler: UNIVERSALIZING}
}

func transition(t Transition) *Transition {
	return &t
}

func join(groups ...[]Situation) []Situation {
	var (
		seen   [NUM_SITUATIONS]bool
		result []Situation
	)
	//
	for _, group := range groups {
		for _, s := range group {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}
	//
	return result
}

func allSituations() []Situation {
	result := make([]Situation, NUM_SITUATIONS)
	//
	for i := range result {
		result[i] = Situation(i)
	}
	//
	return result
}

func familySituations() []Situation {
	var result []Situation
	//
	for s := MATTE_LOCAL_STATEMENT; s <= SYMBOL_REFLECTIVE_SYMBOL; s++ {
		result = append(result, s)
	}
	//
	return result
}
