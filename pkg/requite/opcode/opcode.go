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

// Opcode identifies the operation performed by an expression.  The parser
// produces a fixed set of raw opcodes, some of which (the situational ones)
// are placeholders rewritten into concrete opcodes once the situation of the
// expression is known.
type Opcode uint16

// Internal and literal opcodes
const (
	ERROR Opcode = iota
	IDENTIFIER
	INTEGER_LITERAL
	REAL_LITERAL
	STRING_LITERAL
	CODEUNIT_LITERAL
	INTERPOLATE_STRING
	IGNORE
	INFERENCED_TYPE
	INFERENCED_COUNT
	NO_DEFAULT_VALUE
	NULL_VALUE
	NULL_TYPE
	TUPLE_VALUE
	TUPLE_TYPE
	TUPLE_DESTINATION
	ANONYMOUS_OBJECT_VALUE
	ANONYMOUS_OBJECT_TYPE
	LEFT_FIELD_SEPARATOR
	RIGHT_FIELD_SEPARATOR
	FIELD_SEPARATOR
	// Situational placeholders
	CALL_OR_SIGNATURE
	BIND_VALUE_OR_DEFAULT_VALUE
	BIND_SYMBOL_OR_DEFAULT_SYMBOL
	TRIP
	CONDUIT
	INFERENCED_TYPE_OR_INDETERMINATE
	MANGLED_NAME
	NEGATE_OR_SUBTRACT
	REFLECT_VALUE
	REFLECT_SYMBOL
	IDENTIFY
	// Sugar
	ASSIGN_ADD
	ASSIGN_SUBTRACT
	ASSIGN_MULTIPLY
	ASSIGN_DIVIDE
	ASSIGN_MODULUS
	CAST_ASSIGN
	// Resolved placeholders
	NO_ARGUMENT_CALL
	POSITIONAL_ARGUMENT_CALL
	NAMED_ARGUMENT_CALL
	NO_PARAMETER_SIGNATURE
	POSITIONAL_PARAMETER_SIGNATURE
	NAMED_PARAMETER_SIGNATURE
	BIND_VALUE
	BIND_SYMBOL
	POSITIONAL_FIELD_DECLARATION
	NAMED_FIELD_DECLARATION
	DEFAULT_VALUE
	DEFAULT_SYMBOL
	VALUE_CONDUIT
	SYMBOL_CONDUIT
	DESTINATION_CONDUIT
	JUNCTION_CONDUIT
	MANGLED_SYMBOL_NAME
	MANGLED_NAME_ATTRIBUTE
	MANGLED_SYMBOL
	MEMBER_VALUE_OF_VALUE
	MEMBER_SYMBOL_OF_VALUE
	MEMBER_VALUE_OF_SYMBOL
	MEMBER_SYMBOL_OF_SYMBOL
	// Reflective shorthands and their universal forms
	SIZE
	ALIGNMENT
	COUNT
	DEPTH
	TYPE
	ADDRESS
	ELEMENT
	DESTROY
	INITIALIZE
	SIZE_OF_VALUE
	SIZE_OF_TYPE
	ALIGNMENT_OF_VALUE
	ALIGNMENT_OF_TYPE
	COUNT_OF_VALUE
	COUNT_OF_TYPE
	DEPTH_OF_VALUE
	DEPTH_OF_TYPE
	TYPE_OF_VALUE
	ADDRESS_OF_VALUE
	ELEMENT_OF_VALUE
	DESTROY_VALUE
	INITIALIZE_VALUE
	// Values
	TRUE
	FALSE
	INDETERMINATE
	THIS
	ADDRESS_DEPTH
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	MODULUS
	CONCATENATE
	NEGATE
	LOGICAL_AND
	LOGICAL_OR
	LOGICAL_NOT
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	EQUAL
	NOT_EQUAL
	SHIFT_LEFT
	SHIFT_RIGHT
	ROTATE
	BITWISE_AND
	BITWISE_OR
	BITWISE_XOR
	BITWISE_NOT
	CAST
	BITWISE_CAST
	BAKE
	EXPAND
	STRINGIFY
	SELECT
	DEREFERENCE
	SPECIALIZATION
	ANONYMOUS_FUNCTION
	CAPTURES
	// Local statements
	ASSIGN
	COPY
	SWAP
	RETURN
	BREAK
	CONTINUE
	LABEL
	GOTO
	IF
	ELSE_IF
	ELSE
	SWITCH
	CASE
	DEFAULT_CASE
	FALLTHROUGH
	WHILE
	FOR
	LOOP
	FOR_EACH
	SCOPE
	DEFER
	LOCAL
	ASSERT
	UNREACHABLE
	// Scope statements
	FUNCTION
	CONSTRUCTOR
	DESTRUCTOR
	OBJECT
	PROPERTY
	NAMESPACE
	ALIAS
	GLOBAL
	CONSTANT
	IMPORT
	USE
	ENTRY_POINT
	EXTEND
	TEMPLATE
	ASCRIBE
	// Attributes
	PUBLIC
	PRIVATE
	PROTECTED
	EXPORT
	EXTERNAL
	INLINE
	// Types
	VOID
	BOOLEAN
	CODEUNIT
	BINARY16
	BINARY32
	BINARY64
	WORD
	SIGNED_INTEGER
	UNSIGNED_INTEGER
	POINTER
	FAT_POINTER
	REFERENCE
	STOLEN_REFERENCE
	MUTABLE
	ARRAY
	// NUM_OPCODES is the number of distinct opcodes.
	NUM_OPCODES
)

// Flags records general properties of an opcode.
type Flags uint8

// INTERNAL marks an opcode which cannot be written in source text, except in
// intermediate form.
const INTERNAL Flags = 1

// INTERMEDIATE marks a concrete opcode produced by situating which can only be
// written in source text in intermediate form.
const INTERMEDIATE Flags = 2

// SITUATIONAL marks a placeholder opcode rewritten into a concrete opcode
// according to its situation (and possibly its branches).
const SITUATIONAL Flags = 4

// CONVERGING marks an opcode whose nested occurrences as branches are
// flattened into their parent.
const CONVERGING Flags = 8

// PREPARED marks an opcode whose branches are normalised (e.g. by inserting
// implicit defaults) before being situated.
const PREPARED Flags = 16

// DataKind identifies the kind of extra data held by an expression.
type DataKind uint8

// NO_DATA is held by most opcodes.
const NO_DATA DataKind = 0

// TEXT data holds the text of a name or literal.
const TEXT DataKind = 1

// INTEGER data holds the value of an integer literal.
const INTEGER DataKind = 2

// SCOPE data refers to the scope opened by an expression.
const SCOPE_DATA DataKind = 3

// OBJECT_DATA refers to the object declared by an expression.
const OBJECT_DATA DataKind = 4

// PROCEDURE_DATA refers to the overload set of a declared procedure.
const PROCEDURE_DATA DataKind = 5

// ALIAS_DATA refers to a declared alias.
const ALIAS_DATA DataKind = 6

// ANONYMOUS_FUNCTION_DATA refers to an anonymous function.
const ANONYMOUS_FUNCTION_DATA DataKind = 7

// VARIABLE_DATA refers to a declared variable.
const VARIABLE_DATA DataKind = 8

// LABEL_DATA refers to a declared label.
const LABEL_DATA DataKind = 9

var dataKindNames = [...]string{"none", "text", "integer", "scope", "object", "procedure", "alias",
	"anonymous function", "variable", "label"}

func (p DataKind) String() string {
	return dataKindNames[p]
}

// IsEntity checks whether this kind of data refers to an entity installed by
// a later pass.
func (p DataKind) IsEntity() bool {
	return p >= SCOPE_DATA
}

// Handler identifies the generic routine used to situate the branches of an
// opcode.
type Handler uint8

// NULLARY opcodes have no branches.
const NULLARY Handler = 0

// UNARY opcodes have exactly one branch.
const UNARY Handler = 1

// BINARY opcodes have exactly two branches.
const BINARY Handler = 2

// NARY opcodes have up to three individually situated leading branches,
// followed by any number of uniformly situated branches.
const NARY Handler = 3

// NARY_WITH_LAST opcodes situate all but their last branch uniformly, and
// their last branch differently.
const NARY_WITH_LAST Handler = 4

// SPECIAL opcodes are rewritten by a dedicated routine which inspects their
// branches.
const SPECIAL Handler = 5

// UNIVERSALIZING opcodes are reflective shorthands, which only ever occur as
// operands of a reflection and are rewritten into their universal form.
const UNIVERSALIZING Handler = 6

// FIELDS opcodes have one leading branch followed by a list of fields.  Field
// separators divide the list into positional and named sections, which are
// situated differently.
const FIELDS Handler = 7

// Arity describes the shape of the branches of an opcode.
type Arity struct {
	Handler Handler
	// Minimum number of branches (NARY, NARY_WITH_LAST and FIELDS only)
	Min uint
	// Transitions for the leading branches.  For UNARY and BINARY opcodes these
	// are all of the branches.
	Leading []Transition
	// Transition for the remaining branches (NARY), for all but the last
	// branch (NARY_WITH_LAST), or for positional fields (FIELDS).  Nil for NARY
	// means no further branches are permitted.
	Rest *Transition
	// Transition for the last branch (NARY_WITH_LAST), or for named fields
	// (FIELDS).
	Last Transition
	// Whether the fields of a FIELDS opcode begin in the named section.
	Named bool
}

// Max returns the maximum number of branches permitted, or false if there is
// no limit.
func (p *Arity) Max() (uint, bool) {
	switch p.Handler {
	case NULLARY:
		return 0, true
	case UNARY:
		return 1, true
	case BINARY:
		return 2, true
	case NARY:
		return uint(len(p.Leading)), p.Rest == nil
	default:
		return 0, false
	}
}

// Minimum returns the minimum number of branches required.
func (p *Arity) Minimum() uint {
	switch p.Handler {
	case UNARY:
		return 1
	case BINARY:
		return 2
	case NARY, NARY_WITH_LAST, FIELDS:
		return p.Min
	default:
		return 0
	}
}

// Info describes a single opcode.
type Info struct {
	Name  string
	Flags Flags
	Data  DataKind
	// Situations in which this opcode is legal
	Situations []Situation
	Arity      Arity
	// Concrete opcode for each situation, for situational opcodes decided by
	// situation alone.
	Resolution map[Situation]Opcode
	// Universal forms of a reflective shorthand when reflecting on a value or
	// on a symbol (ERROR if there is none).
	UniversalValue  Opcode
	UniversalSymbol Opcode
}

// Lookup the opcode with the given name, returning false if there is none.
func Lookup(name string) (Opcode, bool) {
	op, ok := byName[name]
	return op, ok
}

// Info returns the description of this opcode.
func (p Opcode) Info() *Info {
	return &table[p]
}

// Name returns the name of this opcode, as written in source text.
func (p Opcode) Name() string {
	return table[p].Name
}

func (p Opcode) String() string {
	if p >= NUM_OPCODES {
		return "_unknown"
	}
	//
	return table[p].Name
}

// Data returns the kind of data held by expressions with this opcode.
func (p Opcode) Data() DataKind {
	return table[p].Data
}

// SeparatesFields checks whether this opcode is a field separator and, if so,
// whether the fields following it are named.  A left separator begins a
// positional section, and any other separator begins a named section.
func (p Opcode) SeparatesFields() (named bool, ok bool) {
	switch p {
	case LEFT_FIELD_SEPARATOR:
		return false, true
	case RIGHT_FIELD_SEPARATOR, FIELD_SEPARATOR:
		return true, true
	default:
		return false, false
	}
}

// Arity returns the shape of the branches of this opcode.
func (p Opcode) Arity() *Arity {
	return &table[p].Arity
}

// Has checks whether this opcode has all of the given flags.
func (p Opcode) Has(flags Flags) bool {
	return table[p].Flags&flags == flags
}

// IsInternal checks whether this opcode cannot be written by name outside of
// intermediate form.
func (p Opcode) IsInternal() bool {
	return p.Has(INTERNAL)
}

// IsIntermediate checks whether this opcode is a concrete form only written
// by name in intermediate form.
func (p Opcode) IsIntermediate() bool {
	return p.Has(INTERMEDIATE)
}

// IsSituational checks whether this opcode is a placeholder.
func (p Opcode) IsSituational() bool {
	return p.Has(SITUATIONAL)
}

// IsConverging checks whether nested occurrences of this opcode flatten.
func (p Opcode) IsConverging() bool {
	return p.Has(CONVERGING)
}

// IsPrepared checks whether this opcode's branches are normalised before being
// situated.
func (p Opcode) IsPrepared() bool {
	return p.Has(PREPARED)
}

// CanBe checks whether this opcode is legal in the given situation.
func (p Opcode) CanBe(s Situation) bool {
	return legality.Test(index(p, s))
}

// Resolve returns the concrete opcode which this placeholder becomes in the
// given situation, or false if this is decided other than by situation.
func (p Opcode) Resolve(s Situation) (Opcode, bool) {
	op, ok := table[p].Resolution[s]
	return op, ok
}

// Universalize returns the universal form of this reflective shorthand, when
// reflecting either on a value or on a symbol.
func (p Opcode) Universalize(symbolic bool) (Opcode, bool) {
	op := table[p].UniversalValue
	//
	if symbolic {
		op = table[p].UniversalSymbol
	}
	//
	return op, op != ERROR
}
