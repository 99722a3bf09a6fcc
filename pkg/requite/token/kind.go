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
package token

// Kind identifies the lexical class of a token.
type Kind uint8

// END_OF_FILE signals the end of the buffer
const END_OF_FILE Kind = 0

// IDENTIFIER signals a name
const IDENTIFIER Kind = 1

// INTEGER_LITERAL signals an integer literal, possibly base-prefixed as in "16xFF"
const INTEGER_LITERAL Kind = 2

// REAL_LITERAL signals a literal with a fractional part
const REAL_LITERAL Kind = 3

// STRING_LITERAL signals a quoted string without interpolation
const STRING_LITERAL Kind = 4

// CODEUNIT_LITERAL signals a raw codeunit literal in single quotes
const CODEUNIT_LITERAL Kind = 5

// INTERPOLATION_LEFT signals the opening piece "...\[" of an interpolated string
const INTERPOLATION_LEFT Kind = 6

// INTERPOLATION_MIDDLE signals an inner piece "]...\[" of an interpolated string
const INTERPOLATION_MIDDLE Kind = 7

// INTERPOLATION_RIGHT signals the closing piece "]..."" of an interpolated string
const INTERPOLATION_RIGHT Kind = 8

// ERROR_STRING signals an unterminated string literal
const ERROR_STRING Kind = 9

// ERROR_CODEUNIT signals an unterminated codeunit literal
const ERROR_CODEUNIT Kind = 10

// ERROR_UNKNOWN signals a codeunit which cannot start any token
const ERROR_UNKNOWN Kind = 11

// LEFT_BRACKET signals "["
const LEFT_BRACKET Kind = 12

// RIGHT_BRACKET signals "]"
const RIGHT_BRACKET Kind = 13

// LEFT_TRIP signals "{"
const LEFT_TRIP Kind = 14

// RIGHT_TRIP signals "}"
const RIGHT_TRIP Kind = 15

// LEFT_CAP signals "{:"
const LEFT_CAP Kind = 16

// RIGHT_CAP signals ":}"
const RIGHT_CAP Kind = 17

// LEFT_PARENTHESIS signals "("
const LEFT_PARENTHESIS Kind = 18

// RIGHT_PARENTHESIS signals ")"
const RIGHT_PARENTHESIS Kind = 19

// LEFT_COMPAS signals "(>"
const LEFT_COMPAS Kind = 20

// RIGHT_COMPAS signals "<)"
const RIGHT_COMPAS Kind = 21

// ASSIGN signals "="
const ASSIGN Kind = 22

// ASSIGN_ADD signals "+="
const ASSIGN_ADD Kind = 23

// ASSIGN_SUBTRACT signals "-="
const ASSIGN_SUBTRACT Kind = 24

// ASSIGN_MULTIPLY signals "*="
const ASSIGN_MULTIPLY Kind = 25

// ASSIGN_DIVIDE signals "/="
const ASSIGN_DIVIDE Kind = 26

// ASSIGN_MODULUS signals "%="
const ASSIGN_MODULUS Kind = 27

// CAST_ASSIGN signals ":="
const CAST_ASSIGN Kind = 28

// SWAP signals "<>"
const SWAP Kind = 29

// COLON signals ":"
const COLON Kind = 30

// DOUBLE_COLON signals "::"
const DOUBLE_COLON Kind = 31

// SEMICOLON signals ";"
const SEMICOLON Kind = 32

// DOUBLE_SEMICOLON signals ";;"
const DOUBLE_SEMICOLON Kind = 33

// LOGICAL_AND signals "&&"
const LOGICAL_AND Kind = 34

// LOGICAL_OR signals "||"
const LOGICAL_OR Kind = 35

// GREATER signals ">"
const GREATER Kind = 36

// GREATER_EQUAL signals ">="
const GREATER_EQUAL Kind = 37

// LESS signals "<"
const LESS Kind = 38

// LESS_EQUAL signals "<="
const LESS_EQUAL Kind = 39

// EQUAL signals "=="
const EQUAL Kind = 40

// NOT_EQUAL signals "!="
const NOT_EQUAL Kind = 41

// SHIFT_LEFT signals "<<"
const SHIFT_LEFT Kind = 42

// SHIFT_RIGHT signals ">>"
const SHIFT_RIGHT Kind = 43

// ROTATE signals ">^"
const ROTATE Kind = 44

// STAR signals "*"
const STAR Kind = 45

// SLASH signals "/"
const SLASH Kind = 46

// PERCENT signals "%"
const PERCENT Kind = 47

// PLUS signals "+"
const PLUS Kind = 48

// MINUS signals "-"
const MINUS Kind = 49

// CONCATENATE signals "+>"
const CONCATENATE Kind = 50

// BANG signals "!"
const BANG Kind = 51

// AT signals "@"
const AT Kind = 52

// HASH signals "#"
const HASH Kind = 53

// AMPERSAND signals "&"
const AMPERSAND Kind = 54

// DOLLAR signals "$"
const DOLLAR Kind = 55

// BACKTICK signals "`"
const BACKTICK Kind = 56

// DOT signals "."
const DOT Kind = 57

// DOUBLE_DOT signals ".."
const DOUBLE_DOT Kind = 58

// BACKSLASH signals "\"
const BACKSLASH Kind = 59

// DOUBLE_BACKSLASH signals "\\"
const DOUBLE_BACKSLASH Kind = 60

// QUESTION signals "?"
const QUESTION Kind = 61

// NUM_KINDS is the number of distinct token kinds.
const NUM_KINDS = 62

var kindNames = [NUM_KINDS]string{
	"END_OF_FILE",
	"IDENTIFIER",
	"INTEGER_LITERAL",
	"REAL_LITERAL",
	"STRING_LITERAL",
	"CODEUNIT_LITERAL",
	"INTERPOLATION_LEFT",
	"INTERPOLATION_MIDDLE",
	"INTERPOLATION_RIGHT",
	"ERROR_STRING",
	"ERROR_CODEUNIT",
	"ERROR_UNKNOWN",
	"LEFT_BRACKET",
	"RIGHT_BRACKET",
	"LEFT_TRIP",
	"RIGHT_TRIP",
	"LEFT_CAP",
	"RIGHT_CAP",
	"LEFT_PARENTHESIS",
	"RIGHT_PARENTHESIS",
	"LEFT_COMPAS",
	"RIGHT_COMPAS",
	"ASSIGN",
	"ASSIGN_ADD",
	"ASSIGN_SUBTRACT",
	"ASSIGN_MULTIPLY",
	"ASSIGN_DIVIDE",
	"ASSIGN_MODULUS",
	"CAST_ASSIGN",
	"SWAP",
	"COLON",
	"DOUBLE_COLON",
	"SEMICOLON",
	"DOUBLE_SEMICOLON",
	"LOGICAL_AND",
	"LOGICAL_OR",
	"GREATER",
	"GREATER_EQUAL",
	"LESS",
	"LESS_EQUAL",
	"EQUAL",
	"NOT_EQUAL",
	"SHIFT_LEFT",
	"SHIFT_RIGHT",
	"ROTATE",
	"STAR",
	"SLASH",
	"PERCENT",
	"PLUS",
	"MINUS",
	"CONCATENATE",
	"BANG",
	"AT",
	"HASH",
	"AMPERSAND",
	"DOLLAR",
	"BACKTICK",
	"DOT",
	"DOUBLE_DOT",
	"BACKSLASH",
	"DOUBLE_BACKSLASH",
	"QUESTION",
}

func (p Kind) String() string {
	if int(p) < len(kindNames) {
		return kindNames[p]
	}
	//
	panic("unreachable")
}

// IsLiteral checks whether this kind is a (non-interpolated) literal.
func (p Kind) IsLiteral() bool {
	return p >= INTEGER_LITERAL && p <= CODEUNIT_LITERAL
}

// IsError checks whether this kind marks a lexical error.
func (p Kind) IsError() bool {
	return p >= ERROR_STRING && p <= ERROR_UNKNOWN
}

// IsLeftGrouping checks whether this kind opens a grouping.  The opening piece
// of an interpolated string is included, since it is closed by a later piece.
func (p Kind) IsLeftGrouping() bool {
	switch p {
	case LEFT_BRACKET, LEFT_TRIP, LEFT_CAP, LEFT_PARENTHESIS, LEFT_COMPAS, INTERPOLATION_LEFT, INTERPOLATION_MIDDLE:
		return true
	default:
		return false
	}
}

// IsRightGrouping checks whether this kind closes a grouping.
func (p Kind) IsRightGrouping() bool {
	switch p {
	case RIGHT_BRACKET, RIGHT_TRIP, RIGHT_CAP, RIGHT_PARENTHESIS, RIGHT_COMPAS, INTERPOLATION_MIDDLE, INTERPOLATION_RIGHT:
		return true
	default:
		return false
	}
}
