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
package codeunit

// Flags describes the classification of a single byte (codeunit) of UTF-8
// encoded source text.  The low six bits hold a packed value whose meaning
// depends on the class: for digits it is the digit value, whilst for extended
// (non-ASCII) bytes it is the length of the multi-byte sequence led by this
// byte (zero for continuation bytes).
type Flags uint32

// VALUE_MASK selects the packed value field.
const VALUE_MASK Flags = 0x3F

// SPACE indicates horizontal or vertical whitespace.
const SPACE Flags = 1 << 6

// VERTICAL_SPACE indicates a line break (line feed, carriage return, etc).
const VERTICAL_SPACE Flags = 1 << 7

// DECIMAL_DIGIT indicates one of '0' .. '9'.
const DECIMAL_DIGIT Flags = 1 << 8

// DIGIT indicates a byte which has a digit value in some base up to 64.
const DIGIT Flags = 1 << 9

// NUMERIC_LITERAL indicates a byte which can occur within a numeric literal.
const NUMERIC_LITERAL Flags = 1 << 10

// UPPERCASE indicates one of 'A' .. 'Z'.
const UPPERCASE Flags = 1 << 11

// IDENTIFIER indicates a byte which can continue an identifier.
const IDENTIFIER Flags = 1 << 12

// IDENTIFIER_START indicates a byte which can start an identifier.
const IDENTIFIER_START Flags = 1 << 13

// SYMBOL indicates printable ASCII punctuation.
const SYMBOL Flags = 1 << 14

// EXTENDED indicates a byte outside of the ASCII range.
const EXTENDED Flags = 1 << 15

// INVALID indicates a byte which never occurs in well-formed UTF-8, or an
// ASCII control character with no meaning in source text.
const INVALID Flags = 1 << 16

var table [256]Flags

func init() {
	for i := range 256 {
		table[i] = classify(byte(i))
	}
}

// Classify returns the flags describing a given byte.
func Classify(b byte) Flags {
	return table[b]
}

// Value returns the packed value held in a set of flags.
func (p Flags) Value() uint {
	return uint(p & VALUE_MASK)
}

// Has checks whether all of the given flags are set.
func (p Flags) Has(flags Flags) bool {
	return p&flags == flags
}

// IsSpace checks whether a byte is whitespace.
func IsSpace(b byte) bool {
	return table[b]&SPACE != 0
}

// IsVerticalSpace checks whether a byte breaks a line.
func IsVerticalSpace(b byte) bool {
	return table[b]&VERTICAL_SPACE != 0
}

// IsDecimalDigit checks whether a byte is one of '0' .. '9'.
func IsDecimalDigit(b byte) bool {
	return table[b]&DECIMAL_DIGIT != 0
}

// IsDigit checks whether a byte has a digit value.
func IsDigit(b byte) bool {
	return table[b]&DIGIT != 0
}

// IsNumericLiteral checks whether a byte can occur in a numeric literal.
func IsNumericLiteral(b byte) bool {
	return table[b]&NUMERIC_LITERAL != 0
}

// IsUppercase checks whether a byte is an uppercase ASCII letter.
func IsUppercase(b byte) bool {
	return table[b]&UPPERCASE != 0
}

// IsIdentifier checks whether a byte can continue an identifier.
func IsIdentifier(b byte) bool {
	return table[b]&IDENTIFIER != 0
}

// IsIdentifierStart checks whether a byte can start an identifier.
func IsIdentifierStart(b byte) bool {
	return table[b]&IDENTIFIER_START != 0
}

// IsSymbol checks whether a byte is ASCII punctuation.
func IsSymbol(b byte) bool {
	return table[b]&SYMBOL != 0
}

// IsExtended checks whether a byte lies outside of the ASCII range.
func IsExtended(b byte) bool {
	return table[b]&EXTENDED != 0
}

// IsInvalid checks whether a byte is invalid in source text.
func IsInvalid(b byte) bool {
	return table[b]&INVALID != 0
}

// DigitValue returns the value of a digit byte, or false if the byte has no
// digit value.  Lowercase letters have values 36 .. 61 and so are distinct from
// their uppercase counterparts; bases up to 36 fold them using Lowercase.
func DigitValue(b byte) (uint, bool) {
	if !IsDigit(b) {
		return 0, false
	}
	//
	return table[b].Value(), true
}

// LeadLength returns the number of bytes in the UTF-8 sequence led by a given
// byte.  ASCII bytes have length 1, continuation and invalid bytes length 0.
func LeadLength(b byte) uint {
	switch {
	case b < 0x80:
		return 1
	case b < 0xC0 || IsInvalid(b):
		return 0
	default:
		return table[b].Value() + 1
	}
}

// Lowercase returns the lowercase form of an uppercase ASCII letter, or the byte
// itself otherwise.
func Lowercase(b byte) byte {
	if IsUppercase(b) {
		return b + ('a' - 'A')
	}
	//
	return b
}

func classify(b byte) Flags {
	switch {
	case b == ' ' || b == '\t':
		return SPACE
	case b == '\n' || b == '\v' || b == '\f' || b == '\r':
		return SPACE | VERTICAL_SPACE
	case b == 0 || b < 0x20 || b == 0x7F:
		return INVALID
	case b >= '0' && b <= '9':
		return DECIMAL_DIGIT | DIGIT | NUMERIC_LITERAL | IDENTIFIER | Flags(b-'0')
	case b >= 'A' && b <= 'Z':
		return UPPERCASE | DIGIT | NUMERIC_LITERAL | IDENTIFIER | IDENTIFIER_START | Flags(b-'A'+10)
	case b >= 'a' && b <= 'z':
		return DIGIT | NUMERIC_LITERAL | IDENTIFIER | IDENTIFIER_START | Flags(b-'a'+36)
	case b == '_':
		return NUMERIC_LITERAL | IDENTIFIER | IDENTIFIER_START
	case b == '.':
		return SYMBOL | DIGIT | NUMERIC_LITERAL | 62
	case b == ':':
		return SYMBOL | DIGIT | 63
	case b < 0x80:
		return SYMBOL
	case b < 0xC0:
		// continuation byte
		return EXTENDED | IDENTIFIER
	case b < 0xE0:
		return EXTENDED | IDENTIFIER | IDENTIFIER_START | 1
	case b < 0xF0:
		return EXTENDED | IDENTIFIER | IDENTIFIER_START | 2
	case b < 0xF8:
		return EXTENDED | IDENTIFIER | IDENTIFIER_START | 3
	default:
		return EXTENDED | INVALID
	}
}
