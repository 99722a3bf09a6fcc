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

import (
	"fmt"
	"strings"
)

var controlNames = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "LF", "VT", "FF", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// Name returns a canonical debugging name for a given byte.  Control
// characters use their ASCII mnemonics, printable characters are rendered
// literally and bytes outside the ASCII range are named after their role in a
// UTF-8 sequence along with their payload bits.
func Name(b byte) string {
	switch {
	case b < 0x20:
		return controlNames[b]
	case b == ' ':
		return "SPACE"
	case b == 0x7F:
		return "DEL"
	case b < 0x80:
		return string(rune(b))
	case b < 0xC0:
		return fmt.Sprintf("CONTINUE_%06b", b&0x3F)
	case b < 0xE0:
		return fmt.Sprintf("TWO_START_%05b", b&0x1F)
	case b < 0xF0:
		return fmt.Sprintf("THREE_START_%04b", b&0x0F)
	case b < 0xF8:
		return fmt.Sprintf("FOUR_START_%03b", b&0x07)
	default:
		return fmt.Sprintf("INVALID_%02X", b)
	}
}

// Escape returns the intermediate-file encoding of a given byte, as used when
// writing literal text into a quoted string.  Printable ASCII is passed through
// (except for the quote and backslash), common control characters have named
// escapes and everything else is written as two hex digits between
// backslashes.
func Escape(b byte) string {
	switch b {
	case '\\':
		return "\\\\"
	case '"':
		return "\\\""
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case '\r':
		return "\\r"
	}
	//
	if b >= 0x20 && b < 0x7F {
		return string(rune(b))
	}
	//
	return fmt.Sprintf("\\%02X\\", b)
}

// EscapeString applies Escape to every byte of a given string.
func EscapeString(text string) string {
	var builder strings.Builder
	//
	for i := 0; i < len(text); i++ {
		builder.WriteString(Escape(text[i]))
	}
	//
	return builder.String()
}

// Unescape decodes the escape sequence at the start of a given string (which
// must begin with a backslash).  It returns the decoded byte and the number of
// bytes consumed, or false if the sequence is malformed.
func Unescape(text string) (byte, int, bool) {
	if len(text) < 2 || text[0] != '\\' {
		return 0, 0, false
	}
	//
	switch text[1] {
	case '\\', '"', '\'':
		return text[1], 2, true
	case 'n':
		return '\n', 2, true
	case 't':
		return '\t', 2, true
	case 'r':
		return '\r', 2, true
	case '0':
		// A zero followed by a hex digit is a hex escape.
		if len(text) < 4 || !isHex(text[2]) || text[3] != '\\' {
			return 0, 2, true
		}
	}
	//
	if len(text) >= 4 && isHex(text[1]) && isHex(text[2]) && text[3] == '\\' {
		return hexValue(text[1])<<4 | hexValue(text[2]), 4, true
	}
	//
	return 0, 0, false
}

// UnescapeString decodes every escape sequence in a given string, returning
// false if any is malformed.
func UnescapeString(text string) (string, bool) {
	var (
		builder strings.Builder
		ok      = true
	)
	//
	for i := 0; i < len(text); {
		if text[i] != '\\' {
			builder.WriteByte(text[i])
			i++
			//
			continue
		}
		//
		b, n, valid := Unescape(text[i:])
		if !valid {
			builder.WriteByte(text[i])
			//
			ok = false
			i++
		} else {
			builder.WriteByte(b)
			//
			i += n
		}
	}
	//
	return builder.String(), ok
}

func isHex(b byte) bool {
	return IsDecimalDigit(b) || (b >= 'A' && b <= 'F') || (b >= 'a' && b <= 'f')
}

func hexValue(b byte) byte {
	switch {
	case IsDecimalDigit(b):
		return b - '0'
	case b >= 'a':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
