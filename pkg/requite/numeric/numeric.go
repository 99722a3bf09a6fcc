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
package numeric

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/consensys/go-requite/pkg/requite/codeunit"
)

// MIN_BASE is the smallest base which may prefix a literal.
const MIN_BASE = 2

// MAX_BASE is the largest base which may prefix a literal.
const MAX_BASE = 64

// MAX_FOLDING_BASE is the largest base in which letter case is ignored.
const MAX_FOLDING_BASE = 36

// ErrEmpty signals a literal (or its digits following a base prefix) with no
// digits at all.
var ErrEmpty = errors.New("numeric literal has no digits")

// Decode the text of an integer literal.  A literal is either a sequence of
// decimal digits, or a decimal base followed by 'x' and digits in that base
// (e.g. "16xFF" or "2x110").  Underscores are ignored throughout.  In bases up
// to 36 letters are case-insensitive, so "16xff" equals "16xFF".
func Decode(text string) (*big.Int, error) {
	var (
		base   = uint64(10)
		digits = text
	)
	//
	if prefix, rest, found := strings.Cut(text, "x"); found {
		parsed, err := strconv.ParseUint(strings.ReplaceAll(prefix, "_", ""), 10, 8)
		if err != nil || parsed < MIN_BASE || parsed > MAX_BASE {
			return nil, fmt.Errorf("invalid base \"%s\" (expected %d .. %d)", prefix, MIN_BASE, MAX_BASE)
		}
		//
		base, digits = parsed, rest
	}
	//
	return decodeDigits(digits, uint(base))
}

func decodeDigits(digits string, base uint) (*big.Int, error) {
	var (
		value = new(big.Int)
		bbase = new(big.Int).SetUint64(uint64(base))
		digit = new(big.Int)
		count = 0
	)
	//
	for i := 0; i < len(digits); i++ {
		b := digits[i]
		//
		if b == '_' {
			continue
		} else if base <= MAX_FOLDING_BASE {
			b = codeunit.Lowercase(b)
			// Fold lowercase letters onto the uppercase values.
			if b >= 'a' && b <= 'z' {
				b -= 'a' - 'A'
			}
		}
		//
		v, ok := codeunit.DigitValue(b)
		if !ok || v >= base {
			return nil, fmt.Errorf("invalid digit '%c' for base %d", digits[i], base)
		}
		//
		value.Mul(value, bbase)
		value.Add(value, digit.SetUint64(uint64(v)))
		//
		count++
	}
	//
	if count == 0 {
		return nil, ErrEmpty
	}
	//
	return value, nil
}

// DecodeUint decodes an integer literal which must fit within a given number
// of bits.
func DecodeUint(text string, bits uint) (uint64, error) {
	value, err := Decode(text)
	if err != nil {
		return 0, err
	} else if uint(value.BitLen()) > bits || bits > 64 {
		return 0, fmt.Errorf("numeric literal %s out of range (exceeds %d bits)", text, bits)
	}
	//
	return value.Uint64(), nil
}
