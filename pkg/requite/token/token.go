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

import (
	"fmt"

	"github.com/consensys/go-requite/pkg/util/source"
)

// Spacing records whether whitespace surrounds a token.  The start and end of
// the buffer, as well as comments, count as whitespace.
type Spacing uint8

// SPACE_BEFORE indicates whitespace immediately precedes a token.
const SPACE_BEFORE Spacing = 1

// SPACE_AFTER indicates whitespace immediately follows a token.
const SPACE_AFTER Spacing = 2

// NO_MATCH marks a grouping token without a partner.
const NO_MATCH = -1

// Token associates a lexical kind with a given range of the source buffer.
type Token struct {
	Kind Kind
	Span source.Span
	// Spacing around this token
	Spacing Spacing
	// Index of the partner of a grouping token, or NO_MATCH.  The opening and
	// inner pieces of an interpolated string refer to the piece following
	// them, whilst the closing piece refers to the piece before it.
	Match int
}

// SpaceBefore checks whether whitespace precedes this token.
func (p *Token) SpaceBefore() bool {
	return p.Spacing&SPACE_BEFORE != 0
}

// SpaceAfter checks whether whitespace follows this token.
func (p *Token) SpaceAfter() bool {
	return p.Spacing&SPACE_AFTER != 0
}

// IsUnary checks whether this token is spaced like a prefix operator, that is
// with space before but not after.
func (p *Token) IsUnary() bool {
	return p.Spacing == SPACE_BEFORE
}

// IsBinary checks whether this token is spaced like an infix operator, that is
// symmetrically.
func (p *Token) IsBinary() bool {
	return p.Spacing == 0 || p.Spacing == SPACE_BEFORE|SPACE_AFTER
}

// Text returns the source text of this token.
func (p *Token) Text(file *source.File) string {
	return file.Text(p.Span)
}

func (p Token) String() string {
	return fmt.Sprintf("%s@%s", p.Kind, p.Span)
}
