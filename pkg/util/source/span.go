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
package source

import "fmt"

// Span represents a contiguous slice of the original byte buffer.  Instead of
// representing this as a byte slice, however, it is useful to retain the
// physical indices.  This allows us to do certain things, such as determine the
// enclosing line, etc.  A span of zero length marks something synthesized
// rather than read from the source.
type Span struct {
	// The first byte of this span in the original buffer.
	start int
	// One past the final byte of this span in the original buffer.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original buffer.
func (p Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original buffer.
func (p Span) End() int {
	return p.end
}

// Length returns the number of bytes covered by this span in the original
// buffer.
func (p Span) Length() int {
	return p.end - p.start
}

// IsSynthesized checks whether this span covers no text at all.
func (p Span) IsSynthesized() bool {
	return p.start == p.end
}

// Join returns the smallest span which encloses both this span and the given
// span.
func (p Span) Join(other Span) Span {
	return Span{min(p.start, other.start), max(p.end, other.end)}
}

// Collapse returns a zero-length span positioned at the end of this span.
func (p Span) Collapse() Span {
	return Span{p.end, p.end}
}

func (p Span) String() string {
	return fmt.Sprintf("%d:%d", p.start, p.end)
}
