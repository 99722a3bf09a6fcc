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

// Ranger is a forward-only cursor over a source buffer.  Line and column
// numbers are recovered on demand from the source file instead.
type Ranger struct {
	text  []byte
	index int
}

// NewRanger constructs a ranger positioned at the start of a given buffer.
func NewRanger(text []byte) *Ranger {
	return &Ranger{text, 0}
}

// Index returns the offset of the current position.
func (p *Ranger) Index() int {
	return p.index
}

// AtEnd checks whether the end of the buffer has been reached.
func (p *Ranger) AtEnd() bool {
	return p.index >= len(p.text)
}

// Peek returns the byte a given distance ahead of the current position, or 0
// when that lies beyond the end of the buffer.
func (p *Ranger) Peek(n int) byte {
	if p.index+n < len(p.text) {
		return p.text[p.index+n]
	}
	//
	return 0
}

// Has checks whether a byte at least a given distance ahead exists.
func (p *Ranger) Has(n int) bool {
	return p.index+n < len(p.text)
}

// Advance moves the cursor forward by a given number of bytes, stopping at the
// end of the buffer.
func (p *Ranger) Advance(n int) {
	p.index = min(p.index+n, len(p.text))
}

// AdvanceWhile moves the cursor forward as long as the current byte satisfies
// a given predicate.
func (p *Ranger) AdvanceWhile(predicate func(byte) bool) {
	for !p.AtEnd() && predicate(p.text[p.index]) {
		p.Advance(1)
	}
}
