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
	"github.com/consensys/go-requite/pkg/requite/codeunit"
	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/util/source"
)

// Grouping identifies the kind of an open grouping.
type Grouping uint8

// BRACKET_GROUPING is opened by "[".
const BRACKET_GROUPING Grouping = 0

// TRIP_GROUPING is opened by "{".
const TRIP_GROUPING Grouping = 1

// CAP_GROUPING is opened by "{:".
const CAP_GROUPING Grouping = 2

// PARENTHESIS_GROUPING is opened by "(".
const PARENTHESIS_GROUPING Grouping = 3

// COMPAS_GROUPING is opened by "(>".
const COMPAS_GROUPING Grouping = 4

// VALUE_INTERPOLATION_GROUPING is opened by "\[" within a string and closed
// by the "]" which resumes that string.
const VALUE_INTERPOLATION_GROUPING Grouping = 5

var groupingOpeners = [...]string{"[", "{", "{:", "(", "(>", "\\["}

var groupingClosers = [...]string{"]", "}", ":}", ")", "<)", "]"}

type openGrouping struct {
	grouping Grouping
	// Index of the opening token
	index int
}

// Tokenize splits the contents of a given source file into tokens, reporting
// lexical errors into a given log.  The token sequence always ends with an
// END_OF_FILE token.  The returned flag indicates whether no errors arose.
func Tokenize(file *source.File, log *diag.Log) ([]Token, bool) {
	tokenizer := NewTokenizer(file, log)
	tokenizer.Tokenize()
	//
	return tokenizer.Tokens(), tokenizer.Ok()
}

// Tokenizer converts a source buffer into a sequence of tokens.  Errors do not
// stop tokenization: a dedicated error token (or an unmatched grouping) is
// produced and scanning continues.
type Tokenizer struct {
	file   *source.File
	text   []byte
	ranger *Ranger
	log    *diag.Log
	tokens []Token
	stack  []openGrouping
	errors uint
}

// NewTokenizer constructs a tokenizer for a given source file.
func NewTokenizer(file *source.File, log *diag.Log) *Tokenizer {
	text := file.Contents()
	return &Tokenizer{file, text, NewRanger(text), log, nil, nil, 0}
}

// Tokens returns the tokens produced so far.
func (p *Tokenizer) Tokens() []Token {
	return p.tokens
}

// Ok checks whether no errors were reported by this tokenizer.
func (p *Tokenizer) Ok() bool {
	return p.errors == 0
}

// HasGrouping checks whether any grouping remains open.  After a complete
// scan this is always false, since unmatched groupings are reported and
// discarded.
func (p *Tokenizer) HasGrouping() bool {
	return len(p.stack) > 0
}

// Tokenize scans the entire buffer.
func (p *Tokenizer) Tokenize() {
	for p.skipSpaceAndComments(); !p.ranger.AtEnd(); p.skipSpaceAndComments() {
		p.next()
	}
	// Report groupings left open
	for _, open := range p.stack {
		if open.grouping == VALUE_INTERPOLATION_GROUPING {
			p.error(p.tokens[open.index].Span, "interpolated string has no right quote")
		} else {
			p.error(p.tokens[open.index].Span, "\"%s\" has no right match", groupingOpeners[open.grouping])
		}
	}
	//
	p.stack = nil
	end := len(p.text)
	p.tokens = append(p.tokens, Token{END_OF_FILE, source.NewSpan(end, end), 0, NO_MATCH})
	//
	p.computeSpacing()
}

func (p *Tokenizer) next() {
	var (
		r     = p.ranger
		start = r.Index()
		b     = r.Peek(0)
	)
	//
	switch {
	case codeunit.IsDecimalDigit(b):
		p.scanNumber()
	case codeunit.IsIdentifierStart(b):
		r.Advance(1)
		r.AdvanceWhile(codeunit.IsIdentifier)
		p.emit(IDENTIFIER, start)
	case b == '"':
		r.Advance(1)
		p.scanString(start, false)
	case b == '\'':
		p.scanCodeunit()
	case codeunit.IsSymbol(b):
		p.scanSymbol()
	default:
		r.Advance(1)
		p.error(p.emit(ERROR_UNKNOWN, start).Span, "unknown codeunit %s", codeunit.Name(b))
	}
}

// Numbers start with a decimal digit and run through any identifier codeunit.
// A single '.' is included when followed by a decimal digit, making the
// literal real.
func (p *Tokenizer) scanNumber() {
	var (
		r     = p.ranger
		start = r.Index()
		kind  = INTEGER_LITERAL
	)
	//
	for !r.AtEnd() {
		b := r.Peek(0)
		//
		if codeunit.IsIdentifier(b) {
			r.Advance(1)
		} else if b == '.' && kind == INTEGER_LITERAL && codeunit.IsDecimalDigit(r.Peek(1)) && r.Has(1) {
			kind = REAL_LITERAL
			//
			r.Advance(1)
		} else {
			break
		}
	}
	//
	p.emit(kind, start)
}

// Scan the remainder of a string after its opening quote (or after the "]"
// closing an interpolation, when resuming).
func (p *Tokenizer) scanString(start int, resuming bool) {
	var r = p.ranger
	//
	for {
		if r.AtEnd() || codeunit.IsVerticalSpace(r.Peek(0)) {
			p.error(p.emit(ERROR_STRING, start).Span, "string literal has no right quote")
			return
		}
		//
		switch b := r.Peek(0); b {
		case '"':
			r.Advance(1)
			//
			if resuming {
				p.emit(INTERPOLATION_RIGHT, start)
			} else {
				p.emit(STRING_LITERAL, start)
			}
			//
			return
		case '\\':
			if r.Peek(1) == '[' && r.Has(1) {
				r.Advance(2)
				//
				kind := INTERPOLATION_LEFT
				if resuming {
					kind = INTERPOLATION_MIDDLE
				}
				//
				p.emit(kind, start)
				p.push(VALUE_INTERPOLATION_GROUPING)
				//
				return
			} else if _, n, ok := codeunit.Unescape(string(p.text[r.Index():min(r.Index()+4, len(p.text))])); ok {
				r.Advance(n)
			} else {
				// Malformed escapes are reported when the literal is decoded.
				r.Advance(1)
				//
				if !r.AtEnd() && !codeunit.IsVerticalSpace(r.Peek(0)) {
					r.Advance(1)
				}
			}
		default:
			r.Advance(1)
		}
	}
}

// Codeunit literals are raw: no escapes are recognised.
func (p *Tokenizer) scanCodeunit() {
	var (
		r     = p.ranger
		start = r.Index()
	)
	//
	r.Advance(1)
	r.AdvanceWhile(func(b byte) bool { return b != '\'' && !codeunit.IsVerticalSpace(b) })
	//
	if r.AtEnd() || r.Peek(0) != '\'' {
		p.error(p.emit(ERROR_CODEUNIT, start).Span, "codeunit literal has no right quote")
		return
	}
	//
	r.Advance(1)
	p.emit(CODEUNIT_LITERAL, start)
}

func (p *Tokenizer) scanSymbol() {
	var (
		r     = p.ranger
		start = r.Index()
		b     = r.Peek(0)
		c     = r.Peek(1)
		kind  Kind
		width = 1
	)
	// Greedy longest match on the following codeunit.
	switch b {
	case '[':
		r.Advance(1)
		p.emit(LEFT_BRACKET, start)
		p.push(BRACKET_GROUPING)
		//
		return
	case ']':
		if len(p.stack) > 0 && p.top().grouping == VALUE_INTERPOLATION_GROUPING {
			p.resume(start)
			//
			return
		}
		//
		r.Advance(1)
		p.pop(RIGHT_BRACKET, BRACKET_GROUPING, start)
		//
		return
	case '{':
		if c == ':' {
			r.Advance(2)
			p.emit(LEFT_CAP, start)
			p.push(CAP_GROUPING)
		} else {
			r.Advance(1)
			p.emit(LEFT_TRIP, start)
			p.push(TRIP_GROUPING)
		}
		//
		return
	case '}':
		r.Advance(1)
		p.pop(RIGHT_TRIP, TRIP_GROUPING, start)
		//
		return
	case '(':
		if c == '>' {
			r.Advance(2)
			p.emit(LEFT_COMPAS, start)
			p.push(COMPAS_GROUPING)
		} else {
			r.Advance(1)
			p.emit(LEFT_PARENTHESIS, start)
			p.push(PARENTHESIS_GROUPING)
		}
		//
		return
	case ')':
		r.Advance(1)
		p.pop(RIGHT_PARENTHESIS, PARENTHESIS_GROUPING, start)
		//
		return
	case ':':
		switch c {
		case ':':
			kind, width = DOUBLE_COLON, 2
		case '=':
			kind, width = CAST_ASSIGN, 2
		case '}':
			r.Advance(2)
			p.pop(RIGHT_CAP, CAP_GROUPING, start)
			//
			return
		default:
			kind = COLON
		}
	case '<':
		switch c {
		case '<':
			kind, width = SHIFT_LEFT, 2
		case '>':
			kind, width = SWAP, 2
		case '=':
			kind, width = LESS_EQUAL, 2
		case ')':
			r.Advance(2)
			p.pop(RIGHT_COMPAS, COMPAS_GROUPING, start)
			//
			return
		default:
			kind = LESS
		}
	case '>':
		switch c {
		case '>':
			kind, width = SHIFT_RIGHT, 2
		case '^':
			kind, width = ROTATE, 2
		case '=':
			kind, width = GREATER_EQUAL, 2
		default:
			kind = GREATER
		}
	case '=':
		kind, width = pick(c == '=', EQUAL, ASSIGN)
	case '!':
		kind, width = pick(c == '=', NOT_EQUAL, BANG)
	case '+':
		switch c {
		case '=':
			kind, width = ASSIGN_ADD, 2
		case '>':
			kind, width = CONCATENATE, 2
		default:
			kind = PLUS
		}
	case '-':
		kind, width = pick(c == '=', ASSIGN_SUBTRACT, MINUS)
	case '*':
		kind, width = pick(c == '=', ASSIGN_MULTIPLY, STAR)
	case '/':
		// Comments have already been skipped
		kind, width = pick(c == '=', ASSIGN_DIVIDE, SLASH)
	case '%':
		kind, width = pick(c == '=', ASSIGN_MODULUS, PERCENT)
	case '&':
		kind, width = pick(c == '&', LOGICAL_AND, AMPERSAND)
	case '|':
		if c != '|' {
			r.Advance(1)
			p.error(p.emit(ERROR_UNKNOWN, start).Span, "unknown codeunit %s", codeunit.Name(b))
			//
			return
		}
		//
		kind, width = LOGICAL_OR, 2
	case ';':
		kind, width = pick(c == ';', DOUBLE_SEMICOLON, SEMICOLON)
	case '.':
		kind, width = pick(c == '.', DOUBLE_DOT, DOT)
	case '\\':
		kind, width = pick(c == '\\', DOUBLE_BACKSLASH, BACKSLASH)
	case '@':
		kind = AT
	case '#':
		kind = HASH
	case '$':
		kind = DOLLAR
	case '`':
		kind = BACKTICK
	case '?':
		kind = QUESTION
	default:
		r.Advance(1)
		p.error(p.emit(ERROR_UNKNOWN, start).Span, "unknown codeunit %s", codeunit.Name(b))
		//
		return
	}
	//
	r.Advance(width)
	p.emit(kind, start)
}

// Resume scanning an interpolated string after the "]" closing one of its
// interpolations.  The piece which opened that interpolation is matched with
// the piece produced here.
func (p *Tokenizer) resume(start int) {
	var open = p.top()
	//
	p.stack = p.stack[:len(p.stack)-1]
	p.ranger.Advance(1)
	p.scanString(start, true)
	//
	if last := len(p.tokens) - 1; p.tokens[last].Kind != ERROR_STRING {
		p.tokens[open.index].Match = last
		//
		if p.tokens[last].Kind == INTERPOLATION_RIGHT {
			p.tokens[last].Match = open.index
		}
	}
}

func (p *Tokenizer) skipSpaceAndComments() {
	r := p.ranger
	//
	for !r.AtEnd() {
		switch b := r.Peek(0); {
		case codeunit.IsSpace(b):
			r.Advance(1)
		case b == '/' && r.Peek(1) == '/' && r.Has(1):
			r.AdvanceWhile(func(b byte) bool { return !codeunit.IsVerticalSpace(b) })
		case b == '/' && r.Peek(1) == '*' && r.Has(1):
			start := r.Index()
			//
			r.Advance(2)
			//
			for !r.AtEnd() && (r.Peek(0) != '*' || r.Peek(1) != '/' || !r.Has(1)) {
				r.Advance(1)
			}
			//
			if r.AtEnd() {
				p.error(source.NewSpan(start, start+2), "block comment has no end")
			} else {
				r.Advance(2)
			}
		default:
			return
		}
	}
}

func (p *Tokenizer) push(grouping Grouping) {
	p.stack = append(p.stack, openGrouping{grouping, len(p.tokens) - 1})
}

func (p *Tokenizer) top() openGrouping {
	return p.stack[len(p.stack)-1]
}

// Emit a closing grouping token, matching it against the innermost open
// grouping.  A mismatch leaves the stack unchanged.
func (p *Tokenizer) pop(kind Kind, grouping Grouping, start int) {
	var token = p.emit(kind, start)
	//
	if len(p.stack) == 0 {
		p.error(token.Span, "\"%s\" has no left match", groupingClosers[grouping])
		return
	} else if open := p.top(); open.grouping != grouping {
		p.error(token.Span, "\"%s\" does not match \"%s\"", groupingClosers[grouping],
			groupingOpeners[open.grouping])
		//
		return
	}
	//
	open := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	p.tokens[open.index].Match = len(p.tokens) - 1
	token.Match = open.index
}

func (p *Tokenizer) emit(kind Kind, start int) *Token {
	p.tokens = append(p.tokens, Token{kind, source.NewSpan(start, p.ranger.Index()), 0, NO_MATCH})
	return &p.tokens[len(p.tokens)-1]
}

// Whitespace around a token is exactly a gap between it and its neighbour.
func (p *Tokenizer) computeSpacing() {
	for i := range p.tokens {
		var (
			token   = &p.tokens[i]
			spacing Spacing
		)
		//
		if i == 0 || p.tokens[i-1].Span.End() < token.Span.Start() {
			spacing |= SPACE_BEFORE
		}
		//
		if i+1 == len(p.tokens) || token.Span.End() == len(p.text) || token.Span.End() < p.tokens[i+1].Span.Start() {
			spacing |= SPACE_AFTER
		}
		//
		token.Spacing = spacing
	}
}

func (p *Tokenizer) error(span source.Span, format string, args ...any) {
	p.errors++
	p.log.Error(p.file, span, format, args...)
}

func pick(cond bool, double Kind, single Kind) (Kind, int) {
	if cond {
		return double, 2
	}
	//
	return single, 1
}
