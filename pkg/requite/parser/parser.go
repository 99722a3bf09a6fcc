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
package parser

import (
	"slices"

	"github.com/consensys/go-requite/pkg/requite/codeunit"
	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/numeric"
	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/requite/token"
	"github.com/consensys/go-requite/pkg/util/source"
)

// Config determines what source text the parser accepts.
type Config struct {
	// IntermediateForm permits internal and intermediate opcodes to be written
	// by name (or number) in bracket expressions.
	IntermediateForm bool
}

// Operators at each binary precedence level, along with the (raw) opcode each
// produces.
var (
	logicalOperators = map[token.Kind]opcode.Opcode{
		token.LOGICAL_AND: opcode.LOGICAL_AND,
		token.LOGICAL_OR:  opcode.LOGICAL_OR,
	}
	comparisonOperators = map[token.Kind]opcode.Opcode{
		token.GREATER:       opcode.GREATER,
		token.GREATER_EQUAL: opcode.GREATER_EQUAL,
		token.LESS:          opcode.LESS,
		token.LESS_EQUAL:    opcode.LESS_EQUAL,
		token.EQUAL:         opcode.EQUAL,
		token.NOT_EQUAL:     opcode.NOT_EQUAL,
	}
	additiveOperators = map[token.Kind]opcode.Opcode{
		token.PLUS:        opcode.ADD,
		token.MINUS:       opcode.NEGATE_OR_SUBTRACT,
		token.CONCATENATE: opcode.CONCATENATE,
	}
	multiplicativeOperators = map[token.Kind]opcode.Opcode{
		token.STAR:        opcode.MULTIPLY,
		token.SLASH:       opcode.DIVIDE,
		token.PERCENT:     opcode.MODULUS,
		token.SHIFT_LEFT:  opcode.SHIFT_LEFT,
		token.SHIFT_RIGHT: opcode.SHIFT_RIGHT,
		token.ROTATE:      opcode.ROTATE,
	}
	assignmentOperators = map[token.Kind]opcode.Opcode{
		token.ASSIGN_ADD:      opcode.ASSIGN_ADD,
		token.ASSIGN_SUBTRACT: opcode.ASSIGN_SUBTRACT,
		token.ASSIGN_MULTIPLY: opcode.ASSIGN_MULTIPLY,
		token.ASSIGN_DIVIDE:   opcode.ASSIGN_DIVIDE,
		token.ASSIGN_MODULUS:  opcode.ASSIGN_MODULUS,
		token.CAST_ASSIGN:     opcode.CAST_ASSIGN,
		token.SWAP:            opcode.SWAP,
	}
	earlyUnaryOperators = map[token.Kind]opcode.Opcode{
		token.BANG:  opcode.LOGICAL_NOT,
		token.MINUS: opcode.NEGATE_OR_SUBTRACT,
		token.AT:    opcode.BAKE,
		token.HASH:  opcode.EXPAND,
	}
	// Type constructor prefixes.  A "&&" prefix is two references.
	lateUnaryOperators = map[token.Kind][]opcode.Opcode{
		token.SLASH:       {opcode.FAT_POINTER},
		token.PERCENT:     {opcode.ARRAY},
		token.AMPERSAND:   {opcode.REFERENCE},
		token.LOGICAL_AND: {opcode.REFERENCE, opcode.REFERENCE},
		token.DOLLAR:      {opcode.STOLEN_REFERENCE},
		token.STAR:        {opcode.POINTER},
		token.BACKTICK:    {opcode.MUTABLE},
	}
	fieldSeparators = map[token.Kind]opcode.Opcode{
		token.LESS:    opcode.LEFT_FIELD_SEPARATOR,
		token.GREATER: opcode.RIGHT_FIELD_SEPARATOR,
		token.SWAP:    opcode.FIELD_SEPARATOR,
	}
	// Operators which can only be infix, and so have no meaning at the start of
	// an expression.
	binaryOnlyOperators = []token.Kind{
		token.ASSIGN, token.ASSIGN_ADD, token.ASSIGN_SUBTRACT, token.ASSIGN_MULTIPLY, token.ASSIGN_DIVIDE,
		token.ASSIGN_MODULUS, token.CAST_ASSIGN, token.COLON, token.DOUBLE_COLON, token.SEMICOLON,
		token.DOUBLE_SEMICOLON, token.LOGICAL_OR, token.GREATER_EQUAL, token.LESS_EQUAL, token.EQUAL,
		token.NOT_EQUAL, token.SHIFT_LEFT, token.SHIFT_RIGHT, token.ROTATE, token.PLUS, token.CONCATENATE,
		token.DOT, token.DOUBLE_DOT, token.LESS, token.GREATER, token.SWAP,
	}
	closerText = map[token.Kind]string{
		token.RIGHT_BRACKET:     "]",
		token.RIGHT_TRIP:        "}",
		token.RIGHT_CAP:         ":}",
		token.RIGHT_PARENTHESIS: ")",
		token.RIGHT_COMPAS:      "<)",
	}
)

// Parse a sequence of tokens into a chain of raw (i.e. unsituated) top-level
// expressions, returning the first expression in the chain (or expr.NONE) and
// whether parsing succeeded without error.  Parsing continues after errors, so
// that as many as possible are reported.
func Parse(srcfile *source.File, tokens []token.Token, tree *expr.Tree, log *diag.Log,
	config Config) (expr.Id, bool) {
	//
	parser := NewParser(srcfile, tokens, tree, log, config)
	root := parser.Parse()
	//
	return root, parser.Ok()
}

// Parser is responsible for parsing tokens into expressions.
type Parser struct {
	// Source file being parsed
	srcfile *source.File
	// Tokens being parsed, terminated by END_OF_FILE
	tokens []token.Token
	// Position within the tokens
	index int
	// Tree into which expressions are allocated
	tree   *expr.Tree
	log    *diag.Log
	config Config
	// Whether the items being parsed are the direct items of a parameter or
	// argument list, where "<", ">" and "<>" separate fields rather than being
	// operators.
	fields bool
	// Number of errors reported by this parser
	errors uint
}

// NewParser constructs a new parser for a given sequence of tokens.
func NewParser(srcfile *source.File, tokens []token.Token, tree *expr.Tree, log *diag.Log,
	config Config) *Parser {
	return &Parser{srcfile, tokens, 0, tree, log, config, false, 0}
}

// Ok checks whether any errors have been reported by this parser.
func (p *Parser) Ok() bool {
	return p.errors == 0
}

// Parse every top-level expression.
func (p *Parser) Parse() expr.Id {
	var roots []expr.Id
	//
	for !p.follows(token.END_OF_FILE) {
		roots = p.parseItem(roots)
	}
	//
	return p.tree.Link(roots)
}

// Parse the next expression within some sequence, guaranteeing progress.
// Tokens which cannot start an expression are skipped.
func (p *Parser) parseItem(items []expr.Id) []expr.Id {
	start := p.index
	item := p.parseExpression()
	//
	if p.index == start {
		p.index++
		return items
	}
	//
	return append(items, item)
}

// Parse items up to (but excluding) one of the given closing tokens, or the
// end of the file.
func (p *Parser) parseItems(closers ...token.Kind) []expr.Id {
	return p.parseSequence(false, closers...)
}

// Parse the items of a parameter or argument list up to (but excluding) its
// closing token.  A separator token is always a field separator here,
// whatever its spacing.
func (p *Parser) parseFields(closer token.Kind) []expr.Id {
	return p.parseSequence(true, closer)
}

func (p *Parser) parseSequence(fields bool, closers ...token.Kind) []expr.Id {
	var (
		items []expr.Id
		outer = p.fields
	)
	//
	p.fields = fields
	//
	for !p.follows(closers...) && !p.follows(token.END_OF_FILE) {
		tok := p.lookahead()
		//
		if op, ok := fieldSeparators[tok.Kind]; ok && fields {
			p.index++
			items = append(items, p.node(op, tok.Span))
		} else {
			items = p.parseItem(items)
		}
	}
	//
	p.fields = outer
	//
	return items
}

// ============================================================================
// Binary precedence levels (outermost first)
// ============================================================================

func (p *Parser) parseExpression() expr.Id {
	return p.parseAssignment()
}

// Assignment is n-ary for "=" (collecting every target into one node), and
// binary for compound assignment, cast assignment and swap.
func (p *Parser) parseAssignment() expr.Id {
	var (
		start = p.index
		lhs   = p.parseBinding()
	)
	//
	if _, ok := p.binaryOperator(token.ASSIGN); ok {
		items := []expr.Id{lhs, p.parseBinding()}
		//
		for p.follows(token.ASSIGN) {
			if _, ok := p.binaryOperator(token.ASSIGN); !ok {
				break
			}
			//
			items = append(items, p.parseBinding())
		}
		//
		return p.node(opcode.ASSIGN, p.spanOf(start, p.index-1), items...)
	} else if tok, ok := p.binaryOperator(keysOf(assignmentOperators)...); ok {
		rhs := p.parseBinding()
		return p.node(assignmentOperators[tok.Kind], p.spanOf(start, p.index-1), lhs, rhs)
	}
	//
	return lhs
}

// Bindings are right associative.
func (p *Parser) parseBinding() expr.Id {
	var (
		start = p.index
		lhs   = p.parseCast()
	)
	//
	if tok, ok := p.binaryOperator(token.COLON, token.DOUBLE_COLON); ok {
		op := opcode.BIND_VALUE_OR_DEFAULT_VALUE
		if tok.Kind == token.DOUBLE_COLON {
			op = opcode.BIND_SYMBOL_OR_DEFAULT_SYMBOL
		}
		//
		rhs := p.parseBinding()
		//
		return p.node(op, p.spanOf(start, p.index-1), lhs, rhs)
	}
	//
	return lhs
}

// Casts are right associative, with the type on the left.
func (p *Parser) parseCast() expr.Id {
	var (
		start = p.index
		lhs   = p.parseNary(p.parseComparison, logicalOperators)
	)
	//
	if tok, ok := p.binaryOperator(token.SEMICOLON, token.DOUBLE_SEMICOLON); ok {
		rhs := p.parseCast()
		return p.node(castOpcode(tok.Kind), p.spanOf(start, p.index-1), lhs, rhs)
	}
	//
	return lhs
}

func (p *Parser) parseComparison() expr.Id {
	return p.parseNary(p.parseAdditive, comparisonOperators)
}

func (p *Parser) parseAdditive() expr.Id {
	return p.parseNary(p.parseMultiplicative, additiveOperators)
}

func (p *Parser) parseMultiplicative() expr.Id {
	return p.parseNary(p.parseEarlyUnary, multiplicativeOperators)
}

// Parse an n-ary precedence level.  A run of the same operator is collected
// into a single expression, whilst a change of operator nests what has been
// collected so far as the first operand (i.e. left associatively).
func (p *Parser) parseNary(next func() expr.Id, operators map[token.Kind]opcode.Opcode) expr.Id {
	var (
		start = p.index
		lhs   = next()
		kinds = keysOf(operators)
	)
	//
	for {
		tok, ok := p.binaryOperator(kinds...)
		if !ok {
			return lhs
		}
		//
		items := []expr.Id{lhs, next()}
		//
		for p.follows(tok.Kind) {
			if _, ok := p.binaryOperator(tok.Kind); !ok {
				break
			}
			//
			items = append(items, next())
		}
		//
		lhs = p.node(operators[tok.Kind], p.spanOf(start, p.index-1), items...)
	}
}

// ============================================================================
// Unary and postfix levels
// ============================================================================

// Early unary operators must not be followed by whitespace.
func (p *Parser) parseEarlyUnary() expr.Id {
	var (
		start = p.index
		tok   = p.lookahead()
	)
	//
	if op, ok := earlyUnaryOperators[tok.Kind]; ok {
		p.index++
		//
		if tok.SpaceAfter() {
			p.error(tok.Span, "invalid spacing around unary operator \"%s\"", p.text(tok))
		}
		//
		operand := p.parseEarlyUnary()
		//
		return p.node(op, p.spanOf(start, p.index-1), operand)
	}
	//
	return p.parsePostfix()
}

// Postfix groupings must immediately follow their head.
func (p *Parser) parsePostfix() expr.Id {
	var (
		start = p.index
		head  = p.parseLateUnary()
	)
	//
	for {
		tok := p.lookahead()
		//
		if tok.SpaceBefore() || !p.follows(token.LEFT_PARENTHESIS, token.LEFT_COMPAS) {
			return head
		}
		//
		op, closer := opcode.CALL_OR_SIGNATURE, token.RIGHT_PARENTHESIS
		if tok.Kind == token.LEFT_COMPAS {
			op, closer = opcode.SPECIALIZATION, token.RIGHT_COMPAS
		}
		//
		p.index++
		//
		var items []expr.Id
		if op == opcode.CALL_OR_SIGNATURE {
			items = append([]expr.Id{head}, p.parseFields(closer)...)
		} else {
			items = append([]expr.Id{head}, p.parseItems(closer)...)
		}
		//
		p.expect(closer)
		head = p.node(op, p.spanOf(start, p.index-1), items...)
	}
}

// Late unary operators are type constructor prefixes, which nest right to
// left.  A chain of prefixes followed directly by a cast is a cast to a type
// whose root is inferred, e.g. "*; x" casts x to a pointer of some inferred
// type.
func (p *Parser) parseLateUnary() expr.Id {
	var (
		start = p.index
		chain []expr.Id
	)
	//
	for {
		tok := p.lookahead()
		ops, ok := lateUnaryOperators[tok.Kind]
		//
		if !ok {
			break
		}
		//
		p.index++
		//
		for _, op := range ops {
			chain = append(chain, p.synthesize(op, tok.Span))
		}
	}
	//
	if len(chain) == 0 {
		return p.parseReflect()
	} else if tok := p.lookahead(); p.follows(token.SEMICOLON, token.DOUBLE_SEMICOLON) {
		typ := p.wrap(chain, p.synthesize(opcode.INFERENCED_TYPE, tok.Span), start)
		// Skip the cast operator
		p.index++
		// The value is parsed at the additive level, not the cast level.
		value := p.parseAdditive()
		//
		return p.node(castOpcode(tok.Kind), p.spanOf(start, p.index-1), typ, value)
	}
	//
	return p.wrap(chain, p.parseReflect(), start)
}

// Nest a chain of prefixes (outermost first) around an operand.  Each prefix
// spans from its own token to the last token consumed.
func (p *Parser) wrap(chain []expr.Id, operand expr.Id, start int) expr.Id {
	end := p.tokens[max(start, p.index-1)].Span.End()
	//
	for i := len(chain) - 1; i >= 0; i-- {
		p.tree.AppendBranch(chain[i], operand)
		p.tree.SetSpan(chain[i], source.NewSpan(p.tree.Span(chain[i]).Start(), end))
		operand = chain[i]
	}
	//
	return operand
}

// Reflection is left associative, and binds tighter than everything else.
func (p *Parser) parseReflect() expr.Id {
	var (
		start = p.index
		lhs   = p.parsePrimary()
	)
	//
	for {
		tok, ok := p.binaryOperator(token.DOT, token.DOUBLE_DOT)
		if !ok {
			return lhs
		}
		//
		op := opcode.REFLECT_VALUE
		if tok.Kind == token.DOUBLE_DOT {
			op = opcode.REFLECT_SYMBOL
		}
		//
		rhs := p.parsePrimary()
		lhs = p.node(op, p.spanOf(start, p.index-1), lhs, rhs)
	}
}

// ============================================================================
// Primary expressions
// ============================================================================

func (p *Parser) parsePrimary() expr.Id {
	var (
		start = p.index
		tok   = p.lookahead()
	)
	//
	switch tok.Kind {
	case token.LEFT_BRACKET:
		return p.parseBracket()
	case token.LEFT_TRIP:
		return p.parseGrouping(opcode.TRIP, token.RIGHT_TRIP)
	case token.LEFT_CAP:
		return p.parseGrouping(opcode.CONDUIT, token.RIGHT_CAP)
	case token.LEFT_PARENTHESIS:
		// A signature (or call) with an inferred head
		p.index++
		head := p.synthesize(opcode.INFERENCED_TYPE, tok.Span)
		items := append([]expr.Id{head}, p.parseFields(token.RIGHT_PARENTHESIS)...)
		p.expect(token.RIGHT_PARENTHESIS)
		//
		return p.node(opcode.CALL_OR_SIGNATURE, p.spanOf(start, p.index-1), items...)
	case token.BACKSLASH:
		p.index++
		operand := p.parsePrimary()
		//
		return p.node(opcode.IDENTIFY, p.spanOf(start, p.index-1), operand)
	case token.QUESTION:
		p.index++
		return p.node(opcode.INFERENCED_TYPE_OR_INDETERMINATE, tok.Span)
	case token.IDENTIFIER:
		p.index++
		return p.tree.NewText(opcode.IDENTIFIER, tok.Span, p.text(tok))
	case token.INTEGER_LITERAL:
		p.index++
		return p.parseInteger(tok)
	case token.REAL_LITERAL:
		p.index++
		return p.tree.NewText(opcode.REAL_LITERAL, tok.Span, p.text(tok))
	case token.STRING_LITERAL:
		p.index++
		text := p.text(tok)
		//
		return p.tree.NewText(opcode.STRING_LITERAL, tok.Span, p.unescape(tok, text[1:len(text)-1]))
	case token.CODEUNIT_LITERAL:
		p.index++
		text := p.text(tok)
		//
		return p.tree.NewText(opcode.CODEUNIT_LITERAL, tok.Span, text[1:len(text)-1])
	case token.INTERPOLATION_LEFT:
		return p.parseInterpolation()
	case token.ERROR_STRING, token.ERROR_CODEUNIT, token.ERROR_UNKNOWN:
		// Already reported by the tokenizer
		p.index++
		return p.node(opcode.ERROR, tok.Span)
	}
	//
	if slices.Contains(binaryOnlyOperators, tok.Kind) {
		p.index++
		p.error(tok.Span, "operator \"%s\" has no left operand", p.text(tok))
		//
		return p.node(opcode.ERROR, tok.Span)
	} else if tok.Kind == token.END_OF_FILE {
		p.error(tok.Span, "unexpected end of file")
	} else if !tok.Kind.IsRightGrouping() || tok.Match != token.NO_MATCH {
		// Unmatched closers were reported by the tokenizer
		p.error(tok.Span, "unexpected \"%s\"", p.text(tok))
	}
	// Not consumed, thus the caller decides how to recover.
	return p.node(opcode.ERROR, tok.Span)
}

// Parse a bracket expression.  This is either an opcode followed by its
// branches, an anonymous function or just a grouping of one expression.
func (p *Parser) parseBracket() expr.Id {
	var (
		open = p.index
		tok  = p.lookahead()
	)
	//
	p.index++
	//
	switch {
	case p.isAnonymousFunction():
		return p.parseAnonymousFunction(open)
	case p.follows(token.IDENTIFIER):
		return p.parseOpcodeBracket(open, p.lookahead())
	case p.follows(token.INTEGER_LITERAL) && p.config.IntermediateForm:
		return p.parseOpcodeBracket(open, p.lookahead())
	case p.follows(token.RIGHT_BRACKET):
		p.index++
		p.error(p.spanOf(open, p.index-1), "empty bracket expression")
		//
		return p.node(opcode.ERROR, tok.Span)
	}
	// Grouping, within which separators are operators again
	outer := p.fields
	p.fields = false
	item := p.parseExpression()
	p.fields = outer
	//
	if !p.follows(token.RIGHT_BRACKET) && !p.follows(token.END_OF_FILE) {
		p.error(p.lookahead().Span, "expected \"]\" to close grouping")
		p.skipGrouping(open)
	}
	//
	p.expect(token.RIGHT_BRACKET)
	//
	return item
}

// Parse "[name branch...]", positioned at the name.
func (p *Parser) parseOpcodeBracket(open int, name *token.Token) expr.Id {
	op, ok := p.lookupOpcode(name)
	//
	p.index++
	//
	if !ok {
		p.skipGrouping(open)
		p.expect(token.RIGHT_BRACKET)
		//
		return p.node(opcode.ERROR, p.spanOf(open, p.index-1))
	}
	//
	branches := p.parseItems(token.RIGHT_BRACKET, token.DOUBLE_BACKSLASH)
	//
	if p.follows(token.DOUBLE_BACKSLASH) {
		p.parseTrailer(open)
	}
	//
	p.expect(token.RIGHT_BRACKET)
	//
	return p.node(op, p.spanOf(open, p.index-1), branches...)
}

// Resolve the token naming the opcode of a bracket expression, reporting an
// error if this fails.
func (p *Parser) lookupOpcode(name *token.Token) (opcode.Opcode, bool) {
	var (
		text = p.text(name)
		op   opcode.Opcode
		ok   bool
	)
	//
	if name.Kind == token.INTEGER_LITERAL {
		if value, err := numeric.Decode(text); err == nil && value.IsUint64() &&
			value.Uint64() < uint64(opcode.NUM_OPCODES) {
			op, ok = opcode.Opcode(value.Uint64()), true
		}
	} else {
		op, ok = opcode.Lookup(text)
	}
	//
	switch {
	case !ok:
		p.error(name.Span, "unknown opcode \"%s\"", text)
	case (op.IsInternal() || op.IsIntermediate()) && !p.config.IntermediateForm:
		p.error(name.Span, "opcode \"%s\" is only valid in intermediate form", text)
	case op.Data() == opcode.TEXT || op.Data() == opcode.INTEGER:
		p.error(name.Span, "opcode \"%s\" cannot be written as a bracket expression", text)
	default:
		return op, true
	}
	//
	return op, false
}

// A trailer repeats the opening tokens of a bracket expression just before it
// closes, e.g. "[function foo ... \\function foo]".
func (p *Parser) parseTrailer(open int) {
	var (
		start = p.index
		ok    = true
	)
	// Skip the backslashes
	p.index++
	//
	for i := 1; !p.follows(token.RIGHT_BRACKET, token.END_OF_FILE); i++ {
		var (
			echo     = p.lookahead()
			original = &p.tokens[open+i]
		)
		//
		if open+i >= start || echo.Kind != original.Kind || p.text(echo) != p.text(original) {
			ok = false
		}
		//
		p.index++
	}
	//
	if !ok || p.index == start+1 {
		p.error(p.spanOf(start, p.index-1), "trailer does not match the start of its bracket expression")
	}
}

// Check whether the tokens after a "[" form "[captures][parameters]{".
func (p *Parser) isAnonymousFunction() bool {
	var captures = p.lookahead()
	//
	if captures.Kind != token.LEFT_BRACKET || captures.Match == token.NO_MATCH {
		return false
	}
	//
	parameters := &p.tokens[captures.Match+1]
	//
	if parameters.Kind != token.LEFT_BRACKET || parameters.Match == token.NO_MATCH {
		return false
	}
	//
	return p.tokens[parameters.Match+1].Kind == token.LEFT_TRIP
}

func (p *Parser) parseAnonymousFunction(open int) expr.Id {
	var (
		captures   = p.parseList(opcode.CAPTURES, token.LEFT_BRACKET, token.RIGHT_BRACKET)
		signature  = p.parseList(opcode.CALL_OR_SIGNATURE, token.LEFT_BRACKET, token.RIGHT_BRACKET)
		bodyOpen   = p.index
		body       []expr.Id
		inferenced = p.synthesize(opcode.INFERENCED_TYPE, p.tokens[bodyOpen].Span)
	)
	//
	p.tree.PrependBranch(signature, inferenced)
	//
	p.index++
	body = p.parseItems(token.RIGHT_TRIP)
	p.expect(token.RIGHT_TRIP)
	p.expect(token.RIGHT_BRACKET)
	//
	items := append([]expr.Id{captures, signature}, body...)
	//
	return p.node(opcode.ANONYMOUS_FUNCTION, p.spanOf(open, p.index-1), items...)
}

// Parse a grouping of zero or more items, as a single expression with a given
// opcode.  The items of a call or signature are fields.
func (p *Parser) parseGrouping(op opcode.Opcode, closer token.Kind) expr.Id {
	var (
		start = p.index
		items []expr.Id
	)
	//
	p.index++
	//
	if op == opcode.CALL_OR_SIGNATURE {
		items = p.parseFields(closer)
	} else {
		items = p.parseItems(closer)
	}
	//
	p.expect(closer)
	//
	return p.node(op, p.spanOf(start, p.index-1), items...)
}

func (p *Parser) parseList(op opcode.Opcode, opener token.Kind, closer token.Kind) expr.Id {
	if !p.follows(opener) {
		panic("unreachable")
	}
	//
	return p.parseGrouping(op, closer)
}

// Interpolated strings alternate string pieces and the expressions between
// them.
func (p *Parser) parseInterpolation() expr.Id {
	var (
		start = p.index
		items []expr.Id
	)
	//
	for {
		tok := p.lookahead()
		text := p.text(tok)
		//
		switch tok.Kind {
		case token.INTERPOLATION_LEFT, token.INTERPOLATION_MIDDLE:
			p.index++
			piece := p.unescape(tok, text[1:len(text)-2])
			items = append(items, p.tree.NewText(opcode.STRING_LITERAL, tok.Span, piece))
			items = append(items, p.parseItems(token.INTERPOLATION_MIDDLE, token.INTERPOLATION_RIGHT)...)
		case token.INTERPOLATION_RIGHT:
			p.index++
			piece := p.unescape(tok, text[1:len(text)-1])
			items = append(items, p.tree.NewText(opcode.STRING_LITERAL, tok.Span, piece))
			//
			return p.node(opcode.INTERPOLATE_STRING, p.spanOf(start, p.index-1), items...)
		default:
			// Missing right quote already reported by the tokenizer
			return p.node(opcode.INTERPOLATE_STRING, p.spanOf(start, p.index-1), items...)
		}
	}
}

func (p *Parser) parseInteger(tok *token.Token) expr.Id {
	value, err := numeric.Decode(p.text(tok))
	//
	if err != nil {
		p.error(tok.Span, "%s", err.Error())
		return p.node(opcode.ERROR, tok.Span)
	}
	//
	return p.tree.NewInteger(opcode.INTEGER_LITERAL, tok.Span, value)
}

// ============================================================================
// Helpers
// ============================================================================

// Check whether the next token is one of the given binary operators and, if
// so, consume it.  An operator spaced like a prefix operator (space before it
// but not after) is not consumed, since it must instead begin the next item.
func (p *Parser) binaryOperator(kinds ...token.Kind) (*token.Token, bool) {
	tok := p.lookahead()
	//
	if !slices.Contains(kinds, tok.Kind) || tok.IsUnary() {
		return nil, false
	} else if _, ok := fieldSeparators[tok.Kind]; ok && p.fields {
		return nil, false
	} else if !tok.IsBinary() {
		p.error(tok.Span, "invalid spacing around binary operator \"%s\"", p.text(tok))
	}
	//
	p.index++
	//
	return tok, true
}

// Advance to the token closing the grouping opened at a given index, or to the
// end of the file if it has no match.
func (p *Parser) skipGrouping(open int) {
	if match := p.tokens[open].Match; match != token.NO_MATCH && match >= p.index {
		p.index = match
	} else {
		p.index = len(p.tokens) - 1
	}
}

// Lookahead returns the next token.  This must exist because END_OF_FILE is
// always appended at the end of the token stream.
func (p *Parser) lookahead() *token.Token {
	return &p.tokens[p.index]
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...token.Kind) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Expect consumes a given closing token, reporting an error if it is absent.
// Reaching the end of the file is not reported, since the tokenizer has
// already reported the unmatched opener.
func (p *Parser) expect(kind token.Kind) bool {
	if p.follows(kind) {
		p.index++
		return true
	} else if !p.follows(token.END_OF_FILE) {
		p.error(p.lookahead().Span, "expected \"%s\"", closerText[kind])
	}
	//
	return false
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	if lastToken < firstToken {
		return p.tokens[firstToken].Span.Collapse()
	}
	//
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) node(op opcode.Opcode, span source.Span, branches ...expr.Id) expr.Id {
	id := p.tree.New(op, span)
	p.tree.SetBranches(id, branches)
	//
	return id
}

// Synthesize an expression which does not appear in the source, positioned at
// the start of a given span.
func (p *Parser) synthesize(op opcode.Opcode, at source.Span) expr.Id {
	return p.tree.New(op, source.NewSpan(at.Start(), at.Start()))
}

func (p *Parser) text(tok *token.Token) string {
	return p.srcfile.Text(tok.Span)
}

func (p *Parser) unescape(tok *token.Token, text string) string {
	result, ok := codeunit.UnescapeString(text)
	//
	if !ok {
		p.error(tok.Span, "invalid escape sequence in string literal")
	}
	//
	return result
}

func (p *Parser) error(span source.Span, format string, args ...any) {
	p.errors++
	p.log.Error(p.srcfile, span, format, args...)
}

func castOpcode(kind token.Kind) opcode.Opcode {
	if kind == token.DOUBLE_SEMICOLON {
		return opcode.BITWISE_CAST
	}
	//
	return opcode.CAST
}

func keysOf[T any](m map[token.Kind]T) []token.Kind {
	keys := make([]token.Kind, 0, len(m))
	//
	for k := range m {
		keys = append(keys, k)
	}
	//
	return keys
}
