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
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/requite/token"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_Precedence(t *testing.T) {
	checkParse(t, "a + b * c", "[add a [multiply b c]]")
	checkParse(t, "a * b + c", "[add [multiply a b] c]")
	checkParse(t, "a + b + c", "[add a b c]")
	checkParse(t, "a + b - c", "[_negate_or_subtract [add a b] c]")
	checkParse(t, "a < b && c", "[logical_and [less a b] c]")
	checkParse(t, "a << 2 + 1", "[add [shift_left a 2] 1]")
	checkParse(t, "a +> b", "[concatenate a b]")
}

func Test_Parse_Assignment(t *testing.T) {
	checkParse(t, "a = b = c", "[_assign a b c]")
	checkParse(t, "a += 1", "[_assign_add a 1]")
	checkParse(t, "a := b", "[_cast_assign a b]")
	checkParse(t, "a <> b", "[swap a b]")
	checkParse(t, "a = b + c", "[_assign a [add b c]]")
}

func Test_Parse_Binding(t *testing.T) {
	checkParse(t, "x:[signed_integer 16]", "[_bind_value_or_default_value x [signed_integer 16]]")
	checkParse(t, "x::y:z", "[_bind_symbol_or_default_symbol x [_bind_value_or_default_value y z]]")
	checkParse(t, "t;x", "[cast t x]")
	checkParse(t, "t;;x", "[bitwise_cast t x]")
}

func Test_Parse_Reflect(t *testing.T) {
	checkParse(t, "a.b.c", "[_reflect_value [_reflect_value a b] c]")
	checkParse(t, "a..b.c", "[_reflect_value [_reflect_symbol a b] c]")
	checkParse(t, "x.[size]", "[_reflect_value x [size]]")
}

func Test_Parse_Unary(t *testing.T) {
	checkParse(t, "-x", "[_negate_or_subtract x]")
	checkParse(t, "!a && b", "[logical_and [logical_not a] b]")
	checkParse(t, "@x #y", "[bake x]\n[expand y]")
	checkParse(t, "a -b", "a\n[_negate_or_subtract b]")
	checkParse(t, "*x", "[pointer x]")
	checkParse(t, "&&x", "[reference [reference x]]")
	checkParse(t, "`*$x", "[mutable [pointer [stolen_reference x]]]")
	checkParse(t, "*; x", "[cast [pointer [inferenced_type]] x]")
	checkParse(t, "a *b", "a\n[pointer b]")
	// Only brackets group a value, parentheses always form a list.
	checkParse(t, "-[1]", "[_negate_or_subtract 1]")
	checkParse(t, "-(1)", "[_negate_or_subtract [_call_or_signature [inferenced_type] 1]]")
}

func Test_Parse_Postfix(t *testing.T) {
	checkParse(t, "f()", "[_call_or_signature f]")
	checkParse(t, "f(x y)", "[_call_or_signature f x y]")
	checkParse(t, "f(x)(y)", "[_call_or_signature [_call_or_signature f x] y]")
	checkParse(t, "v(>t<)", "[_specialization v t]")
	checkParse(t, "f (x)", "f\n[_call_or_signature [inferenced_type] x]")
	checkParse(t, "*f(x)", "[_call_or_signature [pointer f] x]")
}

func Test_Parse_Primary(t *testing.T) {
	checkParse(t, "{}", "[_trip]")
	checkParse(t, "{a b}", "[_trip a b]")
	checkParse(t, "{:a:}", "[_conduit a]")
	checkParse(t, "?", "[_inferenced_type_or_indeterminate]")
	checkParse(t, "\\\"foo\"", "[_identify \"foo\"]")
	checkParse(t, "16xFF 3.5 'c'", "255\n3.5\n'c'")
	checkParse(t, "\"a\\tb\"", "\"a\\tb\"")
	checkParse(t, "\"a\\[x]b\"", "[_interpolate_string \"a\" x \"b\"]")
	checkParse(t, "\"\\[x]-\\[y]\"", "[_interpolate_string \"\" x \"-\" y \"\"]")
	checkParse(t, "(< a >b <>c)", "[_call_or_signature [inferenced_type] [_left_field_separator] a "+
		"[_right_field_separator] b [_field_separator] c]")
	// Spaced symmetrically, these are comparison and swap operators
	checkParse(t, "a > b <> c", "[swap [greater a b] c]")
	checkParse(t, "[1 + b]", "[add 1 b]")
}

// Within a parameter or argument list, separators divide fields however they
// are spaced.
func Test_Parse_Fields(t *testing.T) {
	checkParse(t, "(a:T > b::T)", "[_call_or_signature [inferenced_type] [_bind_value_or_default_value a T] "+
		"[_right_field_separator] [_bind_symbol_or_default_symbol b T]]")
	checkParse(t, "(a:T <> b::T)", "[_call_or_signature [inferenced_type] [_bind_value_or_default_value a T] "+
		"[_field_separator] [_bind_symbol_or_default_symbol b T]]")
	checkParse(t, "f(1 >x:2)", "[_call_or_signature f 1 [_right_field_separator] [_bind_value_or_default_value x 2]]")
	checkParse(t, "f(a<b)", "[_call_or_signature f a [_left_field_separator] b]")
	checkParse(t, "[[][a > b]{}]", "[_anonymous_function [_captures] [_call_or_signature [inferenced_type] a "+
		"[_right_field_separator] b]]")
	// Nested groupings are not lists of fields
	checkParse(t, "f([1 > 2])", "[_call_or_signature f [greater 1 2]]")
	checkParse(t, "f(g(< x) [return a <> b])", "[_call_or_signature f [_call_or_signature g [_left_field_separator] x] "+
		"[return [swap a b]]]")
	checkParse(t, "{a > b}", "[_trip [greater a b]]")
}

func Test_Parse_Bracket(t *testing.T) {
	checkParse(t, "[function foo[(x:[signed_integer 16])][return x]]",
		"[function foo [_call_or_signature [inferenced_type] [_bind_value_or_default_value x "+
			"[signed_integer 16]]] [return x]]")
	checkParse(t, "[return x \\\\return]", "[return x]")
	checkParse(t, "[return x \\\\return x]", "[return x]")
	checkParse(t, "[[a][b]{c}]", "[_anonymous_function [_captures a] [_call_or_signature [inferenced_type] b] c]")
	checkParse(t, "[[][]{}]", "[_anonymous_function [_captures] [_call_or_signature [inferenced_type]]]")
}

func Test_Parse_IntermediateForm(t *testing.T) {
	config := Config{IntermediateForm: true}
	//
	checkParseWith(t, config, "[size_of_value x]", "[size_of_value x]")
	checkParseWith(t, config, "[_assign a b]", "[_assign a b]")
	checkParseWith(t, config, "[0]", "[_error]")
	checkErrors(t, "[size_of_value x]", "only valid in intermediate form")
	checkErrors(t, "[_assign a b]", "only valid in intermediate form")
}

func Test_Parse_Errors(t *testing.T) {
	checkErrors(t, "[frobnicate x]", "unknown opcode \"frobnicate\"")
	checkErrors(t, "+ a", "operator \"+\" has no left operand")
	checkErrors(t, "a- b", "invalid spacing around binary operator \"-\"")
	checkErrors(t, "- a", "invalid spacing around unary operator \"-\"")
	checkErrors(t, "[return x \\\\if]", "trailer does not match")
	checkErrors(t, "[]", "empty bracket expression")
	checkErrors(t, "99xZZ", "invalid base")
	checkErrors(t, "(a + )", "unexpected \")\"")
	checkErrors(t, "a +", "unexpected end of file")
	checkErrors(t, "[a b]", "unknown opcode \"a\"")
	checkErrors(t, "[_identifier]", "only valid in intermediate form")
	checkErrors(t, "[return >a]", "operator \">\" has no left operand")
	checkErrors(t, "\"\\q\"", "invalid escape sequence")
}

func Test_Parse_Recovery(t *testing.T) {
	// Errors in one expression do not prevent the next from being parsed
	text, log := parse(t, Config{}, "[frobnicate x] [return y]")
	assert.Equal(t, "[_error]\n[return y]\n", text)
	assert.Equal(t, uint(1), log.Errors())
	// Unmatched closers are reported once, by the tokenizer
	_, log = parse(t, Config{}, "a ] b")
	assert.Equal(t, uint(1), log.Errors())
}

func Test_Parse_Spans(t *testing.T) {
	var (
		file      = source.NewSourceFile("test.rq", []byte("x = a + b"))
		log       diag.Log
		tokens, _ = token.Tokenize(file, &log)
		tree      = expr.NewTree()
	)
	//
	root, ok := Parse(file, tokens, tree, &log, Config{})
	require.True(t, ok)
	assert.Equal(t, opcode.ASSIGN, tree.Opcode(root))
	assert.Equal(t, "x = a + b", file.Text(tree.Span(root)))
	//
	add := tree.Branches(root)[1]
	assert.Equal(t, "a + b", file.Text(tree.Span(add)))
}

func checkParse(t *testing.T, input string, expected string) {
	checkParseWith(t, Config{}, input, expected)
}

func checkParseWith(t *testing.T, config Config, input string, expected string) {
	text, log := parse(t, config, input)
	//
	require.True(t, log.Ok(), "%s: %v", input, log.Diagnostics())
	assert.Equal(t, expected+"\n", text, input)
}

func checkErrors(t *testing.T, input string, message string) {
	_, log := parse(t, Config{}, input)
	//
	require.False(t, log.Ok(), input)
	//
	for _, d := range log.Diagnostics() {
		if strings.Contains(d.Message, message) {
			return
		}
	}
	//
	t.Errorf("%s: expected error containing \"%s\", got %v", input, message, log.Diagnostics())
}

func parse(t *testing.T, config Config, input string) (string, *diag.Log) {
	var (
		file      = source.NewSourceFile("test.rq", []byte(input))
		log       = &diag.Log{}
		tokens, _ = token.Tokenize(file, log)
		tree      = expr.NewTree()
		buffer    bytes.Buffer
	)
	//
	root, _ := Parse(file, tokens, tree, log, config)
	require.NoError(t, expr.Dump(&buffer, tree, root))
	//
	return buffer.String(), log
}
