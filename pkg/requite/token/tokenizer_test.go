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
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-requite/pkg/requite/codeunit"
	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/stretchr/testify/require"
)

func Test_Tokenize_01(t *testing.T) {
	checkKinds(t, "", END_OF_FILE)
	checkKinds(t, "  \n\t", END_OF_FILE)
	checkKinds(t, "foo", IDENTIFIER, END_OF_FILE)
	checkKinds(t, "foo _bar9 x", IDENTIFIER, IDENTIFIER, IDENTIFIER, END_OF_FILE)
}

func Test_Tokenize_Numbers(t *testing.T) {
	tokens := checkKinds(t, "16xFF", INTEGER_LITERAL, END_OF_FILE)
	require.Equal(t, 5, tokens[0].Span.Length())
	//
	checkKinds(t, "2x110 1_000", INTEGER_LITERAL, INTEGER_LITERAL, END_OF_FILE)
	checkKinds(t, "3.5", REAL_LITERAL, END_OF_FILE)
	checkKinds(t, "3.x", INTEGER_LITERAL, DOT, IDENTIFIER, END_OF_FILE)
	checkKinds(t, "3.5.6", REAL_LITERAL, DOT, INTEGER_LITERAL, END_OF_FILE)
	checkKinds(t, "x.3", IDENTIFIER, DOT, INTEGER_LITERAL, END_OF_FILE)
}

func Test_Tokenize_Operators(t *testing.T) {
	checkKinds(t, "{: : :: := :}", LEFT_CAP, COLON, DOUBLE_COLON, CAST_ASSIGN, RIGHT_CAP, END_OF_FILE)
	checkKinds(t, "(> < << <> <= <)", LEFT_COMPAS, LESS, SHIFT_LEFT, SWAP, LESS_EQUAL, RIGHT_COMPAS, END_OF_FILE)
	checkKinds(t, "> >> >^ >=", GREATER, SHIFT_RIGHT, ROTATE, GREATER_EQUAL, END_OF_FILE)
	checkKinds(t, "= == ! !=", ASSIGN, EQUAL, BANG, NOT_EQUAL, END_OF_FILE)
	checkKinds(t, "+ += +> - -=", PLUS, ASSIGN_ADD, CONCATENATE, MINUS, ASSIGN_SUBTRACT, END_OF_FILE)
	checkKinds(t, "* *= / /= % %=", STAR, ASSIGN_MULTIPLY, SLASH, ASSIGN_DIVIDE, PERCENT, ASSIGN_MODULUS, END_OF_FILE)
	checkKinds(t, "& && ||", AMPERSAND, LOGICAL_AND, LOGICAL_OR, END_OF_FILE)
	checkKinds(t, "; ;; . .. \\ \\\\", SEMICOLON, DOUBLE_SEMICOLON, DOT, DOUBLE_DOT, BACKSLASH, DOUBLE_BACKSLASH,
		END_OF_FILE)
	checkKinds(t, "@#$`?", AT, HASH, DOLLAR, BACKTICK, QUESTION, END_OF_FILE)
}

// Closers without an opener are still tokenized, but reported.
func Test_Tokenize_UnmatchedClosers(t *testing.T) {
	tokens := checkErrors(t, ":}", 1)
	require.Equal(t, RIGHT_CAP, tokens[0].Kind)
	require.Equal(t, NO_MATCH, tokens[0].Match)
	//
	tokens = checkErrors(t, "a <)", 1)
	require.Equal(t, RIGHT_COMPAS, tokens[1].Kind)
	require.Equal(t, NO_MATCH, tokens[1].Match)
}

func Test_Tokenize_Groupings(t *testing.T) {
	tokens := checkKinds(t, "[{(x)}]", LEFT_BRACKET, LEFT_TRIP, LEFT_PARENTHESIS, IDENTIFIER, RIGHT_PARENTHESIS,
		RIGHT_TRIP, RIGHT_BRACKET, END_OF_FILE)
	require.Equal(t, 6, tokens[0].Match)
	require.Equal(t, 0, tokens[6].Match)
	require.Equal(t, 5, tokens[1].Match)
	require.Equal(t, 4, tokens[2].Match)
	require.Equal(t, NO_MATCH, tokens[3].Match)
	//
	tokens = checkKinds(t, "{: x :} (> y <)", LEFT_CAP, IDENTIFIER, RIGHT_CAP, LEFT_COMPAS, IDENTIFIER, RIGHT_COMPAS,
		END_OF_FILE)
	require.Equal(t, 2, tokens[0].Match)
	require.Equal(t, 5, tokens[3].Match)
}

func Test_Tokenize_Comments(t *testing.T) {
	checkKinds(t, "a // comment ] \n b", IDENTIFIER, IDENTIFIER, END_OF_FILE)
	checkKinds(t, "a /* multi \r\n line */ b", IDENTIFIER, IDENTIFIER, END_OF_FILE)
	checkKinds(t, "a/**/b", IDENTIFIER, IDENTIFIER, END_OF_FILE)
	checkErrors(t, "a /* never ends", 1)
}

func Test_Tokenize_Strings(t *testing.T) {
	checkKinds(t, `"hello"`, STRING_LITERAL, END_OF_FILE)
	checkKinds(t, `"a\"b" "\\" "\0A\"`, STRING_LITERAL, STRING_LITERAL, STRING_LITERAL, END_OF_FILE)
	checkKinds(t, `'"\'`, CODEUNIT_LITERAL, END_OF_FILE)
	//
	tokens, ok := tokenize("\"open\nx")
	require.False(t, ok)
	require.Equal(t, ERROR_STRING, tokens[0].Kind)
	require.Equal(t, IDENTIFIER, tokens[1].Kind)
	//
	tokens, ok = tokenize("'c")
	require.False(t, ok)
	require.Equal(t, ERROR_CODEUNIT, tokens[0].Kind)
}

func Test_Tokenize_Interpolation(t *testing.T) {
	tokens := checkKinds(t, `"x=\[x] y=\[[add y 1]]!"`, INTERPOLATION_LEFT, IDENTIFIER, INTERPOLATION_MIDDLE,
		LEFT_BRACKET, IDENTIFIER, IDENTIFIER, INTEGER_LITERAL, RIGHT_BRACKET, INTERPOLATION_RIGHT, END_OF_FILE)
	require.Equal(t, `"x=\[`, tokens[0].Text(testFile))
	require.Equal(t, `] y=\[`, tokens[2].Text(testFile))
	require.Equal(t, `]!"`, tokens[8].Text(testFile))
	require.Equal(t, 2, tokens[0].Match)
	require.Equal(t, 8, tokens[2].Match)
	require.Equal(t, 2, tokens[8].Match)
	require.Equal(t, 7, tokens[3].Match)
	// nested
	checkKinds(t, `"a\["b\[c]d"]e"`, INTERPOLATION_LEFT, INTERPOLATION_LEFT, IDENTIFIER, INTERPOLATION_RIGHT,
		INTERPOLATION_RIGHT, END_OF_FILE)
	// unterminated
	checkErrors(t, `"a\[x`, 1)
}

func Test_Tokenize_Unmatched(t *testing.T) {
	// no left match
	tokens := checkErrors(t, "a ]", 1)
	require.Equal(t, NO_MATCH, tokens[1].Match)
	// wrong type leaves the stack untouched
	tokens = checkErrors(t, "[ } ]", 1)
	require.Equal(t, 2, tokens[0].Match)
	require.Equal(t, NO_MATCH, tokens[1].Match)
	// no right match, one per open grouping
	checkErrors(t, "[ ( {", 3)
	checkErrors(t, "{: [", 2)
}

func Test_Tokenize_Unknown(t *testing.T) {
	tokens := checkErrors(t, "a ~ b , c", 2)
	require.Equal(t, ERROR_UNKNOWN, tokens[1].Kind)
	require.Equal(t, IDENTIFIER, tokens[4].Kind)
	checkErrors(t, "|", 1)
	checkErrors(t, "\x01", 1)
}

func Test_Tokenize_Spacing(t *testing.T) {
	tokens := checkKinds(t, "a -b", IDENTIFIER, MINUS, IDENTIFIER, END_OF_FILE)
	require.Equal(t, SPACE_BEFORE|SPACE_AFTER, tokens[0].Spacing)
	require.True(t, tokens[1].IsUnary())
	require.Equal(t, SPACE_AFTER, tokens[2].Spacing)
	//
	tokens = checkKinds(t, "a - b", IDENTIFIER, MINUS, IDENTIFIER, END_OF_FILE)
	require.True(t, tokens[1].IsBinary())
	//
	tokens = checkKinds(t, "a-b", IDENTIFIER, MINUS, IDENTIFIER, END_OF_FILE)
	require.True(t, tokens[1].IsBinary())
	require.Equal(t, Spacing(0), tokens[1].Spacing)
	//
	tokens = checkKinds(t, "a/**/b", IDENTIFIER, IDENTIFIER, END_OF_FILE)
	require.True(t, tokens[1].SpaceBefore())
}

func Test_Tokenize_Utf8(t *testing.T) {
	tokens := checkKinds(t, "héllo €", IDENTIFIER, IDENTIFIER, END_OF_FILE)
	require.Equal(t, "héllo", tokens[0].Text(testFile))
	// stray continuation byte
	checkErrors(t, "\x80", 1)
}

// Concatenating the spans of all tokens with the skipped whitespace and
// comments reconstructs the original buffer.
func Test_Tokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"[function foo[(x:[signed_integer 16])][return x]]",
		"a = b + c * d // trailing\n{: x :} (> y <) \"s\\[z]t\" 'c' 16xFF 3.5",
		"[a /* note */ b]\r\n\t[c]",
		"x .. y . z ;; w ~ ] [",
	}
	//
	for _, input := range inputs {
		tokens, _ := tokenize(input)
		last := 0
		//
		var builder strings.Builder
		//
		for _, token := range tokens {
			gap := input[last:token.Span.Start()]
			require.True(t, isSkippable(gap), "gap %q is not whitespace or comment", gap)
			builder.WriteString(gap)
			builder.WriteString(input[token.Span.Start():token.Span.End()])
			last = token.Span.End()
		}
		//
		require.Equal(t, input, builder.String())
	}
}

// Well-nested brackets never leave a grouping open.
func Test_Tokenize_Balance(t *testing.T) {
	inputs := []string{"", "[]", "{}", "{::}", "()", "[{(){::}}]", "[[[]]]{{}}((({:[]:})))", "[] {} () {: :}"}
	//
	for _, input := range inputs {
		var (
			log       diag.Log
			file      = source.NewSourceFile("test.rq", []byte(input))
			tokenizer = NewTokenizer(file, &log)
		)
		//
		tokenizer.Tokenize()
		require.False(t, tokenizer.HasGrouping())
		require.True(t, tokenizer.Ok(), input)
		//
		for i, token := range tokenizer.Tokens() {
			if token.Kind != END_OF_FILE {
				require.NotEqual(t, NO_MATCH, token.Match, input)
				require.Equal(t, i, tokenizer.Tokens()[token.Match].Match, input)
			}
		}
	}
}

func Test_Ranger(t *testing.T) {
	r := NewRanger([]byte("ab\r\nc"))
	//
	require.Equal(t, byte('b'), r.Peek(1))
	require.True(t, r.Has(4))
	require.False(t, r.Has(5))
	require.Equal(t, byte(0), r.Peek(5))
	r.AdvanceWhile(func(b byte) bool { return b >= 'a' })
	require.Equal(t, 2, r.Index())
	r.Advance(10)
	require.Equal(t, 5, r.Index())
	require.True(t, r.AtEnd())
}

func Test_WriteCsv(t *testing.T) {
	var (
		out    bytes.Buffer
		tokens []Token
	)
	//
	tokens, _ = tokenize("a, b")
	require.NoError(t, WriteCsv(&out, testFile, tokens))
	require.Equal(t, "index,kind,line,column,length,spacing,match,text\n"+
		"0,IDENTIFIER,1,1,1,before,-1,a\n"+
		"1,ERROR_UNKNOWN,1,2,1,after,-1,\",\"\n"+
		"2,IDENTIFIER,1,4,1,both,-1,b\n"+
		"3,END_OF_FILE,1,5,0,after,-1,\n", out.String())
}

func Test_Dump(t *testing.T) {
	var out bytes.Buffer
	//
	tokens, _ := tokenize("[x\n\"y\"]")
	require.NoError(t, Dump(&out, testFile, tokens))
	require.Equal(t, "1:1 LEFT_BRACKET \"[\"\n1:2 IDENTIFIER \"x\"\n2:1 STRING_LITERAL \"\\\"y\\\"\"\n"+
		"2:4 RIGHT_BRACKET \"]\"\n2:5 END_OF_FILE \"\"\n", out.String())
}

var testFile *source.File

func tokenize(input string) ([]Token, bool) {
	var log diag.Log
	//
	testFile = source.NewSourceFile("test.rq", []byte(input))
	tokens, ok := Tokenize(testFile, &log)
	// ok agrees with the log
	if ok != log.Ok() {
		panic("tokenizer status disagrees with log")
	}
	//
	return tokens, ok
}

func checkKinds(t *testing.T, input string, kinds ...Kind) []Token {
	tokens, ok := tokenize(input)
	require.True(t, ok, "unexpected errors tokenizing %q", input)
	require.Equal(t, len(kinds), len(tokens), "%q: %v", input, tokens)
	//
	for i, kind := range kinds {
		require.Equal(t, kind, tokens[i].Kind, "%q: token %d", input, i)
	}
	//
	return tokens
}

func checkErrors(t *testing.T, input string, errors uint) []Token {
	var log diag.Log
	//
	testFile = source.NewSourceFile("test.rq", []byte(input))
	tokens, ok := Tokenize(testFile, &log)
	require.False(t, ok)
	require.Equal(t, errors, log.Errors(), "%q", input)
	//
	return tokens
}

func isSkippable(gap string) bool {
	for len(gap) > 0 {
		switch {
		case strings.HasPrefix(gap, "//"):
			end := strings.IndexAny(gap, "\r\n")
			if end < 0 {
				return true
			}
			//
			gap = gap[end:]
		case strings.HasPrefix(gap, "/*"):
			end := strings.Index(gap, "*/")
			if end < 0 {
				return true
			}
			//
			gap = gap[end+2:]
		case codeunit.IsSpace(gap[0]):
			gap = gap[1:]
		default:
			return false
		}
	}
	//
	return true
}
