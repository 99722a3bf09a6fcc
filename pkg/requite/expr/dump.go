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
package expr

import (
	"io"
	"strings"

	"github.com/consensys/go-requite/pkg/requite/codeunit"
	"github.com/consensys/go-requite/pkg/requite/opcode"
)

// Dump writes a textual rendition of every expression in the sibling chain
// starting at a given expression, one per line.  The rendition can be parsed
// back in intermediate form.
func Dump(out io.Writer, tree *Tree, first Id) error {
	for _, id := range tree.Chain(first) {
		if _, err := io.WriteString(out, String(tree, id)+"\n"); err != nil {
			return err
		}
	}
	//
	return nil
}

// String renders a single expression (and its branches) in the dump format.
func String(tree *Tree, id Id) string {
	var builder strings.Builder
	//
	write(&builder, tree, id)
	//
	return builder.String()
}

func write(builder *strings.Builder, tree *Tree, id Id) {
	switch op := tree.Opcode(id); op {
	case opcode.IDENTIFIER:
		text := tree.Text(id)
		//
		if IsIdentifier(text) {
			builder.WriteString(text)
		} else {
			builder.WriteString("\\\"")
			builder.WriteString(codeunit.EscapeString(text))
			builder.WriteString("\"")
		}
	case opcode.STRING_LITERAL:
		builder.WriteString("\"")
		builder.WriteString(codeunit.EscapeString(tree.Text(id)))
		builder.WriteString("\"")
	case opcode.CODEUNIT_LITERAL:
		builder.WriteString("'")
		builder.WriteString(tree.Text(id))
		builder.WriteString("'")
	case opcode.INTEGER_LITERAL:
		builder.WriteString(tree.Integer(id).String())
	case opcode.REAL_LITERAL:
		builder.WriteString(tree.Text(id))
	default:
		builder.WriteString("[")
		builder.WriteString(op.Name())
		//
		for _, b := range tree.Branches(id) {
			builder.WriteString(" ")
			write(builder, tree, b)
		}
		//
		builder.WriteString("]")
	}
}

// IsIdentifier checks whether some text would be read back as a single
// identifier token.
func IsIdentifier(text string) bool {
	if len(text) == 0 || !codeunit.IsIdentifierStart(text[0]) {
		return false
	}
	//
	for i := 1; i < len(text); i++ {
		if !codeunit.IsIdentifier(text[i]) {
			return false
		}
	}
	//
	return true
}
