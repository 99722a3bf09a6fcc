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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/consensys/go-requite/pkg/requite/codeunit"
	"github.com/consensys/go-requite/pkg/util/source"
)

// Dump writes a human-readable listing of a token sequence, one token per line
// giving its position, kind and (escaped) text.
func Dump(out io.Writer, file *source.File, tokens []Token) error {
	for _, token := range tokens {
		line, col := file.Position(token.Span.Start())
		text := codeunit.EscapeString(token.Text(file))
		//
		if _, err := fmt.Fprintf(out, "%d:%d %s \"%s\"\n", line, col, token.Kind, text); err != nil {
			return err
		}
	}
	//
	return nil
}

// WriteCsv writes a token sequence in CSV form with a header row.
func WriteCsv(out io.Writer, file *source.File, tokens []Token) error {
	writer := csv.NewWriter(out)
	//
	if err := writer.Write([]string{"index", "kind", "line", "column", "length", "spacing", "match", "text"}); err != nil {
		return err
	}
	//
	for i, token := range tokens {
		line, col := file.Position(token.Span.Start())
		record := []string{
			strconv.Itoa(i),
			token.Kind.String(),
			strconv.Itoa(line),
			strconv.Itoa(col),
			strconv.Itoa(token.Span.Length()),
			spacingString(token.Spacing),
			strconv.Itoa(token.Match),
			token.Text(file),
		}
		//
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	//
	writer.Flush()
	//
	return writer.Error()
}

func spacingString(spacing Spacing) string {
	switch spacing {
	case 0:
		return "none"
	case SPACE_BEFORE:
		return "before"
	case SPACE_AFTER:
		return "after"
	default:
		return "both"
	}
}
