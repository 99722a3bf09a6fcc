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
package diag

import (
	"bytes"
	"testing"

	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/stretchr/testify/require"
)

func Test_Log_01(t *testing.T) {
	var log Log
	//
	require.True(t, log.Ok())
	log.Warning(nil, source.NewSpan(0, 0), "careful")
	log.Note(nil, source.NewSpan(0, 0), "see here")
	require.True(t, log.Ok())
	require.Equal(t, 2, log.Len())
	log.Error(nil, source.NewSpan(0, 0), "broken %d", 1)
	require.False(t, log.Ok())
	require.Equal(t, uint(1), log.Errors())
	require.Equal(t, "error: broken 1", log.Diagnostics()[2].Error())
}

func Test_Log_Append(t *testing.T) {
	var first, second Log
	//
	second.Error(nil, source.NewSpan(0, 0), "a")
	second.Error(nil, source.NewSpan(0, 0), "b")
	first.Append(&second)
	require.Equal(t, uint(2), first.Errors())
	require.Equal(t, 2, first.Len())
}

func Test_Diagnostic_Error(t *testing.T) {
	file := source.NewSourceFile("test.rq", []byte("abc\r\n  def\n"))
	d := Diagnostic{Kind: ERROR, File: file, Span: source.NewSpan(7, 10), Message: "bad"}
	require.Equal(t, "test.rq:2:3: error: bad", d.Error())
}

func Test_Printer_01(t *testing.T) {
	var (
		out  bytes.Buffer
		log  Log
		file = source.NewSourceFile("test.rq", []byte("[return x]\n\t[add y z]\n"))
	)
	//
	log.Error(file, source.NewSpan(13, 16), "unknown opcode")
	NewPrinter(&out, false).PrintLog(&log)
	require.Equal(t, "test.rq:2:3: error: unknown opcode\n\t[add y z]\n\t ^^^\n", out.String())
}

func Test_Printer_02(t *testing.T) {
	var (
		out  bytes.Buffer
		file = source.NewSourceFile("test.rq", []byte("x"))
		d    = Diagnostic{Kind: WARNING, File: file, Span: source.NewSpan(1, 1), Message: "eof"}
	)
	//
	NewPrinter(&out, false).Print(&d)
	require.Equal(t, "test.rq:1:2: warning: eof\nx\n ^\n", out.String())
}

func Test_Printer_FixIt(t *testing.T) {
	var (
		out  bytes.Buffer
		file = source.NewSourceFile("test.rq", []byte("a +b"))
		d    = Diagnostic{Kind: ERROR, File: file, Span: source.NewSpan(2, 3), Message: "spacing"}
	)
	//
	d = d.WithFixIt(source.NewSpan(2, 3), "+ ")
	NewPrinter(&out, false).Print(&d)
	require.Equal(t, "test.rq:1:3: error: spacing\na +b\n  ^\nfix-it: replace with \"+ \"\n", out.String())
}
