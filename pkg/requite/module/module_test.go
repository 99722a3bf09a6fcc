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
package module

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Compile_Situate(t *testing.T) {
	module := compile(t, "[function foo[(x:[signed_integer 16])][return x]]", SITUATE)
	//
	require.True(t, module.Ok(), "%v", module.Log.Diagnostics())
	assert.Equal(t, SITUATE, module.Stage)
	assert.Equal(t, opcode.FUNCTION, module.Tree.Opcode(module.Root))
	assert.Equal(t, "[function foo [positional_parameter_signature [inferenced_type] "+
		"[positional_field x [signed_integer 16]]] [return x]]\n", dump(t, module))
}

func Test_Compile_Parse(t *testing.T) {
	module := compile(t, "a + b * c", PARSE)
	//
	require.True(t, module.Ok())
	assert.Equal(t, "[add a [multiply b c]]\n", dump(t, module))
}

func Test_Compile_Tokenize(t *testing.T) {
	module := compile(t, "a", TOKENIZE)
	//
	require.True(t, module.Ok())
	assert.Equal(t, expr.NONE, module.Root)
	assert.Len(t, module.Tokens, 2)
	assert.True(t, strings.HasPrefix(dump(t, module), "1:1 IDENTIFIER \"a\"\n"))
}

func Test_Compile_IntermediateForm(t *testing.T) {
	var (
		file     = source.NewSourceFile("test.rq", []byte("[_error]"))
		plain    = Compile(file, Config{Stage: PARSE})
		extended = Compile(file, Config{Stage: PARSE, IntermediateForm: true})
	)
	//
	assert.False(t, plain.Ok())
	assert.True(t, extended.Ok())
}

// Situating continues after parsing fails, so both kinds of error are reported
// together.
func Test_Compile_Errors(t *testing.T) {
	module := compile(t, "[return] ]\n[function f]", SITUATE)
	//
	require.False(t, module.Ok())
	assert.GreaterOrEqual(t, module.Log.Errors(), uint(3))
}

func Test_CompileAll(t *testing.T) {
	var files []source.File
	//
	for i := range 10 {
		text := fmt.Sprintf("[global g%d 1]", i)
		if i == 7 {
			text = "[return]"
		}
		//
		files = append(files, *source.NewSourceFile(fmt.Sprintf("test%d.rq", i), []byte(text)))
	}
	//
	modules := CompileAll(files, Config{Stage: SITUATE})
	//
	require.Len(t, modules, len(files))
	assert.False(t, Ok(modules))
	//
	for i, m := range modules {
		assert.Equal(t, files[i].Filename(), m.File.Filename())
		assert.Equal(t, i != 7, m.Ok(), m.File.Filename())
		//
		if i != 7 {
			expected := fmt.Sprintf("[global [bind_symbol g%d [inferenced_type]] 1]\n", i)
			assert.Equal(t, expected, dump(t, m))
		}
	}
}

func Test_Stage_String(t *testing.T) {
	assert.Equal(t, "tokenize", TOKENIZE.String())
	assert.Equal(t, "parse", PARSE.String())
	assert.Equal(t, "situate", SITUATE.String())
}

func compile(t *testing.T, text string, stage Stage) *Module {
	t.Helper()
	//
	return Compile(source.NewSourceFile("test.rq", []byte(text)), Config{Stage: stage})
}

func dump(t *testing.T, module *Module) string {
	var buffer bytes.Buffer
	//
	require.NoError(t, module.Dump(&buffer))
	//
	return buffer.String()
}
