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
package test

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/module"
	"github.com/consensys/go-requite/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the requite source files (rq) and their expected situated forms are
// found.
const TestDir = "../../testdata"

// ERROR_PREFIX marks a comment line in an invalid test file giving an error
// which is expected, in the form "//error:LINE:COLUMN:MESSAGE".
const ERROR_PREFIX = "//error:"

// Check that a valid source file compiles, and that its situated form matches
// the expected output.  The situated form is then compiled again (in
// intermediate form) to check that situating is idempotent.
func Check(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/valid/%s.rq", TestDir, test)
		expected = readFile(t, fmt.Sprintf("%s/valid/%s.situated", TestDir, test))
	)
	// Enable testing each file in parallel
	t.Parallel()
	//
	actual := compile(t, filename, readFile(t, filename), false)
	assert.Equal(t, string(expected), actual, filename)
	// Situated output should be a fixed point
	again := compile(t, filename, []byte(actual), true)
	assert.Equal(t, actual, again, filename)
}

// CheckInvalid checks that an invalid source file fails to compile, and that
// the errors reported are exactly those given in its header.
func CheckInvalid(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/invalid/%s.rq", TestDir, test)
		contents = readFile(t, filename)
		expected = extractExpectedErrors(t, contents)
		mod      = module.Compile(source.NewSourceFile(filename, contents), module.Config{Stage: module.SITUATE})
		actual   = errorsOf(mod.Log)
	)
	// Enable testing each file in parallel
	t.Parallel()
	//
	if mod.Ok() {
		t.Fatalf("Error %s should not have compiled\n", filename)
	}
	//
	failed := false
	msg := fmt.Sprintf("Error %s\n", filename)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) && actual[i] == expected[i] {
			continue
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected error %s\n", msg, actual[i])
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %s\n", msg, expected[i])
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

// ExpectedError captures key information about an expected error.
type ExpectedError struct {
	// Line and column (both counting from 1) where the error begins.
	Line   int
	Column int
	// The error message reported.
	Message string
}

func (p ExpectedError) String() string {
	return fmt.Sprintf("%d:%d:%s", p.Line, p.Column, p.Message)
}

// ============================================================================
// Helpers
// ============================================================================

func compile(t *testing.T, filename string, contents []byte, intermediate bool) string {
	var (
		config = module.Config{IntermediateForm: intermediate, Stage: module.SITUATE}
		mod    = module.Compile(source.NewSourceFile(filename, contents), config)
		buffer bytes.Buffer
	)
	//
	require.True(t, mod.Ok(), "%s: %v", filename, mod.Log.Diagnostics())
	require.NoError(t, mod.Dump(&buffer))
	//
	return buffer.String()
}

func errorsOf(log *diag.Log) []ExpectedError {
	var errs []ExpectedError
	//
	for _, d := range log.Diagnostics() {
		if d.Kind == diag.ERROR {
			line, column := d.Position()
			errs = append(errs, ExpectedError{line, column, d.Message})
		}
	}
	//
	return errs
}

// Extract the expected errors from the header comments of a test file.
func extractExpectedErrors(t *testing.T, contents []byte) []ExpectedError {
	var (
		errs    []ExpectedError
		scanner = bufio.NewScanner(bytes.NewReader(contents))
	)
	//
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, ERROR_PREFIX) {
			continue
		}
		//
		fields := strings.SplitN(strings.TrimPrefix(line, ERROR_PREFIX), ":", 3)
		if len(fields) != 3 {
			t.Fatalf("invalid error line \"%s\"", line)
		}
		//
		lineNo, err1 := strconv.Atoi(fields[0])
		column, err2 := strconv.Atoi(fields[1])
		//
		if err1 != nil || err2 != nil {
			t.Fatalf("invalid error position \"%s\"", line)
		}
		//
		errs = append(errs, ExpectedError{lineNo, column, fields[2]})
	}
	//
	return errs
}

func readFile(t *testing.T, filename string) []byte {
	contents, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return contents
}
