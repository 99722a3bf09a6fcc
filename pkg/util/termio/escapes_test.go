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
package termio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AnsiEscape_01(t *testing.T) {
	require.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	require.Equal(t, "\033[1;31m", NewAnsiEscape().Bold().FgColour(TERM_RED).Build())
	require.Equal(t, "\033[4;44m", NewAnsiEscape().Underline().BgColour(TERM_BLUE).Build())
}

func Test_AnsiEscape_02(t *testing.T) {
	bold := NewAnsiEscape().Bold()
	// Extending an escape leaves the original untouched.
	red := bold.FgColour(TERM_RED)
	green := bold.FgColour(TERM_GREEN)
	require.Equal(t, "\033[1m", bold.Build())
	require.Equal(t, "\033[1;31m", red.Build())
	require.Equal(t, "\033[1;32m", green.Build())
}

func Test_AnsiEscape_Wrap(t *testing.T) {
	esc := NewAnsiEscape().FgColour(TERM_CYAN)
	require.Equal(t, "note", esc.Wrap("note", false))
	require.Equal(t, "\033[36mnote\033[0m", esc.Wrap("note", true))
	require.Equal(t, "plain", NewAnsiEscape().Wrap("plain", true))
}
