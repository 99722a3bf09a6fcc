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
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Repl_Incomplete(t *testing.T) {
	assert.False(t, isIncomplete(""))
	assert.False(t, isIncomplete("a + b"))
	assert.False(t, isIncomplete("[function f () [return 1]]"))
	assert.True(t, isIncomplete("[function f ()"))
	assert.True(t, isIncomplete("{a\n(b"))
	assert.False(t, isIncomplete("{a\n(b)}"))
}
