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
	"testing"
)

// ===================================================================
// Valid Tests
// ===================================================================

func Test_Valid_Function(t *testing.T) {
	Check(t, "function")
}

func Test_Valid_Arithmetic(t *testing.T) {
	Check(t, "arithmetic")
}

func Test_Valid_Object(t *testing.T) {
	Check(t, "object")
}

func Test_Valid_Reflect(t *testing.T) {
	Check(t, "reflect")
}

func Test_Valid_Control(t *testing.T) {
	Check(t, "control")
}

func Test_Valid_Fields(t *testing.T) {
	Check(t, "fields")
}

// ===================================================================
// Invalid Tests
// ===================================================================

func Test_Invalid_Root(t *testing.T) {
	CheckInvalid(t, "root")
}

func Test_Invalid_Arity(t *testing.T) {
	CheckInvalid(t, "arity")
}

func Test_Invalid_Reflect(t *testing.T) {
	CheckInvalid(t, "reflect")
}

func Test_Invalid_Operand(t *testing.T) {
	CheckInvalid(t, "operand")
}
