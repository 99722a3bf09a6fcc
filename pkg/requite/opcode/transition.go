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
package opcode

// Rule determines how the situation of a branch is computed from the situation
// of its parent.
type Rule uint8

// FIXED places the branch in a given situation regardless of its parent.
const FIXED Rule = 0

// SAME places the branch in the situation of its parent.
const SAME Rule = 1

// NEXT_SCOPE applies NextScopeStatement to the situation of the parent.
const NEXT_SCOPE Rule = 2

// NEXT_ASSIGN_LVALUE applies NextAssignLvalue to the situation of the parent.
const NEXT_ASSIGN_LVALUE Rule = 3

// PATH_OR_SYMBOL keeps a symbol path within a symbol path, and otherwise
// places the branch in a matte symbol situation.
const PATH_OR_SYMBOL Rule = 4

// Transition describes how to determine the situation of a branch.
// Transitions are comparable, so that branches sharing a transition can be
// described together in diagnostics.
type Transition struct {
	rule      Rule
	situation Situation
}

// To constructs a transition to a fixed situation.
func To(situation Situation) Transition {
	return Transition{FIXED, situation}
}

// Same constructs a transition which retains the situation of the parent.
func Same() Transition {
	return Transition{SAME, 0}
}

// NextScope constructs a transition into the body of a scope.
func NextScope() Transition {
	return Transition{NEXT_SCOPE, 0}
}

// AssignLvalue constructs a transition to the destination of an assignment.
func AssignLvalue() Transition {
	return Transition{NEXT_ASSIGN_LVALUE, 0}
}

// PathOrSymbol constructs a transition to the qualifier of a member symbol.
func PathOrSymbol() Transition {
	return Transition{PATH_OR_SYMBOL, 0}
}

// Apply determines the situation of a branch whose parent is in a given
// situation.
func (p Transition) Apply(parent Situation) Situation {
	switch p.rule {
	case FIXED:
		return p.situation
	case SAME:
		return parent
	case NEXT_SCOPE:
		return NextScopeStatement(parent)
	case NEXT_ASSIGN_LVALUE:
		return NextAssignLvalue(parent)
	case PATH_OR_SYMBOL:
		if parent == SYMBOL_PATH {
			return SYMBOL_PATH
		}
		//
		return MATTE_SYMBOL
	default:
		panic("unreachable")
	}
}
