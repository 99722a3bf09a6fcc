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
	"fmt"
	"math/big"

	"github.com/consensys/go-requite/pkg/requite/opcode"
)

// Data is the extra information carried by an expression, beyond its opcode
// and branches.  Which variant an expression holds is determined by the kind
// of data its opcode carries (see opcode.DataKind).
type Data interface {
	// Kind returns the kind of data held.
	Kind() opcode.DataKind
	// String returns a debug representation of this data.
	String() string
	// sealed prevents implementations outside this package.
	sealed()
}

// ===================================================================
// Text
// ===================================================================

// Text holds the name of an identifier, or the contents of a string, real or
// codeunit literal (after escapes are decoded).
type Text struct {
	Value string
}

var _ Data = Text{}

// Kind returns TEXT.
func (p Text) Kind() opcode.DataKind { return opcode.TEXT }

func (p Text) String() string { return p.Value }

func (p Text) sealed() {}

// ===================================================================
// Integer
// ===================================================================

// Integer holds the arbitrary precision value of an integer literal.
type Integer struct {
	Value *big.Int
}

var _ Data = Integer{}

// Kind returns INTEGER.
func (p Integer) Kind() opcode.DataKind { return opcode.INTEGER }

func (p Integer) String() string { return p.Value.String() }

func (p Integer) sealed() {}

// ===================================================================
// Entity
// ===================================================================

// Entity is a non-owning reference to something declared by an expression
// (e.g. a scope, object or variable).  References are installed by later
// passes, hence Ref is nil for every entity produced by situating.
type Entity struct {
	kind opcode.DataKind
	Ref  any
}

var _ Data = Entity{}

// Kind returns the kind of entity referred to.
func (p Entity) Kind() opcode.DataKind { return p.kind }

func (p Entity) String() string {
	if p.Ref == nil {
		return fmt.Sprintf("<%s>", p.kind)
	}
	//
	return fmt.Sprintf("<%s %v>", p.kind, p.Ref)
}

func (p Entity) sealed() {}

// zeroData constructs the initial data for a given kind.
func zeroData(kind opcode.DataKind) Data {
	switch {
	case kind == opcode.NO_DATA:
		return nil
	case kind == opcode.TEXT:
		return Text{}
	case kind == opcode.INTEGER:
		return Integer{new(big.Int)}
	case kind.IsEntity():
		return Entity{kind, nil}
	default:
		panic("unreachable")
	}
}
