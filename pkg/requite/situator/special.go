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
package situator

import (
	"fmt"
	"slices"

	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/opcode"
)

// Rewrites a placeholder whose meaning depends on its branches as well as its
// situation.  The replacement expression is returned, fully situated.
type specialFn func(*Situator, expr.Id, opcode.Situation) expr.Id

// Normalises the branches of an expression before it is situated.
type preparerFn func(*Situator, expr.Id)

var (
	specials  map[opcode.Opcode]specialFn
	preparers map[opcode.Opcode]preparerFn
)

// Arithmetic performed by each compound assignment.
var compoundOpcodes = map[opcode.Opcode]opcode.Opcode{
	opcode.ASSIGN_ADD:      opcode.ADD,
	opcode.ASSIGN_SUBTRACT: opcode.SUBTRACT,
	opcode.ASSIGN_MULTIPLY: opcode.MULTIPLY,
	opcode.ASSIGN_DIVIDE:   opcode.DIVIDE,
	opcode.ASSIGN_MODULUS:  opcode.MODULUS,
}

func init() {
	specials = map[opcode.Opcode]specialFn{
		opcode.CALL_OR_SIGNATURE:  (*Situator).situateCallOrSignature,
		opcode.TRIP:               (*Situator).situateTrip,
		opcode.NEGATE_OR_SUBTRACT: (*Situator).situateNegateOrSubtract,
		opcode.REFLECT_VALUE:      (*Situator).situateReflect,
		opcode.REFLECT_SYMBOL:     (*Situator).situateReflect,
		opcode.IDENTIFY:           (*Situator).situateIdentify,
		opcode.ASSIGN_ADD:         (*Situator).situateCompoundAssign,
		opcode.ASSIGN_SUBTRACT:    (*Situator).situateCompoundAssign,
		opcode.ASSIGN_MULTIPLY:    (*Situator).situateCompoundAssign,
		opcode.ASSIGN_DIVIDE:      (*Situator).situateCompoundAssign,
		opcode.ASSIGN_MODULUS:     (*Situator).situateCompoundAssign,
		opcode.CAST_ASSIGN:        (*Situator).situateCompoundAssign,
	}
	preparers = map[opcode.Opcode]preparerFn{
		opcode.LOCAL:            (*Situator).prepareDeclaration,
		opcode.GLOBAL:           (*Situator).prepareDeclaration,
		opcode.CONSTANT:         (*Situator).prepareDeclaration,
		opcode.PROPERTY:         (*Situator).prepareProperty,
		opcode.WORD:             (*Situator).prepareIntegerType,
		opcode.SIGNED_INTEGER:   (*Situator).prepareIntegerType,
		opcode.UNSIGNED_INTEGER: (*Situator).prepareIntegerType,
		opcode.ARRAY:            (*Situator).prepareArray,
		opcode.ASSERT:           (*Situator).prepareAssert,
	}
	// Every special opcode not resolved by situation alone needs a routine,
	// and every prepared opcode needs a preparer.
	for op := opcode.Opcode(0); op < opcode.NUM_OPCODES; op++ {
		_, special := specials[op]
		_, prepared := preparers[op]
		//
		if special != needsSpecial(op) {
			panic(fmt.Sprintf("opcode \"%s\" has an inconsistent special routine", op))
		} else if prepared != op.IsPrepared() {
			panic(fmt.Sprintf("opcode \"%s\" has an inconsistent preparer", op))
		}
	}
}

func needsSpecial(op opcode.Opcode) bool {
	if op.Arity().Handler != opcode.SPECIAL {
		return false
	}
	//
	for _, s := range op.Info().Situations {
		if _, ok := op.Resolve(s); !ok {
			return true
		}
	}
	//
	return false
}

// ============================================================================
// Calls and signatures
// ============================================================================

// The head and items of a parenthesised list form a signature when a symbol is
// expected, and a call otherwise.  Either is named when its leading section is
// named, i.e. when it opens with a separator beginning a named section, or its
// first item is a binding of the matching kind.
func (p *Situator) situateCallOrSignature(id expr.Id, s opcode.Situation) expr.Id {
	branches := p.tree.Branches(id)
	//
	if len(branches) == 0 {
		p.error(id, "\"%s\" does not have at least 1 branch as %s", p.tree.Opcode(id), s.Describe())
		return id
	}
	//
	var (
		items     = branches[1:]
		signature = s == opcode.MATTE_SYMBOL
		op        opcode.Opcode
	)
	//
	switch {
	case len(items) == 0 && signature:
		op = opcode.NO_PARAMETER_SIGNATURE
	case len(items) == 0:
		op = opcode.NO_ARGUMENT_CALL
	case signature && p.leadsNamed(items, opcode.BIND_SYMBOL_OR_DEFAULT_SYMBOL):
		op = opcode.NAMED_PARAMETER_SIGNATURE
	case signature:
		op = opcode.POSITIONAL_PARAMETER_SIGNATURE
	case p.leadsNamed(items, opcode.BIND_VALUE_OR_DEFAULT_VALUE):
		op = opcode.NAMED_ARGUMENT_CALL
	default:
		op = opcode.POSITIONAL_ARGUMENT_CALL
	}
	//
	p.tree.SetOpcode(id, op)
	//
	return p.Situate(id, s)
}

// Check whether the leading section of a list of fields is named.
func (p *Situator) leadsNamed(items []expr.Id, binding opcode.Opcode) bool {
	op := p.tree.Opcode(items[0])
	//
	if named, ok := op.SeparatesFields(); ok {
		return named
	}
	//
	return op == binding
}

// ============================================================================
// Trips
// ============================================================================

// A trip is a scope when it occurs as a statement.  Otherwise, it is empty, a
// tuple, an anonymous object (when its first item is a binding) or, with a
// single item, just that item.
func (p *Situator) situateTrip(id expr.Id, s opcode.Situation) expr.Id {
	var (
		branches = p.tree.Branches(id)
		first    = opcode.ERROR
		op       opcode.Opcode
	)
	//
	if len(branches) > 0 {
		first = p.tree.Opcode(branches[0])
	}
	//
	switch {
	case s == opcode.MATTE_LOCAL_STATEMENT:
		op = opcode.SCOPE
	case len(branches) == 0:
		op = emptyTrip(s)
	case s == opcode.MATTE_SYMBOL && first == opcode.BIND_SYMBOL_OR_DEFAULT_SYMBOL:
		op = opcode.ANONYMOUS_OBJECT_TYPE
	case !s.IsSymbolic() && s != opcode.MATTE_DESTINATION && first == opcode.BIND_VALUE_OR_DEFAULT_VALUE:
		op = opcode.ANONYMOUS_OBJECT_VALUE
	case len(branches) == 1:
		return p.collapse(id, s)
	default:
		op = tupleTrip(s)
	}
	//
	p.tree.SetOpcode(id, op)
	//
	return p.Situate(id, s)
}

// Replace an expression by its only branch, situated in the same situation.
func (p *Situator) collapse(id expr.Id, s opcode.Situation) expr.Id {
	var (
		outer = p.tree.Opcode(id)
		only  = p.tree.Branch(id)
		op    = p.tree.Opcode(only)
	)
	//
	if !op.CanBe(s) {
		p.error(only, "\"%s\" is not valid as %s in the only branch of \"%s\"", op, s.Describe(), outer)
		return id
	}
	//
	p.tree.Delete(id)
	//
	return p.Situate(only, s)
}

func emptyTrip(s opcode.Situation) opcode.Opcode {
	switch s {
	case opcode.MATTE_DESTINATION:
		return opcode.IGNORE
	case opcode.MATTE_SYMBOL:
		return opcode.NULL_TYPE
	default:
		return opcode.NULL_VALUE
	}
}

func tupleTrip(s opcode.Situation) opcode.Opcode {
	switch s {
	case opcode.MATTE_DESTINATION:
		return opcode.TUPLE_DESTINATION
	case opcode.MATTE_SYMBOL:
		return opcode.TUPLE_TYPE
	default:
		return opcode.TUPLE_VALUE
	}
}

// ============================================================================
// Arithmetic and assignment
// ============================================================================

func (p *Situator) situateNegateOrSubtract(id expr.Id, s opcode.Situation) expr.Id {
	switch p.tree.BranchCount(id) {
	case 0:
		p.error(id, "\"%s\" does not have at least 1 branch as %s", p.tree.Opcode(id), s.Describe())
		return id
	case 1:
		p.tree.SetOpcode(id, opcode.NEGATE)
	default:
		p.tree.SetOpcode(id, opcode.SUBTRACT)
	}
	//
	return p.Situate(id, s)
}

// Compound assignment "a += b" becomes "[copy a [add a b]]", whilst cast
// assignment "a ;= b" becomes "[copy a [cast [type_of_value a] b]]".  The
// destination is cloned, so it is evaluated twice.
func (p *Situator) situateCompoundAssign(id expr.Id, s opcode.Situation) expr.Id {
	op := p.tree.Opcode(id)
	//
	if p.tree.BranchCount(id) != 2 {
		p.error(id, "\"%s\" does not have exactly 2 branches as %s", op, s.Describe())
		return id
	}
	//
	var (
		branches = p.tree.Branches(id)
		dest     = branches[0]
		value    = branches[1]
		span     = p.tree.Span(id)
		rhs      expr.Id
	)
	//
	if op == opcode.CAST_ASSIGN {
		typ := p.tree.New(opcode.TYPE_OF_VALUE, p.tree.Span(dest))
		p.tree.SetBranches(typ, []expr.Id{p.tree.Clone(dest)})
		rhs = p.tree.New(opcode.CAST, span)
		p.tree.SetBranches(rhs, []expr.Id{typ, value})
	} else {
		rhs = p.tree.New(compoundOpcodes[op], span)
		p.tree.SetBranches(rhs, []expr.Id{p.tree.Clone(dest), value})
	}
	//
	p.tree.SetOpcode(id, opcode.COPY)
	p.tree.SetBranches(id, []expr.Id{dest, rhs})
	//
	return p.Situate(id, s)
}

// ============================================================================
// Names
// ============================================================================

// An identification turns a string literal into an identifier, so that any
// text can be used as a name.
func (p *Situator) situateIdentify(id expr.Id, s opcode.Situation) expr.Id {
	name, ok := p.identification(id, s)
	if !ok {
		return id
	}
	//
	ident := p.tree.NewText(opcode.IDENTIFIER, p.tree.Span(id), name)
	//
	p.tree.Delete(p.tree.Branch(id))
	p.tree.Delete(id)
	//
	return ident
}

// Determine the name given by an identification, reporting an error if there
// is none.
func (p *Situator) identification(id expr.Id, s opcode.Situation) (string, bool) {
	op := p.tree.Opcode(id)
	//
	if p.tree.BranchCount(id) != 1 {
		p.error(id, "\"%s\" does not have exactly 1 branch as %s", op, s.Describe())
		return "", false
	}
	//
	operand := p.tree.Branch(id)
	//
	switch p.tree.Opcode(operand) {
	case opcode.STRING_LITERAL, opcode.IDENTIFIER:
		if name := p.tree.Text(operand); name != "" {
			return name, true
		}
		//
		p.error(operand, "identifier cannot be empty")
	case opcode.ERROR:
		// Already reported
	default:
		p.error(operand, "\"%s\" cannot be used as an identifier", p.tree.Opcode(operand))
	}
	//
	return "", false
}

// ============================================================================
// Reflection
// ============================================================================

// A chain of reflections "a.b.[size]" is rewritten left to right.  Each step
// which is an identifier becomes a member access on what precedes it, and each
// step which is a reflective shorthand becomes its universal form applied to
// what precedes it, e.g. "[size_of_value [member_value_of_value a b]]".  The
// situation of the last step is that of the whole chain, whilst earlier steps
// produce whatever kind of thing the chain reflects upon.
func (p *Situator) situateReflect(id expr.Id, s opcode.Situation) expr.Id {
	var (
		symbolic = p.tree.Opcode(id) == opcode.REFLECT_SYMBOL
		target   = s
	)
	//
	if s == opcode.SYMBOL_PATH {
		target = opcode.MATTE_SYMBOL
	}
	//
	operands, reflections, ok := p.flattenReflection(id, s)
	if !ok {
		return id
	}
	//
	steps := operands[1:]
	// Check every step before rewriting anything
	for i, step := range steps {
		last := i == len(steps)-1
		ok = p.checkReflectionStep(step, reflectiveSituation(stepTarget(target, symbolic, last), symbolic),
			symbolic) && ok
	}
	//
	if !ok {
		return id
	}
	//
	acc := operands[0]
	//
	for i, step := range steps {
		var (
			last = i == len(steps)-1
			span = p.tree.Span(acc).Join(p.tree.Span(step))
		)
		//
		if p.tree.Opcode(step) == opcode.IDENTIFY {
			step = p.situateIdentify(step, opcode.SYMBOL_NAME)
		}
		//
		if p.tree.Opcode(step) == opcode.IDENTIFIER {
			outer := symbolic
			if last {
				outer = s.IsSymbolic()
			}
			//
			member := p.tree.New(memberOpcode(outer, symbolic), span)
			p.tree.SetBranches(member, []expr.Id{acc, step})
			acc = member
		} else {
			universal, _ := p.tree.Opcode(step).Universalize(symbolic)
			p.tree.SetOpcode(step, universal)
			p.tree.SetSpan(step, span)
			p.tree.PrependBranch(step, acc)
			acc = step
		}
	}
	//
	for _, r := range reflections {
		p.tree.Delete(r)
	}
	//
	if op := p.tree.Opcode(acc); !op.CanBe(s) {
		p.error(acc, "\"%s\" is not valid as %s", op, s.Describe())
		return acc
	}
	//
	return p.Situate(acc, s)
}

// Flatten a left-nested chain of reflections of the same kind into its
// operands (base first), along with the reflections themselves.
func (p *Situator) flattenReflection(id expr.Id, s opcode.Situation) ([]expr.Id, []expr.Id, bool) {
	var (
		op          = p.tree.Opcode(id)
		reflections []expr.Id
		steps       []expr.Id
		current     = id
	)
	//
	for p.tree.Opcode(current) == op {
		if p.tree.BranchCount(current) != 2 {
			p.error(current, "\"%s\" does not have exactly 2 branches as %s", op, s.Describe())
			return nil, nil, false
		}
		//
		branches := p.tree.Branches(current)
		reflections = append(reflections, current)
		steps = append(steps, branches[1])
		current = branches[0]
	}
	//
	slices.Reverse(steps)
	//
	return append([]expr.Id{current}, steps...), reflections, true
}

// Check a single step of a reflection is either a name, or a shorthand legal
// in the given reflective situation.
func (p *Situator) checkReflectionStep(step expr.Id, reflective opcode.Situation, symbolic bool) bool {
	op := p.tree.Opcode(step)
	//
	switch op {
	case opcode.IDENTIFIER:
		return true
	case opcode.IDENTIFY:
		_, ok := p.identification(step, opcode.SYMBOL_NAME)
		return ok
	case opcode.ERROR:
		// Already reported
		return false
	}
	//
	if _, ok := op.Universalize(symbolic); !ok || !op.CanBe(reflective) {
		p.error(step, "\"%s\" is not valid as %s", op, reflective.Describe())
		return false
	}
	//
	return true
}

// Situation which a reflection step produces, before reflection.
func stepTarget(target opcode.Situation, symbolic bool, last bool) opcode.Situation {
	switch {
	case last:
		return target
	case symbolic:
		return opcode.MATTE_SYMBOL
	default:
		return opcode.MATTE_VALUE
	}
}

func reflectiveSituation(target opcode.Situation, symbolic bool) opcode.Situation {
	if symbolic {
		return opcode.NextSymbolReflective(target)
	}
	//
	return opcode.NextValueReflective(target)
}

// Member access producing a symbol (or value), of a symbol (or value).
func memberOpcode(outerSymbolic bool, innerSymbolic bool) opcode.Opcode {
	switch {
	case outerSymbolic && innerSymbolic:
		return opcode.MEMBER_SYMBOL_OF_SYMBOL
	case outerSymbolic:
		return opcode.MEMBER_SYMBOL_OF_VALUE
	case innerSymbolic:
		return opcode.MEMBER_VALUE_OF_SYMBOL
	default:
		return opcode.MEMBER_VALUE_OF_VALUE
	}
}
