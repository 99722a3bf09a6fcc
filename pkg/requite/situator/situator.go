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

	"github.com/consensys/go-requite/pkg/requite/diag"
	"github.com/consensys/go-requite/pkg/requite/expr"
	"github.com/consensys/go-requite/pkg/requite/opcode"
	"github.com/consensys/go-requite/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Situate a chain of raw top-level expressions in a given situation, returning
// the (possibly different) first expression of the resulting chain and whether
// situating succeeded without error.  Situated expressions hold only concrete
// opcodes, each of which is legal where it occurs.  Expressions which fail to
// situate are left in place, so that as many errors as possible are reported.
func Situate(srcfile *source.File, tree *expr.Tree, first expr.Id, situation opcode.Situation,
	diagnostics *diag.Log) (expr.Id, bool) {
	//
	situator := NewSituator(srcfile, tree, diagnostics)
	first = situator.SituateAll(first, situation)
	//
	return first, situator.Ok()
}

// Situator rewrites raw expressions into situated expressions, according to
// the situation of each.
type Situator struct {
	srcfile     *source.File
	tree        *expr.Tree
	diagnostics *diag.Log
	// Number of errors reported by this situator
	errors uint
}

// NewSituator constructs a situator for expressions allocated in a given tree.
func NewSituator(srcfile *source.File, tree *expr.Tree, diagnostics *diag.Log) *Situator {
	return &Situator{srcfile, tree, diagnostics, 0}
}

// Ok checks whether any errors have been reported by this situator.
func (p *Situator) Ok() bool {
	return p.errors == 0
}

// SituateAll situates every expression of a sibling chain in the same
// situation, returning the first expression of the resulting chain.
func (p *Situator) SituateAll(first expr.Id, s opcode.Situation) expr.Id {
	var ids []expr.Id
	//
	for _, id := range p.tree.Chain(first) {
		if op := p.tree.Opcode(id); !op.CanBe(s) {
			p.error(id, "\"%s\" is not valid as %s", op, s.Describe())
			ids = append(ids, id)
		} else {
			ids = append(ids, p.Situate(id, s))
		}
	}
	//
	log.WithFields(log.Fields{"situation": s, "expressions": len(ids), "errors": p.errors}).Debug("situated")
	//
	return p.tree.Link(ids)
}

// Situate a single expression which is already known to be legal in the given
// situation, returning the expression which replaces it.  The replacement is
// not linked to any siblings of the original.
func (p *Situator) Situate(id expr.Id, s opcode.Situation) expr.Id {
	op := p.tree.Opcode(id)
	// Placeholders decided by situation alone
	if target, ok := op.Resolve(s); ok {
		p.tree.SetOpcode(id, target)
		op = target
	}
	//
	if op.IsPrepared() {
		preparers[op](p, id)
	}
	//
	arity := op.Arity()
	//
	switch arity.Handler {
	case opcode.SPECIAL:
		return specials[op](p, id, s)
	case opcode.UNIVERSALIZING:
		// Shorthands only occur as reflection operands, which are rewritten
		// before being situated.
		panic(fmt.Sprintf("opcode \"%s\" situated outside of a reflection", op))
	}
	//
	if !p.checkArity(id, s) {
		return id
	} else if arity.Handler == opcode.FIELDS {
		p.situateFields(id, s)
		return id
	}
	//
	branches := p.tree.Branches(id)
	//
	for i, b := range branches {
		branches[i] = p.situateBranch(id, uint(i), b, branchTransition(arity, uint(i), uint(len(branches))), s)
	}
	//
	p.tree.SetBranches(id, branches)
	//
	if op.IsConverging() {
		p.converge(id)
	}
	//
	return id
}

// Situate the i'th branch of a given expression, after checking it is legal in
// the situation determined by its transition.
func (p *Situator) situateBranch(parent expr.Id, index uint, branch expr.Id, t opcode.Transition,
	s opcode.Situation) expr.Id {
	//
	var (
		arity  = p.tree.Opcode(parent).Arity()
		phrase = branchPhrase(arity, index, p.tree.BranchCount(parent))
	)
	//
	return p.situateIn(parent, branch, t.Apply(s), phrase)
}

// Situate a branch of a given expression in a given situation, after checking
// it is legal there.  The phrase describes where the branch occurs.
func (p *Situator) situateIn(parent expr.Id, branch expr.Id, target opcode.Situation, phrase string) expr.Id {
	op := p.tree.Opcode(branch)
	//
	if !op.CanBe(target) {
		p.error(branch, "\"%s\" is not valid as %s in %s of \"%s\"", op, target.Describe(), phrase,
			p.tree.Opcode(parent))
		//
		return branch
	}
	//
	return p.Situate(branch, target)
}

// Situate the head and fields of a call or signature.  Fields are positional
// or named according to the section they fall in, where each field separator
// begins a new section.  Separators themselves are kept as markers.
func (p *Situator) situateFields(id expr.Id, s opcode.Situation) {
	var (
		arity    = p.tree.Opcode(id).Arity()
		branches = p.tree.Branches(id)
		named    = arity.Named
	)
	//
	branches[0] = p.situateIn(id, branches[0], arity.Leading[0].Apply(s), "the first branch")
	//
	for i := 1; i < len(branches); i++ {
		if next, ok := p.tree.Opcode(branches[i]).SeparatesFields(); ok {
			named = next
		} else if named {
			branches[i] = p.situateIn(id, branches[i], arity.Last.Apply(s), "the named section")
		} else {
			branches[i] = p.situateIn(id, branches[i], arity.Rest.Apply(s), "the positional section")
		}
	}
	//
	p.tree.SetBranches(id, branches)
}

// Check the number of branches of a given expression against its arity,
// reporting an error if it does not match.
func (p *Situator) checkArity(id expr.Id, s opcode.Situation) bool {
	var (
		op               = p.tree.Opcode(id)
		arity            = op.Arity()
		n                = p.tree.BranchCount(id)
		minimum          = arity.Minimum()
		maximum, bounded = arity.Max()
	)
	//
	switch {
	case bounded && minimum == maximum && n != minimum:
		p.error(id, "\"%s\" does not have exactly %s as %s", op, plural(minimum), s.Describe())
	case n < minimum:
		p.error(id, "\"%s\" does not have at least %s as %s", op, plural(minimum), s.Describe())
	case bounded && n > maximum:
		p.error(id, "\"%s\" does not have at most %s as %s", op, plural(maximum), s.Describe())
	default:
		return true
	}
	//
	return false
}

// Splice the branches of any immediate branch with the same opcode into the
// branches of a given expression, e.g. "[add a [add b c]]" becomes
// "[add a b c]".
func (p *Situator) converge(id expr.Id) {
	var (
		op       = p.tree.Opcode(id)
		branches []expr.Id
	)
	//
	for _, b := range p.tree.Branches(id) {
		if p.tree.Opcode(b) == op {
			branches = append(branches, p.tree.Branches(b)...)
			p.tree.Delete(b)
		} else {
			branches = append(branches, b)
		}
	}
	//
	p.tree.SetBranches(id, branches)
}

func (p *Situator) error(id expr.Id, format string, args ...any) {
	p.errors++
	p.diagnostics.Error(p.srcfile, p.tree.Span(id), format, args...)
}

// ============================================================================
// Helpers
// ============================================================================

// Determine the transition for the i'th of n branches.  The arity is assumed
// to have been checked already.
func branchTransition(arity *opcode.Arity, index uint, n uint) opcode.Transition {
	switch {
	case arity.Handler == opcode.NARY_WITH_LAST && index == n-1:
		return arity.Last
	case arity.Handler == opcode.NARY_WITH_LAST:
		return *arity.Rest
	case index < uint(len(arity.Leading)):
		return arity.Leading[index]
	default:
		return *arity.Rest
	}
}

// Describe which branches the i'th of n branches is grouped with, for use in
// diagnostics.  Branches sharing a transition are described together.
func branchPhrase(arity *opcode.Arity, index uint, n uint) string {
	var (
		leading        = uint(len(arity.Leading))
		maximum, bound = arity.Max()
	)
	//
	switch {
	case arity.Handler == opcode.NARY_WITH_LAST && index == n-1:
		return "the last branch"
	case arity.Handler == opcode.NARY_WITH_LAST:
		return "any branch but the last"
	case bound && maximum == 1:
		return "the only branch"
	case arity.Handler == opcode.BINARY && arity.Leading[0] == arity.Leading[1]:
		return "the first and second branches"
	case index < leading:
		return fmt.Sprintf("the %s branch", ordinal(index))
	case leading == 0:
		return "any branch"
	default:
		return "the remaining branches"
	}
}

func ordinal(index uint) string {
	switch index {
	case 0:
		return "first"
	case 1:
		return "second"
	case 2:
		return "third"
	default:
		return fmt.Sprintf("%dth", index+1)
	}
}

func plural(n uint) string {
	if n == 1 {
		return "1 branch"
	}
	//
	return fmt.Sprintf("%d branches", n)
}
