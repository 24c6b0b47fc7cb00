// Merl
// Copyright (C) the Merl language project contributors
// Written by the Merl language project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package inversion

import (
	"fmt"

	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
	"github.com/merl-lang/merl/lang/types"
	"github.com/merl-lang/merl/util/errwrap"
)

// synthesizeFixpoint turns a Branch that already passed the base case and
// recursive step checks into a fixpoint generator, or rejects it when the
// step arm does not have the exact transitive closure shape, which is:
//
//	base(x, y) ∨ ∃ z . step(x, z) ∧ self(z, y)
//
// where base is the invertible left arm, step is a relation with a known
// extension, and self is the recursive reference to the relation currently
// being defined. The argument positions matter: the step call must connect
// the first goal variable to the join variable, and the recursive call must
// connect the join variable to the second goal variable. Anything looser
// would also admit recursions that this pass cannot prove terminating.
func (obj *Inverter) synthesizeFixpoint(branch *Branch) (*Result, error) {
	goals := branch.Env.Goals
	if len(goals) != 2 {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "a recursive disjunction needs exactly two goal variables, not %d", len(goals))
	}

	base := branch.Left.(*Terminal).Result.Generator // HasInvertibleBaseCase
	if !coversGoals(base, goals) {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the base case source does not bind both goal variables")
	}

	// the step arm must be an existential over a two-part conjunction
	seq, ok := branch.Right.(*Sequence)
	if !ok {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the recursive arm is not a conjunction")
	}
	exists, ok := seq.Exp.(*ast.ExprExists)
	if !ok {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the recursive arm is not existentially quantified")
	}
	join := exists.Var

	recs := seq.RecursiveChildren()
	nonrecs := seq.NonRecursiveChildren()
	if len(recs) != 1 || len(nonrecs) != 1 {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the recursive arm must be one step and one self-reference")
	}
	recTerminal := recs[0].(*Terminal) // recursive nodes are terminals
	stepTerminal, ok := nonrecs[0].(*Terminal)
	if !ok {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the step conjunct is not atomic")
	}
	stepCall, ok := stepTerminal.Exp.(*ast.ExprCall)
	if !ok {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the step conjunct `%s` is not a relation application", stepTerminal.Exp.String())
	}
	step, found := obj.Registry.Lookup(stepCall.Name)
	if !found {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the step relation `%s` is unknown", stepCall.Name)
	}
	// the self-call may sit under a further existential, in which case the
	// terminal's originating expression is the quantifier and not the call
	// itself; that shape recurses on a freshly quantified variable and is
	// not a closure we know how to terminate
	recCall, ok := recTerminal.Exp.(*ast.ExprCall)
	if !ok {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the self-reference `%s` is not a direct relation application", recTerminal.Exp.String())
	}

	// step(goal0, z) connects into self(z, goal1)
	if !argsAre(stepCall, goals[0], join) {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the step call `%s` does not connect `%s` to the join variable", stepCall.String(), goals[0].Ident())
	}
	if !argsAre(recCall, join, goals[1]) {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the self-reference `%s` does not connect the join variable to `%s`", recCall.String(), goals[1].Ident())
	}

	cardinality := CardinalityFinite
	if step.Rows == nil {
		// a step with an unknown extension can still typecheck, but we
		// can't promise the closure is enumerable
		cardinality = CardinalityInfinite
	}
	result := &Result{
		Generator: &Generator{
			Pattern: goals[0],
			Source: &FixpointSource{
				Base:   base.Source,
				Step:   step,
				Origin: branch.Exp,
			},
			Cardinality:   cardinality,
			ExtraBindings: []*ast.ExprVar{goals[1]},
		},
	}
	if obj.Debug {
		obj.Logf("fixpoint: `%s` closed over `%s`", branch.Exp.String(), step.Name)
	}
	return result, nil
}

// coversGoals reports whether a generator binds every one of the given goal
// variables, between its driving pattern and its extra bindings.
func coversGoals(gen *Generator, goals []*ast.ExprVar) bool {
	for _, v := range goals {
		if gen.Pattern.Ident() == v.Ident() {
			continue
		}
		found := false
		for _, b := range gen.ExtraBindings {
			if b.Ident() == v.Ident() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// argsAre reports whether a call applies exactly the two given variables, in
// that order.
func argsAre(call *ast.ExprCall, first, second *ast.ExprVar) bool {
	if len(call.Args) != 2 {
		return false
	}
	a, ok := call.Args[0].(*ast.ExprVar)
	if !ok || a.Ident() != first.Ident() {
		return false
	}
	b, ok := call.Args[1].(*ast.ExprVar)
	if !ok || b.Ident() != second.Ident() {
		return false
	}
	return true
}

// FixpointSource enumerates the transitive closure of a base relation under
// a step relation. It starts from the base tuples and repeatedly prepends a
// step edge to every frontier pair, until no new pair appears. The visited
// set is owned by the iteration, so cyclic step relations terminate and
// never produce a duplicate pair.
type FixpointSource struct {
	// Base enumerates the seed pairs of the closure.
	Base Source

	// Step is the relation that each round of the closure steps through.
	Step *Relation

	// Origin is the disjunction this fixpoint was synthesized from.
	Origin interfaces.Expr
}

// String returns a visual representation of this source.
func (obj *FixpointSource) String() string {
	return fmt.Sprintf("fixpoint(%s, step: %s)", obj.Base.String(), obj.Step.Name)
}

// Expr returns the expression this source was derived from.
func (obj *FixpointSource) Expr() interfaces.Expr {
	return obj.Origin
}

// Values materializes the closure. Pairs come out in discovery order: all of
// the base pairs first, then each derivation round in turn. This errors if
// the step relation has no known extension, since the closure would not be
// enumerable.
func (obj *FixpointSource) Values() ([]types.Value, error) {
	if obj.Step.Rows == nil {
		return nil, fmt.Errorf("cannot materialize a fixpoint over `%s` without its extension", obj.Step.Name)
	}

	seed, err := obj.Base.Values()
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not enumerate the base case")
	}

	visited := make(map[string]struct{})
	out := []types.Value{}
	frontier := []*types.TupleValue{}
	add := func(t *types.TupleValue) bool {
		key := t.String()
		if _, exists := visited[key]; exists {
			return false
		}
		visited[key] = struct{}{}
		out = append(out, t)
		return true
	}

	for _, v := range seed {
		t, ok := v.(*types.TupleValue)
		if !ok || len(t.Tuple()) != 2 {
			return nil, fmt.Errorf("the base case produced a non-pair value: %s", v.String())
		}
		if add(t) {
			frontier = append(frontier, t)
		}
	}

	for len(frontier) > 0 {
		next := []*types.TupleValue{}
		for _, row := range obj.Step.Rows {
			edge, ok := row.(*types.TupleValue)
			if !ok || len(edge.Tuple()) != 2 {
				return nil, fmt.Errorf("the step relation `%s` contains a non-pair row: %s", obj.Step.Name, row.String())
			}
			for _, pair := range frontier {
				if edge.Tuple()[1].Cmp(pair.Tuple()[0]) != nil {
					continue // the edge doesn't connect to this pair
				}
				candidate := types.NewTuple(edge.Tuple()[0], pair.Tuple()[1])
				if add(candidate) {
					next = append(next, candidate)
				}
			}
		}
		frontier = next
	}

	return out, nil
}
