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

// Package inversion implements the predicate inversion pass of the compiler.
// Given a boolean predicate over one or more goal variables, it derives a
// finite or safely-iterable enumeration source (a generator) for a goal
// variable, plus any leftover filter conditions that could not be absorbed
// into that source. This is what lets a query leave out an explicit
// iteration domain: `from (x, y) where path(x, y) yield ...` works even when
// `path` is defined recursively, because this pass recognizes the transitive
// closure shape and compiles it into a terminating fixpoint enumeration.
//
// The pass is a pure, synchronous, compile-time analysis. Every inversion
// attempt builds its own process tree and environment snapshots and discards
// them afterwards; nothing here holds state across calls, so independent
// compiles may run concurrently without coordination.
package inversion

import (
	"fmt"

	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
	"github.com/merl-lang/merl/util"
	"github.com/merl-lang/merl/util/errwrap"

	"github.com/sanity-io/litter"
)

// Inverter holds all the data that one predicate inversion will need for it
// to run. The registry is only ever read from.
type Inverter struct {
	// Registry maps relation names to their known extensions.
	Registry *Registry

	Debug bool
	Logf  func(format string, v ...interface{})
}

// Invert takes a predicate over the given goal variables and attempts to
// derive a generator for one of them. The environment carries the enclosing
// binding scope and the set of active (currently-being-defined) relations;
// it may be nil when there is neither. The goal list always takes precedence
// over whatever goals the passed-in environment carried.
//
// A fully inverted predicate comes back as a Result with no remaining
// filters. A partial inversion carries the residual filters for the caller
// to apply after enumeration. When no generator can be derived at all, the
// error wraps interfaces.ErrUninvertible; that outcome is normal and
// expected, and the caller decides whether to try a different goal ordering
// or to surface a compile error.
func (obj *Inverter) Invert(predicate interfaces.Expr, goals []*ast.ExprVar, env *Env) (*Result, error) {
	if predicate == nil {
		return nil, fmt.Errorf("the predicate is nil")
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("no goal variables were supplied")
	}
	if obj.Registry == nil {
		return nil, fmt.Errorf("the Registry is missing")
	}
	if obj.Logf == nil {
		return nil, fmt.Errorf("the Logf function is missing")
	}

	if env == nil {
		env = NewEnv(goals, nil)
	} else {
		env = env.WithGoals(goals)
	}

	if obj.Debug {
		obj.Logf("invert: %s for %s", predicate.String(), env.String())
	}

	tree, err := obj.buildProcess(predicate, env)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not build the process tree")
	}
	if obj.Debug {
		obj.Logf("tree: %s", litter.Sdump(tree))
	}

	result, err := obj.invertNode(tree)
	if err != nil {
		return nil, err
	}
	if obj.Debug {
		obj.Logf("inverted: %s", result.String())
	}
	return result, nil
}

// buildProcess classifies a predicate expression, relative to the goal
// variables and the active recursion set in the environment, into the
// process tree. Disjunctions become Branch nodes, conjunctions become
// Sequence nodes, everything else bottoms out in a Terminal. An existential
// quantifier is transparent for classification: its body is classified in a
// child environment that has the quantified variable marked bound, and the
// resulting subtree keeps the whole existential as its originating
// expression, so that the fixpoint recognizer can find the join variable.
func (obj *Inverter) buildProcess(exp interfaces.Expr, env *Env) (Node, error) {
	switch x := exp.(type) {
	case *ast.ExprOr:
		left, err := obj.buildProcess(x.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := obj.buildProcess(x.Right, env)
		if err != nil {
			return nil, err
		}
		return NewBranch(x, env, left, right)

	case *ast.ExprAnd:
		conjuncts := DecomposeConjunction(x)
		if len(conjuncts) == 0 { // was the literal `true`
			return obj.buildTerminal(&ast.ExprBool{V: true}, env), nil
		}
		if len(conjuncts) == 1 { // identity elements collapsed it
			return obj.buildProcess(conjuncts[0], env)
		}
		children := []Node{}
		for _, c := range conjuncts {
			child, err := obj.buildProcess(c, env)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return NewSequence(x, env, children)

	case *ast.ExprExists:
		child, err := obj.buildProcess(x.Body, env.WithBound(x.Var))
		if err != nil {
			return nil, err
		}
		// the subtree root reports the whole existential as its origin
		switch node := child.(type) {
		case *Terminal:
			node.Exp = x
		case *Branch:
			node.Exp = x
		case *Sequence:
			node.Exp = x
		}
		return child, nil

	default:
		return obj.buildTerminal(x, env), nil
	}
}

// buildTerminal builds a Terminal for an atomic expression, attempting the
// per-atom inversion strategies in order: a recognized comparison or
// membership constraint on a single goal variable goes through the extent
// calculator; an application of a relation whose extension is known, and
// whose arguments exactly cover the goal variables, becomes an enumeration
// over that extension; a self-reference to an active relation is flagged as
// the recursive call instead of failing outright; anything else stays
// un-inverted for the parent to reconsider.
func (obj *Inverter) buildTerminal(exp interfaces.Expr, env *Env) *Terminal {
	if call, ok := exp.(*ast.ExprCall); ok && env.IsActive(call.Name) {
		return &Terminal{
			Exp:             exp,
			Env:             env,
			IsRecursiveCall: true,
		}
	}
	return &Terminal{
		Exp:    exp,
		Env:    env,
		Result: obj.invertTerminal(exp, env), // nil is fine
	}
}

// invertTerminal runs the per-atom inversion strategies. It returns nil when
// none applied, which is not an error at this level.
func (obj *Inverter) invertTerminal(exp interfaces.Expr, env *Env) *Result {
	// (a) an atomic constraint on exactly one goal variable
	if v, ok := singleGoalVar(exp, env); ok {
		extent, absorbed, err := ExtentOf(v, []interfaces.Expr{exp})
		if err == nil && len(absorbed) == 1 {
			return &Result{
				Generator: &Generator{
					Pattern: v,
					Source: &ExtentSource{
						Extent: extent,
						Origin: exp,
					},
					Cardinality: CardinalityFinite,
				},
			}
		}
	}

	// (b) an application of a relation with a known extension whose
	// arguments exactly cover the goal variables
	call, ok := exp.(*ast.ExprCall)
	if !ok {
		return nil
	}
	relation, exists := obj.Registry.Lookup(call.Name)
	if !exists || relation.Rows == nil {
		return nil
	}
	if len(call.Args) != relation.Arity() {
		return nil
	}
	args := []*ast.ExprVar{}
	seen := make(map[string]struct{})
	for _, x := range call.Args {
		v, ok := x.(*ast.ExprVar)
		if !ok || !env.IsGoal(v) {
			return nil
		}
		if _, dup := seen[v.Ident()]; dup {
			return nil // repeated variable, this shape can't drive
		}
		seen[v.Ident()] = struct{}{}
		args = append(args, v)
	}
	if len(args) != len(env.Goals) {
		return nil // must cover the goals exactly
	}
	return &Result{
		Generator: &Generator{
			Pattern: args[0],
			Source: &RelationSource{
				Relation: relation,
				Origin:   call,
			},
			Cardinality:   CardinalityFinite,
			ExtraBindings: args[1:],
		},
	}
}

// invertNode walks a process tree node and produces the generator, or the
// uninvertible outcome. The type switch is exhaustive over the closed sum.
func (obj *Inverter) invertNode(n Node) (*Result, error) {
	switch node := n.(type) {
	case *Terminal:
		if node.IsInverted() {
			return node.Result, nil
		}
		if node.IsRecursiveCall {
			// only an enclosing Branch can use this, as a fixpoint step
			return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "a recursive self-reference has no direct generator")
		}
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "cannot invert: %s", node.Exp.String())

	case *Sequence:
		return obj.invertSequence(node)

	case *Branch:
		return obj.invertBranch(node)
	}
	panic(fmt.Sprintf("unknown process tree node: %T", n)) // unreachable
}

// invertSequence handles a conjunction: at least one child must become a
// driving generator, and every conjunct that the driving generator's own
// bound did not absorb comes back as a remaining filter. If no child can
// drive, the whole sequence is uninvertible and the failure propagates
// upward.
func (obj *Inverter) invertSequence(seq *Sequence) (*Result, error) {
	exprs := []interfaces.Expr{}
	for _, child := range seq.Children {
		exprs = append(exprs, childExpr(child))
	}

	// First try the joint extent of each goal variable over all of the
	// conjuncts together: individual atoms like `x >= 3` are unbounded on
	// their own, but the conjunction may still pin the variable down.
	for _, v := range seq.Env.Goals {
		extent, absorbed, err := ExtentOf(v, exprs)
		if err != nil {
			continue // try the next goal variable
		}
		residual := subtractExprs(exprs, absorbed)
		result := &Result{
			Generator: &Generator{
				Pattern: v,
				Source: &ExtentSource{
					Extent: extent,
					Origin: RecomposeConjunction(absorbed),
				},
				Cardinality: CardinalityFinite,
			},
			RemainingFilters: residual,
		}
		if obj.Debug {
			obj.Logf("sequence: extent of `%s` drives: %s", v.Ident(), extent.String())
		}
		return result, nil
	}

	// Otherwise any child that inverts on its own can drive, and every
	// other conjunct becomes a residual filter. This includes Branch
	// children: a recognized transitive closure conjoined with extra
	// constraints drives the enumeration with those constraints left over.
	for i, child := range seq.Children {
		var result *Result
		if terminal, ok := child.(*Terminal); ok {
			if !terminal.IsInverted() {
				continue
			}
			result = terminal.Result
		} else {
			r, err := obj.invertNode(child)
			if err != nil {
				continue // this child can't drive
			}
			result = r
		}
		residual := append([]interfaces.Expr{}, result.RemainingFilters...)
		for j, x := range exprs {
			if j != i {
				residual = append(residual, x)
			}
		}
		return &Result{
			Generator:        result.Generator,
			RemainingFilters: residual,
		}, nil
	}

	return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "no conjunct of `%s` can drive the enumeration", seq.Exp.String())
}

// invertBranch handles a disjunction. The only disjunction this pass knows
// how to invert is the transitive closure pattern: an invertible base case
// on one arm, and a recursive step through the relation currently being
// defined on the other. Anything else is an explicit rejected outcome; in
// particular, a disjunction outside of an active relation context is never
// inverted, which is a documented limitation rather than something to guess
// at.
//
// The recognition runs as one linear pass over the two children, moving
// through the states: unclassified, base-case-found, step-found, and then
// either fixpoint-synthesized or rejected.
func (obj *Inverter) invertBranch(branch *Branch) (*Result, error) {
	if len(branch.Env.Active) == 0 {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "cannot invert a disjunction outside of a recursive relation")
	}
	// base-case-found?
	if !branch.HasInvertibleBaseCase() {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the left arm of `%s` is not an invertible base case", branch.Exp.String())
	}
	// step-found?
	if !branch.HasRecursiveCase() {
		return nil, errwrap.Wrapf(interfaces.ErrUninvertible, "the right arm of `%s` has no recursive step", branch.Exp.String())
	}
	// fixpoint-synthesized, or rejected from inside
	return obj.synthesizeFixpoint(branch)
}

// InvertAll derives one generator per goal variable by repeatedly calling
// Invert, marking each driven variable (and whatever its source binds as a
// side effect) as bound before moving on. This is a convenience for callers
// that want the whole cascade at once; the per-call contract is unchanged,
// and the first variable that can't be driven fails the cascade with the
// same uninvertible outcome that Invert reports.
func (obj *Inverter) InvertAll(predicate interfaces.Expr, goals []*ast.ExprVar, env *Env) ([]*Result, error) {
	if env == nil {
		env = NewEnv(goals, nil)
	}
	results := []*Result{}
	remaining := append([]*ast.ExprVar{}, goals...)
	for len(remaining) > 0 {
		result, err := obj.Invert(predicate, remaining, env)
		if err != nil {
			return nil, errwrap.Wrapf(err, "no generator for `%s`", remaining[0].Ident())
		}
		// make each generator self-contained for the consumer
		result.Generator.ExtraFilters = result.RemainingFilters
		results = append(results, result)

		driven := []*ast.ExprVar{result.Generator.Pattern}
		driven = append(driven, result.Generator.ExtraBindings...)
		env = env.WithBound(driven...)
		idents := []string{}
		for _, d := range driven {
			idents = append(idents, d.Ident())
		}

		next := []*ast.ExprVar{}
		for _, v := range remaining {
			if !util.StrInList(v.Ident(), idents) {
				next = append(next, v)
			}
		}
		if len(next) == len(remaining) { // no progress is a bug
			return nil, fmt.Errorf("generator for `%s` bound no goal variable", result.Generator.Pattern.Ident())
		}
		remaining = next
	}
	return results, nil
}

// childExpr returns the originating expression of any process tree node.
func childExpr(n Node) interfaces.Expr {
	switch node := n.(type) {
	case *Terminal:
		return node.Exp
	case *Branch:
		return node.Exp
	case *Sequence:
		return node.Exp
	}
	panic(fmt.Sprintf("unknown process tree node: %T", n)) // unreachable
}

// singleGoalVar reports whether an expression is an atomic comparison or
// membership constraint that mentions exactly one goal variable, and returns
// that variable.
func singleGoalVar(exp interfaces.Expr, env *Env) (*ast.ExprVar, bool) {
	switch exp.(type) {
	case *ast.ExprCmp, *ast.ExprIn:
		// recognized atomic constraint shapes
	default:
		return nil, false
	}
	seen := make(map[string]*ast.ExprVar)
	// the iterator never errors here
	_ = exp.Apply(func(n interfaces.Node) error {
		if v, ok := n.(*ast.ExprVar); ok && env.IsGoal(v) {
			seen[v.Ident()] = v
		}
		return nil
	})
	if len(seen) != 1 {
		return nil, false
	}
	for _, v := range seen {
		return v, true
	}
	return nil, false // unreachable
}

// subtractExprs returns the expressions of the first list that are not
// present (by pointer identity) in the second, preserving order.
func subtractExprs(exprs, remove []interfaces.Expr) []interfaces.Expr {
	result := []interfaces.Expr{}
	for _, x := range exprs {
		found := false
		for _, y := range remove {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			result = append(result, x)
		}
	}
	return result
}
