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
	"sort"
	"strings"

	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
)

// Env tracks, for one inversion attempt, which pattern variables are goals
// (still needing a generator), which are already bound (usable as enumeration
// inputs), and which relations are active, meaning currently being defined by
// an enclosing recursive relation. The active set is what lets us detect a
// recursive self-reference without unbounded unfolding.
//
// An Env is an immutable snapshot. Entering a nested scope (an existential
// quantifier or a nested query) derives a child snapshot with the With*
// helpers; nothing ever mutates an Env in place. This means a process tree
// node can safely hold the snapshot that was current when it was built.
type Env struct {
	// Goals is the ordered list of free variables that need a generator.
	Goals []*ast.ExprVar

	// Bound is the set of variable identities that are already bound.
	Bound map[string]struct{}

	// Active is the set of relation names currently being defined.
	Active map[string]struct{}

	// Scope is the enclosing binding scope from the scope-resolution stage.
	// Variables found in here count as bound too.
	Scope *interfaces.Scope
}

// NewEnv builds a fresh environment from the goal variables and the enclosing
// scope. The scope may be nil.
func NewEnv(goals []*ast.ExprVar, scope *interfaces.Scope) *Env {
	return &Env{
		Goals:  goals,
		Bound:  make(map[string]struct{}),
		Active: make(map[string]struct{}),
		Scope:  scope,
	}
}

// String returns a short representation of this environment.
func (obj *Env) String() string {
	var goals []string
	for _, x := range obj.Goals {
		goals = append(goals, x.Ident())
	}
	var active []string
	for name := range obj.Active {
		active = append(active, name)
	}
	sort.Strings(active)
	return fmt.Sprintf("env(goals: [%s], active: [%s])", strings.Join(goals, ", "), strings.Join(active, ", "))
}

// Copy makes a copy of the Env struct so that derived snapshots can't affect
// the original. The Expr pointers inside the scope are references, and stay
// shared, just like with the Scope Copy method.
func (obj *Env) Copy() *Env {
	goals := []*ast.ExprVar{}
	bound := make(map[string]struct{})
	active := make(map[string]struct{})
	var scope *interfaces.Scope
	if obj != nil { // allow copying nil envs
		goals = append(goals, obj.Goals...) // vars are immutable
		for k := range obj.Bound {
			bound[k] = struct{}{}
		}
		for k := range obj.Active {
			active[k] = struct{}{}
		}
		scope = obj.Scope
	}
	return &Env{
		Goals:  goals,
		Bound:  bound,
		Active: active,
		Scope:  scope,
	}
}

// IsGoal returns true if the given variable is one of the goal variables of
// this inversion attempt. Identity is by name and ordinal, not by pointer.
func (obj *Env) IsGoal(v *ast.ExprVar) bool {
	for _, x := range obj.Goals {
		if x.Ident() == v.Ident() {
			return true
		}
	}
	return false
}

// IsBound returns true if the given variable is already bound, either
// explicitly or through the enclosing scope.
func (obj *Env) IsBound(v *ast.ExprVar) bool {
	if _, exists := obj.Bound[v.Ident()]; exists {
		return true
	}
	if obj.Scope != nil {
		if _, exists := obj.Scope.Variables[v.Name]; exists {
			return true
		}
	}
	return false
}

// IsActive returns true if the named relation is currently being defined,
// that is, we are inside the body of the relation while trying to invert it.
func (obj *Env) IsActive(name string) bool {
	_, exists := obj.Active[name]
	return exists
}

// WithBound derives a child snapshot with the given variables additionally
// marked as bound. The receiver is unchanged.
func (obj *Env) WithBound(vars ...*ast.ExprVar) *Env {
	env := obj.Copy()
	for _, v := range vars {
		env.Bound[v.Ident()] = struct{}{}
	}
	return env
}

// WithActive derives a child snapshot with the given relation names
// additionally marked as active. The receiver is unchanged.
func (obj *Env) WithActive(names ...string) *Env {
	env := obj.Copy()
	for _, name := range names {
		env.Active[name] = struct{}{}
	}
	return env
}

// WithGoals derives a child snapshot with the goal list replaced. The
// receiver is unchanged.
func (obj *Env) WithGoals(goals []*ast.ExprVar) *Env {
	env := obj.Copy()
	env.Goals = append([]*ast.ExprVar{}, goals...)
	return env
}
