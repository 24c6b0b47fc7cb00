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

//go:build !root

package inversion

import (
	"testing"

	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
)

func TestEnvSnapshots1(t *testing.T) {
	x := &ast.ExprVar{Name: "x"}
	z := &ast.ExprVar{Name: "z"}

	env := NewEnv([]*ast.ExprVar{x}, nil)

	// deriving a child must not leak back into the parent
	child := env.WithBound(z).WithActive("path")
	if !child.IsBound(z) {
		t.Errorf("the child should see `z` as bound")
	}
	if !child.IsActive("path") {
		t.Errorf("the child should see `path` as active")
	}
	if env.IsBound(z) {
		t.Errorf("the parent must not see `z` as bound")
	}
	if env.IsActive("path") {
		t.Errorf("the parent must not see `path` as active")
	}

	// goals carry through derivation, identity is by name and ordinal
	if !child.IsGoal(&ast.ExprVar{Name: "x"}) {
		t.Errorf("the child should keep the goal `x`")
	}
	if child.IsGoal(&ast.ExprVar{Name: "x", Ordinal: 1}) {
		t.Errorf("`x#1` is a different variable than `x`")
	}

	// replacing the goals must not touch the parent either
	other := env.WithGoals([]*ast.ExprVar{z})
	if !other.IsGoal(z) || other.IsGoal(x) {
		t.Errorf("the derived goal list is wrong")
	}
	if !env.IsGoal(x) {
		t.Errorf("the parent lost its goal")
	}
}

func TestEnvScope1(t *testing.T) {
	x := &ast.ExprVar{Name: "x"}
	scope := interfaces.EmptyScope()
	scope.Variables["n"] = &ast.ExprInt{V: 42}

	env := NewEnv([]*ast.ExprVar{x}, scope)
	if !env.IsBound(&ast.ExprVar{Name: "n"}) {
		t.Errorf("a scope variable counts as bound")
	}
	if env.IsBound(x) {
		t.Errorf("a goal variable is not bound")
	}

	// the copy shares the scope pointer, like the Scope Copy method does
	if env.Copy().Scope != scope {
		t.Errorf("the copy should share the scope reference")
	}
}

func TestEnvCopyNil1(t *testing.T) {
	var env *Env
	copied := env.Copy() // must not panic
	if copied == nil || copied.Bound == nil || copied.Active == nil {
		t.Errorf("copying a nil env must give a usable empty env")
	}
}
