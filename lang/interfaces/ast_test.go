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

package interfaces_test

import (
	"testing"

	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
)

func TestScopeCopy1(t *testing.T) {
	scope := interfaces.EmptyScope()
	scope.Variables["x"] = &ast.ExprInt{V: 1}

	copied := scope.Copy()
	copied.Variables["y"] = &ast.ExprInt{V: 2}
	if _, exists := scope.Variables["y"]; exists {
		t.Errorf("changing the copy changed the original")
	}

	// the exprs themselves stay shared by reference
	if copied.Variables["x"] != scope.Variables["x"] {
		t.Errorf("the expr pointers should be shared")
	}

	var nilScope *interfaces.Scope
	if nilScope.Copy() == nil {
		t.Errorf("copying a nil scope must give an empty scope")
	}
}

func TestScopeMerge1(t *testing.T) {
	a := interfaces.EmptyScope()
	a.Variables["x"] = &ast.ExprInt{V: 1}
	a.Functions["f"] = &ast.ExprInt{V: 0}

	b := interfaces.EmptyScope()
	b.Variables["x"] = &ast.ExprInt{V: 2} // collides
	b.Variables["y"] = &ast.ExprInt{V: 3}

	if err := a.Merge(b); err == nil {
		t.Errorf("an overwrite must be reported")
	}
	// even with the error, the merge happened
	if v, exists := a.Variables["x"]; !exists || v.(*ast.ExprInt).V != 2 {
		t.Errorf("`x` was not overwritten")
	}
	if _, exists := a.Variables["y"]; !exists {
		t.Errorf("`y` was not merged")
	}
	if a.IsEmpty() {
		t.Errorf("the merged scope is not empty")
	}
	if !interfaces.EmptyScope().IsEmpty() {
		t.Errorf("a fresh scope is empty")
	}
}
