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

package ast

import (
	"fmt"
	"testing"

	"github.com/merl-lang/merl/lang/interfaces"
)

func TestExprString1(t *testing.T) {
	x := &ExprVar{Name: "x"}
	y := &ExprVar{Name: "y"}
	z := &ExprVar{Name: "z"}

	type test struct { // an individual test
		name string
		exp  interfaces.Expr
		want string
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "bool",
			exp:  &ExprBool{V: true},
			want: "bool(true)",
		})
	}
	{
		testCases = append(testCases, test{
			name: "shadowed variable",
			exp:  &ExprVar{Name: "x", Ordinal: 1},
			want: "var(x#1)",
		})
	}
	{
		testCases = append(testCases, test{
			name: "comparison",
			exp:  &ExprCmp{Op: CmpOpGe, Left: x, Right: &ExprInt{V: 3}},
			want: "var(x) >= int(3)",
		})
	}
	{
		testCases = append(testCases, test{
			name: "membership",
			exp: &ExprIn{
				Elem: x,
				List: &ExprList{Elements: []interfaces.Expr{&ExprInt{V: 1}, &ExprInt{V: 2}}},
			},
			want: "var(x) in list(int(1), int(2))",
		})
	}
	{
		testCases = append(testCases, test{
			name: "application",
			exp:  &ExprCall{Name: "edge", Args: []interfaces.Expr{x, y}},
			want: "call:edge(var(x), var(y))",
		})
	}
	{
		testCases = append(testCases, test{
			name: "existential over a conjunction",
			exp: &ExprExists{
				Var: z,
				Body: &ExprAnd{
					Left:  &ExprCall{Name: "edge", Args: []interfaces.Expr{x, z}},
					Right: &ExprCall{Name: "path", Args: []interfaces.Expr{z, y}},
				},
			},
			want: "exists var(z) . (call:edge(var(x), var(z)) and call:path(var(z), var(y)))",
		})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			if s := tc.exp.String(); s != tc.want {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: got: %s", index, s)
				t.Errorf("test #%d: exp: %s", index, tc.want)
			}
		})
	}
}

func TestExprApply1(t *testing.T) {
	x := &ExprVar{Name: "x"}
	y := &ExprVar{Name: "y"}
	exp := &ExprAnd{
		Left:  &ExprCmp{Op: CmpOpEq, Left: x, Right: &ExprInt{V: 1}},
		Right: &ExprCmp{Op: CmpOpEq, Left: y, Right: &ExprInt{V: 2}},
	}

	// every variable below the root must be visited exactly once
	names := []string{}
	if err := exp.Apply(func(n interfaces.Node) error {
		if v, ok := n.(*ExprVar); ok {
			names = append(names, v.Name)
		}
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("visited variables: %v", names)
	}

	// an erroring visitor stops the iteration
	count := 0
	if err := exp.Apply(func(interfaces.Node) error {
		count++
		return fmt.Errorf("stop")
	}); err == nil {
		t.Errorf("the visitor error was swallowed")
	}
	if count != 1 {
		t.Errorf("iteration did not stop, visited %d nodes", count)
	}
}

func TestExprCopy1(t *testing.T) {
	x := &ExprVar{Name: "x"}
	exp := &ExprAnd{
		Left:  &ExprCmp{Op: CmpOpGe, Left: x, Right: &ExprInt{V: 3}},
		Right: &ExprCmp{Op: CmpOpLt, Left: x, Right: &ExprInt{V: 10}},
	}

	copied, err := exp.Copy()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if copied == interfaces.Expr(exp) {
		t.Errorf("a composite copy must be a new node")
	}
	if copied.String() != exp.String() {
		t.Errorf("the copy must be structurally identical, got: %s", copied.String())
	}

	// static leaves may share, that's the documented contract
	lit := &ExprInt{V: 42}
	copiedLit, err := lit.Copy()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if copiedLit != interfaces.Expr(lit) {
		t.Errorf("a static leaf should return itself")
	}
}

func TestExprListValue1(t *testing.T) {
	list := &ExprList{Elements: []interfaces.Expr{&ExprInt{V: 1}, &ExprInt{V: 2}}}
	val, err := list.Value()
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if s := val.String(); s != "[1, 2]" {
		t.Errorf("unexpected value: %s", s)
	}

	// a list with a non-literal element has no static value
	open := &ExprList{Elements: []interfaces.Expr{&ExprVar{Name: "x"}}}
	if _, err := open.Value(); err == nil {
		t.Errorf("a non-literal list must not produce a value")
	}
}
