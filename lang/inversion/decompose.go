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
	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
)

// DecomposeConjunction flattens a chain of conjunctions into the ordered list
// of its conjuncts. The parser produces right-associated chains, but this
// recurses into both sides, so any association works. An expression which is
// not a conjunction decomposes into the single-element list containing
// itself, except for the literal `true` which is the identity element of
// conjunction, and decomposes into the empty list.
func DecomposeConjunction(exp interfaces.Expr) []interfaces.Expr {
	if b, ok := exp.(*ast.ExprBool); ok && b.V {
		return []interfaces.Expr{} // identity element
	}
	and, ok := exp.(*ast.ExprAnd)
	if !ok {
		return []interfaces.Expr{exp}
	}
	result := DecomposeConjunction(and.Left) // recurse
	return append(result, DecomposeConjunction(and.Right)...)
}

// DecomposeDisjunction flattens a chain of disjunctions into the ordered list
// of its disjuncts. It is the symmetric twin of DecomposeConjunction, with
// the literal `false` as the identity element.
func DecomposeDisjunction(exp interfaces.Expr) []interfaces.Expr {
	if b, ok := exp.(*ast.ExprBool); ok && !b.V {
		return []interfaces.Expr{} // identity element
	}
	or, ok := exp.(*ast.ExprOr)
	if !ok {
		return []interfaces.Expr{exp}
	}
	result := DecomposeDisjunction(or.Left) // recurse
	return append(result, DecomposeDisjunction(or.Right)...)
}

// RecomposeConjunction right-folds a list of expressions back into a
// right-associated chain of conjunctions. The empty list recomposes into the
// literal `true`. For any expression e, RecomposeConjunction of
// DecomposeConjunction of e is structurally equivalent to e.
func RecomposeConjunction(exprs []interfaces.Expr) interfaces.Expr {
	if len(exprs) == 0 {
		return &ast.ExprBool{V: true}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ast.ExprAnd{
		Left:  exprs[0],
		Right: RecomposeConjunction(exprs[1:]), // recurse
	}
}

// RecomposeDisjunction right-folds a list of expressions back into a
// right-associated chain of disjunctions. The empty list recomposes into the
// literal `false`.
func RecomposeDisjunction(exprs []interfaces.Expr) interfaces.Expr {
	if len(exprs) == 0 {
		return &ast.ExprBool{V: false}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return &ast.ExprOr{
		Left:  exprs[0],
		Right: RecomposeDisjunction(exprs[1:]), // recurse
	}
}
