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

// Package ast contains the structs implementing the AST expression nodes of
// the language. By the time a tree arrives at the inversion pass, it has
// already been parsed, scoped and type-checked by the earlier stages, so the
// nodes in here carry no parser or unification state. All of them are
// immutable after construction.
package ast

import (
	"fmt"
	"strings"

	"github.com/merl-lang/merl/lang/interfaces"
	"github.com/merl-lang/merl/lang/types"
)

const (
	// CmpOpEq is the equality comparison operator.
	CmpOpEq = "="
	// CmpOpNe is the inequality (not-equal) comparison operator.
	CmpOpNe = "<>"
	// CmpOpLt is the less-than comparison operator.
	CmpOpLt = "<"
	// CmpOpLe is the less-than-or-equal comparison operator.
	CmpOpLe = "<="
	// CmpOpGt is the greater-than comparison operator.
	CmpOpGt = ">"
	// CmpOpGe is the greater-than-or-equal comparison operator.
	CmpOpGe = ">="
)

// ExprBool is a representation of a boolean.
type ExprBool struct {
	V bool
}

// String returns a short representation of this expression.
func (obj *ExprBool) String() string { return fmt.Sprintf("bool(%t)", obj.V) }

// Apply is a general purpose iterator method that operates on any AST node.
// It is not used as the primary AST traversal function because it is less
// readable and easy to reason about than manually implementing traversal for
// each node. Nevertheless, it is a useful facility for operations that might
// only apply to a select number of node types, since they won't need extra
// noop iterators...
func (obj *ExprBool) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a light copy of this struct.
func (obj *ExprBool) Copy() (interfaces.Expr, error) {
	return obj, nil // always static
}

// Value returns the value of this expression in our value system.
func (obj *ExprBool) Value() (types.Value, error) {
	return &types.BoolValue{V: obj.V}, nil
}

// ExprInt is a representation of an integer.
type ExprInt struct {
	V int64
}

// String returns a short representation of this expression.
func (obj *ExprInt) String() string { return fmt.Sprintf("int(%d)", obj.V) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprInt) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a light copy of this struct.
func (obj *ExprInt) Copy() (interfaces.Expr, error) {
	return obj, nil // always static
}

// Value returns the value of this expression in our value system.
func (obj *ExprInt) Value() (types.Value, error) {
	return &types.IntValue{V: obj.V}, nil
}

// ExprStr is a representation of a string.
type ExprStr struct {
	V string
}

// String returns a short representation of this expression.
func (obj *ExprStr) String() string { return fmt.Sprintf("str(%s)", obj.V) }

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprStr) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a light copy of this struct.
func (obj *ExprStr) Copy() (interfaces.Expr, error) {
	return obj, nil // always static
}

// Value returns the value of this expression in our value system.
func (obj *ExprStr) Value() (types.Value, error) {
	return &types.StrValue{V: obj.V}, nil
}

// ExprVar is a representation of a variable lookup in the scope. Since a
// later declaration of the same name shadows an earlier one, but closures
// compiled earlier may still reference the old binding, each variable also
// carries a disambiguating ordinal. Two ExprVar nodes refer to the same
// pattern variable exactly when both the name and the ordinal match.
type ExprVar struct {
	Name    string // name of the variable
	Ordinal int    // disambiguates shadowed re-declarations of Name
}

// String returns a short representation of this expression.
func (obj *ExprVar) String() string {
	if obj.Ordinal == 0 {
		return fmt.Sprintf("var(%s)", obj.Name)
	}
	return fmt.Sprintf("var(%s#%d)", obj.Name, obj.Ordinal)
}

// Ident returns the unique identity of this variable, which is its name
// combined with the disambiguating ordinal.
func (obj *ExprVar) Ident() string {
	if obj.Ordinal == 0 {
		return obj.Name
	}
	return fmt.Sprintf("%s#%d", obj.Name, obj.Ordinal)
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprVar) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a light copy of this struct.
func (obj *ExprVar) Copy() (interfaces.Expr, error) {
	return &ExprVar{
		Name:    obj.Name,
		Ordinal: obj.Ordinal,
	}, nil
}

// ExprList is a representation of a list of expressions.
type ExprList struct {
	Elements []interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprList) String() string {
	var s []string
	for _, x := range obj.Elements {
		s = append(s, x.String())
	}
	return fmt.Sprintf("list(%s)", strings.Join(s, ", "))
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprList) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Elements {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprList) Copy() (interfaces.Expr, error) {
	copied := false
	elements := []interfaces.Expr{}
	for _, x := range obj.Elements {
		cp, err := x.Copy()
		if err != nil {
			return nil, err
		}
		if cp != x {
			copied = true
		}
		elements = append(elements, cp)
	}
	if !copied { // it's static
		return obj, nil
	}
	return &ExprList{
		Elements: elements,
	}, nil
}

// Value returns the value of this expression in our value system. It errors
// with interfaces.ErrValueCurrentlyUnknown if any element is not a literal.
func (obj *ExprList) Value() (types.Value, error) {
	values := []types.Value{}
	for _, x := range obj.Elements {
		lit, ok := x.(interface {
			Value() (types.Value, error)
		})
		if !ok {
			return nil, interfaces.ErrValueCurrentlyUnknown
		}
		v, err := lit.Value()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return &types.ListValue{V: values}, nil
}

// ExprTuple is a representation of a fixed-width tuple of expressions, such
// as the pair pattern of a binary relation.
type ExprTuple struct {
	Elements []interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprTuple) String() string {
	var s []string
	for _, x := range obj.Elements {
		s = append(s, x.String())
	}
	return fmt.Sprintf("tuple(%s)", strings.Join(s, ", "))
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprTuple) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Elements {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprTuple) Copy() (interfaces.Expr, error) {
	copied := false
	elements := []interfaces.Expr{}
	for _, x := range obj.Elements {
		cp, err := x.Copy()
		if err != nil {
			return nil, err
		}
		if cp != x {
			copied = true
		}
		elements = append(elements, cp)
	}
	if !copied {
		return obj, nil
	}
	return &ExprTuple{
		Elements: elements,
	}, nil
}

// ExprCall is a representation of a function or relation application. The
// name has already been resolved by the scope stage, so it is stored here as
// a plain string together with the ordered argument expressions.
type ExprCall struct {
	Name string
	Args []interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprCall) String() string {
	var s []string
	for _, x := range obj.Args {
		s = append(s, x.String())
	}
	return fmt.Sprintf("call:%s(%s)", obj.Name, strings.Join(s, ", "))
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprCall) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Args {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprCall) Copy() (interfaces.Expr, error) {
	args := []interfaces.Expr{}
	for _, x := range obj.Args {
		cp, err := x.Copy()
		if err != nil {
			return nil, err
		}
		args = append(args, cp)
	}
	return &ExprCall{
		Name: obj.Name,
		Args: args,
	}, nil
}

// ExprAnd is a representation of a boolean conjunction. The parser produces
// right-associated chains, so `a and b and c` arrives here as
// `a and (b and c)`.
type ExprAnd struct {
	Left  interfaces.Expr
	Right interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprAnd) String() string {
	return fmt.Sprintf("(%s and %s)", obj.Left.String(), obj.Right.String())
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprAnd) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Left.Apply(fn); err != nil {
		return err
	}
	if err := obj.Right.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprAnd) Copy() (interfaces.Expr, error) {
	left, err := obj.Left.Copy()
	if err != nil {
		return nil, err
	}
	right, err := obj.Right.Copy()
	if err != nil {
		return nil, err
	}
	return &ExprAnd{
		Left:  left,
		Right: right,
	}, nil
}

// ExprOr is a representation of a boolean disjunction. As with ExprAnd, the
// parser produces right-associated chains.
type ExprOr struct {
	Left  interfaces.Expr
	Right interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprOr) String() string {
	return fmt.Sprintf("(%s or %s)", obj.Left.String(), obj.Right.String())
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprOr) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Left.Apply(fn); err != nil {
		return err
	}
	if err := obj.Right.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprOr) Copy() (interfaces.Expr, error) {
	left, err := obj.Left.Copy()
	if err != nil {
		return nil, err
	}
	right, err := obj.Right.Copy()
	if err != nil {
		return nil, err
	}
	return &ExprOr{
		Left:  left,
		Right: right,
	}, nil
}

// ExprCmp is a representation of a comparison between two expressions. The
// operator is one of the CmpOp* constants.
type ExprCmp struct {
	Op    string
	Left  interfaces.Expr
	Right interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprCmp) String() string {
	return fmt.Sprintf("%s %s %s", obj.Left.String(), obj.Op, obj.Right.String())
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprCmp) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Left.Apply(fn); err != nil {
		return err
	}
	if err := obj.Right.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprCmp) Copy() (interfaces.Expr, error) {
	left, err := obj.Left.Copy()
	if err != nil {
		return nil, err
	}
	right, err := obj.Right.Copy()
	if err != nil {
		return nil, err
	}
	return &ExprCmp{
		Op:    obj.Op,
		Left:  left,
		Right: right,
	}, nil
}

// ExprIn is a representation of a membership test of an element inside of an
// enumerable collection, usually a literal list.
type ExprIn struct {
	Elem interfaces.Expr
	List interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprIn) String() string {
	return fmt.Sprintf("%s in %s", obj.Elem.String(), obj.List.String())
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprIn) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Elem.Apply(fn); err != nil {
		return err
	}
	if err := obj.List.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprIn) Copy() (interfaces.Expr, error) {
	elem, err := obj.Elem.Copy()
	if err != nil {
		return nil, err
	}
	list, err := obj.List.Copy()
	if err != nil {
		return nil, err
	}
	return &ExprIn{
		Elem: elem,
		List: list,
	}, nil
}

// ExprExists is a representation of an existentially quantified sub-query.
// It introduces exactly one fresh variable which scopes over the body.
type ExprExists struct {
	Var  *ExprVar
	Body interfaces.Expr
}

// String returns a short representation of this expression.
func (obj *ExprExists) String() string {
	return fmt.Sprintf("exists %s . %s", obj.Var.String(), obj.Body.String())
}

// Apply is a general purpose iterator method that operates on any AST node.
func (obj *ExprExists) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Var.Apply(fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a light copy of this struct.
func (obj *ExprExists) Copy() (interfaces.Expr, error) {
	v, err := obj.Var.Copy()
	if err != nil {
		return nil, err
	}
	body, err := obj.Body.Copy()
	if err != nil {
		return nil, err
	}
	return &ExprExists{
		Var:  v.(*ExprVar),
		Body: body,
	}, nil
}
