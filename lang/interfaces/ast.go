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

// Package interfaces contains the common interfaces and structs that are
// shared between the different stages of the compiler. The expression nodes
// that the parser and the elaboration stage produce all implement Expr, and
// the later analysis passes (such as the predicate inversion pass) only ever
// see trees through this interface.
package interfaces

import (
	"fmt"
	"sort"

	"github.com/merl-lang/merl/util/errwrap"
)

// Node represents any node in the expression tree. It contains the minimum
// set of methods that every node must implement.
type Node interface {
	fmt.Stringer

	// Apply is a general purpose iterator method that operates on any node.
	// It visits the node itself and then every child node, recursively. If
	// the function errors, iteration stops and the error is returned.
	Apply(fn func(Node) error) error
}

// Expr represents an expression in the language. Expressions are immutable
// once constructed; transformations always produce new trees, they never
// modify an existing one. Expr implementations must have their method
// receivers implemented as pointer receivers so that nodes can be shared by
// reference and compared by identity where needed.
type Expr interface {
	Node

	// Copy returns a copy of this expression. Leaf nodes which are entirely
	// static may return themselves.
	Copy() (Expr, error)
}

// Scope represents a mapping between a variable identifier and the expression
// it is bound to. By the time the inversion pass runs, every identifier that
// appears in a scope has already been resolved and type-checked by the
// earlier stages, so a variable found in here is "bound" and can be used as
// an enumeration input rather than needing a generator of its own.
type Scope struct {
	Variables map[string]Expr
	Functions map[string]Expr // lambdas and named relations live here
}

// EmptyScope returns the zero, empty value for the scope, with all the
// internal maps initialized appropriately.
func EmptyScope() *Scope {
	return &Scope{
		Variables: make(map[string]Expr),
		Functions: make(map[string]Expr),
	}
}

// InitScope initializes any uninitialized part of the struct. It is safe to
// use on scopes with existing data.
func (obj *Scope) InitScope() {
	if obj.Variables == nil {
		obj.Variables = make(map[string]Expr)
	}
	if obj.Functions == nil {
		obj.Functions = make(map[string]Expr)
	}
}

// Copy makes a copy of the Scope struct. This ensures that if the internal
// maps are changed, it doesn't affect other copies of the Scope. It does
// *not* copy the Expr pointers contained within, since these are references,
// and we need those to be consistently pointing to the same things after
// copying.
func (obj *Scope) Copy() *Scope {
	variables := make(map[string]Expr)
	functions := make(map[string]Expr)
	if obj != nil { // allow copying nil scopes
		obj.InitScope()                   // safety
		for k, v := range obj.Variables { // copy
			variables[k] = v // we don't copy the expr's!
		}
		for k, v := range obj.Functions { // copy
			functions[k] = v
		}
	}
	return &Scope{
		Variables: variables,
		Functions: functions,
	}
}

// Merge takes an existing scope and merges a scope on top of it. If any
// elements had to be overwritten, then the error result will contain some
// info. Even if this errors, the scope will have been merged successfully.
// The merge runs in a deterministic order so that errors will be consistent.
// Use Copy if you don't want to change this destructively.
func (obj *Scope) Merge(scope *Scope) error {
	var err error
	// collect names so we can iterate in a deterministic order
	namedVariables := []string{}
	namedFunctions := []string{}
	for name := range scope.Variables {
		namedVariables = append(namedVariables, name)
	}
	for name := range scope.Functions {
		namedFunctions = append(namedFunctions, name)
	}
	sort.Strings(namedVariables)
	sort.Strings(namedFunctions)

	obj.InitScope() // safety

	for _, name := range namedVariables {
		if _, exists := obj.Variables[name]; exists {
			e := fmt.Errorf("variable `%s` was overwritten", name)
			err = errwrap.Append(err, e)
		}
		obj.Variables[name] = scope.Variables[name]
	}
	for _, name := range namedFunctions {
		if _, exists := obj.Functions[name]; exists {
			e := fmt.Errorf("function `%s` was overwritten", name)
			err = errwrap.Append(err, e)
		}
		obj.Functions[name] = scope.Functions[name]
	}

	return err
}

// IsEmpty returns whether or not a scope is empty or not.
func (obj *Scope) IsEmpty() bool {
	if len(obj.Variables) > 0 {
		return false
	}
	if len(obj.Functions) > 0 {
		return false
	}
	return true
}
