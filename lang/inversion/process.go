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
	"strings"

	"github.com/merl-lang/merl/lang/interfaces"
)

// Node is one node of the process tree that the inverter builds from a
// predicate. It is a closed sum over exactly three variants: Terminal,
// Branch and Sequence. Consumers must match exhaustively with a type switch;
// the unexported marker method keeps other packages from adding variants, so
// that introducing a fourth one is a compile-time visible change everywhere
// it matters.
//
// Every node carries the expression it was built from and the environment
// snapshot that was current at that point of the tree.
type Node interface {
	fmt.Stringer

	node() // seals the sum
}

// Terminal is an atomic constraint or an opaque sub-expression at a leaf of
// the process tree.
type Terminal struct {
	// Exp is the originating expression.
	Exp interfaces.Expr

	// Env is the environment snapshot at this point of the tree.
	Env *Env

	// Result is the already-computed inversion of this atom, if inversion
	// was attempted and applicable. A nil Result means un-inverted.
	Result *Result

	// IsRecursiveCall marks that this atom is a self-reference to the
	// relation currently being defined. Such a terminal is never directly
	// invertible; only the enclosing Branch can make sense of it, as the
	// recursive step of a fixpoint.
	IsRecursiveCall bool
}

func (obj *Terminal) node() {}

// String returns a short representation of this node.
func (obj *Terminal) String() string {
	if obj.IsRecursiveCall {
		return fmt.Sprintf("terminal:rec(%s)", obj.Exp.String())
	}
	if obj.IsInverted() {
		return fmt.Sprintf("terminal:inv(%s)", obj.Exp.String())
	}
	return fmt.Sprintf("terminal(%s)", obj.Exp.String())
}

// IsInverted reports whether this terminal carries a fully absorbed
// inversion: a present Result with no remaining filters. An absent Result, a
// partial one, or a recursive-call flag all make this false.
func (obj *Terminal) IsInverted() bool {
	if obj.IsRecursiveCall {
		return false
	}
	return obj.Result != nil && obj.Result.IsInverted()
}

// Branch is a disjunction of exactly two sub-trees.
type Branch struct {
	// Exp is the originating expression.
	Exp interfaces.Expr

	// Env is the environment snapshot at this point of the tree.
	Env *Env

	// Left and Right are the two arms of the disjunction.
	Left  Node
	Right Node
}

// NewBranch builds a Branch node. A missing child or environment is a
// programming-contract violation and is rejected immediately.
func NewBranch(exp interfaces.Expr, env *Env, left, right Node) (*Branch, error) {
	if exp == nil || env == nil {
		return nil, fmt.Errorf("missing expression or environment")
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("branch needs exactly two children")
	}
	return &Branch{
		Exp:   exp,
		Env:   env,
		Left:  left,
		Right: right,
	}, nil
}

func (obj *Branch) node() {}

// String returns a short representation of this node.
func (obj *Branch) String() string {
	return fmt.Sprintf("branch(%s | %s)", obj.Left.String(), obj.Right.String())
}

// HasInvertibleBaseCase reports whether the left arm is an inverted
// Terminal, making it usable as the base case of a fixpoint.
func (obj *Branch) HasInvertibleBaseCase() bool {
	terminal, ok := obj.Left.(*Terminal)
	if !ok {
		return false
	}
	return terminal.IsInverted()
}

// HasRecursiveCase reports whether the right arm is, or recursively contains
// through nested Sequence or Branch nodes, a Terminal marked as a recursive
// self-call.
func (obj *Branch) HasRecursiveCase() bool {
	return containsRecursive(obj.Right)
}

// Sequence is a conjunction of two or more sub-trees.
type Sequence struct {
	// Exp is the originating expression.
	Exp interfaces.Expr

	// Env is the environment snapshot at this point of the tree.
	Env *Env

	// Children are the conjunct sub-trees, in original textual order.
	Children []Node
}

// NewSequence builds a Sequence node. Supplying fewer than two children is a
// programming-contract violation and is rejected immediately.
func NewSequence(exp interfaces.Expr, env *Env, children []Node) (*Sequence, error) {
	if exp == nil || env == nil {
		return nil, fmt.Errorf("missing expression or environment")
	}
	if len(children) < 2 {
		return nil, fmt.Errorf("sequence needs at least two children, got %d", len(children))
	}
	return &Sequence{
		Exp:      exp,
		Env:      env,
		Children: children,
	}, nil
}

func (obj *Sequence) node() {}

// String returns a short representation of this node.
func (obj *Sequence) String() string {
	var s []string
	for _, x := range obj.Children {
		s = append(s, x.String())
	}
	return fmt.Sprintf("sequence(%s)", strings.Join(s, " & "))
}

// RecursiveChildren returns every recursive-call Terminal found anywhere
// below this sequence, in textual order. This is what the fixpoint
// recognizer uses to find the self-call inside a conjunctive recursive step.
func (obj *Sequence) RecursiveChildren() []Node {
	result := []Node{}
	for _, x := range obj.Children {
		result = append(result, collectRecursive(x)...)
	}
	return result
}

// NonRecursiveChildren returns the direct children which contain no
// recursive self-call at all; typically the edge or step relation that is
// conjoined with the self-call.
func (obj *Sequence) NonRecursiveChildren() []Node {
	result := []Node{}
	for _, x := range obj.Children {
		if !containsRecursive(x) {
			result = append(result, x)
		}
	}
	return result
}

// containsRecursive reports whether a subtree contains a recursive-call
// terminal. The type switch is exhaustive over the closed sum.
func containsRecursive(n Node) bool {
	switch node := n.(type) {
	case *Terminal:
		return node.IsRecursiveCall
	case *Branch:
		return containsRecursive(node.Left) || containsRecursive(node.Right)
	case *Sequence:
		for _, x := range node.Children {
			if containsRecursive(x) {
				return true
			}
		}
		return false
	}
	panic(fmt.Sprintf("unknown process tree node: %T", n)) // unreachable
}

// collectRecursive gathers the recursive-call terminals of a subtree in
// textual order.
func collectRecursive(n Node) []Node {
	switch node := n.(type) {
	case *Terminal:
		if node.IsRecursiveCall {
			return []Node{node}
		}
		return nil
	case *Branch:
		return append(collectRecursive(node.Left), collectRecursive(node.Right)...)
	case *Sequence:
		result := []Node{}
		for _, x := range node.Children {
			result = append(result, collectRecursive(x)...)
		}
		return result
	}
	panic(fmt.Sprintf("unknown process tree node: %T", n)) // unreachable
}
