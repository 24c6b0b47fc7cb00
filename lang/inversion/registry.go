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
)

// Relation describes one named relation as the elaboration stage hands it to
// this pass. Either the extension is already known as an explicit list of
// rows, or only the defining equation is available, which is the usual case
// for the relation that is currently being defined recursively.
type Relation struct {
	// Name is the resolved name of the relation.
	Name string

	// Params is the ordered parameter pattern of the defining equation, if
	// one exists.
	Params []*ast.ExprVar

	// Body is the defining equation's body, if one exists.
	Body interfaces.Expr

	// Rows is the explicit extension: one value per row, tuples for arity
	// above one. A nil slice means the extension is not known; an empty,
	// non-nil slice is a known empty relation.
	Rows []types.Value
}

// Arity returns the number of columns of this relation.
func (obj *Relation) Arity() int {
	if obj.Params != nil {
		return len(obj.Params)
	}
	if len(obj.Rows) > 0 {
		if t, ok := obj.Rows[0].(*types.TupleValue); ok {
			return len(t.Tuple())
		}
		return 1
	}
	return 0
}

// String returns a short representation of this relation.
func (obj *Relation) String() string {
	return fmt.Sprintf("relation(%s/%d)", obj.Name, obj.Arity())
}

// Registry maps relation names to their defining extensions. It is built
// fresh by the caller for each compile and is never mutated concurrently; the
// inversion pass only ever reads from it.
type Registry struct {
	relations map[string]*Relation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		relations: make(map[string]*Relation),
	}
}

// Register adds a relation. Re-registering a name is a programming error and
// is rejected immediately.
func (obj *Registry) Register(relation *Relation) error {
	if relation == nil || relation.Name == "" {
		return fmt.Errorf("missing relation or name")
	}
	if _, exists := obj.relations[relation.Name]; exists {
		return fmt.Errorf("relation `%s` is already registered", relation.Name)
	}
	obj.relations[relation.Name] = relation
	return nil
}

// Lookup finds a relation by name.
func (obj *Registry) Lookup(name string) (*Relation, bool) {
	relation, exists := obj.relations[name]
	return relation, exists
}
