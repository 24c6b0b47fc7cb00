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

	"github.com/merl-lang/merl/lang/ast"
	"github.com/merl-lang/merl/lang/interfaces"
	"github.com/merl-lang/merl/lang/types"
)

// Cardinality describes whether a generator's source is guaranteed to
// terminate on its own.
type Cardinality int

const (
	// CardinalityFinite guarantees that enumerating the source terminates.
	CardinalityFinite Cardinality = iota

	// CardinalityInfinite means the source is a conceptually unbounded
	// enumeration. The consumer must bound it externally, for example with
	// an additional filter; materializing it eagerly is an error.
	CardinalityInfinite
)

// String returns a representation of this cardinality.
func (obj Cardinality) String() string {
	switch obj {
	case CardinalityFinite:
		return "finite"
	case CardinalityInfinite:
		return "infinite"
	}
	return fmt.Sprintf("cardinality(%d)", int(obj))
}

// Source is the enumerable sequence of values behind a generator. The
// query-to-iteration compiler lowers this into actual loop code; the Values
// method is the reference enumeration that such lowered code must agree with.
type Source interface {
	fmt.Stringer

	// Expr returns the originating expression of this source, if one
	// exists. Synthesized sources, such as a fixpoint, may return nil.
	Expr() interfaces.Expr

	// Values enumerates the full sequence. It must only be called eagerly
	// on a source whose generator has finite cardinality.
	Values() ([]types.Value, error)
}

// Generator is a synthesized enumeration source for a logical variable, plus
// everything the consumer needs to finish the job: residual filters that the
// source could not absorb, and any extra variables that enumerating the
// source binds as a side effect (e.g. both endpoints of an edge relation).
type Generator struct {
	// Pattern is the variable that this generator enumerates values for.
	Pattern *ast.ExprVar

	// Source produces the enumerable sequence of values.
	Source Source

	// Cardinality reports whether Source terminates on its own.
	Cardinality Cardinality

	// ExtraFilters is the ordered list of residual boolean expressions that
	// were not absorbed into the source and must be applied by the consumer
	// after enumeration.
	ExtraFilters []interfaces.Expr

	// ExtraBindings is the ordered list of additional variables that the
	// source binds as a side effect. When the source enumerates tuples, the
	// pattern variable takes the first position and these take the rest.
	ExtraBindings []*ast.ExprVar
}

// String returns a short representation of this generator.
func (obj *Generator) String() string {
	var extra []string
	for _, x := range obj.ExtraBindings {
		extra = append(extra, x.Ident())
	}
	s := fmt.Sprintf("generator(%s <- %s, %s)", obj.Pattern.Ident(), obj.Source.String(), obj.Cardinality)
	if len(extra) > 0 {
		s += fmt.Sprintf(" +[%s]", strings.Join(extra, ", "))
	}
	return s
}

// Result is what a successful or partially successful inversion attempt
// produces: a generator, plus any filters that the caller still needs to
// apply after enumeration.
type Result struct {
	// Generator is the enumeration source that was derived.
	Generator *Generator

	// RemainingFilters is the ordered list of expressions that could not be
	// absorbed into the generator. A non-empty list means the inversion was
	// only partial; whether that's usable is the caller's decision.
	RemainingFilters []interfaces.Expr
}

// IsInverted reports whether the predicate was fully absorbed into the
// generator. This is strict: any remaining filter at all means false.
func (obj *Result) IsInverted() bool {
	return len(obj.RemainingFilters) == 0
}

// String returns a short representation of this result.
func (obj *Result) String() string {
	if obj.IsInverted() {
		return fmt.Sprintf("result(%s)", obj.Generator)
	}
	var s []string
	for _, x := range obj.RemainingFilters {
		s = append(s, x.String())
	}
	return fmt.Sprintf("result(%s, filters: [%s])", obj.Generator, strings.Join(s, ", "))
}

// ListSource enumerates an explicit finite list of values.
type ListSource struct {
	// V is the list of values to enumerate, in order.
	V []types.Value

	// Origin is the expression this list came from, if any.
	Origin interfaces.Expr
}

// String returns a short representation of this source.
func (obj *ListSource) String() string {
	var s []string
	for _, x := range obj.V {
		s = append(s, x.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(s, ", "))
}

// Expr returns the originating expression of this source.
func (obj *ListSource) Expr() interfaces.Expr { return obj.Origin }

// Values enumerates the full sequence.
func (obj *ListSource) Values() ([]types.Value, error) {
	return obj.V, nil
}

// ExtentSource enumerates the values of a computed extent.
type ExtentSource struct {
	// Extent is the finite domain to enumerate.
	Extent *Extent

	// Origin is the constraint expression the extent was derived from, in
	// recomposed conjunction form.
	Origin interfaces.Expr
}

// String returns the textual form of the underlying extent.
func (obj *ExtentSource) String() string { return obj.Extent.String() }

// Expr returns the originating expression of this source.
func (obj *ExtentSource) Expr() interfaces.Expr { return obj.Origin }

// Values enumerates the full sequence.
func (obj *ExtentSource) Values() ([]types.Value, error) {
	return obj.Extent.Values(), nil
}

// RelationSource enumerates the rows of a named relation's extension. For a
// relation of arity one the rows are scalar values; otherwise they are tuples
// and the consumer destructures them across the pattern variable and the
// generator's extra bindings.
type RelationSource struct {
	// Relation is the relation whose extension is enumerated.
	Relation *Relation

	// Origin is the application expression this enumeration replaces.
	Origin interfaces.Expr
}

// String returns a short representation of this source.
func (obj *RelationSource) String() string {
	return fmt.Sprintf("rows(%s)", obj.Relation.Name)
}

// Expr returns the originating expression of this source.
func (obj *RelationSource) Expr() interfaces.Expr { return obj.Origin }

// Values enumerates the full sequence.
func (obj *RelationSource) Values() ([]types.Value, error) {
	if obj.Relation.Rows == nil {
		return nil, fmt.Errorf("relation `%s` has no known extension", obj.Relation.Name)
	}
	return obj.Relation.Rows, nil
}
