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
	"github.com/merl-lang/merl/lang/types"
	"github.com/merl-lang/merl/util/errwrap"
)

// Interval is a contiguous run of integers. The upper endpoint is always
// excluded, the lower endpoint is excluded only when LoOpen is set. The
// canonical extent form keeps the lower bound closed, and LoOpen only appears
// when a point exclusion split an interval in two.
type Interval struct {
	Lo     int64
	Hi     int64
	LoOpen bool // true if Lo itself is excluded
}

// String returns the usual mathematical notation for this interval.
func (obj Interval) String() string {
	if obj.LoOpen {
		return fmt.Sprintf("(%d,%d)", obj.Lo, obj.Hi)
	}
	return fmt.Sprintf("[%d,%d)", obj.Lo, obj.Hi)
}

// start returns the first integer contained in the interval.
func (obj Interval) start() int64 {
	if obj.LoOpen {
		return obj.Lo + 1
	}
	return obj.Lo
}

// IsEmpty returns true if the interval contains no integers.
func (obj Interval) IsEmpty() bool {
	return obj.start() >= obj.Hi
}

// Size returns the number of integers contained in the interval.
func (obj Interval) Size() int64 {
	if obj.IsEmpty() {
		return 0
	}
	return obj.Hi - obj.start()
}

// Extent is the computed finite domain over which a variable may range. It is
// either an explicit finite value set, or a minimal union of disjoint
// intervals with any excluded points removed. Exactly one of the two
// representations is ever populated.
type Extent struct {
	// Set is the explicit finite value set, when one was derived from
	// equality or membership constraints. When Set is non-nil it is
	// authoritative, even if empty.
	Set []types.Value

	// Intervals is the interval union, in ascending order, when the domain
	// was derived from inequality bounds.
	Intervals []Interval
}

// String returns the textual form of the extent, for example `{10}` for a
// singleton set or `[3,5) ∪ (5,10)` for an interval union.
func (obj *Extent) String() string {
	if obj.Set != nil {
		var s []string
		for _, x := range obj.Set {
			s = append(s, x.String())
		}
		return fmt.Sprintf("{%s}", strings.Join(s, ", "))
	}
	var s []string
	for _, x := range obj.Intervals {
		s = append(s, x.String())
	}
	return strings.Join(s, " ∪ ")
}

// Size returns the total number of values in the extent.
func (obj *Extent) Size() int64 {
	if obj.Set != nil {
		return int64(len(obj.Set))
	}
	var size int64
	for _, x := range obj.Intervals {
		size += x.Size()
	}
	return size
}

// Values enumerates every value in the extent, in ascending order for
// intervals, and in discovery order for explicit sets.
func (obj *Extent) Values() []types.Value {
	if obj.Set != nil {
		values := []types.Value{}
		for _, x := range obj.Set {
			values = append(values, x)
		}
		return values
	}
	values := []types.Value{}
	for _, ival := range obj.Intervals {
		for v := ival.start(); v < ival.Hi; v++ {
			values = append(values, &types.IntValue{V: v})
		}
	}
	return values
}

// ExtentOf computes the finite domain of a single free variable from a
// decomposed conjunction of atomic constraints. Constraints which don't
// mention the variable, or which have an unrecognized shape, are skipped; the
// second return value lists the conjuncts that were actually absorbed into
// the extent, so that the caller can fold the rest into residual filters.
//
// Equality and membership constraints short-circuit the interval logic: they
// produce an exact enumerable set, intersected across all such constraints,
// with any point exclusions removed. Otherwise the interval bounds are
// intersected in order of discovery and point exclusions split the result
// into a union of disjoint intervals. If no bound on either side is found,
// this fails with interfaces.ErrUnboundedVariable. A produced extent is
// always finite, so this never reports an infinite cardinality.
func ExtentOf(v *ast.ExprVar, conjuncts []interfaces.Expr) (*Extent, []interfaces.Expr, error) {
	var sets [][]types.Value // equality singletons and membership sets
	var holes []int64        // point exclusions from <>
	var lo, hi int64
	var hasLo, hasHi bool
	setAbsorbed := []interfaces.Expr{}   // conjuncts absorbed by the set logic
	holeAbsorbed := []interfaces.Expr{}  // conjuncts absorbed as exclusions
	boundAbsorbed := []interfaces.Expr{} // conjuncts absorbed as interval bounds

	for _, x := range conjuncts {
		switch exp := x.(type) {
		case *ast.ExprCmp:
			op, lit, ok := normalizeCmp(exp, v)
			if !ok {
				continue // doesn't constrain v
			}
			if op == ast.CmpOpEq {
				val, err := literalValue(lit)
				if err != nil {
					continue // not a literal, leave for residual
				}
				sets = append(sets, []types.Value{val})
				setAbsorbed = append(setAbsorbed, x)
				continue
			}
			// the remaining operators all need an integer bound
			c, ok := intLiteral(lit)
			if !ok {
				continue
			}
			switch op {
			case ast.CmpOpNe:
				holes = append(holes, c)
				holeAbsorbed = append(holeAbsorbed, x)
			case ast.CmpOpGe:
				if !hasLo || c > lo {
					lo = c
				}
				hasLo = true
				boundAbsorbed = append(boundAbsorbed, x)
			case ast.CmpOpGt:
				if !hasLo || c+1 > lo {
					lo = c + 1
				}
				hasLo = true
				boundAbsorbed = append(boundAbsorbed, x)
			case ast.CmpOpLt:
				if !hasHi || c < hi {
					hi = c
				}
				hasHi = true
				boundAbsorbed = append(boundAbsorbed, x)
			case ast.CmpOpLe:
				if !hasHi || c+1 < hi {
					hi = c + 1
				}
				hasHi = true
				boundAbsorbed = append(boundAbsorbed, x)
			}

		case *ast.ExprIn:
			elem, ok := exp.Elem.(*ast.ExprVar)
			if !ok || elem.Ident() != v.Ident() {
				continue
			}
			list, ok := exp.List.(*ast.ExprList)
			if !ok {
				continue
			}
			val, err := list.Value()
			if err != nil {
				continue // not a literal list, leave for residual
			}
			sets = append(sets, val.List())
			setAbsorbed = append(setAbsorbed, x)

		default:
			// not an atomic constraint shape we recognize
		}
	}

	if len(sets) > 0 {
		// equality/membership short-circuits the interval logic; the
		// interval conjuncts are deliberately *not* absorbed, so they
		// come back to the caller as residual filters.
		set := sets[0]
		for _, other := range sets[1:] {
			set = intersectValues(set, other)
		}
		set = removeValues(set, holes)
		absorbed := append(setAbsorbed, holeAbsorbed...)
		return &Extent{Set: set}, absorbed, nil
	}

	if !hasLo || !hasHi {
		return nil, nil, errwrap.Wrapf(interfaces.ErrUnboundedVariable, "cannot bound `%s`", v.Ident())
	}

	intervals := splitInterval(Interval{Lo: lo, Hi: hi}, holes)
	absorbed := append(boundAbsorbed, holeAbsorbed...)
	return &Extent{Intervals: intervals}, absorbed, nil
}

// normalizeCmp matches a comparison against the variable of interest and
// normalizes it so that the variable is conceptually on the left hand side,
// flipping the operator when it was actually on the right. The returned expr
// is the opposite side. The last result is false if the comparison doesn't
// have the variable alone on either side.
func normalizeCmp(exp *ast.ExprCmp, v *ast.ExprVar) (string, interfaces.Expr, bool) {
	if x, ok := exp.Left.(*ast.ExprVar); ok && x.Ident() == v.Ident() {
		return exp.Op, exp.Right, true
	}
	if x, ok := exp.Right.(*ast.ExprVar); ok && x.Ident() == v.Ident() {
		return flipCmpOp(exp.Op), exp.Left, true
	}
	return "", nil, false
}

// flipCmpOp mirrors a comparison operator, so that `c <= v` can be treated as
// `v >= c`. Equality and inequality are symmetric already.
func flipCmpOp(op string) string {
	switch op {
	case ast.CmpOpLt:
		return ast.CmpOpGt
	case ast.CmpOpLe:
		return ast.CmpOpGe
	case ast.CmpOpGt:
		return ast.CmpOpLt
	case ast.CmpOpGe:
		return ast.CmpOpLe
	}
	return op // = and <> are their own mirror
}

// literalValue extracts the value of a literal expression, or errors if the
// expression isn't a literal.
func literalValue(exp interfaces.Expr) (types.Value, error) {
	lit, ok := exp.(interface {
		Value() (types.Value, error)
	})
	if !ok {
		return nil, interfaces.ErrValueCurrentlyUnknown
	}
	return lit.Value()
}

// intLiteral extracts an integer constant from an expression if it is one.
func intLiteral(exp interfaces.Expr) (int64, bool) {
	i, ok := exp.(*ast.ExprInt)
	if !ok {
		return 0, false
	}
	return i.V, true
}

// intersectValues keeps the values of the first list that also appear in the
// second, preserving the order of the first.
func intersectValues(a, b []types.Value) []types.Value {
	result := []types.Value{}
	for _, x := range a {
		for _, y := range b {
			if x.Cmp(y) == nil {
				result = append(result, x)
				break
			}
		}
	}
	return result
}

// removeValues drops any integer values that appear in the holes list.
func removeValues(values []types.Value, holes []int64) []types.Value {
	result := []types.Value{}
	for _, x := range values {
		excluded := false
		if i, ok := x.(*types.IntValue); ok {
			for _, h := range holes {
				if i.V == h {
					excluded = true
					break
				}
			}
		}
		if !excluded {
			result = append(result, x)
		}
	}
	return result
}

// splitInterval removes the given point exclusions from a base interval and
// returns the minimal union of disjoint non-empty intervals that remains.
// The first surviving interval keeps its closed lower bound; intervals that
// begin at an excluded point are marked open.
func splitInterval(base Interval, holes []int64) []Interval {
	if base.IsEmpty() {
		return []Interval{}
	}

	// sort and deduplicate the holes that actually land inside the base
	inside := []int64{}
	for _, h := range holes {
		if h >= base.start() && h < base.Hi {
			inside = append(inside, h)
		}
	}
	sort.Slice(inside, func(i, j int) bool { return inside[i] < inside[j] })
	unique := []int64{}
	for _, h := range inside {
		if len(unique) == 0 || unique[len(unique)-1] != h {
			unique = append(unique, h)
		}
	}

	intervals := []Interval{}
	cur := base
	for _, h := range unique {
		left := Interval{Lo: cur.Lo, Hi: h, LoOpen: cur.LoOpen}
		if !left.IsEmpty() {
			intervals = append(intervals, left)
		}
		cur = Interval{Lo: h, Hi: base.Hi, LoOpen: true}
	}
	if !cur.IsEmpty() {
		intervals = append(intervals, cur)
	}
	return intervals
}
