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

package types

import (
	"fmt"
	"testing"
)

func TestValueCmp1(t *testing.T) {
	type test struct { // an individual test
		name string
		a    Value
		b    Value
		err  bool
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "equal ints",
			a:    &IntValue{V: 42},
			b:    &IntValue{V: 42},
		})
	}
	{
		testCases = append(testCases, test{
			name: "different ints",
			a:    &IntValue{V: 1},
			b:    &IntValue{V: 2},
			err:  true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "mismatched types",
			a:    &IntValue{V: 1},
			b:    &StrValue{V: "1"},
			err:  true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "equal tuples",
			a:    NewTuple(&IntValue{V: 1}, &IntValue{V: 2}),
			b:    NewTuple(&IntValue{V: 1}, &IntValue{V: 2}),
		})
	}
	{
		testCases = append(testCases, test{
			name: "tuple width mismatch",
			a:    NewTuple(&IntValue{V: 1}),
			b:    NewTuple(&IntValue{V: 1}, &IntValue{V: 2}),
			err:  true,
		})
	}
	{
		testCases = append(testCases, test{
			name: "tuple element mismatch",
			a:    NewTuple(&IntValue{V: 1}, &IntValue{V: 2}),
			b:    NewTuple(&IntValue{V: 1}, &IntValue{V: 3}),
			err:  true,
		})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			err := tc.a.Cmp(tc.b)
			if tc.err && err == nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: expected a cmp error between %s and %s", index, tc.a, tc.b)
			}
			if !tc.err && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: unexpected cmp error: %+v", index, err)
			}
		})
	}
}

func TestValueLess1(t *testing.T) {
	a := NewTuple(&IntValue{V: 1}, &IntValue{V: 2})
	b := NewTuple(&IntValue{V: 1}, &IntValue{V: 3})
	if !a.Less(b) || b.Less(a) {
		t.Errorf("tuple ordering is wrong")
	}

	// a shorter tuple with an equal prefix sorts first
	c := NewTuple(&IntValue{V: 1})
	if !c.Less(a) || a.Less(c) {
		t.Errorf("prefix ordering is wrong")
	}
}

func TestValueCopy1(t *testing.T) {
	a := NewTuple(&IntValue{V: 1}, &StrValue{V: "hello"})
	b := a.Copy()
	if err := a.Cmp(b); err != nil {
		t.Errorf("the copy differs: %+v", err)
	}
	if a == b.(*TupleValue) {
		t.Errorf("the copy must be a new value")
	}

	// mutating the copy must not touch the original
	b.(*TupleValue).V[0] = &IntValue{V: 99}
	if a.Tuple()[0].Int() != 1 {
		t.Errorf("the original was mutated")
	}
}

func TestValueString1(t *testing.T) {
	v := NewTuple(&IntValue{V: 1}, &StrValue{V: "a"}, &BoolValue{V: true})
	if s := v.String(); s != `(1, "a", true)` {
		t.Errorf("unexpected string: %s", s)
	}
	l := &ListValue{V: []Value{&IntValue{V: 1}, &IntValue{V: 2}}}
	if s := l.String(); s != "[1, 2]" {
		t.Errorf("unexpected string: %s", s)
	}
}
