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

// Package types provides the runtime value representations for the language.
// The inversion pass uses these to represent relation extensions (rows of
// tuples) and the enumerable domains (extents) that it synthesizes.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Value represents an interface to get values out of each type. It is similar
// to the reflection interfaces used in the golang standard library.
type Value interface {
	fmt.Stringer     // String() string (for display purposes)
	Less(Value) bool // to find the smaller of the two values (for sort)
	Cmp(Value) error // error if the two values aren't the same
	Copy() Value     // returns a copy of this value
	Value() interface{}
	Bool() bool
	Str() string
	Int() int64
	List() []Value
	Tuple() []Value
}

// base implements the missing methods that all types need.
type base struct{}

// Bool represents the value of this type as a bool if it is one. If this is
// not a bool, then this panics.
func (obj *base) Bool() bool {
	panic("not a bool")
}

// Str represents the value of this type as a string if it is one. If this is
// not a string, then this panics.
func (obj *base) Str() string {
	panic("not an str") // yes, i think this is the correct grammar
}

// Int represents the value of this type as an integer if it is one. If this
// is not an integer, then this panics.
func (obj *base) Int() int64 {
	panic("not an int")
}

// List represents the value of this type as a list if it is one. If this is
// not a list, then this panics.
func (obj *base) List() []Value {
	panic("not a list")
}

// Tuple represents the value of this type as a tuple if it is one. If this is
// not a tuple, then this panics.
func (obj *base) Tuple() []Value {
	panic("not a tuple")
}

// BoolValue represents a boolean value.
type BoolValue struct {
	base
	V bool
}

// String returns a visual representation of this value.
func (obj *BoolValue) String() string {
	return strconv.FormatBool(obj.V) // true or false
}

// Less compares to value and returns true if we're smaller. This panics if
// the two types aren't the same.
func (obj *BoolValue) Less(v Value) bool {
	if obj.V != v.(*BoolValue).V { // there must be one false
		return !obj.V
	}
	return false // they're the same
}

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *BoolValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	v, ok := val.(*BoolValue)
	if !ok {
		return fmt.Errorf("cannot cmp types")
	}
	if obj.V != v.V {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *BoolValue) Copy() Value {
	return &BoolValue{V: obj.V}
}

// Value returns the raw value of this type.
func (obj *BoolValue) Value() interface{} {
	return obj.V
}

// Bool represents the value of this type as a bool if it is one. If this is
// not a bool, then this panics.
func (obj *BoolValue) Bool() bool {
	return obj.V
}

// IntValue represents an integer value.
type IntValue struct {
	base
	V int64
}

// String returns a visual representation of this value.
func (obj *IntValue) String() string {
	return strconv.FormatInt(obj.V, 10)
}

// Less compares to value and returns true if we're smaller. This panics if
// the two types aren't the same.
func (obj *IntValue) Less(v Value) bool {
	return obj.V < v.(*IntValue).V
}

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *IntValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	v, ok := val.(*IntValue)
	if !ok {
		return fmt.Errorf("cannot cmp types")
	}
	if obj.V != v.V {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *IntValue) Copy() Value {
	return &IntValue{V: obj.V}
}

// Value returns the raw value of this type.
func (obj *IntValue) Value() interface{} {
	return obj.V
}

// Int represents the value of this type as an integer if it is one. If this
// is not an integer, then this panics.
func (obj *IntValue) Int() int64 {
	return obj.V
}

// StrValue represents a string value.
type StrValue struct {
	base
	V string
}

// String returns a visual representation of this value.
func (obj *StrValue) String() string {
	return strconv.Quote(obj.V)
}

// Less compares to value and returns true if we're smaller. This panics if
// the two types aren't the same.
func (obj *StrValue) Less(v Value) bool {
	return obj.V < v.(*StrValue).V
}

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *StrValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	v, ok := val.(*StrValue)
	if !ok {
		return fmt.Errorf("cannot cmp types")
	}
	if obj.V != v.V {
		return fmt.Errorf("values are different")
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *StrValue) Copy() Value {
	return &StrValue{V: obj.V}
}

// Value returns the raw value of this type.
func (obj *StrValue) Value() interface{} {
	return obj.V
}

// Str represents the value of this type as a string if it is one. If this is
// not a string, then this panics.
func (obj *StrValue) Str() string {
	return obj.V
}

// ListValue represents a list value.
type ListValue struct {
	base
	V []Value
}

// String returns a visual representation of this value.
func (obj *ListValue) String() string {
	var s []string
	for _, x := range obj.V {
		s = append(s, x.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(s, ", "))
}

// Less compares to value and returns true if we're smaller. This panics if
// the two types aren't the same.
func (obj *ListValue) Less(v Value) bool {
	V := v.(*ListValue)
	i, j := len(obj.V), len(V.V)

	for x := 0; x < i && x < j; x++ {
		if obj.V[x].Less(V.V[x]) {
			return true
		}
		if V.V[x].Less(obj.V[x]) {
			return false
		}
	}

	return i < j // shorter list is less
}

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *ListValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	v, ok := val.(*ListValue)
	if !ok {
		return fmt.Errorf("cannot cmp types")
	}
	if len(obj.V) != len(v.V) {
		return fmt.Errorf("lists have different lengths")
	}
	for i := range obj.V {
		if err := obj.V[i].Cmp(v.V[i]); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *ListValue) Copy() Value {
	values := []Value{}
	for _, x := range obj.V {
		values = append(values, x.Copy())
	}
	return &ListValue{V: values}
}

// Value returns the raw value of this type.
func (obj *ListValue) Value() interface{} {
	values := []interface{}{}
	for _, x := range obj.V {
		values = append(values, x.Value())
	}
	return values
}

// List represents the value of this type as a list if it is one. If this is
// not a list, then this panics.
func (obj *ListValue) List() []Value {
	return obj.V
}

// TupleValue represents a fixed-width tuple of values, such as a row in a
// relation's extension. Unlike a list, the elements of a tuple may have
// different types from each other.
type TupleValue struct {
	base
	V []Value
}

// NewTuple creates a new tuple from the given elements.
func NewTuple(values ...Value) *TupleValue {
	return &TupleValue{V: values}
}

// String returns a visual representation of this value.
func (obj *TupleValue) String() string {
	var s []string
	for _, x := range obj.V {
		s = append(s, x.String())
	}
	return fmt.Sprintf("(%s)", strings.Join(s, ", "))
}

// Less compares to value and returns true if we're smaller. This panics if
// the two types aren't the same.
func (obj *TupleValue) Less(v Value) bool {
	V := v.(*TupleValue)
	i, j := len(obj.V), len(V.V)

	for x := 0; x < i && x < j; x++ {
		if obj.V[x].Less(V.V[x]) {
			return true
		}
		if V.V[x].Less(obj.V[x]) {
			return false
		}
	}

	return i < j
}

// Cmp returns an error if this value isn't the same as the arg passed in.
func (obj *TupleValue) Cmp(val Value) error {
	if obj == nil || val == nil {
		return fmt.Errorf("cannot cmp to nil")
	}
	v, ok := val.(*TupleValue)
	if !ok {
		return fmt.Errorf("cannot cmp types")
	}
	if len(obj.V) != len(v.V) {
		return fmt.Errorf("tuples have different widths")
	}
	for i := range obj.V {
		if err := obj.V[i].Cmp(v.V[i]); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a copy of this value.
func (obj *TupleValue) Copy() Value {
	values := []Value{}
	for _, x := range obj.V {
		values = append(values, x.Copy())
	}
	return &TupleValue{V: values}
}

// Value returns the raw value of this type.
func (obj *TupleValue) Value() interface{} {
	values := []interface{}{}
	for _, x := range obj.V {
		values = append(values, x.Value())
	}
	return values
}

// Tuple represents the value of this type as a tuple if it is one. If this is
// not a tuple, then this panics.
func (obj *TupleValue) Tuple() []Value {
	return obj.V
}
