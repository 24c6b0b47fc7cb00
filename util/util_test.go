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

package util

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestStrInList1(t *testing.T) {
	if !StrInList("a", []string{"a", "b"}) {
		t.Errorf("`a` should be in the list")
	}
	if StrInList("c", []string{"a", "b"}) {
		t.Errorf("`c` should not be in the list")
	}
	if StrInList("a", nil) {
		t.Errorf("nothing is in the empty list")
	}
}

func TestStrRemoveDuplicatesInList1(t *testing.T) {
	got := StrRemoveDuplicatesInList([]string{"a", "b", "a", "c", "b"})
	if diff := pretty.Compare([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("lists differ: %s", diff)
	}
}

func TestError1(t *testing.T) {
	const sentinel = Error("something went wrong")
	var err error = sentinel
	if err.Error() != "something went wrong" {
		t.Errorf("unexpected error text: %s", err.Error())
	}
	if err != sentinel {
		t.Errorf("sentinel comparison failed")
	}
}
