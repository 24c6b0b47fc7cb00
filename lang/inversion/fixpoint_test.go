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

package inversion

import (
	"fmt"
	"testing"

	"github.com/merl-lang/merl/lang/types"

	"github.com/kylelemons/godebug/pretty"
)

func TestFixpointSource1(t *testing.T) {
	type test struct { // an individual test
		name string
		base []types.Value
		step []types.Value
		fail bool
		want []string
	}
	testCases := []test{}

	{
		testCases = append(testCases, test{
			name: "line graph",
			base: []types.Value{pair(1, 2), pair(2, 3)},
			step: []types.Value{pair(1, 2), pair(2, 3)},
			want: []string{"(1, 2)", "(2, 3)", "(1, 3)"},
		})
	}
	{
		testCases = append(testCases, test{
			name: "two element cycle",
			base: []types.Value{pair(1, 2), pair(2, 1)},
			step: []types.Value{pair(1, 2), pair(2, 1)},
			want: []string{"(1, 2)", "(2, 1)", "(1, 1)", "(2, 2)"},
		})
	}
	{
		testCases = append(testCases, test{
			name: "self loop",
			base: []types.Value{pair(7, 7)},
			step: []types.Value{pair(7, 7)},
			want: []string{"(7, 7)"},
		})
	}
	{
		testCases = append(testCases, test{
			name: "empty base",
			base: []types.Value{},
			step: []types.Value{pair(1, 2)},
			want: []string{},
		})
	}
	{
		// base pairs that the step never connects to just pass through
		testCases = append(testCases, test{
			name: "disconnected step",
			base: []types.Value{pair(1, 2)},
			step: []types.Value{pair(8, 9)},
			want: []string{"(1, 2)"},
		})
	}
	{
		testCases = append(testCases, test{
			name: "unknown step extension",
			base: []types.Value{pair(1, 2)},
			step: nil, // no extension at all
			fail: true,
		})
	}

	for index, tc := range testCases { // run all the tests
		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			name := tc.name

			source := &FixpointSource{
				Base: &ListSource{V: tc.base},
				Step: &Relation{Name: "step", Rows: tc.step},
			}

			values, err := source.Values()
			if tc.fail {
				if err == nil {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: test name: %s", index, name)
					t.Errorf("test #%d: expected an error", index)
				}
				return
			}
			if err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: test name: %s", index, name)
				t.Errorf("test #%d: unexpected error: %+v", index, err)
				return
			}

			got := []string{}
			for _, v := range values {
				got = append(got, v.String())
			}
			if diff := pretty.Compare(tc.want, got); diff != "" {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: test name: %s", index, name)
				t.Errorf("test #%d: pairs differ: %s", index, diff)
			}
		})
	}
}
