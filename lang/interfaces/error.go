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

package interfaces

import (
	"github.com/merl-lang/merl/util"
)

const (
	// ErrUninvertible is returned from the inversion pass when no generator
	// can be derived for a goal variable. This is a normal, expected result
	// and not a fatal condition: the caller decides whether to retry with a
	// different goal variable ordering or to surface a compile error. Note
	// that it is perfectly legal to return any error, but this one can be
	// used instead of inventing your own.
	ErrUninvertible = util.Error("predicate is not invertible")

	// ErrUnboundedVariable is returned from the extent calculator when the
	// supplied constraints don't bound a variable to any finite, enumerable
	// domain. The caller may still find another strategy, such as a direct
	// relation enumeration, so this is recoverable too.
	ErrUnboundedVariable = util.Error("variable has no finite extent")

	// ErrValueCurrentlyUnknown is returned from the Value() call on literal
	// expressions if we're speculating and a value isn't statically known.
	ErrValueCurrentlyUnknown = util.Error("value is currently unknown")
)
