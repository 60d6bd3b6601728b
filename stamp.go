/*
Copyright © 2020 the esoreader authors.
This file is part of esoreader.

esoreader is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

esoreader is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with esoreader.  If not, see <http://www.gnu.org/licenses/>.
*/

package esoreader

import "math"

// An IntervalStamp is the raw, un-yearified timestamp extracted from
// an interval-marker line (spec.md §3). Yearifying it into an
// absolute timestamp is an out-of-scope downstream concern; the core
// only forwards the caller-supplied year (spec.md §1, §6).
type IntervalStamp struct {
	Month int // 1..12
	Day   int // 0..31; 0 means "not applicable" (M, RP, A markers use 1)
	Hour  int // 0..24
	// EndMinute is the end-of-step minute, already half-up rounded
	// (spec.md §4.3, testable property 5).
	EndMinute int
}

// roundHalfUp implements spec.md §4.3's "end-min rounded half-up"
// rule: the raw field may carry spurious fractional minutes (e.g.
// 59.999999) that must round to a whole minute rather than truncate.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
