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

import "fmt"

// A Value is a single dense-series entry: either a reported number or
// the distinguished "not reported at this step" sentinel (spec.md
// §3, §9). Go has IEEE NaN for float64, but the source EnergyPlus
// implementation's choice of a platform float NaN sentinel does not
// generalize cleanly to the PeakValue coordinates (which mix ints and
// floats, spec.md §9), so both RawSeries and PeakSeries use this
// explicit tagged form uniformly rather than mixing a NaN convention
// for one and a sum type for the other.
type Value struct {
	Missing bool
	Num     float64
}

// MissingValue is the distinguished "not reported at this step" entry.
var MissingValue = Value{Missing: true}

// NumValue wraps a reported floating-point result.
func NumValue(f float64) Value {
	return Value{Num: f}
}

func (v Value) String() string {
	if v.Missing {
		return "missing"
	}
	return fmt.Sprintf("%g", v.Num)
}
