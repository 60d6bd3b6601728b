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

import (
	"strings"

	"github.com/ctessum/unit"
)

// dimensionTable maps the handful of unit strings EnergyPlus actually
// emits to an SI Dimensions signature, for diagnostic annotation only;
// it never alters a parsed Value. Units this table doesn't know are
// left undimensioned -- the parser's correctness never depends on
// recognizing a unit string (spec.md §1, "does not semantically check
// unit strings").
var dimensionTable = map[string]unit.Dimensions{
	"C":     {unit.TemperatureDim: 1},
	"K":     {unit.TemperatureDim: 1},
	"J":     {unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -2},
	"W":     {unit.MassDim: 1, unit.LengthDim: 2, unit.TimeDim: -3},
	"kg":    {unit.MassDim: 1},
	"kg/s":  {unit.MassDim: 1, unit.TimeDim: -1},
	"m3/s":  {unit.LengthDim: 3, unit.TimeDim: -1},
	"m3":    {unit.LengthDim: 3},
	"m":     {unit.LengthDim: 1},
	"lux":   {unit.LuminousIntensityDim: 1, unit.LengthDim: -2},
	"deg":   {unit.AngleDim: 1},
	"Pa":    {unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -2},
}

// AnnotateUnit returns a best-effort *unit.Unit carrying value in the
// SI dimension inferred from units, or nil if units is not recognized.
// This is a diagnostic convenience (e.g. for a report or CLI that
// wants to sanity-check a dimension before plotting two series
// together) -- it plays no part in parsing and is never consulted by
// the core (SPEC_FULL.md's DOMAIN STACK: ctessum/unit wired narrowly,
// here only).
func AnnotateUnit(units string, value float64) *unit.Unit {
	dims, ok := dimensionTable[strings.TrimSpace(units)]
	if !ok {
		return nil
	}
	return unit.New(value, dims)
}

// DimensionsMatch reports whether two unit strings resolve to the
// same SI dimension signature; unrecognized units never match.
func DimensionsMatch(a, b string) bool {
	ua := AnnotateUnit(a, 0)
	ub := AnnotateUnit(b, 0)
	if ua == nil || ub == nil {
		return false
	}
	return unit.DimensionsMatch(ua, ub)
}
