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
	"fmt"
	"strconv"
	"strings"
)

// A PeakCoord is one coordinate of a peak record: either an int or a
// float, decided field-by-field by whether the source literal
// contains a '.' (spec.md §4.3.4). Modeled as a sum type per design
// note §9 ("mix ints and floats ... model as a small sum type rather
// than a list of mixed scalars"), the same choice the teacher makes
// for its own per-shape record family in emissions/aep/inventory.go
// (PointRecord, PolygonRecord, nobusinessPolygonRecord, ...).
type PeakCoord struct {
	IsInt bool
	Int   int64
	Float float64
}

func (c PeakCoord) String() string {
	if c.IsInt {
		return strconv.FormatInt(c.Int, 10)
	}
	return strconv.FormatFloat(c.Float, 'g', -1, 64)
}

// parsePeakCoord parses one peak coordinate field per spec.md §4.3.4:
// int if the literal has no '.', else float.
func parsePeakCoord(field string) (PeakCoord, error) {
	field = strings.TrimSpace(field)
	if !strings.Contains(field, ".") {
		n, err := strconv.ParseInt(field, 10, 64)
		if err == nil {
			return PeakCoord{IsInt: true, Int: n}, nil
		}
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return PeakCoord{}, fmt.Errorf("esoreader: invalid peak coordinate %q: %v", field, err)
	}
	return PeakCoord{Float: f}, nil
}

// A PeakValue is one (interval, id, step) peak record: either missing
// (no peak reported at this step) or a variable-arity sequence of
// PeakCoord, whose length and meaning is determined by the interval
// the enclosing record belongs to (D/M/A/RP have different schemas,
// spec.md §9).
type PeakValue struct {
	Missing bool
	Coords  []PeakCoord
}

// MissingPeak is the distinguished "no peak recorded at this step" entry.
var MissingPeak = PeakValue{Missing: true}

func (p PeakValue) String() string {
	if p.Missing {
		return "missing"
	}
	parts := make([]string, len(p.Coords))
	for i, c := range p.Coords {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
