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

import "testing"

func TestParsePeakCoordInt(t *testing.T) {
	c, err := parsePeakCoord(" 14")
	if err != nil {
		t.Fatalf("parsePeakCoord: %v", err)
	}
	if !c.IsInt || c.Int != 14 {
		t.Errorf("got %+v, want IsInt=true Int=14", c)
	}
}

func TestParsePeakCoordFloat(t *testing.T) {
	c, err := parsePeakCoord("23.5")
	if err != nil {
		t.Fatalf("parsePeakCoord: %v", err)
	}
	if c.IsInt || c.Float != 23.5 {
		t.Errorf("got %+v, want IsInt=false Float=23.5", c)
	}
}

func TestParsePeakCoordInvalid(t *testing.T) {
	if _, err := parsePeakCoord("not-a-number"); err == nil {
		t.Error("expected an error for a non-numeric coordinate")
	}
}

func TestValueString(t *testing.T) {
	if MissingValue.String() != "missing" {
		t.Errorf("MissingValue.String() = %q, want %q", MissingValue.String(), "missing")
	}
	if got := NumValue(12.5).String(); got != "12.5" {
		t.Errorf("NumValue(12.5).String() = %q, want %q", got, "12.5")
	}
}

func TestPeakValueString(t *testing.T) {
	if MissingPeak.String() != "missing" {
		t.Errorf("MissingPeak.String() = %q, want %q", MissingPeak.String(), "missing")
	}
	pv := PeakValue{Coords: []PeakCoord{{IsInt: true, Int: 7}, {Float: 1.5}}}
	if got := pv.String(); got != "[7 1.5]" {
		t.Errorf("PeakValue.String() = %q, want %q", got, "[7 1.5]")
	}
}
