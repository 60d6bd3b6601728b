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

func TestHeaderTableInsertionOrder(t *testing.T) {
	h := NewHeaderTable()
	h.Add(7, Variable{Interval: TimeStep, Key: "Environment", Type: "Drybulb", Units: "C"})
	h.Add(3, Variable{Interval: TimeStep, Key: "Environment", Type: "Wetbulb", Units: "C"})
	h.Add(9, Variable{Interval: TimeStep, Key: "Environment", Type: "RH", Units: "%"})

	got := h.Ids(TimeStep)
	want := []int{7, 3, 9}
	if len(got) != len(want) {
		t.Fatalf("Ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ids()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestHeaderTableDelete(t *testing.T) {
	h := NewHeaderTable()
	h.Add(10, Variable{Interval: Daily, Key: "E", Type: "Temp", Units: "C"})
	h.Add(11, Variable{Interval: Daily, Key: "E", Type: "Temp", Units: "C"})

	h.Delete(Daily, 11)

	if _, ok := h.Get(Daily, 11); ok {
		t.Error("id 11 should have been deleted")
	}
	if _, ok := h.Get(Daily, 10); !ok {
		t.Error("id 10 should still be present")
	}
	if got := h.Ids(Daily); len(got) != 1 || got[0] != 10 {
		t.Errorf("Ids(Daily) = %v, want [10]", got)
	}
	if got := h.Len(Daily); got != 1 {
		t.Errorf("Len(Daily) = %d, want 1", got)
	}
}

func TestHeaderTableCloneIsIndependent(t *testing.T) {
	h := NewHeaderTable()
	h.Add(1, Variable{Interval: Hourly, Key: "A", Type: "B", Units: "C"})

	clone := h.Clone()
	clone.Delete(Hourly, 1)

	if _, ok := h.Get(Hourly, 1); !ok {
		t.Error("deleting from the clone must not affect the original")
	}
	if _, ok := clone.Get(Hourly, 1); ok {
		t.Error("id 1 should be gone from the clone")
	}
}
