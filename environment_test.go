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

func TestNewRawEnvironmentInitializesDeclaredSeries(t *testing.T) {
	header := NewHeaderTable()
	header.Add(7, Variable{Interval: TimeStep, Key: "Environment", Type: "Drybulb", Units: "C"})
	header.Add(53, Variable{Interval: RunPeriod, Key: "Meter", Type: "Electricity:Facility", Units: "J"})

	env := newRawEnvironment("E1", header, false)

	if _, ok := env.Outputs[TimeStep][7]; !ok {
		t.Error("expected an empty TimeStep/7 series to be initialized")
	}
	if len(env.Outputs.Get(TimeStep, 7)) != 0 {
		t.Error("a freshly initialized series should be empty")
	}
	if env.Peaks != nil {
		t.Error("Peaks should be nil when peaksEnabled is false")
	}
	if _, ok := env.CumulativeDays[RunPeriod]; !ok {
		t.Error("RunPeriod should have a (possibly nil) CumulativeDays entry")
	}
	if _, ok := env.DaysOfWeek[RunPeriod]; ok {
		t.Error("RunPeriod should not have a DaysOfWeek entry")
	}
}

func TestRawSeriesSetLastRequiresExtend(t *testing.T) {
	rs := newRawSeries()
	rs.initVariable(TimeStep, 7)
	if rs.setLast(TimeStep, 7, NumValue(1)) {
		t.Error("setLast should fail before any extend has appended a slot")
	}
	rs.extend(TimeStep, 0)
	if !rs.setLast(TimeStep, 7, NumValue(5)) {
		t.Fatal("setLast should succeed once a slot exists")
	}
	got := rs.Get(TimeStep, 7)
	if len(got) != 1 || got[0].Num != 5 {
		t.Errorf("Get = %v, want [5]", got)
	}
}

func TestCheckInvariantsDetectsMismatch(t *testing.T) {
	header := NewHeaderTable()
	header.Add(7, Variable{Interval: TimeStep, Key: "Environment", Type: "Drybulb", Units: "C"})
	env := newRawEnvironment("E1", header, false)

	env.Dates[TimeStep] = append(env.Dates[TimeStep], IntervalStamp{Month: 1, Day: 1, Hour: 1, EndMinute: 15})
	env.DaysOfWeek[TimeStep] = append(env.DaysOfWeek[TimeStep], "Monday")
	// Outputs[TimeStep][7] deliberately left un-extended: length mismatch.

	if err := env.checkInvariants(); err == nil {
		t.Error("expected checkInvariants to catch the length mismatch")
	}
}
