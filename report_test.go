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
	"bytes"
	"strings"
	"testing"
)

func TestSummaryTableAndDump(t *testing.T) {
	header := NewHeaderTable()
	header.Add(7, Variable{Interval: TimeStep, Key: "Environment", Type: "Drybulb", Units: "C"})
	env := newRawEnvironment("E1", header, false)
	env.Dates[TimeStep] = append(env.Dates[TimeStep], IntervalStamp{Month: 1, Day: 1, Hour: 1, EndMinute: 15})

	table := env.SummaryTable()
	if len(table) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(table))
	}
	if table[0][0] != "Interval" {
		t.Errorf("header row = %v", table[0])
	}
	if table[1][1] != "1" {
		t.Errorf("Steps column = %q, want %q", table[1][1], "1")
	}

	var buf bytes.Buffer
	if err := env.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "environment: E1") {
		t.Errorf("Dump output missing environment name: %q", out)
	}
	if !strings.Contains(out, "Interval") {
		t.Errorf("Dump output missing table header: %q", out)
	}
}

func TestTabbedEmptyTable(t *testing.T) {
	var table Table
	var buf bytes.Buffer
	if _, err := table.Tabbed(&buf); err != nil {
		t.Fatalf("Tabbed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty output for an empty table, got %q", buf.String())
	}
}
