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
	"testing"
)

func buildTestHeader() HeaderTable {
	h := NewHeaderTable()
	h.Add(7, Variable{Interval: TimeStep, Key: "Environment", Type: "Site Outdoor Air Drybulb Temperature", Units: "C"})
	h.Add(7, Variable{Interval: Hourly, Key: "Environment", Type: "Site Outdoor Air Drybulb Temperature", Units: "C"})
	return h
}

func TestBodyParserHourlyVsTimeStep(t *testing.T) {
	header := buildTestHeader()
	body := "1,An Environment\n" +
		// TS: start=0, end=15 -> TimeStep
		"2,1,1,1,0,1,0.00,15.00,Monday\n" +
		"7,20.5\n" +
		// H: start=0, end=60 -> Hourly
		"2,1,1,1,0,1,0.00,60.00,Monday\n" +
		"7,21.0\n" +
		"End of Data\n"
	ls := NewLineSource(strings.NewReader(body), nil, 0)
	bp := NewBodyParser(ls, header, BodyParserConfig{VersionCode: 890})
	envs, err := bp.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(envs) != 1 {
		t.Fatalf("got %d environments, want 1", len(envs))
	}
	env := envs[0]

	ts := env.Outputs.Get(TimeStep, 7)
	if len(ts) != 1 || ts[0].Num != 20.5 {
		t.Errorf("TimeStep series = %v, want [20.5]", ts)
	}
	h := env.Outputs.Get(Hourly, 7)
	if len(h) != 1 || h[0].Num != 21.0 {
		t.Errorf("Hourly series = %v, want [21.0]", h)
	}
}

func TestBodyParserSparseSeries(t *testing.T) {
	header := buildTestHeader()
	body := "1,An Environment\n" +
		"2,1,1,1,0,1,0.00,15.00,Monday\n" +
		"7,20.5\n" +
		"2,1,1,1,0,2,15.00,30.00,Monday\n" +
		// no result record for id 7 this step: must stay missing.
		"2,1,1,1,0,3,30.00,45.00,Monday\n" +
		"7,22.0\n" +
		"End of Data\n"
	ls := NewLineSource(strings.NewReader(body), nil, 0)
	bp := NewBodyParser(ls, header, BodyParserConfig{VersionCode: 890})
	envs, err := bp.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ts := envs[0].Outputs.Get(TimeStep, 7)
	if len(ts) != 3 {
		t.Fatalf("got %d entries, want 3", len(ts))
	}
	if ts[0].Missing || ts[0].Num != 20.5 {
		t.Errorf("ts[0] = %v, want 20.5", ts[0])
	}
	if !ts[1].Missing {
		t.Errorf("ts[1] = %v, want missing", ts[1])
	}
	if ts[2].Missing || ts[2].Num != 22.0 {
		t.Errorf("ts[2] = %v, want 22.0", ts[2])
	}
}

func TestBodyParserUnknownResultIdDropped(t *testing.T) {
	header := buildTestHeader()
	body := "1,An Environment\n" +
		"2,1,1,1,0,1,0.00,15.00,Monday\n" +
		"7,20.5\n" +
		"999,123.4\n" +
		"End of Data\n"
	ls := NewLineSource(strings.NewReader(body), nil, 0)
	bp := NewBodyParser(ls, header, BodyParserConfig{VersionCode: 890})
	envs, err := bp.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := envs[0].checkInvariants(); err != nil {
		t.Errorf("checkInvariants: %v", err)
	}
}

func TestBodyParserIncompleteFile(t *testing.T) {
	header := buildTestHeader()
	body := "1,An Environment\n2,1,1,1,0,1,0.00,15.00,Monday\n7,20.5\n"
	ls := NewLineSource(strings.NewReader(body), nil, 0)
	bp := NewBodyParser(ls, header, BodyParserConfig{VersionCode: 890})
	_, err := bp.Parse()
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != IncompleteFile {
		t.Errorf("expected IncompleteFile, got %v", err)
	}
}

func TestBodyParserMultipleEnvironments(t *testing.T) {
	header := buildTestHeader()
	body := "1,Design Day 1\n" +
		"2,1,1,1,0,1,0.00,15.00,Monday\n" +
		"7,10.0\n" +
		"1,Design Day 2\n" +
		"2,1,1,1,0,1,0.00,15.00,Monday\n" +
		"7,11.0\n" +
		"End of Data\n"
	ls := NewLineSource(strings.NewReader(body), nil, 0)
	bp := NewBodyParser(ls, header, BodyParserConfig{VersionCode: 890})
	envs, err := bp.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(envs) != 2 {
		t.Fatalf("got %d environments, want 2", len(envs))
	}
	if envs[0].Name != "Design Day 1" || envs[1].Name != "Design Day 2" {
		t.Errorf("got names %q, %q", envs[0].Name, envs[1].Name)
	}
}
