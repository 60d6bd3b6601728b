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

func TestLineSourceNextLine(t *testing.T) {
	ls := NewLineSource(strings.NewReader("one\ntwo\nthree\n"), nil, 0)

	var got []string
	for {
		line, ok, err := ls.NextLine()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, line)
	}
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if ls.LineCounter() != 3 {
		t.Errorf("LineCounter() = %d, want 3", ls.LineCounter())
	}
}

func TestLineSourceUnterminatedLastLine(t *testing.T) {
	ls := NewLineSource(strings.NewReader("a\nb"), nil, 0)
	var lines []string
	for {
		line, ok, err := ls.NextLine()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	if len(lines) != 2 || lines[1] != "b" {
		t.Errorf("got %v, want [a b]", lines)
	}
}

type countingSink struct {
	ticks []int
}

func (s *countingSink) SetMaximum(n int)      {}
func (s *countingSink) LogSection(name string) {}
func (s *countingSink) LineCounter() int {
	if len(s.ticks) == 0 {
		return 0
	}
	return s.ticks[len(s.ticks)-1]
}
func (s *countingSink) Tick(lineCounter int) bool {
	s.ticks = append(s.ticks, lineCounter)
	return false
}

func TestLineSourceTicksAtChunkBoundary(t *testing.T) {
	sink := &countingSink{}
	ls := NewLineSource(strings.NewReader("1\n2\n3\n4\n"), sink, 2)
	for {
		_, ok, err := ls.NextLine()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
	}
	if len(sink.ticks) != 2 || sink.ticks[0] != 2 || sink.ticks[1] != 4 {
		t.Errorf("ticks = %v, want [2 4]", sink.ticks)
	}
}

func TestLineSourceCancellation(t *testing.T) {
	sink := &cancellingSink{cancelAfter: 1}
	ls := NewLineSource(strings.NewReader("1\n2\n3\n4\n"), sink, 1)
	var sawCancel bool
	for {
		_, ok, err := ls.NextLine()
		if err != nil {
			if pe, isPE := err.(*ParseError); isPE && pe.Kind == Cancelled {
				sawCancel = true
				break
			}
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
	}
	if !sawCancel {
		t.Error("expected a Cancelled error after the sink requested cancellation")
	}
}

type cancellingSink struct {
	cancelAfter int
	ticks       int
}

func (s *cancellingSink) SetMaximum(n int)       {}
func (s *cancellingSink) LogSection(name string) {}
func (s *cancellingSink) LineCounter() int       { return s.ticks }
func (s *cancellingSink) Tick(lineCounter int) bool {
	s.ticks++
	return s.ticks > s.cancelAfter
}

func TestCountLines(t *testing.T) {
	n, err := CountLines(strings.NewReader("a\nb\nc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("CountLines = %d, want 3", n)
	}

	n, err = CountLines(strings.NewReader("a\nb"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("CountLines (unterminated) = %d, want 2", n)
	}
}
