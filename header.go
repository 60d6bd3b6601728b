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
	"regexp"
	"strconv"
	"strings"
)

// dictLineRE is the dictionary-line grammar. Groups: id, count
// (ignored), key, type (optional -- branch driven by whether a comma
// precedes the units bracket), units, interval tag.
//
// Grounded on emissions/aep/orl.go's per-format regexes (orlPointRE
// and friends): one package-level compiled regex per record shape,
// run once per matched line, never inside the hot per-field loop.
var dictLineRE = regexp.MustCompile(`^(\d+),(\d+),(.*?)(?:,(.*?) ?\[| ?\[)(.*?)\] !(\w*(?: \w+)?).*$`)

// HeaderParser consumes a LineSource positioned just after the
// preamble and builds a HeaderTable, one dictionary line at a time
// (spec.md §4.2).
type HeaderParser struct {
	ls *LineSource
}

// NewHeaderParser returns a HeaderParser reading from ls.
func NewHeaderParser(ls *LineSource) *HeaderParser {
	return &HeaderParser{ls: ls}
}

// Parse reads dictionary lines until the "End of Data Dictionary"
// sentinel, or fails with BlankLine/InvalidLineSyntax on the first
// line that fails both the grammar and the sentinel check.
func (hp *HeaderParser) Parse() (HeaderTable, error) {
	table := NewHeaderTable()
	for {
		line, ok, err := hp.ls.NextLine()
		if err != nil {
			return table, err
		}
		if !ok {
			return table, newParseError(IncompleteFile, hp.ls.LineCounter(), "")
		}
		m := dictLineRE.FindStringSubmatch(line)
		if m == nil {
			if strings.Contains(line, "End of Data Dictionary") {
				return table, nil
			}
			if strings.TrimSpace(line) == "" {
				return table, newParseError(BlankLine, hp.ls.LineCounter(), line)
			}
			return table, newParseError(InvalidLineSyntax, hp.ls.LineCounter(), line)
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return table, newParseError(InvalidLineSyntax, hp.ls.LineCounter(), line)
		}
		v, err := buildVariable(m[3], m[4], m[5], m[6])
		if err != nil {
			return table, newParseError(InvalidLineSyntax, hp.ls.LineCounter(), line)
		}
		table.Add(id, v)
	}
}

// buildVariable applies the §4.2 post-processing rules to one
// regex match's (key, type, units, intervalTag) captures.
func buildVariable(key, typ, units, intervalTag string) (Variable, error) {
	if typ == "" {
		// Meter-variable dictionary line: one fewer comma-separated
		// component, so key actually holds what would be type.
		typ = key
		if strings.Contains(key, "Cumulative") {
			key = "Cumulative Meter"
		} else {
			key = "Meter"
		}
	}

	if strings.EqualFold(intervalTag, "Each Call") {
		intervalTag = "TimeStep"
		typ = "System - " + typ
	}

	iv, err := ParseInterval(intervalTag)
	if err != nil {
		return Variable{}, err
	}

	return Variable{
		Interval: iv,
		Key:      key,
		Type:     typ,
		Units:    units,
	}, nil
}
