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
	"time"
)

// VersionInfo is the file preamble: the EnergyPlus version that wrote
// the file (collapsed to a decimal integer, spec.md §6) and the
// generation timestamp.
type VersionInfo struct {
	VersionCode int
	GeneratedAt time.Time
}

// HighestIntervalID returns the line-id boundary for this file's
// version (spec.md §4.3).
func (vi VersionInfo) HighestIntervalID() int {
	return highestIntervalID(vi.VersionCode)
}

// parseStatementLine parses the first line of an .eso file:
//
//	Program Version,EnergyPlus, Version 8.9.0-40101eaafd, YMD=2020.05.14 14:22
//
// Per spec.md §6: the third field holds a free-form version string
// whose first space-delimited token after the first space is a dotted
// version, collapsed to a decimal integer by stripping the dots and
// keeping the first five characters; the fourth field carries the
// generation date after an '=' sign, in "YYYY.MM.DD HH:MM" form.
func parseStatementLine(line string) (VersionInfo, error) {
	fields := strings.SplitN(line, ",", 4)
	if len(fields) != 4 {
		return VersionInfo{}, fmt.Errorf("esoreader: malformed statement line %q", line)
	}

	versionCode, err := parseVersionCode(fields[2])
	if err != nil {
		return VersionInfo{}, err
	}

	eq := strings.IndexByte(fields[3], '=')
	if eq < 0 {
		return VersionInfo{}, fmt.Errorf("esoreader: malformed statement date field %q", fields[3])
	}
	dateStr := strings.TrimSpace(fields[3][eq+1:])
	generatedAt, err := time.Parse("2006.01.02 15:04", dateStr)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("esoreader: malformed statement date %q: %v", dateStr, err)
	}

	return VersionInfo{VersionCode: versionCode, GeneratedAt: generatedAt}, nil
}

// parseVersionCode implements the dotted-version collapse rule of
// spec.md §6: "Version 8.9.0-40101eaafd" -> token "8.9.0-40101eaafd"
// -> dotted numeric prefix "8.9.0" -> strip dots -> "890" -> first
// five characters -> "890". The githash suffix is discarded before
// the dots are stripped, not after, since it is not itself numeric.
func parseVersionCode(field string) (int, error) {
	parts := strings.Fields(field)
	if len(parts) < 2 {
		return 0, fmt.Errorf("esoreader: malformed version field %q", field)
	}
	token := parts[len(parts)-1]

	end := len(token)
	for i, r := range token {
		if (r < '0' || r > '9') && r != '.' {
			end = i
			break
		}
	}
	numeric := token[:end]

	collapsed := strings.ReplaceAll(numeric, ".", "")
	if len(collapsed) > 5 {
		collapsed = collapsed[:5]
	}
	code, err := strconv.Atoi(collapsed)
	if err != nil {
		return 0, fmt.Errorf("esoreader: malformed version token %q: %v", token, err)
	}
	return code, nil
}

// ConsumePreamble reads the statement line plus the reserved preamble
// lines from ls and returns the file's VersionInfo. Exported for
// callers (such as esoutil's "dict" subcommand) that want the
// dictionary without running the full ParseFile pipeline.
func ConsumePreamble(ls *LineSource) (VersionInfo, error) {
	return consumePreamble(ls)
}

// consumePreamble reads the statement line plus the reserved
// preamble lines that follow (5 when version < 890, else 6; spec.md
// §4.5 step 3, §6).
func consumePreamble(ls *LineSource) (VersionInfo, error) {
	line, ok, err := ls.NextLine()
	if err != nil {
		return VersionInfo{}, err
	}
	if !ok {
		return VersionInfo{}, newParseError(IncompleteFile, ls.LineCounter(), "")
	}
	vi, err := parseStatementLine(line)
	if err != nil {
		return VersionInfo{}, newParseError(InvalidLineSyntax, ls.LineCounter(), line)
	}

	n := vi.HighestIntervalID()
	for i := 0; i < n; i++ {
		_, ok, err := ls.NextLine()
		if err != nil {
			return VersionInfo{}, err
		}
		if !ok {
			return VersionInfo{}, newParseError(IncompleteFile, ls.LineCounter(), "")
		}
	}
	return vi, nil
}
