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

import "fmt"

// Kind identifies the class of a parse failure. Kind values are not
// themselves errors; they are wrapped in a *ParseError.
type Kind int

// The kinds of fatal and non-fatal conditions the parser can surface.
const (
	// InvalidLineSyntax is a syntactically malformed line in the
	// dictionary or body. Fatal.
	InvalidLineSyntax Kind = iota
	// BlankLine is an empty line observed inside the dictionary or
	// body, where the format forbids them. Fatal.
	BlankLine
	// IncompleteFile is stream exhaustion before the expected
	// sentinel (End of Data Dictionary / End of Data). Fatal.
	IncompleteFile
	// DuplicateVariable reports a header entry pruned because another
	// id already carries the same (interval, key, type, units). Non-fatal.
	DuplicateVariable
	// UnknownResultId is a result record whose id is not present in
	// the current interval's header. Non-fatal; the value is dropped.
	UnknownResultId
	// Cancelled is surfaced from the progress sink at a chunk boundary.
	Cancelled
)

func (k Kind) String() string {
	switch k {
	case InvalidLineSyntax:
		return "InvalidLineSyntax"
	case BlankLine:
		return "BlankLine"
	case IncompleteFile:
		return "IncompleteFile"
	case DuplicateVariable:
		return "DuplicateVariable"
	case UnknownResultId:
		return "UnknownResultId"
	case Cancelled:
		return "Cancelled"
	default:
		panic(fmt.Sprintf("esoreader: unknown error kind %d", int(k)))
	}
}

// ParseError is the error type returned for every fatal condition in
// HeaderParser and BodyParser. Line is the 1-based line number at
// which the failure was observed; Raw is the offending line, empty
// for conditions (like IncompleteFile) that have no single line to
// blame.
type ParseError struct {
	Kind Kind
	Line int
	Raw  string
}

func (e *ParseError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("esoreader: %s at line %d", e.Kind, e.Line)
	}
	return fmt.Sprintf("esoreader: %s at line %d: %q", e.Kind, e.Line, e.Raw)
}

func newParseError(kind Kind, line int, raw string) *ParseError {
	return &ParseError{Kind: kind, Line: line, Raw: raw}
}
