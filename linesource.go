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
	"bufio"
	"io"
	"strings"
)

// DefaultChunkSize is the number of lines between progress ticks when
// no other chunk size is configured.
const DefaultChunkSize = 10000

// A LineSource is a pull-based source of logical text lines from an
// input stream. It owns the stream exclusively and maintains a
// monotonically increasing line counter, ticking an injected
// ProgressSink every ChunkSize lines.
//
// Grounded on emissions/aep/report.go's SICDesc/NAICSDesc, which read
// lines with bufio.NewReader(...).ReadString('\n') in a manual
// counting loop rather than bufio.Scanner, so the raw (possibly
// unterminated) line text survives for error reporting.
type LineSource struct {
	r         *bufio.Reader
	sink      ProgressSink
	chunkSize int
	lineNo    int
	cancelled bool
}

// NewLineSource wraps r. sink may be nil, in which case a NopSink is
// used. chunkSize <= 0 selects DefaultChunkSize.
func NewLineSource(r io.Reader, sink ProgressSink, chunkSize int) *LineSource {
	if sink == nil {
		sink = NewNopSink()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &LineSource{
		r:         bufio.NewReaderSize(r, 64*1024),
		sink:      sink,
		chunkSize: chunkSize,
	}
}

// LineCounter returns the number of lines successfully pulled so far.
func (ls *LineSource) LineCounter() int { return ls.lineNo }

// NextLine pulls the next logical line, without its trailing newline.
// ok is false when the stream is exhausted. err is non-nil only for
// Cancelled, surfaced at the chunk boundary the cancellation was
// observed on.
func (ls *LineSource) NextLine() (line string, ok bool, err error) {
	if ls.cancelled {
		return "", false, newParseError(Cancelled, ls.lineNo, "")
	}
	raw, readErr := ls.r.ReadString('\n')
	if raw == "" && readErr != nil {
		return "", false, nil
	}
	ls.lineNo++
	line = strings.TrimRight(raw, "\r\n")

	if ls.lineNo%ls.chunkSize == 0 {
		if ls.sink.Tick(ls.lineNo) {
			ls.cancelled = true
		}
	}
	return line, true, nil
}

// Finish ticks the sink once more if there is a non-empty chunk
// remainder, per spec.md §4.3.5.
func (ls *LineSource) Finish() {
	if ls.lineNo%ls.chunkSize != 0 {
		ls.sink.Tick(ls.lineNo)
	}
}

// CountLines scans r to count its lines without retaining them, for
// the file driver's progress-maximum pre-scan (spec.md §4.5 step 1).
// It does not consume r for later parsing; callers pass an
// independent reader (a second open, or a seek back to 0).
func CountLines(r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	n := 0
	for {
		chunk, err := br.ReadString('\n')
		if len(chunk) > 0 {
			n++
		}
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
	}
}
