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
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// ParserConfig carries the caller-supplied knobs of spec.md §6.
type ParserConfig struct {
	// IgnorePeaks is true in DefaultParserConfig; the zero value
	// (false) collects peaks.
	IgnorePeaks bool
	// Year is accepted but not used: ParseFile does not read it and
	// the Result does not carry it.
	Year int
	// ChunkSize is the LineSource tick period; <= 0 selects
	// DefaultChunkSize.
	ChunkSize int
	// Sink receives progress ticks and section markers; nil selects
	// a NopSink.
	Sink ProgressSink
	// Logger receives diagnostic (duplicate/unknown-id) logs; nil
	// selects logrus.StandardLogger().
	Logger *logrus.Logger
}

// DefaultParserConfig returns the spec's default configuration:
// peaks ignored, no year, default chunk size, no-op progress sink.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{IgnorePeaks: true}
}

// Result is one parsed file: its version preamble and the
// environments found in it, each already indexed and pruned.
type Result struct {
	Version      VersionInfo
	Header       HeaderTable
	Environments []*RawEnvironment
}

// ParseFile runs the full pipeline of spec.md §4.5 over r: pre-scan
// for a progress maximum (using counter, an independent reader over
// the same bytes), consume the preamble, run HeaderParser, run
// BodyParser, then build and apply a SearchIndex per environment.
//
// Grounded on inmaputil/cmd.go's Run-style composition of independently
// testable stages into one driver function, and on cmd/inmap/main.go's
// thin-entrypoint-over-library-function shape.
func ParseFile(r io.Reader, counter io.Reader, cfg ParserConfig) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = NewNopSink()
	}

	lineCount := 0
	if counter != nil {
		var err error
		lineCount, err = CountLines(counter)
		if err != nil {
			return nil, err
		}
		chunkSize := cfg.ChunkSize
		if chunkSize <= 0 {
			chunkSize = DefaultChunkSize
		}
		sink.SetMaximum(int(math.Ceil(float64(lineCount) / float64(chunkSize))))
	}

	ls := NewLineSource(r, sink, cfg.ChunkSize)

	sink.LogSection("preamble")
	version, err := consumePreamble(ls)
	if err != nil {
		return nil, err
	}

	sink.LogSection("dictionary")
	header, err := NewHeaderParser(ls).Parse()
	if err != nil {
		return nil, err
	}

	sink.LogSection("data")
	estimate := seriesSizeEstimate(lineCount, header.totalVariables())
	bp := NewBodyParser(ls, header, BodyParserConfig{
		VersionCode:    version.VersionCode,
		IgnorePeaks:    cfg.IgnorePeaks,
		SeriesEstimate: estimate,
		Logger:         logger,
	})
	envs, err := bp.Parse()
	if err != nil {
		return nil, err
	}

	for _, env := range envs {
		idx := NewSearchIndex(env.Header)
		idx.LogDuplicates(logger)
		idx.PruneDuplicates(env.Header, env.Outputs, env.Peaks)
		env.Index = idx
	}

	return &Result{Version: version, Header: header, Environments: envs}, nil
}

// totalVariables sums the number of declared variables across all
// intervals, used as the header size in the series pre-size estimate.
func (h HeaderTable) totalVariables() int {
	n := 0
	for _, iv := range h.Intervals() {
		n += h.Len(iv)
	}
	return n
}

// seriesSizeEstimate implements spec.md §5's pre-sizing guidance:
// ceil(line-count / header-size), to avoid quadratic reallocation on
// the typical 10^5-10^7 line file. Returns 0 (no pre-sizing) when
// either input is unknown.
func seriesSizeEstimate(lineCount, headerSize int) int {
	if lineCount <= 0 || headerSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(lineCount) / float64(headerSize)))
}
