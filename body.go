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
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// BodyParserConfig carries the knobs the body state machine needs
// that are not discoverable from the stream itself (spec.md §6).
type BodyParserConfig struct {
	// VersionCode gates highestIntervalID (spec.md §4.3).
	VersionCode int
	// IgnorePeaks, when true, drops peak coordinates instead of
	// materializing PeakSeries (spec.md §6). The zero value (false)
	// collects peaks.
	IgnorePeaks bool
	// SeriesEstimate pre-sizes series capacity, per spec.md §5's
	// "pre-size using ceil(line-count/header-size)" guidance. Zero
	// disables pre-sizing.
	SeriesEstimate int
	// Logger receives DuplicateVariable/UnknownResultId-style
	// diagnostics. Defaults to logrus.StandardLogger().
	Logger *logrus.Logger
}

// BodyParser drives the line-id keyed state machine of spec.md §4.3:
// it consumes a LineSource positioned right after the dictionary and
// produces the file's list of RawEnvironment records.
//
// Grounded on emissions/aep/inventoryfile.go's ReadEmissionsFile loop
// (dispatch by leading id, accumulate into a typed record, finalize on
// EOF-or-sentinel) and emissions/aep/orl.go's field-by-field numeric
// parsing discipline -- no regex on the hot per-record path (spec.md
// §9, "Regex in hot path").
type BodyParser struct {
	ls     *LineSource
	header HeaderTable
	cfg    BodyParserConfig
	log    *logrus.Logger

	highest int

	envs      []*RawEnvironment
	current   *RawEnvironment
	curIv     Interval
	haveCurIv bool
}

// NewBodyParser returns a BodyParser over ls, reading against header
// with cfg.
func NewBodyParser(ls *LineSource, header HeaderTable, cfg BodyParserConfig) *BodyParser {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &BodyParser{
		ls:      ls,
		header:  header,
		cfg:     cfg,
		log:     logger,
		highest: highestIntervalID(cfg.VersionCode),
	}
}

// Parse runs the state machine to completion, returning the
// environments in file order.
func (bp *BodyParser) Parse() ([]*RawEnvironment, error) {
	for {
		line, ok, err := bp.ls.NextLine()
		if err != nil {
			return bp.envs, err
		}
		if !ok {
			return bp.envs, newParseError(IncompleteFile, bp.ls.LineCounter(), "")
		}
		if strings.TrimSpace(line) == "" {
			return bp.envs, newParseError(BlankLine, bp.ls.LineCounter(), line)
		}

		comma := strings.IndexByte(line, ',')
		var idField string
		var rest string
		if comma < 0 {
			idField = line
			rest = ""
		} else {
			idField = line[:comma]
			rest = line[comma+1:]
		}

		id, err := strconv.Atoi(strings.TrimSpace(idField))
		if err != nil {
			if strings.Contains(line, "End of Data") {
				bp.ls.Finish()
				return bp.envs, nil
			}
			return bp.envs, newParseError(InvalidLineSyntax, bp.ls.LineCounter(), line)
		}

		var fields []string
		if rest != "" || comma >= 0 {
			fields = strings.Split(rest, ",")
		}

		switch {
		case id == 1:
			if err := bp.onEnvironmentMarker(fields, line); err != nil {
				return bp.envs, err
			}
		case id >= 2 && id <= bp.highest:
			if err := bp.onIntervalMarker(id, fields, line); err != nil {
				return bp.envs, err
			}
		default:
			if err := bp.onResultRecord(id, fields, line); err != nil {
				return bp.envs, err
			}
		}
	}
}

// onEnvironmentMarker implements spec.md §4.3.2.
func (bp *BodyParser) onEnvironmentMarker(fields []string, raw string) error {
	if len(fields) < 1 {
		return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
	}
	name := strings.TrimSpace(fields[0])
	env := newRawEnvironment(name, bp.header.Clone(), !bp.cfg.IgnorePeaks)
	bp.envs = append(bp.envs, env)
	bp.current = env
	bp.haveCurIv = false
	return nil
}

// onIntervalMarker implements spec.md §4.3.3.
func (bp *BodyParser) onIntervalMarker(lineID int, fields []string, raw string) error {
	if bp.current == nil {
		return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
	}

	var iv Interval
	var stamp IntervalStamp
	var dayOfWeek string
	var haveDayOfWeek bool
	var cumulativeDays *int
	var haveCumulativeDays bool

	atoi := func(s string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	}
	atof := func(s string) (float64, bool) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}

	switch lineID {
	case 2: // TS or H
		if len(fields) < 8 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		month, ok1 := atoi(fields[1])
		day, ok2 := atoi(fields[2])
		hour, ok3 := atoi(fields[4])
		startMin, ok4 := atof(fields[5])
		endMinRaw, ok5 := atof(fields[6])
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		endMin := roundHalfUp(endMinRaw)
		stamp = IntervalStamp{Month: month, Day: day, Hour: hour, EndMinute: endMin}
		dayOfWeek = strings.TrimSpace(fields[7])
		haveDayOfWeek = true
		if startMin == 0 && endMin == 60 {
			iv = Hourly
		} else {
			iv = TimeStep
		}

	case 3: // Daily
		if len(fields) < 5 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		month, ok1 := atoi(fields[1])
		day, ok2 := atoi(fields[2])
		if !ok1 || !ok2 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		iv = Daily
		stamp = IntervalStamp{Month: month, Day: day, Hour: 0, EndMinute: 0}
		dayOfWeek = strings.TrimSpace(fields[4])
		haveDayOfWeek = true

	case 4: // Monthly
		if len(fields) < 2 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		cum, ok1 := atoi(fields[0])
		month, ok2 := atoi(fields[1])
		if !ok1 || !ok2 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		iv = Monthly
		stamp = IntervalStamp{Month: month, Day: 1, Hour: 0, EndMinute: 0}
		cumulativeDays = &cum
		haveCumulativeDays = true

	case 5: // RunPeriod
		if len(fields) < 1 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		cum, ok1 := atoi(fields[0])
		if !ok1 {
			return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
		}
		iv = RunPeriod
		stamp = IntervalStamp{Month: 1, Day: 1, Hour: 0, EndMinute: 0}
		cumulativeDays = &cum
		haveCumulativeDays = true

	case 6: // Annual
		iv = Annual
		stamp = IntervalStamp{Month: 1, Day: 1, Hour: 0, EndMinute: 0}
		haveCumulativeDays = false

	default:
		return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
	}

	env := bp.current
	env.Dates[iv] = append(env.Dates[iv], stamp)
	if haveDayOfWeek {
		env.DaysOfWeek[iv] = append(env.DaysOfWeek[iv], dayOfWeek)
	}
	if haveCumulativeDays {
		env.CumulativeDays[iv] = append(env.CumulativeDays[iv], cumulativeDays)
	} else if iv.HasCumulativeDays() {
		env.CumulativeDays[iv] = append(env.CumulativeDays[iv], nil)
	}

	env.Outputs.extend(iv, bp.cfg.SeriesEstimate)
	if env.peaksEnabled && iv.HasPeaks() {
		env.Peaks.extend(iv, bp.cfg.SeriesEstimate)
	}

	bp.curIv = iv
	bp.haveCurIv = true
	return nil
}

// onResultRecord implements spec.md §4.3.4.
func (bp *BodyParser) onResultRecord(lineID int, fields []string, raw string) error {
	if bp.current == nil || !bp.haveCurIv {
		return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
	}
	if len(fields) < 1 {
		return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
	}

	if _, ok := bp.header.Get(bp.curIv, lineID); !ok {
		bp.log.WithFields(logrus.Fields{
			"line":     bp.ls.LineCounter(),
			"id":       lineID,
			"interval": bp.curIv,
		}).Warn("esoreader: result record for unknown id, dropping")
		return nil
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
	}
	bp.current.Outputs.setLast(bp.curIv, lineID, NumValue(num))

	if bp.current.peaksEnabled && bp.curIv.HasPeaks() {
		coords := make([]PeakCoord, 0, len(fields)-1)
		for _, f := range fields[1:] {
			c, err := parsePeakCoord(f)
			if err != nil {
				return newParseError(InvalidLineSyntax, bp.ls.LineCounter(), raw)
			}
			coords = append(coords, c)
		}
		bp.current.Peaks.setLast(bp.curIv, lineID, PeakValue{Coords: coords})
	}
	return nil
}
