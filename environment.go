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

// RawSeries holds, for every (interval, variable-id) pair seen in one
// environment, the dense ordered sequence of Values reported so far.
// Length, for a given interval, equals the number of interval markers
// of that interval seen so far in the environment (spec.md §3).
//
// Grounded on emissions/aep/io.go's Emissions/EmisRecord -- a typed,
// append/accumulate-only holder -- generalized here from "emissions
// totals by pollutant" to "one Value per (interval, id, step)".
type RawSeries map[Interval]map[int][]Value

func newRawSeries() RawSeries { return make(RawSeries) }

// initVariable ensures iv/id has a (possibly empty) series.
func (rs RawSeries) initVariable(iv Interval, id int) {
	bucket, ok := rs[iv]
	if !ok {
		bucket = make(map[int][]Value)
		rs[iv] = bucket
	}
	if _, ok := bucket[id]; !ok {
		bucket[id] = nil
	}
}

// extend appends the missing sentinel to every series declared for
// iv, materializing the sparse-series invariant (spec.md §4.3.3 step 3).
func (rs RawSeries) extend(iv Interval, estimate int) {
	bucket, ok := rs[iv]
	if !ok {
		return
	}
	for id, series := range bucket {
		if estimate > 0 && series == nil {
			series = make([]Value, 0, estimate)
		}
		bucket[id] = append(series, MissingValue)
	}
}

// setLast overwrites the most recently appended entry of iv/id, the
// mechanism by which a result record fills in the sentinel written by
// the preceding interval marker (spec.md §4.3.4).
func (rs RawSeries) setLast(iv Interval, id int, v Value) bool {
	bucket, ok := rs[iv]
	if !ok {
		return false
	}
	series, ok := bucket[id]
	if !ok || len(series) == 0 {
		return false
	}
	series[len(series)-1] = v
	bucket[id] = series
	return true
}

// Get returns the series for iv/id.
func (rs RawSeries) Get(iv Interval, id int) []Value {
	bucket, ok := rs[iv]
	if !ok {
		return nil
	}
	return bucket[id]
}

// PeakSeries holds, for every (interval ∈ {D,M,A,RP}, variable-id),
// the ordered sequence of PeakValue records. Nil (the zero value) when
// ignore_peaks is set (spec.md §3, §6).
type PeakSeries map[Interval]map[int][]PeakValue

func newPeakSeries() PeakSeries { return make(PeakSeries) }

func (ps PeakSeries) initVariable(iv Interval, id int) {
	bucket, ok := ps[iv]
	if !ok {
		bucket = make(map[int][]PeakValue)
		ps[iv] = bucket
	}
	if _, ok := bucket[id]; !ok {
		bucket[id] = nil
	}
}

func (ps PeakSeries) extend(iv Interval, estimate int) {
	bucket, ok := ps[iv]
	if !ok {
		return
	}
	for id, series := range bucket {
		if estimate > 0 && series == nil {
			series = make([]PeakValue, 0, estimate)
		}
		bucket[id] = append(series, MissingPeak)
	}
}

func (ps PeakSeries) setLast(iv Interval, id int, v PeakValue) bool {
	bucket, ok := ps[iv]
	if !ok {
		return false
	}
	series, ok := bucket[id]
	if !ok || len(series) == 0 {
		return false
	}
	series[len(series)-1] = v
	bucket[id] = series
	return true
}

// Get returns the peak series for iv/id.
func (ps PeakSeries) Get(iv Interval, id int) []PeakValue {
	bucket, ok := ps[iv]
	if !ok {
		return nil
	}
	return bucket[id]
}

// A RawEnvironment is all data parsed for one simulation run (spec.md
// §3). It owns its RawSeries and PeakSeries; they are appended-to only
// during parsing and immutable after End of Data.
type RawEnvironment struct {
	Name string

	// Header is this environment's own clone of the file dictionary,
	// so duplicate pruning (SearchIndex.PruneDuplicates) is local to
	// this environment (spec.md §3 "Ownership & lifecycle").
	Header HeaderTable

	// Dates holds, per interval, the ordered interval-marker stamps.
	Dates map[Interval][]IntervalStamp

	// DaysOfWeek holds, for TS/H/D, the ordered day-type strings.
	DaysOfWeek map[Interval][]string

	// CumulativeDays holds, for M/A/RP, the ordered optional
	// cumulative-day counts (nil entry means "not applicable", as for
	// Annual markers, spec.md §4.3.3's table).
	CumulativeDays map[Interval][]*int

	// Outputs is the dense per-id series, keyed by interval.
	Outputs RawSeries

	// Peaks is the dense per-id peak series, keyed by interval; nil
	// when peaks were not collected for this parse.
	Peaks PeakSeries

	peaksEnabled bool

	// Index is populated by the file driver after BodyParser
	// finishes, once per environment (spec.md §4.5 step 6).
	Index *SearchIndex
}

// newRawEnvironment allocates a RawEnvironment initialized from
// header (spec.md §4.3.2): every interval present in header gets
// empty Dates/DaysOfWeek-or-CumulativeDays, and every declared
// variable gets an empty Outputs (and Peaks, if enabled) series.
func newRawEnvironment(name string, header HeaderTable, peaksEnabled bool) *RawEnvironment {
	env := &RawEnvironment{
		Name:           name,
		Header:         header,
		Dates:          make(map[Interval][]IntervalStamp),
		DaysOfWeek:     make(map[Interval][]string),
		CumulativeDays: make(map[Interval][]*int),
		Outputs:        newRawSeries(),
		peaksEnabled:   peaksEnabled,
	}
	if peaksEnabled {
		env.Peaks = newPeakSeries()
	}
	for _, iv := range header.Intervals() {
		env.Dates[iv] = nil
		if iv.HasDayOfWeek() {
			env.DaysOfWeek[iv] = nil
		}
		if iv.HasCumulativeDays() {
			env.CumulativeDays[iv] = nil
		}
		for _, id := range header.Ids(iv) {
			env.Outputs.initVariable(iv, id)
			if peaksEnabled && iv.HasPeaks() {
				env.Peaks.initVariable(iv, id)
			}
		}
	}
	return env
}

// checkInvariants validates the length identities spec.md §3 requires
// at the end of parsing. It is exercised by tests only; neither the
// file driver nor the hot parse path calls it (spec.md §9 asks to keep the body loop free of
// anything but the fast split-and-dispatch path).
func (env *RawEnvironment) checkInvariants() error {
	for iv, dates := range env.Dates {
		if iv.HasDayOfWeek() {
			if len(env.DaysOfWeek[iv]) != len(dates) {
				return fmt.Errorf("esoreader: %s: len(daysOfWeek[%s])=%d != len(dates[%s])=%d",
					env.Name, iv, len(env.DaysOfWeek[iv]), iv, len(dates))
			}
		}
		if iv.HasCumulativeDays() {
			if len(env.CumulativeDays[iv]) != len(dates) {
				return fmt.Errorf("esoreader: %s: len(cumulativeDays[%s])=%d != len(dates[%s])=%d",
					env.Name, iv, len(env.CumulativeDays[iv]), iv, len(dates))
			}
		}
		for _, id := range env.Header.Ids(iv) {
			series := env.Outputs.Get(iv, id)
			if len(series) != len(dates) {
				return fmt.Errorf("esoreader: %s: len(outputs[%s][%d])=%d != len(dates[%s])=%d",
					env.Name, iv, id, len(series), iv, len(dates))
			}
			if env.peaksEnabled && iv.HasPeaks() {
				peaks := env.Peaks.Get(iv, id)
				if len(peaks) != len(dates) {
					return fmt.Errorf("esoreader: %s: len(peaks[%s][%d])=%d != len(dates[%s])=%d",
						env.Name, iv, id, len(peaks), iv, len(dates))
				}
			}
		}
	}
	return nil
}
