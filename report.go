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
	"io"
	"sort"
	"text/tabwriter"
)

// A Table holds a text representation of report data: one header row
// followed by one row per record.
//
// Grounded on emissions/aep/report.go's Table/Tabbed: a [][]string
// plus a tabwriter-based renderer, used throughout the pack wherever
// a human needs a quick columnar summary instead of a machine format.
type Table [][]string

// Tabbed writes t to w as a tab-aligned table.
func (t Table) Tabbed(w io.Writer) (n int, err error) {
	ww := new(tabwriter.Writer)
	ww.Init(w, 0, 2, 2, ' ', 0)
	var nn int
	for _, row := range t {
		for _, cell := range row {
			nn, err = fmt.Fprint(ww, cell+"\t")
			if err != nil {
				return
			}
			n += nn
		}
		nn, err = fmt.Fprint(ww, "\n")
		if err != nil {
			return
		}
		n += nn
	}
	return n, ww.Flush()
}

// SummaryTable builds a per-interval row count table for env: one row
// per interval present in env.Header, columns are step count,
// variable count, and (if peaks were collected) peak-series count.
func (env *RawEnvironment) SummaryTable() Table {
	ivs := env.Header.Intervals()
	sort.Slice(ivs, func(i, j int) bool { return ivs[i] < ivs[j] })

	t := Table{{"Interval", "Steps", "Variables", "Peaks"}}
	for _, iv := range ivs {
		steps := len(env.Dates[iv])
		vars := env.Header.Len(iv)
		peaks := "-"
		if env.peaksEnabled && iv.HasPeaks() {
			peaks = fmt.Sprintf("%d", vars)
		}
		t = append(t, []string{
			iv.String(),
			fmt.Sprintf("%d", steps),
			fmt.Sprintf("%d", vars),
			peaks,
		})
	}
	return t
}

// Dump writes a short human-readable summary of env to w: its name,
// a per-interval table, and the number of duplicate variables pruned
// from its header (spec.md §4.4).
//
// Grounded on emissions/aep/report.go's InventoryReport report
// helpers, which build a Table and hand it to Tabbed rather than
// hand-formatting columns with fmt.Printf.
func (env *RawEnvironment) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "environment: %s\n", env.Name); err != nil {
		return err
	}
	if _, err := env.SummaryTable().Tabbed(w); err != nil {
		return err
	}
	if env.Index != nil && len(env.Index.Duplicates) > 0 {
		if _, err := fmt.Fprintf(w, "duplicates pruned: %d\n", len(env.Index.Duplicates)); err != nil {
			return err
		}
	}
	return nil
}
