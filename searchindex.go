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
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// duplicateEntry records one duplicate Variable observed while
// building a SearchIndex, and the id of the variable it collided with
// (the surviving, first-seen id).
type duplicateEntry struct {
	Id         int
	Variable   Variable
	SurvivorId int
}

// A SearchIndex answers lookup(interval?, key?, type?, units?) over
// one environment's (possibly duplicate-pruned) HeaderTable (spec.md
// §4.4).
//
// Grounded on emissions/aep/inventory.go's handling of duplicate
// FIPS/SCC keys during inventory aggregation (first occurrence wins,
// later ones are reported and folded away) and on the pack's general
// preference for path/filepath.Match-style glob matching over a
// bespoke wildcard engine.
type SearchIndex struct {
	// byIdentity indexes first-seen ids, keyed by (interval, key, type,
	// units) identity, for exact-match duplicate detection.
	byIdentity map[identityKey]int

	// all is every surviving (non-duplicate) id, interval, Variable.
	all []indexedVariable

	// Duplicates holds every id that lost the identity race, in the
	// order they were encountered.
	Duplicates []duplicateEntry
}

type identityKey struct {
	iv    Interval
	key   string
	typ   string
	units string
}

type indexedVariable struct {
	id int
	v  Variable
}

// NewSearchIndex builds a SearchIndex from header. Variables sharing
// (interval, key, type, units) are duplicates; the first id
// encountered (in HeaderTable insertion order) wins and is retained in
// the index.
func NewSearchIndex(header HeaderTable) *SearchIndex {
	idx := &SearchIndex{byIdentity: make(map[identityKey]int)}
	for _, iv := range header.Intervals() {
		for _, id := range header.Ids(iv) {
			v, _ := header.Get(iv, id)
			key := identityKey{iv: v.Interval, key: v.Key, typ: v.Type, units: v.Units}
			if survivorId, exists := idx.byIdentity[key]; exists {
				idx.Duplicates = append(idx.Duplicates, duplicateEntry{Id: id, Variable: v, SurvivorId: survivorId})
				continue
			}
			idx.byIdentity[key] = id
			idx.all = append(idx.all, indexedVariable{id: id, v: v})
		}
	}
	return idx
}

// PruneDuplicates deletes every duplicate id collected during
// construction from header, outputs and (if non-nil) peaks, keeping
// the length invariants of spec.md §3 intact. It is idempotent: a
// second call on an index with no duplicates is a no-op, and running
// it twice on the same header is safe since Delete on an absent id is
// a no-op.
func (idx *SearchIndex) PruneDuplicates(header HeaderTable, outputs RawSeries, peaks PeakSeries) {
	for _, dup := range idx.Duplicates {
		iv := dup.Variable.Interval
		header.Delete(iv, dup.Id)
		if bucket, ok := outputs[iv]; ok {
			delete(bucket, dup.Id)
		}
		if peaks != nil {
			if bucket, ok := peaks[iv]; ok {
				delete(bucket, dup.Id)
			}
		}
	}
}

// LogDuplicates emits one info-level log line per collected duplicate
// (spec.md §7: DuplicateVariable is non-fatal, reported via the
// prune-duplicates contract).
func (idx *SearchIndex) LogDuplicates(logger *logrus.Logger) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	for _, dup := range idx.Duplicates {
		logger.WithFields(logrus.Fields{
			"id":       dup.Id,
			"survivor": dup.SurvivorId,
			"variable": dup.Variable.String(),
		}).Info("esoreader: duplicate variable pruned")
	}
}

// Lookup returns the ids whose surviving Variable matches every
// non-empty of key, typ, units (case-insensitive, shell-glob wildcard
// per path/filepath.Match, e.g. "*Temperature*") and, when ivSet is
// true, iv. An empty pattern for a component means match-any.
func (idx *SearchIndex) Lookup(iv Interval, ivSet bool, key, typ, units string) []int {
	var out []int
	for _, iv2 := range idx.all {
		if ivSet && iv2.v.Interval != iv {
			continue
		}
		if !globMatch(key, iv2.v.Key) || !globMatch(typ, iv2.v.Type) || !globMatch(units, iv2.v.Units) {
			continue
		}
		out = append(out, iv2.id)
	}
	return out
}

// globMatch reports whether pattern (empty means match-any) matches
// value, case-insensitively, using shell-glob semantics.
func globMatch(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(value))
	return err == nil && ok
}
