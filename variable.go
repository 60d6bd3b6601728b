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

// A Variable is one reported output quantity, as declared in the
// dictionary. Equality used for duplicate detection is
// (Interval, Key, Type, Units); Id is not part of that identity.
type Variable struct {
	Interval Interval
	Key      string
	Type     string
	Units    string
}

func (v Variable) String() string {
	return fmt.Sprintf("%s:%s:%s[%s]", v.Interval, v.Key, v.Type, v.Units)
}

// intervalBucket holds one interval's variables plus the order ids
// were first Add-ed in, so HeaderTable can preserve insertion order
// (spec.md §4.2: "not semantically significant but preserved for
// reproducibility").
type intervalBucket struct {
	vars  map[int]Variable
	order []int
}

// A HeaderTable is the dictionary of a file (or of one environment's
// cloned copy of it): variables indexed by interval, then by id. Ids
// are unique across the whole file; every id belongs to exactly one
// interval.
type HeaderTable struct {
	byInterval map[Interval]*intervalBucket
}

// NewHeaderTable returns an empty HeaderTable.
func NewHeaderTable() HeaderTable {
	return HeaderTable{byInterval: make(map[Interval]*intervalBucket)}
}

// Add registers id/v under v.Interval, creating the interval's bucket
// if needed. It performs no duplicate detection -- that is
// SearchIndex's job, run after the whole dictionary has been read.
func (h HeaderTable) Add(id int, v Variable) {
	b, ok := h.byInterval[v.Interval]
	if !ok {
		b = &intervalBucket{vars: make(map[int]Variable)}
		h.byInterval[v.Interval] = b
	}
	if _, exists := b.vars[id]; !exists {
		b.order = append(b.order, id)
	}
	b.vars[id] = v
}

// Get returns the variable registered for id under iv, if any.
func (h HeaderTable) Get(iv Interval, id int) (Variable, bool) {
	b, ok := h.byInterval[iv]
	if !ok {
		return Variable{}, false
	}
	v, ok := b.vars[id]
	return v, ok
}

// Delete removes id from iv's bucket, used by SearchIndex's
// prune-duplicates pass (spec.md §4.4).
func (h HeaderTable) Delete(iv Interval, id int) {
	b, ok := h.byInterval[iv]
	if !ok {
		return
	}
	if _, exists := b.vars[id]; !exists {
		return
	}
	delete(b.vars, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Intervals returns the intervals present in h, in no particular order.
func (h HeaderTable) Intervals() []Interval {
	out := make([]Interval, 0, len(h.byInterval))
	for iv := range h.byInterval {
		out = append(out, iv)
	}
	return out
}

// Ids returns the ids declared for iv, in the order they were first
// Add-ed.
func (h HeaderTable) Ids(iv Interval) []int {
	b, ok := h.byInterval[iv]
	if !ok {
		return nil
	}
	out := make([]int, len(b.order))
	copy(out, b.order)
	return out
}

// Len returns the number of variables declared for iv.
func (h HeaderTable) Len(iv Interval) int {
	b, ok := h.byInterval[iv]
	if !ok {
		return 0
	}
	return len(b.vars)
}

// Clone returns a deep copy of h, so that per-environment duplicate
// pruning (spec.md §4.4) cannot mutate a dictionary shared with other
// environments or the file-level original.
func (h HeaderTable) Clone() HeaderTable {
	out := NewHeaderTable()
	for iv, b := range h.byInterval {
		nb := &intervalBucket{
			vars:  make(map[int]Variable, len(b.vars)),
			order: append([]int(nil), b.order...),
		}
		for id, v := range b.vars {
			nb.vars[id] = v
		}
		out.byInterval[iv] = nb
	}
	return out
}
