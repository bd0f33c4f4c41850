// Copyright 2025 The Collect-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package freq

import "fmt"

// maxPointValue is the largest valid Unicode scalar value. Operations on
// a PointMap require code points in [0, maxPointValue]; surrogate values are
// not rejected here since standard UTF-8 decoding never produces them.
const maxPointValue = 0x10FFFF

// PointMap is a frequency map over Unicode code points. Storage is split
// into two tiers: a dense array covering the contiguous range of code points
// below a construction-time ceiling, giving O(1) access to common
// characters, and a hash map for code points at or above it. A single length
// and total are shared by both tiers.
//
// In the dense tier a count of 0 is the absence marker; the sparse tier
// never stores a 0 count. Either way, a count reaching exactly 0 deletes the
// record.
//
// The zero value is not usable; construct with NewPointMap,
// NewDefaultPointMap, FromRunes, FromString, FromPointEntries or
// CollectRunes.
type PointMap struct {
	dense  []int64
	sparse map[rune]int64
	// length is the number of distinct code points with a non-zero count,
	// across both tiers.
	length int
	total  int64
	// sparseCap is the watermark for the sparse tier, mirroring
	// Map.capacity.
	sparseCap int
}

// NewPointMap returns an empty PointMap whose dense tier covers code points
// below ceiling. The ceiling is clamped to the valid scalar-value range; a
// code point's scalar value always fits in Go's int (which is at least 32
// bits), so no further index clamping arises.
func NewPointMap(ceiling rune) *PointMap {
	n := int(ceiling)
	if n < 0 {
		n = 0
	} else if n > maxPointValue {
		n = maxPointValue
	}
	return &PointMap{
		dense:  make([]int64, n),
		sparse: make(map[rune]int64),
	}
}

// NewDefaultPointMap returns an empty PointMap with the default ceiling:
// 0x200, or 0x80 when built with the invariants tag so that tests exercise
// the sparse tier with ordinary inputs.
func NewDefaultPointMap() *PointMap {
	return NewPointMap(defaultCeiling)
}

// FromRunes returns a PointMap counting the given code points.
func FromRunes(points ...rune) *PointMap {
	m := NewDefaultPointMap()
	for _, r := range points {
		m.Push(r)
	}
	return m
}

// FromString returns a PointMap counting every rune decoded from s.
func FromString(s string) *PointMap {
	m := NewDefaultPointMap()
	for _, r := range s {
		m.Push(r)
	}
	return m
}

// FromPointEntries returns a PointMap built by applying each entry with
// PushN semantics in order.
func FromPointEntries(entries ...Entry[rune]) *PointMap {
	m := NewDefaultPointMap()
	for _, e := range entries {
		m.PushN(e.Key, e.Count)
	}
	return m
}

// CollectRunes returns a PointMap counting every code point produced by seq,
// as if by repeated Push. The signature is compatible with iter.Seq[rune].
func CollectRunes(seq func(yield func(rune) bool)) *PointMap {
	m := NewDefaultPointMap()
	seq(func(r rune) bool {
		m.Push(r)
		return true
	})
	return m
}

// pointIndex returns r as a storage index. Callers must pass a valid scalar
// value; under the invariants build tag a violation panics, otherwise the
// behavior is undefined.
func pointIndex(r rune) int {
	if invariants && (r < 0 || r > maxPointValue) {
		panic(fmt.Sprintf("freq: code point %#x outside the valid scalar-value range [0, 0x110000)", int32(r)))
	}
	return int(r)
}

// Insert sets the stored count for r to count, replacing any prior value,
// and returns the previous count along with whether a record existed. A
// count of 0 removes any existing record and never creates one.
func (m *PointMap) Insert(r rune, count int64) (prev int64, existed bool) {
	if ix := pointIndex(r); ix < len(m.dense) {
		prev = m.dense[ix]
		m.dense[ix] = count
		switch {
		case prev == 0 && count != 0:
			m.length++
		case prev != 0 && count == 0:
			m.length--
		}
		m.total += count - prev
		m.checkInvariants()
		return prev, prev != 0
	}

	prev, existed = m.sparse[r]
	if count == 0 {
		if existed {
			delete(m.sparse, r)
			m.length--
		}
	} else {
		if !existed {
			m.length++
		}
		m.sparse[r] = count
		m.sparseGrew()
	}
	m.total += count - prev
	m.checkInvariants()
	return prev, existed
}

// Push increments r's count by 1, creating a record with count 1 if absent.
// Like PushN, a resulting count of 0 (possible when the stored count was -1)
// removes the record.
func (m *PointMap) Push(r rune) {
	m.PushN(r, 1)
}

// PushN adds count to r's stored count (0 if absent). A count of 0 is a
// no-op. If the resulting count is 0 the record is removed; otherwise it is
// created or updated. The total is adjusted by count either way.
func (m *PointMap) PushN(r rune, count int64) {
	if count == 0 {
		return
	}
	if ix := pointIndex(r); ix < len(m.dense) {
		prev := m.dense[ix]
		next := prev + count
		m.dense[ix] = next
		switch {
		case prev == 0:
			m.length++
		case next == 0:
			m.length--
		}
	} else {
		prev := m.sparse[r]
		next := prev + count
		if next == 0 {
			delete(m.sparse, r)
			m.length--
		} else {
			if prev == 0 {
				m.length++
			}
			m.sparse[r] = next
			m.sparseGrew()
		}
	}
	m.total += count
	m.checkInvariants()
}

// Remove deletes the record for r, returning its count and whether a record
// existed. Removing an absent code point has no effect.
func (m *PointMap) Remove(r rune) (int64, bool) {
	if ix := pointIndex(r); ix < len(m.dense) {
		prev := m.dense[ix]
		if prev == 0 {
			return 0, false
		}
		m.dense[ix] = 0
		m.length--
		m.total -= prev
		m.checkInvariants()
		return prev, true
	}

	count, ok := m.sparse[r]
	if ok {
		delete(m.sparse, r)
		m.length--
		m.total -= count
	}
	m.checkInvariants()
	return count, ok
}

// Clear removes all records and resets the length and total to 0, retaining
// the allocated storage of both tiers.
func (m *PointMap) Clear() {
	clear(m.dense)
	clear(m.sparse)
	m.length = 0
	m.total = 0
	m.checkInvariants()
}

// Get returns the stored count for r, or 0 if no record exists.
func (m *PointMap) Get(r rune) int64 {
	if ix := pointIndex(r); ix < len(m.dense) {
		return m.dense[ix]
	}
	return m.sparse[r]
}

// Contains reports whether a record exists for r.
func (m *PointMap) Contains(r rune) bool {
	if ix := pointIndex(r); ix < len(m.dense) {
		return m.dense[ix] != 0
	}
	_, ok := m.sparse[r]
	return ok
}

// IsEmpty reports whether the map holds no records, i.e. Len() == 0. Unlike
// Map.IsEmpty this is a statement about the record count, not the total: a
// PointMap whose counts cancel to a zero total is not empty. The two
// definitions differ deliberately and must not be unified.
func (m *PointMap) IsEmpty() bool {
	return m.length == 0
}

// Len returns the number of distinct code points with a record.
func (m *PointMap) Len() int {
	return m.length
}

// Total returns the cached sum of all counts across both tiers.
func (m *PointMap) Total() int64 {
	return m.total
}

// Capacity returns the dense tier extent plus the sparse tier capacity.
func (m *PointMap) Capacity() int {
	return len(m.dense) + m.sparseCap
}

// All calls yield for every (code point, count) record with a non-zero
// count, stopping early if yield returns false: first the dense tier in
// increasing code point order, then the sparse tier in unspecified order.
// Each call is a fresh traversal. All may be used directly with a range
// statement.
func (m *PointMap) All(yield func(r rune, count int64) bool) {
	for ix, c := range m.dense {
		if c != 0 && !yield(rune(ix), c) {
			return
		}
	}
	for r, c := range m.sparse {
		if !yield(r, c) {
			return
		}
	}
}

// Iter returns a stateful, single-pass iterator over the map. The iterator
// produces the dense tier in increasing code point order, then the sparse
// tier in unspecified order, and is fused: once Next has reported
// exhaustion, every subsequent call reports exhaustion as well. The map must
// not be mutated while the iterator is in use.
func (m *PointMap) Iter() *PointIter {
	return &PointIter{pm: m}
}

// PointIter is the iterator type returned by PointMap.Iter.
type PointIter struct {
	pm *PointMap
	// ix is the next dense index to examine.
	ix int
	// spill holds the sparse tier's keys, captured once when the dense tier
	// is exhausted.
	spill     []rune
	spillIx   int
	spillDone bool
	done      bool
}

// Next returns the next (code point, count) record and true, or zero values
// and false when the iterator is exhausted.
func (it *PointIter) Next() (rune, int64, bool) {
	if it.done {
		return 0, 0, false
	}
	for it.ix < len(it.pm.dense) {
		ix := it.ix
		it.ix++
		if c := it.pm.dense[ix]; c != 0 {
			return rune(ix), c, true
		}
	}
	if !it.spillDone {
		it.spillDone = true
		it.spill = make([]rune, 0, len(it.pm.sparse))
		for r := range it.pm.sparse {
			it.spill = append(it.spill, r)
		}
	}
	if it.spillIx < len(it.spill) {
		r := it.spill[it.spillIx]
		it.spillIx++
		return r, it.pm.sparse[r], true
	}
	it.done = true
	return 0, 0, false
}

func (m *PointMap) sparseGrew() {
	if n := len(m.sparse); n > m.sparseCap {
		m.sparseCap = n
	}
}

func (m *PointMap) checkInvariants() {
	if !invariants {
		return
	}
	var n int
	var sum int64
	for _, c := range m.dense {
		if c != 0 {
			n++
			sum += c
		}
	}
	for r, c := range m.sparse {
		if c == 0 {
			panic(fmt.Sprintf("freq: PointMap sparse tier stores zero count for %#x", r))
		}
		if int(r) < len(m.dense) {
			panic(fmt.Sprintf("freq: PointMap sparse tier holds dense-range point %#x", r))
		}
		n++
		sum += c
	}
	if n != m.length {
		panic(fmt.Sprintf("freq: PointMap length %d != %d distinct non-zero points", m.length, n))
	}
	if sum != m.total {
		panic(fmt.Sprintf("freq: PointMap total %d != sum of counts %d", m.total, sum))
	}
}
