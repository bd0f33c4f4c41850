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

// Package freq provides frequency-counting containers: maps from a key to a
// signed 64-bit count that also maintain a cached running total across all
// records.
//
// Two containers are provided:
//
//   - Map[K] counts occurrences of arbitrary comparable keys and is backed
//     by a single hash map.
//
//   - PointMap counts occurrences of Unicode code points and is backed by a
//     hybrid store: a dense array covering a contiguous range of low code
//     points for O(1) access to common characters, and a hash map for
//     everything above that range.
//
// Counts are signed. A count can be driven negative via Insert or PushN, and
// counts for distinct keys can cancel in the running total. The containers
// never store a count of exactly zero: any mutation that brings a record's
// count to zero removes the record, so Get returning 0 always means the key
// is absent.
//
// The containers are not goroutine-safe. Concurrent reads are fine as long
// as no mutation is in flight.
package freq

import "fmt"

// Entry is a key and its count. It is the element type for pair-wise
// construction and is deliberately shared between Map (Entry[K]) and
// PointMap (Entry[rune]).
type Entry[K comparable] struct {
	Key   K
	Count int64
}

// Map is a frequency map over comparable keys. Each record associates a key
// with a non-zero signed count, and the map maintains the total of all
// counts. The zero value is not usable; construct with New, FromKeys,
// FromEntries or Collect.
type Map[K comparable] struct {
	records map[K]int64
	// total is the cached sum of all counts. Kept in sync by every mutation
	// so Total is O(1).
	total int64
	// capacity is a watermark: the largest record count this map has been
	// sized for. Go maps cannot report their true bucket capacity, so
	// Reserve/ShrinkTo maintain this explicitly.
	capacity int
}

// New returns an empty Map sized to hold at least initialCapacity records
// without rehashing. An initialCapacity of 0 reserves nothing.
func New[K comparable](initialCapacity int) *Map[K] {
	return &Map[K]{
		records:  make(map[K]int64, initialCapacity),
		capacity: initialCapacity,
	}
}

// FromKeys returns a Map counting the given keys: each occurrence of a key
// increments its count by 1, so the resulting total equals len(keys).
func FromKeys[K comparable](keys ...K) *Map[K] {
	m := New[K](len(keys))
	for _, k := range keys {
		m.records[k]++
	}
	m.total = int64(len(keys))
	m.grew()
	m.checkInvariants()
	return m
}

// FromEntries returns a Map built by applying each entry with PushN
// semantics in order. Later entries for the same key accumulate with, or
// cancel, earlier ones; a running count that reaches zero removes the
// record, and a still-later entry may re-add it.
func FromEntries[K comparable](entries ...Entry[K]) *Map[K] {
	m := New[K](len(entries))
	for _, e := range entries {
		m.PushN(e.Key, e.Count)
	}
	return m
}

// Collect returns a Map counting every key produced by seq, as if by
// repeated Push. The signature is compatible with iter.Seq[K], so any
// range-over-func sequence can be collected:
//
//	m := freq.Collect(maps.Keys(other))
//
// Go sequences carry no size hint, so no capacity is reserved up front.
func Collect[K comparable](seq func(yield func(K) bool)) *Map[K] {
	m := New[K](0)
	seq(func(k K) bool {
		m.records[k]++
		m.total++
		return true
	})
	m.grew()
	m.checkInvariants()
	return m
}

// Insert sets the stored count for key to count, replacing any prior value,
// and returns the previous count along with whether a record existed. A
// count of 0 removes any existing record and never creates one. The total is
// adjusted by count minus the previous count (0 if absent).
func (m *Map[K]) Insert(key K, count int64) (prev int64, existed bool) {
	prev, existed = m.records[key]
	if count == 0 {
		if existed {
			delete(m.records, key)
		}
	} else {
		m.records[key] = count
		m.grew()
	}
	m.total += count - prev
	m.checkInvariants()
	return prev, existed
}

// Push increments key's count by 1, creating a record with count 1 if the
// key is absent. If the stored count was -1 the record is removed: Push
// follows the same zero-removal rule as PushN.
func (m *Map[K]) Push(key K) {
	m.PushN(key, 1)
}

// PushN adds count to key's stored count (0 if absent). A count of 0 is a
// no-op. If the resulting count is 0 the record is removed; otherwise it is
// created or updated. The total is adjusted by count either way.
func (m *Map[K]) PushN(key K, count int64) {
	if count == 0 {
		return
	}
	next := m.records[key] + count
	if next == 0 {
		delete(m.records, key)
	} else {
		m.records[key] = next
		m.grew()
	}
	m.total += count
	m.checkInvariants()
}

// Remove deletes the record for key, returning its count and whether a
// record existed. Removing an absent key has no effect.
func (m *Map[K]) Remove(key K) (int64, bool) {
	count, ok := m.records[key]
	if ok {
		delete(m.records, key)
		m.total -= count
	}
	m.checkInvariants()
	return count, ok
}

// RemoveEntry is Remove returning the key as well.
func (m *Map[K]) RemoveEntry(key K) (K, int64, bool) {
	count, ok := m.Remove(key)
	return key, count, ok
}

// Clear removes all records and resets the total to 0, retaining the
// allocated storage for reuse.
func (m *Map[K]) Clear() {
	clear(m.records)
	m.total = 0
	m.checkInvariants()
}

// Retain keeps only the records for which keep returns true. The total is
// reduced by the sum of the dropped counts; retained records are unchanged.
func (m *Map[K]) Retain(keep func(key K, count int64) bool) {
	var dropped int64
	for k, c := range m.records {
		if !keep(k, c) {
			delete(m.records, k)
			dropped += c
		}
	}
	m.total -= dropped
	m.checkInvariants()
}

// Append moves every record of other into m with PushN semantics, leaving
// other empty (its allocation is retained). This is not a plain additive
// merge: a record in other that exactly cancels m's count for the same key
// removes that record from m.
func (m *Map[K]) Append(other *Map[K]) {
	for k, c := range other.records {
		m.PushN(k, c)
	}
	clear(other.records)
	other.total = 0
	other.checkInvariants()
	m.checkInvariants()
}

// Drain yields every record held at call time, in unspecified order, and
// leaves the map empty with a total of 0. The map is emptied even if yield
// stops the iteration early.
func (m *Map[K]) Drain(yield func(key K, count int64) bool) {
	for k, c := range m.records {
		if !yield(k, c) {
			break
		}
	}
	clear(m.records)
	m.total = 0
	m.checkInvariants()
}

// Reserve ensures capacity for at least additional more records beyond the
// current length. Growing rehashes the records into a larger map.
func (m *Map[K]) Reserve(additional int) {
	target := len(m.records) + additional
	if target > m.capacity {
		m.rebuild(target)
	}
}

// ShrinkTo reduces the capacity to max(Len(), minCapacity), rehashing the
// records into a smaller map if that is below the current capacity.
func (m *Map[K]) ShrinkTo(minCapacity int) {
	target := max(len(m.records), minCapacity)
	if target < m.capacity {
		m.rebuild(target)
	}
}

// ShrinkToFit reduces the capacity to the current length.
func (m *Map[K]) ShrinkToFit() {
	m.ShrinkTo(0)
}

func (m *Map[K]) rebuild(capacity int) {
	next := make(map[K]int64, capacity)
	for k, c := range m.records {
		next[k] = c
	}
	m.records = next
	m.capacity = capacity
	m.checkInvariants()
}

// Get returns the stored count for key, or 0 if no record exists. A stored
// count of exactly 0 is structurally impossible, so 0 always means absent.
func (m *Map[K]) Get(key K) int64 {
	return m.records[key]
}

// Contains reports whether a record exists for key.
func (m *Map[K]) Contains(key K) bool {
	_, ok := m.records[key]
	return ok
}

// IsEmpty reports whether the total is 0. Note that this is a statement
// about the total, not the record count: positive and negative counts across
// distinct keys can cancel, leaving IsEmpty true while Len is non-zero.
func (m *Map[K]) IsEmpty() bool {
	return m.total == 0
}

// Len returns the number of distinct keys with a record.
func (m *Map[K]) Len() int {
	return len(m.records)
}

// Total returns the cached sum of all counts.
func (m *Map[K]) Total() int64 {
	return m.total
}

// Capacity returns the number of records the map is sized for.
func (m *Map[K]) Capacity() int {
	return m.capacity
}

// All calls yield for every (key, count) record in unspecified order,
// stopping early if yield returns false. Each call is a fresh traversal of
// the current state. All may be used directly with a range statement.
func (m *Map[K]) All(yield func(key K, count int64) bool) {
	for k, c := range m.records {
		if !yield(k, c) {
			return
		}
	}
}

func (m *Map[K]) grew() {
	if n := len(m.records); n > m.capacity {
		m.capacity = n
	}
}

func (m *Map[K]) checkInvariants() {
	if !invariants {
		return
	}
	var sum int64
	for k, c := range m.records {
		if c == 0 {
			panic(fmt.Sprintf("freq: Map stores zero count for key %v", k))
		}
		sum += c
	}
	if sum != m.total {
		panic(fmt.Sprintf("freq: Map total %d != sum of counts %d", m.total, sum))
	}
	if m.capacity < len(m.records) {
		panic(fmt.Sprintf("freq: Map capacity %d < len %d", m.capacity, len(m.records)))
	}
}
