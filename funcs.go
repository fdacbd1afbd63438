// Modifications copyright (c) Arista Networks, Inc. 2022
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainset

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// String converts s to a string representation using fmt to format
// its keys. Keys are sorted by their string form.
func (s *Set[K]) String() string {
	return StringFunc(s, func(key K) string { return fmt.Sprint(key) })
}

// StringFunc converts s to a string representation with the help of
// strK to stringify s's keys. Keys are sorted by their string form so
// the result does not depend on the bucket layout.
func StringFunc[K any](s *Set[K], strK func(key K) string) string {
	if s == nil || s.Len() == 0 {
		return "chainset.Set[]"
	}
	strs := make([]string, 0, s.Len())
	n := 0
	for it := s.Iter(); it.Next(); {
		k := strK(it.Key())
		n += len(k)
		strs = append(strs, k)
	}
	slices.SortFunc(strs, func(a, b string) bool { return a < b })

	var b strings.Builder
	b.Grow(len("chainset.Set[]") + // space for header and footer
		len(strs) - 1 + // space for delimiters
		n) // space for keys
	b.WriteString("chainset.Set[")
	for i, k := range strs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if s1 and s2 hold the same keys. Keys of s2 are
// looked up in s1 with s1's equal and hash functions.
func Equal[K any](s1, s2 *Set[K]) bool {
	if s1.Len() != s2.Len() {
		return false
	}
	for it := s2.Iter(); it.Next(); {
		if s1.Count(it.Key()) == 0 {
			return false
		}
	}
	return true
}

// Equal reports whether s and o hold the same keys.
func (s *Set[K]) Equal(o *Set[K]) bool {
	return Equal(s, o)
}

// Dump writes every bucket of s and its chain to w, one bucket per
// line, formatting keys with fmt. The format is meant for debugging
// and may change.
func (s *Set[K]) Dump(w io.Writer) error {
	return DumpFunc(s, w, func(key K) string { return fmt.Sprint(key) })
}

// DumpFunc is like Dump but uses strK to stringify keys.
func DumpFunc[K any](s *Set[K], w io.Writer, strK func(key K) string) error {
	if s == nil {
		return nil
	}
	var b strings.Builder
	for i, head := range s.buckets {
		fmt.Fprintf(&b, "[%d]", i)
		for h := head; h != nilHandle; h = s.entries[h].next {
			b.WriteString(" -> ")
			b.WriteString(strK(s.entries[h].key))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (s *Set[K]) chain(head handle) []K {
	var keys []K
	for h := head; h != nilHandle; h = s.entries[h].next {
		keys = append(keys, s.entries[h].key)
	}
	return keys
}

// Stats describes the table of a Set.
type Stats struct {
	Len          int // keys stored
	Buckets      int // current bucket count
	MinCapacity  int // bucket count after Clear
	Collisions   int // collisions counted since the last rehash
	UsedBuckets  int // buckets with a non-empty chain
	LongestChain int
}

func (st Stats) String() string {
	return fmt.Sprintf("len: %d, buckets: %d (min %d, used %d), collisions: %d, longest chain: %d",
		st.Len, st.Buckets, st.MinCapacity, st.UsedBuckets, st.Collisions, st.LongestChain)
}

// Stats returns a snapshot of s's table.
func (s *Set[K]) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	st := Stats{
		Len:         s.count,
		Buckets:     len(s.buckets),
		MinCapacity: s.minCap,
		Collisions:  s.coll,
	}
	for _, head := range s.buckets {
		if head == nilHandle {
			continue
		}
		st.UsedBuckets++
		n := 0
		for h := head; h != nilHandle; h = s.entries[h].next {
			n++
		}
		if n > st.LongestChain {
			st.LongestChain = n
		}
	}
	return st
}
