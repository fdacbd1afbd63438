// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainset

// Iterator is a forward cursor over a Set. It visits the non-empty
// buckets in index order and each bucket's chain from head to tail.
//
// An Iterator is a value; copying it copies the position. It can be
// driven two ways:
//
//	for it := s.Begin(); !it.Equal(s.End()); it.Advance() {
//		use(it.Key())
//	}
//
//	for it := s.Iter(); it.Next(); {
//		use(it.Key())
//	}
//
// Any rehash, Clear, Swap or Assign of the Set, or erasing the key the
// Iterator is positioned at, invalidates it. Using an invalidated
// Iterator panics.
type Iterator[K any] struct {
	s      *Set[K]
	bucket int // len(s.buckets) at the end
	h      handle
	stamp  uint32
	gen    uint32
	// primed is false for an Iterator returned by Iter until the
	// first call to Next.
	primed bool
}

// Begin returns an iterator positioned at the first key of s, or End()
// if s is empty.
func (s *Set[K]) Begin() Iterator[K] {
	if s == nil {
		return Iterator[K]{primed: true}
	}
	it := Iterator[K]{s: s, gen: s.gen, primed: true}
	it.seek(0)
	return it
}

// End returns the iterator positioned one past the last bucket of s.
func (s *Set[K]) End() Iterator[K] {
	if s == nil {
		return Iterator[K]{primed: true}
	}
	return Iterator[K]{s: s, bucket: len(s.buckets), gen: s.gen, primed: true}
}

// Iter instantiates an Iterator to explore the keys of s with Next.
func (s *Set[K]) Iter() *Iterator[K] {
	it := s.Begin()
	it.primed = false
	return &it
}

func (s *Set[K]) at(b int, h handle) Iterator[K] {
	return Iterator[K]{
		s:      s,
		bucket: b,
		h:      h,
		stamp:  s.entries[h].stamp,
		gen:    s.gen,
		primed: true,
	}
}

// seek positions it at the head of the first non-empty bucket at or
// after b.
func (it *Iterator[K]) seek(b int) {
	s := it.s
	for ; b < len(s.buckets); b++ {
		if h := s.buckets[b]; h != nilHandle {
			it.bucket = b
			it.h = h
			it.stamp = s.entries[h].stamp
			return
		}
	}
	it.bucket = len(s.buckets)
	it.h = nilHandle
	it.stamp = 0
}

func (it *Iterator[K]) check() {
	if it.gen != it.s.gen {
		panic("chainset: iterator invalidated")
	}
	if it.h != nilHandle && it.s.entries[it.h].stamp != it.stamp {
		panic("chainset: iterator invalidated")
	}
}

// Valid reports whether it is positioned at a key, i.e. is not at the
// end.
func (it Iterator[K]) Valid() bool {
	return it.s != nil && it.h != nilHandle
}

// Key returns the key at the iterator's current position. It panics
// at the end.
func (it Iterator[K]) Key() K {
	if !it.Valid() {
		panic("chainset: dereference of end iterator")
	}
	it.check()
	return it.s.entries[it.h].key
}

// Advance moves it to the next key, or to the end. Advancing an
// iterator at the end does nothing.
func (it *Iterator[K]) Advance() {
	if !it.Valid() {
		return
	}
	it.check()
	e := &it.s.entries[it.h]
	if e.next != nilHandle {
		it.h = e.next
		it.stamp = it.s.entries[it.h].stamp
		return
	}
	it.seek(it.bucket + 1)
}

// Next moves the iterator to the next key. The first call on an
// Iterator returned by Iter leaves it at the first key. Next returns
// false when the iterator is complete.
func (it *Iterator[K]) Next() bool {
	if !it.primed {
		it.primed = true
		if it.Valid() {
			it.check()
		}
		return it.Valid()
	}
	it.Advance()
	return it.Valid()
}

// Equal reports whether it and o are at the same position of the same
// Set.
func (it Iterator[K]) Equal(o Iterator[K]) bool {
	return it.s == o.s && it.bucket == o.bucket && it.h == o.h
}
