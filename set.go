// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chainset provides the Set type, a set of unique keys backed
// by a hash table with separate chaining. Like gomap, users provide
// an equal and a hash function for the key type.
//
// The following requirements are the user's responsibility to follow:
//   - equal(a, b) => hash(a) == hash(b)
//   - equal(a, a) must be true for all values of a. Be careful around NaN
//     float values.
//   - If a key in a Set contains references -- such as pointers, maps,
//     or slices -- modifying the referenced data in a way that effects
//     the result of the equal or hash functions will result in undefined
//     behavior.
//   - A Set must not be used from more than one goroutine while it is
//     being modified. There is no internal locking.
package chainset

// The table is an array of buckets. Each bucket holds the head of a
// singly linked chain of entries whose hash modulo the bucket count
// selects that bucket. Entries are stored in an arena slice and linked
// by handle (index into the arena); handle 0 is never used so that a
// zeroed bucket array is an empty table.
//
// A new key landing in an occupied bucket is a collision. It is
// prepended to the chain and counted. Once the collisions seen since
// the last rehash reach collisionPercent of the bucket count, the
// table is rebuilt with growthFactor times as many buckets. During the
// rebuild, keys landing in an occupied bucket are appended to the tail
// of the chain and counted again, so the counter after a rehash only
// reflects the redistribution. Erase never decrements the counter.
//
// Iteration walks the bucket array in index order and each chain from
// head to tail. A rehash changes both the bucket count and the chain
// order, so cursors remember the table generation they were created
// under and panic if it has moved on.

import (
	"hash/maphash"

	"go.uber.org/zap"
)

const (
	// DefaultMinCapacity is the bucket count of a Set created by New.
	DefaultMinCapacity = 10

	// Each rehash multiplies the bucket count by growthFactor.
	growthFactor = 4

	// A rehash is triggered when collisions*100/buckets reaches
	// collisionPercent.
	collisionPercent = 40

	// flags
	hashWriting = 1 // a mutation is in progress
)

// handle indexes Set.entries. The zero handle terminates a chain.
type handle uint32

const nilHandle handle = 0

type entry[K any] struct {
	key  K
	next handle
	// stamp changes every time the slot is freed so that cursors
	// holding the handle can tell the slot was reused.
	stamp uint32
}

// Set implements a hash set with separate chaining.
type Set[K any] struct {
	count int // # live entries == size of set
	coll  int // collisions since the last rehash
	flags uint8

	// gen is bumped whenever the table is replaced. It is not
	// exchanged by Swap.
	gen uint32

	minCap  int
	buckets []handle
	// entries[0] is unused. Freed entries are linked through next,
	// starting at free.
	entries []entry[K]
	free    handle

	seed  maphash.Seed
	hash  func(maphash.Seed, K) uint64
	equal func(K, K) bool

	log *zap.Logger
}

// New instantiates a new Set with DefaultMinCapacity buckets and
// inserts any keys passed, in order. The equal func must return true
// for two values of K that are equal and false otherwise. The hash
// func should return a uniformly distributed hash value. If
// equal(a, b) then hash(a) == hash(b). The hash function is passed a
// [hash/maphash.Seed], this is meant to be used with functions and
// types in the [hash/maphash] package, though can be ignored.
func New[K any](
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64,
	keys ...K) *Set[K] {

	return NewCapacity(DefaultMinCapacity, equal, hash, keys...)
}

// NewCapacity instantiates a new Set whose table starts, and restarts
// after Clear, with n buckets. n must be at least 1. See [New] for
// discussion of the equal and hash arguments.
func NewCapacity[K any](
	n int,
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64,
	keys ...K) *Set[K] {

	if n < 1 {
		panic("chainset: minimum capacity must be at least 1")
	}
	s := &Set[K]{
		minCap:  n,
		buckets: make([]handle, n),
		entries: make([]entry[K], 1, len(keys)+1),
		seed:    maphash.MakeSeed(),
		hash:    hash,
		equal:   equal,
		log:     zap.NewNop(),
	}
	s.InsertAll(keys...)
	return s
}

// FromRange instantiates a new Set holding the keys in [first, last).
// The new Set shares the equal and hash functions, minimum capacity
// and logger of the Set the iterators belong to.
func FromRange[K any](first, last Iterator[K]) *Set[K] {
	src := first.s
	if src == nil {
		src = last.s
	}
	if src == nil {
		panic("chainset: FromRange called with zero iterators")
	}
	s := NewCapacity[K](src.minCap, src.equal, src.hash)
	s.log = src.log
	s.InsertRange(first, last)
	return s
}

// Clone returns a copy of s.
func (s *Set[K]) Clone() *Set[K] {
	return FromRange(s.Begin(), s.End())
}

// SetLogger sets the logger used to trace table growth. A nil logger
// disables tracing.
func (s *Set[K]) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// Len returns the number of keys in s.
func (s *Set[K]) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Empty reports whether s holds no keys.
func (s *Set[K]) Empty() bool {
	return s.Len() == 0
}

func (s *Set[K]) bucketIndex(hash uint64) int {
	return int(hash % uint64(len(s.buckets)))
}

// lookup returns the bucket key hashes to and the handle of the entry
// holding key, or nilHandle.
func (s *Set[K]) lookup(key K) (int, handle) {
	b := s.bucketIndex(s.hash(s.seed, key))
	for h := s.buckets[b]; h != nilHandle; h = s.entries[h].next {
		if s.equal(key, s.entries[h].key) {
			return b, h
		}
	}
	return b, nilHandle
}

// Count returns 1 if key is in s and 0 otherwise.
func (s *Set[K]) Count(key K) int {
	if s == nil || s.count == 0 {
		return 0
	}
	if _, h := s.lookup(key); h != nilHandle {
		return 1
	}
	return 0
}

// Contains reports whether key is in s.
func (s *Set[K]) Contains(key K) bool {
	return s.Count(key) == 1
}

// Find returns an iterator positioned at key, or End() if key is not
// in s.
func (s *Set[K]) Find(key K) Iterator[K] {
	if s == nil || s.count == 0 {
		return s.End()
	}
	b, h := s.lookup(key)
	if h == nilHandle {
		return s.End()
	}
	return s.at(b, h)
}

// Insert adds key to s. It returns an iterator positioned at the
// stored key and true if key was added, or an iterator positioned at
// the equal key already in s and false.
func (s *Set[K]) Insert(key K) (Iterator[K], bool) {
	if s == nil {
		// We have to panic here rather than initialize an empty set
		// because we need the user to pass in hash and equal
		// functions
		panic("chainset: Insert called on nil set")
	}
	if s.flags&hashWriting != 0 {
		panic("chainset: concurrent set writes")
	}
	hash := s.hash(s.seed, key)
	// Set hashWriting after calling s.hash, since s.hash may panic,
	// in which case we have not actually done a write.
	s.flags ^= hashWriting

	b := s.bucketIndex(hash)
	head := s.buckets[b]
	if head == nilHandle {
		h := s.newEntry(key, nilHandle)
		s.buckets[b] = h
		s.count++
		s.doneWriting()
		return s.at(b, h), true
	}
	for h := head; h != nilHandle; h = s.entries[h].next {
		if s.equal(key, s.entries[h].key) {
			s.doneWriting()
			return s.at(b, h), false
		}
	}

	s.count++
	s.coll++
	if overCollisionRatio(s.coll, len(s.buckets)) {
		s.rehash()
		// Rehashing changed the bucket count, so look again.
		b = s.bucketIndex(hash)
	}
	h := s.newEntry(key, s.buckets[b])
	s.buckets[b] = h
	s.doneWriting()
	return s.at(b, h), true
}

// InsertAll inserts keys in order. Keys already in s, and repeats
// within keys, are skipped.
func (s *Set[K]) InsertAll(keys ...K) {
	for _, k := range keys {
		s.Insert(k)
	}
}

// InsertRange inserts the keys in [first, last). The range must not
// belong to s.
func (s *Set[K]) InsertRange(first, last Iterator[K]) {
	for it := first; !it.Equal(last); it.Advance() {
		s.Insert(it.Key())
	}
}

// Erase removes key from s. It returns the number of keys removed,
// which is 0 or 1.
func (s *Set[K]) Erase(key K) int {
	if s == nil || s.count == 0 {
		return 0
	}
	if s.flags&hashWriting != 0 {
		panic("chainset: concurrent set writes")
	}
	hash := s.hash(s.seed, key)

	// Set hashWriting after calling s.hash, since s.hash may panic,
	// in which case we have not actually done a write (erase).
	s.flags ^= hashWriting

	b := s.bucketIndex(hash)
	removed := 0
	prev := nilHandle
	for h := s.buckets[b]; h != nilHandle; prev, h = h, s.entries[h].next {
		if !s.equal(key, s.entries[h].key) {
			continue
		}
		if prev == nilHandle {
			s.buckets[b] = s.entries[h].next
		} else {
			s.entries[prev].next = s.entries[h].next
		}
		s.freeEntry(h)
		s.count--
		removed = 1
		// Reset the hash seed to make it more difficult for attackers to
		// repeatedly trigger hash collisions. See issue 25237.
		if s.count == 0 {
			s.seed = maphash.MakeSeed()
		}
		break
	}

	s.doneWriting()
	return removed
}

// Clear removes all keys from s and shrinks its table back to the
// minimum capacity. Clear panics if s is nil.
func (s *Set[K]) Clear() {
	if s == nil {
		// The functions needed to build the empty table are unknown.
		panic("chainset: Clear called on nil set")
	}
	fresh := NewCapacity[K](s.minCap, s.equal, s.hash)
	s.Swap(fresh)
}

// Swap exchanges the contents of s and o.
func (s *Set[K]) Swap(o *Set[K]) {
	if s == o {
		return
	}
	if s.flags&hashWriting != 0 || o.flags&hashWriting != 0 {
		panic("chainset: concurrent set writes")
	}
	s.count, o.count = o.count, s.count
	s.coll, o.coll = o.coll, s.coll
	s.minCap, o.minCap = o.minCap, s.minCap
	s.buckets, o.buckets = o.buckets, s.buckets
	s.entries, o.entries = o.entries, s.entries
	s.free, o.free = o.free, s.free
	s.seed, o.seed = o.seed, s.seed
	s.hash, o.hash = o.hash, s.hash
	s.equal, o.equal = o.equal, s.equal
	s.gen++
	o.gen++
}

// Swap exchanges the contents of a and b.
func Swap[K any](a, b *Set[K]) {
	a.Swap(b)
}

// Assign replaces the contents of s with a copy of o.
func (s *Set[K]) Assign(o *Set[K]) {
	if s == o {
		return
	}
	tmp := o.Clone()
	s.Swap(tmp)
}

// AssignKeys replaces the contents of s with keys. The minimum
// capacity and functions of s are kept.
func (s *Set[K]) AssignKeys(keys ...K) {
	tmp := NewCapacity(s.minCap, s.equal, s.hash, keys...)
	s.Swap(tmp)
}

func (s *Set[K]) doneWriting() {
	if s.flags&hashWriting == 0 {
		panic("chainset: concurrent set writes")
	}
	s.flags &^= hashWriting
}

func (s *Set[K]) newEntry(key K, next handle) handle {
	if h := s.free; h != nilHandle {
		e := &s.entries[h]
		s.free = e.next
		e.key = key
		e.next = next
		return h
	}
	s.entries = append(s.entries, entry[K]{key: key, next: next})
	return handle(len(s.entries) - 1)
}

func (s *Set[K]) freeEntry(h handle) {
	var zeroK K
	e := &s.entries[h]
	// Clear key in case it has pointers
	e.key = zeroK
	e.stamp++
	e.next = s.free
	s.free = h
}

// overCollisionRatio reports whether coll collisions in nbuckets
// buckets call for a rehash.
func overCollisionRatio(coll, nbuckets int) bool {
	return coll*100/nbuckets >= collisionPercent
}

// rehash rebuilds the table with growthFactor times as many buckets.
// Entries are recreated in a fresh arena in bucket then chain order;
// an entry landing in an occupied bucket goes to the tail of its chain
// and counts as a collision.
func (s *Set[K]) rehash() {
	oldsize := len(s.buckets)
	newsize := oldsize * growthFactor
	newbuckets := make([]handle, newsize)
	// tails[b] is the last entry of newbuckets[b]'s chain.
	tails := make([]handle, newsize)
	newentries := make([]entry[K], 1, s.count+1)
	coll := 0

	for _, head := range s.buckets {
		for h := head; h != nilHandle; h = s.entries[h].next {
			key := s.entries[h].key
			b := int(s.hash(s.seed, key) % uint64(newsize))
			newentries = append(newentries, entry[K]{key: key})
			nh := handle(len(newentries) - 1)
			if newbuckets[b] == nilHandle {
				newbuckets[b] = nh
			} else {
				newentries[tails[b]].next = nh
				coll++
			}
			tails[b] = nh
		}
	}

	s.log.Debug("rehash",
		zap.Int("from", oldsize),
		zap.Int("to", newsize),
		zap.Int("elements", s.count),
		zap.Int("collisions", coll))

	// commit the grow
	s.buckets = newbuckets
	s.entries = newentries
	s.free = nilHandle
	s.coll = coll
	s.gen++
}
