// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build go1.23

package chainset

import "iter"

// All returns an iterator over the keys in s, in bucket order.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for it := s.Iter(); it.Next(); {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Buckets returns an iterator over the non-empty buckets of s, yielding
// each bucket index with the keys of its chain in chain order.
func (s *Set[K]) Buckets() iter.Seq2[int, []K] {
	return func(yield func(int, []K) bool) {
		for i, head := range s.buckets {
			if head == nilHandle {
				continue
			}
			if !yield(i, s.chain(head)) {
				return
			}
		}
	}
}
