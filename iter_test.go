// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build go1.23

package chainset

import (
	"maps"
	"testing"
)

func TestRangeFuncs(t *testing.T) {
	s := NewStrings("Avenue", "Street", "Court")

	t.Run("All", func(t *testing.T) {
		exp := map[string]struct{}{
			"Avenue": struct{}{},
			"Street": struct{}{},
			"Court":  struct{}{},
		}
		got := make(map[string]struct{})
		for k := range s.All() {
			got[k] = struct{}{}
		}
		if !maps.Equal(exp, got) {
			t.Errorf("expected: %v got: %v", exp, got)
		}
	})

	t.Run("AllBreak", func(t *testing.T) {
		n := 0
		for range s.All() {
			n++
			break
		}
		if n != 1 {
			t.Errorf("expected one key before break, got: %d", n)
		}
	})

	t.Run("Buckets", func(t *testing.T) {
		s := New(intEqual, identityHash, 0, 10, 4)
		got := make(map[int][]int)
		for b, keys := range s.Buckets() {
			got[b] = keys
		}
		if len(got) != 2 || len(got[0]) != 2 || got[0][0] != 10 || got[4][0] != 4 {
			t.Errorf("unexpected buckets: %v", got)
		}
	})
}
