// Copyright (c) Arista Networks, Inc. 2024
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainset

import (
	"hash/maphash"
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct {
	x, y int
}

func (p point) Equal(o point) bool { return p == o }

func (p point) Hash(seed maphash.Seed) uint64 {
	return IntegerHash(seed, p.x)*31 + IntegerHash(seed, p.y)
}

func TestNewHashable(t *testing.T) {
	s := NewHashable(point{1, 2}, point{2, 1}, point{1, 2})
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(point{2, 1}))
	require.False(t, s.Contains(point{2, 2}))
	for x := 0; x < 30; x++ {
		for y := 0; y < 30; y++ {
			s.Insert(point{x, y})
		}
	}
	require.Equal(t, 900, s.Len())
	require.Equal(t, 1, s.Count(point{29, 29}))
}

func TestIntegerHash(t *testing.T) {
	seed := maphash.MakeSeed()
	require.Equal(t, IntegerHash(seed, int64(-1)), IntegerHash(seed, uint64(1<<64-1)))
	require.NotEqual(t, IntegerHash(seed, 1), IntegerHash(seed, 2))

	s := NewIntegers[int8](-128, 0, 127, -128)
	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains(-128))
}
