// Copyright (c) Arista Networks, Inc. 2024
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainset

import (
	"encoding/binary"
	"hash/maphash"

	"golang.org/x/exp/constraints"
)

// Hashable is implemented by key types that know how to compare and
// hash themselves.
type Hashable[K any] interface {
	Equal(K) bool
	Hash(maphash.Seed) uint64
}

// NewHashable instantiates a new Set of keys implementing Hashable.
func NewHashable[K Hashable[K]](keys ...K) *Set[K] {
	return New(
		func(a, b K) bool { return a.Equal(b) },
		func(seed maphash.Seed, k K) uint64 { return k.Hash(seed) },
		keys...)
}

// NewStrings instantiates a new Set of strings.
func NewStrings(keys ...string) *Set[string] {
	return New(
		func(a, b string) bool { return a == b },
		maphash.String,
		keys...)
}

// NewIntegers instantiates a new Set of integers.
func NewIntegers[K constraints.Integer](keys ...K) *Set[K] {
	return New(
		func(a, b K) bool { return a == b },
		IntegerHash[K],
		keys...)
}

// IntegerHash hashes the 8-byte little-endian form of k.
func IntegerHash[K constraints.Integer](seed maphash.Seed, k K) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return maphash.Bytes(seed, buf[:])
}
