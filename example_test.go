// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainset_test

import (
	"fmt"
	"hash/maphash"
	"os"

	chainset "github.com/TTsonev/separate-chaining"
)

func ExampleSet_Iter() {
	s := chainset.New(
		func(a, b string) bool { return a == b },
		maphash.String,
		"Avenue", "Street", "Court",
	)

	for i := s.Iter(); i.Next(); {
		fmt.Printf("%q is in the set\n", i.Key())
	}
}

func ExampleSet_Insert() {
	s := chainset.NewIntegers[int]()
	_, added := s.Insert(7)
	fmt.Println(added)
	it, added := s.Insert(7)
	fmt.Println(it.Key(), added, s.Len())
	// Output:
	// true
	// 7 false 1
}

func ExampleSet_Dump() {
	s := chainset.NewCapacity(4,
		func(a, b int) bool { return a == b },
		func(_ maphash.Seed, k int) uint64 { return uint64(k) },
		1, 5, 2)
	s.Dump(os.Stdout)
	fmt.Println(s.Stats())
	// Output:
	// [0]
	// [1] -> 5 -> 1
	// [2] -> 2
	// [3]
	// len: 3, buckets: 4 (min 4, used 2), collisions: 1, longest chain: 2
}
