// Package lotto provides the core types for Lotofácil analysis: number sets
// packed into a 25-bit bitfield, historical draws and draw histories.
//
// Games, pools and draws are all represented as a Set, which keeps
// intersection counting down to a single popcount.
package lotto

import (
	"fmt"
	"math/bits"
	"strings"
)

// Universe bounds and sizes
const (
	MinNumber = 1
	MaxNumber = 25
	Universe  = MaxNumber - MinNumber + 1

	// DrawSize is the number of numbers in every draw and every game
	DrawSize = 15

	// MinPoolSize and MaxPoolSize bound pools entered by the user
	MinPoolSize = 15
	MaxPoolSize = 20

	// MinCoveragePool is the smallest pool the coverage optimizer accepts
	MinCoveragePool = 16
)

// Set is a bitfield of numbers in [1,25].
// Bit n-1 is set when number n is present.
type Set uint32

const (
	fullSet  Set = 1<<Universe - 1
	evenMask Set = 0xAAAAAA // bits 1,3,...,23 = numbers 2,4,...,24
)

// All returns the set of every number 1-25
func All() Set {
	return fullSet
}

// NewSet builds a set from numbers, collapsing duplicates.
// Returns a ValidationError if any number is outside [1,25].
func NewSet(numbers ...int) (Set, error) {
	var s Set
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return 0, Invalid("number", n, "must be between %d and %d", MinNumber, MaxNumber)
		}
		s.Add(n)
	}
	return s, nil
}

// MustSet is like NewSet but panics on invalid numbers. Intended for
// constants and tests.
func MustSet(numbers ...int) Set {
	s, err := NewSet(numbers...)
	if err != nil {
		panic(err)
	}
	return s
}

// Range returns the set {from..to}, clamped to the universe
func Range(from, to int) Set {
	var s Set
	for n := max(from, MinNumber); n <= min(to, MaxNumber); n++ {
		s.Add(n)
	}
	return s
}

// Single returns the set {n}, or the empty set when n is out of range
func Single(n int) Set {
	var s Set
	s.Add(n)
	return s
}

// Add adds n to the set. Numbers outside the universe are ignored.
func (s *Set) Add(n int) {
	if n < MinNumber || n > MaxNumber {
		return
	}
	*s |= 1 << (n - 1)
}

// Has reports whether n is in the set
func (s Set) Has(n int) bool {
	if n < MinNumber || n > MaxNumber {
		return false
	}
	return s&(1<<(n-1)) != 0
}

// Len returns the number of elements
func (s Set) Len() int {
	return bits.OnesCount32(uint32(s & fullSet))
}

// Union returns s ∪ o
func (s Set) Union(o Set) Set {
	return s | o
}

// Intersect returns s ∩ o
func (s Set) Intersect(o Set) Set {
	return s & o
}

// Minus returns the numbers in s that are not in o
func (s Set) Minus(o Set) Set {
	return s &^ o
}

// Matches returns |s ∩ o|, the number of hits of s against o
func (s Set) Matches(o Set) int {
	return bits.OnesCount32(uint32(s & o))
}

// Contains reports whether o is a subset of s
func (s Set) Contains(o Set) bool {
	return o&^s == 0
}

// Numbers returns the elements in ascending order
func (s Set) Numbers() []int {
	out := make([]int, 0, s.Len())
	for v := uint32(s & fullSet); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros32(v)+1)
	}
	return out
}

// Sum returns the sum of the elements
func (s Set) Sum() int {
	sum := 0
	for v := uint32(s & fullSet); v != 0; v &= v - 1 {
		sum += bits.TrailingZeros32(v) + 1
	}
	return sum
}

// Evens returns how many elements are even
func (s Set) Evens() int {
	return bits.OnesCount32(uint32(s & evenMask))
}

// String renders the set as zero-padded numbers, e.g. "01 05 13"
func (s Set) String() string {
	nums := s.Numbers()
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}
