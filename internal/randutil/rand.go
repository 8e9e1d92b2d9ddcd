// Package randutil derives reproducible random streams for game generation.
package randutil

import (
	"hash/fnv"
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with splitmix so nearby seeds give
// unrelated sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns an independent generator for a named consumer of a seed,
// e.g. one per strategy in a comparison. The same (seed, name) pair always
// yields the same sequence.
func Stream(seed int64, name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	return New(seed ^ int64(mix(h.Sum64())))
}

// Seed returns the explicit seed when set, otherwise one derived from the
// current time. Callers log the result so a run can be replayed.
func Seed(explicit *int64) int64 {
	if explicit != nil {
		return *explicit
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
