// Package rng provides the random source shared by the simulation engines.
// Engines never reach for a package-level generator; they receive a Source so tests can pin a seed.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source is the subset of *rand.Rand the engines need.
// Implementations are not required to be safe for concurrent use.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

var _ Source = (*rand.Rand)(nil)

// New returns a deterministic source for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed resolves a configured seed: zero means "pick one from the wall clock".
func Seed(configured uint64) uint64 {
	if configured != 0 {
		return configured
	}
	return uint64(time.Now().UnixNano())
}

// IntRange returns a uniform value in [lo, hi], both inclusive.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.IntN(hi-lo+1)
}

// Chance reports whether an event with probability p happens on this roll.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Shuffle permutes s in place with Fisher–Yates: for i from the last index down to 1,
// swap s[i] with a uniform s[j], j in [0, i].
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
