// Package shuffle implements an unbiased in-place Fisher-Yates shuffle over an
// injectable random source.
package shuffle

import "math/rand/v2"

// Source produces uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// Default returns a source backed by the process-wide generator.
// It is safe for concurrent use.
func Default() Source {
	return globalSource{}
}

// NewSource returns a deterministic source for the given seed.
// The returned source is not safe for concurrent use.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes s in place. A nil rng uses Default.
func Shuffle[T any](s []T, rng Source) {
	if rng == nil {
		rng = Default()
	}
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
