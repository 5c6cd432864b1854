package grid

import (
	"math/rand/v2"
)

// Source supplies the randomness used for spawning.
// Implementations must be deterministic for a given seed to keep games reproducible.
type Source interface {
	// Pick returns a uniformly distributed index in [0, n), n > 0
	Pick(n int) int
	// PickWeighted returns an index into weights chosen proportionally to its weight.
	// All weights are positive.
	PickWeighted(weights []int) int
}

// RandSource is the production Source backed by a PCG generator
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a seeded source; equal seeds yield equal sequences
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandSource) Pick(n int) int {
	return s.rng.IntN(n)
}

func (s *RandSource) PickWeighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	r := s.rng.IntN(total)
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	// Unreachable with positive weights
	return len(weights) - 1
}
