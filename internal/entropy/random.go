// Package entropy provides the seedable randomness source threaded
// through every stochastic subsystem. Fixing the seed makes a whole
// simulation run reproducible.
package entropy

import (
	"math/rand"
	"sync"
)

// Source wraps a seeded generator behind a mutex so player actions
// arriving off the simulation goroutine stay safe.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a deterministic source from seed.
func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Uniform returns a uniform value in [min, max).
func (s *Source) Uniform(min, max float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + (max-min)*s.rng.Float64()
}

// Gauss returns a normally distributed value.
func (s *Source) Gauss(mean, stddev float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mean + stddev*s.rng.NormFloat64()
}

// IntBetween returns a uniform integer in [min, max] inclusive.
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

// IndexN returns a uniform index in [0, n).
func (s *Source) IndexN(n int) int {
	if n <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
