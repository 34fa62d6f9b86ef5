// Package entropy provides the randomness source for all stochastic
// simulation events. Every weighted pick, spawn roll, and jitter goes
// through a Source so tests can supply deterministic sequences.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// Source yields random values for the simulation.
type Source interface {
	// Float returns a random float64 in [0, 1).
	Float() float64
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// seeded is a math/rand backed Source.
type seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a Source from a seed. A seed of 0 draws a fresh
// seed from crypto/rand.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *seeded) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// CryptoSeed generates a seed using crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Should never happen; a fixed seed is a safe default.
		return 1
	}
	n := binary.LittleEndian.Uint64(buf[:]) >> 1
	return int64(n)
}

// Scripted replays a fixed sequence of floats, wrapping when exhausted.
// Intended for tests.
type Scripted struct {
	Values []float64
	i      int
}

// NewScripted builds a scripted Source from the given values.
// An empty sequence always yields 0.5.
func NewScripted(values ...float64) *Scripted {
	return &Scripted{Values: values}
}

func (s *Scripted) Float() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	return v
}

func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Float() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
