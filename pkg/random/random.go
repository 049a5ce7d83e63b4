// Package random provides the random source shared by the key generator and the game modules.
//
// The default source delegates to the top-level math/rand/v2 functions, which are safe for
// concurrent use. Seeded sources are guarded by a mutex so that a single deterministic
// generator can be shared across requests in tests and replay tooling.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the minimal random interface used across the module.
type Source interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0).
	Float64() float64
	// IntN returns a pseudo-random number in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Default returns a source backed by the process-wide generator.
func Default() Source {
	return globalSource{}
}

// Locked wraps a *rand.Rand with a mutex.
type Locked struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeeded returns a deterministic, concurrency-safe source.
func NewSeeded(seed1, seed2 uint64) *Locked {
	return &Locked{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// Float64 implements Source.
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// IntN implements Source.
func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

// Fixed is a scripted source for tests: it replays the given values in order and
// then repeats the last one.
type Fixed struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
}

// NewFixed creates a scripted source.
func NewFixed(floats []float64, ints []int) *Fixed {
	return &Fixed{floats: floats, ints: ints}
}

// Float64 implements Source.
func (f *Fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.floats) == 0 {
		return 0.5
	}
	v := f.floats[0]
	if len(f.floats) > 1 {
		f.floats = f.floats[1:]
	}
	return v
}

// IntN implements Source. Scripted values are clamped into [0, n).
func (f *Fixed) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0]
	if len(f.ints) > 1 {
		f.ints = f.ints[1:]
	}
	if v < 0 {
		v = 0
	}
	return v % n
}
