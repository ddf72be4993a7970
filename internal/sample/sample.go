// Package sample picks random variants from persona and style data.
//
// Randomness is always passed in explicitly so callers can substitute a
// deterministic source in tests.
package sample

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the randomness needed to pick a variant.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a seeded source. The same seed yields the same picks.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeeded returns a source seeded from the wall clock.
func NewTimeSeeded() *rand.Rand {
	return New(uint64(time.Now().UnixNano()))
}

// Pick returns one entry of variants chosen uniformly by src.
// It reports false when variants is empty.
func Pick(src Source, variants []string) (string, bool) {
	if len(variants) == 0 {
		return "", false
	}
	if len(variants) == 1 {
		return variants[0], true
	}
	return variants[src.IntN(len(variants))], true
}

// Fixed is a Source that always selects index i (modulo the list length).
type Fixed int

// IntN implements Source.
func (f Fixed) IntN(n int) int {
	i := int(f) % n
	if i < 0 {
		i += n
	}
	return i
}

// Locked wraps src so it can be shared between goroutines.
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (l *lockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}
