// Package permute supplies strategies for reordering the thread automata
// inside a test instance between rotations, so that a fixed static
// thread-to-role mapping isn't the only schedule ever exercised.
package permute

import "math/rand"

// HasTid is implemented by anything carrying a thread identifier, which
// is all a Permuter needs to know about the things it reorders.
type HasTid interface {
	Tid() int
}

// Permuter reorders a slice of thread handles in place.
type Permuter interface {
	Permute(items []HasTid)
}

// Factory builds a fresh Permuter, so that stateful permuters (e.g. ones
// holding their own RNG) get their own instance per run.
type Factory func() Permuter

// Nop is a Permuter that leaves its input untouched.
type Nop struct{}

// Permute implements Permuter.
func (Nop) Permute([]HasTid) {}

// MakeNop is a Factory for Nop.
func MakeNop() Permuter { return Nop{} }

// Random is a Permuter backed by math/rand's default source, shuffling
// its input with a Fisher-Yates pass.
type Random struct{}

// Permute implements Permuter.
func (Random) Permute(items []HasTid) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// MakeRandom is a Factory for Random.
func MakeRandom() Permuter { return Random{} }
