package native

import (
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/slot"
)

var (
	slotX  = slot.Slot{IsAtomic: true, Index: 0}
	slotY  = slot.Slot{IsAtomic: true, Index: 1}
	slotR0 = slot.Slot{IsAtomic: false, Index: 0}
	slotR1 = slot.Slot{IsAtomic: false, Index: 1}
)

// TrivialPass builds a single-thread test that stores 1 into x and
// passes iff x reads back as 1.
func TrivialPass() Entry {
	m, _ := manifest.New(1, map[string]manifest.VarRecord{
		"x": {Slot: slotX},
	})
	return Entry{
		ManifestValue: m,
		RunFunc: func(_ int, e *env.Env) {
			e.Set(slotX, 1)
		},
		CheckFunc: func(e *env.Env) outcome.Outcome {
			return outcome.FromPassBool(e.Get(slotX) == 1)
		},
	}
}

// StoreBuffering builds the classic two-thread store-buffering litmus
// test: each thread stores to its own atomic and loads the other's,
// recording the load into a private non-atomic register. The test
// passes unless both registers read back zero, the outcome forbidden
// by sequential consistency.
func StoreBuffering() Entry {
	m, _ := manifest.New(2, map[string]manifest.VarRecord{
		"x":  {Slot: slotX},
		"y":  {Slot: slotY},
		"r0": {Slot: slotR0},
		"r1": {Slot: slotR1},
	})
	return Entry{
		ManifestValue: m,
		RunFunc: func(tid int, e *env.Env) {
			switch tid {
			case 0:
				e.Set(slotX, 1)
				e.Set(slotR0, e.Get(slotY))
			case 1:
				e.Set(slotY, 1)
				e.Set(slotR1, e.Get(slotX))
			}
		},
		CheckFunc: func(e *env.Env) outcome.Outcome {
			r0, r1 := e.Get(slotR0), e.Get(slotR1)
			return outcome.FromPassBool(r0 != 0 || r1 != 0)
		},
	}
}

// ResetClearsNonAtomics builds an N-thread test whose body fails loudly
// (via panic) if it ever observes a non-zero initial read of its
// register slot. Every thread shares that one register, so with one
// thread a panic means the environment wasn't actually reset to its
// manifest-declared values between run phases; with more than one, a
// sibling's store earlier in the same run phase also triggers it.
func ResetClearsNonAtomics(nThreads int) Entry {
	m, _ := manifest.New(nThreads, map[string]manifest.VarRecord{
		"r": {Slot: slot.Slot{IsAtomic: false, Index: 0}},
	})
	r := slot.Slot{IsAtomic: false, Index: 0}
	return Entry{
		ManifestValue: m,
		RunFunc: func(tid int, e *env.Env) {
			if e.Get(r) != 0 {
				panic("phenolph: register was not reset between run phases")
			}
			e.Set(r, int32(tid+1))
		},
		CheckFunc: func(e *env.Env) outcome.Outcome {
			return outcome.Unknown
		},
	}
}
