// Package env implements the typed, slot-addressed shared environment that
// litmus test bodies load from and store to.
package env

import (
	"errors"
	"sync/atomic"

	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/slot"
	"github.com/mwinsor/phenolph/internal/state"
)

// ErrAlloc is returned when the environment's backing storage cannot be
// allocated.
var ErrAlloc = errors.New("phenolph: couldn't allocate the shared environment")

// maxSlots bounds how many cells of one atomicity we will try to allocate
// for one scalar type, guarding against a pathological reservation driving
// an out-of-memory panic rather than a reported error.
const maxSlots = 1 << 24

// Env is the shared environment of 32-bit signed integer variables that a
// litmus test's threads load from and store to.
//
// Atomic slots support relaxed load/store from any thread sharing this
// Env. Non-atomic slots have no synchronisation of their own: during the
// run phase a test body may use them only in ways the body itself
// coordinates (such as one register per thread), and during observation
// the observer has them to itself. Env does not enforce either rule,
// leaving environment exclusivity entirely to the synchroniser's phase
// invariant rather than to a lock here.
type Env struct {
	atomicI32 []atomic.Int32
	nonAtomic []int32
}

// Allocate allocates a new, zero-initialised environment sized to res.
func Allocate(res slot.Reservation) (*Env, error) {
	if res.Atomic < 0 || res.NonAtomic < 0 ||
		res.Atomic > maxSlots || res.NonAtomic > maxSlots {
		return nil, ErrAlloc
	}
	return &Env{
		atomicI32: make([]atomic.Int32, res.Atomic),
		nonAtomic: make([]int32, res.NonAtomic),
	}, nil
}

// Get reads the value at slot s. Out-of-range slots return an unspecified
// but valid value (zero) rather than panicking.
func (e *Env) Get(s slot.Slot) int32 {
	if s.IsAtomic {
		if s.Index < 0 || s.Index >= len(e.atomicI32) {
			return 0
		}
		return e.atomicI32[s.Index].Load()
	}
	if s.Index < 0 || s.Index >= len(e.nonAtomic) {
		return 0
	}
	return e.nonAtomic[s.Index]
}

// Set writes v to slot s. Out-of-range slots are a no-op.
func (e *Env) Set(s slot.Slot, v int32) {
	if s.IsAtomic {
		if s.Index < 0 || s.Index >= len(e.atomicI32) {
			return
		}
		e.atomicI32[s.Index].Store(v)
		return
	}
	if s.Index < 0 || s.Index >= len(e.nonAtomic) {
		return
	}
	e.nonAtomic[s.Index] = v
}

// Reset writes every variable in m's record to its initial value (or zero,
// if none was declared). Only the observer thread may call this, per the
// phase invariant.
func (e *Env) Reset(m manifest.Manifest) {
	for _, name := range m.Names() {
		rec := m.Vars[name]
		var v int32
		if rec.Initial != nil {
			v = *rec.Initial
		}
		e.Set(rec.Slot, v)
	}
}

// Valuation reads every variable declared in m, in m's canonical order,
// producing the State observed right now. Only meaningful to call when no
// other thread is concurrently storing to the environment, i.e. from the
// observer.
func (e *Env) Valuation(m manifest.Manifest) state.State {
	names := m.Names()
	values := make(map[string]int32, len(names))
	for _, name := range names {
		values[name] = e.Get(m.Vars[name].Slot)
	}
	return state.New(names, values)
}
