// Package manifest describes the shape of a litmus test's shared
// environment: its thread count and its declared variables.
package manifest

import (
	"errors"
	"sort"

	"github.com/mwinsor/phenolph/internal/slot"
)

// ErrNotEnoughThreads is returned when a manifest declares zero threads.
var ErrNotEnoughThreads = errors.New("phenolph: manifest must declare at least one thread")

// VarRecord describes one variable declared by a test: its slot in the
// environment, and its initial value, if any.
type VarRecord struct {
	// Slot is the variable's location in the environment.
	Slot slot.Slot
	// Initial is the variable's initial value. A nil Initial means the
	// variable resets to the type's zero value.
	Initial *int32
}

// Manifest is the ordered description of a test's thread count and
// variables.
//
// Names iterate in sorted order, so that the State produced by reading the
// environment has a canonical, repeatable shape.
type Manifest struct {
	// NThreads is the number of worker threads the test requires. Must be
	// at least one.
	NThreads int
	// Vars maps variable name to its record.
	Vars map[string]VarRecord
}

// New validates and returns a Manifest.
func New(nThreads int, vars map[string]VarRecord) (Manifest, error) {
	if nThreads < 1 {
		return Manifest{}, ErrNotEnoughThreads
	}
	return Manifest{NThreads: nThreads, Vars: vars}, nil
}

// Names returns the manifest's variable names in canonical (sorted) order.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Vars))
	for n := range m.Vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ReserveI32 folds a slot reservation wide enough for every i32 variable in
// the manifest.
func (m Manifest) ReserveI32() slot.Reservation {
	slots := make([]slot.Slot, 0, len(m.Vars))
	for _, v := range m.Vars {
		slots = append(slots, v.Slot)
	}
	return slot.OfSlots(slots)
}
