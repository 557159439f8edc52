package phsync

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Spinner is the bespoke, low-overhead synchroniser: a single signed
// counter initialised to nThreads.
//
// When the counter is positive, threads are still arriving for the run
// phase; when it goes negative, the population is synchronising on the
// observer's wait/observe phase. Run and Wait perform the mirror-image
// atomic add; the asymmetry between the observer and everyone else lives
// entirely in the role Run hands back, not in any difference between
// Observe and Wait — Observe is intentionally identical to Wait, because
// the observer's participation in that phase is what flips the counter's
// sign back and releases the next Run phase.
type Spinner struct {
	nThreads int64
	count    atomic.Int64
}

// NewSpinner constructs a Spinner with room for nThreads threads.
//
// Fails with ErrTooManyThreads if nThreads cannot be represented by the
// counter (in practice, never on a 64-bit counter).
func NewSpinner(nThreads int) (*Spinner, error) {
	if err := checkThreadCount(nThreads); err != nil {
		return nil, err
	}
	if int64(nThreads) > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyThreads, nThreads)
	}
	s := &Spinner{nThreads: int64(nThreads)}
	s.count.Store(s.nThreads)
	return s, nil
}

// Run implements Synchroniser.
func (s *Spinner) Run() Role {
	count := s.count.Add(-1) + 1 // pre-decrement value
	if count <= 0 {
		panic(fmt.Sprintf("phenolph: spinner count non-positive during run phase (=%d)", count))
	}

	if count == 1 {
		// We were the last thread to be waited upon.
		s.count.Store(-s.nThreads)
		return RoleObserver
	}

	for s.count.Load() >= 0 {
		// busy wait
	}
	return RoleWaiter
}

// Observe implements Synchroniser.
//
// Observe is identical to Wait: see the type doc for why.
func (s *Spinner) Observe() {
	s.Wait()
}

// Wait implements Synchroniser.
func (s *Spinner) Wait() {
	count := s.count.Add(1) - 1 // pre-increment value
	if count >= 0 {
		panic(fmt.Sprintf("phenolph: spinner count non-negative while waiting (=%d)", count))
	}

	if count == -1 {
		// We were the last thread to be waited upon.
		s.count.Store(s.nThreads)
		return
	}

	for s.count.Load() <= 0 {
		// busy wait
	}
}

// MakeSpinner is a Factory for Spinner.
func MakeSpinner(nThreads int) (Synchroniser, error) {
	return NewSpinner(nThreads)
}
