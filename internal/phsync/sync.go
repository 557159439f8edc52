// Package phsync implements the per-iteration thread synchronisers that
// drive the litmus-test worker loop through its run/observe/wait phases.
//
// A Synchroniser must guarantee the phase invariant: given N threads
// repeatedly calling, in order, Run and then either Observe (if Run
// returned RoleObserver) or Wait (if RoleWaiter), at every quiescent
// moment either all N threads are about to call Run, or exactly one is
// about to call Observe and the other N-1 are about to call Wait.
//
// Implementing this interface incorrectly breaks the lockless design of
// the aggregator and environment: both rely on the phase invariant
// guaranteeing there is never more than one observer at a time.
package phsync

import (
	"errors"
	"fmt"
)

// ErrTooManyThreads is returned when a Synchroniser's internal counter
// cannot represent the requested thread count.
var ErrTooManyThreads = errors.New("phenolph: too many threads for this synchroniser")

// Role is the outcome of a Run call: whether the calling thread should
// proceed to Observe or to Wait.
type Role int

const (
	// RoleWaiter means the thread should call Wait next.
	RoleWaiter Role = iota
	// RoleObserver means the thread should call Observe next.
	RoleObserver
)

func (r Role) String() string {
	if r == RoleObserver {
		return "observer"
	}
	return "waiter"
}

// RoleFromLeader maps a barrier's "is leader" result to a Role.
func RoleFromLeader(isLeader bool) Role {
	if isLeader {
		return RoleObserver
	}
	return RoleWaiter
}

// Synchroniser coordinates N worker threads through the run/observe/wait
// protocol described in the package doc.
type Synchroniser interface {
	// Run should be called once per iteration, after running the test
	// body. It returns which role the caller should take for the rest of
	// the cycle.
	Run() Role

	// Observe should be called by the thread Run just elected as
	// observer, after it has finished observing and resetting the shared
	// environment.
	Observe()

	// Wait should be called by every thread Run did not elect as
	// observer.
	Wait()
}

// Factory constructs a Synchroniser sized for nThreads threads.
type Factory func(nThreads int) (Synchroniser, error)

func checkThreadCount(nThreads int) error {
	if nThreads < 1 {
		return fmt.Errorf("phenolph: synchroniser needs at least one thread, got %d", nThreads)
	}
	return nil
}
