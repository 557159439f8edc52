package phsync

import "sync"

// Barrier is a Synchroniser built from a generation-counted condition
// variable, in the same mutex-guarded-counter-plus-condvar shape as
// ilock.Mutex: callers register their arrival under the lock, and the
// last arrival to register broadcasts the waiters awake.
//
// Each phase of the run/observe/wait protocol corresponds to one barrier
// wait; the "leader" of a wait (the thread whose arrival completed it) is
// nominated as the observer.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	n          int
	count      int
	generation uint64
}

// NewBarrier constructs a Barrier for nThreads participants.
func NewBarrier(nThreads int) (*Barrier, error) {
	if err := checkThreadCount(nThreads); err != nil {
		return nil, err
	}
	b := &Barrier{n: nThreads}
	b.cond = sync.NewCond(&b.mu)
	return b, nil
}

// wait blocks until all n participants have arrived at this generation,
// returning true to exactly the arrival that completed it.
func (b *Barrier) wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.count++
	if b.count == b.n {
		b.count = 0
		b.generation++
		b.cond.Broadcast()
		return true
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	return false
}

// Run implements Synchroniser.
func (b *Barrier) Run() Role {
	return RoleFromLeader(b.wait())
}

// Observe implements Synchroniser.
func (b *Barrier) Observe() {
	b.wait()
}

// Wait implements Synchroniser.
func (b *Barrier) Wait() {
	b.wait()
}

// MakeBarrier is a Factory for Barrier.
func MakeBarrier(nThreads int) (Synchroniser, error) {
	return NewBarrier(nThreads)
}
