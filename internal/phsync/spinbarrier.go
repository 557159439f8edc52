package phsync

import "sync/atomic"

// SpinBarrier is a Synchroniser with the same contract as Barrier, but
// implemented as a lock-free sense-reversing barrier instead of relying on
// OS blocking primitives: arrival is a single atomic decrement, and
// release is a sense flip that waiters busy-poll for.
type SpinBarrier struct {
	n        int32
	count    atomic.Int32
	sense    atomic.Bool
}

// NewSpinBarrier constructs a SpinBarrier for nThreads participants.
func NewSpinBarrier(nThreads int) (*SpinBarrier, error) {
	if err := checkThreadCount(nThreads); err != nil {
		return nil, err
	}
	sb := &SpinBarrier{n: int32(nThreads)}
	sb.count.Store(sb.n)
	return sb, nil
}

// wait blocks (by spinning) until every participant has arrived at the
// current sense, returning true to exactly the arrival that flips the
// sense for everyone else.
func (sb *SpinBarrier) wait() bool {
	localSense := !sb.sense.Load()

	if sb.count.Add(-1) == 0 {
		sb.count.Store(sb.n)
		sb.sense.Store(localSense)
		return true
	}

	for sb.sense.Load() != localSense {
		// busy wait
	}
	return false
}

// Run implements Synchroniser.
func (sb *SpinBarrier) Run() Role {
	return RoleFromLeader(sb.wait())
}

// Observe implements Synchroniser.
func (sb *SpinBarrier) Observe() {
	sb.wait()
}

// Wait implements Synchroniser.
func (sb *SpinBarrier) Wait() {
	sb.wait()
}

// MakeSpinBarrier is a Factory for SpinBarrier.
func MakeSpinBarrier(nThreads int) (Synchroniser, error) {
	return NewSpinBarrier(nThreads)
}
