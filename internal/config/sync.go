package config

import (
	"fmt"

	"github.com/mwinsor/phenolph/internal/phsync"
)

// SyncStrategy names one of the synchroniser implementations in package
// phsync.
type SyncStrategy string

const (
	// SyncSpinner selects the single-atomic-counter synchroniser.
	SyncSpinner SyncStrategy = "spinner"
	// SyncBarrier selects the condvar-based barrier.
	SyncBarrier SyncStrategy = "barrier"
	// SyncSpinBarrier selects the lock-free sense-reversing barrier.
	SyncSpinBarrier SyncStrategy = "spinbarrier"
)

// AllSyncStrategies returns every known synchronisation strategy.
func AllSyncStrategies() []SyncStrategy {
	return []SyncStrategy{SyncSpinner, SyncBarrier, SyncSpinBarrier}
}

// Factory resolves the strategy to the phsync.Factory it names.
func (s SyncStrategy) Factory() (phsync.Factory, error) {
	switch s {
	case SyncSpinner:
		return phsync.MakeSpinner, nil
	case SyncBarrier:
		return phsync.MakeBarrier, nil
	case SyncSpinBarrier:
		return phsync.MakeSpinBarrier, nil
	default:
		return nil, fmt.Errorf("phenolph: unknown sync strategy %q", s)
	}
}

// String implements pflag.Value / fmt.Stringer.
func (s SyncStrategy) String() string { return string(s) }

// Set implements pflag.Value, so a SyncStrategy can be bound directly to
// a CLI flag with validation for free.
func (s *SyncStrategy) Set(v string) error {
	parsed := SyncStrategy(v)
	if _, err := parsed.Factory(); err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (SyncStrategy) Type() string { return "sync" }
