package phsync_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwinsor/phenolph/internal/phsync"
)

// factories lists every Synchroniser implementation, so the phase
// invariant (exactly one observer, every other thread a waiter, per
// cycle) gets checked against all three.
var factories = map[string]phsync.Factory{
	"spinner":     phsync.MakeSpinner,
	"barrier":     phsync.MakeBarrier,
	"spinbarrier": phsync.MakeSpinBarrier,
}

func TestSynchroniser_RejectsZeroThreads(t *testing.T) {
	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			_, err := factory(0)
			assert.Error(t, err)
		})
	}
}

// TestSynchroniser_ExactlyOneObserverPerCycle runs N threads through
// many run/observe-or-wait cycles and checks that, every cycle,
// exactly one thread is elected observer and the rest are waiters,
// across every Synchroniser variant.
func TestSynchroniser_ExactlyOneObserverPerCycle(t *testing.T) {
	const (
		nThreads = 4
		nCycles  = 2000
	)

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			synchroniser, err := factory(nThreads)
			require.NoError(t, err)

			var mu sync.Mutex
			observerCount := make([]int, nCycles)
			waiterCount := make([]int, nCycles)

			var wg sync.WaitGroup
			wg.Add(nThreads)
			for i := 0; i < nThreads; i++ {
				go func() {
					defer wg.Done()
					for c := 0; c < nCycles; c++ {
						switch synchroniser.Run() {
						case phsync.RoleObserver:
							mu.Lock()
							observerCount[c]++
							mu.Unlock()
							synchroniser.Observe()
						case phsync.RoleWaiter:
							mu.Lock()
							waiterCount[c]++
							mu.Unlock()
							synchroniser.Wait()
						}
					}
				}()
			}
			wg.Wait()

			for c := 0; c < nCycles; c++ {
				assert.Equalf(t, 1, observerCount[c], "cycle %d observer count", c)
				assert.Equalf(t, nThreads-1, waiterCount[c], "cycle %d waiter count", c)
			}
		})
	}
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "observer", phsync.RoleObserver.String())
	assert.Equal(t, "waiter", phsync.RoleWaiter.String())
}

func TestRoleFromLeader(t *testing.T) {
	assert.Equal(t, phsync.RoleObserver, phsync.RoleFromLeader(true))
	assert.Equal(t, phsync.RoleWaiter, phsync.RoleFromLeader(false))
}
