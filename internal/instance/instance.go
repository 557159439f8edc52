// Package instance manages one test's population of thread automata
// across a single rotation cycle: replicating the automaton template
// under a (possibly permuted) ordering, spawning one goroutine per
// thread, and joining all of them to recover the cycle's halt verdict.
package instance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mwinsor/phenolph/internal/fsa"
	"github.com/mwinsor/phenolph/internal/halt"
	"github.com/mwinsor/phenolph/internal/permute"
)

// RunThread is the per-goroutine body a Set drives to completion: given
// a Ready automaton, it advances it through Runnable/Waiting/Observable
// until Done, however many intermediate transitions that takes.
type RunThread func(fsa.Ready) fsa.Done

// ErrThreadPanic reports that a worker thread terminated abnormally.
// Set.Run recovers every goroutine's panic itself so that one thread
// dying doesn't take the whole process down with it; the test run is
// still considered failed and Run surfaces this error to its caller.
type ErrThreadPanic struct {
	// Tid is the thread id that panicked.
	Tid int
	// Value is the recovered panic value.
	Value any
}

func (e *ErrThreadPanic) Error() string {
	return fmt.Sprintf("phenolph: thread %d panicked: %v", e.Tid, e.Value)
}

// Set is a population of thread automata built from one shared template,
// ready to be permuted and spawned for a single rotation cycle.
type Set struct {
	automata []fsa.Ready
}

// NewSet constructs a Set of n automata, one per tid, every one sharing
// the given environment, entry point, synchroniser and halt signal.
//
// NewSet itself does not build the synchroniser or environment; those
// are expected to already be sized for n threads by the caller (see
// package runner), since they must be shared identically across every
// automaton in the set.
func NewSet(n int, factory func(tid int) fsa.Ready) (Set, error) {
	if n < 1 {
		return Set{}, fmt.Errorf("phenolph: instance set needs at least one thread, got %d", n)
	}
	automata := make([]fsa.Ready, n)
	for tid := range automata {
		automata[tid] = factory(tid)
	}
	return Set{automata: automata}, nil
}

// Permute reorders the set's automata in place using p. The reordering
// changes which goroutine plays which tid's role on the next Run, but
// every automaton still carries its own fixed tid forward with it.
func (s Set) Permute(p permute.Permuter) {
	items := make([]permute.HasTid, len(s.automata))
	for i, a := range s.automata {
		items[i] = a
	}
	p.Permute(items)
	for i, item := range items {
		s.automata[i] = item.(fsa.Ready)
	}
}

// Run spawns one goroutine per automaton via run, joins all of them,
// and returns the halt type every automaton agreed on.
//
// Every automaton in a set necessarily finishes with the same halt
// type, since the halt signal they all check is the single shared cell
// set by whichever thread played observer when the rotation ended; Run
// returns the halt type of the set's first automaton, which is fine
// because they're all equal.
func (s Set) Run(ctx context.Context, run RunThread) (halt.Type, error) {
	g, _ := errgroup.WithContext(ctx)
	done := make([]fsa.Done, len(s.automata))
	for i, automaton := range s.automata {
		i, automaton := i, automaton
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &ErrThreadPanic{Tid: automaton.Tid(), Value: r}
				}
			}()
			done[i] = run(automaton)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	if len(done) == 0 {
		return 0, fmt.Errorf("phenolph: instance set had no automata to join")
	}
	return done[0].HaltType, nil
}
