// Package runner ties together the environment, synchroniser, thread
// automata, observer and halt rules into the end-to-end execution of a
// single test: build once, then run rotation after rotation until a
// halt rule requests Exit.
package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/fsa"
	"github.com/mwinsor/phenolph/internal/halt"
	"github.com/mwinsor/phenolph/internal/instance"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/permute"
	"github.com/mwinsor/phenolph/internal/phsync"
	"github.com/mwinsor/phenolph/internal/shared"
	"github.com/mwinsor/phenolph/internal/state"
	"github.com/mwinsor/phenolph/internal/testapi"
)

// Builder collects the configuration needed to build a Runner for one
// test entry point.
type Builder struct {
	// Entry is the test being run.
	Entry testapi.Entry
	// HaltRules decide when a rotation cycle should end the test, and
	// whether it should rotate or exit.
	HaltRules []halt.Rule
	// Sync constructs the synchroniser used for each rotation.
	Sync phsync.Factory
	// Permuter reorders threads between rotations. A nil Permuter
	// leaves thread order untouched.
	Permuter permute.Permuter
	// Check enables state classification via Entry's own checker;
	// when false, every state classifies as outcome.Unknown.
	Check bool
	// Logger receives structured logs of rotation boundaries, halt
	// decisions and the final aggregate outcome. A nil Logger runs
	// silently.
	Logger *zap.Logger
}

// Build realises a Builder into a Runner, allocating the shared
// environment and resetting it to its manifest-declared initial
// values.
func (b Builder) Build() (*Runner, error) {
	m, err := b.Entry.Manifest()
	if err != nil {
		return nil, fmt.Errorf("phenolph: building manifest: %w", err)
	}

	e, err := env.Allocate(m.ReserveI32())
	if err != nil {
		return nil, fmt.Errorf("phenolph: allocating environment: %w", err)
	}
	e.Reset(m)

	checker := aggregate.UnknownChecker
	if b.Check {
		checker = b.Entry.Checker()
	}

	permuter := b.Permuter
	if permuter == nil {
		permuter = permute.Nop{}
	}

	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		entry:     b.Entry,
		manifest:  m,
		env:       e,
		haltRules: b.HaltRules,
		sync:      b.Sync,
		checker:   checker,
		permuter:  permuter,
		agg:       shared.New(aggregate.New()),
		log:       logger,
	}, nil
}

// Runner drives a single test's environment through repeated rotation
// cycles, collecting observations in its aggregator until a halt rule
// requests Exit.
type Runner struct {
	entry     testapi.Entry
	manifest  manifest.Manifest
	env       *env.Env
	haltRules []halt.Rule
	sync      phsync.Factory
	checker   aggregate.Checker
	permuter  permute.Permuter
	// agg is held behind a reference-counted handle so that, at Exit,
	// the runner can confirm every rotation's automata released their
	// clone before trusting the aggregator's contents: see package
	// shared's doc comment.
	agg *shared.Handle[aggregate.Aggregator]
	log *zap.Logger

	rotations int
}

// Run executes rotation cycles until the test exits, then returns the
// accumulated observation report.
func (r *Runner) Run(ctx context.Context) (state.Report, error) {
	for {
		r.rotations++
		r.log.Debug("rotation starting", zap.Int("rotation", r.rotations))

		haltType, err := r.runRotation(ctx)
		if err != nil {
			r.log.Error("rotation failed", zap.Int("rotation", r.rotations), zap.Error(err))
			return state.Report{}, err
		}
		r.log.Info("rotation finished", zap.Int("rotation", r.rotations), zap.Stringer("halt", haltType))

		if haltType == halt.Exit {
			agg, err := r.agg.Unwrap()
			if err != nil {
				r.log.Error("finalising report", zap.Error(err))
				return state.Report{}, err
			}
			report := agg.IntoReport()
			outcome := "absent"
			if report.Aggregate != nil {
				outcome = report.Aggregate.String()
			}
			r.log.Info("run complete", zap.Int("iterations", int(agg.Iterations())), zap.String("outcome", outcome))
			return report, nil
		}
		// Rotate: loop again with a fresh synchroniser and halt signal.
	}
}

// runRotation spawns one goroutine per thread, runs them to completion
// under a fresh synchroniser and halt signal, and returns the halt
// type the cycle agreed on.
func (r *Runner) runRotation(ctx context.Context) (halt.Type, error) {
	sync, err := r.sync(r.manifest.NThreads)
	if err != nil {
		return 0, fmt.Errorf("phenolph: building synchroniser: %w", err)
	}
	sig := halt.NewSignal()

	clones := make([]shared.Handle[aggregate.Aggregator], r.manifest.NThreads)
	set, err := instance.NewSet(r.manifest.NThreads, func(tid int) fsa.Ready {
		clones[tid] = r.agg.Clone()
		return fsa.NewReady(tid, r.env, r.entry, sync, sig)
	})
	if err != nil {
		return 0, err
	}
	set.Permute(r.permuter)

	return set.Run(ctx, func(ready fsa.Ready) fsa.Done {
		return r.runThread(ready, clones[ready.Tid()])
	})
}

// runThread advances one automaton from Ready to Done, handling the
// observer role itself whenever it's elected to it. h is this
// automaton's clone of the shared aggregator handle; it is dropped
// unconditionally on the way out, including when a panic unwinds
// through this frame, so instance.Set.Run's own panic recovery never
// leaves an un-dropped clone behind.
func (r *Runner) runThread(ready fsa.Ready, h shared.Handle[aggregate.Aggregator]) fsa.Done {
	defer h.Drop()

	current := ready.Start()
	for {
		switch outcome := current.Run().(type) {
		case fsa.DoneOutcome:
			return outcome.Done
		case fsa.WaitOutcome:
			current = outcome.Waiting.Wait()
		case fsa.ObserveOutcome:
			current = r.observe(outcome.Observable, h.Get())
		}
	}
}

// observe performs the shared observation step when this thread has
// been elected observer for the cycle: classify the current state,
// reset the environment, and either kill the rotation or relinquish
// back to running.
func (r *Runner) observe(o fsa.Observable, agg *aggregate.Aggregator) fsa.Runnable {
	haltType, fired := agg.Observe(o.Env(), r.manifest, r.checker, r.haltRules)
	if fired {
		r.log.Debug("halt rule fired", zap.Stringer("type", haltType), zap.Uint64("iteration", agg.Iterations()))
		return o.Kill(haltType)
	}
	return o.Relinquish()
}
