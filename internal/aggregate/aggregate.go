// Package aggregate implements the observer: the role that, once per
// cycle, reads the shared environment, classifies it, folds it into a
// running histogram of observed states, resets the environment, and
// decides whether the run should now halt or rotate.
//
// Per spec, Observe may only be called by the thread the synchroniser has
// just elected as observer for this cycle; the phase invariant upheld by
// package phsync is what makes it safe for Aggregator to touch the shared
// environment and its own map without any locking of its own.
package aggregate

import (
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/halt"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/outcome"
	"github.com/mwinsor/phenolph/internal/state"
)

// Checker is the polymorphic capability for classifying an environment's
// state as pass/fail/unknown. Checkers must be safely shareable across
// threads, since in general the observer role migrates between OS
// threads across rotations.
type Checker interface {
	Check(e *env.Env) outcome.Outcome
}

// constantChecker is a Checker that ignores the environment and always
// returns the same outcome; the Unknown instance of it is how checking
// gets disabled without special-casing the aggregator.
type constantChecker outcome.Outcome

func (c constantChecker) Check(*env.Env) outcome.Outcome {
	return outcome.Outcome(c)
}

// UnknownChecker is a Checker that always reports outcome.Unknown,
// available so state checking can be disabled without removing the
// checker from the observation pipeline entirely.
var UnknownChecker Checker = constantChecker(outcome.Unknown)

// Constant returns a Checker that always reports o, regardless of the
// environment it is given.
func Constant(o outcome.Outcome) Checker {
	return constantChecker(o)
}

// Aggregator accumulates observed states across a test run's lifetime: one
// per test (not per rotation cycle), since rotations share the same
// shared state and only change which OS thread plays which test-thread
// role.
type Aggregator struct {
	states     map[state.Key]state.Entry
	iterations uint64
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{states: make(map[state.Key]state.Entry)}
}

// Observe performs one full observation cycle:
//  1. snapshots the environment's valuation;
//  2. increments the iteration counter, so that it counts this
//     observation;
//  3. looks the state up, incrementing its Info if seen before, or
//     classifying it with checker and inserting a fresh Info (whose
//     first iteration is the just-incremented count) if not;
//  4. resets the environment to its manifest-declared initial values;
//  5. evaluates haltRules against a summary of this observation, and
//     returns the maximum firing HaltType, if any fired.
func (a *Aggregator) Observe(e *env.Env, m manifest.Manifest, checker Checker, haltRules []halt.Rule) (halt.Type, bool) {
	valuation := e.Valuation(m)
	key := valuation.AsKey()
	a.iterations++ // 1-based, covers this observation

	entry, seen := a.states[key]
	var lastOutcome outcome.Outcome
	if seen {
		entry.Info = entry.Info.Inc()
		lastOutcome = entry.Info.Outcome
	} else {
		o := checker.Check(e)
		entry = state.Entry{State: valuation, Info: state.NewInfo(o, a.iterations)}
		lastOutcome = o
	}
	a.states[key] = entry

	e.Reset(m)

	return halt.Evaluate(haltRules, halt.Summary{Iteration: a.iterations, LastOutcome: lastOutcome})
}

// Iterations returns the number of observations made so far.
func (a *Aggregator) Iterations() uint64 {
	return a.iterations
}

// IntoReport drains the aggregator's state map into a state.Report,
// computing the aggregate outcome as the maximum over every per-state
// outcome (or nil if no states were observed).
func (a *Aggregator) IntoReport() state.Report {
	report := state.Report{States: make([]state.Entry, 0, len(a.states))}
	var agg *outcome.Outcome
	for _, entry := range a.states {
		report.States = append(report.States, entry)
		if agg == nil {
			o := entry.Info.Outcome
			agg = &o
		} else {
			*agg = outcome.Max(*agg, entry.Info.Outcome)
		}
	}
	report.Aggregate = agg
	return report
}
