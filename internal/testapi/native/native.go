// Package native provides statically linked test entries: litmus tests
// written directly in Go and compiled into this module, as opposed to
// ones loaded at runtime by package pluginloader.
//
// Native entries are mostly useful for exercising the runner itself,
// but nothing stops an embedder from building a real test this way.
package native

import (
	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/outcome"
)

// Body is one thread's test function: given its thread ID and the
// shared environment, it performs one iteration's worth of loads and
// stores.
type Body func(tid int, e *env.Env)

// CheckFunc classifies the current state of the environment.
type CheckFunc func(e *env.Env) outcome.Outcome

// Entry is a testapi.Entry built from plain Go values: a manifest and a
// thread body, with an optional classification function.
type Entry struct {
	// ManifestValue is the manifest returned by Manifest.
	ManifestValue manifest.Manifest
	// RunFunc is the thread body invoked once per iteration.
	RunFunc Body
	// CheckFunc classifies the environment, if state checking is
	// wanted. A nil CheckFunc makes Checker return
	// aggregate.UnknownChecker.
	CheckFunc CheckFunc
}

// Manifest implements testapi.Entry.
func (e Entry) Manifest() (manifest.Manifest, error) {
	return e.ManifestValue, nil
}

// Run implements testapi.Entry.
func (e Entry) Run(tid int, ev *env.Env) {
	e.RunFunc(tid, ev)
}

// Checker implements testapi.Entry.
func (e Entry) Checker() aggregate.Checker {
	if e.CheckFunc == nil {
		return aggregate.UnknownChecker
	}
	return funcChecker(e.CheckFunc)
}

type funcChecker CheckFunc

func (c funcChecker) Check(e *env.Env) outcome.Outcome {
	return c(e)
}
