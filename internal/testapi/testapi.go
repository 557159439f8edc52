// Package testapi defines the boundary between the core runner and the
// language-specific test bodies it drives: the small interface every
// test entry point must satisfy, regardless of whether it is compiled
// directly into this module (see package native) or loaded at runtime
// from a shared object (see package pluginloader).
package testapi

import (
	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/manifest"
)

// Entry is a cloneable entry point into a test.
//
// Implementations must be safe to call concurrently from distinct
// threads, since a test's entry point is shared across every
// automaton in an Instance's thread set: exactly one goroutine per
// tid calls Run at a time, but several may be calling it
// simultaneously across tids.
type Entry interface {
	// Manifest returns the slot manifest this entry's test requires.
	Manifest() (manifest.Manifest, error)

	// Run executes one iteration of the test body for thread tid
	// against the shared environment e.
	Run(tid int, e *env.Env)

	// Checker returns the classifier used to score observed states.
	// Entries that don't care about classification should return
	// aggregate.UnknownChecker.
	Checker() aggregate.Checker
}
