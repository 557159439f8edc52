// Package pluginloader loads litmus tests from Go plugins built and
// compiled separately from this module's main binary, the dynamic-test
// analogue of a dlopen'd test library: a plugin exports a small set of
// functions, and Load wraps them into a testapi.Entry.
//
// A plugin must export:
//
//	func Manifest() (manifest.Manifest, error)
//	func Run(tid int, e *env.Env)
//
// and may optionally export:
//
//	func Check(e *env.Env) outcome.Outcome
//
// Plugins are built with `go build -buildmode=plugin` against the same
// module (and therefore the same internal package versions) as the
// binary loading them; mismatched builds fail at Open time rather than
// silently misbehaving.
package pluginloader

import (
	"errors"
	"fmt"
	goplugin "plugin"

	"github.com/mwinsor/phenolph/internal/aggregate"
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/manifest"
	"github.com/mwinsor/phenolph/internal/outcome"
)

// ErrLoadFailed wraps any failure to open a plugin or resolve its
// required symbols into a usable Entry.
var ErrLoadFailed = errors.New("phenolph: loading plugin failed")

const (
	symManifest = "Manifest"
	symRun      = "Run"
	symCheck    = "Check"
)

type manifestFunc func() (manifest.Manifest, error)
type runFunc func(tid int, e *env.Env)
type checkFunc func(e *env.Env) outcome.Outcome

// Entry is a testapi.Entry backed by symbols resolved from a loaded
// plugin.
type Entry struct {
	path     string
	manifest manifestFunc
	run      runFunc
	check    checkFunc
}

// Manifest implements testapi.Entry.
func (e *Entry) Manifest() (manifest.Manifest, error) {
	return e.manifest()
}

// Run implements testapi.Entry.
func (e *Entry) Run(tid int, ev *env.Env) {
	e.run(tid, ev)
}

// Checker implements testapi.Entry.
func (e *Entry) Checker() aggregate.Checker {
	if e.check == nil {
		return aggregate.UnknownChecker
	}
	return funcChecker(e.check)
}

type funcChecker checkFunc

func (c funcChecker) Check(e *env.Env) outcome.Outcome {
	return c(e)
}

// Load opens the Go plugin at path and resolves its required and
// optional symbols into an Entry. It fails if the plugin cannot be
// opened, or if any required symbol is missing or has the wrong
// signature.
func Load(path string) (*Entry, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phenolph: opening plugin %s: %w: %w", path, ErrLoadFailed, err)
	}

	mf, err := lookupManifest(p, path)
	if err != nil {
		return nil, err
	}
	rf, err := lookupRun(p, path)
	if err != nil {
		return nil, err
	}
	cf, err := lookupCheck(p, path)
	if err != nil {
		return nil, err
	}

	return &Entry{path: path, manifest: mf, run: rf, check: cf}, nil
}

func lookupManifest(p *goplugin.Plugin, path string) (manifestFunc, error) {
	sym, err := p.Lookup(symManifest)
	if err != nil {
		return nil, fmt.Errorf("phenolph: plugin %s: missing %s: %w: %w", path, symManifest, ErrLoadFailed, err)
	}
	fn, ok := sym.(func() (manifest.Manifest, error))
	if !ok {
		return nil, fmt.Errorf("phenolph: plugin %s: %s has the wrong signature: %w", path, symManifest, ErrLoadFailed)
	}
	return fn, nil
}

func lookupRun(p *goplugin.Plugin, path string) (runFunc, error) {
	sym, err := p.Lookup(symRun)
	if err != nil {
		return nil, fmt.Errorf("phenolph: plugin %s: missing %s: %w: %w", path, symRun, ErrLoadFailed, err)
	}
	fn, ok := sym.(func(int, *env.Env))
	if !ok {
		return nil, fmt.Errorf("phenolph: plugin %s: %s has the wrong signature: %w", path, symRun, ErrLoadFailed)
	}
	return fn, nil
}

func lookupCheck(p *goplugin.Plugin, path string) (checkFunc, error) {
	sym, err := p.Lookup(symCheck)
	if err != nil {
		// Check is optional: plugins that skip it just get
		// aggregate.UnknownChecker.
		return nil, nil
	}
	fn, ok := sym.(func(*env.Env) outcome.Outcome)
	if !ok {
		return nil, fmt.Errorf("phenolph: plugin %s: %s has the wrong signature: %w", path, symCheck, ErrLoadFailed)
	}
	return fn, nil
}
