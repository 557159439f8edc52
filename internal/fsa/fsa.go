// Package fsa implements the per-thread typestate automaton that drives
// one test thread through its run/observe-or-wait cycle.
//
// Each state is its own type (Ready, Runnable, Waiting, Observable, Done),
// and advancing from one state to the next consumes the value in the
// state being left; the Go compiler can't enforce the single-use
// discipline the way an ownership-typed language would, but the
// vocabulary of distinct types still keeps a caller from, say, calling
// Wait twice on the same Waiting handle by accident in straight-line
// code, and documents at the type level which operations are legal in
// which phase.
package fsa

import (
	"github.com/mwinsor/phenolph/internal/env"
	"github.com/mwinsor/phenolph/internal/halt"
	"github.com/mwinsor/phenolph/internal/phsync"
	"github.com/mwinsor/phenolph/internal/testapi"
)

// core holds the state shared by every typestate view of one thread's
// automaton. It is a pointer so that every state built from the same
// Ready handle shares the same environment, entry point, synchroniser
// and halt cell.
type core struct {
	tid   int
	env   *env.Env
	entry testapi.Entry
	sync  phsync.Synchroniser
	state *halt.Signal
}

// Ready is a thread automaton that has not yet begun running, typically
// just handed off to a freshly spawned goroutine.
type Ready struct{ c *core }

// NewReady constructs a Ready automaton for thread tid, sharing env,
// entry, sync and state with its sibling automata.
func NewReady(tid int, e *env.Env, entry testapi.Entry, sync phsync.Synchroniser, state *halt.Signal) Ready {
	return Ready{c: &core{tid: tid, env: e, entry: entry, sync: sync, state: state}}
}

// Tid returns the thread ID this automaton belongs to.
func (r Ready) Tid() int { return r.c.tid }

// Start transitions to Runnable, the state in which the thread's loop
// body lives.
func (r Ready) Start() Runnable { return Runnable{c: r.c} }

// Runnable is a thread automaton that is free to run its next iteration.
type Runnable struct{ c *core }

// Tid returns the thread ID this automaton belongs to.
func (r Runnable) Tid() int { return r.c.tid }

// Outcome is the sealed result of Runnable.Run: exactly one of
// DoneOutcome, WaitOutcome or ObserveOutcome.
type Outcome interface {
	isFsaOutcome()
}

// DoneOutcome means the automaton's halt cell was already set; the
// thread should stop.
type DoneOutcome struct {
	Done Done
}

func (DoneOutcome) isFsaOutcome() {}

// WaitOutcome means the automaton ran its entry point and is not this
// cycle's observer; it must call Waiting.Wait before running again.
type WaitOutcome struct {
	Waiting Waiting
}

func (WaitOutcome) isFsaOutcome() {}

// ObserveOutcome means the automaton ran its entry point and was
// elected this cycle's observer; it must inspect the environment and
// call Observable.Relinquish (or Kill) before running again.
type ObserveOutcome struct {
	Observable Observable
}

func (ObserveOutcome) isFsaOutcome() {}

// Run executes one iteration of the thread's entry point against the
// shared environment, then synchronises with its siblings via Run,
// returning whichever of Done, Waiting or Observable follows.
//
// If the halt cell is already set when Run is called, the entry point
// is not invoked at all; the automaton goes straight to Done.
func (r Runnable) Run() Outcome {
	if ht, halted := r.c.state.Get(); halted {
		return DoneOutcome{Done: Done{tid: r.c.tid, HaltType: ht}}
	}

	r.c.entry.Run(r.c.tid, r.c.env)

	switch r.c.sync.Run() {
	case phsync.RoleObserver:
		return ObserveOutcome{Observable: Observable{c: r.c}}
	default:
		return WaitOutcome{Waiting: Waiting{c: r.c}}
	}
}

// Waiting is a thread automaton that has finished its iteration and is
// not this cycle's observer.
type Waiting struct{ c *core }

// Tid returns the thread ID this automaton belongs to.
func (w Waiting) Tid() int { return w.c.tid }

// Wait blocks until the cycle's observer has finished inspecting the
// environment, then returns to Runnable.
func (w Waiting) Wait() Runnable {
	w.c.sync.Wait()
	return Runnable{c: w.c}
}

// Observable is a thread automaton that has been elected this cycle's
// observer and may inspect the shared environment.
type Observable struct{ c *core }

// Tid returns the thread ID this automaton belongs to.
func (o Observable) Tid() int { return o.c.tid }

// Env exposes the shared environment for inspection. It is only legal
// to read or reset it while holding an Observable; the phase invariant
// maintained by package phsync is what makes that safe without any
// locking of its own.
func (o Observable) Env() *env.Env { return o.c.env }

// Relinquish finishes the observation phase and returns to Runnable.
func (o Observable) Relinquish() Runnable {
	o.c.sync.Observe()
	return Runnable{c: o.c}
}

// Kill records haltType in the shared halt cell, then relinquishes the
// observation phase as normal. Every thread will see the halt cell set
// the next time it enters Run, and transition to Done instead of
// running another iteration.
func (o Observable) Kill(haltType halt.Type) Runnable {
	o.c.state.Set(haltType)
	return o.Relinquish()
}

// Done marks the end of one thread's participation in a rotation cycle.
type Done struct {
	tid int
	// HaltType is the reason the test stopped running this thread.
	HaltType halt.Type
}

// Tid returns the thread ID this automaton belongs to.
func (d Done) Tid() int { return d.tid }
