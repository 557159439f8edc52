// Package halt implements cooperative stop/rotate signalling: the signal
// every worker checks at the top of its loop, and the rules that decide
// when it should be set.
package halt

import (
	"sync/atomic"

	"github.com/mwinsor/phenolph/internal/outcome"
)

// Type enumerates the ways a test run can be halted.
//
// Types are ordered Rotate < Exit, so that taking the maximum of several
// firing rules' types gives the dominant one: Exit wins over Rotate.
type Type int

const (
	// Rotate means the worker set should be torn down and respawned
	// under a (possibly permuted) thread-to-role mapping.
	Rotate Type = iota
	// Exit means the test run should stop for good.
	Exit
)

func (t Type) String() string {
	if t == Exit {
		return "exit"
	}
	return "rotate"
}

// Signal is a single cell holding an optional Type, writable by any
// thread and read by every worker at the top of its loop.
type Signal struct {
	state atomic.Int32
}

const signalClear int32 = -1

// NewSignal returns a cleared Signal.
func NewSignal() *Signal {
	s := &Signal{}
	s.state.Store(signalClear)
	return s
}

// Get reads the current halt type, if any has been set.
func (s *Signal) Get() (Type, bool) {
	v := s.state.Load()
	if v == signalClear {
		return 0, false
	}
	return Type(v), true
}

// Set stores a halt type into the signal.
func (s *Signal) Set(t Type) {
	s.state.Store(int32(t))
}

// Clear resets the signal, so the next Run phase proceeds normally.
// Calling it while workers are mid-cycle is a programming error. Package
// runner does not call it: it builds a fresh Signal for every rotation.
func (s *Signal) Clear() {
	s.state.Store(signalClear)
}

// Summary is the information a Condition is evaluated against: the
// observer's running iteration count and the outcome of the observation
// that just happened.
type Summary struct {
	// Iteration is the observer's iteration count, including the
	// observation that just happened.
	Iteration uint64
	// LastOutcome is the outcome of the observation that just happened.
	LastOutcome outcome.Outcome
}

// Condition is a predicate evaluated after every observation.
type Condition interface {
	// Fires reports whether this condition is satisfied by summary.
	Fires(summary Summary) bool
}

// EveryNIterations fires when the observer's iteration count is a nonzero
// multiple of N.
type EveryNIterations struct {
	N uint64
}

// Fires implements Condition.
func (c EveryNIterations) Fires(summary Summary) bool {
	return c.N != 0 && summary.Iteration != 0 && summary.Iteration%c.N == 0
}

// OnSignal fires when an externally-settable flag is true.
type OnSignal struct {
	Flag *atomic.Bool
}

// Fires implements Condition.
func (c OnSignal) Fires(Summary) bool {
	return c.Flag.Load()
}

// NewCallbackCondition returns a Condition that fires once the returned
// callback has been invoked, for threading external events (e.g. an
// interrupt) into the halt machinery.
func NewCallbackCondition() (OnSignal, func()) {
	flag := &atomic.Bool{}
	return OnSignal{Flag: flag}, func() { flag.Store(true) }
}

// OnOutcome fires when the most recent classification equals Want.
type OnOutcome struct {
	Want outcome.Outcome
}

// Fires implements Condition.
func (c OnOutcome) Fires(summary Summary) bool {
	return summary.LastOutcome == c.Want
}

// Rule pairs a Condition with the Type of halt it should request when it
// fires.
type Rule struct {
	Condition Condition
	HaltType  Type
}

// Evaluate applies every rule in rules to summary and returns the maximum
// HaltType among those that fire, and whether any fired at all.
func Evaluate(rules []Rule, summary Summary) (Type, bool) {
	var (
		maxType Type
		any     bool
	)
	for _, r := range rules {
		if !r.Condition.Fires(summary) {
			continue
		}
		if !any || r.HaltType > maxType {
			maxType = r.HaltType
		}
		any = true
	}
	return maxType, any
}
