package config

import (
	"fmt"
	"strings"

	"github.com/mwinsor/phenolph/internal/halt"
)

// IterAction selects how an IterStrategy's Iterations/Period translate
// into halt rules.
type IterAction string

const (
	// IterNoHalt means iteration counts never halt the run on their
	// own; some other configured rule (an external signal, or a
	// check-triggered exit) must do it.
	IterNoHalt IterAction = "no-halt"
	// IterExit exits after Iterations observations and never rotates.
	IterExit IterAction = "exit"
	// IterExitAndRotate exits after Iterations observations and
	// rotates every Period observations in the meantime.
	IterExitAndRotate IterAction = "exit-and-rotate"
)

// defaultIterations is how many observations a run performs before
// exiting, absent any other configuration.
const defaultIterations = 1_000_000

// defaultPeriod is how many observations pass between thread rotations,
// absent any other configuration.
const defaultPeriod = 100_000

// IterStrategy configures iteration-count-based exit and rotation.
type IterStrategy struct {
	Action     IterAction `toml:"action"`
	Iterations uint64     `toml:"iterations"`
	Period     uint64     `toml:"period"`
}

// DefaultIterStrategy exits after defaultIterations observations,
// rotating every defaultPeriod observations.
func DefaultIterStrategy() IterStrategy {
	return IterStrategy{Action: IterExitAndRotate, Iterations: defaultIterations, Period: defaultPeriod}
}

// AllIterActions returns every known iteration action.
func AllIterActions() []IterAction {
	return []IterAction{IterNoHalt, IterExit, IterExitAndRotate}
}

// HaltRules returns the halt rules this strategy implies, per Action:
// IterNoHalt implies none; IterExit implies a single Exit rule every
// Iterations observations; IterExitAndRotate additionally rotates
// every Period observations.
func (s IterStrategy) HaltRules() []halt.Rule {
	switch s.Action {
	case IterExit:
		return []halt.Rule{
			{Condition: halt.EveryNIterations{N: s.Iterations}, HaltType: halt.Exit},
		}
	case IterExitAndRotate:
		return []halt.Rule{
			{Condition: halt.EveryNIterations{N: s.Iterations}, HaltType: halt.Exit},
			{Condition: halt.EveryNIterations{N: s.Period}, HaltType: halt.Rotate},
		}
	default:
		return nil
	}
}

// String implements pflag.Value / fmt.Stringer.
func (a IterAction) String() string {
	return string(a)
}

// Set implements pflag.Value, validating that v names a known action.
func (a *IterAction) Set(v string) error {
	lower := IterAction(strings.ToLower(v))
	for _, known := range AllIterActions() {
		if lower == known {
			*a = lower
			return nil
		}
	}
	return fmt.Errorf("phenolph: unknown iter action %q", v)
}

// Type implements pflag.Value.
func (IterAction) Type() string { return "iter-action" }
