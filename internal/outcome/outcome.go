// Package outcome models the result of checking an observed state against
// a test's pass/fail predicate.
package outcome

import (
	"fmt"
	"strings"
)

// Outcome is the result of running a checker against an observation.
//
// Outcomes are ordered Pass < Fail < Unknown, so that taking the maximum of
// a set of outcomes gives exactly the right aggregate: Pass if every
// observation passed, Unknown if any outcome could not be determined, and
// Fail otherwise.
type Outcome int

const (
	// Pass means the observation passed its check.
	Pass Outcome = iota
	// Fail means the observation failed its check.
	Fail
	// Unknown means the observation has no determined outcome.
	Unknown
)

// All returns every outcome value, in ascending order.
func All() []Outcome {
	return []Outcome{Pass, Fail, Unknown}
}

// FromPassBool converts a pass/fail boolean to an Outcome.
func FromPassBool(isPass bool) Outcome {
	if isPass {
		return Pass
	}
	return Fail
}

// String renders the outcome using its canonical lower-case name.
func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Parse parses the case-insensitive string representation of an Outcome.
func Parse(s string) (Outcome, error) {
	switch strings.ToLower(s) {
	case "pass":
		return Pass, nil
	case "fail":
		return Fail, nil
	case "unknown":
		return Unknown, nil
	default:
		return Unknown, fmt.Errorf("not an outcome: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so outcomes serialise as
// their string form in JSON reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Max returns the greater of two outcomes under Pass < Fail < Unknown.
func Max(a, b Outcome) Outcome {
	if a > b {
		return a
	}
	return b
}
