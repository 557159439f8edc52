package config

import (
	"fmt"
	"strings"

	"github.com/mwinsor/phenolph/internal/halt"
	"github.com/mwinsor/phenolph/internal/outcome"
)

// CheckKind is the shape a CheckStrategy takes.
type CheckKind string

const (
	// CheckDisable turns state checking off entirely.
	CheckDisable CheckKind = "disable"
	// CheckReport runs the checker but only to populate the report.
	CheckReport CheckKind = "report"
	// CheckExitOn runs the checker and exits as soon as it sees the
	// configured outcome.
	CheckExitOn CheckKind = "exit-on"
)

const exitOnPrefix = "exit-on-"

// CheckStrategy configures how (and whether) observed states are
// classified, and whether classification can end the run early.
type CheckStrategy struct {
	Kind CheckKind `toml:"kind"`
	// Outcome is only meaningful when Kind is CheckExitOn.
	Outcome outcome.Outcome `toml:"outcome"`
}

// DefaultCheckStrategy reports checks without using them to halt.
func DefaultCheckStrategy() CheckStrategy {
	return CheckStrategy{Kind: CheckReport}
}

// AllCheckStrategies returns every known checking strategy, including
// one CheckExitOn per possible outcome.
func AllCheckStrategies() []CheckStrategy {
	strategies := []CheckStrategy{
		{Kind: CheckDisable},
		{Kind: CheckReport},
	}
	for _, o := range outcome.All() {
		strategies = append(strategies, CheckStrategy{Kind: CheckExitOn, Outcome: o})
	}
	return strategies
}

// String renders the strategy the way ParseCheckStrategy expects it
// back, e.g. "disable", "report" or "exit-on-fail".
func (s CheckStrategy) String() string {
	if s.Kind == CheckExitOn {
		return exitOnPrefix + s.Outcome.String()
	}
	return string(s.Kind)
}

// ParseCheckStrategy parses the single-string command-line form of a
// CheckStrategy.
func ParseCheckStrategy(s string) (CheckStrategy, error) {
	lower := strings.ToLower(s)
	if rest, ok := strings.CutPrefix(lower, exitOnPrefix); ok {
		o, err := outcome.Parse(rest)
		if err != nil {
			return CheckStrategy{}, fmt.Errorf("phenolph: bad check strategy %q: %w", s, err)
		}
		return CheckStrategy{Kind: CheckExitOn, Outcome: o}, nil
	}
	switch CheckKind(lower) {
	case CheckDisable, CheckReport:
		return CheckStrategy{Kind: CheckKind(lower)}, nil
	default:
		return CheckStrategy{}, fmt.Errorf("phenolph: unknown check strategy %q", s)
	}
}

// IsDisabled reports whether this strategy turns checking off.
func (s CheckStrategy) IsDisabled() bool {
	return s.Kind == CheckDisable
}

// Set implements pflag.Value, parsing the same single-string form
// ParseCheckStrategy and String round-trip through.
func (s *CheckStrategy) Set(v string) error {
	parsed, err := ParseCheckStrategy(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (CheckStrategy) Type() string { return "check" }

// HaltRules returns the halt rules this strategy implies: none, unless
// Kind is CheckExitOn, in which case exactly one Exit rule firing on
// Outcome.
func (s CheckStrategy) HaltRules() []halt.Rule {
	if s.Kind != CheckExitOn {
		return nil
	}
	return []halt.Rule{{Condition: halt.OnOutcome{Want: s.Outcome}, HaltType: halt.Exit}}
}
