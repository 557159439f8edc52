package config

import (
	"fmt"

	"github.com/mwinsor/phenolph/internal/permute"
)

// PermuteStrategy names a thread permutation strategy.
type PermuteStrategy string

const (
	// PermuteRandom shuffles thread order on every rotation.
	PermuteRandom PermuteStrategy = "random"
	// PermuteStatic never reorders threads.
	PermuteStatic PermuteStrategy = "static"
)

// AllPermuteStrategies returns every known permutation strategy.
func AllPermuteStrategies() []PermuteStrategy {
	return []PermuteStrategy{PermuteRandom, PermuteStatic}
}

// Permuter resolves the strategy to a concrete permute.Permuter.
func (s PermuteStrategy) Permuter() (permute.Permuter, error) {
	switch s {
	case PermuteRandom:
		return permute.Random{}, nil
	case PermuteStatic:
		return permute.Nop{}, nil
	default:
		return nil, fmt.Errorf("phenolph: unknown permute strategy %q", s)
	}
}

// String implements pflag.Value / fmt.Stringer.
func (s PermuteStrategy) String() string { return string(s) }

// Set implements pflag.Value.
func (s *PermuteStrategy) Set(v string) error {
	parsed := PermuteStrategy(v)
	if _, err := parsed.Permuter(); err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (PermuteStrategy) Type() string { return "permute" }
