// Package config loads and resolves the runner's configurable
// strategies: synchronisation, thread permutation, state checking and
// iteration limits, read from a TOML file and overridable from the
// command line.
package config

import "github.com/mwinsor/phenolph/internal/halt"

// Config is the top-level, fully-resolved configuration for one run.
type Config struct {
	Check   CheckStrategy   `toml:"check"`
	Iter    IterStrategy    `toml:"iter"`
	Permute PermuteStrategy `toml:"permute"`
	Sync    SyncStrategy    `toml:"sync"`
}

// Default returns the configuration used when no file or flags
// override anything: reporting-only checks, a one-million-iteration
// exit with a hundred-thousand-iteration rotation period, random
// thread permutation, and the spinner synchroniser.
func Default() Config {
	return Config{
		Check:   DefaultCheckStrategy(),
		Iter:    DefaultIterStrategy(),
		Permute: PermuteRandom,
		Sync:    SyncSpinner,
	}
}

// HaltRules collects every halt rule implied by this configuration: the
// iteration strategy's rules first, then the check strategy's.
func (c Config) HaltRules() []halt.Rule {
	rules := append([]halt.Rule{}, c.Iter.HaltRules()...)
	rules = append(rules, c.Check.HaltRules()...)
	return rules
}
