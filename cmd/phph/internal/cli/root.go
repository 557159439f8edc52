// Package cli wires phph's command-line surface: flag parsing
// (github.com/spf13/cobra, github.com/spf13/pflag), config file
// resolution (internal/config), test-entry selection (internal/testapi/
// native, internal/pluginloader), structured logging (go.uber.org/zap),
// and report formatting (internal/report) into the runner core.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mwinsor/phenolph/internal/config"
)

var (
	cfgFile    string
	logLevel   string
	syncVal    config.SyncStrategy
	checkVal   config.CheckStrategy
	permuteVal config.PermuteStrategy
	iterAction config.IterAction
	iterations uint64
	period     uint64
	scenario   string
	pluginPath string
	threads    int
	format     string
)

var rootCmd = &cobra.Command{
	Use:   "phph",
	Short: "phph runs concurrency litmus tests and reports their observed outcomes",
	Long: `phph drives a litmus test's worker threads through repeated run/observe/
wait cycles, aggregates the final states into a histogram, classifies
each against the test's checker, and reports the result.`,
	RunE: runRun,
}

func init() {
	registerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newConfigCmd())
}

// registerFlags binds every phph flag onto flags, typed directly
// against pflag.FlagSet so the strategy types' pflag.Value
// implementations (Set/String/Type) get parsing and usage text for
// free, the same way cobra's own generated commands do internally.
func registerFlags(flags *pflag.FlagSet) {
	flags.StringVar(&cfgFile, "config", "", "path to a TOML config file (defaults to phph's standard config location, if present)")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	flags.Var(&syncVal, "sync", "synchroniser: spinner, barrier, or spinbarrier")
	flags.Var(&checkVal, "check", "check strategy: disable, report, or exit-on-<outcome>")
	flags.Var(&permuteVal, "permute", "thread permutation: random or static")
	flags.Var(&iterAction, "iter-action", "iteration halt action: no-halt, exit, or exit-and-rotate")
	flags.Uint64Var(&iterations, "iterations", 0, "observations before exiting (0 keeps the config/default value)")
	flags.Uint64Var(&period, "period", 0, "observations between rotations (0 keeps the config/default value)")
	flags.StringVar(&scenario, "scenario", "", "run a built-in native scenario: trivial-pass, store-buffering, or reset-clears-non-atomics")
	flags.StringVar(&pluginPath, "plugin", "", "path to a dynamically-loaded test plugin (mutually exclusive with --scenario)")
	flags.IntVar(&threads, "threads", 4, "thread count for scenarios that accept one (reset-clears-non-atomics)")
	flags.StringVar(&format, "format", "histogram", "report format: histogram or json")
}

// Execute runs the phph command line, returning any error for main to
// turn into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

// applyFlagOverrides layers any explicitly-set flag onto cfg, leaving
// fields whose flag wasn't passed at the config file's (or Default's)
// value.
func applyFlagOverrides(cfg *config.Config) {
	flags := rootCmd.PersistentFlags()
	if flags.Changed("sync") {
		cfg.Sync = syncVal
	}
	if flags.Changed("check") {
		cfg.Check = checkVal
	}
	if flags.Changed("permute") {
		cfg.Permute = permuteVal
	}
	if flags.Changed("iter-action") {
		cfg.Iter.Action = iterAction
	}
	if flags.Changed("iterations") && iterations != 0 {
		cfg.Iter.Iterations = iterations
	}
	if flags.Changed("period") && period != 0 {
		cfg.Iter.Period = period
	}
}

func validateEntrySelection() error {
	if scenario != "" && pluginPath != "" {
		return fmt.Errorf("phenolph: --scenario and --plugin are mutually exclusive")
	}
	if scenario == "" && pluginPath == "" {
		return fmt.Errorf("phenolph: one of --scenario or --plugin is required")
	}
	return nil
}
