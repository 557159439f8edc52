package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwinsor/phenolph/internal/pluginloader"
	"github.com/mwinsor/phenolph/internal/report"
	"github.com/mwinsor/phenolph/internal/runner"
	"github.com/mwinsor/phenolph/internal/testapi"
	"github.com/mwinsor/phenolph/internal/testapi/native"
)

func runRun(cmd *cobra.Command, args []string) error {
	if err := validateEntrySelection(); err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	entry, err := resolveEntry()
	if err != nil {
		return err
	}

	syncFactory, err := cfg.Sync.Factory()
	if err != nil {
		return err
	}
	permuter, err := cfg.Permute.Permuter()
	if err != nil {
		return err
	}

	b := runner.Builder{
		Entry:     entry,
		HaltRules: cfg.HaltRules(),
		Sync:      syncFactory,
		Permuter:  permuter,
		Check:     !cfg.Check.IsDisabled(),
		Logger:    logger,
	}
	r, err := b.Build()
	if err != nil {
		return err
	}

	rep, err := r.Run(cmd.Context())
	if err != nil {
		return err
	}

	out, err := resolveOutputter(cmd)
	if err != nil {
		return err
	}
	return out.Output(rep)
}

// resolveEntry picks a testapi.Entry from either a built-in native
// scenario name or a dynamically-loaded plugin path, per
// validateEntrySelection's mutual-exclusivity check.
func resolveEntry() (testapi.Entry, error) {
	if pluginPath != "" {
		return pluginloader.Load(pluginPath)
	}

	switch scenario {
	case "trivial-pass":
		return native.TrivialPass(), nil
	case "store-buffering":
		return native.StoreBuffering(), nil
	case "reset-clears-non-atomics":
		return native.ResetClearsNonAtomics(threads), nil
	default:
		return nil, fmt.Errorf("phenolph: unknown scenario %q", scenario)
	}
}

func resolveOutputter(cmd *cobra.Command) (report.Outputter, error) {
	switch format {
	case "json":
		return report.NewJSON(cmd.OutOrStdout()), nil
	case "histogram":
		return report.NewHistogram(cmd.OutOrStdout()), nil
	default:
		return nil, fmt.Errorf("phenolph: unknown report format %q", format)
	}
}
