package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/mwinsor/phenolph/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect phph's effective configuration",
	}
	cmd.AddCommand(newConfigDumpCmd(), newConfigPathCmd())
	return cmd
}

func newConfigDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			enc := toml.NewEncoder(cmd.OutOrStdout())
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("phenolph: dumping config: %w", err)
			}
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path phph's config file would be loaded from",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				var err error
				path, err = config.DefaultFile()
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// resolveConfig layers command-line flag overrides on top of the config
// file (or Default(), if none was given / none exists at the default
// path).
func resolveConfig() (config.Config, error) {
	cfg := config.Default()

	path := cfgFile
	if path == "" {
		defaultPath, err := config.DefaultFile()
		if err != nil {
			return config.Config{}, err
		}
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			path = defaultPath
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	applyFlagOverrides(&cfg)
	return cfg, nil
}
