package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultDir returns the directory phph's config file lives in by
// default: the user's config directory plus "phph".
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("phenolph: finding config directory: %w", err)
	}
	return filepath.Join(dir, "phph"), nil
}

// DefaultFile returns the path to phph's default config file.
func DefaultFile() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads and decodes a TOML config file at path, layering its
// settings on top of Default() so an absent table in the file keeps
// its default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("phenolph: loading config from %s: %w", path, err)
	}
	return cfg, nil
}
