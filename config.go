package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig is the optional TOML defaults file for the generate command.
// Pointer fields distinguish absent keys from zero values.
type fileConfig struct {
	Words         *int    `toml:"words"`
	Substitutions *int    `toml:"substitutions"`
	Separator     *string `toml:"separator"`
	Wordlist      *string `toml:"wordlist"`
}

// defaultConfigPath returns the conventional config location,
// $XDG_CONFIG_HOME/dicepass/config.toml.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dicepass", "config.toml")
}

// loadConfig reads the TOML defaults file. A missing file at the default
// path is fine; a missing file named explicitly with --config is an error.
func loadConfig(path string, explicit bool) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return fileConfig{}, nil
	}
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}
