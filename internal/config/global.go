// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global warboard configuration.
// It uses $XDG_CONFIG_HOME/warboard if set, otherwise ~/.config/warboard.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "warboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "warboard")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	cfg, err := loadYAML(GlobalConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Resolve loads the global config and the config in dir and merges them.
// Settings in dir win.
func Resolve(dir string) (*Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return nil, err
	}
	local, err := Load(dir)
	if err != nil {
		return nil, err
	}
	return Merge(global, local), nil
}
