// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvBaseURL        = "LEMONADE_BASE_URL"
	EnvTimeoutSeconds = "LEMONADE_TIMEOUT_SECONDS"
)

// defaultConfigFile is written on first run so operators have something
// to edit.
const defaultConfigFile = `# Lemonpanel configuration
#
# base_url: root URL of the local Lemonade server
# timeout_seconds: timeout for status and listing requests

base_url: http://localhost:8000
timeout_seconds: 20
`

// ConfigDir returns the configuration directory (~/.lemonpanel).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".lemonpanel"), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lemonpanel.yaml"), nil
}

// Load reads the configuration, creating it with defaults on first run.
//
// # Description
//
// Resolution order, later wins:
//
//  1. Built-in defaults
//  2. ~/.lemonpanel/lemonpanel.yaml
//  3. LEMONADE_BASE_URL / LEMONADE_TIMEOUT_SECONDS environment variables
//
// The result is validated before being returned.
//
// # Outputs
//
//   - Config: The effective configuration
//   - error: File system, parse, or validation failures
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path. Used by Load
// and by tests.
func LoadFrom(path string) (Config, error) {
	if err := ensureConfigFile(path); err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	slog.Debug("configuration loaded", "path", path, "base_url", cfg.BaseURL,
		"timeout_seconds", cfg.TimeoutSeconds)
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func Validate(cfg Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid configuration: field %s failed %s validation",
				f.Field(), f.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ensureConfigFile writes the default configuration on first run.
func ensureConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot stat config %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigFile), 0o644); err != nil {
		return fmt.Errorf("cannot write default config: %w", err)
	}

	slog.Info("created default configuration", "path", path)
	return nil
}

// applyEnvOverrides layers environment variables over the file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = secs
		} else {
			slog.Warn("ignoring non-numeric timeout override",
				"var", EnvTimeoutSeconds, "value", v)
		}
	}
}
