// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads and validates the Lemonpanel configuration.
//
// Configuration lives at ~/.lemonpanel/lemonpanel.yaml and is created
// with defaults on first run. Environment variables override the file,
// and command-line flags override both.
package config

import "time"

// Config holds the panel configuration.
type Config struct {
	// BaseURL is the Lemonade server root, e.g. "http://localhost:8000".
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// TimeoutSeconds bounds status and listing requests.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"gt=0"`
}

// Default configuration values.
const (
	DefaultBaseURL        = "http://localhost:8000"
	DefaultTimeoutSeconds = 20
)

// DefaultConfig returns the configuration used on first run.
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
