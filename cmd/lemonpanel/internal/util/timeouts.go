// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package util

import "time"

// Timeout constants define minimum and default values for panel operations.
//
// These constants prevent accidental infinite hangs by ensuring all
// operations have a reasonable timeout even if misconfigured. Pull and
// delete use dedicated execution timeouts because model downloads can run
// for many minutes while status and listing calls should fail fast.
const (
	// MinHTTPTimeout is the absolute minimum for any HTTP operation.
	// Prevents accidental infinite hangs from zero timeouts.
	MinHTTPTimeout = 1 * time.Second

	// DefaultRequestTimeout is the standard timeout for status and
	// listing requests (health, stats, system info, model lists).
	DefaultRequestTimeout = 20 * time.Second

	// DefaultPullTimeout bounds a model download. Large checkpoints can
	// take tens of minutes on slow links.
	DefaultPullTimeout = 30 * time.Minute

	// DefaultDeleteTimeout bounds a model removal.
	DefaultDeleteTimeout = 3 * time.Minute
)

// EnforceMinTimeout returns at least the minimum timeout.
//
// # Description
//
// Ensures a timeout is never below the specified minimum. If the requested
// timeout is zero, negative, or below the minimum, returns the minimum
// instead. This prevents misconfiguration from causing infinite hangs.
//
// # Inputs
//
//   - requested: The timeout value requested by the caller
//   - minimum: The absolute minimum acceptable timeout
//
// # Outputs
//
//   - time.Duration: The requested timeout if valid, otherwise the minimum
//
// # Example
//
//	// User configured 0 timeout (infinite) - enforce 1s minimum
//	timeout := util.EnforceMinTimeout(cfg.Timeout(), util.MinHTTPTimeout)
//
// # Limitations
//
//   - Does not enforce maximum timeouts
func EnforceMinTimeout(requested, minimum time.Duration) time.Duration {
	if requested <= 0 || requested < minimum {
		return minimum
	}
	return requested
}

// EnforceDefaultTimeout returns the default if the requested is zero or negative.
//
// # Description
//
// Unlike EnforceMinTimeout, this only applies the default when the value
// is explicitly zero or negative. Useful when you want to allow any
// positive value but provide a sensible default.
//
// # Inputs
//
//   - requested: The timeout value requested by the caller
//   - defaultVal: The default timeout to use if requested is invalid
//
// # Outputs
//
//   - time.Duration: The requested timeout if positive, otherwise the default
func EnforceDefaultTimeout(requested, defaultVal time.Duration) time.Duration {
	if requested <= 0 {
		return defaultVal
	}
	return requested
}

// TimeoutConfig holds the per-operation timeouts with validation.
//
// # Description
//
// Provides a validated set of timeout configurations for panel
// operations. Use NewTimeoutConfig to create with proper defaults.
//
// # Example
//
//	cfg := util.NewTimeoutConfig()
//	cfg.Request = 5 * time.Second // Custom request timeout
//	validCfg := cfg.Validated()   // Ensures minimums are met
type TimeoutConfig struct {
	// Request is the timeout for status and listing calls.
	Request time.Duration

	// Pull is the execution timeout for a model download.
	Pull time.Duration

	// Delete is the execution timeout for a model removal.
	Delete time.Duration
}

// NewTimeoutConfig creates a TimeoutConfig with sensible defaults.
func NewTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Request: DefaultRequestTimeout,
		Pull:    DefaultPullTimeout,
		Delete:  DefaultDeleteTimeout,
	}
}

// Validated returns a copy with all timeouts at least at their minimums.
//
// # Description
//
// Returns a new TimeoutConfig where any value below its minimum has been
// raised to the minimum. The original config is not modified.
func (c TimeoutConfig) Validated() TimeoutConfig {
	return TimeoutConfig{
		Request: EnforceMinTimeout(c.Request, MinHTTPTimeout),
		Pull:    EnforceMinTimeout(c.Pull, MinHTTPTimeout),
		Delete:  EnforceMinTimeout(c.Delete, MinHTTPTimeout),
	}
}
