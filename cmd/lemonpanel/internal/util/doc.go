// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package util provides foundational utilities for the Lemonpanel CLI.
//
// This package contains low-level utilities that have no dependencies on
// other internal packages. All utilities depend only on the Go standard
// library, making this a leaf package in the dependency graph.
//
// # Overview
//
// Currently the package covers timeout management: enforcing minimum and
// default timeouts so that a misconfigured (zero or negative) timeout can
// never turn into an infinite hang.
//
//	cfg := util.NewTimeoutConfig()
//	timeout := util.EnforceMinTimeout(requested, util.MinHTTPTimeout)
//
// # Thread Safety
//
// All functions are pure; TimeoutConfig is a value type and safe to copy.
package util
