// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package lemonade provides the HTTP client for the Lemonade server's
// management API.
//
// # Problem Statement
//
// The panel needs to talk to a locally running Lemonade inference server:
// read its health, stats, system info and liveness, enumerate its model
// catalog, and trigger model downloads and removals. Failures must be
// distinguishable: a dead server, a slow pull, and a malformed response
// each call for a different message to the operator.
//
// # Solution
//
// A small client behind the ServerController interface:
//
//	Orchestrator ──▶ ServerController ──▶ Client ──▶ http://localhost:8000
//	                      │
//	                      └──▶ mock (tests)
//
// Status endpoints are passed through as raw JSON so callers can render
// them verbatim; the model list is additionally parsed into
// ModelDescriptors for prompting. Every failure is a *ControlError with a
// type (TIMEOUT, UPSTREAM, INVALID_INPUT), a detail, and a remediation
// hint.
//
// Deadlines are the caller's job: the client carries no timeout of its
// own, so the same instance serves 20-second status calls and 30-minute
// pulls.
package lemonade
