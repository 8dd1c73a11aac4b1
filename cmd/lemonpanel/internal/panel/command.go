// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package panel

import (
	"fmt"
	"strings"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
)

// -----------------------------------------------------------------------------
// Command Resolution
// -----------------------------------------------------------------------------

// Command identifies a panel operation.
type Command int

const (
	// CommandDashboard renders the full multi-section status dashboard.
	CommandDashboard Command = iota

	// CommandPull starts the two-step model download flow.
	CommandPull

	// CommandDelete starts the two-step model removal flow.
	CommandDelete

	// CommandHealth fetches server health only.
	CommandHealth

	// CommandStats fetches last-request performance statistics.
	CommandStats

	// CommandModels lists the installed model catalog.
	CommandModels

	// CommandSystem fetches host hardware and software details.
	CommandSystem

	// CommandLive fetches the liveness payload.
	CommandLive
)

// String returns the command keyword.
func (c Command) String() string {
	switch c {
	case CommandDashboard:
		return "dashboard"
	case CommandPull:
		return "pull"
	case CommandDelete:
		return "delete"
	case CommandHealth:
		return "health"
	case CommandStats:
		return "stats"
	case CommandModels:
		return "models"
	case CommandSystem:
		return "system"
	case CommandLive:
		return "live"
	default:
		return "unknown"
	}
}

// commandKeywords maps accepted input keywords to commands. Aliases mirror
// the verbs operators actually type.
var commandKeywords = map[string]Command{
	"":          CommandDashboard,
	"dashboard": CommandDashboard,
	"status":    CommandDashboard,
	"pull":      CommandPull,
	"download":  CommandPull,
	"delete":    CommandDelete,
	"remove":    CommandDelete,
	"health":    CommandHealth,
	"stats":     CommandStats,
	"models":    CommandModels,
	"list":      CommandModels,
	"system":    CommandSystem,
	"live":      CommandLive,
}

// ResolveCommand maps free-form input text to a Command.
//
// # Description
//
// Input is trimmed and lowercased before lookup, so "  Pull " resolves the
// same as "pull". Empty input resolves to the dashboard. Unrecognized
// input is an invalid-input error, never a pass-through to the server.
//
// # Inputs
//
//   - text: Raw command text as typed by the operator
//
// # Outputs
//
//   - Command: The resolved command
//   - error: *lemonade.ControlError with ErrorInvalidInput for unknown text
func ResolveCommand(text string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if cmd, ok := commandKeywords[normalized]; ok {
		return cmd, nil
	}
	return CommandDashboard, &lemonade.ControlError{
		Type:        lemonade.ErrorInvalidInput,
		Message:     fmt.Sprintf("unknown command %q", normalized),
		Remediation: "Valid commands: dashboard, pull, delete, health, stats, models, system, live.",
	}
}
