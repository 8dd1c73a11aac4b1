// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lemonade

import (
	"bytes"
	"fmt"
)

// -----------------------------------------------------------------------------
// Error Types
// -----------------------------------------------------------------------------

// ControlErrorType categorizes panel operation failures for programmatic handling.
type ControlErrorType int

const (
	// ErrorTimeout indicates a call exceeded its configured timeout.
	ErrorTimeout ControlErrorType = iota

	// ErrorUpstream indicates the server was unreachable, returned a
	// non-success status, or produced a response the panel could not parse.
	ErrorUpstream

	// ErrorInvalidInput indicates an unrecognized command or a model id
	// that was missing or not offered at the prompt step.
	ErrorInvalidInput
)

// String returns the error type as a string for logging.
func (t ControlErrorType) String() string {
	switch t {
	case ErrorTimeout:
		return "TIMEOUT"
	case ErrorUpstream:
		return "UPSTREAM"
	case ErrorInvalidInput:
		return "INVALID_INPUT"
	default:
		return "UNKNOWN"
	}
}

// ControlError provides structured error information for panel operations.
type ControlError struct {
	// Type categorizes the error for programmatic handling.
	Type ControlErrorType

	// Endpoint is the logical endpoint that failed (e.g., "health", "pull").
	Endpoint string

	// Model is the model id involved, if any.
	Model string

	// Message is a human-readable error description.
	Message string

	// Detail provides technical information for debugging.
	Detail string

	// Remediation suggests how to fix the issue.
	Remediation string
}

// Error implements the error interface.
func (e *ControlError) Error() string {
	return e.Message
}

// FullError returns a detailed error message including remediation.
func (e *ControlError) FullError() string {
	var buf bytes.Buffer
	buf.WriteString(e.Message)
	if e.Model != "" {
		buf.WriteString(fmt.Sprintf(" (model: %s)", e.Model))
	}
	if e.Detail != "" {
		buf.WriteString("\n\nDetails: ")
		buf.WriteString(e.Detail)
	}
	if e.Remediation != "" {
		buf.WriteString("\n\nTo fix:\n")
		buf.WriteString(e.Remediation)
	}
	return buf.String()
}
