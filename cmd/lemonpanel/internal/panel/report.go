// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package panel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
	"github.com/lemonpanel/lemonpanel/pkg/ux"
)

// -----------------------------------------------------------------------------
// Report Types
// -----------------------------------------------------------------------------

// maxModelRows caps the model list rendering so a huge catalog cannot
// flood the terminal.
const maxModelRows = 30

// Section is one labeled block of a report.
type Section struct {
	// Label is the section title (e.g. "Health").
	Label string

	// Body is the preformatted section content.
	Body string

	// Err is set when the section's data could not be fetched. The
	// section still renders, carrying the error message instead of data.
	Err error
}

// Report is the renderable outcome of a panel command.
type Report struct {
	// Title is the report headline.
	Title string

	// Badge is a short uppercase tag next to the title (e.g. "dashboard").
	Badge string

	// Sections are the labeled content blocks, in display order.
	Sections []Section
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// FormatJSON pretty-prints a raw payload for display. Non-JSON payloads
// pass through unchanged so text endpoints still render.
func FormatJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}

// FormatModelList renders model descriptors as a bulleted list.
//
// # Description
//
// Each model renders as "• id (sizeGB) [DL]" where the size suffix appears
// only when known and [DL] marks installed models. Output is capped at
// maxModelRows entries with a trailing "... (and N more)" marker.
//
// # Inputs
//
//   - models: Parsed model descriptors, in server order
//
// # Outputs
//
//   - string: The rendered list, or a placeholder for an empty catalog
func FormatModelList(models []lemonade.ModelDescriptor) string {
	if len(models) == 0 {
		return "(no models)"
	}

	var b strings.Builder
	shown := models
	if len(shown) > maxModelRows {
		shown = shown[:maxModelRows]
	}
	for i, m := range shown {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(ux.IconBullet))
		b.WriteByte(' ')
		b.WriteString(m.ID)
		if m.SizeGB > 0 {
			fmt.Fprintf(&b, " (%.1fGB)", m.SizeGB)
		}
		if m.Installed {
			b.WriteString(" [DL]")
		}
	}
	if len(models) > maxModelRows {
		fmt.Fprintf(&b, "\n... (and %d more)", len(models)-maxModelRows)
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

// Render produces the styled terminal representation of the report.
//
// # Description
//
// The header line carries the title and badge; each section renders as a
// card. Failed sections render as error cards carrying the error message,
// so one dead endpoint never hides the others.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString(ux.Header(r.Title, r.Badge))
	for _, s := range r.Sections {
		b.WriteString("\n")
		if s.Err != nil {
			b.WriteString(ux.Card(s.Label, sectionErrorBody(s.Err), false))
			continue
		}
		b.WriteString(ux.Card(s.Label, s.Body, true))
	}
	return b.String()
}

// sectionErrorBody formats a section failure for display, preferring the
// structured remediation when available.
func sectionErrorBody(err error) string {
	var ce *lemonade.ControlError
	if errors.As(err, &ce) {
		body := ce.Message
		if ce.Remediation != "" {
			body += "\n" + ce.Remediation
		}
		return body
	}
	return err.Error()
}

// Failed reports whether every section of the report carries an error.
// A partially degraded dashboard is still a success.
func (r *Report) Failed() bool {
	if len(r.Sections) == 0 {
		return false
	}
	for _, s := range r.Sections {
		if s.Err == nil {
			return false
		}
	}
	return true
}
