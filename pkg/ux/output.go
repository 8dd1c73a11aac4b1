// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the Lemonpanel CLI.
package ux

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Lemonpanel color palette - citrus yellows over slate panels
var (
	// Primary palette (brightest to darkest)
	ColorLemonBright  = lipgloss.Color("#F5E050") // Bright lemon - highlights
	ColorLemonPrimary = lipgloss.Color("#E8CC3C") // Primary lemon - brand color
	ColorLemonZest    = lipgloss.Color("#D9B82F") // Zest - interactive elements
	ColorLemonRind    = lipgloss.Color("#B89A28") // Rind - borders, accents
	ColorLeaf         = lipgloss.Color("#7FB06A") // Leaf green - subtle accents

	// Dark palette (for backgrounds, muted elements)
	ColorPanel    = lipgloss.Color("#1E293B") // Panel background
	ColorSlate    = lipgloss.Color("#475569") // Slate - muted text, borders
	ColorMidnight = lipgloss.Color("#0F172A") // Midnight - deep backgrounds

	// Semantic colors (keeping standard conventions for clarity)
	ColorSuccess = lipgloss.Color("#22C55E") // Green for success
	ColorWarning = lipgloss.Color("#F4D03F") // Gold/amber for warnings
	ColorError   = lipgloss.Color("#EF4444") // Red for errors
	ColorMuted   = lipgloss.Color("#64748B") // Slate for muted text
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Badge     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	// Box styles
	Card      lipgloss.Style
	ErrorCard lipgloss.Style

	// Status indicators
	StatusOK      lipgloss.Style
	StatusError   lipgloss.Style
	StatusPending lipgloss.Style
}{
	// Text styles
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorLemonBright),
	Subtitle:  lipgloss.NewStyle().Foreground(ColorLemonPrimary),
	Badge:     lipgloss.NewStyle().Foreground(ColorMuted).Transform(strings.ToUpper),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorLemonBright).Bold(true),

	// Box styles
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorLemonRind).
		Padding(0, 1),
	ErrorCard: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),

	// Status indicators
	StatusOK:      lipgloss.NewStyle().SetString("●").Foreground(ColorSuccess),
	StatusError:   lipgloss.NewStyle().SetString("●").Foreground(ColorError),
	StatusPending: lipgloss.NewStyle().SetString("○").Foreground(ColorSlate),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
	IconBullet  Icon = "•"
	IconLemon   Icon = "🍋"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending, IconBullet, IconArrow:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// Header renders the panel header line: a lemon, a styled title, and an
// uppercase badge, mirroring the header/badge strip of the web panel.
func Header(title, badge string) string {
	line := fmt.Sprintf("%s %s", IconLemon, Styles.Title.Render(title))
	if badge != "" {
		line += "  " + Styles.Badge.Render(badge)
	}
	return line
}

// Card renders a labeled content card with an ok/error indicator.
//
// # Inputs
//
//   - label: Card title (rendered uppercase, e.g. "HEALTH")
//   - body: Preformatted card content (typically indented JSON)
//   - ok: Selects the indicator color and border style
//
// # Outputs
//
//   - string: The rendered card, ready to print
func Card(label, body string, ok bool) string {
	indicator := Styles.StatusOK.String()
	box := Styles.Card
	if !ok {
		indicator = Styles.StatusError.String()
		box = Styles.ErrorCard
	}
	header := fmt.Sprintf("%s %s", indicator, Styles.Badge.Render(label))
	return box.Render(header + "\n" + body)
}

// Successf prints a success line to stdout.
func Successf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "%s %s\n", IconSuccess.Render(), fmt.Sprintf(format, args...))
}

// Warnf prints a warning line to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", IconWarning.Render(), fmt.Sprintf(format, args...))
}

// Errorf prints an error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", IconError.Render(), fmt.Sprintf(format, args...))
}
