// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package prompt

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
)

// -----------------------------------------------------------------------------
// UserPrompter Interface
// -----------------------------------------------------------------------------

// UserPrompter obtains a model selection from the operator.
type UserPrompter interface {
	// Input asks for free-text entry (used for pull, where the catalog
	// can be large and the operator may paste an id).
	Input(title, message, placeholder string) (string, error)

	// Select asks the operator to choose from a fixed option list (used
	// for delete, where only installed models are valid).
	Select(title, message string, options []string) (string, error)

	// IsInteractive reports whether the prompter can actually ask.
	IsInteractive() bool
}

// NewPrompter returns the right prompter for the current stdin: the
// interactive one on a terminal, the rejecting one in pipes and CI.
func NewPrompter() UserPrompter {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return &InteractivePrompter{}
	}
	return &NonInteractivePrompter{}
}

// -----------------------------------------------------------------------------
// Interactive Prompter
// -----------------------------------------------------------------------------

// InteractivePrompter asks via terminal forms.
type InteractivePrompter struct{}

// Input prompts for free-text entry.
func (p *InteractivePrompter) Input(title, message, placeholder string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Description(message).
			Placeholder(placeholder).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", &lemonade.ControlError{
			Type:    lemonade.ErrorInvalidInput,
			Message: "prompt cancelled",
			Detail:  err.Error(),
		}
	}
	return value, nil
}

// Select prompts for a choice from the option list.
func (p *InteractivePrompter) Select(title, message string, options []string) (string, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(message).
			Options(huh.NewOptions(options...)...).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return "", &lemonade.ControlError{
			Type:    lemonade.ErrorInvalidInput,
			Message: "prompt cancelled",
			Detail:  err.Error(),
		}
	}
	return value, nil
}

// IsInteractive always reports true.
func (p *InteractivePrompter) IsInteractive() bool { return true }

// -----------------------------------------------------------------------------
// Non-Interactive Prompter
// -----------------------------------------------------------------------------

// NonInteractivePrompter rejects every prompt. Used when stdin is not a
// terminal, so scripted invocations fail fast with a usable hint instead
// of hanging on a read that will never complete.
type NonInteractivePrompter struct{}

func (p *NonInteractivePrompter) Input(title, message, placeholder string) (string, error) {
	return "", p.reject(title)
}

func (p *NonInteractivePrompter) Select(title, message string, options []string) (string, error) {
	return "", p.reject(title)
}

// IsInteractive always reports false.
func (p *NonInteractivePrompter) IsInteractive() bool { return false }

func (p *NonInteractivePrompter) reject(title string) error {
	return &lemonade.ControlError{
		Type:        lemonade.ErrorInvalidInput,
		Message:     fmt.Sprintf("%q needs a selection but stdin is not a terminal", title),
		Remediation: "Pass the model id as a command argument, e.g. lemonpanel pull <model-id>.",
	}
}

// -----------------------------------------------------------------------------
// Mock Prompter
// -----------------------------------------------------------------------------

// MockPrompter returns scripted answers for tests.
type MockPrompter struct {
	// InputResponse is returned from Input.
	InputResponse string

	// SelectResponse is returned from Select.
	SelectResponse string

	// Err, when set, is returned from both Input and Select.
	Err error

	// InputCalls and SelectCalls record the titles asked.
	InputCalls  []string
	SelectCalls []string

	// LastOptions records the options passed to the latest Select.
	LastOptions []string
}

func (p *MockPrompter) Input(title, message, placeholder string) (string, error) {
	p.InputCalls = append(p.InputCalls, title)
	if p.Err != nil {
		return "", p.Err
	}
	return p.InputResponse, nil
}

func (p *MockPrompter) Select(title, message string, options []string) (string, error) {
	p.SelectCalls = append(p.SelectCalls, title)
	p.LastOptions = options
	if p.Err != nil {
		return "", p.Err
	}
	return p.SelectResponse, nil
}

func (p *MockPrompter) IsInteractive() bool { return true }
