// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
)

// Interface compliance.
var (
	_ UserPrompter = (*InteractivePrompter)(nil)
	_ UserPrompter = (*NonInteractivePrompter)(nil)
	_ UserPrompter = (*MockPrompter)(nil)
)

func TestNonInteractivePrompter_Input_Rejects(t *testing.T) {
	p := &NonInteractivePrompter{}

	_, err := p.Input("Pull a model", "Available models:", "model id")
	if err == nil {
		t.Fatal("expected rejection without a terminal")
	}

	var ce *lemonade.ControlError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ControlError, got %T", err)
	}
	if ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("Type = %v, want ErrorInvalidInput", ce.Type)
	}
	if !strings.Contains(ce.Remediation, "argument") {
		t.Errorf("remediation should point at the argument form, got %q", ce.Remediation)
	}
}

func TestNonInteractivePrompter_Select_Rejects(t *testing.T) {
	p := &NonInteractivePrompter{}

	_, err := p.Select("Delete a model", "Installed models:", []string{"llama-3.2-3b"})
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("expected invalid-input rejection, got %v", err)
	}
	if p.IsInteractive() {
		t.Error("NonInteractivePrompter must report non-interactive")
	}
}

func TestMockPrompter_RecordsCalls(t *testing.T) {
	p := &MockPrompter{InputResponse: "qwen-2.5-7b", SelectResponse: "llama-3.2-3b"}

	got, err := p.Input("Pull a model", "msg", "model id")
	if err != nil || got != "qwen-2.5-7b" {
		t.Errorf("Input = (%q, %v), want scripted response", got, err)
	}

	got, err = p.Select("Delete a model", "msg", []string{"llama-3.2-3b", "other"})
	if err != nil || got != "llama-3.2-3b" {
		t.Errorf("Select = (%q, %v), want scripted response", got, err)
	}

	if len(p.InputCalls) != 1 || p.InputCalls[0] != "Pull a model" {
		t.Errorf("InputCalls = %v", p.InputCalls)
	}
	if len(p.SelectCalls) != 1 || p.SelectCalls[0] != "Delete a model" {
		t.Errorf("SelectCalls = %v", p.SelectCalls)
	}
	if len(p.LastOptions) != 2 {
		t.Errorf("LastOptions = %v", p.LastOptions)
	}
}

func TestMockPrompter_ScriptedError(t *testing.T) {
	wantErr := errors.New("cancelled")
	p := &MockPrompter{Err: wantErr}

	if _, err := p.Input("t", "m", "p"); !errors.Is(err, wantErr) {
		t.Errorf("Input error = %v, want scripted error", err)
	}
	if _, err := p.Select("t", "m", nil); !errors.Is(err, wantErr) {
		t.Errorf("Select error = %v, want scripted error", err)
	}
}
