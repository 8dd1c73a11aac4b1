// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package panel

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/util"
)

// -----------------------------------------------------------------------------
// Mock Controller
// -----------------------------------------------------------------------------

// mockController implements lemonade.ServerController with canned
// responses and records every mutating call.
type mockController struct {
	mu sync.Mutex

	healthErr error
	statsErr  error
	systemErr error
	liveErr   error
	listErr   error
	pullErr   error
	deleteErr error

	models []lemonade.ModelDescriptor

	listShowAll []bool
	pullCalls   []string
	deleteCalls []string
}

func (m *mockController) Health(ctx context.Context) (json.RawMessage, error) {
	if m.healthErr != nil {
		return nil, m.healthErr
	}
	return json.RawMessage(`{"status":"ok"}`), nil
}

func (m *mockController) Stats(ctx context.Context) (json.RawMessage, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return json.RawMessage(`{"tokens_per_second":41.5}`), nil
}

func (m *mockController) SystemInfo(ctx context.Context) (json.RawMessage, error) {
	if m.systemErr != nil {
		return nil, m.systemErr
	}
	return json.RawMessage(`{"cpu":"Ryzen AI 9","memory_gb":32}`), nil
}

func (m *mockController) Live(ctx context.Context) (json.RawMessage, error) {
	if m.liveErr != nil {
		return nil, m.liveErr
	}
	return json.RawMessage(`{"alive":true}`), nil
}

func (m *mockController) ListModels(ctx context.Context, showAll bool) ([]lemonade.ModelDescriptor, json.RawMessage, error) {
	m.mu.Lock()
	m.listShowAll = append(m.listShowAll, showAll)
	m.mu.Unlock()
	if m.listErr != nil {
		return nil, nil, m.listErr
	}
	return m.models, json.RawMessage(`{"data":[]}`), nil
}

func (m *mockController) PullModel(ctx context.Context, modelID string) (json.RawMessage, error) {
	m.mu.Lock()
	m.pullCalls = append(m.pullCalls, modelID)
	m.mu.Unlock()
	if m.pullErr != nil {
		return nil, m.pullErr
	}
	return json.RawMessage(`{"status":"success"}`), nil
}

func (m *mockController) DeleteModel(ctx context.Context, modelID string) (json.RawMessage, error) {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, modelID)
	m.mu.Unlock()
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return json.RawMessage(`{"status":"deleted"}`), nil
}

func (m *mockController) BaseURL() string { return "http://localhost:8000" }

func testCatalog() []lemonade.ModelDescriptor {
	return []lemonade.ModelDescriptor{
		{ID: "llama-3.2-3b", SizeGB: 1.9, Installed: true},
		{ID: "qwen-2.5-7b", SizeGB: 4.4, Installed: false},
	}
}

func newTestOrchestrator(mock *mockController) *Orchestrator {
	return NewOrchestrator(mock, util.NewTimeoutConfig())
}

// -----------------------------------------------------------------------------
// Dashboard
// -----------------------------------------------------------------------------

func TestOrchestrator_Dashboard_AllSections(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Report == nil || outcome.Prompt != nil {
		t.Fatal("dashboard should produce a report, not a prompt")
	}

	sections := outcome.Report.Sections
	if len(sections) != 5 {
		t.Fatalf("len(sections) = %d, want 5", len(sections))
	}
	wantLabels := []string{"Health", "Stats", "System", "Live", "Models"}
	for i, want := range wantLabels {
		if sections[i].Label != want {
			t.Errorf("section %d label = %s, want %s", i, sections[i].Label, want)
		}
		if sections[i].Err != nil {
			t.Errorf("section %s unexpectedly degraded: %v", want, sections[i].Err)
		}
	}
	if !strings.Contains(sections[4].Body, "llama-3.2-3b") {
		t.Errorf("models section missing catalog: %q", sections[4].Body)
	}
}

func TestOrchestrator_Dashboard_PartialFailure(t *testing.T) {
	mock := &mockController{
		models:   testCatalog(),
		statsErr: &lemonade.ControlError{Type: lemonade.ErrorUpstream, Message: "stats down"},
	}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "dashboard")
	if err != nil {
		t.Fatalf("one dead endpoint must not fail the dashboard: %v", err)
	}

	sections := outcome.Report.Sections
	if len(sections) != 5 {
		t.Fatalf("degraded dashboard must keep all 5 sections, got %d", len(sections))
	}
	if sections[1].Err == nil {
		t.Error("stats section should carry its error")
	}
	if sections[0].Err != nil || sections[3].Err != nil {
		t.Error("healthy sections should be unaffected")
	}
	if outcome.Report.Failed() {
		t.Error("partially degraded dashboard is not a failure")
	}
}

// -----------------------------------------------------------------------------
// Status Commands
// -----------------------------------------------------------------------------

func TestOrchestrator_Health_SingleSection(t *testing.T) {
	o := newTestOrchestrator(&mockController{})

	outcome, err := o.Execute(context.Background(), "health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sections := outcome.Report.Sections
	if len(sections) != 1 || sections[0].Label != "Health" {
		t.Fatalf("health should produce one Health section, got %+v", sections)
	}
	if !strings.Contains(sections[0].Body, `"status": "ok"`) {
		t.Errorf("health body = %q", sections[0].Body)
	}
}

func TestOrchestrator_Health_Failure(t *testing.T) {
	mock := &mockController{
		healthErr: &lemonade.ControlError{Type: lemonade.ErrorUpstream, Message: "down"},
	}
	o := newTestOrchestrator(mock)

	_, err := o.Execute(context.Background(), "health")
	if err == nil {
		t.Fatal("single-endpoint command should fail hard when the endpoint fails")
	}
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorUpstream {
		t.Errorf("expected upstream ControlError, got %v", err)
	}
}

func TestOrchestrator_Models_UsesInstalledCatalog(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.listShowAll) != 1 || mock.listShowAll[0] {
		t.Errorf("models command should list without show_all, got %v", mock.listShowAll)
	}
	if !strings.Contains(outcome.Report.Sections[0].Body, "[DL]") {
		t.Errorf("models body missing installed marker: %q", outcome.Report.Sections[0].Body)
	}
}

func TestOrchestrator_UnknownCommand(t *testing.T) {
	o := newTestOrchestrator(&mockController{})

	_, err := o.Execute(context.Background(), "selfdestruct")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("expected invalid-input ControlError, got %v", err)
	}
}

// -----------------------------------------------------------------------------
// Two-Step Flows
// -----------------------------------------------------------------------------

func TestOrchestrator_Pull_OpensFlowWithFullCatalog(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "pull")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Prompt == nil || outcome.Report != nil {
		t.Fatal("pull should produce a prompt, not a report")
	}
	if len(mock.listShowAll) != 1 || !mock.listShowAll[0] {
		t.Errorf("pull should list with show_all=true, got %v", mock.listShowAll)
	}
	if len(outcome.Prompt.Options) != 2 {
		t.Errorf("prompt should offer the full catalog, got %v", outcome.Prompt.Options)
	}
	if outcome.Prompt.Command != CommandPull {
		t.Errorf("prompt command = %v, want pull", outcome.Prompt.Command)
	}
	if len(mock.pullCalls) != 0 {
		t.Error("opening the flow must not trigger a pull")
	}
}

func TestOrchestrator_Delete_OffersOnlyInstalled(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "delete")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.listShowAll) != 1 || mock.listShowAll[0] {
		t.Errorf("delete should list installed models only, got %v", mock.listShowAll)
	}
	if len(outcome.Prompt.Options) != 1 || outcome.Prompt.Options[0] != "llama-3.2-3b" {
		t.Errorf("delete prompt should offer only installed models, got %v", outcome.Prompt.Options)
	}
}

func TestOrchestrator_Delete_NothingInstalled(t *testing.T) {
	mock := &mockController{models: []lemonade.ModelDescriptor{
		{ID: "qwen-2.5-7b", Installed: false},
	}}
	o := newTestOrchestrator(mock)

	_, err := o.Execute(context.Background(), "delete")
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("expected invalid-input error with nothing to delete, got %v", err)
	}
	if len(mock.deleteCalls) != 0 {
		t.Error("no delete should be issued")
	}
}

func TestOrchestrator_Complete_Pull(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "pull")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := o.Complete(context.Background(), outcome.Prompt.FlowID, "qwen-2.5-7b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.pullCalls) != 1 || mock.pullCalls[0] != "qwen-2.5-7b" {
		t.Errorf("pull calls = %v, want exactly [qwen-2.5-7b]", mock.pullCalls)
	}
	if !strings.Contains(result.Report.Sections[0].Body, "qwen-2.5-7b") {
		t.Errorf("completion report missing model id: %q", result.Report.Sections[0].Body)
	}
}

func TestOrchestrator_Complete_UnofferedModel_NeverCallsServer(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, err := o.Execute(context.Background(), "pull")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = o.Complete(context.Background(), outcome.Prompt.FlowID, "not-in-catalog")
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
	if len(mock.pullCalls) != 0 {
		t.Errorf("rejected selection must not reach the server, calls = %v", mock.pullCalls)
	}
}

func TestOrchestrator_Complete_EmptySelection(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, _ := o.Execute(context.Background(), "delete")
	_, err := o.Complete(context.Background(), outcome.Prompt.FlowID, "   ")
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("expected invalid-input error for empty selection, got %v", err)
	}
	if len(mock.deleteCalls) != 0 {
		t.Error("empty selection must not reach the server")
	}
}

func TestOrchestrator_Complete_UnknownFlow(t *testing.T) {
	o := newTestOrchestrator(&mockController{models: testCatalog()})

	_, err := o.Complete(context.Background(), uuid.New(), "llama-3.2-3b")
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("expected invalid-input error for unknown flow, got %v", err)
	}
}

func TestOrchestrator_Complete_Twice(t *testing.T) {
	mock := &mockController{models: testCatalog()}
	o := newTestOrchestrator(mock)

	outcome, _ := o.Execute(context.Background(), "delete")
	if _, err := o.Complete(context.Background(), outcome.Prompt.FlowID, "llama-3.2-3b"); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	_, err := o.Complete(context.Background(), outcome.Prompt.FlowID, "llama-3.2-3b")
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorInvalidInput {
		t.Errorf("expected invalid-input error on reuse, got %v", err)
	}
	if len(mock.deleteCalls) != 1 {
		t.Errorf("delete must fire exactly once, calls = %v", mock.deleteCalls)
	}
}

func TestOrchestrator_Complete_ServerFailurePropagates(t *testing.T) {
	mock := &mockController{
		models:  testCatalog(),
		pullErr: &lemonade.ControlError{Type: lemonade.ErrorTimeout, Message: "request to pull timed out"},
	}
	o := newTestOrchestrator(mock)

	outcome, _ := o.Execute(context.Background(), "pull")
	_, err := o.Complete(context.Background(), outcome.Prompt.FlowID, "llama-3.2-3b")
	var ce *lemonade.ControlError
	if !errors.As(err, &ce) || ce.Type != lemonade.ErrorTimeout {
		t.Errorf("expected timeout error to propagate, got %v", err)
	}
}
