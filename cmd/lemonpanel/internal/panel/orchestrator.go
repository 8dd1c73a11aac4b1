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
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/util"
)

// -----------------------------------------------------------------------------
// Flow State
// -----------------------------------------------------------------------------

// flowState tracks the lifecycle of a two-step model action.
type flowState int

const (
	flowAwaitingSelection flowState = iota
	flowCompleted
)

// flow captures a pending model action between the prompt and the
// operator's selection. Options are frozen at prompt time: only a model
// offered in the prompt may be acted on.
type flow struct {
	command Command
	options map[string]lemonade.ModelDescriptor
	state   flowState
}

// PromptRequest asks the caller to obtain a model selection from the
// operator before the action proceeds.
type PromptRequest struct {
	// FlowID identifies the pending flow for Complete.
	FlowID uuid.UUID

	// Command is the action awaiting a selection (pull or delete).
	Command Command

	// Title is the prompt headline.
	Title string

	// Message is the rendered model list shown above the prompt.
	Message string

	// Placeholder is the input hint for free-text entry.
	Placeholder string

	// Options are the selectable model ids, in display order.
	Options []string

	// Models are the descriptors behind Options, for richer prompts.
	Models []lemonade.ModelDescriptor
}

// Outcome is the result of a panel operation: either a renderable report,
// or a prompt request that must be completed first. Exactly one is set.
type Outcome struct {
	Report *Report
	Prompt *PromptRequest
}

// -----------------------------------------------------------------------------
// Orchestrator
// -----------------------------------------------------------------------------

// Orchestrator executes panel commands against a Lemonade server.
//
// # Description
//
// The orchestrator resolves command text, fans status calls out with
// per-call timeouts, and manages the two-step flow for mutating actions:
// pull and delete first return a PromptRequest carrying the current model
// catalog, and only Complete with a model id from that catalog reaches the
// server. A model id that was never offered is rejected without any
// request being sent.
//
// # Thread Safety
//
// Safe for concurrent use. Flow state is guarded by a mutex.
type Orchestrator struct {
	client   lemonade.ServerController
	timeouts util.TimeoutConfig

	mu    sync.Mutex
	flows map[uuid.UUID]*flow
}

// NewOrchestrator creates an Orchestrator using the given client and
// timeouts. Timeouts below the minimum are raised.
func NewOrchestrator(client lemonade.ServerController, timeouts util.TimeoutConfig) *Orchestrator {
	return &Orchestrator{
		client:   client,
		timeouts: timeouts.Validated(),
		flows:    make(map[uuid.UUID]*flow),
	}
}

// Execute runs a panel command.
//
// # Description
//
// Resolves the command text and dispatches. Status commands return a
// report; pull and delete return a PromptRequest for the second step.
//
// # Inputs
//
//   - ctx: Cancellation context; per-call deadlines are layered on top
//   - text: Raw command text (empty resolves to the dashboard)
//
// # Outputs
//
//   - *Outcome: Report or prompt, never both
//   - error: *lemonade.ControlError on unknown commands or fetch failure
func (o *Orchestrator) Execute(ctx context.Context, text string) (*Outcome, error) {
	cmd, err := ResolveCommand(text)
	if err != nil {
		return nil, err
	}

	slog.Debug("executing panel command", "command", cmd.String())

	switch cmd {
	case CommandDashboard:
		return o.runDashboard(ctx)
	case CommandPull, CommandDelete:
		return o.beginModelFlow(ctx, cmd)
	case CommandHealth:
		return o.runStatus(ctx, "Health", cmd, o.client.Health)
	case CommandStats:
		return o.runStatus(ctx, "Stats", cmd, o.client.Stats)
	case CommandSystem:
		return o.runStatus(ctx, "System", cmd, o.client.SystemInfo)
	case CommandLive:
		return o.runStatus(ctx, "Live", cmd, o.client.Live)
	case CommandModels:
		return o.runModels(ctx)
	default:
		return nil, &lemonade.ControlError{
			Type:    lemonade.ErrorInvalidInput,
			Message: fmt.Sprintf("command %q is not executable", cmd),
		}
	}
}

// Complete finishes a pending model flow with the operator's selection.
//
// # Description
//
// Validates the selection against the options captured at prompt time,
// then issues the pull or delete with its dedicated execution timeout.
// Unknown flows, repeated completions, empty selections, and model ids
// that were not offered are all rejected before any request is sent.
//
// # Inputs
//
//   - ctx: Cancellation context
//   - flowID: Identifier from the PromptRequest
//   - modelID: The operator's selection
//
// # Outputs
//
//   - *Outcome: Report describing the completed action
//   - error: *lemonade.ControlError; ErrorInvalidInput for rejected
//     selections, ErrorTimeout/ErrorUpstream from the server call
func (o *Orchestrator) Complete(ctx context.Context, flowID uuid.UUID, modelID string) (*Outcome, error) {
	modelID = strings.TrimSpace(modelID)

	o.mu.Lock()
	f, ok := o.flows[flowID]
	if !ok {
		o.mu.Unlock()
		return nil, &lemonade.ControlError{
			Type:        lemonade.ErrorInvalidInput,
			Message:     "unknown or expired flow",
			Remediation: "Run the pull or delete command again to get a fresh prompt.",
		}
	}
	if f.state != flowAwaitingSelection {
		o.mu.Unlock()
		return nil, &lemonade.ControlError{
			Type:    lemonade.ErrorInvalidInput,
			Message: "flow already completed",
		}
	}
	if modelID == "" {
		o.mu.Unlock()
		return nil, &lemonade.ControlError{
			Type:        lemonade.ErrorInvalidInput,
			Message:     "no model selected",
			Remediation: "Provide one of the model ids listed in the prompt.",
		}
	}
	if _, offered := f.options[modelID]; !offered {
		o.mu.Unlock()
		return nil, &lemonade.ControlError{
			Type:        lemonade.ErrorInvalidInput,
			Model:       modelID,
			Message:     fmt.Sprintf("model %q was not offered for %s", modelID, f.command),
			Remediation: "Provide one of the model ids listed in the prompt.",
		}
	}
	// Mark completed before issuing the call so a retry cannot trigger
	// the action twice.
	f.state = flowCompleted
	command := f.command
	o.mu.Unlock()

	switch command {
	case CommandPull:
		return o.finishAction(ctx, "Pull", modelID, o.timeouts.Pull, o.client.PullModel)
	case CommandDelete:
		return o.finishAction(ctx, "Delete", modelID, o.timeouts.Delete, o.client.DeleteModel)
	default:
		return nil, &lemonade.ControlError{
			Type:    lemonade.ErrorInvalidInput,
			Message: fmt.Sprintf("flow command %q does not take a model", command),
		}
	}
}

// -----------------------------------------------------------------------------
// Command Execution
// -----------------------------------------------------------------------------

// dashboardSections is the fixed section order of the dashboard.
var dashboardSections = []string{"Health", "Stats", "System", "Live", "Models"}

// runDashboard fetches all status endpoints concurrently and assembles
// the multi-section dashboard. Individual failures degrade their section
// instead of failing the whole report.
func (o *Orchestrator) runDashboard(ctx context.Context) (*Outcome, error) {
	sections := make([]Section, len(dashboardSections))
	fetchers := []func(context.Context) (string, error){
		func(ctx context.Context) (string, error) { return o.fetchJSON(ctx, o.client.Health) },
		func(ctx context.Context) (string, error) { return o.fetchJSON(ctx, o.client.Stats) },
		func(ctx context.Context) (string, error) { return o.fetchJSON(ctx, o.client.SystemInfo) },
		func(ctx context.Context) (string, error) { return o.fetchJSON(ctx, o.client.Live) },
		func(ctx context.Context) (string, error) {
			models, _, err := o.client.ListModels(ctx, false)
			if err != nil {
				return "", err
			}
			return FormatModelList(models), nil
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range fetchers {
		i := i
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(gctx, o.timeouts.Request)
			defer cancel()

			body, err := fetchers[i](callCtx)
			sections[i] = Section{Label: dashboardSections[i], Body: body, Err: err}
			if err != nil {
				slog.Debug("dashboard section degraded",
					"section", dashboardSections[i], "error", err)
			}
			// Section errors degrade, they never cancel the siblings.
			return nil
		})
	}
	g.Wait()

	return &Outcome{Report: &Report{
		Title:    "Lemonade Control Panel",
		Badge:    "dashboard",
		Sections: sections,
	}}, nil
}

// runStatus fetches a single status endpoint into a one-section report.
func (o *Orchestrator) runStatus(ctx context.Context, label string, cmd Command,
	fetch func(context.Context) (json.RawMessage, error)) (*Outcome, error) {

	body, err := o.fetchJSON(ctx, fetch)
	if err != nil {
		return nil, err
	}
	return &Outcome{Report: &Report{
		Title:    "Lemonade Control Panel",
		Badge:    cmd.String(),
		Sections: []Section{{Label: label, Body: body}},
	}}, nil
}

// runModels lists the installed catalog into a one-section report.
func (o *Orchestrator) runModels(ctx context.Context) (*Outcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeouts.Request)
	defer cancel()

	models, _, err := o.client.ListModels(callCtx, false)
	if err != nil {
		return nil, err
	}
	return &Outcome{Report: &Report{
		Title:    "Lemonade Control Panel",
		Badge:    "models",
		Sections: []Section{{Label: "Models", Body: FormatModelList(models)}},
	}}, nil
}

// fetchJSON runs a status fetch under the request timeout and
// pretty-prints the result.
func (o *Orchestrator) fetchJSON(ctx context.Context,
	fetch func(context.Context) (json.RawMessage, error)) (string, error) {

	callCtx, cancel := context.WithTimeout(ctx, o.timeouts.Request)
	defer cancel()

	raw, err := fetch(callCtx)
	if err != nil {
		return "", err
	}
	return FormatJSON(raw), nil
}

// beginModelFlow lists the relevant catalog and opens a pending flow.
// Pull offers the full catalog (including models not yet downloaded);
// delete offers only installed models.
func (o *Orchestrator) beginModelFlow(ctx context.Context, cmd Command) (*Outcome, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeouts.Request)
	defer cancel()

	models, _, err := o.client.ListModels(callCtx, cmd == CommandPull)
	if err != nil {
		return nil, err
	}

	if cmd == CommandDelete {
		installed := models[:0:0]
		for _, m := range models {
			if m.Installed {
				installed = append(installed, m)
			}
		}
		models = installed
	}

	if len(models) == 0 {
		return nil, &lemonade.ControlError{
			Type:        lemonade.ErrorInvalidInput,
			Message:     fmt.Sprintf("no models available to %s", cmd),
			Remediation: "Check the server's model catalog with the models command.",
		}
	}

	options := make(map[string]lemonade.ModelDescriptor, len(models))
	ids := make([]string, 0, len(models))
	for _, m := range models {
		options[m.ID] = m
		ids = append(ids, m.ID)
	}

	id := uuid.New()
	o.mu.Lock()
	o.flows[id] = &flow{command: cmd, options: options, state: flowAwaitingSelection}
	o.mu.Unlock()

	title := "Pull a model"
	message := "Available models:\n" + FormatModelList(models)
	if cmd == CommandDelete {
		title = "Delete a model"
		message = "Installed models:\n" + FormatModelList(models)
	}

	slog.Debug("opened model flow", "flow", id, "command", cmd.String(), "options", len(ids))

	return &Outcome{Prompt: &PromptRequest{
		FlowID:      id,
		Command:     cmd,
		Title:       title,
		Message:     message,
		Placeholder: "model id",
		Options:     ids,
		Models:      models,
	}}, nil
}

// finishAction issues the model action under its execution timeout and
// builds the completion report.
func (o *Orchestrator) finishAction(ctx context.Context, label, modelID string,
	timeout time.Duration,
	action func(context.Context, string) (json.RawMessage, error)) (*Outcome, error) {

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := action(callCtx, modelID)
	if err != nil {
		return nil, err
	}

	return &Outcome{Report: &Report{
		Title:    fmt.Sprintf("%s complete", label),
		Badge:    strings.ToLower(label),
		Sections: []Section{{
			Label: label,
			Body:  fmt.Sprintf("Model: %s\n%s", modelID, FormatJSON(body)),
		}},
	}}, nil
}
