// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/config"
	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/lemonade"
	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/panel"
	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/prompt"
	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/util"
	"github.com/lemonpanel/lemonpanel/pkg/ux"
)

// -----------------------------------------------------------------------------
// Run Functions
// -----------------------------------------------------------------------------

func runPanel(cmd *cobra.Command, args []string) {
	os.Exit(executePanel(strings.Join(args, " "), ""))
}

func runHealth(cmd *cobra.Command, args []string) { os.Exit(executePanel("health", "")) }
func runStats(cmd *cobra.Command, args []string)  { os.Exit(executePanel("stats", "")) }
func runSystem(cmd *cobra.Command, args []string) { os.Exit(executePanel("system", "")) }
func runLive(cmd *cobra.Command, args []string)   { os.Exit(executePanel("live", "")) }
func runModels(cmd *cobra.Command, args []string) { os.Exit(executePanel("models", "")) }

func runPull(cmd *cobra.Command, args []string) {
	os.Exit(executePanel("pull", firstArg(args)))
}

func runDelete(cmd *cobra.Command, args []string) {
	os.Exit(executePanel("delete", firstArg(args)))
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// -----------------------------------------------------------------------------
// Execution
// -----------------------------------------------------------------------------

// executePanel runs a panel command end to end and returns the exit code.
//
// # Description
//
// Loads the configuration, executes the command through the orchestrator,
// and resolves any prompt: a model id given on the command line is used
// directly; otherwise the operator is asked (free-text input for pull, a
// select list for delete). The final report renders as styled cards, or
// as a CommandResult envelope with --json.
func executePanel(text, modelArg string) int {
	start := time.Now()
	outCfg := OutputConfig{JSON: jsonOutput, Quiet: quietOutput}
	commandName := strings.TrimSpace(text)
	if commandName == "" {
		commandName = "dashboard"
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return failWith(outCfg, "Configuration error", err)
	}

	timeouts := util.NewTimeoutConfig()
	timeouts.Request = cfg.Timeout()

	orch := panel.NewOrchestrator(lemonade.NewClient(cfg.BaseURL), timeouts)
	ctx := context.Background()

	outcome, err := orch.Execute(ctx, text)
	if err != nil {
		return failWith(outCfg, "Command failed", err)
	}

	if outcome.Prompt != nil {
		outcome, err = resolvePrompt(ctx, orch, outcome.Prompt, modelArg)
		if err != nil {
			return failWith(outCfg, "Command failed", err)
		}
	}

	report := outcome.Report
	if outCfg.JSON || outCfg.Quiet {
		return OutputResult(outCfg, commandName, start, reportPayload(report), report.Failed(), nil)
	}

	fmt.Println(report.Render())
	if report.Failed() {
		return CLIExitFindings
	}
	return CLIExitSuccess
}

// resolvePrompt turns a PromptRequest into a completed flow.
func resolvePrompt(ctx context.Context, orch *panel.Orchestrator,
	req *panel.PromptRequest, modelArg string) (*panel.Outcome, error) {

	selection := strings.TrimSpace(modelArg)
	if selection == "" {
		prompter := prompt.NewPrompter()
		var err error
		switch req.Command {
		case panel.CommandDelete:
			selection, err = prompter.Select(req.Title, req.Message, req.Options)
		default:
			selection, err = prompter.Input(req.Title, req.Message, req.Placeholder)
		}
		if err != nil {
			return nil, err
		}
	}

	return orch.Complete(ctx, req.FlowID, selection)
}

// loadEffectiveConfig loads the configuration and layers command-line
// flags on top.
func loadEffectiveConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if timeoutSeconds > 0 {
		cfg.TimeoutSeconds = timeoutSeconds
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// failWith reports an error in the selected format and returns the exit
// code.
func failWith(outCfg OutputConfig, msg string, err error) int {
	if outCfg.Quiet {
		return CLIExitError
	}
	if outCfg.JSON {
		OutputError(true, msg, err)
		return CLIExitError
	}

	var ce *lemonade.ControlError
	if errors.As(err, &ce) {
		ux.Errorf("%s", ce.FullError())
	} else {
		ux.Errorf("%s: %v", msg, err)
	}
	return CLIExitError
}
