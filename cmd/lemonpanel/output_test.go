// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"testing"
	"time"

	"github.com/lemonpanel/lemonpanel/cmd/lemonpanel/internal/panel"
)

func TestReportPayload(t *testing.T) {
	report := &panel.Report{
		Title: "Lemonade Control Panel",
		Sections: []panel.Section{
			{Label: "Health", Body: `{"status": "ok"}`},
			{Label: "Stats", Err: errors.New("stats down")},
		},
	}

	payload := reportPayload(report)
	if payload.Title != "Lemonade Control Panel" {
		t.Errorf("Title = %s", payload.Title)
	}
	if len(payload.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(payload.Sections))
	}
	if payload.Sections[0].Body == "" || payload.Sections[0].Error != "" {
		t.Errorf("healthy section payload wrong: %+v", payload.Sections[0])
	}
	if payload.Sections[1].Error != "stats down" {
		t.Errorf("degraded section payload wrong: %+v", payload.Sections[1])
	}
}

func TestOutputResult_QuietExitCodes(t *testing.T) {
	cfg := OutputConfig{Quiet: true}
	start := time.Now()

	if code := OutputResult(cfg, "health", start, nil, false, nil); code != CLIExitSuccess {
		t.Errorf("success code = %d, want %d", code, CLIExitSuccess)
	}
	if code := OutputResult(cfg, "dashboard", start, nil, true, nil); code != CLIExitFindings {
		t.Errorf("findings code = %d, want %d", code, CLIExitFindings)
	}
	if code := OutputResult(cfg, "pull", start, nil, false, errors.New("boom")); code != CLIExitError {
		t.Errorf("error code = %d, want %d", code, CLIExitError)
	}
}

func TestOutputResult_ErrorBeatsFindings(t *testing.T) {
	cfg := OutputConfig{Quiet: true}
	code := OutputResult(cfg, "dashboard", time.Now(), nil, true, errors.New("boom"))
	if code != CLIExitError {
		t.Errorf("code = %d, want %d", code, CLIExitError)
	}
}
