// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package panel contains the command orchestration for the Lemonade
// control panel.
//
// # Problem Statement
//
// Operators issue short text commands ("pull", "health", or nothing at
// all) and expect either an immediate status report or, for mutating
// actions, a guarded two-step flow: see the catalog first, pick a model,
// then act. A mutating request must never fire for a model that was not
// shown, and one dead endpoint must not take the whole dashboard down.
//
// # Solution
//
// Three pieces:
//
//   - ResolveCommand maps free-form text to a Command (empty text is the
//     dashboard; unknown text is rejected, never forwarded).
//   - Orchestrator executes commands. The dashboard fans out to five
//     endpoints concurrently with per-call timeouts and degrades failed
//     sections in place. Pull and delete open a flow: Execute returns a
//     PromptRequest with the catalog frozen as the only valid options,
//     and Complete validates the selection against that snapshot before
//     touching the server.
//   - Report renders the outcome as styled cards.
//
//	Execute("pull") ──▶ PromptRequest{FlowID, Options}
//	                        │  operator picks
//	Complete(FlowID, id) ──▶ validate against Options ──▶ POST /api/v1/pull
package panel
