// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package prompt obtains model selections from the operator.
//
// The orchestrator's pull and delete flows stop at a PromptRequest; this
// package turns that request into an actual question. On a terminal the
// InteractivePrompter renders a form (free-text input for pull, a select
// list for delete). When stdin is a pipe the NonInteractivePrompter
// rejects immediately with a hint to pass the model id as an argument,
// so scripts never hang waiting for input.
package prompt
