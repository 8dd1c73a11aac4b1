// Copyright (C) 2025 The Lemonpanel Authors (maintainers@lemonpanel.dev)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package lemonade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// -----------------------------------------------------------------------------
// Data Types
// -----------------------------------------------------------------------------

// ModelDescriptor describes a model known to the Lemonade server.
type ModelDescriptor struct {
	// ID is the model identifier used for pull and delete requests.
	ID string

	// Installed reports whether the model is downloaded locally.
	Installed bool

	// SizeGB is the reported model size in gigabytes. Zero when unknown.
	SizeGB float64

	// Metadata carries optional descriptive fields (checkpoint, recipe).
	Metadata map[string]string
}

// modelEntry is the wire representation of a single model in the list response.
type modelEntry struct {
	ID         string  `json:"id"`
	Size       float64 `json:"size"`
	Downloaded bool    `json:"downloaded"`
	Checkpoint string  `json:"checkpoint,omitempty"`
	Recipe     string  `json:"recipe,omitempty"`
}

// modelListResponse is the wire representation of the model list endpoint.
type modelListResponse struct {
	Data []modelEntry `json:"data"`
}

// actionRequest is the body for pull and delete requests.
type actionRequest struct {
	ModelName string `json:"model_name"`
}

// -----------------------------------------------------------------------------
// ServerController Interface
// -----------------------------------------------------------------------------

// ServerController defines the operations the panel performs against a
// Lemonade server. The concrete implementation is Client; tests substitute
// a mock.
type ServerController interface {
	// Health fetches the server health payload.
	Health(ctx context.Context) (json.RawMessage, error)

	// Stats fetches performance statistics from the last request.
	Stats(ctx context.Context) (json.RawMessage, error)

	// SystemInfo fetches host hardware and software details.
	SystemInfo(ctx context.Context) (json.RawMessage, error)

	// Live fetches the liveness payload. This endpoint lives at the server
	// root rather than under the API prefix.
	Live(ctx context.Context) (json.RawMessage, error)

	// ListModels fetches the model catalog. With showAll set the server
	// includes models that are not downloaded yet.
	ListModels(ctx context.Context, showAll bool) ([]ModelDescriptor, json.RawMessage, error)

	// PullModel asks the server to download a model by id.
	PullModel(ctx context.Context, modelID string) (json.RawMessage, error)

	// DeleteModel asks the server to remove a downloaded model by id.
	DeleteModel(ctx context.Context, modelID string) (json.RawMessage, error)

	// BaseURL returns the server base URL for display.
	BaseURL() string
}

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client is the HTTP implementation of ServerController.
//
// # Description
//
// Client issues requests against a Lemonade server's management API. All
// status endpoints live under {base}/api/v1; the liveness endpoint lives at
// {base}/live. Deadlines are controlled entirely by the caller's context so
// that status calls and long-running pulls can use different budgets over
// the same client.
//
// # Thread Safety
//
// Client is safe for concurrent use; it holds no mutable state beyond the
// underlying http.Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given server base URL.
//
// # Inputs
//
//   - baseURL: Server root, e.g. "http://localhost:8000". A trailing slash
//     is stripped.
//
// # Outputs
//
//   - *Client: Ready to use; per-call timeouts come from the context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client-level timeout: callers bound each request with a
		// context deadline (20s for status, up to 30m for pulls).
		httpClient: &http.Client{},
	}
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health fetches {base}/api/v1/health.
func (c *Client) Health(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "health", c.baseURL+"/api/v1/health")
}

// Stats fetches {base}/api/v1/stats.
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "stats", c.baseURL+"/api/v1/stats")
}

// SystemInfo fetches {base}/api/v1/system-info.
func (c *Client) SystemInfo(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "system-info", c.baseURL+"/api/v1/system-info")
}

// Live fetches {base}/live. Unlike the other status endpoints this one is
// served at the root, not under the API prefix.
func (c *Client) Live(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, "live", c.baseURL+"/live")
}

// ListModels fetches the model catalog.
//
// # Description
//
// Calls {base}/api/v1/models, with ?show_all=true when showAll is set, and
// parses the response into ModelDescriptors. The raw body is returned
// alongside the parsed list so callers can render it verbatim.
//
// # Inputs
//
//   - ctx: Deadline-bearing context
//   - showAll: Include models that are not downloaded
//
// # Outputs
//
//   - []ModelDescriptor: Parsed model entries, in server order
//   - json.RawMessage: The raw response body
//   - error: *ControlError on timeout, transport failure, non-success
//     status, or a body that does not match the expected shape
func (c *Client) ListModels(ctx context.Context, showAll bool) ([]ModelDescriptor, json.RawMessage, error) {
	url := c.baseURL + "/api/v1/models"
	if showAll {
		url += "?show_all=true"
	}

	body, err := c.getRaw(ctx, "models", url)
	if err != nil {
		return nil, nil, err
	}

	var parsed modelListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, &ControlError{
			Type:        ErrorUpstream,
			Endpoint:    "models",
			Message:     "server returned a malformed model list",
			Detail:      err.Error(),
			Remediation: "Check that the configured base URL points at a Lemonade server, not another service.",
		}
	}

	models := make([]ModelDescriptor, 0, len(parsed.Data))
	for _, entry := range parsed.Data {
		desc := ModelDescriptor{
			ID:        entry.ID,
			Installed: entry.Downloaded,
			SizeGB:    entry.Size,
		}
		if entry.Checkpoint != "" || entry.Recipe != "" {
			desc.Metadata = map[string]string{}
			if entry.Checkpoint != "" {
				desc.Metadata["checkpoint"] = entry.Checkpoint
			}
			if entry.Recipe != "" {
				desc.Metadata["recipe"] = entry.Recipe
			}
		}
		models = append(models, desc)
	}

	slog.Debug("listed models", "count", len(models), "show_all", showAll)
	return models, body, nil
}

// PullModel requests a model download.
//
// # Description
//
// Posts {"model_name": modelID} to {base}/api/v1/pull. The call blocks
// until the server finishes (or the context deadline fires), so callers
// should budget a generous timeout.
func (c *Client) PullModel(ctx context.Context, modelID string) (json.RawMessage, error) {
	body, err := c.postAction(ctx, "pull", c.baseURL+"/api/v1/pull", modelID)
	if err != nil {
		return nil, err
	}
	slog.Info("model pull completed", "model", modelID)
	return body, nil
}

// DeleteModel requests a model removal.
//
// # Description
//
// Posts {"model_name": modelID} to {base}/api/v1/delete.
func (c *Client) DeleteModel(ctx context.Context, modelID string) (json.RawMessage, error) {
	body, err := c.postAction(ctx, "delete", c.baseURL+"/api/v1/delete", modelID)
	if err != nil {
		return nil, err
	}
	slog.Info("model deleted", "model", modelID)
	return body, nil
}

// -----------------------------------------------------------------------------
// HTTP Helpers
// -----------------------------------------------------------------------------

// getRaw issues a GET and returns the response body on success.
func (c *Client) getRaw(ctx context.Context, endpoint, url string) (json.RawMessage, error) {
	slog.Debug("fetching endpoint", "endpoint", endpoint, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ControlError{
			Type:     ErrorUpstream,
			Endpoint: endpoint,
			Message:  "failed to build request",
			Detail:   err.Error(),
		}
	}

	return c.do(req, endpoint)
}

// postAction issues a model action POST and returns the response body.
func (c *Client) postAction(ctx context.Context, endpoint, url, modelID string) (json.RawMessage, error) {
	payload, err := json.Marshal(actionRequest{ModelName: modelID})
	if err != nil {
		return nil, &ControlError{
			Type:     ErrorUpstream,
			Endpoint: endpoint,
			Model:    modelID,
			Message:  "failed to encode request",
			Detail:   err.Error(),
		}
	}

	slog.Debug("posting model action", "endpoint", endpoint, "model", modelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ControlError{
			Type:     ErrorUpstream,
			Endpoint: endpoint,
			Model:    modelID,
			Message:  "failed to build request",
			Detail:   err.Error(),
		}
	}
	req.Header.Set("Content-Type", "application/json")

	body, doErr := c.do(req, endpoint)
	if doErr != nil {
		var ce *ControlError
		if errors.As(doErr, &ce) {
			ce.Model = modelID
		}
		return nil, doErr
	}
	return body, nil
}

// do executes the request and classifies failures into ControlErrors.
func (c *Client) do(req *http.Request, endpoint string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &ControlError{
				Type:        ErrorTimeout,
				Endpoint:    endpoint,
				Message:     fmt.Sprintf("request to %s timed out", endpoint),
				Detail:      err.Error(),
				Remediation: "Increase timeout_seconds in the configuration, or check server load.",
			}
		}
		return nil, &ControlError{
			Type:        ErrorUpstream,
			Endpoint:    endpoint,
			Message:     fmt.Sprintf("cannot reach Lemonade server at %s", c.baseURL),
			Detail:      err.Error(),
			Remediation: "Check that the Lemonade server is running and base_url is correct.",
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ControlError{
			Type:     ErrorUpstream,
			Endpoint: endpoint,
			Message:  "failed to read server response",
			Detail:   err.Error(),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ControlError{
			Type:        ErrorUpstream,
			Endpoint:    endpoint,
			Message:     fmt.Sprintf("server returned status %d for %s", resp.StatusCode, endpoint),
			Detail:      truncateBody(body),
			Remediation: "Check the server logs for details.",
		}
	}

	return body, nil
}

// truncateBody caps an error body for inclusion in error details.
func truncateBody(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
