package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/deeppath/deeppath-mcp/pkg/types"
)

// ListFunctions fetches the descriptors of all functions supported by the DeepPath API.
func (c *Client) ListFunctions(ctx context.Context) ([]types.Function, error) {
	u := c.Endpoint()

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", u, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", u, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.parseErrorResponse(resp)
	}

	var listResp types.ListFunctionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return listResp.Functions, nil
}

// CallFunction executes a function on the DeepPath API and returns the raw JSON response body.
// The parameters are forwarded unchanged inside the {"functionCall": {...}} envelope.
// Exactly one request is sent; there are no retries.
func (c *Client) CallFunction(ctx context.Context, name string, params map[string]any) (json.RawMessage, error) {
	u := c.Endpoint()

	body, err := json.Marshal(types.NewFunctionCallRequest(name, params))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal function call %s: %w", name, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request to %s: %w", u, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to %s: %w", u, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, c.parseErrorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, nil
}
