// Package client provides an HTTP client for the DeepPath standard MCP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/deeppath/deeppath-mcp/pkg/types"
)

// StandardMcpPath is the path, relative to the base URL, of the single DeepPath endpoint that
// lists (GET) and executes (POST) functions.
const StandardMcpPath = "/api/mcp/standard"

// Client talks to the DeepPath API on behalf of the adapter.
// It is safe for concurrent use; nothing in it is mutated after construction.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new DeepPath API client.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(baseURL, accessToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  httpClient,
	}
}

// Endpoint returns the full URL of the standard MCP endpoint.
func (c *Client) Endpoint() string {
	u, _ := c.constructAPIEndpoint(StandardMcpPath)
	return u
}

// APIError is returned when the DeepPath API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status: %d, message: %s", e.StatusCode, e.Message)
}

func (c *Client) constructAPIEndpoint(suffixPath string) (string, error) {
	return url.JoinPath(c.baseURL, suffixPath)
}

// newRequest creates a new HTTP request with the bearer credential attached.
func (c *Client) newRequest(ctx context.Context, method, u string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// parseErrorResponse builds an *APIError out of a non-2xx response.
// The message is taken from the structured {"error": "..."} body when present,
// otherwise from the raw body, otherwise from the HTTP status text.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	msg := ""
	var errResp types.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		msg = errResp.Error
	} else {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
