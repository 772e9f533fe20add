package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deeppath/deeppath-mcp/client"
	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/deeppath/deeppath-mcp/internal/telemetry"
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleArgs builds a plausible argument bag for a tool out of its descriptor.
func sampleArgs(d types.ToolDescriptor) map[string]any {
	args := make(map[string]any)
	for i, p := range d.Params {
		switch {
		case len(p.Enum) > 0:
			args[p.Name] = p.Enum[len(p.Enum)-1]
		case p.Type == types.ParamNumber:
			args[p.Name] = float64(10 + i)
		case p.Type == types.ParamBoolean:
			args[p.Name] = true
		default:
			args[p.Name] = fmt.Sprintf("%s-%s", d.Name, p.Name)
		}
	}
	return args
}

func TestInvokeToolForwardsEveryRemoteTool(t *testing.T) {
	for _, d := range registry.ListTools() {
		if d.Local {
			continue
		}
		t.Run(d.Name, func(t *testing.T) {
			remote := newFakeDeepPath(t, http.StatusOK, `{"success":true}`)
			s, _ := newTestService(t, remote.URL, false)

			args := sampleArgs(d)
			result := s.InvokeTool(context.Background(), d.Name, args)
			require.False(t, result.IsError, "unexpected error result: %s", result.Body)
			assert.Equal(t, types.ToolResultContentType, result.ContentType)

			reqs := remote.Requests()
			require.Len(t, reqs, 1, "expected exactly one outbound request")
			assert.Equal(t, d.Name, reqs[0].FunctionCall.Name)
			assert.Equal(t, args, reqs[0].FunctionCall.Parameters)

			remote.mu.Lock()
			auth := remote.headers[0].Get("Authorization")
			remote.mu.Unlock()
			assert.Equal(t, "Bearer dp_test_key", auth)
		})
	}
}

func TestInvokeToolPassesThroughUnknownValues(t *testing.T) {
	remote := newFakeDeepPath(t, http.StatusOK, `{"success":true}`)
	s, _ := newTestService(t, remote.URL, false)

	// no local validation: the DeepPath API decides what is acceptable
	args := map[string]any{"status": "archived", "extra": "value"}
	result := s.InvokeTool(context.Background(), "getTasks", args)
	assert.False(t, result.IsError)

	reqs := remote.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, args, reqs[0].FunctionCall.Parameters)
}

func TestInvokeToolNilArguments(t *testing.T) {
	remote := newFakeDeepPath(t, http.StatusOK, `{"project":{"name":"DeepPath"}}`)
	s, _ := newTestService(t, remote.URL, false)

	result := s.InvokeTool(context.Background(), "getProjectInfo", nil)
	assert.False(t, result.IsError)

	reqs := remote.Requests()
	require.Len(t, reqs, 1)
	assert.NotNil(t, reqs[0].FunctionCall.Parameters)
	assert.Empty(t, reqs[0].FunctionCall.Parameters)
}

func TestInvokeToolPrettyPrintsBody(t *testing.T) {
	remote := newFakeDeepPath(t, http.StatusOK, `{"success":true,"task":{"id":"t1"}}`)
	s, _ := newTestService(t, remote.URL, false)

	result := s.InvokeTool(context.Background(), "getTask", map[string]any{"taskId": "t1"})
	require.False(t, result.IsError)

	want := "{\n  \"success\": true,\n  \"task\": {\n    \"id\": \"t1\"\n  }\n}"
	assert.Equal(t, want, result.Body)
}

func TestInvokeToolRemoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"not found", http.StatusNotFound, `{"error":"Task not found"}`, "DeepPath API error: Task not found"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid API key"}`, "DeepPath API error: Invalid API key"},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, "DeepPath API error: boom"},
		{"unknown function", http.StatusBadRequest, `{"error":"Unknown function: getFoo"}`, "DeepPath API error: Unknown function: getFoo"},
		{"unstructured body", http.StatusBadGateway, `upstream unavailable`, "DeepPath API error: upstream unavailable"},
		{"empty body", http.StatusServiceUnavailable, ``, "DeepPath API error: Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeDeepPath(t, tt.status, tt.body)
			s, _ := newTestService(t, remote.URL, false)

			result := s.InvokeTool(context.Background(), "getTask", map[string]any{"taskId": "x"})
			assert.True(t, result.IsError)
			assert.Equal(t, tt.wantMsg, result.Body)
			assert.Len(t, remote.Requests(), 1, "failures must not be retried")
		})
	}
}

func TestInvokeToolUnreachableRemote(t *testing.T) {
	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()

	s, _ := newTestService(t, url, false)

	result := s.InvokeTool(context.Background(), "getTasks", map[string]any{})
	assert.True(t, result.IsError)
	assert.True(t, strings.HasPrefix(result.Body, RemoteErrorPrefix), "got %q", result.Body)
	assert.Contains(t, result.Body, "failed to send request")

	// the service keeps working after a transport failure
	second := s.InvokeTool(context.Background(), registry.CurrentDateTimeTool, nil)
	assert.False(t, second.IsError)
}

func TestInvokeToolNoCrossCallLeakage(t *testing.T) {
	remote := newFakeDeepPath(t, http.StatusOK, `{"success":true}`)
	s, _ := newTestService(t, remote.URL, false)

	first := map[string]any{"title": "First", "description": "only in the first call"}
	second := map[string]any{"title": "Second"}

	s.InvokeTool(context.Background(), "createTask", first)
	s.InvokeTool(context.Background(), "createTask", second)

	reqs := remote.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, first, reqs[0].FunctionCall.Parameters)
	assert.Equal(t, second, reqs[1].FunctionCall.Parameters)
	assert.NotContains(t, reqs[1].FunctionCall.Parameters, "description")
}

func TestInvokeToolLocalToolNeverCallsRemote(t *testing.T) {
	remote := newFakeDeepPath(t, http.StatusOK, `{}`)
	s, _ := newTestService(t, remote.URL, false)

	for _, args := range []map[string]any{
		nil,
		{},
		{"format": "iso"},
		{"format": "short"},
		{"format": "full"},
		{"format": "locale-full"},
		{"format": "bogus"},
		{"format": 42},
		{"unrelated": "value"},
	} {
		result := s.InvokeTool(context.Background(), registry.CurrentDateTimeTool, args)
		assert.False(t, result.IsError, "args %v", args)
	}
	assert.Empty(t, remote.Requests())
}

func TestInvokeToolISORoundTrip(t *testing.T) {
	s, _ := newTestService(t, "http://localhost:3000", false)

	result := s.InvokeTool(context.Background(), registry.CurrentDateTimeTool, map[string]any{"format": "iso"})
	require.False(t, result.IsError)

	var body DateTimeResult
	require.NoError(t, json.Unmarshal([]byte(result.Body), &body))
	assert.Equal(t, DateTimeFormatISO, body.Format)

	parsed, err := time.Parse(time.RFC3339Nano, body.Formatted)
	require.NoError(t, err, "formatted value %q is not ISO-8601", body.Formatted)
	assert.Equal(t, body.Timestamp, parsed.UnixMilli())
	assert.Equal(t, body.Formatted, time.UnixMilli(body.Timestamp).UTC().Format(ISOLayout))
}

func TestInvokeToolUnknownFormatFallsBackToISO(t *testing.T) {
	fixed := time.Date(2025, time.March, 14, 9, 26, 53, 589_000_000, time.UTC)
	proxy := newTestProxyServer()
	s, err := NewMCPService(&ServiceConfig{
		Client:         client.NewClient("http://localhost:3000", "dp_test_key", nil),
		McpProxyServer: proxy,
		Now:            func() time.Time { return fixed },
	})
	require.NoError(t, err)

	for _, f := range []any{"locale-weird", "", nil, 3.14} {
		result := s.InvokeTool(context.Background(), registry.CurrentDateTimeTool, map[string]any{"format": f})
		require.False(t, result.IsError)

		var body DateTimeResult
		require.NoError(t, json.Unmarshal([]byte(result.Body), &body))
		assert.Equal(t, DateTimeFormatISO, body.Format)
		assert.Equal(t, "2025-03-14T09:26:53.589Z", body.Formatted)
		assert.Equal(t, fixed.UnixMilli(), body.Timestamp)
	}
}

func TestInvokeToolStrictArguments(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		args      map[string]any
		wantError string
	}{
		{"valid", "createNote", map[string]any{"title": "t", "content": "c"}, ""},
		{"missing required", "createNote", map[string]any{"title": "t"}, "content"},
		{"enum violation", "updateTask", map[string]any{"taskId": "1", "status": "archived"}, "status"},
		{"wrong type", "getTasks", map[string]any{"limit": "ten"}, "limit"},
		{"nil arguments without required params", "getAutomations", nil, ""},
		{"unknown tool", "getFoo", map[string]any{}, "unknown tool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeDeepPath(t, http.StatusOK, `{"success":true}`)
			s, _ := newTestService(t, remote.URL, true)

			result := s.InvokeTool(context.Background(), tt.tool, tt.args)
			if tt.wantError == "" {
				assert.False(t, result.IsError, "unexpected error: %s", result.Body)
				assert.Len(t, remote.Requests(), 1)
				return
			}

			assert.True(t, result.IsError)
			assert.Contains(t, result.Body, tt.wantError)
			assert.Empty(t, remote.Requests(), "invalid arguments must not reach the DeepPath API")
		})
	}
}

func TestInvokeToolRecordsMetrics(t *testing.T) {
	remote := newFakeDeepPath(t, http.StatusNotFound, `{"error":"nope"}`)
	metrics := &recordingMetrics{}
	s, err := NewMCPService(&ServiceConfig{
		Client:         client.NewClient(remote.URL, "dp_test_key", nil),
		McpProxyServer: newTestProxyServer(),
		Metrics:        metrics,
	})
	require.NoError(t, err)

	s.InvokeTool(context.Background(), "getTask", map[string]any{"taskId": "x"})
	s.InvokeTool(context.Background(), registry.CurrentDateTimeTool, nil)

	require.Len(t, metrics.calls, 2)
	assert.Equal(t, recordedCall{"getTask", telemetry.ToolKindRemote, telemetry.ToolCallOutcomeError}, metrics.calls[0])
	assert.Equal(t, recordedCall{registry.CurrentDateTimeTool, telemetry.ToolKindLocal, telemetry.ToolCallOutcomeSuccess}, metrics.calls[1])
}
