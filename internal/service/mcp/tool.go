package mcp

import (
	"context"
	"time"

	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/deeppath/deeppath-mcp/internal/telemetry"
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// RemoteErrorPrefix starts the message of every result produced from a failed DeepPath API call.
const RemoteErrorPrefix = "DeepPath API error: "

// ListTools returns all tools exposed by the adapter, in registry order.
func (m *MCPService) ListTools() []types.ToolDescriptor {
	return registry.ListTools()
}

// GetTool returns the descriptor of a single tool.
func (m *MCPService) GetTool(name string) (types.ToolDescriptor, bool) {
	return registry.Get(name)
}

// InvokeTool executes one tool and returns its result.
// It never returns a Go error: every failure is reported as a result with IsError set.
func (m *MCPService) InvokeTool(ctx context.Context, name string, args map[string]any) *types.ToolResult {
	started := time.Now()
	outcome := telemetry.ToolCallOutcomeError
	kind := telemetry.ToolKindRemote

	logger := m.logger.With(
		zap.String("tool", name),
		zap.String("invocation_id", uuid.NewString()),
	)

	// record the tool call metrics when the function returns
	defer func() {
		elapsed := time.Since(started)
		m.metrics.RecordToolCall(ctx, name, kind, outcome, elapsed)
		logger.Info("tool call finished", zap.String("outcome", string(outcome)), zap.Duration("duration", elapsed))
	}()

	var result *types.ToolResult
	if registry.IsLocal(name) {
		kind = telemetry.ToolKindLocal
		result = m.invokeLocal(name, args)
	} else {
		result = m.forward(ctx, logger, name, args)
	}

	if !result.IsError {
		outcome = telemetry.ToolCallOutcomeSuccess
	}
	return result
}

// invokeLocal computes a tool that never leaves the process.
func (m *MCPService) invokeLocal(name string, args map[string]any) *types.ToolResult {
	switch name {
	case registry.CurrentDateTimeTool:
		return m.currentDateTime(args)
	default:
		return types.NewErrorResult("no local implementation for tool: " + name)
	}
}

// forward sends the invocation to the DeepPath API.
// Exactly one request is made; the arguments are passed through untouched.
func (m *MCPService) forward(ctx context.Context, logger *zap.Logger, name string, args map[string]any) *types.ToolResult {
	if m.schemas != nil {
		if err := m.validateArgs(name, args); err != nil {
			logger.Warn("rejected tool arguments", zap.Error(err))
			return types.NewErrorResult(err.Error())
		}
	}

	body, err := m.client.CallFunction(ctx, name, args)
	if err != nil {
		logger.Error("DeepPath API call failed", zap.Error(err))
		return types.NewErrorResult(RemoteErrorPrefix + remoteErrorMessage(err))
	}
	return types.NewTextResult(prettyJSON(body))
}

// MCPProxyToolCallHandler serves tools/call requests for every tool registered with the proxy server.
func (m *MCPService) MCPProxyToolCallHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := m.InvokeTool(ctx, requestedToolName(request), request.GetArguments())
	return convertToolResultToMcp(result), nil
}

// convertToolResultToMcp converts a ToolResult into the single-text-content result sent to MCP clients.
func convertToolResultToMcp(r *types.ToolResult) *mcp.CallToolResult {
	if r.IsError {
		return mcp.NewToolResultError(r.Body)
	}
	return mcp.NewToolResultText(r.Body)
}
