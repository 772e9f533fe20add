package mcp

import (
	"context"

	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// unlistedToolName is registered with the proxy server but never advertised.
	// Calls for names outside the registry are rerouted to it, so the DeepPath API decides
	// whether the function exists and an unknown name comes back as an isError result.
	unlistedToolName = "deeppath_unlisted_tool"

	// requestedToolMetaKey carries the name the client asked for across the reroute.
	requestedToolMetaKey = "deeppath/requestedTool"
)

// ProxyServerOptions returns the options the MCP proxy server must be created with
// for NewMCPService to serve it.
func ProxyServerOptions() []server.ServerOption {
	hooks := &server.Hooks{}
	hooks.AddBeforeCallTool(rerouteUnlistedTool)

	return []server.ServerOption{
		server.WithHooks(hooks),
		server.WithToolFilter(hideUnlistedTool),
	}
}

// rerouteUnlistedTool points a call for a name outside the registry at the unlisted tool.
func rerouteUnlistedTool(_ context.Context, _ any, request *mcp.CallToolRequest) {
	if _, ok := registry.Get(request.Params.Name); ok {
		return
	}
	if request.Params.Meta == nil {
		request.Params.Meta = &mcp.Meta{}
	}
	if request.Params.Meta.AdditionalFields == nil {
		request.Params.Meta.AdditionalFields = map[string]any{}
	}
	request.Params.Meta.AdditionalFields[requestedToolMetaKey] = request.Params.Name
	request.Params.Name = unlistedToolName
}

func hideUnlistedTool(_ context.Context, tools []mcp.Tool) []mcp.Tool {
	out := make([]mcp.Tool, 0, len(tools))
	for _, t := range tools {
		if t.Name != unlistedToolName {
			out = append(out, t)
		}
	}
	return out
}

// requestedToolName returns the tool name the client originally called.
func requestedToolName(request mcp.CallToolRequest) string {
	if request.Params.Name != unlistedToolName || request.Params.Meta == nil {
		return request.Params.Name
	}
	if name, ok := request.Params.Meta.AdditionalFields[requestedToolMetaKey].(string); ok {
		return name
	}
	return request.Params.Name
}

func unlistedTool() mcp.Tool {
	return mcp.NewTool(
		unlistedToolName,
		mcp.WithDescription("Forwards calls for functions outside the advertised tool list to the DeepPath API"),
	)
}
