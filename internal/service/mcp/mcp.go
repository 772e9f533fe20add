// Package mcp provides the tool dispatch service of the DeepPath MCP adapter.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/deeppath/deeppath-mcp/internal/telemetry"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// FunctionCaller forwards a function call to the DeepPath API and returns the raw response body.
// *client.Client satisfies it.
type FunctionCaller interface {
	CallFunction(ctx context.Context, name string, params map[string]any) (json.RawMessage, error)
}

// ServiceConfig holds the configuration parameters for initializing the MCPService.
type ServiceConfig struct {
	Client FunctionCaller

	// McpProxyServer must be created with ProxyServerOptions.
	McpProxyServer *server.MCPServer

	Logger  *zap.Logger
	Metrics telemetry.CustomMetrics

	// StrictArgs enables local validation of arguments against the registry schemas.
	// When false, arguments are forwarded unchanged and the DeepPath API is the only validator.
	StrictArgs bool

	// Now overrides the clock used by local tools. Defaults to time.Now.
	Now func() time.Time
}

// MCPService dispatches tool invocations either to a local implementation or to the DeepPath API.
// Nothing in it is mutated after construction, so it is safe for concurrent use.
type MCPService struct {
	client FunctionCaller

	mcpProxyServer *server.MCPServer

	logger  *zap.Logger
	metrics telemetry.CustomMetrics

	// schemas holds the compiled argument schema of every tool, keyed by tool name.
	// It is nil unless strict argument validation is enabled.
	schemas map[string]*gojsonschema.Schema

	now func() time.Time
}

// NewMCPService creates a new instance of MCPService and registers every tool of the registry
// with the MCP proxy server.
func NewMCPService(c *ServiceConfig) (*MCPService, error) {
	if c.Client == nil {
		return nil, errors.New("a DeepPath API client is required")
	}

	s := &MCPService{
		client:         c.Client,
		mcpProxyServer: c.McpProxyServer,
		logger:         c.Logger,
		metrics:        c.Metrics,
		now:            c.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewNoopCustomMetrics()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if c.StrictArgs {
		schemas, err := compileSchemas()
		if err != nil {
			return nil, fmt.Errorf("failed to compile tool argument schemas: %w", err)
		}
		s.schemas = schemas
	}

	if err := s.initMCPProxyServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize MCP proxy server: %w", err)
	}
	return s, nil
}

// initMCPProxyServer adds every registry tool to the MCP proxy server, all served by the same handler.
// The unlisted tool catches calls for any other name.
func (m *MCPService) initMCPProxyServer() error {
	if m.mcpProxyServer == nil {
		return errors.New("MCP proxy server is nil")
	}
	for _, d := range registry.ListTools() {
		m.mcpProxyServer.AddTool(registry.MCPTool(d), m.MCPProxyToolCallHandler)
	}
	m.mcpProxyServer.AddTool(unlistedTool(), m.MCPProxyToolCallHandler)
	return nil
}
