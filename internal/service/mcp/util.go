package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/deeppath/deeppath-mcp/client"
	"github.com/deeppath/deeppath-mcp/internal/registry"
	"github.com/xeipuuv/gojsonschema"
)

// compileSchemas compiles the argument schema of every registry tool.
func compileSchemas() (map[string]*gojsonschema.Schema, error) {
	tools := registry.ListTools()
	schemas := make(map[string]*gojsonschema.Schema, len(tools))
	for _, d := range tools {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(registry.JSONSchema(d)))
		if err != nil {
			return nil, fmt.Errorf("invalid schema for tool %s: %w", d.Name, err)
		}
		schemas[d.Name] = schema
	}
	return schemas, nil
}

// validateArgs checks the arguments of a tool call against the tool's schema.
func (m *MCPService) validateArgs(name string, args map[string]any) error {
	schema, ok := m.schemas[name]
	if !ok {
		return fmt.Errorf("unknown tool: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("failed to validate arguments for %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid arguments for %s: %s", name, strings.Join(msgs, "; "))
}

// remoteErrorMessage extracts the best human-readable message out of a failed API call.
// Errors returned by the API carry their own message, anything else is a transport error.
func remoteErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// prettyJSON indents a JSON document with two spaces.
// Bodies that are not valid JSON are returned unchanged.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
