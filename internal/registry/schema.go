package registry

import (
	"github.com/deeppath/deeppath-mcp/pkg/types"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool converts a tool descriptor into the mcp.Tool advertised to MCP clients.
func MCPTool(d types.ToolDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, p := range d.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if len(p.Enum) > 0 {
			propOpts = append(propOpts, mcp.Enum(p.Enum...))
		}

		switch p.Type {
		case types.ParamNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case types.ParamBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(d.Name, opts...)
}

// JSONSchema returns the JSON schema of the descriptor's input object.
func JSONSchema(d types.ToolDescriptor) map[string]any {
	properties := make(map[string]any, len(d.Params))
	for _, p := range d.Params {
		prop := map[string]any{
			"type":        string(p.Type),
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			enum := make([]any, len(p.Enum))
			for i, v := range p.Enum {
				enum[i] = v
			}
			prop["enum"] = enum
		}
		properties[p.Name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	// draft-04 rejects an empty required list
	if required := d.RequiredParams(); len(required) > 0 {
		list := make([]any, len(required))
		for i, name := range required {
			list[i] = name
		}
		schema["required"] = list
	}
	return schema
}
