package types

// ParamType is the JSON type of a single tool parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamNumber  ParamType = "number"
	ParamBoolean ParamType = "boolean"
)

// ToolParam describes one named parameter accepted by a tool.
type ToolParam struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ParamType `json:"type" yaml:"type"`
	Description string    `json:"description" yaml:"description"`
	Required    bool      `json:"required" yaml:"required"`

	// Enum, when non-empty, is the closed set of values accepted for this parameter.
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// ToolDescriptor is the static metadata of one operation exposed by the adapter.
type ToolDescriptor struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Params      []ToolParam `json:"parameters" yaml:"parameters"`

	// Local is true when the operation is computed in-process instead of being forwarded
	// to the DeepPath API.
	Local bool `json:"local,omitempty" yaml:"local,omitempty"`
}

// RequiredParams returns the names of the descriptor's required parameters, in declaration order.
func (d ToolDescriptor) RequiredParams() []string {
	required := make([]string, 0)
	for _, p := range d.Params {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return required
}

// ToolResultContentType is the only content type produced by the adapter.
const ToolResultContentType = "text"

// ToolResult is the outcome of a single tool invocation.
// It is designed to be passed down to the MCP client as-is.
type ToolResult struct {
	ContentType string `json:"type"`
	Body        string `json:"text"`
	IsError     bool   `json:"isError,omitempty"`
}

// NewTextResult returns a successful ToolResult carrying body.
func NewTextResult(body string) *ToolResult {
	return &ToolResult{ContentType: ToolResultContentType, Body: body}
}

// NewErrorResult returns a ToolResult flagged as an error, carrying a human-readable message.
func NewErrorResult(msg string) *ToolResult {
	return &ToolResult{ContentType: ToolResultContentType, Body: msg, IsError: true}
}
