package types

// FunctionCall is the inner part of the envelope sent to the DeepPath standard MCP endpoint.
type FunctionCall struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// FunctionCallRequest is the wire envelope for every forwarded tool invocation:
// {"functionCall": {"name": ..., "parameters": {...}}}
type FunctionCallRequest struct {
	FunctionCall FunctionCall `json:"functionCall"`
}

// NewFunctionCallRequest builds the envelope for a call to name.
// A nil parameter map is sent as an empty object.
func NewFunctionCallRequest(name string, params map[string]any) *FunctionCallRequest {
	if params == nil {
		params = map[string]any{}
	}
	return &FunctionCallRequest{
		FunctionCall: FunctionCall{Name: name, Parameters: params},
	}
}

// FunctionParameter describes one parameter of a remote function, as listed by the DeepPath API.
type FunctionParameter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
}

// Function is a remote function descriptor returned by the DeepPath API.
type Function struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  []FunctionParameter `json:"parameters"`
}

// ListFunctionsResponse is the body returned by a GET on the standard MCP endpoint.
type ListFunctionsResponse struct {
	Functions []Function `json:"functions"`
}

// ErrorResponse is the optional body returned by the DeepPath API on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
