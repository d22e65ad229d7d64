package providers

import "context"

type ToolCall struct {
	ID           string `json:"id"`
	FunctionName string `json:"function_name"`
	Args         string `json:"args"`
}

// ToolDescriptor is the provider-neutral advertisement of one callable tool.
// Parameters holds a JSON-schema object description.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatMessage is one transcript turn. Role is one of system, user, assistant,
// or tool. Assistant turns may carry tool-call directives instead of content;
// tool turns carry the originating call in ToolCall so the provider can match
// output to directive on the wire.
type ChatMessage struct {
	Content   *string    `json:"content"`
	Role      string     `json:"role"`
	ToolCall  *ToolCall  `json:"tool_call,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ChatRequest is a single completion request. Instructions become the system
// preamble; Tools, when present, are advertised with automatic selection.
type ChatRequest struct {
	Instructions string
	Messages     []ChatMessage
	Tools        []ToolDescriptor
}

type ChatResponse struct {
	ID        string     `json:"id"`
	Content   *string    `json:"content"`
	Role      string     `json:"role"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

type ChatProvider interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}
