package octave

import "encoding/json"

type Status string

const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "failed"
)

// ToolResult is the normalized outcome of one enrichment call. Every call
// yields exactly one of three states: found with a payload, not found with a
// reason, or failed with a reason. All three agent endpoints share this shape.
type ToolResult struct {
	Status Status          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

func Found(data json.RawMessage) ToolResult {
	return ToolResult{Status: StatusFound, Data: data}
}

func NotFound(reason string) ToolResult {
	return ToolResult{Status: StatusNotFound, Reason: reason}
}

func Failed(reason string) ToolResult {
	return ToolResult{Status: StatusFailed, Reason: reason}
}
