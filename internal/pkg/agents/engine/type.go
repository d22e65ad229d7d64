package engine

import "context"

const (
	StateStart     = "start"
	StateToolPhase = "tool_phase"
	StateExecuting = "executing"
	StateFollowUp  = "follow_up"
	StateDone      = "done"
	StateAborted   = "aborted"
)

const (
	EventBeginToolPhase = "begin_tool_phase"
	EventExecute        = "execute"
	EventFollowUp       = "follow_up"
	EventFinish         = "finish"
	EventAbort          = "abort"
)

// FunctionCall mirrors the wire shape of one tool-call directive.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCallRecord is the audit trail entry kept in response metadata, one per
// dispatched tool invocation.
type ToolCallRecord struct {
	ID       string       `json:"id"`
	Function FunctionCall `json:"function"`
	Result   string       `json:"result"`
	Type     string       `json:"type"`
}

type Metadata struct {
	ProcessingTime int64            `json:"processingTime"`
	Sources        []string         `json:"sources"`
	ToolCalls      []ToolCallRecord `json:"toolCalls"`
}

type ChatResponse struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
	Metadata  Metadata `json:"metadata"`
}

// Orchestrator turns one user message into a final response via the
// two-phase tool protocol.
type Orchestrator interface {
	Run(ctx context.Context, message string) (*ChatResponse, error)
}
