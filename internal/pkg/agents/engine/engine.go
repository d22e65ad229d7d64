package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/roackb2/octave-chat/internal/pkg/agents/providers"
	"github.com/roackb2/octave-chat/internal/pkg/agents/tools"
	"github.com/roackb2/octave-chat/internal/pkg/octave"
	"github.com/roackb2/octave-chat/internal/pkg/utils"
)

// Engine drives the two-phase tool protocol: one completion with tools
// advertised, execution of the directives it emits, then one completion over
// the enriched transcript with no tools. Engine itself holds no per-run
// state; each run threads a runState value through the phases.
type Engine struct {
	provider providers.ChatProvider
	registry *tools.Registry
}

func NewEngine(provider providers.ChatProvider, registry *tools.Registry) *Engine {
	return &Engine{
		provider: provider,
		registry: registry,
	}
}

// runState accumulates everything one run produces. Transcript and records
// only ever grow, in directive order.
type runState struct {
	transcript []providers.ChatMessage
	sources    []string
	toolCalls  []ToolCallRecord
	responseID string
	llmElapsed time.Duration
}

func (e *Engine) Run(ctx context.Context, message string) (*ChatResponse, error) {
	machine := newRunMachine()
	state := runState{
		transcript: []providers.ChatMessage{{Role: "user", Content: &message}},
		sources:    []string{},
		toolCalls:  []ToolCallRecord{},
	}

	e.transition(ctx, machine, EventBeginToolPhase)
	state, first, err := e.toolPhase(ctx, state)
	if err != nil {
		e.transition(ctx, machine, EventAbort)
		return nil, fmt.Errorf("tool phase: %w", err)
	}

	e.transition(ctx, machine, EventExecute)
	state = e.executeToolCalls(ctx, state, first)

	e.transition(ctx, machine, EventFollowUp)
	state, content, err := e.followUp(ctx, state)
	if err != nil {
		// Tool calls already ran; they are read-only against the remote
		// agents, so there is nothing to roll back.
		e.transition(ctx, machine, EventAbort)
		return nil, fmt.Errorf("follow-up phase: %w", err)
	}

	e.transition(ctx, machine, EventFinish)
	return e.buildResponse(state, content), nil
}

// toolPhase asks the LLM what to do with the user message, with the full
// tool catalog advertised and automatic tool selection.
func (e *Engine) toolPhase(ctx context.Context, state runState) (runState, providers.ChatResponse, error) {
	started := time.Now()
	resp, err := e.provider.Chat(ctx, providers.ChatRequest{
		Instructions: ToolInstructions,
		Messages:     state.transcript,
		Tools:        e.registry.Descriptors(),
	})
	state.llmElapsed += time.Since(started)
	if err != nil {
		return state, providers.ChatResponse{}, err
	}
	state.responseID = resp.ID
	return state, resp, nil
}

// executeToolCalls runs the phase-one directives. Known tools dispatch
// concurrently; recording stays in directive order via index-addressed slots.
// One tool's failure never blocks the others.
func (e *Engine) executeToolCalls(ctx context.Context, state runState, first providers.ChatResponse) runState {
	directives := first.ToolCalls
	results := make([]*octave.ToolResult, len(directives))
	errs := make([]error, len(directives))

	var wg sync.WaitGroup
	for i, call := range directives {
		if !e.registry.Has(call.FunctionName) {
			// The model must only name tools it was offered; an unknown name
			// is a protocol anomaly upstream, not a user-facing failure.
			slog.Warn("Engine: skipping unknown tool", "tool", call.FunctionName)
			continue
		}
		wg.Add(1)
		go func(i int, call providers.ToolCall) {
			defer wg.Done()
			defer utils.RecoverPanic()
			result, err := e.registry.Invoke(ctx, call.FunctionName, call.Args)
			results[i], errs[i] = &result, err
		}(i, call)
	}
	wg.Wait()

	for i, call := range directives {
		if results[i] == nil {
			continue
		}
		if errs[i] != nil {
			slog.Warn("Engine: tool execution failed", "tool", call.FunctionName, "error", errs[i])
			continue
		}
		state = e.recordToolCall(state, call, *results[i])
	}

	if first.Content != nil && *first.Content != "" {
		state.transcript = append(state.transcript, providers.ChatMessage{
			Role:    "assistant",
			Content: first.Content,
		})
	}
	return state
}

func (e *Engine) recordToolCall(state runState, call providers.ToolCall, result octave.ToolResult) runState {
	serialized, err := json.Marshal(result)
	if err != nil {
		slog.Error("Engine: serializing tool result failed", "tool", call.FunctionName, "error", err)
		return state
	}
	output := string(serialized)

	slog.Info("Engine: tool executed", "tool", call.FunctionName, "status", result.Status)
	state.transcript = append(state.transcript,
		providers.ChatMessage{Role: "assistant", ToolCalls: []providers.ToolCall{call}},
		providers.ChatMessage{Role: "tool", Content: &output, ToolCall: &call},
	)
	state.sources = append(state.sources, call.FunctionName)
	state.toolCalls = append(state.toolCalls, ToolCallRecord{
		ID: utils.GetOrDefault(call.ID, uuid.NewString()),
		Function: FunctionCall{
			Name:      call.FunctionName,
			Arguments: call.Args,
		},
		Result: output,
		Type:   "function",
	})
	return state
}

// followUp has the LLM compose prose over the enriched transcript. No tools
// are advertised, which is what terminates the tool-call chain.
func (e *Engine) followUp(ctx context.Context, state runState) (runState, string, error) {
	started := time.Now()
	resp, err := e.provider.Chat(ctx, providers.ChatRequest{
		Instructions: FollowUpInstructions,
		Messages:     state.transcript,
	})
	state.llmElapsed += time.Since(started)
	if err != nil {
		return state, "", err
	}

	content := ""
	if resp.Content != nil {
		content = *resp.Content
	}
	return state, content, nil
}

func (e *Engine) buildResponse(state runState, content string) *ChatResponse {
	return &ChatResponse{
		ID:        utils.GetOrDefault(state.responseID, uuid.NewString()),
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metadata: Metadata{
			// LLM latency only; the tools report their own.
			ProcessingTime: state.llmElapsed.Milliseconds(),
			Sources:        state.sources,
			ToolCalls:      state.toolCalls,
		},
	}
}

func newRunMachine() *fsm.FSM {
	return fsm.NewFSM(
		StateStart,
		fsm.Events{
			{Name: EventBeginToolPhase, Src: []string{StateStart}, Dst: StateToolPhase},
			{Name: EventExecute, Src: []string{StateToolPhase}, Dst: StateExecuting},
			{Name: EventFollowUp, Src: []string{StateExecuting}, Dst: StateFollowUp},
			{Name: EventFinish, Src: []string{StateFollowUp}, Dst: StateDone},
			{Name: EventAbort, Src: []string{StateToolPhase, StateExecuting, StateFollowUp}, Dst: StateAborted},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("Engine: transitioned", "from", e.Src, "to", e.Dst)
			},
		},
	)
}

func (e *Engine) transition(ctx context.Context, machine *fsm.FSM, event string) {
	if err := machine.Event(ctx, event); err != nil {
		slog.Error("Engine: state transition failed", "event", event, "error", err)
	}
}
