package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roackb2/octave-chat/internal/pkg/agents/tools"
)

// Server exposes the registry's tools over the stateless MCP streamable HTTP
// transport. Tool contracts are identical to the ones the chat engine
// advertises to the LLM; only the wire format differs.
type Server struct {
	registry *tools.Registry
}

func New(registry *tools.Registry) *Server {
	return &Server{registry: registry}
}

func (s *Server) Handler() http.Handler {
	server := s.mcpServer()
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{Stateless: true})
}

func (s *Server) mcpServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "octave-mcp",
		Title:   "Octave MCP",
		Version: "1.0.0",
	}, nil)

	for _, descriptor := range s.registry.Descriptors() {
		name := descriptor.Name
		server.AddTool(&mcp.Tool{
			Name:        name,
			Description: descriptor.Description,
			InputSchema: descriptor.Parameters,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.callTool(ctx, name, req.Params.Arguments)
		})
	}
	return server
}

// callTool runs one registry tool and serializes its ToolResult as text
// content. Failures become error results rather than protocol errors so
// callers always get a well-formed tool response.
func (s *Server) callTool(ctx context.Context, name string, rawArguments json.RawMessage) (*mcp.CallToolResult, error) {
	result, err := s.registry.Invoke(ctx, name, string(rawArguments))
	if err != nil {
		slog.Error("MCP: tool call failed", "tool", name, "error", err)
		return errorResult("Error running " + name), nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		slog.Error("MCP: serializing tool result failed", "tool", name, "error", err)
		return errorResult("Error running " + name), nil
	}

	slog.Info("MCP: tool call served", "tool", name, "status", result.Status)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
	}
}
