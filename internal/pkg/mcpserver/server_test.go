package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roackb2/octave-chat/internal/pkg/agents/tools"
	"github.com/roackb2/octave-chat/internal/pkg/octave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, baseURL string, withOIDs bool) *Server {
	t.Helper()
	cfg := octave.Config{BaseURL: baseURL, APIKey: "test-api-key"}
	if withOIDs {
		cfg.EnrichCompanyOID = "oid-company"
		cfg.EnrichPersonOID = "oid-person"
		cfg.SequenceOID = "oid-sequence"
	}
	return New(tools.NewRegistry(octave.NewClient(cfg)))
}

// connect wires a client session to the server over in-memory transports.
func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverSession, err := server.mcpServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestListToolsMatchesRegistry(t *testing.T) {
	session := connect(t, newTestServer(t, "http://localhost:0", true))

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"enrichCompany", "enrichPerson", "generateEmails"}, names)
}

func TestCallToolReturnsSerializedResult(t *testing.T) {
	agent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"found":true,"data":{"name":"Acme Corp"}}`))
	}))
	defer agent.Close()
	session := connect(t, newTestServer(t, agent.URL, true))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "enrichCompany",
		Arguments: map[string]any{"companyDomain": "acme.com"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"status":"found"`)
	assert.Contains(t, text.Text, "Acme Corp")
}

func TestCallToolNotFoundIsNotAnError(t *testing.T) {
	agent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"found":false}`))
	}))
	defer agent.Close()
	session := connect(t, newTestServer(t, agent.URL, true))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "enrichPerson",
		Arguments: map[string]any{"linkedInProfile": "https://linkedin.com/in/nobody"},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent)
	assert.Contains(t, text.Text, `"status":"not_found"`)
	assert.Contains(t, text.Text, "https://linkedin.com/in/nobody")
}

func TestCallToolConfigurationFailure(t *testing.T) {
	// No agent OIDs configured, so the client fails fast.
	session := connect(t, newTestServer(t, "http://localhost:0", false))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "generateEmails",
		Arguments: map[string]any{"linkedInProfile": "https://linkedin.com/in/jane"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	text := result.Content[0].(*mcp.TextContent)
	// Configuration detail stays server-side.
	assert.Equal(t, "Error running generateEmails", text.Text)
}
