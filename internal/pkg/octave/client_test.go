package octave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roackb2/octave-chat/internal/pkg/octave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAgentServer answers like the Octave agent endpoints: inputs containing
// "notfound" get found:false, inputs containing "error" get a 500, everything
// else is found with a canned payload.
func stubAgentServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.Header.Get("api_key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotEmpty(t, body["agentOId"])

		input := body["companyDomain"]
		if input == "" {
			input = body["linkedInProfile"]
		}

		switch {
		case input == "error.com" || input == "https://linkedin.com/in/error":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"agent exploded"}`))
		case input == "notfound.com" || input == "https://linkedin.com/in/notfound":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"found":false,"error":"no match"}`))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"found":true,"data":{"name":"Acme Corp","industry":"Technology"}}`))
		}
	}))
}

func newTestClient(baseURL string) *octave.Client {
	return octave.NewClient(octave.Config{
		BaseURL:          baseURL,
		APIKey:           "test-api-key",
		EnrichCompanyOID: "oid-company",
		EnrichPersonOID:  "oid-person",
		SequenceOID:      "oid-sequence",
	})
}

func TestEnrichCompanyFound(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := newTestClient(server.URL)

	result, err := client.EnrichCompany(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, octave.StatusFound, result.Status)
	assert.JSONEq(t, `{"name":"Acme Corp","industry":"Technology"}`, string(result.Data))
}

func TestEnrichCompanyNotFound(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := newTestClient(server.URL)

	result, err := client.EnrichCompany(context.Background(), "notfound.com")
	require.NoError(t, err)
	assert.Equal(t, octave.StatusNotFound, result.Status)
	assert.Contains(t, result.Reason, "notfound.com")
	assert.Empty(t, result.Data)
}

func TestEnrichCompanyServerError(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := newTestClient(server.URL)

	result, err := client.EnrichCompany(context.Background(), "error.com")
	require.NoError(t, err)
	assert.Equal(t, octave.StatusFailed, result.Status)
	assert.Contains(t, result.Reason, "500")
	assert.Contains(t, result.Reason, "error.com")
}

func TestTransportErrorNormalizedForAllTools(t *testing.T) {
	// A closed server makes every request fail at the transport level.
	server := stubAgentServer(t)
	server.Close()
	client := newTestClient(server.URL)
	ctx := context.Background()

	cases := []struct {
		name  string
		input string
		run   func() (octave.ToolResult, error)
	}{
		{"enrichCompany", "acme.com", func() (octave.ToolResult, error) {
			return client.EnrichCompany(ctx, "acme.com")
		}},
		{"enrichPerson", "https://linkedin.com/in/jane", func() (octave.ToolResult, error) {
			return client.EnrichPerson(ctx, "https://linkedin.com/in/jane")
		}},
		{"generateEmails", "https://linkedin.com/in/jane", func() (octave.ToolResult, error) {
			return client.GenerateEmails(ctx, "https://linkedin.com/in/jane")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.run()
			require.NoError(t, err)
			assert.Equal(t, octave.StatusFailed, result.Status)
			assert.Contains(t, result.Reason, tc.name)
			assert.Contains(t, result.Reason, tc.input)
			assert.Contains(t, result.Reason, "connection refused")
		})
	}
}

func TestEnrichPersonNotFound(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := newTestClient(server.URL)

	result, err := client.EnrichPerson(context.Background(), "https://linkedin.com/in/notfound")
	require.NoError(t, err)
	assert.Equal(t, octave.StatusNotFound, result.Status)
	assert.Contains(t, result.Reason, "https://linkedin.com/in/notfound")
}

func TestGenerateEmailsFound(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := newTestClient(server.URL)

	result, err := client.GenerateEmails(context.Background(), "https://linkedin.com/in/jane")
	require.NoError(t, err)
	assert.Equal(t, octave.StatusFound, result.Status)
}

func TestMissingAgentOIDFailsFast(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := octave.NewClient(octave.Config{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		// no agent OIDs configured
	})

	_, err := client.EnrichCompany(context.Background(), "acme.com")
	assert.ErrorIs(t, err, octave.ErrAgentOIDMissing)

	_, err = client.EnrichPerson(context.Background(), "https://linkedin.com/in/jane")
	assert.ErrorIs(t, err, octave.ErrAgentOIDMissing)

	_, err = client.GenerateEmails(context.Background(), "https://linkedin.com/in/jane")
	assert.ErrorIs(t, err, octave.ErrAgentOIDMissing)
}

func TestEnrichCompanyIdempotent(t *testing.T) {
	server := stubAgentServer(t)
	defer server.Close()
	client := newTestClient(server.URL)

	first, err := client.EnrichCompany(context.Background(), "acme.com")
	require.NoError(t, err)
	second, err := client.EnrichCompany(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
