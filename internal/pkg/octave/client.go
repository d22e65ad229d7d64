package octave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	requestTimeout = 30 * time.Second
	maxBodyInError = 512
)

// ErrAgentOIDMissing means the caller asked for a tool the deployment has no
// agent OID configured for. This is a configuration fault, not a ToolResult.
var ErrAgentOIDMissing = errors.New("agent OID is required")

type Config struct {
	BaseURL          string
	APIKey           string
	EnrichCompanyOID string
	EnrichPersonOID  string
	SequenceOID      string
}

// Client wraps the three Octave agent endpoints. It is safe for concurrent
// use; the underlying resty client pools its transport.
type Client struct {
	http *resty.Client
	cfg  Config
}

func NewClient(cfg Config) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("api_key", cfg.APIKey)
	return &Client{http: httpClient, cfg: cfg}
}

// agentResponse is the wire shape all three agent endpoints answer with.
type agentResponse struct {
	Found bool            `json:"found"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type agentCall struct {
	tool     string // registered tool name, used in reasons and logs
	path     string
	agentOID string
	field    string // request body key for the identifying input
	notFound string // reason template, takes the identifying input
}

func (c *Client) EnrichCompany(ctx context.Context, companyDomain string) (ToolResult, error) {
	return c.runAgent(ctx, agentCall{
		tool:     "enrichCompany",
		path:     "/agents/enrich-company/run",
		agentOID: c.cfg.EnrichCompanyOID,
		field:    "companyDomain",
		notFound: "No enrichment data found for company domain: %s",
	}, companyDomain)
}

func (c *Client) EnrichPerson(ctx context.Context, linkedInProfile string) (ToolResult, error) {
	return c.runAgent(ctx, agentCall{
		tool:     "enrichPerson",
		path:     "/agents/enrich-person/run",
		agentOID: c.cfg.EnrichPersonOID,
		field:    "linkedInProfile",
		notFound: "No enrichment data found for LinkedIn profile: %s",
	}, linkedInProfile)
}

func (c *Client) GenerateEmails(ctx context.Context, linkedInProfile string) (ToolResult, error) {
	return c.runAgent(ctx, agentCall{
		tool:     "generateEmails",
		path:     "/agents/sequence/run",
		agentOID: c.cfg.SequenceOID,
		field:    "linkedInProfile",
		notFound: "No emails generated for LinkedIn profile: %s",
	}, linkedInProfile)
}

// runAgent performs a single attempt against one agent endpoint and
// normalizes every outcome into a ToolResult. The agent may not be
// idempotent, so there is no retry; the model can decide to try again.
func (c *Client) runAgent(ctx context.Context, call agentCall, input string) (ToolResult, error) {
	if call.agentOID == "" {
		slog.Error("Octave: agent OID not configured", "tool", call.tool)
		return ToolResult{}, fmt.Errorf("octave: %s: %w", call.tool, ErrAgentOIDMissing)
	}

	slog.Info("Octave: running agent", "tool", call.tool, "input", input)

	body := map[string]string{
		"agentOId": call.agentOID,
		call.field: input,
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(call.path)
	if err != nil {
		slog.Error("Octave: request failed", "tool", call.tool, "input", input, "error", err)
		return Failed(fmt.Sprintf("Error running %s for %s: %v", call.tool, input, err)), nil
	}

	if resp.StatusCode() != http.StatusOK {
		slog.Error("Octave: unexpected status", "tool", call.tool, "input", input, "status", resp.StatusCode())
		return Failed(fmt.Sprintf("Failed to run %s for %s: status = %d body = %s",
			call.tool, input, resp.StatusCode(), truncate(resp.String(), maxBodyInError))), nil
	}

	var decoded agentResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		slog.Error("Octave: decoding response failed", "tool", call.tool, "input", input, "error", err)
		return Failed(fmt.Sprintf("Error decoding %s response for %s: %v", call.tool, input, err)), nil
	}

	if !decoded.Found {
		slog.Warn("Octave: no data found", "tool", call.tool, "input", input)
		return NotFound(fmt.Sprintf(call.notFound, input)), nil
	}

	slog.Info("Octave: agent run succeeded", "tool", call.tool, "input", input)
	return Found(decoded.Data), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
