package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roackb2/octave-chat/internal/pkg/agents/providers"
	"github.com/roackb2/octave-chat/internal/pkg/octave"
)

var ErrUnknownTool = errors.New("unknown tool")

// Executor runs one tool against the decoded form of rawArguments. The
// ToolResult carries every business outcome; the error is reserved for
// malformed arguments and configuration faults.
type Executor func(ctx context.Context, rawArguments string) (octave.ToolResult, error)

type entry struct {
	descriptor providers.ToolDescriptor
	execute    Executor
}

// Registry is the static tool catalog. It is built once at startup and
// read-only afterwards, so it needs no locking.
type Registry struct {
	order   []string
	entries map[string]entry
}

type EnrichCompanyArgs struct {
	CompanyDomain string `json:"companyDomain"`
}

type EnrichPersonArgs struct {
	LinkedInProfile string `json:"linkedInProfile"`
}

type GenerateEmailsArgs struct {
	LinkedInProfile string `json:"linkedInProfile"`
}

const (
	EnrichCompanyDescription  = "Enrich company information using the company domain. Provides detailed company data including size, industry, revenue, and other business intelligence."
	EnrichPersonDescription   = "Enrich person information using their LinkedIn profile URL. Provides detailed information about the person including their role, experience, and company."
	GenerateEmailsDescription = "Generate personalized emails to send to a person. Requires their LinkedIn profile URL to create targeted, relevant email content."
)

func NewRegistry(client *octave.Client) *Registry {
	r := &Registry{entries: map[string]entry{}}
	r.register(providers.ToolDescriptor{
		Name:        "enrichCompany",
		Description: EnrichCompanyDescription,
		Parameters: objectSchema("companyDomain",
			"The company domain (e.g., example.com) to enrich information for"),
	}, func(ctx context.Context, rawArguments string) (octave.ToolResult, error) {
		var args EnrichCompanyArgs
		if err := decodeArguments(rawArguments, &args); err != nil {
			return octave.ToolResult{}, err
		}
		return client.EnrichCompany(ctx, args.CompanyDomain)
	})
	r.register(providers.ToolDescriptor{
		Name:        "enrichPerson",
		Description: EnrichPersonDescription,
		Parameters: objectSchema("linkedInProfile",
			"The LinkedIn profile URL of the person to enrich information for"),
	}, func(ctx context.Context, rawArguments string) (octave.ToolResult, error) {
		var args EnrichPersonArgs
		if err := decodeArguments(rawArguments, &args); err != nil {
			return octave.ToolResult{}, err
		}
		return client.EnrichPerson(ctx, args.LinkedInProfile)
	})
	r.register(providers.ToolDescriptor{
		Name:        "generateEmails",
		Description: GenerateEmailsDescription,
		Parameters: objectSchema("linkedInProfile",
			"The LinkedIn profile URL of the person to generate emails for"),
	}, func(ctx context.Context, rawArguments string) (octave.ToolResult, error) {
		var args GenerateEmailsArgs
		if err := decodeArguments(rawArguments, &args); err != nil {
			return octave.ToolResult{}, err
		}
		return client.GenerateEmails(ctx, args.LinkedInProfile)
	})
	return r
}

func (r *Registry) register(descriptor providers.ToolDescriptor, execute Executor) {
	r.order = append(r.order, descriptor.Name)
	r.entries[descriptor.Name] = entry{descriptor: descriptor, execute: execute}
}

// Descriptors returns the catalog in registration order, for advertising to
// the LLM.
func (r *Registry) Descriptors() []providers.ToolDescriptor {
	descriptors := make([]providers.ToolDescriptor, len(r.order))
	for i, name := range r.order {
		descriptors[i] = r.entries[name].descriptor
	}
	return descriptors
}

func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func (r *Registry) Invoke(ctx context.Context, name string, rawArguments string) (octave.ToolResult, error) {
	e, ok := r.entries[name]
	if !ok {
		return octave.ToolResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return e.execute(ctx, rawArguments)
}

func decodeArguments(rawArguments string, target any) error {
	if err := json.Unmarshal([]byte(rawArguments), target); err != nil {
		return fmt.Errorf("decoding tool arguments: %w", err)
	}
	return nil
}

// objectSchema builds the single-required-string-parameter schema every
// Octave tool uses.
func objectSchema(param string, description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			param: map[string]string{
				"type":        "string",
				"description": description,
			},
		},
		"required":             []string{param},
		"additionalProperties": false,
	}
}
