// Package llm talks to hosted language models. Every provider returns JSON
// that has been validated against the caller's schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON that conforms to it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ProviderName returns the backend name of p, looking through wrappers.
// Providers that do not report one are named by their model ID.
func ProviderName(p Provider) string {
	for {
		switch v := p.(type) {
		case interface{ Name() string }:
			return v.Name()
		case interface{ Unwrap() Provider }:
			p = v.Unwrap()
		default:
			return p.ModelID()
		}
	}
}

// Request describes what to send to the model.
type Request struct {
	// System sets the assistant's role and constraints.
	System string

	// Messages is the conversation so far, oldest first. The last message
	// is the one being answered.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// Content holds the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema.
type Schema struct {
	// Name is kebab-case and unique per definition. It doubles as the
	// provider-side schema name and the validator cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model's output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish validates content against the request schema and assembles the
// response. Every provider funnels through here.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if err := validateResponse(req.Schema, content); err != nil {
		if stop == "max_tokens" {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		return nil, err
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
