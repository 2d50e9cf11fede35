// Package llm connects the trainer to a language model behind one small
// interface. The explanation coach is the only caller today; everything here
// is shaped around its single-turn, schema-constrained requests.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single entry point to a language model.
type Provider interface {
	// Generate runs one completion. When req.Schema is set the provider
	// requests structured output from the model and validates the reply
	// against that schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the model this provider was configured with.
	ModelID() string
}

// Request describes one generation. The trainer only sends single-turn
// prompts: a tutor persona in System plus one user message built from a
// catalog question.
type Request struct {
	// System sets the tutor persona and its output constraints.
	System string

	// Messages is the turn list. UserTurn covers the single-turn case.
	Messages []Message

	// Schema, when set, is the JSON Schema the reply must satisfy.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature in [0, 1]; zero asks for deterministic output.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the sender of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserTurn wraps a single user prompt as a message list.
func UserTurn(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema names and defines the JSON shape of a structured reply. Name is
// kebab-case and doubles as the provider-side schema identifier.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the reply body. With a Schema on the request this is the
	// validated JSON object; without one, the raw text.
	Content json.RawMessage

	// Usage is the token accounting the provider reported.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
