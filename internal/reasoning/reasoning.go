// Package reasoning defines the request/response shape the engine needs from
// an external reasoning service, plus a Vertex AI implementation.
package reasoning

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/jsonschema-go/jsonschema"
)

// ErrMalformed marks a response the engine cannot use (no candidates, no
// parts, undecodable arguments).
var ErrMalformed = errors.New("malformed response")

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ToolCall is one invocation requested by the service. Arguments is a JSON
// object. ID may be empty when the service does not assign one.
type ToolCall struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult answers a ToolCall. Content is the JSON result or {"error": ...}.
type ToolResult struct {
	CallID  string          `json:"callId,omitempty"`
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content"`
}

// Message is one conversation turn. A model turn may carry ToolCalls; the
// following user turn carries the matching ToolResults in the same order.
type Message struct {
	Role        Role         `json:"role"`
	Text        string       `json:"text,omitempty"`
	ToolCalls   []ToolCall   `json:"toolCalls,omitempty"`
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

type ToolSchema struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

type Request struct {
	SystemPrompt string
	Messages     []Message
	Tools        []ToolSchema
	// TextOnly keeps the tools declared but asks for a plain answer.
	TextOnly bool
}

type Response struct {
	Text      string
	ToolCalls []ToolCall
}

// Service is the external reasoning collaborator.
type Service interface {
	Converse(ctx context.Context, req Request) (*Response, error)
}
