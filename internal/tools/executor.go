// Package tools is the closed registry of named operations the reasoning
// service may call. Every call yields either a JSON payload or {"error": ...};
// nothing a handler does can escape as a panic or a Go error.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/aatrey56/ff-draft-assistant/internal/analytics"
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/ledger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

// ErrUnknownTool is reported, as data, for names outside the registry.
var ErrUnknownTool = errors.New("unknown tool")

// Result is the outcome of one call. It marshals to Payload on success and to
// {"error": Error} otherwise.
type Result struct {
	Name    string
	Payload any
	Error   string
}

func (r Result) OK() bool {
	return r.Error == ""
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	return json.Marshal(r.Payload)
}

// Schema describes a tool to the reasoning service.
type Schema struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

type tool struct {
	schema   Schema
	resolved *jsonschema.Resolved
	call     func(ctx context.Context, e *Executor, args json.RawMessage) (any, error)
}

// scope narrows an executor to a single draft.
type scope struct {
	state   *model.DraftState
	drafted map[string]bool
	format  model.ScoringFormat
}

// Executor dispatches calls by name. It holds no mutable state; ForDraft
// returns a scoped copy that shares the registry.
type Executor struct {
	catalog catalog.Catalog
	policy  analytics.Policy
	tools   map[string]*tool
	order   []string
	scope   scope
}

func NewExecutor(cat catalog.Catalog, policy analytics.Policy) (*Executor, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if policy == nil {
		policy = analytics.DefaultPolicy{}
	}
	e := &Executor{
		catalog: cat,
		policy:  policy,
		tools:   make(map[string]*tool, 8),
		scope:   scope{format: model.PPR},
	}
	if err := registerAll(e); err != nil {
		return nil, err
	}
	return e, nil
}

// register derives the argument schema from A and binds a typed handler.
func register[A any](e *Executor, name, description string, fn func(context.Context, *Executor, A) (any, error)) error {
	s, err := jsonschema.For[A](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", name, err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolve schema for %s: %w", name, err)
	}
	if _, dup := e.tools[name]; dup {
		return fmt.Errorf("tool %s registered twice", name)
	}
	e.tools[name] = &tool{
		schema:   Schema{Name: name, Description: description, Parameters: s},
		resolved: resolved,
		call: func(ctx context.Context, e *Executor, raw json.RawMessage) (any, error) {
			var instance map[string]any
			if err := json.Unmarshal(raw, &instance); err != nil || instance == nil {
				return nil, fmt.Errorf("arguments must be a JSON object")
			}
			if err := resolved.Validate(instance); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			var args A
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			return fn(ctx, e, args)
		},
	}
	e.order = append(e.order, name)
	return nil
}

// Execute runs the named tool. It always returns a Result.
func (e *Executor) Execute(ctx context.Context, name string, args json.RawMessage) (res Result) {
	res.Name = name
	t, ok := e.tools[name]
	if !ok {
		res.Error = ErrUnknownTool.Error()
		return res
	}
	defer func() {
		if r := recover(); r != nil {
			res.Payload = nil
			res.Error = fmt.Sprintf("%s failed: %v", name, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}
	if trimmed := bytes.TrimSpace(args); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		args = json.RawMessage("{}")
	}
	out, err := t.call(ctx, e, args)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Payload = out
	return res
}

// Known reports whether name is in the registry.
func (e *Executor) Known(name string) bool {
	_, ok := e.tools[name]
	return ok
}

// Schemas lists every tool in registration order.
func (e *Executor) Schemas() []Schema {
	out := make([]Schema, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.tools[name].schema)
	}
	return out
}

// ForDraft scopes the executor to one draft: availability queries skip
// players already taken, the league format becomes the default and
// analyzeDraftState falls back to state for omitted arguments.
func (e *Executor) ForDraft(state model.DraftState) *Executor {
	settings := state.LeagueSettings.WithDefaults()
	scoped := *e
	scoped.scope = scope{
		state:   &state,
		drafted: ledger.BuildDraftLedger(state.DraftedPlayers, settings.TeamCount).DraftedNames(),
		format:  settings.ScoringFormat,
	}
	return &scoped
}

func (e *Executor) analyzer(format model.ScoringFormat) *analytics.Analyzer {
	if format == "" {
		format = e.scope.format
	}
	return analytics.NewAnalyzer(e.policy, format)
}
