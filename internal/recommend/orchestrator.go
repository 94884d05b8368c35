// Package recommend drives one bounded conversation with the reasoning
// service per request: send the draft context, run at most one round of tool
// calls, then ask for the final answer.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/reasoning"
	"github.com/aatrey56/ff-draft-assistant/internal/reconcile"
	"github.com/aatrey56/ff-draft-assistant/internal/summary"
	"github.com/aatrey56/ff-draft-assistant/internal/tools"
)

type State string

const (
	Drafting     State = "drafting"
	ToolRound    State = "tool_round"
	Synthesizing State = "synthesizing"
	Done         State = "done"
)

const (
	DefaultTimeout         = 45 * time.Second
	DefaultToolConcurrency = 4
)

const DefaultSystemPrompt = `You are a fantasy football draft assistant.
You receive the state of a live snake draft as JSON. Use the available tools when you need
player details, tiers, positional scarcity or sleepers. Recommend one player to draft next
(with one or two alternatives), grounded in the user's roster needs, the picks before the
user's next turn, and the drop-off to the next tier. Be concise. If a tool returned an
error, say what data was unavailable instead of guessing.`

type Options struct {
	Timeout         time.Duration
	ToolConcurrency int
	SystemPrompt    string
	Summary         summary.Options
	Now             func() time.Time
}

// Orchestrator is safe for concurrent use; every call to GetRecommendation
// is independent.
type Orchestrator struct {
	service  reasoning.Service
	catalog  catalog.Catalog
	executor *tools.Executor
	opts     Options
	log      *logrus.Entry
}

func New(service reasoning.Service, cat catalog.Catalog, executor *tools.Executor, opts Options, log *logrus.Entry) (*Orchestrator, error) {
	if service == nil {
		return nil, fmt.Errorf("reasoning service is required")
	}
	if executor == nil {
		return nil, fmt.Errorf("tool executor is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ToolConcurrency <= 0 {
		opts.ToolConcurrency = DefaultToolConcurrency
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = logrus.WithField("component", "recommend")
	}
	return &Orchestrator{service: service, catalog: cat, executor: executor, opts: opts, log: log}, nil
}

// GetRecommendation validates state, then runs Drafting, an optional
// ToolRound and Synthesizing. A malformed state yields *model.ValidationError
// before any I/O; reasoning failures yield *UpstreamError.
func (o *Orchestrator) GetRecommendation(ctx context.Context, state model.DraftState) (*model.Recommendation, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	log := o.log.WithField("request_id", requestID)
	started := o.opts.Now()

	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	report := reconcile.BuildReport(state)
	for _, w := range report.Messages() {
		log.WithField("warning", w).Warn("draft history inconsistency")
	}

	// Drafting
	dc := summary.BuildDraftContext(state, o.catalog, o.opts.Summary, started)
	prompt, err := dc.Prompt()
	if err != nil {
		return nil, err
	}
	exec := o.executor.ForDraft(state)
	req := reasoning.Request{
		SystemPrompt: o.opts.SystemPrompt,
		Messages:     []reasoning.Message{{Role: reasoning.RoleUser, Text: prompt}},
		Tools:        toolSchemas(exec),
	}
	resp, err := o.service.Converse(ctx, req)
	if err != nil {
		return nil, upstream(ctx, Drafting, err)
	}
	if resp == nil {
		return nil, malformed(Drafting, "empty response")
	}

	rec := &model.Recommendation{
		RequestID: requestID,
		ToolsUsed: []string{},
		Warnings:  report.Messages(),
	}
	if len(resp.ToolCalls) == 0 {
		if resp.Text == "" {
			return nil, malformed(Drafting, "response has neither text nor tool calls")
		}
		o.transition(log, Drafting, Done)
		rec.Text = resp.Text
		rec.GeneratedAt = o.opts.Now()
		return rec, nil
	}

	// ToolRound
	o.transition(log, Drafting, ToolRound)
	calls := make([]reasoning.ToolCall, len(resp.ToolCalls))
	copy(calls, resp.ToolCalls)
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = uuid.NewString()
		}
	}
	results := runTools(ctx, log, o.opts.ToolConcurrency, exec.Execute, calls)

	toolResults := make([]reasoning.ToolResult, len(calls))
	seen := make(map[string]bool, len(calls))
	for i, call := range calls {
		toolResults[i] = reasoning.ToolResult{CallID: call.ID, Name: call.Name, Content: encodeResult(results[i])}
		rec.ToolCalls = append(rec.ToolCalls, model.ToolCall{
			ID:        call.ID,
			Name:      call.Name,
			Arguments: string(call.Arguments),
			Error:     results[i].Error,
		})
		if exec.Known(call.Name) && !seen[call.Name] {
			seen[call.Name] = true
			rec.ToolsUsed = append(rec.ToolsUsed, call.Name)
		}
	}

	// Synthesizing
	o.transition(log, ToolRound, Synthesizing)
	req.Messages = append(req.Messages,
		reasoning.Message{Role: reasoning.RoleModel, Text: resp.Text, ToolCalls: calls},
		reasoning.Message{Role: reasoning.RoleUser, ToolResults: toolResults},
	)
	req.TextOnly = true
	final, err := o.service.Converse(ctx, req)
	if err != nil {
		return nil, upstream(ctx, Synthesizing, err)
	}
	if final == nil {
		return nil, malformed(Synthesizing, "empty response")
	}
	if len(final.ToolCalls) > 0 {
		log.WithField("ignored_calls", len(final.ToolCalls)).Warn("tool calls after the tool round are ignored")
	}
	if final.Text == "" {
		return nil, malformed(Synthesizing, "final response has no text")
	}

	o.transition(log, Synthesizing, Done)
	rec.Text = final.Text
	rec.GeneratedAt = o.opts.Now()
	log.WithFields(logrus.Fields{
		"tools_used": rec.ToolsUsed,
		"elapsed":    rec.GeneratedAt.Sub(started).String(),
	}).Info("recommendation ready")
	return rec, nil
}

type executeFunc func(ctx context.Context, name string, args json.RawMessage) tools.Result

// runTools executes every call, at most limit at a time. Results keep the
// order of calls whatever order they finish in.
func runTools(ctx context.Context, log *logrus.Entry, limit int, execute executeFunc, calls []reasoning.ToolCall) []tools.Result {
	results := make([]tools.Result, len(calls))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, call := range calls {
		g.Go(func() error {
			start := time.Now()
			results[i] = execute(ctx, call.Name, call.Arguments)
			entry := log.WithFields(logrus.Fields{
				"tool":     call.Name,
				"call_id":  call.ID,
				"duration": time.Since(start).String(),
			})
			if !results[i].OK() {
				entry.WithField("error", results[i].Error).Warn("tool call failed")
			} else {
				entry.Debug("tool call done")
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (o *Orchestrator) transition(log *logrus.Entry, from, to State) {
	log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("state transition")
}

func toolSchemas(exec *tools.Executor) []reasoning.ToolSchema {
	schemas := exec.Schemas()
	out := make([]reasoning.ToolSchema, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, reasoning.ToolSchema{Name: s.Name, Description: s.Description, Parameters: s.Parameters})
	}
	return out
}

func encodeResult(r tools.Result) json.RawMessage {
	b, err := json.Marshal(r)
	if err != nil {
		b, _ = json.Marshal(map[string]string{"error": fmt.Sprintf("encode %s result: %v", r.Name, err)})
	}
	return b
}
