package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/sirupsen/logrus"
)

type VertexConfig struct {
	Project         string
	Location        string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// VertexService talks to Gemini on Vertex AI using function calling.
type VertexService struct {
	client *genai.Client
	cfg    VertexConfig
	log    *logrus.Entry
}

func NewVertexService(ctx context.Context, cfg VertexConfig, log *logrus.Entry) (*VertexService, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("vertex project is required")
	}
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	client, err := genai.NewClient(ctx, cfg.Project, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("create vertex client: %w", err)
	}
	return &VertexService{client: client, cfg: cfg, log: log}, nil
}

func (s *VertexService) Close() error {
	return s.client.Close()
}

func (s *VertexService) Converse(ctx context.Context, req Request) (*Response, error) {
	contents, err := toContents(req.Messages)
	if err != nil {
		return nil, err
	}
	last := contents[len(contents)-1]
	if last.Role != string(RoleUser) {
		return nil, fmt.Errorf("conversation must end with a user turn, got %q", last.Role)
	}

	m := s.client.GenerativeModel(s.cfg.Model)
	m.SetTemperature(s.cfg.Temperature)
	if s.cfg.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(s.cfg.MaxOutputTokens)
	}
	if req.SystemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	}
	if len(req.Tools) > 0 {
		m.Tools = []*genai.Tool{{FunctionDeclarations: toFunctionDeclarations(req.Tools)}}
		if req.TextOnly {
			m.ToolConfig = &genai.ToolConfig{
				FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingNone},
			}
		}
	}

	chat := m.StartChat()
	chat.History = contents[:len(contents)-1]
	s.log.WithFields(logrus.Fields{
		"model":    s.cfg.Model,
		"turns":    len(contents),
		"tools":    len(req.Tools),
		"textOnly": req.TextOnly,
	}).Debug("vertex request")

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, err
	}
	return fromGenaiResponse(resp)
}

func toContents(msgs []Message) ([]*genai.Content, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("request has no messages")
	}
	out := make([]*genai.Content, 0, len(msgs))
	for i, msg := range msgs {
		c := &genai.Content{Role: string(msg.Role)}
		if msg.Text != "" {
			c.Parts = append(c.Parts, genai.Text(msg.Text))
		}
		for _, call := range msg.ToolCalls {
			args := map[string]any{}
			if len(call.Arguments) > 0 {
				if err := json.Unmarshal(call.Arguments, &args); err != nil {
					return nil, fmt.Errorf("message %d: arguments of %s: %w", i, call.Name, err)
				}
			}
			c.Parts = append(c.Parts, genai.FunctionCall{Name: call.Name, Args: args})
		}
		for _, res := range msg.ToolResults {
			c.Parts = append(c.Parts, genai.FunctionResponse{Name: res.Name, Response: responseObject(res.Content)})
		}
		if len(c.Parts) == 0 {
			return nil, fmt.Errorf("message %d is empty", i)
		}
		out = append(out, c)
	}
	return out, nil
}

// responseObject wraps non-object results, since Vertex requires an object.
func responseObject(raw json.RawMessage) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return obj
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return map[string]any{"result": string(raw)}
	}
	return map[string]any{"result": v}
}

func fromGenaiResponse(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrMalformed)
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: candidate has no content (finish reason %v)", ErrMalformed, cand.FinishReason)
	}
	out := &Response{}
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return nil, fmt.Errorf("%w: arguments of %s: %v", ErrMalformed, p.Name, err)
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{Name: p.Name, Arguments: args})
		}
	}
	out.Text = strings.TrimSpace(text.String())
	return out, nil
}
