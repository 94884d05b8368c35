package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aatrey56/ff-draft-assistant/internal/analytics"
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/logger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/reasoning"
	"github.com/aatrey56/ff-draft-assistant/internal/tools"
)

// fakeService replays canned responses and records every request.
type fakeService struct {
	mu        sync.Mutex
	responses []*reasoning.Response
	err       error
	block     bool
	requests  []reasoning.Request
}

func (f *fakeService) Converse(ctx context.Context, req reasoning.Request) (*reasoning.Response, error) {
	f.mu.Lock()
	req.Messages = append([]reasoning.Message(nil), req.Messages...)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil, errors.New("no canned response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func fptr(v float64) *float64 { return &v }

var fixedNow = time.Date(2025, 8, 30, 19, 0, 0, 0, time.UTC)

func newOrchestrator(t *testing.T, svc reasoning.Service, opts Options) *Orchestrator {
	t.Helper()
	cat := catalog.NewSnapshot([]model.Player{
		{ID: "1", FullName: "Bijan Robinson", Position: model.RB, Team: "ATL", ADP: fptr(2), ProjectedPoints: fptr(300)},
		{ID: "2", FullName: "Breece Hall", Position: model.RB, Team: "NYJ", ADP: fptr(9), ProjectedPoints: fptr(270)},
		{ID: "3", FullName: "Amon-Ra St. Brown", Position: model.WR, Team: "DET", ADP: fptr(6), ProjectedPoints: fptr(290)},
	})
	exec, err := tools.NewExecutor(cat, analytics.DefaultPolicy{})
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	o, err := New(svc, cat, exec, opts, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o
}

func validState() model.DraftState {
	return model.DraftState{
		DraftedPlayers: []model.DraftedPick{
			{PickNumber: 1, PlayerName: "Bijan Robinson", Position: model.RB, DraftedByTeam: "Alpha"},
		},
		CurrentPick:    2,
		UserTeam:       "Me",
		LeagueSettings: model.LeagueSettings{TeamCount: 10},
		DraftSlot:      2,
	}
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew_RequiresCollaborators(t *testing.T) {
	exec, err := tools.NewExecutor(catalog.NewSnapshot(nil), nil)
	if err != nil {
		t.Fatalf("NewExecutor: %v", err)
	}
	if _, err := New(nil, nil, exec, Options{}, nil); err == nil {
		t.Error("expected error without a reasoning service")
	}
	if _, err := New(&fakeService{}, nil, nil, Options{}, nil); err == nil {
		t.Error("expected error without an executor")
	}
}

// ---------------------------------------------------------------------------
// GetRecommendation
// ---------------------------------------------------------------------------

func TestGetRecommendation_InvalidStateMakesNoCalls(t *testing.T) {
	svc := &fakeService{}
	o := newOrchestrator(t, svc, Options{})
	tests := []struct {
		name  string
		state model.DraftState
		field string
	}{
		{"zero current pick", model.DraftState{UserTeam: "Me"}, "currentPick"},
		{"blank user team", model.DraftState{CurrentPick: 4, UserTeam: "  "}, "userTeam"},
		{"pick without team", model.DraftState{CurrentPick: 2, UserTeam: "Me",
			DraftedPlayers: []model.DraftedPick{{PickNumber: 1, PlayerName: "X"}}}, "draftedPlayers[0].draftedByTeam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.GetRecommendation(context.Background(), tt.state)
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *model.ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
	if len(svc.requests) != 0 {
		t.Errorf("service called %d times, want 0", len(svc.requests))
	}
}

func TestGetRecommendation_DirectAnswer(t *testing.T) {
	svc := &fakeService{responses: []*reasoning.Response{{Text: "Take Amon-Ra St. Brown."}}}
	o := newOrchestrator(t, svc, Options{})

	rec, err := o.GetRecommendation(context.Background(), validState())
	if err != nil {
		t.Fatalf("GetRecommendation: %v", err)
	}

	if rec.Text != "Take Amon-Ra St. Brown." {
		t.Errorf("Text = %q", rec.Text)
	}
	if rec.ToolsUsed == nil || len(rec.ToolsUsed) != 0 {
		t.Errorf("ToolsUsed = %v, want empty non-nil", rec.ToolsUsed)
	}
	if rec.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if !rec.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v, want %v", rec.GeneratedAt, fixedNow)
	}
	if len(svc.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(svc.requests))
	}
	req := svc.requests[0]
	if len(req.Tools) != 5 || req.TextOnly {
		t.Errorf("first request tools=%d textOnly=%v, want 5/false", len(req.Tools), req.TextOnly)
	}
	prompt := req.Messages[0].Text
	if !strings.HasPrefix(prompt, "Current draft context:") || !strings.Contains(prompt, "I am on the clock") {
		t.Errorf("prompt = %q", prompt)
	}
}

func TestGetRecommendation_ToolRoundWithUnknownTool(t *testing.T) {
	svc := &fakeService{responses: []*reasoning.Response{
		{
			Text: "Let me check the board.",
			ToolCalls: []reasoning.ToolCall{
				{ID: "call-1", Name: tools.GetAvailablePlayers, Arguments: json.RawMessage(`{"position":"RB"}`)},
				{Name: "getWeather", Arguments: json.RawMessage(`{"city":"Atlanta"}`)},
			},
		},
		{Text: "Take Breece Hall."},
	}}
	o := newOrchestrator(t, svc, Options{})

	rec, err := o.GetRecommendation(context.Background(), validState())
	if err != nil {
		t.Fatalf("GetRecommendation: %v", err)
	}

	if rec.Text != "Take Breece Hall." {
		t.Errorf("Text = %q", rec.Text)
	}
	if len(rec.ToolsUsed) != 1 || rec.ToolsUsed[0] != tools.GetAvailablePlayers {
		t.Errorf("ToolsUsed = %v, want [%s]", rec.ToolsUsed, tools.GetAvailablePlayers)
	}
	if len(rec.ToolCalls) != 2 || rec.ToolCalls[1].Error != "unknown tool" || rec.ToolCalls[0].Error != "" {
		t.Errorf("ToolCalls = %+v", rec.ToolCalls)
	}
	if rec.ToolCalls[0].ID != "call-1" || rec.ToolCalls[1].ID == "" {
		t.Errorf("call IDs = %q, %q", rec.ToolCalls[0].ID, rec.ToolCalls[1].ID)
	}

	if len(svc.requests) != 2 {
		t.Fatalf("requests = %d, want 2", len(svc.requests))
	}
	final := svc.requests[1]
	if !final.TextOnly {
		t.Error("synthesis request is not TextOnly")
	}
	if len(final.Messages) != 3 {
		t.Fatalf("synthesis messages = %d, want 3", len(final.Messages))
	}
	modelTurn, resultTurn := final.Messages[1], final.Messages[2]
	if modelTurn.Role != reasoning.RoleModel || len(modelTurn.ToolCalls) != 2 {
		t.Errorf("model turn = %+v", modelTurn)
	}
	if resultTurn.Role != reasoning.RoleUser || len(resultTurn.ToolResults) != 2 {
		t.Fatalf("result turn = %+v", resultTurn)
	}
	for i, r := range resultTurn.ToolResults {
		if r.CallID != modelTurn.ToolCalls[i].ID {
			t.Errorf("result %d CallID = %q, want %q", i, r.CallID, modelTurn.ToolCalls[i].ID)
		}
	}
	if got := string(resultTurn.ToolResults[1].Content); got != `{"error":"unknown tool"}` {
		t.Errorf("unknown tool result = %s", got)
	}
	var avail struct {
		Count   int `json:"count"`
		Players []struct {
			Name string `json:"name"`
		} `json:"players"`
	}
	if err := json.Unmarshal(resultTurn.ToolResults[0].Content, &avail); err != nil {
		t.Fatalf("decode available players: %v", err)
	}
	if avail.Count != 1 || avail.Players[0].Name != "Breece Hall" {
		t.Errorf("available RBs = %+v, want only Breece Hall", avail)
	}
}

func TestGetRecommendation_ToolCallsAfterRoundAreIgnored(t *testing.T) {
	svc := &fakeService{responses: []*reasoning.Response{
		{ToolCalls: []reasoning.ToolCall{{Name: tools.FindSleepers}}},
		{Text: "Draft Breece Hall.", ToolCalls: []reasoning.ToolCall{{Name: tools.FindSleepers}}},
	}}
	o := newOrchestrator(t, svc, Options{})

	rec, err := o.GetRecommendation(context.Background(), validState())
	if err != nil {
		t.Fatalf("GetRecommendation: %v", err)
	}
	if rec.Text != "Draft Breece Hall." || len(svc.requests) != 2 {
		t.Errorf("text=%q requests=%d", rec.Text, len(svc.requests))
	}
}

func TestGetRecommendation_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name      string
		svc       *fakeService
		ctx       func() context.Context
		wantKind  ErrorKind
		wantStage State
	}{
		{
			name:      "timeout",
			svc:       &fakeService{block: true},
			wantKind:  KindTimeout,
			wantStage: Drafting,
		},
		{
			name: "canceled by caller",
			svc:  &fakeService{block: true},
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			wantKind:  KindCanceled,
			wantStage: Drafting,
		},
		{
			name:      "transport",
			svc:       &fakeService{err: errors.New("connection reset by peer")},
			wantKind:  KindTransport,
			wantStage: Drafting,
		},
		{
			name:      "empty first response",
			svc:       &fakeService{responses: []*reasoning.Response{{}}},
			wantKind:  KindMalformed,
			wantStage: Drafting,
		},
		{
			name: "empty final text",
			svc: &fakeService{responses: []*reasoning.Response{
				{ToolCalls: []reasoning.ToolCall{{Name: tools.GetAvailablePlayers}}},
				{Text: ""},
			}},
			wantKind:  KindMalformed,
			wantStage: Synthesizing,
		},
		{
			name:      "nil first response",
			svc:       &fakeService{responses: []*reasoning.Response{nil}},
			wantKind:  KindMalformed,
			wantStage: Drafting,
		},
		{
			name: "nil final response",
			svc: &fakeService{responses: []*reasoning.Response{
				{ToolCalls: []reasoning.ToolCall{{Name: tools.GetAvailablePlayers}}},
				nil,
			}},
			wantKind:  KindMalformed,
			wantStage: Synthesizing,
		},
		{
			name: "service fails during synthesis",
			svc: &fakeService{responses: []*reasoning.Response{
				{ToolCalls: []reasoning.ToolCall{{Name: tools.GetAvailablePlayers}}},
			}},
			wantKind:  KindTransport,
			wantStage: Synthesizing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{}
			if tt.svc.block {
				opts.Timeout = 20 * time.Millisecond
			}
			o := newOrchestrator(t, tt.svc, opts)
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}

			rec, err := o.GetRecommendation(ctx, validState())

			if rec != nil {
				t.Errorf("rec = %+v, want nil", rec)
			}
			var ue *UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("err = %v, want *UpstreamError", err)
			}
			if ue.Kind != tt.wantKind || ue.Stage != tt.wantStage {
				t.Errorf("kind/stage = %s/%s, want %s/%s", ue.Kind, ue.Stage, tt.wantKind, tt.wantStage)
			}
			if IsTimeout(err) != (tt.wantKind == KindTimeout) {
				t.Errorf("IsTimeout = %v", IsTimeout(err))
			}
			if tt.wantKind == KindMalformed && !errors.Is(err, reasoning.ErrMalformed) {
				t.Error("malformed error does not wrap reasoning.ErrMalformed")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Tool round
// ---------------------------------------------------------------------------

func TestRunTools_OrderAndLimit(t *testing.T) {
	for _, limit := range []int{1, 2} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			const n = 6
			calls := make([]reasoning.ToolCall, n)
			for i := range calls {
				calls[i] = reasoning.ToolCall{ID: fmt.Sprint(i), Name: fmt.Sprintf("tool%d", i)}
			}

			var (
				mu       sync.Mutex
				inFlight int
				peak     int
				finished []string
			)
			execute := func(ctx context.Context, name string, args json.RawMessage) tools.Result {
				mu.Lock()
				inFlight++
				if inFlight > peak {
					peak = inFlight
				}
				mu.Unlock()

				// Earlier calls run longer, so with limit > 1 they finish out of order.
				idx := int(name[len(name)-1] - '0')
				time.Sleep(time.Duration(n-idx) * 3 * time.Millisecond)

				mu.Lock()
				inFlight--
				finished = append(finished, name)
				mu.Unlock()
				return tools.Result{Name: name, Payload: idx}
			}

			results := runTools(context.Background(), logger.Discard(), limit, execute, calls)

			if len(results) != n {
				t.Fatalf("results = %d, want %d", len(results), n)
			}
			for i, r := range results {
				if r.Name != calls[i].Name || r.Payload != i {
					t.Errorf("results[%d] = %+v, want %s", i, r, calls[i].Name)
				}
			}
			if peak > limit {
				t.Errorf("peak concurrency = %d, want <= %d", peak, limit)
			}
			if limit > 1 && finished[0] == "tool0" {
				t.Errorf("finish order = %v, want tool0 not first", finished)
			}
		})
	}
}

func TestUpstream_ClassifiesMalformedFromService(t *testing.T) {
	err := upstream(context.Background(), Drafting, errors.Join(reasoning.ErrMalformed, errors.New("no candidates")))

	if err.Kind != KindMalformed {
		t.Errorf("Kind = %s, want malformed", err.Kind)
	}
	if !strings.Contains(err.Error(), "reasoning service malformed during drafting") {
		t.Errorf("Error() = %q", err.Error())
	}
}
