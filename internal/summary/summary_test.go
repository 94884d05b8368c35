package summary

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

func fptr(v float64) *float64 { return &v }

var now = time.Date(2025, 8, 30, 20, 15, 0, 0, time.FixedZone("EDT", -4*3600))

func testCatalog() *catalog.Snapshot {
	return catalog.NewSnapshot([]model.Player{
		{ID: "1", FullName: "Ja'Marr Chase", Position: model.WR, Team: "CIN", ADP: fptr(1), ProjectedPoints: fptr(320), ProjectedReceptions: fptr(100)},
		{ID: "2", FullName: "Bijan Robinson", Position: model.RB, Team: "ATL", ADP: fptr(2), ProjectedPoints: fptr(310)},
		{ID: "3", FullName: "Saquon Barkley", Position: model.RB, Team: "PHI", ADP: fptr(3)},
		{ID: "4", FullName: "Jahmyr Gibbs", Position: model.RB, Team: "DET", ADP: fptr(4)},
	})
}

func testState(picks int) model.DraftState {
	names := []string{"Ja'Marr Chase", "bijan robinson", "Saquon Barkley"}
	teams := []string{"Alpha", "Me", "Gamma"}
	st := model.DraftState{
		CurrentPick:    picks + 1,
		UserTeam:       "Me",
		LeagueSettings: model.LeagueSettings{TeamCount: 3, ScoringFormat: model.Standard},
	}
	for i := 0; i < picks; i++ {
		st.DraftedPlayers = append(st.DraftedPlayers, model.DraftedPick{
			PickNumber: i + 1, PlayerName: names[i], Position: model.RB, DraftedByTeam: teams[i],
		})
	}
	return st
}

func TestBuildDraftContext_ExcludesDraftedPlayers(t *testing.T) {
	dc := BuildDraftContext(testState(2), testCatalog(), Options{}, now)

	if len(dc.TopAvailable) != 2 {
		t.Fatalf("TopAvailable = %+v, want 2 players", dc.TopAvailable)
	}
	if dc.TopAvailable[0].Name != "Saquon Barkley" || dc.TopAvailable[1].Name != "Jahmyr Gibbs" {
		t.Errorf("TopAvailable = %+v", dc.TopAvailable)
	}
	if dc.GeneratedAtUTC != "2025-08-31T00:15:00Z" {
		t.Errorf("GeneratedAtUTC = %s", dc.GeneratedAtUTC)
	}
	if dc.ScoringFormat != model.Standard || dc.TeamCount != 3 {
		t.Errorf("format/teams = %s/%d", dc.ScoringFormat, dc.TeamCount)
	}
}

func TestBuildDraftContext_ProjectionsInLeagueFormat(t *testing.T) {
	dc := BuildDraftContext(testState(0), testCatalog(), Options{TopAvailable: 1}, now)

	if len(dc.TopAvailable) != 1 {
		t.Fatalf("TopAvailable len = %d, want 1", len(dc.TopAvailable))
	}
	chase := dc.TopAvailable[0]
	if chase.ProjectedPoints == nil || *chase.ProjectedPoints != 220 {
		t.Errorf("Chase standard projection = %v, want 220", chase.ProjectedPoints)
	}
}

func TestBuildDraftContext_TurnAndRecentPicks(t *testing.T) {
	dc := BuildDraftContext(testState(3), nil, Options{RecentPicks: 2}, now)

	// 3 teams: pick 4 opens round 2 in reverse, so slot 3 (Gamma) is up.
	if dc.CurrentPick != 4 || dc.Round != 2 || dc.IsUserTurn {
		t.Errorf("pick/round/userTurn = %d/%d/%v", dc.CurrentPick, dc.Round, dc.IsUserTurn)
	}
	if len(dc.UpcomingPicks) == 0 || dc.UpcomingPicks[0] != 5 {
		t.Errorf("UpcomingPicks = %v, want to start at 5", dc.UpcomingPicks)
	}
	if len(dc.RecentPicks) != 2 || dc.RecentPicks[1].PlayerName != "Saquon Barkley" {
		t.Errorf("RecentPicks = %+v", dc.RecentPicks)
	}
	if dc.TopAvailable == nil || len(dc.TopAvailable) != 0 {
		t.Errorf("TopAvailable = %v, want empty without a catalog", dc.TopAvailable)
	}
	if len(dc.UserRoster) != 1 || dc.UserRoster[0] != "bijan robinson" {
		t.Errorf("UserRoster = %v", dc.UserRoster)
	}
}

func TestPrompt(t *testing.T) {
	onClock := BuildDraftContext(testState(1), testCatalog(), Options{}, now)
	waiting := BuildDraftContext(testState(2), testCatalog(), Options{}, now)

	p, err := onClock.Prompt()
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if !strings.HasPrefix(p, "Current draft context:\n{") || !strings.HasSuffix(p, "Who should I pick, and why?") {
		t.Errorf("on-clock prompt = %q", p)
	}

	p, err = waiting.Prompt()
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if !strings.Contains(p, "I am not on the clock yet") {
		t.Errorf("waiting prompt = %q", p)
	}

	body := strings.TrimPrefix(p, "Current draft context:\n")
	body = body[:strings.LastIndex(body, "}")+1]
	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("context is not JSON: %v", err)
	}
	for _, key := range []string{"user_team", "current_pick", "roster_needs", "upcoming_picks", "top_available"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("context missing %q", key)
		}
	}
}
