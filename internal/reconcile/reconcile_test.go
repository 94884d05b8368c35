package reconcile

import (
	"testing"

	"github.com/aatrey56/ff-draft-assistant/internal/model"
)

func dp(n int, name string, pos model.Position) model.DraftedPick {
	return model.DraftedPick{PickNumber: n, PlayerName: name, Position: pos, DraftedByTeam: "Team"}
}

func kinds(r *Report) map[IssueKind]int {
	out := make(map[IssueKind]int)
	for _, is := range r.Issues {
		out[is.Kind]++
	}
	return out
}

func TestBuildReport_Consistent(t *testing.T) {
	state := model.DraftState{
		DraftedPlayers: []model.DraftedPick{dp(1, "A", model.QB), dp(2, "B", model.RB)},
		CurrentPick:    3,
		UserTeam:       "Team",
	}

	r := BuildReport(state)

	if !r.OK() {
		t.Errorf("issues = %+v, want none", r.Issues)
	}
	if r.DerivedCurrentPick != 3 || r.ReportedCurrentPick != 3 {
		t.Errorf("reported/derived = %d/%d, want 3/3", r.ReportedCurrentPick, r.DerivedCurrentPick)
	}
	if msgs := r.Messages(); msgs == nil || len(msgs) != 0 {
		t.Errorf("Messages = %v, want empty non-nil", msgs)
	}
}

func TestBuildReport_Issues(t *testing.T) {
	tests := []struct {
		name  string
		state model.DraftState
		want  map[IssueKind]int
	}{
		{
			name: "reported pick disagrees with history",
			state: model.DraftState{
				DraftedPlayers: []model.DraftedPick{dp(1, "A", model.QB), dp(2, "B", model.RB)},
				CurrentPick:    5,
			},
			want: map[IssueKind]int{CurrentPickMismatch: 1},
		},
		{
			name: "duplicate pick number",
			state: model.DraftState{
				DraftedPlayers: []model.DraftedPick{dp(1, "A", model.QB), dp(1, "B", model.RB)},
				CurrentPick:    2,
			},
			want: map[IssueKind]int{DuplicatePickNumber: 1},
		},
		{
			name: "gap in history",
			state: model.DraftState{
				DraftedPlayers: []model.DraftedPick{dp(1, "A", model.QB), dp(4, "B", model.RB)},
				CurrentPick:    5,
			},
			want: map[IssueKind]int{MissingPickNumber: 1},
		},
		{
			name: "player drafted twice",
			state: model.DraftState{
				DraftedPlayers: []model.DraftedPick{dp(1, "Josh Allen", model.QB), dp(2, "josh  allen", model.QB)},
				CurrentPick:    3,
			},
			want: map[IssueKind]int{DuplicatePlayer: 1},
		},
		{
			name: "round disagrees with snake order",
			state: model.DraftState{
				DraftedPlayers: []model.DraftedPick{
					{PickNumber: 1, Round: 1, PlayerName: "A", Position: model.QB, DraftedByTeam: "T"},
					{PickNumber: 2, Round: 2, PlayerName: "B", Position: model.QB, DraftedByTeam: "T"},
				},
				CurrentPick:    3,
				LeagueSettings: model.LeagueSettings{TeamCount: 12},
			},
			want: map[IssueKind]int{RoundMismatch: 1},
		},
		{
			name: "unknown position",
			state: model.DraftState{
				DraftedPlayers: []model.DraftedPick{dp(1, "A", model.Position("LB"))},
				CurrentPick:    2,
			},
			want: map[IssueKind]int{UnknownPosition: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := BuildReport(tt.state)
			got := kinds(r)
			if len(got) != len(tt.want) {
				t.Fatalf("issues = %+v, want kinds %v", r.Issues, tt.want)
			}
			for k, n := range tt.want {
				if got[k] != n {
					t.Errorf("%s count = %d, want %d", k, got[k], n)
				}
			}
			if len(r.Messages()) != len(r.Issues) {
				t.Errorf("Messages len = %d, want %d", len(r.Messages()), len(r.Issues))
			}
		})
	}
}

func TestBuildReport_MissingPickNumbers(t *testing.T) {
	state := model.DraftState{
		DraftedPlayers: []model.DraftedPick{dp(2, "A", model.QB), dp(4, "B", model.RB)},
		CurrentPick:    5,
	}

	r := BuildReport(state)

	var missing []int
	for _, is := range r.Issues {
		if is.Kind == MissingPickNumber {
			missing = append(missing, is.PickNumber)
		}
	}
	if len(missing) != 2 || missing[0] != 1 || missing[1] != 3 {
		t.Errorf("missing picks = %v, want [1 3]", missing)
	}
}

func TestBuildReport_WideGapIsOneIssue(t *testing.T) {
	state := model.DraftState{
		DraftedPlayers: []model.DraftedPick{dp(1, "A", model.QB), dp(2000000, "B", model.RB)},
		CurrentPick:    2000001,
	}

	r := BuildReport(state)

	if len(r.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(r.Issues))
	}
	is := r.Issues[0]
	if is.Kind != MissingPickNumber || is.PickNumber != 2 || is.Through != 1999999 {
		t.Errorf("issue = %+v, want missing picks 2 through 1999999", is)
	}
	if is.Detail != "no picks recorded for picks 2-1999999" {
		t.Errorf("detail = %q", is.Detail)
	}
}
